// Copyright © 2026 Texelvim contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: nvim/client.go
// Summary: Embeds the Neovim process and bridges its msgpack-RPC stream
// to the grid engine: redraw batches in, input and resize requests out.

package nvim

import (
	"context"
	"errors"
	"fmt"
	"log"

	govim "github.com/neovim/go-client/nvim"

	"github.com/framegrace/texelvim/engine"
	"github.com/framegrace/texelvim/protocol"
)

// Options configures the embedded editor process.
type Options struct {
	// Command is the nvim binary; empty means "nvim" from PATH.
	Command string
	// ExtraArgs are appended after the standard embed arguments.
	ExtraArgs []string
	// Files are opened at startup.
	Files []string
	// Cols and Rows are the initial UI size for attach.
	Cols int
	Rows int
}

// Client owns the child process and the UI attachment.
type Client struct {
	v   *govim.Nvim
	eng *engine.Engine

	serveDone chan struct{}
}

// ErrProcessExited reports the editor process going away.
var ErrProcessExited = errors.New("nvim: process exited")

// Spawn starts nvim --embed, registers the redraw handler and attaches
// the UI with the line-grid and multigrid extensions.
func Spawn(ctx context.Context, eng *engine.Engine, opts Options) (*Client, error) {
	cmd := opts.Command
	if cmd == "" {
		cmd = "nvim"
	}
	args := []string{"--embed"}
	args = append(args, opts.ExtraArgs...)
	args = append(args, opts.Files...)

	v, err := govim.NewChildProcess(
		govim.ChildProcessCommand(cmd),
		govim.ChildProcessArgs(args...),
		govim.ChildProcessContext(ctx),
		govim.ChildProcessServe(false),
	)
	if err != nil {
		return nil, fmt.Errorf("nvim: spawn failed: %w", err)
	}

	c := &Client{v: v, eng: eng, serveDone: make(chan struct{})}
	if err := v.RegisterHandler("redraw", c.handleRedraw); err != nil {
		v.Close()
		return nil, fmt.Errorf("nvim: register redraw handler: %w", err)
	}

	go func() {
		defer close(c.serveDone)
		if err := v.Serve(); err != nil {
			log.Printf("Nvim: serve loop ended: %v", err)
		}
		eng.Disconnect(ErrProcessExited)
	}()

	cols, rows := opts.Cols, opts.Rows
	if cols <= 0 {
		cols = 80
	}
	if rows <= 0 {
		rows = 24
	}
	attachOpts := map[string]interface{}{
		"rgb":           true,
		"ext_linegrid":  true,
		"ext_multigrid": true,
	}
	if err := v.AttachUI(cols, rows, attachOpts); err != nil {
		v.Close()
		return nil, fmt.Errorf("nvim: ui attach failed: %w", err)
	}
	return c, nil
}

// handleRedraw receives one redraw notification; each update is one
// [name, args...] entry. A malformed entry is fatal to the connection
// per the protocol error taxonomy, never partially interpreted.
func (c *Client) handleRedraw(updates ...[]interface{}) {
	entries := make([]interface{}, len(updates))
	for i, u := range updates {
		entries[i] = []interface{}(u)
	}
	events, err := protocol.ParseBatch(entries)
	if err != nil {
		log.Printf("Nvim: fatal protocol error: %v", err)
		c.eng.Disconnect(err)
		c.v.Close()
		return
	}
	for _, ev := range events {
		c.eng.Apply(ev)
	}
}

// SendResize implements engine.ResizeSender.
func (c *Client) SendResize(req protocol.ResizeRequest) error {
	return c.v.TryResizeUI(req.Cols, req.Rows)
}

// SendKeys forwards notated key input (e.g. "<C-a>").
func (c *Client) SendKeys(req protocol.KeyInput) error {
	_, err := c.v.Input(req.Keys)
	return err
}

// SendMouse forwards a pointer event with grid-relative coordinates.
func (c *Client) SendMouse(req protocol.MouseInput) error {
	return c.v.InputMouse(req.Button, req.Action, req.Modifier, req.Grid, req.Row, req.Col)
}

// SendFocus forwards focus transitions; Neovim exposes them as the
// FocusGained/FocusLost pseudokeys.
func (c *Client) SendFocus(req protocol.FocusInput) error {
	key := "<FocusLost>"
	if req.Gained {
		key = "<FocusGained>"
	}
	_, err := c.v.Input(key)
	return err
}

// Command runs an ex command, used for startup configuration.
func (c *Client) Command(cmd string) error {
	return c.v.Command(cmd)
}

// Quit asks the editor to exit cleanly; a dead channel is not an error.
func (c *Client) Quit() {
	if err := c.v.Command("qa!"); err != nil {
		log.Printf("Nvim: quit command: %v", err)
	}
}

// Close tears down the RPC channel and waits for the serve loop.
func (c *Client) Close() error {
	err := c.v.Close()
	<-c.serveDone
	return err
}

// Done is closed when the serve loop has ended.
func (c *Client) Done() <-chan struct{} {
	return c.serveDone
}
