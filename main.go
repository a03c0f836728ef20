// Copyright © 2026 Texelvim contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: main.go
// Summary: Entry point for the texelvim terminal front end.
// Usage: Run inside a terminal; embeds nvim and renders its grids.
// Notes: Wires config, session persistence, the embedded editor and
// the terminal event loop together.

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/term"

	"github.com/framegrace/texelvim/config"
	"github.com/framegrace/texelvim/engine"
	"github.com/framegrace/texelvim/nvim"
	"github.com/framegrace/texelvim/protocol"
	"github.com/framegrace/texelvim/session"
	"github.com/framegrace/texelvim/ui"
)

func main() {
	tcell.SetEncodingFallback(tcell.EncodingFallbackASCII)

	nvimBinary := flag.String("nvim", "", "Neovim binary (default: config, then PATH)")
	logPath := flag.String("log", "texelvim.log", "Log file path")
	listSessions := flag.Bool("list-sessions", false, "List remembered sessions and exit")
	forgetSession := flag.String("forget-session", "", "Forget the session for a directory and exit")
	flag.Parse()

	// Setup logging; stdout and stderr belong to the terminal UI.
	logFile, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open log file: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	log.SetOutput(logFile)
	log.Println("Texelvim starting...")

	if err := config.Err(); err != nil {
		log.Printf("Main: config load: %v", err)
	}
	cfg := config.System()

	store := openSessionStore()
	if store != nil {
		defer store.Close()
	}

	if *listSessions {
		printSessions(store, cfg.GetInt("session", "recent_limit", 10))
		return
	}
	if *forgetSession != "" {
		if store == nil {
			fmt.Fprintln(os.Stderr, "session store unavailable")
			os.Exit(1)
		}
		if err := store.Forget(absPath(*forgetSession)); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		return
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "texelvim must run inside a terminal")
		os.Exit(1)
	}

	if err := run(cfg, store, *nvimBinary, flag.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	log.Println("Texelvim stopped cleanly.")
}

func run(cfg config.Config, store *session.Store, command string, files []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if command == "" {
		command = cfg.GetString("nvim", "command", "nvim")
	}
	extraArgs := configArgs(cfg)

	cols, rows := startupSize(cfg, store)

	eng := engine.New()
	eng.SetFallbackMode(protocol.ModeInfo{
		Shape:          protocol.CursorShapeBlock,
		CellPercentage: 100,
		BlinkWaitMs:    cfg.GetInt("cursor", "blink_wait_ms", 700),
		BlinkOnMs:      cfg.GetInt("cursor", "blink_on_ms", 400),
		BlinkOffMs:     cfg.GetInt("cursor", "blink_off_ms", 250),
	})
	client, err := nvim.Spawn(ctx, eng, nvim.Options{
		Command:   command,
		ExtraArgs: extraArgs,
		Files:     files,
		Cols:      cols,
		Rows:      rows,
	})
	if err != nil {
		return err
	}
	defer client.Close()

	negotiator := engine.NewNegotiator(client)
	eng.SetNegotiator(negotiator)

	front, err := ui.New(eng, client, negotiator)
	if err != nil {
		return err
	}

	runErr := front.Run(ctx)
	rememberSession(cfg, store, negotiator, files)

	if errors.Is(runErr, nvim.ErrProcessExited) {
		// The editor quitting is the normal way out.
		return nil
	}
	return runErr
}

// startupSize picks the initial attach geometry: the remembered session
// size when available, otherwise the live terminal size. The first
// resize negotiation corrects it either way.
func startupSize(cfg config.Config, store *session.Store) (int, int) {
	if store != nil && cfg.GetBool("session", "remember", true) {
		if sess, ok, err := store.Lookup(workDir()); err == nil && ok && sess.Cols > 0 && sess.Rows > 0 {
			return sess.Cols, sess.Rows
		}
	}
	if cols, rows, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		return cols, rows
	}
	return 80, 24
}

func rememberSession(cfg config.Config, store *session.Store, negotiator *engine.Negotiator, files []string) {
	if store == nil || !cfg.GetBool("session", "remember", true) {
		return
	}
	sess := session.Session{WorkDir: workDir(), Cols: 80, Rows: 24}
	if size, ok := negotiator.Acked(); ok {
		sess.Cols, sess.Rows = size.Cols, size.Rows
	}
	if len(files) > 0 {
		sess.LastFile = absPath(files[0])
	}
	if err := store.Touch(sess); err != nil {
		log.Printf("Main: session touch: %v", err)
	}
}

func openSessionStore() *session.Store {
	root, err := config.DataRoot()
	if err != nil {
		log.Printf("Main: no data root: %v", err)
		return nil
	}
	store, err := session.Open(filepath.Join(root, "sessions.db"))
	if err != nil {
		log.Printf("Main: session store: %v", err)
		return nil
	}
	return store
}

func printSessions(store *session.Store, limit int) {
	if store == nil {
		fmt.Fprintln(os.Stderr, "session store unavailable")
		os.Exit(1)
	}
	sessions, err := store.Recent(limit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	for _, sess := range sessions {
		line := fmt.Sprintf("%s  %dx%d  %s", sess.UpdatedAt.Format("2006-01-02 15:04"), sess.Cols, sess.Rows, sess.WorkDir)
		if sess.LastFile != "" {
			line += "  (" + sess.LastFile + ")"
		}
		fmt.Println(line)
	}
}

func configArgs(cfg config.Config) []string {
	section := cfg.Section("nvim")
	if section == nil {
		return nil
	}
	raw, ok := section["args"].([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
	}
	return out
}

func workDir() string {
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return wd
}

func absPath(p string) string {
	abs, err := filepath.Abs(p)
	if err != nil {
		return p
	}
	return abs
}
