// Copyright © 2026 Texelvim contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: ui/screen.go
// Summary: Terminal event loop: publishes snapshots to the screen and
// forwards key, mouse, resize and focus events to the editor.

package ui

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelvim/engine"
	"github.com/framegrace/texelvim/protocol"
)

// Transport is the editor-bound half of the bridge. *nvim.Client
// satisfies it.
type Transport interface {
	SendKeys(req protocol.KeyInput) error
	SendMouse(req protocol.MouseInput) error
	SendFocus(req protocol.FocusInput) error
}

// cursorTickInterval paces blink-only repaints between publishes.
const cursorTickInterval = 50 * time.Millisecond

// UI runs the terminal front end for one editor session.
type UI struct {
	screen    tcell.Screen
	eng       *engine.Engine
	transport Transport
	resize    *engine.Negotiator

	// lastButtons distinguishes press, drag and release, which tcell
	// reports only as the current button mask.
	lastButtons tcell.ButtonMask
}

// New wires a UI over an engine and its transport. The screen is not
// initialized until Run.
func New(eng *engine.Engine, transport Transport, resize *engine.Negotiator) (*UI, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("ui: screen: %w", err)
	}
	return &UI{
		screen:    screen,
		eng:       eng,
		transport: transport,
		resize:    resize,
	}, nil
}

// Run owns the terminal until the context ends or the editor stream
// closes. The returned error is the disconnect cause; callers decide
// whether it means a clean exit.
func (u *UI) Run(ctx context.Context) error {
	if err := u.screen.Init(); err != nil {
		return fmt.Errorf("ui: init: %w", err)
	}
	defer u.screen.Fini()
	u.screen.EnableMouse()
	u.screen.EnableFocus()

	events := make(chan tcell.Event, 32)
	quit := make(chan struct{})
	defer close(quit)
	go u.screen.ChannelEvents(events, quit)

	// The terminal, not the attach size, decides the real geometry.
	cols, rows := u.screen.Size()
	u.resize.RequestResize(cols, rows)
	u.resize.Pump()

	ticker := time.NewTicker(cursorTickInterval)
	defer ticker.Stop()

	u.redraw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-u.eng.Disconnected():
			// The last published snapshot stays good; partial batches
			// were already discarded upstream. The editor process going
			// away is how sessions normally end; only a protocol fault
			// is worth holding the screen for.
			if errors.Is(err, protocol.ErrMalformed) {
				u.showDisconnected(ctx, events)
			}
			return err
		case <-u.eng.Published():
			u.redraw()
		case ev := <-events:
			u.handleEvent(ev)
			u.drainEvents(events)
			u.resize.Pump()
		case <-ticker.C:
			u.repaintCursor()
		}
	}
}

// showDisconnected paints the last good frame with a banner over it and
// holds it until the user presses a key.
func (u *UI) showDisconnected(ctx context.Context, events <-chan tcell.Event) {
	drawSnapshot(u.screen, u.eng.Snapshot())
	drawBanner(u.screen, "connection to editor lost, press any key")
	u.screen.Show()
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-events:
			if _, ok := ev.(*tcell.EventKey); ok {
				return
			}
		}
	}
}

// drainEvents empties whatever else already queued up, so a burst of
// resize or motion events collapses into one Pump.
func (u *UI) drainEvents(events <-chan tcell.Event) {
	for {
		select {
		case ev := <-events:
			u.handleEvent(ev)
		default:
			return
		}
	}
}

func (u *UI) handleEvent(ev tcell.Event) {
	switch tev := ev.(type) {
	case *tcell.EventKey:
		notation := Notation(tev)
		if notation == "" {
			return
		}
		u.eng.NoteInput()
		if err := u.transport.SendKeys(protocol.KeyInput{Keys: notation}); err != nil {
			log.Printf("UI: key send failed: %v", err)
		}
	case *tcell.EventMouse:
		u.handleMouse(tev)
	case *tcell.EventResize:
		cols, rows := tev.Size()
		u.resize.RequestResize(cols, rows)
	case *tcell.EventFocus:
		u.eng.SetFocus(tev.Focused)
		if err := u.transport.SendFocus(protocol.FocusInput{Gained: tev.Focused}); err != nil {
			log.Printf("UI: focus send failed: %v", err)
		}
	}
}

// handleMouse translates screen coordinates into grid-relative ones and
// press/drag/release out of tcell's button mask snapshots.
func (u *UI) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	buttons := ev.Buttons()
	mods := mouseModifiers(ev.Modifiers())

	gridID, row, col := hitTest(u.eng.Snapshot(), y, x)

	if wheel := buttons & (tcell.WheelUp | tcell.WheelDown | tcell.WheelLeft | tcell.WheelRight); wheel != 0 {
		action := protocol.MouseActionUp
		switch {
		case wheel&tcell.WheelDown != 0:
			action = protocol.MouseActionDown
		case wheel&tcell.WheelLeft != 0:
			action = protocol.MouseActionLeft
		case wheel&tcell.WheelRight != 0:
			action = protocol.MouseActionRight
		}
		u.sendMouse("wheel", action, mods, gridID, row, col)
		return
	}

	pressed := buttons &^ u.lastButtons
	released := u.lastButtons &^ buttons
	held := buttons & u.lastButtons
	u.lastButtons = buttons

	switch {
	case pressed != 0:
		u.sendMouse(buttonName(pressed), protocol.MouseActionPress, mods, gridID, row, col)
	case released != 0:
		u.sendMouse(buttonName(released), protocol.MouseActionRelease, mods, gridID, row, col)
	case held != 0:
		u.sendMouse(buttonName(held), protocol.MouseActionDrag, mods, gridID, row, col)
	}
}

func (u *UI) sendMouse(button, action, mods string, gridID, row, col int) {
	if button == "" {
		return
	}
	req := protocol.MouseInput{
		Button:   button,
		Action:   action,
		Modifier: mods,
		Grid:     gridID,
		Row:      row,
		Col:      col,
	}
	if err := u.transport.SendMouse(req); err != nil {
		log.Printf("UI: mouse send failed: %v", err)
	}
}

func buttonName(mask tcell.ButtonMask) string {
	switch {
	case mask&tcell.Button1 != 0:
		return "left"
	case mask&tcell.Button2 != 0:
		return "right"
	case mask&tcell.Button3 != 0:
		return "middle"
	}
	return ""
}

func mouseModifiers(mods tcell.ModMask) string {
	out := ""
	if mods&tcell.ModShift != 0 {
		out += "S"
	}
	if mods&tcell.ModCtrl != 0 {
		out += "C"
	}
	if mods&(tcell.ModAlt|tcell.ModMeta) != 0 {
		out += "A"
	}
	return out
}

// hitTest resolves a screen position to the topmost grid under it and
// the position relative to that grid. Misses land on the primary grid
// so scrolling over the margins still scrolls the buffer.
func hitTest(snap *engine.Snapshot, row, col int) (gridID, relRow, relCol int) {
	for i := len(snap.Grids) - 1; i >= 0; i-- {
		view := &snap.Grids[i]
		if row >= view.Row && row < view.Row+view.Height &&
			col >= view.Col && col < view.Col+view.Width {
			return view.ID, row - view.Row, col - view.Col
		}
	}
	return 1, row, col
}

// redraw repaints everything from the current snapshot.
func (u *UI) redraw() {
	snap := u.eng.Snapshot()
	drawSnapshot(u.screen, snap)
	applyCursor(u.screen, snap, u.eng.CursorNow())
	u.screen.Show()
}

// repaintCursor updates only the cursor between publishes; blink phase
// is a function of time, not of editor traffic.
func (u *UI) repaintCursor() {
	applyCursor(u.screen, u.eng.Snapshot(), u.eng.CursorNow())
	u.screen.Show()
}
