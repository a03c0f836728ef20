// Copyright © 2026 Texelvim contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cursor/cursor_test.go
// Summary: Exercises blink timing, focus and busy transitions with a
// simulated clock.

package cursor

import (
	"testing"
	"time"

	"github.com/framegrace/texelvim/protocol"
)

var blinkMode = protocol.ModeInfo{
	Name:           "normal",
	Shape:          protocol.CursorShapeBlock,
	CellPercentage: 100,
	BlinkOnMs:      400,
	BlinkOffMs:     250,
}

func newBlinking(t0 time.Time) *Cursor {
	c := New()
	c.SetModeInfo(true, []protocol.ModeInfo{blinkMode})
	c.SetMode(0, t0)
	return c
}

func TestBlinkTogglesOnTimer(t *testing.T) {
	t0 := time.Unix(100, 0)
	c := newBlinking(t0)

	if p := c.Tick(t0); !p.Visible {
		t.Fatal("cursor should start visible")
	}
	if p := c.Tick(t0.Add(399 * time.Millisecond)); !p.Visible {
		t.Fatal("still within blinkon, should be visible")
	}
	if p := c.Tick(t0.Add(400 * time.Millisecond)); p.Visible {
		t.Fatal("after blinkon, should be hidden")
	}
	if p := c.Tick(t0.Add(650 * time.Millisecond)); !p.Visible {
		t.Fatal("after blinkoff, should be visible again")
	}
}

func TestBlinkWaitDelaysFirstHide(t *testing.T) {
	t0 := time.Unix(100, 0)
	c := New()
	mode := blinkMode
	mode.BlinkWaitMs = 700
	c.SetModeInfo(true, []protocol.ModeInfo{mode})
	c.SetMode(0, t0)

	if p := c.Tick(t0.Add(600 * time.Millisecond)); !p.Visible {
		t.Fatal("within blinkwait, should be visible")
	}
	if p := c.Tick(t0.Add(1100 * time.Millisecond)); p.Visible {
		t.Fatal("blinkwait+blinkon elapsed, should be hidden")
	}
}

func TestTypingForcesVisibleAndResetsBaseline(t *testing.T) {
	t0 := time.Unix(100, 0)
	c := newBlinking(t0)

	hiddenAt := t0.Add(400 * time.Millisecond)
	if p := c.Tick(hiddenAt); p.Visible {
		t.Fatal("precondition: cursor hidden")
	}
	c.InputReceived(hiddenAt)
	if p := c.Tick(hiddenAt); !p.Visible {
		t.Fatal("typing must force the cursor visible")
	}
	// The full blinkon interval applies again from the typing instant.
	if p := c.Tick(hiddenAt.Add(399 * time.Millisecond)); !p.Visible {
		t.Fatal("baseline was not reset by typing")
	}
}

func TestCursorGotoResetsBlink(t *testing.T) {
	t0 := time.Unix(100, 0)
	c := newBlinking(t0)

	hiddenAt := t0.Add(400 * time.Millisecond)
	c.Goto(1, 3, 7, hiddenAt)
	p := c.Tick(hiddenAt)
	if !p.Visible {
		t.Fatal("cursor move must force the visible phase")
	}
	if p.Row != 3 || p.Col != 7 {
		t.Fatalf("position (%d,%d)", p.Row, p.Col)
	}
}

func TestFocusLossOverridesBlink(t *testing.T) {
	t0 := time.Unix(100, 0)
	c := newBlinking(t0)

	c.SetFocus(false, t0)
	if got := c.Phase(t0); got != PhaseNoFocus {
		t.Fatalf("phase %v, want PhaseNoFocus", got)
	}
	p := c.Tick(t0.Add(10 * time.Second))
	if !p.Visible || !p.Outline {
		t.Fatalf("unfocused cursor should be a steady outline: %+v", p)
	}

	c.SetFocus(true, t0.Add(11*time.Second))
	if p := c.Tick(t0.Add(11 * time.Second)); !p.Visible || p.Outline {
		t.Fatalf("regaining focus should restart filled and visible: %+v", p)
	}
}

func TestBusySuppressesCursor(t *testing.T) {
	t0 := time.Unix(100, 0)
	c := newBlinking(t0)

	c.SetBusy(true)
	if got := c.Phase(t0); got != PhaseBusy {
		t.Fatalf("phase %v, want PhaseBusy", got)
	}
	if p := c.Tick(t0); p.Visible {
		t.Fatal("busy cursor must be hidden")
	}
	c.SetBusy(false)
	if p := c.Tick(t0); !p.Visible {
		t.Fatal("busy_stop should restore the cursor")
	}
}

func TestNonBlinkingModeIsSteady(t *testing.T) {
	t0 := time.Unix(100, 0)
	c := New()
	c.SetModeInfo(true, []protocol.ModeInfo{{
		Name:           "insert",
		Shape:          protocol.CursorShapeVertical,
		CellPercentage: 25,
	}})
	c.SetMode(0, t0)

	if got := c.Phase(t0); got != PhaseSteadyVisible {
		t.Fatalf("phase %v, want PhaseSteadyVisible", got)
	}
	p := c.Tick(t0.Add(time.Hour))
	if !p.Visible {
		t.Fatal("non-blinking cursor must stay visible")
	}
	if p.Shape != protocol.CursorShapeVertical || p.CellPercentage != 25 {
		t.Fatalf("mode style not applied: %+v", p)
	}
}

func TestModeFallbackWithoutModeInfo(t *testing.T) {
	c := New()
	p := c.Tick(time.Unix(100, 0))
	if p.Shape != protocol.CursorShapeBlock || p.CellPercentage != 100 || !p.Visible {
		t.Fatalf("fallback presentation wrong: %+v", p)
	}
}

func TestConfiguredFallbackBlinks(t *testing.T) {
	t0 := time.Unix(100, 0)
	c := New()
	c.SetFallbackMode(protocol.ModeInfo{
		Shape:          protocol.CursorShapeBlock,
		CellPercentage: 100,
		BlinkOnMs:      400,
		BlinkOffMs:     250,
	})
	c.Goto(1, 0, 0, t0)

	if p := c.Tick(t0); !p.Visible {
		t.Fatal("configured fallback should start visible")
	}
	if p := c.Tick(t0.Add(400 * time.Millisecond)); p.Visible {
		t.Fatal("configured fallback blink timing not applied")
	}
}

func TestStyleDisabledIgnoresModeTable(t *testing.T) {
	t0 := time.Unix(100, 0)
	c := New()
	// cursor_style_enabled=false means the per-mode styles must not be
	// applied even though the table was delivered.
	c.SetModeInfo(false, []protocol.ModeInfo{{
		Shape:          protocol.CursorShapeVertical,
		CellPercentage: 25,
		BlinkOnMs:      400,
		BlinkOffMs:     250,
	}})
	c.SetMode(0, t0)

	p := c.Tick(t0.Add(450 * time.Millisecond))
	if p.Shape != protocol.CursorShapeBlock || p.CellPercentage != 100 {
		t.Fatalf("disabled styling leaked mode shape: %+v", p)
	}
	if !p.Visible {
		t.Fatal("default fallback does not blink")
	}
}
