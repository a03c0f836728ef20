// Copyright © 2026 Texelvim contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cursor/cursor.go
// Summary: Cursor position, mode-derived shape and the blink state machine.
// Notes: The machine never sleeps or schedules; presentation is a pure
// function of the supplied clock, so tests run without real timers.

package cursor

import (
	"time"

	"github.com/framegrace/texelvim/protocol"
)

// Phase is the coarse animation state.
type Phase int

const (
	// PhaseSteadyVisible is a non-blinking, focused cursor.
	PhaseSteadyVisible Phase = iota
	// PhaseBlinking oscillates between visible and hidden on mode timing.
	PhaseBlinking
	// PhaseNoFocus renders as an outline, independent of blink timing.
	PhaseNoFocus
	// PhaseBusy suppresses the cursor entirely (busy_start .. busy_stop).
	PhaseBusy
)

// Presentation is everything a renderer needs to draw the cursor.
type Presentation struct {
	Grid int
	Row  int
	Col  int

	Shape          protocol.CursorShape
	CellPercentage int
	AttrID         int

	Visible bool
	Outline bool
}

// Cursor tracks logical position and animation state. It holds only a
// grid id, never a grid handle; coordinates are resolved against the
// registry when a snapshot is taken.
type Cursor struct {
	grid int
	row  int
	col  int

	styleEnabled bool
	modes        []protocol.ModeInfo
	modeIdx      int
	fallback     protocol.ModeInfo

	focused  bool
	busy     bool
	baseline time.Time
}

// New returns a focused cursor at the origin of the primary grid.
func New() *Cursor {
	return &Cursor{
		grid:     1,
		focused:  true,
		fallback: protocol.ModeInfo{Shape: protocol.CursorShapeBlock, CellPercentage: 100},
	}
}

// SetFallbackMode replaces the style used while the editor has sent no
// usable mode info, or has disabled per-mode cursor styling. Lets a
// configured blink timing apply from the first frame.
func (c *Cursor) SetFallbackMode(mode protocol.ModeInfo) {
	c.fallback = mode
}

// Goto moves the cursor. Movement forces the visible blink phase and
// restarts the timer baseline.
func (c *Cursor) Goto(gridID, row, col int, now time.Time) {
	c.grid = gridID
	c.row = row
	c.col = col
	c.baseline = now
}

// Position returns the logical (grid, row, col).
func (c *Cursor) Position() (int, int, int) {
	return c.grid, c.row, c.col
}

// SetModeInfo replaces the table of per-mode cursor styles.
func (c *Cursor) SetModeInfo(styleEnabled bool, modes []protocol.ModeInfo) {
	c.styleEnabled = styleEnabled
	c.modes = modes
	if c.modeIdx >= len(modes) {
		c.modeIdx = 0
	}
}

// SetMode selects the active mode and restarts the blink baseline.
func (c *Cursor) SetMode(index int, now time.Time) {
	if index >= 0 && index < len(c.modes) {
		c.modeIdx = index
	}
	c.baseline = now
}

// InputReceived notes local typing: the cursor must never be mid-blink
// hidden while the user is typing.
func (c *Cursor) InputReceived(now time.Time) {
	c.baseline = now
}

// SetFocus records window focus; losing focus switches to the outline
// presentation regardless of blink timing.
func (c *Cursor) SetFocus(focused bool, now time.Time) {
	c.focused = focused
	if focused {
		c.baseline = now
	}
}

// SetBusy toggles busy suppression.
func (c *Cursor) SetBusy(busy bool) {
	c.busy = busy
}

// Mode returns the active mode's cursor style. The fallback stands in
// when the editor has not sent mode info, or sent it with per-mode
// cursor styling disabled (empty 'guicursor').
func (c *Cursor) Mode() protocol.ModeInfo {
	if c.styleEnabled && c.modeIdx < len(c.modes) {
		return c.modes[c.modeIdx]
	}
	return c.fallback
}

// Phase reports the animation state at the given instant.
func (c *Cursor) Phase(now time.Time) Phase {
	if c.busy {
		return PhaseBusy
	}
	if !c.focused {
		return PhaseNoFocus
	}
	if !c.blinking() {
		return PhaseSteadyVisible
	}
	return PhaseBlinking
}

// Tick evaluates the machine at the given instant. The surrounding event
// loop calls this on its own cadence; nothing is scheduled here.
func (c *Cursor) Tick(now time.Time) Presentation {
	mode := c.Mode()
	p := Presentation{
		Grid:           c.grid,
		Row:            c.row,
		Col:            c.col,
		Shape:          mode.Shape,
		CellPercentage: mode.CellPercentage,
		AttrID:         mode.AttrID,
	}
	switch c.Phase(now) {
	case PhaseBusy:
		// Hidden.
	case PhaseNoFocus:
		p.Visible = true
		p.Outline = true
	case PhaseSteadyVisible:
		p.Visible = true
	case PhaseBlinking:
		p.Visible = c.blinkVisible(now)
	}
	return p
}

func (c *Cursor) blinking() bool {
	mode := c.Mode()
	return mode.BlinkOnMs > 0 && mode.BlinkOffMs > 0
}

// blinkVisible computes the oscillation phase from elapsed time: visible
// through blinkwait plus blinkon, then hidden for blinkoff, repeating.
func (c *Cursor) blinkVisible(now time.Time) bool {
	mode := c.Mode()
	wait := time.Duration(mode.BlinkWaitMs) * time.Millisecond
	on := time.Duration(mode.BlinkOnMs) * time.Millisecond
	off := time.Duration(mode.BlinkOffMs) * time.Millisecond

	elapsed := now.Sub(c.baseline)
	if elapsed < 0 {
		return true
	}
	if elapsed < wait {
		return true
	}
	cycle := (elapsed - wait) % (on + off)
	return cycle < on
}
