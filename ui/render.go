// Copyright © 2026 Texelvim contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: ui/render.go
// Summary: Paints a published snapshot onto a tcell screen.

package ui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelvim/cursor"
	"github.com/framegrace/texelvim/engine"
	"github.com/framegrace/texelvim/protocol"
)

// drawSnapshot paints every composed grid back-to-front. The snapshot
// already carries grids in z-order, so painting in slice order gives
// floats precedence over the layout beneath them.
func drawSnapshot(s tcell.Screen, snap *engine.Snapshot) {
	_, bg, _ := snap.DefaultColors()
	fill := tcell.StyleDefault.Background(toTcellColor(bg))
	s.Fill(' ', fill)

	for gi := range snap.Grids {
		view := &snap.Grids[gi]
		for row := 0; row < view.Height; row++ {
			cells := view.Cells[row]
			for col := 0; col < len(cells); col++ {
				cell := cells[col]
				if cell.IsWideTail() {
					// tcell occupies the second column itself when
					// given a double-width rune.
					continue
				}
				main, comb := cell.Rune()
				style := toTcellStyle(snap.Style(cell.HlID))
				s.SetContent(view.Col+col, view.Row+row, main, comb, style)
			}
		}
	}
}

// drawBanner overlays a centered message on the top row, over whatever
// the last snapshot painted. Used for the disconnected state so the
// user sees an explicit indication instead of a frozen-looking screen.
func drawBanner(s tcell.Screen, msg string) {
	cols, _ := s.Size()
	style := tcell.StyleDefault.Reverse(true).Bold(true)
	text := " " + msg + " "
	start := (cols - len(text)) / 2
	if start < 0 {
		start = 0
	}
	for i, r := range text {
		if start+i >= cols {
			break
		}
		s.SetContent(start+i, 0, r, nil, style)
	}
	s.HideCursor()
}

// applyCursor positions the terminal cursor for the given presentation.
// Coordinates inside the presentation are grid-relative; the grid's
// placement in the snapshot supplies the screen offset.
func applyCursor(s tcell.Screen, snap *engine.Snapshot, p cursor.Presentation) {
	if !p.Visible {
		s.HideCursor()
		return
	}
	view, ok := snap.GridByID(p.Grid)
	if !ok {
		s.HideCursor()
		return
	}
	s.SetCursorStyle(cursorStyleFor(p))
	s.ShowCursor(view.Col+p.Col, view.Row+p.Row)
}

// cursorStyleFor maps the logical shape onto what terminals offer. An
// unfocused window gets a steady bar; a hollow outline has no terminal
// equivalent.
func cursorStyleFor(p cursor.Presentation) tcell.CursorStyle {
	if p.Outline {
		return tcell.CursorStyleSteadyBar
	}
	switch p.Shape {
	case protocol.CursorShapeHorizontal:
		return tcell.CursorStyleSteadyUnderline
	case protocol.CursorShapeVertical:
		return tcell.CursorStyleSteadyBar
	default:
		return tcell.CursorStyleSteadyBlock
	}
}
