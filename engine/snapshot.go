// Copyright © 2026 Texelvim contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: engine/snapshot.go
// Summary: The immutable published view the renderer reads.

package engine

import (
	"github.com/framegrace/texelvim/cursor"
	"github.com/framegrace/texelvim/grid"
	"github.com/framegrace/texelvim/highlight"
)

// GridView is one composed grid: absolute position, z-order and a deep
// copy of the cell buffer as of the publishing flush.
type GridView struct {
	ID     int
	Row    int
	Col    int
	Width  int
	Height int
	ZIndex int
	Cells  [][]grid.Cell

	// Scroll, when set, tells a renderer that the previous frame's
	// content for this grid can be shifted instead of redrawn.
	Scroll *grid.ScrollHint
}

// Snapshot is one atomic, renderable update. Renderers must treat it as
// read-only and must not retain it across the next publish.
type Snapshot struct {
	Seq  uint64
	Cols int
	Rows int

	// Grids are ordered back-to-front.
	Grids []GridView

	// Cursor is the presentation at publish time, already clamped to the
	// bounds of its grid. Blink visibility keeps evolving between
	// publishes; Engine.CursorNow serves the live value.
	Cursor cursor.Presentation

	styles *highlight.Table
}

// Style resolves a highlight id against the table as of this snapshot.
func (s *Snapshot) Style(hlID int) highlight.Style {
	return s.styles.StyleFor(hlID)
}

// DefaultColors reports the snapshot's default colors.
func (s *Snapshot) DefaultColors() (fg, bg, sp highlight.Color) {
	return s.styles.DefaultColors()
}

// GridByID finds a composed grid view.
func (s *Snapshot) GridByID(id int) (*GridView, bool) {
	for i := range s.Grids {
		if s.Grids[i].ID == id {
			return &s.Grids[i], true
		}
	}
	return nil, false
}
