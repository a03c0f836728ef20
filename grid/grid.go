// Copyright © 2026 Texelvim contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: grid/grid.go
// Summary: One rectangular cell buffer with line writes, scroll and clear.
// Notes: Out-of-range writes are clamped or dropped, never a panic; the
// editor legitimately races stale coordinates against resizes.

package grid

import (
	"log"

	"github.com/framegrace/texelvim/protocol"
)

// Grid is one logical screen area (window, float, message area). The
// registry owns all Grid instances; everything else refers to grids by id.
type Grid struct {
	id     int
	width  int
	height int
	rows   [][]Cell

	// lastScroll remembers the most recent scroll of the current batch so
	// a renderer can shift already-drawn content instead of repainting.
	// Cleared by resize and clear, and by the engine at publish.
	lastScroll *ScrollHint
}

// ScrollHint describes a region shift for renderers that reuse pixels.
type ScrollHint struct {
	Top, Bottom, Left, Right int
	Rows                     int
}

// New allocates a blank grid.
func New(id, width, height int) *Grid {
	g := &Grid{id: id}
	g.Resize(width, height)
	return g
}

// ID returns the protocol grid id.
func (g *Grid) ID() int { return g.id }

// Size returns width and height in cells.
func (g *Grid) Size() (int, int) { return g.width, g.height }

// Resize reallocates the buffer. Contents are cleared; the protocol
// always follows a resize with a repaint of the affected lines.
func (g *Grid) Resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	g.width = width
	g.height = height
	g.rows = make([][]Cell, height)
	for r := range g.rows {
		g.rows[r] = blankRow(width)
	}
	g.lastScroll = nil
}

// Clear resets every cell to the default-attributed blank.
func (g *Grid) Clear() {
	for r := range g.rows {
		row := g.rows[r]
		for c := range row {
			row[c] = BlankCell
		}
	}
	g.lastScroll = nil
}

// WriteLine replaces a contiguous run of cells in one row, expanding the
// per-cell repeat compression.
func (g *Grid) WriteLine(row, startCol int, cells []protocol.LineCell) {
	if row < 0 || row >= g.height {
		log.Printf("Grid %d: dropping line update for out-of-range row %d", g.id, row)
		return
	}
	dst := g.rows[row]
	col := startCol
	for _, cell := range cells {
		repeat := cell.Repeat
		if repeat < 1 {
			repeat = 1
		}
		for i := 0; i < repeat; i++ {
			if col < 0 || col >= g.width {
				col++
				continue
			}
			dst[col] = Cell{Text: cell.Text, HlID: cell.HlID}
			col++
		}
	}
}

// Scroll shifts the rectangle [top,bottom)x[left,right) by rows. Positive
// rows moves content up; the revealed trailing rows become blank with the
// default highlight.
func (g *Grid) Scroll(top, bottom, left, right, rows int) {
	top = clamp(top, 0, g.height)
	bottom = clamp(bottom, 0, g.height)
	left = clamp(left, 0, g.width)
	right = clamp(right, 0, g.width)
	if top >= bottom || left >= right || rows == 0 {
		return
	}

	if rows > 0 {
		for dst := top; dst < bottom-rows; dst++ {
			copyRegion(g.rows[dst], g.rows[dst+rows], left, right)
		}
		for dst := max(bottom-rows, top); dst < bottom; dst++ {
			blankRegion(g.rows[dst], left, right)
		}
	} else {
		for dst := bottom - 1; dst >= top-rows; dst-- {
			copyRegion(g.rows[dst], g.rows[dst+rows], left, right)
		}
		for dst := top; dst < min(top-rows, bottom); dst++ {
			blankRegion(g.rows[dst], left, right)
		}
	}

	g.lastScroll = &ScrollHint{Top: top, Bottom: bottom, Left: left, Right: right, Rows: rows}
}

// LastScroll returns the pending scroll hint, if any.
func (g *Grid) LastScroll() *ScrollHint { return g.lastScroll }

// ClearScrollHint drops the hint once a consumer has taken it.
func (g *Grid) ClearScrollHint() { g.lastScroll = nil }

// Row returns the live backing slice for one row. Callers must not hold
// it across mutations; snapshots use CopyRows.
func (g *Grid) Row(r int) []Cell {
	if r < 0 || r >= g.height {
		return nil
	}
	return g.rows[r]
}

// CellAt returns the cell at (row, col), or the blank cell out of range.
func (g *Grid) CellAt(row, col int) Cell {
	if row < 0 || row >= g.height || col < 0 || col >= g.width {
		return BlankCell
	}
	return g.rows[row][col]
}

// CopyRows returns a deep copy of the buffer for publication.
func (g *Grid) CopyRows() [][]Cell {
	out := make([][]Cell, len(g.rows))
	for r, row := range g.rows {
		dup := make([]Cell, len(row))
		copy(dup, row)
		out[r] = dup
	}
	return out
}

func blankRow(width int) []Cell {
	row := make([]Cell, width)
	for c := range row {
		row[c] = BlankCell
	}
	return row
}

func copyRegion(dst, src []Cell, left, right int) {
	copy(dst[left:right], src[left:right])
}

func blankRegion(row []Cell, left, right int) {
	for c := left; c < right; c++ {
		row[c] = BlankCell
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
