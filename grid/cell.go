// Copyright © 2026 Texelvim contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: grid/cell.go
// Summary: Single screen cell: text plus a highlight id reference.

package grid

import (
	runewidth "github.com/mattn/go-runewidth"
)

// Cell is one column slot. Text is usually a single grapheme; it is ""
// for the trailing half of a double-width character. Cells are replaced
// wholesale by line updates, never mutated in place.
type Cell struct {
	Text string
	HlID int
}

// BlankCell is what clears and scroll reveals produce.
var BlankCell = Cell{Text: " ", HlID: 0}

// IsWideTail reports whether the cell is the hidden second column of a
// double-width character.
func (c Cell) IsWideTail() bool {
	return c.Text == ""
}

// Width reports how many columns the cell's text occupies on screen.
func (c Cell) Width() int {
	if c.Text == "" {
		return 0
	}
	return runewidth.StringWidth(c.Text)
}

// Rune returns the first rune of the cell for renderers that address
// cells by single runes, with combining marks as the remainder.
func (c Cell) Rune() (rune, []rune) {
	if c.Text == "" {
		return ' ', nil
	}
	runes := []rune(c.Text)
	if len(runes) == 1 {
		return runes[0], nil
	}
	return runes[0], runes[1:]
}
