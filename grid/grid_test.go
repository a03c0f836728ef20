// Copyright © 2026 Texelvim contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: grid/grid_test.go
// Summary: Exercises line writes, repeat expansion, scroll and clear.

package grid

import (
	"testing"

	"github.com/framegrace/texelvim/protocol"
)

func rowText(g *Grid, row int) string {
	out := ""
	w, _ := g.Size()
	for c := 0; c < w; c++ {
		out += g.CellAt(row, c).Text
	}
	return out
}

func TestWriteLineExpandsRepeat(t *testing.T) {
	g := New(1, 8, 2)
	g.WriteLine(0, 1, []protocol.LineCell{
		{Text: "a", HlID: 2, Repeat: 1},
		{Text: "-", HlID: 3, Repeat: 4},
		{Text: "b", HlID: 2, Repeat: 1},
	})
	if got := rowText(g, 0); got != " a----b " {
		t.Fatalf("row content %q", got)
	}
	if g.CellAt(0, 3).HlID != 3 {
		t.Fatalf("repeat cell lost highlight: %+v", g.CellAt(0, 3))
	}
}

func TestWriteLineClampsOutOfRange(t *testing.T) {
	g := New(1, 4, 2)
	// Overrunning the right edge drops the excess, keeps the rest.
	g.WriteLine(0, 2, []protocol.LineCell{{Text: "x", HlID: 0, Repeat: 5}})
	if got := rowText(g, 0); got != "  xx" {
		t.Fatalf("row content %q", got)
	}
	// A row beyond the buffer is ignored entirely.
	g.WriteLine(9, 0, []protocol.LineCell{{Text: "y", HlID: 0, Repeat: 1}})
	if got := rowText(g, 1); got != "    " {
		t.Fatalf("unexpected write to row 1: %q", got)
	}
}

func TestScrollUpRevealsBlankTail(t *testing.T) {
	g := New(1, 5, 5)
	for r := 0; r < 5; r++ {
		text := string(rune('a' + r))
		g.WriteLine(r, 0, []protocol.LineCell{{Text: text, HlID: 7, Repeat: 5}})
	}
	g.Scroll(0, 5, 0, 5, 1)

	if got := rowText(g, 0); got != "bbbbb" {
		t.Fatalf("row 0 after scroll: %q", got)
	}
	if got := rowText(g, 3); got != "eeeee" {
		t.Fatalf("row 3 after scroll: %q", got)
	}
	if got := rowText(g, 4); got != "     " {
		t.Fatalf("revealed row not blank: %q", got)
	}
	if g.CellAt(4, 0).HlID != 0 {
		t.Fatalf("revealed cell not default highlight: %+v", g.CellAt(4, 0))
	}
}

func TestScrollDownWithinRegion(t *testing.T) {
	g := New(1, 4, 4)
	for r := 0; r < 4; r++ {
		text := string(rune('a' + r))
		g.WriteLine(r, 0, []protocol.LineCell{{Text: text, HlID: 0, Repeat: 4}})
	}
	// Shift rows 1..3 down by one; row 3 is outside the region.
	g.Scroll(0, 3, 0, 4, -1)

	if got := rowText(g, 0); got != "    " {
		t.Fatalf("revealed leading row not blank: %q", got)
	}
	if got := rowText(g, 1); got != "aaaa" {
		t.Fatalf("row 1 after scroll: %q", got)
	}
	if got := rowText(g, 2); got != "bbbb" {
		t.Fatalf("row 2 after scroll: %q", got)
	}
	if got := rowText(g, 3); got != "dddd" {
		t.Fatalf("row outside region moved: %q", got)
	}
}

func TestScrollRespectsColumnBounds(t *testing.T) {
	g := New(1, 6, 3)
	for r := 0; r < 3; r++ {
		text := string(rune('a' + r))
		g.WriteLine(r, 0, []protocol.LineCell{{Text: text, HlID: 0, Repeat: 6}})
	}
	g.Scroll(0, 3, 2, 4, 1)

	if got := rowText(g, 0); got != "aabbaa" {
		t.Fatalf("row 0 after column-bounded scroll: %q", got)
	}
	if got := rowText(g, 2); got != "cc  cc" {
		t.Fatalf("row 2 after column-bounded scroll: %q", got)
	}
}

func TestScrollHintLifecycle(t *testing.T) {
	g := New(1, 3, 3)
	g.Scroll(0, 3, 0, 3, 1)
	hint := g.LastScroll()
	if hint == nil || hint.Rows != 1 || hint.Bottom != 3 {
		t.Fatalf("missing or wrong scroll hint: %+v", hint)
	}
	g.Clear()
	if g.LastScroll() != nil {
		t.Fatal("clear should drop the scroll hint")
	}
}

func TestResizeClearsContents(t *testing.T) {
	g := New(1, 3, 2)
	g.WriteLine(0, 0, []protocol.LineCell{{Text: "x", HlID: 1, Repeat: 3}})
	g.Resize(5, 3)
	w, h := g.Size()
	if w != 5 || h != 3 {
		t.Fatalf("size after resize: %dx%d", w, h)
	}
	if got := rowText(g, 0); got != "     " {
		t.Fatalf("resize should clear contents: %q", got)
	}
}

func TestWideTailCells(t *testing.T) {
	g := New(1, 4, 1)
	g.WriteLine(0, 0, []protocol.LineCell{
		{Text: "世", HlID: 0, Repeat: 1},
		{Text: "", HlID: 0, Repeat: 1},
		{Text: "x", HlID: 0, Repeat: 1},
	})
	if !g.CellAt(0, 1).IsWideTail() {
		t.Fatalf("expected wide tail at col 1: %+v", g.CellAt(0, 1))
	}
	if g.CellAt(0, 0).Width() != 2 {
		t.Fatalf("wide head width: %d", g.CellAt(0, 0).Width())
	}
}
