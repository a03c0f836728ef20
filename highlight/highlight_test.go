// Copyright © 2026 Texelvim contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: highlight/highlight_test.go
// Summary: Exercises attribute table resolution and redefinition rules.

package highlight

import (
	"testing"
)

func TestResolveUnknownFallsBackToDefault(t *testing.T) {
	tbl := NewTable()
	if got, want := tbl.Resolve(999), tbl.Resolve(0); got != want {
		t.Fatalf("unknown id resolved to %+v, want default %+v", got, want)
	}
}

func TestDefineIsIdempotent(t *testing.T) {
	tbl := NewTable()
	attr := Attr{Foreground: 0x112233, Background: -1, Special: -1, Bold: true}
	tbl.Define(5, attr)
	first := tbl.Resolve(5)
	tbl.Define(5, attr)
	if second := tbl.Resolve(5); second != first {
		t.Fatalf("repeated define changed resolution: %+v vs %+v", second, first)
	}
}

func TestRedefineReplacesWholesale(t *testing.T) {
	tbl := NewTable()
	tbl.Define(5, Attr{Foreground: 0x112233, Background: -1, Special: -1, Bold: true})
	redefined := Attr{Foreground: -1, Background: 0x445566, Special: -1, Italic: true}
	tbl.Define(5, redefined)

	got := tbl.Resolve(5)
	if got != redefined {
		t.Fatalf("redefinition did not replace: %+v", got)
	}
	if got.Bold {
		t.Fatal("redefinition merged the old bold flag")
	}
}

func TestStyleForAppliesDefaultsAndReverse(t *testing.T) {
	tbl := NewTable()
	tbl.SetDefaultColors(0xaabbcc, 0x102030, -1)
	tbl.Define(3, Attr{Foreground: -1, Background: -1, Special: -1, Reverse: true})

	style := tbl.StyleFor(3)
	if style.Foreground != ColorFromRGB(0x102030) {
		t.Fatalf("reverse fg wrong: %+v", style.Foreground)
	}
	if style.Background != ColorFromRGB(0xaabbcc) {
		t.Fatalf("reverse bg wrong: %+v", style.Background)
	}
}

func TestStyleForBlendsBackground(t *testing.T) {
	tbl := NewTable()
	tbl.SetDefaultColors(-1, 0x000000, -1)
	tbl.Define(8, Attr{Foreground: -1, Background: 0xffffff, Special: -1, Blend: 100})

	style := tbl.StyleFor(8)
	if style.Background != Black {
		t.Fatalf("full blend should reach the default bg, got %+v", style.Background)
	}
}

func TestGroupAliases(t *testing.T) {
	tbl := NewTable()
	tbl.SetGroup("Pmenu", 12)
	id, ok := tbl.Group("Pmenu")
	if !ok || id != 12 {
		t.Fatalf("group lookup failed: %d %v", id, ok)
	}
	if _, ok := tbl.Group("Missing"); ok {
		t.Fatal("missing group should not resolve")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	tbl := NewTable()
	tbl.Define(4, Attr{Foreground: 0x111111, Background: -1, Special: -1})
	clone := tbl.Clone()
	tbl.Define(4, Attr{Foreground: 0x222222, Background: -1, Special: -1})

	if clone.Resolve(4).Foreground != 0x111111 {
		t.Fatal("clone observed a later definition")
	}
}

func TestColorRGBRoundTrip(t *testing.T) {
	c := ColorFromRGB(0x8040c0)
	if c.RGB() != 0x8040c0 {
		t.Fatalf("round trip failed: %06x", c.RGB())
	}
}
