// Copyright © 2026 Texelvim contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: ui/keys_test.go
// Summary: Checks key event translation into editor input notation.

package ui

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestNotationPlainRune(t *testing.T) {
	ev := tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone)
	if got := Notation(ev); got != "a" {
		t.Fatalf("plain rune: %q", got)
	}
}

func TestNotationShiftedRuneNotDoubled(t *testing.T) {
	// The rune already carries the shift; "A" must not become "<S-A>".
	ev := tcell.NewEventKey(tcell.KeyRune, 'A', tcell.ModShift)
	if got := Notation(ev); got != "A" {
		t.Fatalf("shifted rune: %q", got)
	}
}

func TestNotationLessThanEscaped(t *testing.T) {
	ev := tcell.NewEventKey(tcell.KeyRune, '<', tcell.ModNone)
	if got := Notation(ev); got != "<lt>" {
		t.Fatalf("less-than: %q", got)
	}
}

func TestNotationCtrlLetter(t *testing.T) {
	ev := tcell.NewEventKey(tcell.KeyCtrlW, 0, tcell.ModCtrl)
	if got := Notation(ev); got != "<C-w>" {
		t.Fatalf("ctrl letter: %q", got)
	}
}

func TestNotationNamedKeysBeatControlAliases(t *testing.T) {
	// Tab is the Ctrl-I byte and Enter the Ctrl-M byte; the named form
	// must win or nvim maps stop matching.
	cases := []struct {
		key  tcell.Key
		want string
	}{
		{tcell.KeyEnter, "<CR>"},
		{tcell.KeyTab, "<Tab>"},
		{tcell.KeyBackspace2, "<BS>"},
		{tcell.KeyEsc, "<Esc>"},
	}
	for _, tc := range cases {
		ev := tcell.NewEventKey(tc.key, 0, tcell.ModNone)
		if got := Notation(ev); got != tc.want {
			t.Fatalf("key %v: got %q, want %q", tc.key, got, tc.want)
		}
	}
}

func TestNotationBacktab(t *testing.T) {
	ev := tcell.NewEventKey(tcell.KeyBacktab, 0, tcell.ModNone)
	if got := Notation(ev); got != "<S-Tab>" {
		t.Fatalf("backtab: %q", got)
	}
}

func TestNotationModifierOrder(t *testing.T) {
	ev := tcell.NewEventKey(tcell.KeyF5, 0, tcell.ModShift|tcell.ModCtrl)
	if got := Notation(ev); got != "<S-C-F5>" {
		t.Fatalf("modified function key: %q", got)
	}
}

func TestNotationAltRune(t *testing.T) {
	ev := tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModAlt)
	if got := Notation(ev); got != "<A-x>" {
		t.Fatalf("alt rune: %q", got)
	}
}
