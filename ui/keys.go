// Copyright © 2026 Texelvim contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: ui/keys.go
// Summary: Translates terminal key events into Neovim key notation.

package ui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
)

var specialKeys = map[tcell.Key]string{
	tcell.KeyEnter:      "CR",
	tcell.KeyTab:        "Tab",
	tcell.KeyBacktab:    "Tab", // modifier added below
	tcell.KeyEsc:        "Esc",
	tcell.KeyBackspace:  "BS",
	tcell.KeyBackspace2: "BS",
	tcell.KeyDelete:     "Del",
	tcell.KeyInsert:     "Insert",
	tcell.KeyUp:         "Up",
	tcell.KeyDown:       "Down",
	tcell.KeyLeft:       "Left",
	tcell.KeyRight:      "Right",
	tcell.KeyHome:       "Home",
	tcell.KeyEnd:        "End",
	tcell.KeyPgUp:       "PageUp",
	tcell.KeyPgDn:       "PageDown",
	tcell.KeyF1:         "F1",
	tcell.KeyF2:         "F2",
	tcell.KeyF3:         "F3",
	tcell.KeyF4:         "F4",
	tcell.KeyF5:         "F5",
	tcell.KeyF6:         "F6",
	tcell.KeyF7:         "F7",
	tcell.KeyF8:         "F8",
	tcell.KeyF9:         "F9",
	tcell.KeyF10:        "F10",
	tcell.KeyF11:        "F11",
	tcell.KeyF12:        "F12",
}

// Notation renders a key event in Neovim input notation: "a", "<C-a>",
// "<S-F5>", "<lt>". Empty string means the event carries nothing to send.
func Notation(ev *tcell.EventKey) string {
	key := ev.Key()
	mods := ev.Modifiers()

	val := ""
	special := false
	switch {
	// Control characters alias named keys (Tab is Ctrl-I, Enter is
	// Ctrl-M, Backspace is Ctrl-H); the named form must win.
	case specialKeys[key] != "":
		val, special = specialKeys[key], true
		if key == tcell.KeyBacktab {
			mods |= tcell.ModShift
		}
	case key == tcell.KeyRune:
		r := ev.Rune()
		if r == '<' {
			val, special = "lt", true
		} else {
			val = string(r)
		}
		// The rune already reflects shift; tcell's ModShift would
		// otherwise double-encode it.
		mods &^= tcell.ModShift
	case key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ:
		val = string(rune('a' + key - tcell.KeyCtrlA))
		mods |= tcell.ModCtrl
	case key == tcell.KeyCtrlSpace:
		val, special = "Space", true
		mods |= tcell.ModCtrl
	default:
		return ""
	}

	var parts []string
	if mods&tcell.ModShift != 0 {
		parts = append(parts, "S")
	}
	if mods&tcell.ModCtrl != 0 {
		parts = append(parts, "C")
	}
	if mods&(tcell.ModAlt|tcell.ModMeta) != 0 {
		parts = append(parts, "A")
	}

	if len(parts) == 0 {
		if special {
			return "<" + val + ">"
		}
		return val
	}
	return fmt.Sprintf("<%s-%s>", strings.Join(parts, "-"), val)
}
