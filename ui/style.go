// Copyright © 2026 Texelvim contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: ui/style.go
// Summary: Converts resolved highlight styles to tcell styles.

package ui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelvim/highlight"
)

func toTcellColor(c highlight.Color) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// toTcellStyle maps a resolved style onto tcell. Reverse and blend are
// already folded into the colors by the highlight table; underline
// variants beyond plain underline collapse to underline, which is the
// closest thing a terminal reliably renders.
func toTcellStyle(s highlight.Style) tcell.Style {
	st := tcell.StyleDefault.
		Foreground(toTcellColor(s.Foreground)).
		Background(toTcellColor(s.Background))
	if s.Bold {
		st = st.Bold(true)
	}
	if s.Italic {
		st = st.Italic(true)
	}
	if s.Strikethrough {
		st = st.StrikeThrough(true)
	}
	if s.Underline || s.Undercurl || s.Underdouble || s.Underdotted || s.Underdashed {
		st = st.Underline(true)
	}
	return st
}
