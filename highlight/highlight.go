// Copyright © 2026 Texelvim contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: highlight/highlight.go
// Summary: Attribute table mapping highlight ids to resolved visual styles.
// Notes: Resolution is total; unknown ids fall back to the id-0 default.

package highlight

import (
	"github.com/framegrace/texelvim/protocol"
)

// Attr is the stored form of one highlight id. Color fields are -1 when
// unset, meaning "use the default colors at presentation time".
type Attr struct {
	Foreground int64
	Background int64
	Special    int64

	Reverse       bool
	Standout      bool
	Bold          bool
	Italic        bool
	Strikethrough bool
	Underline     bool
	Undercurl     bool
	Underdouble   bool
	Underdotted   bool
	Underdashed   bool

	Blend int
}

// AttrFromEvent converts the protocol shape into the stored shape.
func AttrFromEvent(e protocol.HlAttr) Attr {
	return Attr{
		Foreground:    e.Foreground,
		Background:    e.Background,
		Special:       e.Special,
		Reverse:       e.Reverse,
		Standout:      e.Standout,
		Bold:          e.Bold,
		Italic:        e.Italic,
		Strikethrough: e.Strikethrough,
		Underline:     e.Underline,
		Undercurl:     e.Undercurl,
		Underdouble:   e.Underdouble,
		Underdotted:   e.Underdotted,
		Underdashed:   e.Underdashed,
		Blend:         e.Blend,
	}
}

// Table owns all highlight definitions plus the default colors and the
// advisory group-name aliases. Id 0 is always present and resolvable.
type Table struct {
	attrs  map[int]Attr
	groups map[string]int

	defaultFg Color
	defaultBg Color
	defaultSp Color
}

// NewTable returns a table with the id-0 default entry installed and
// conventional dark-background default colors.
func NewTable() *Table {
	return &Table{
		attrs:     map[int]Attr{0: {Foreground: -1, Background: -1, Special: -1}},
		groups:    make(map[string]int),
		defaultFg: White,
		defaultBg: Black,
		defaultSp: Red,
	}
}

// Define inserts or wholly replaces the attributes for id. Redefinition
// never merges with the previous value.
func (t *Table) Define(id int, attr Attr) {
	t.attrs[id] = attr
}

// Resolve returns the stored attributes for id, or the id-0 default when
// the id has never been defined. It never fails.
func (t *Table) Resolve(id int) Attr {
	if attr, ok := t.attrs[id]; ok {
		return attr
	}
	return t.attrs[0]
}

// SetGroup records a group-name alias. Advisory only.
func (t *Table) SetGroup(name string, id int) {
	t.groups[name] = id
}

// Group looks up a named group's attribute id.
func (t *Table) Group(name string) (int, bool) {
	id, ok := t.groups[name]
	return id, ok
}

// SetDefaultColors updates the fallback colors. A value of -1 leaves the
// corresponding built-in default in place.
func (t *Table) SetDefaultColors(fg, bg, sp int64) {
	if fg >= 0 {
		t.defaultFg = ColorFromRGB(uint32(fg))
	}
	if bg >= 0 {
		t.defaultBg = ColorFromRGB(uint32(bg))
	}
	if sp >= 0 {
		t.defaultSp = ColorFromRGB(uint32(sp))
	}
}

// DefaultColors reports the current fallback colors.
func (t *Table) DefaultColors() (fg, bg, sp Color) {
	return t.defaultFg, t.defaultBg, t.defaultSp
}

// Style is an attribute fully resolved for presentation: concrete colors
// with defaults substituted, reverse applied, and blend folded into the
// background.
type Style struct {
	Foreground Color
	Background Color
	Special    Color

	Bold          bool
	Italic        bool
	Strikethrough bool
	Underline     bool
	Undercurl     bool
	Underdouble   bool
	Underdotted   bool
	Underdashed   bool
}

// StyleFor resolves an id all the way to presentation colors.
func (t *Table) StyleFor(id int) Style {
	attr := t.Resolve(id)

	fg := t.defaultFg
	if attr.Foreground >= 0 {
		fg = ColorFromRGB(uint32(attr.Foreground))
	}
	bg := t.defaultBg
	if attr.Background >= 0 {
		bg = ColorFromRGB(uint32(attr.Background))
	}
	sp := t.defaultSp
	if attr.Special >= 0 {
		sp = ColorFromRGB(uint32(attr.Special))
	}

	if attr.Reverse || attr.Standout {
		fg, bg = bg, fg
	}
	if attr.Blend > 0 {
		bg = bg.BlendTowards(t.defaultBg, float64(attr.Blend)/100)
	}

	return Style{
		Foreground:    fg,
		Background:    bg,
		Special:       sp,
		Bold:          attr.Bold,
		Italic:        attr.Italic,
		Strikethrough: attr.Strikethrough,
		Underline:     attr.Underline,
		Undercurl:     attr.Undercurl,
		Underdouble:   attr.Underdouble,
		Underdotted:   attr.Underdotted,
		Underdashed:   attr.Underdashed,
	}
}

// Clone returns a deep copy for snapshot publication.
func (t *Table) Clone() *Table {
	attrs := make(map[int]Attr, len(t.attrs))
	for id, attr := range t.attrs {
		attrs[id] = attr
	}
	groups := make(map[string]int, len(t.groups))
	for name, id := range t.groups {
		groups[name] = id
	}
	return &Table{
		attrs:     attrs,
		groups:    groups,
		defaultFg: t.defaultFg,
		defaultBg: t.defaultBg,
		defaultSp: t.defaultSp,
	}
}
