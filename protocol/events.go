// Copyright © 2026 Texelvim contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: protocol/events.go
// Summary: Typed representations of the redraw notifications Neovim emits.

package protocol

// Event is one decoded redraw notification. The concrete types below are
// the only implementations.
type Event interface {
	eventName() string
}

// LineCell is one run of a grid_line update: a text chunk, the highlight
// id it is drawn with, and how many columns it covers. The decoder has
// already resolved the "inherit previous highlight" shorthand, so HlID is
// always concrete here.
type LineCell struct {
	Text   string
	HlID   int
	Repeat int
}

// GridResize announces the authoritative size of a grid. The first
// GridResize for an id also creates the grid.
type GridResize struct {
	Grid   int
	Width  int
	Height int
}

// GridLine replaces a contiguous run of cells on one row.
type GridLine struct {
	Grid     int
	Row      int
	ColStart int
	Cells    []LineCell
}

// GridClear resets every cell of a grid to the default blank.
type GridClear struct {
	Grid int
}

// GridDestroy removes a grid entirely.
type GridDestroy struct {
	Grid int
}

// GridCursorGoto moves the logical cursor.
type GridCursorGoto struct {
	Grid int
	Row  int
	Col  int
}

// GridScroll shifts the contents of a rectangular region. Positive Rows
// moves content up (revealing blank rows at the bottom edge).
type GridScroll struct {
	Grid   int
	Top    int
	Bottom int
	Left   int
	Right  int
	Rows   int
	Cols   int
}

// HlAttr carries the visual attributes of one highlight id. Color fields
// are 24-bit RGB values; -1 means unset (inherit the default colors).
type HlAttr struct {
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

// HlAttrDefine inserts or wholly replaces the attributes for an id.
type HlAttrDefine struct {
	ID   int
	Attr HlAttr
}

// HlGroupSet aliases a highlight group name to an attribute id.
type HlGroupSet struct {
	Name string
	ID   int
}

// DefaultColorsSet updates the default foreground/background/special
// colors that unset attribute fields fall back to. -1 means "not set".
type DefaultColorsSet struct {
	Foreground int64
	Background int64
	Special    int64
}

// CursorShape enumerates the cursor forms a mode can request.
type CursorShape int

const (
	CursorShapeBlock CursorShape = iota
	CursorShapeHorizontal
	CursorShapeVertical
)

// ModeInfo describes cursor presentation for one editor mode.
type ModeInfo struct {
	Name           string
	ShortName      string
	Shape          CursorShape
	CellPercentage int
	BlinkWaitMs    int
	BlinkOnMs      int
	BlinkOffMs     int
	AttrID         int
}

// ModeInfoSet replaces the table of mode cursor styles.
type ModeInfoSet struct {
	CursorStyleEnabled bool
	Modes              []ModeInfo
}

// ModeChange selects the active mode by index into the ModeInfoSet table.
type ModeChange struct {
	Name  string
	Index int
}

// WinPos places a grid at a fixed slot in the main layout.
type WinPos struct {
	Grid   int
	Row    int
	Col    int
	Width  int
	Height int
}

// WinFloatPos places a grid relative to an anchor grid. Anchor is one of
// "NW", "NE", "SW", "SE" naming which corner of the float sits at the
// anchor position.
type WinFloatPos struct {
	Grid       int
	Anchor     string
	AnchorGrid int
	AnchorRow  float64
	AnchorCol  float64
	Focusable  bool
	ZIndex     int
}

// WinHide removes a grid from the composition without destroying it.
type WinHide struct {
	Grid int
}

// WinClose closes a window; for composition purposes it behaves like hide.
type WinClose struct {
	Grid int
}

// BusyStart suppresses cursor rendering until BusyStop.
type BusyStart struct{}

// BusyStop restores cursor rendering.
type BusyStop struct{}

// Flush marks the end of a batch: everything received since the previous
// Flush forms one atomic, renderable update.
type Flush struct{}

// OptionSet reports a UI option value. Decoded for completeness; the
// engine only inspects the few it cares about.
type OptionSet struct {
	Name  string
	Value interface{}
}

func (GridResize) eventName() string       { return "grid_resize" }
func (GridLine) eventName() string         { return "grid_line" }
func (GridClear) eventName() string        { return "grid_clear" }
func (GridDestroy) eventName() string      { return "grid_destroy" }
func (GridCursorGoto) eventName() string   { return "grid_cursor_goto" }
func (GridScroll) eventName() string       { return "grid_scroll" }
func (HlAttrDefine) eventName() string     { return "hl_attr_define" }
func (HlGroupSet) eventName() string       { return "hl_group_set" }
func (DefaultColorsSet) eventName() string { return "default_colors_set" }
func (ModeInfoSet) eventName() string      { return "mode_info_set" }
func (ModeChange) eventName() string       { return "mode_change" }
func (WinPos) eventName() string           { return "win_pos" }
func (WinFloatPos) eventName() string      { return "win_float_pos" }
func (WinHide) eventName() string          { return "win_hide" }
func (WinClose) eventName() string         { return "win_close" }
func (BusyStart) eventName() string        { return "busy_start" }
func (BusyStop) eventName() string         { return "busy_stop" }
func (Flush) eventName() string            { return "flush" }
func (OptionSet) eventName() string        { return "option_set" }
