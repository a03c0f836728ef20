// Copyright © 2026 Texelvim contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: protocol/requests.go
// Summary: Logical outbound requests handed to the transport for encoding.

package protocol

// ResizeRequest asks the editor to adopt a new grid size. The editor
// answers with an authoritative grid_resize, which may differ from the
// requested size.
type ResizeRequest struct {
	Cols int
	Rows int
}

// KeyInput carries already-notated key presses (e.g. "<C-a>", "gg").
type KeyInput struct {
	Keys string
}

// MouseAction names what happened to a button.
const (
	MouseActionPress   = "press"
	MouseActionDrag    = "drag"
	MouseActionRelease = "release"
	MouseActionUp      = "up"
	MouseActionDown    = "down"
	MouseActionLeft    = "left"
	MouseActionRight   = "right"
)

// MouseInput carries a pointer event with grid-relative coordinates.
// Button is "left", "right", "middle" or "wheel"; Modifier is the nvim
// modifier notation ("c", "s", "a" concatenated).
type MouseInput struct {
	Button   string
	Action   string
	Modifier string
	Grid     int
	Row      int
	Col      int
}

// FocusInput reports window focus transitions for cursor presentation.
type FocusInput struct {
	Gained bool
}
