// Copyright © 2026 Texelvim contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: highlight/color.go
// Summary: 24-bit color value with the blending math styles need.

package highlight

import (
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color is a 24-bit RGB color as sent by the editor.
type Color struct {
	R, G, B uint8
}

var (
	Black = Color{0x00, 0x00, 0x00}
	White = Color{0xff, 0xff, 0xff}
	Red   = Color{0xff, 0x00, 0x00}
)

// ColorFromRGB unpacks a 0xRRGGBB integer.
func ColorFromRGB(v uint32) Color {
	return Color{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
	}
}

// RGB packs the color back into 0xRRGGBB form.
func (c Color) RGB() uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

func (c Color) colorful() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
}

func fromColorful(c colorful.Color) Color {
	r, g, b := c.Clamped().RGB255()
	return Color{R: r, G: g, B: b}
}

// BlendTowards mixes the color with other; t is 0 for no change and 1 for
// fully other. Used for the pseudo-transparency blend attribute.
func (c Color) BlendTowards(other Color, t float64) Color {
	if t <= 0 {
		return c
	}
	if t >= 1 {
		return other
	}
	return fromColorful(c.colorful().BlendRgb(other.colorful(), t))
}

// Luminance reports perceived brightness, used to pick a readable cursor
// text color when a mode has no attribute id of its own.
func (c Color) Luminance() float64 {
	_, _, l := c.colorful().Luv()
	return l
}
