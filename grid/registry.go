// Copyright © 2026 Texelvim contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: grid/registry.go
// Summary: Owns every grid plus placement metadata, and produces the
// back-to-front composition order for rendering.

package grid

import (
	"log"
	"sort"

	"github.com/framegrace/texelvim/protocol"
)

// PrimaryGrid is the id of the global grid that backs the whole screen.
const PrimaryGrid = 1

// PlacementKind distinguishes layout windows from floating windows.
type PlacementKind int

const (
	// KindLayout is a grid positioned at a fixed slot of the main layout.
	KindLayout PlacementKind = iota
	// KindFloat is a grid anchored to another grid with a z-index.
	KindFloat
)

// Placement holds where a grid sits. Float relationships are stored as
// data (anchor id plus offsets), never as pointers, so grids can be
// destroyed and recreated without dangling references.
type Placement struct {
	Kind   PlacementKind
	Row    int
	Col    int
	ZIndex int
	Hidden bool

	Anchor     string
	AnchorGrid int
	AnchorRow  float64
	AnchorCol  float64
}

// Placed pairs a grid with its resolved absolute position for rendering.
type Placed struct {
	Grid   *Grid
	Row    int
	Col    int
	ZIndex int
}

// Registry is the single owner of all Grid instances.
type Registry struct {
	grids      map[int]*Grid
	placements map[int]*Placement
	order      []int // placement arrival order, for stable z ties
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		grids:      make(map[int]*Grid),
		placements: make(map[int]*Placement),
	}
}

// Resize creates the grid on first sight, otherwise reallocates it.
func (r *Registry) Resize(id, width, height int) {
	if g, ok := r.grids[id]; ok {
		g.Resize(width, height)
		return
	}
	r.grids[id] = New(id, width, height)
	if id == PrimaryGrid {
		// The primary grid is always composed at the origin, behind
		// every window.
		r.placements[id] = &Placement{Kind: KindLayout, ZIndex: -1}
		r.noteOrder(id)
	}
}

// Grid returns a grid by id.
func (r *Registry) Grid(id int) (*Grid, bool) {
	g, ok := r.grids[id]
	return g, ok
}

// Primary returns the global grid if it exists yet.
func (r *Registry) Primary() (*Grid, bool) {
	return r.Grid(PrimaryGrid)
}

// WriteLine applies a line update; unknown grids are a logged no-op.
func (r *Registry) WriteLine(id, row, startCol int, cells []protocol.LineCell) {
	g, ok := r.grids[id]
	if !ok {
		log.Printf("Registry: line update for unknown grid %d", id)
		return
	}
	g.WriteLine(row, startCol, cells)
}

// Clear blanks a grid; unknown grids are a logged no-op.
func (r *Registry) Clear(id int) {
	g, ok := r.grids[id]
	if !ok {
		log.Printf("Registry: clear for unknown grid %d", id)
		return
	}
	g.Clear()
}

// Scroll shifts a region; unknown grids are a logged no-op.
func (r *Registry) Scroll(id, top, bottom, left, right, rows int) {
	g, ok := r.grids[id]
	if !ok {
		log.Printf("Registry: scroll for unknown grid %d", id)
		return
	}
	g.Scroll(top, bottom, left, right, rows)
}

// Destroy removes a grid and its placement.
func (r *Registry) Destroy(id int) {
	delete(r.grids, id)
	delete(r.placements, id)
	r.dropOrder(id)
}

// SetPosition records a fixed layout slot (win_pos). The event carries
// the authoritative window size as well, so a mismatched grid is brought
// up to size here rather than waiting for a separate resize.
func (r *Registry) SetPosition(id, row, col, width, height int) {
	g, ok := r.grids[id]
	if !ok {
		log.Printf("Registry: win_pos for unknown grid %d", id)
		return
	}
	if w, h := g.Size(); w != width || h != height {
		g.Resize(width, height)
	}
	r.placements[id] = &Placement{Kind: KindLayout, Row: row, Col: col}
	r.noteOrder(id)
}

// SetFloatPosition records an anchored placement (win_float_pos).
func (r *Registry) SetFloatPosition(id int, anchor string, anchorGrid int, anchorRow, anchorCol float64, zindex int) {
	if _, ok := r.grids[id]; !ok {
		log.Printf("Registry: win_float_pos for unknown grid %d", id)
		return
	}
	r.placements[id] = &Placement{
		Kind:       KindFloat,
		Anchor:     anchor,
		AnchorGrid: anchorGrid,
		AnchorRow:  anchorRow,
		AnchorCol:  anchorCol,
		ZIndex:     zindex,
	}
	r.noteOrder(id)
}

// Hide removes a grid from composition without destroying it.
func (r *Registry) Hide(id int) {
	if p, ok := r.placements[id]; ok {
		p.Hidden = true
		return
	}
	if _, ok := r.grids[id]; ok {
		// Grid exists but was never placed; record the hidden state so a
		// later placement starts fresh.
		r.placements[id] = &Placement{Hidden: true}
		r.noteOrder(id)
	}
}

// Placement returns placement metadata for a grid.
func (r *Registry) Placement(id int) (*Placement, bool) {
	p, ok := r.placements[id]
	return p, ok
}

// VisibleGrids resolves every placed, unhidden grid to an absolute
// position and returns them back-to-front: primary grid, layout windows,
// then floats by ascending z-index (placement order breaks ties).
func (r *Registry) VisibleGrids() []Placed {
	out := make([]Placed, 0, len(r.order))
	orderIdx := make(map[int]int, len(r.order))
	for i, id := range r.order {
		orderIdx[id] = i
	}
	for _, id := range r.order {
		g, ok := r.grids[id]
		if !ok {
			continue
		}
		p := r.placements[id]
		if p == nil || p.Hidden {
			continue
		}
		row, col, ok := r.resolvePosition(id, p, 0)
		if !ok {
			continue
		}
		out = append(out, Placed{Grid: g, Row: row, Col: col, ZIndex: p.ZIndex})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].ZIndex != out[j].ZIndex {
			return out[i].ZIndex < out[j].ZIndex
		}
		return orderIdx[out[i].Grid.ID()] < orderIdx[out[j].Grid.ID()]
	})
	return out
}

// resolvePosition walks float anchors to an absolute cell position. An
// unresolvable anchor hides the grid rather than erroring: the anchor may
// simply not have been recreated yet.
func (r *Registry) resolvePosition(id int, p *Placement, depth int) (int, int, bool) {
	if p.Kind == KindLayout {
		return p.Row, p.Col, true
	}
	if depth > 8 {
		log.Printf("Registry: float anchor chain too deep at grid %d", id)
		return 0, 0, false
	}
	anchorPlacement, ok := r.placements[p.AnchorGrid]
	if !ok || anchorPlacement.Hidden {
		return 0, 0, false
	}
	if _, ok := r.grids[p.AnchorGrid]; !ok {
		return 0, 0, false
	}
	baseRow, baseCol, ok := r.resolvePosition(p.AnchorGrid, anchorPlacement, depth+1)
	if !ok {
		return 0, 0, false
	}
	row := baseRow + int(p.AnchorRow)
	col := baseCol + int(p.AnchorCol)
	if g, ok := r.grids[id]; ok {
		w, h := g.Size()
		switch p.Anchor {
		case "NE":
			col -= w
		case "SW":
			row -= h
		case "SE":
			row -= h
			col -= w
		}
	}
	return row, col, true
}

func (r *Registry) noteOrder(id int) {
	for _, existing := range r.order {
		if existing == id {
			return
		}
	}
	r.order = append(r.order, id)
}

func (r *Registry) dropOrder(id int) {
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			return
		}
	}
}
