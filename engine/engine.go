// Copyright © 2026 Texelvim contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: engine/engine.go
// Summary: Batch controller: applies redraw events to the working state
// and publishes a consistent snapshot at each flush marker.
// Notes: A single mutex domain serializes apply, publish and reads, so a
// reader only ever observes whole batches.

package engine

import (
	"log"
	"sync"
	"time"

	"github.com/framegrace/texelvim/cursor"
	"github.com/framegrace/texelvim/grid"
	"github.com/framegrace/texelvim/highlight"
	"github.com/framegrace/texelvim/protocol"
)

// Engine owns the working screen state and the published snapshot.
type Engine struct {
	mu sync.Mutex

	grids  *grid.Registry
	hl     *highlight.Table
	cursor *cursor.Cursor
	resize *Negotiator

	accumulating bool
	published    *Snapshot
	seq          uint64

	publishCh    chan struct{}
	disconnectCh chan error
	disconnected bool

	now func() time.Time
}

// New returns an engine with an empty published snapshot.
func New() *Engine {
	e := &Engine{
		grids:        grid.NewRegistry(),
		hl:           highlight.NewTable(),
		cursor:       cursor.New(),
		publishCh:    make(chan struct{}, 1),
		disconnectCh: make(chan error, 1),
		now:          time.Now,
	}
	e.published = &Snapshot{styles: e.hl.Clone()}
	return e
}

// SetClock substitutes the wall clock; tests drive blink and publish
// timestamps deterministically through this.
func (e *Engine) SetClock(now func() time.Time) {
	e.mu.Lock()
	e.now = now
	e.mu.Unlock()
}

// SetNegotiator attaches the resize negotiator so authoritative primary
// grid resizes acknowledge pending local intents.
func (e *Engine) SetNegotiator(n *Negotiator) {
	e.mu.Lock()
	e.resize = n
	e.mu.Unlock()
}

// SetFallbackMode forwards the configured cursor style used until the
// editor sends mode info.
func (e *Engine) SetFallbackMode(mode protocol.ModeInfo) {
	e.mu.Lock()
	e.cursor.SetFallbackMode(mode)
	e.mu.Unlock()
}

// Published signals each new snapshot; the channel carries no data, the
// reader fetches the snapshot with Snapshot().
func (e *Engine) Published() <-chan struct{} {
	return e.publishCh
}

// Disconnected delivers the fatal error that ended the stream, once.
func (e *Engine) Disconnected() <-chan error {
	return e.disconnectCh
}

// Snapshot returns the last published view. Never nil.
func (e *Engine) Snapshot() *Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.published
}

// Apply dispatches one decoded notification into the working state.
// Everything except the flush marker marks the batch as accumulating;
// the flush marker publishes.
func (e *Engine) Apply(ev protocol.Event) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.disconnected {
		return
	}

	if _, isFlush := ev.(protocol.Flush); isFlush {
		e.flushLocked()
		return
	}
	e.accumulating = true

	switch v := ev.(type) {
	case protocol.GridResize:
		e.grids.Resize(v.Grid, v.Width, v.Height)
		if v.Grid == grid.PrimaryGrid && e.resize != nil {
			e.resize.Acknowledge(v.Width, v.Height)
		}
	case protocol.GridLine:
		e.grids.WriteLine(v.Grid, v.Row, v.ColStart, v.Cells)
	case protocol.GridClear:
		e.grids.Clear(v.Grid)
	case protocol.GridDestroy:
		e.grids.Destroy(v.Grid)
	case protocol.GridCursorGoto:
		e.cursor.Goto(v.Grid, v.Row, v.Col, e.now())
	case protocol.GridScroll:
		e.grids.Scroll(v.Grid, v.Top, v.Bottom, v.Left, v.Right, v.Rows)
	case protocol.HlAttrDefine:
		e.hl.Define(v.ID, highlight.AttrFromEvent(v.Attr))
	case protocol.HlGroupSet:
		e.hl.SetGroup(v.Name, v.ID)
	case protocol.DefaultColorsSet:
		e.hl.SetDefaultColors(v.Foreground, v.Background, v.Special)
	case protocol.ModeInfoSet:
		e.cursor.SetModeInfo(v.CursorStyleEnabled, v.Modes)
	case protocol.ModeChange:
		e.cursor.SetMode(v.Index, e.now())
	case protocol.WinPos:
		e.grids.SetPosition(v.Grid, v.Row, v.Col, v.Width, v.Height)
	case protocol.WinFloatPos:
		e.grids.SetFloatPosition(v.Grid, v.Anchor, v.AnchorGrid, v.AnchorRow, v.AnchorCol, v.ZIndex)
	case protocol.WinHide:
		e.grids.Hide(v.Grid)
	case protocol.WinClose:
		e.grids.Hide(v.Grid)
	case protocol.BusyStart:
		e.cursor.SetBusy(true)
	case protocol.BusyStop:
		e.cursor.SetBusy(false)
	case protocol.OptionSet:
		// Nothing to mirror; options affect collaborators, not the grid.
	default:
		log.Printf("Engine: unhandled event %T", ev)
	}
}

// Flush publishes the accumulated batch. Exposed for transports that
// deliver the batch-end marker out of band.
func (e *Engine) Flush() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.flushLocked()
}

// Disconnect discards any accumulated partial batch and freezes the
// engine on the last published snapshot. The error surfaces through
// Disconnected(), never through grid data.
func (e *Engine) Disconnect(err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.disconnected {
		return
	}
	e.disconnected = true
	if e.accumulating {
		log.Printf("Engine: discarding partial batch on disconnect: %v", err)
		e.accumulating = false
	}
	select {
	case e.disconnectCh <- err:
	default:
	}
}

// NoteInput records local typing so the cursor never blinks out under
// the user's fingers.
func (e *Engine) NoteInput() {
	e.mu.Lock()
	e.cursor.InputReceived(e.now())
	e.mu.Unlock()
}

// SetFocus records window focus transitions for cursor presentation.
func (e *Engine) SetFocus(focused bool) {
	e.mu.Lock()
	e.cursor.SetFocus(focused, e.now())
	e.mu.Unlock()
}

// CursorNow evaluates the live cursor presentation between publishes.
// Position, shape and attribute come from the published snapshot, never
// the working state, so a half-applied batch stays invisible; only the
// time-driven parts (blink visibility, focus outline) are recomputed.
func (e *Engine) CursorNow() cursor.Presentation {
	e.mu.Lock()
	defer e.mu.Unlock()
	p := e.published.Cursor
	live := e.cursor.Tick(e.now())
	p.Visible = live.Visible
	p.Outline = live.Outline
	return p
}

// flushLocked publishes a deep copy of the working state. A flush with
// nothing accumulated is a harmless no-op.
func (e *Engine) flushLocked() {
	if !e.accumulating {
		return
	}
	e.accumulating = false
	e.seq++

	placed := e.grids.VisibleGrids()
	views := make([]GridView, 0, len(placed))
	for _, p := range placed {
		w, h := p.Grid.Size()
		view := GridView{
			ID:     p.Grid.ID(),
			Row:    p.Row,
			Col:    p.Col,
			Width:  w,
			Height: h,
			ZIndex: p.ZIndex,
			Cells:  p.Grid.CopyRows(),
		}
		if hint := p.Grid.LastScroll(); hint != nil {
			dup := *hint
			view.Scroll = &dup
			p.Grid.ClearScrollHint()
		}
		views = append(views, view)
	}

	snap := &Snapshot{
		Seq:    e.seq,
		Grids:  views,
		Cursor: e.cursor.Tick(e.now()),
		styles: e.hl.Clone(),
	}
	if primary, ok := e.grids.Primary(); ok {
		snap.Cols, snap.Rows = primary.Size()
	}
	clampToSnapshot(&snap.Cursor, snap)

	e.published = snap
	select {
	case e.publishCh <- struct{}{}:
	default:
	}
}

// clampToSnapshot keeps the cursor inside the bounds of its grid; if the
// grid is not part of the composition, it falls back to the primary grid.
func clampToSnapshot(p *cursor.Presentation, snap *Snapshot) {
	view, ok := snap.GridByID(p.Grid)
	if !ok {
		view, ok = snap.GridByID(grid.PrimaryGrid)
		if !ok {
			p.Row, p.Col = 0, 0
			return
		}
		p.Grid = view.ID
	}
	if p.Row >= view.Height {
		p.Row = view.Height - 1
	}
	if p.Row < 0 {
		p.Row = 0
	}
	if p.Col >= view.Width {
		p.Col = view.Width - 1
	}
	if p.Col < 0 {
		p.Col = 0
	}
}
