// Copyright © 2026 Texelvim contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: engine/resize.go
// Summary: Negotiates grid size with the editor: local intents are
// coalesced, the editor's acknowledged size is always ground truth.

package engine

import (
	"log"
	"sync"

	"github.com/framegrace/texelvim/protocol"
)

// ResizeSender hands a logical resize request to the transport.
type ResizeSender interface {
	SendResize(req protocol.ResizeRequest) error
}

// Negotiator tracks the last size requested against the last size
// acknowledged. At most one request is outstanding; while it is, later
// targets overwrite a single pending slot. The event loop calls Pump
// after draining its queue, which is what coalesces a burst of resize
// events from an interactive window drag into one outbound request.
type Negotiator struct {
	mu     sync.Mutex
	sender ResizeSender

	pending  *protocol.ResizeRequest
	inflight *protocol.ResizeRequest
	acked    *protocol.ResizeRequest
}

// NewNegotiator wires a negotiator to its transport.
func NewNegotiator(sender ResizeSender) *Negotiator {
	return &Negotiator{sender: sender}
}

// RequestResize records a local resize intent. Nothing is sent until the
// next Pump; a newer intent supersedes an unsent one.
func (n *Negotiator) RequestResize(cols, rows int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	target := protocol.ResizeRequest{Cols: cols, Rows: rows}
	if n.satisfiedLocked(target) {
		return
	}
	n.pending = &target
}

// Pump sends the pending intent if no request is outstanding.
func (n *Negotiator) Pump() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.pumpLocked()
}

// Acknowledge records the authoritative size from a primary grid resize.
// It completes the outstanding request whether the editor adopted the
// requested size or clamped to its own minimums; the editor's answer is
// never re-contested, which is what breaks the resize feedback loop.
func (n *Negotiator) Acknowledge(cols, rows int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	size := protocol.ResizeRequest{Cols: cols, Rows: rows}
	if n.inflight != nil && *n.inflight != size {
		log.Printf("Resize: editor chose %dx%d over requested %dx%d", cols, rows, n.inflight.Cols, n.inflight.Rows)
	}
	n.acked = &size
	n.inflight = nil
	if n.pending != nil && *n.pending == size {
		n.pending = nil
	}
	n.pumpLocked()
}

// Acked reports the last authoritative size, if any arrived yet.
func (n *Negotiator) Acked() (protocol.ResizeRequest, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.acked == nil {
		return protocol.ResizeRequest{}, false
	}
	return *n.acked, true
}

func (n *Negotiator) pumpLocked() {
	if n.inflight != nil || n.pending == nil {
		return
	}
	req := *n.pending
	n.pending = nil
	n.inflight = &req
	if err := n.sender.SendResize(req); err != nil {
		log.Printf("Resize: send failed: %v", err)
		n.inflight = nil
	}
}

// satisfiedLocked drops intents that cannot change anything: the target
// already matches the acknowledged size (and nothing else is in motion),
// or matches what is already queued or outstanding.
func (n *Negotiator) satisfiedLocked(target protocol.ResizeRequest) bool {
	if n.inflight != nil && *n.inflight == target {
		return true
	}
	if n.pending != nil && *n.pending == target {
		return true
	}
	if n.inflight == nil && n.pending == nil && n.acked != nil && *n.acked == target {
		return true
	}
	return false
}
