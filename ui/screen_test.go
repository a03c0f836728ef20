// Copyright © 2026 Texelvim contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: ui/screen_test.go
// Summary: Checks mouse event translation into editor pointer requests.

package ui

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelvim/engine"
	"github.com/framegrace/texelvim/protocol"
)

type recordingTransport struct {
	mouse []protocol.MouseInput
}

func (r *recordingTransport) SendKeys(protocol.KeyInput) error    { return nil }
func (r *recordingTransport) SendFocus(protocol.FocusInput) error { return nil }
func (r *recordingTransport) SendMouse(req protocol.MouseInput) error {
	r.mouse = append(r.mouse, req)
	return nil
}

func newMouseUI(t *testing.T) (*UI, *recordingTransport) {
	t.Helper()
	eng := engine.New()
	eng.Apply(protocol.GridResize{Grid: 1, Width: 20, Height: 6})
	eng.Apply(protocol.Flush{})
	rec := &recordingTransport{}
	return &UI{eng: eng, transport: rec}, rec
}

func TestWheelDirectionsMapToActions(t *testing.T) {
	u, rec := newMouseUI(t)

	cases := []struct {
		mask tcell.ButtonMask
		want string
	}{
		{tcell.WheelUp, protocol.MouseActionUp},
		{tcell.WheelDown, protocol.MouseActionDown},
		{tcell.WheelLeft, protocol.MouseActionLeft},
		{tcell.WheelRight, protocol.MouseActionRight},
	}
	for i, tc := range cases {
		u.handleMouse(tcell.NewEventMouse(4, 2, tc.mask, tcell.ModNone))
		if len(rec.mouse) != i+1 {
			t.Fatalf("wheel %v: no request sent", tc.mask)
		}
		got := rec.mouse[i]
		if got.Button != "wheel" || got.Action != tc.want {
			t.Fatalf("wheel %v: sent %s/%s, want wheel/%s", tc.mask, got.Button, got.Action, tc.want)
		}
	}
}

func TestButtonPressDragRelease(t *testing.T) {
	u, rec := newMouseUI(t)

	u.handleMouse(tcell.NewEventMouse(4, 2, tcell.Button1, tcell.ModNone))
	u.handleMouse(tcell.NewEventMouse(5, 2, tcell.Button1, tcell.ModNone))
	u.handleMouse(tcell.NewEventMouse(5, 2, tcell.ButtonNone, tcell.ModNone))

	if len(rec.mouse) != 3 {
		t.Fatalf("sent %d requests, want 3", len(rec.mouse))
	}
	wantActions := []string{protocol.MouseActionPress, protocol.MouseActionDrag, protocol.MouseActionRelease}
	for i, want := range wantActions {
		if rec.mouse[i].Button != "left" || rec.mouse[i].Action != want {
			t.Fatalf("request %d: %s/%s, want left/%s", i, rec.mouse[i].Button, rec.mouse[i].Action, want)
		}
	}
	if rec.mouse[0].Grid != 1 || rec.mouse[0].Row != 2 || rec.mouse[0].Col != 4 {
		t.Fatalf("press coordinates: %+v", rec.mouse[0])
	}
}
