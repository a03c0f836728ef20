// Copyright © 2026 Texelvim contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: protocol/decode.go
// Summary: Decodes raw msgpack-decoded redraw payloads into typed events.
// Notes: Unknown event names are skipped; malformed arguments for a known
// name are a protocol error and abort the connection.

package protocol

import (
	"errors"
	"fmt"
	"log"
)

// ErrMalformed wraps every shape violation found while decoding a known
// event. Callers treat it as fatal to the connection, never to the engine.
var ErrMalformed = errors.New("protocol: malformed notification")

// ParseBatch decodes one "redraw" notification payload. Each entry is an
// array of the form [name, args, args, ...] where a single entry can carry
// several instances of the same event.
func ParseBatch(entries []interface{}) ([]Event, error) {
	events := make([]Event, 0, len(entries))
	for _, raw := range entries {
		entry, ok := raw.([]interface{})
		if !ok || len(entry) == 0 {
			return nil, fmt.Errorf("%w: redraw entry is not a non-empty array", ErrMalformed)
		}
		name, ok := entry[0].(string)
		if !ok {
			return nil, fmt.Errorf("%w: redraw entry name is not a string", ErrMalformed)
		}
		for _, rawArgs := range entry[1:] {
			args, ok := rawArgs.([]interface{})
			if !ok {
				return nil, fmt.Errorf("%w: %s args are not an array", ErrMalformed, name)
			}
			ev, err := parseEvent(name, args)
			if err != nil {
				return nil, err
			}
			if ev != nil {
				events = append(events, ev)
			}
		}
	}
	return events, nil
}

func parseEvent(name string, args []interface{}) (Event, error) {
	switch name {
	case "grid_resize":
		v, err := ints(name, args, 3)
		if err != nil {
			return nil, err
		}
		return GridResize{Grid: v[0], Width: v[1], Height: v[2]}, nil
	case "grid_line":
		return parseGridLine(args)
	case "grid_clear":
		v, err := ints(name, args, 1)
		if err != nil {
			return nil, err
		}
		return GridClear{Grid: v[0]}, nil
	case "grid_destroy":
		v, err := ints(name, args, 1)
		if err != nil {
			return nil, err
		}
		return GridDestroy{Grid: v[0]}, nil
	case "grid_cursor_goto":
		v, err := ints(name, args, 3)
		if err != nil {
			return nil, err
		}
		return GridCursorGoto{Grid: v[0], Row: v[1], Col: v[2]}, nil
	case "grid_scroll":
		v, err := ints(name, args, 7)
		if err != nil {
			return nil, err
		}
		return GridScroll{Grid: v[0], Top: v[1], Bottom: v[2], Left: v[3], Right: v[4], Rows: v[5], Cols: v[6]}, nil
	case "hl_attr_define":
		return parseHlAttrDefine(args)
	case "hl_group_set":
		if len(args) < 2 {
			return nil, argCountErr(name, args)
		}
		groupName, err := asString(name, args[0])
		if err != nil {
			return nil, err
		}
		id, err := asInt(name, args[1])
		if err != nil {
			return nil, err
		}
		return HlGroupSet{Name: groupName, ID: id}, nil
	case "default_colors_set":
		if len(args) < 3 {
			return nil, argCountErr(name, args)
		}
		fg, err := asColor(name, args[0])
		if err != nil {
			return nil, err
		}
		bg, err := asColor(name, args[1])
		if err != nil {
			return nil, err
		}
		sp, err := asColor(name, args[2])
		if err != nil {
			return nil, err
		}
		return DefaultColorsSet{Foreground: fg, Background: bg, Special: sp}, nil
	case "mode_info_set":
		return parseModeInfoSet(args)
	case "mode_change":
		if len(args) < 2 {
			return nil, argCountErr(name, args)
		}
		modeName, err := asString(name, args[0])
		if err != nil {
			return nil, err
		}
		idx, err := asInt(name, args[1])
		if err != nil {
			return nil, err
		}
		return ModeChange{Name: modeName, Index: idx}, nil
	case "win_pos":
		if len(args) < 6 {
			return nil, argCountErr(name, args)
		}
		v, err := ints(name, args, 1)
		if err != nil {
			return nil, err
		}
		// args[1] is the window handle (msgpack ext); composition only
		// needs the grid id and geometry.
		geo, err := ints(name, args[2:6], 4)
		if err != nil {
			return nil, err
		}
		return WinPos{Grid: v[0], Row: geo[0], Col: geo[1], Width: geo[2], Height: geo[3]}, nil
	case "win_float_pos":
		return parseWinFloatPos(args)
	case "win_hide":
		v, err := ints(name, args, 1)
		if err != nil {
			return nil, err
		}
		return WinHide{Grid: v[0]}, nil
	case "win_close":
		v, err := ints(name, args, 1)
		if err != nil {
			return nil, err
		}
		return WinClose{Grid: v[0]}, nil
	case "busy_start":
		return BusyStart{}, nil
	case "busy_stop":
		return BusyStop{}, nil
	case "flush":
		return Flush{}, nil
	case "option_set":
		if len(args) < 2 {
			return nil, argCountErr(name, args)
		}
		optName, err := asString(name, args[0])
		if err != nil {
			return nil, err
		}
		return OptionSet{Name: optName, Value: args[1]}, nil
	default:
		// The UI protocol grows options and chrome events we do not
		// consume (tabline, popupmenu, cmdline, viewport hints).
		log.Printf("Protocol: skipping unhandled redraw event %q", name)
		return nil, nil
	}
}

func parseGridLine(args []interface{}) (Event, error) {
	const name = "grid_line"
	if len(args) < 4 {
		return nil, argCountErr(name, args)
	}
	head, err := ints(name, args[:3], 3)
	if err != nil {
		return nil, err
	}
	rawCells, ok := args[3].([]interface{})
	if !ok {
		return nil, fmt.Errorf("%w: grid_line cells are not an array", ErrMalformed)
	}
	cells := make([]LineCell, 0, len(rawCells))
	// A cell without an explicit hl id inherits the previous cell's id,
	// resolved here so downstream code never sees the shorthand.
	lastHl := 0
	for _, rawCell := range rawCells {
		fields, ok := rawCell.([]interface{})
		if !ok || len(fields) == 0 || len(fields) > 3 {
			return nil, fmt.Errorf("%w: grid_line cell has %d fields", ErrMalformed, len(fields))
		}
		text, err := asString(name, fields[0])
		if err != nil {
			return nil, err
		}
		cell := LineCell{Text: text, HlID: lastHl, Repeat: 1}
		if len(fields) > 1 {
			hl, err := asInt(name, fields[1])
			if err != nil {
				return nil, err
			}
			cell.HlID = hl
			lastHl = hl
		}
		if len(fields) > 2 {
			repeat, err := asInt(name, fields[2])
			if err != nil {
				return nil, err
			}
			if repeat > 0 {
				cell.Repeat = repeat
			}
		}
		cells = append(cells, cell)
	}
	return GridLine{Grid: head[0], Row: head[1], ColStart: head[2], Cells: cells}, nil
}

func parseHlAttrDefine(args []interface{}) (Event, error) {
	const name = "hl_attr_define"
	if len(args) < 2 {
		return nil, argCountErr(name, args)
	}
	id, err := asInt(name, args[0])
	if err != nil {
		return nil, err
	}
	rgb, err := asMap(name, args[1])
	if err != nil {
		return nil, err
	}
	attr := HlAttr{Foreground: -1, Background: -1, Special: -1}
	for key, value := range rgb {
		switch key {
		case "foreground":
			if attr.Foreground, err = asColor(name, value); err != nil {
				return nil, err
			}
		case "background":
			if attr.Background, err = asColor(name, value); err != nil {
				return nil, err
			}
		case "special":
			if attr.Special, err = asColor(name, value); err != nil {
				return nil, err
			}
		case "reverse":
			attr.Reverse, _ = value.(bool)
		case "standout":
			attr.Standout, _ = value.(bool)
		case "bold":
			attr.Bold, _ = value.(bool)
		case "italic":
			attr.Italic, _ = value.(bool)
		case "strikethrough":
			attr.Strikethrough, _ = value.(bool)
		case "underline":
			attr.Underline, _ = value.(bool)
		case "undercurl":
			attr.Undercurl, _ = value.(bool)
		case "underdouble":
			attr.Underdouble, _ = value.(bool)
		case "underdotted":
			attr.Underdotted, _ = value.(bool)
		case "underdashed":
			attr.Underdashed, _ = value.(bool)
		case "blend":
			if attr.Blend, err = asInt(name, value); err != nil {
				return nil, err
			}
		}
	}
	return HlAttrDefine{ID: id, Attr: attr}, nil
}

func parseModeInfoSet(args []interface{}) (Event, error) {
	const name = "mode_info_set"
	if len(args) < 2 {
		return nil, argCountErr(name, args)
	}
	enabled, ok := args[0].(bool)
	if !ok {
		return nil, fmt.Errorf("%w: mode_info_set enabled flag is not a bool", ErrMalformed)
	}
	rawModes, ok := args[1].([]interface{})
	if !ok {
		return nil, fmt.Errorf("%w: mode_info_set modes are not an array", ErrMalformed)
	}
	modes := make([]ModeInfo, 0, len(rawModes))
	for _, rawMode := range rawModes {
		m, err := asMap(name, rawMode)
		if err != nil {
			return nil, err
		}
		info := ModeInfo{Shape: CursorShapeBlock, CellPercentage: 100}
		for key, value := range m {
			switch key {
			case "name":
				info.Name, _ = value.(string)
			case "short_name":
				info.ShortName, _ = value.(string)
			case "cursor_shape":
				shape, _ := value.(string)
				switch shape {
				case "horizontal":
					info.Shape = CursorShapeHorizontal
				case "vertical":
					info.Shape = CursorShapeVertical
				default:
					info.Shape = CursorShapeBlock
				}
			case "cell_percentage":
				if info.CellPercentage, err = asInt(name, value); err != nil {
					return nil, err
				}
			case "blinkwait":
				if info.BlinkWaitMs, err = asInt(name, value); err != nil {
					return nil, err
				}
			case "blinkon":
				if info.BlinkOnMs, err = asInt(name, value); err != nil {
					return nil, err
				}
			case "blinkoff":
				if info.BlinkOffMs, err = asInt(name, value); err != nil {
					return nil, err
				}
			case "attr_id":
				if info.AttrID, err = asInt(name, value); err != nil {
					return nil, err
				}
			}
		}
		modes = append(modes, info)
	}
	return ModeInfoSet{CursorStyleEnabled: enabled, Modes: modes}, nil
}

func parseWinFloatPos(args []interface{}) (Event, error) {
	const name = "win_float_pos"
	if len(args) < 7 {
		return nil, argCountErr(name, args)
	}
	grid, err := asInt(name, args[0])
	if err != nil {
		return nil, err
	}
	// args[1] is the window handle.
	anchor, err := asString(name, args[2])
	if err != nil {
		return nil, err
	}
	anchorGrid, err := asInt(name, args[3])
	if err != nil {
		return nil, err
	}
	anchorRow, err := asFloat(name, args[4])
	if err != nil {
		return nil, err
	}
	anchorCol, err := asFloat(name, args[5])
	if err != nil {
		return nil, err
	}
	focusable, _ := args[6].(bool)
	ev := WinFloatPos{
		Grid:       grid,
		Anchor:     anchor,
		AnchorGrid: anchorGrid,
		AnchorRow:  anchorRow,
		AnchorCol:  anchorCol,
		Focusable:  focusable,
		ZIndex:     50,
	}
	if len(args) > 7 {
		if z, err := asInt(name, args[7]); err == nil {
			ev.ZIndex = z
		}
	}
	return ev, nil
}

func ints(name string, args []interface{}, want int) ([]int, error) {
	if len(args) < want {
		return nil, argCountErr(name, args)
	}
	out := make([]int, want)
	for i := 0; i < want; i++ {
		v, err := asInt(name, args[i])
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func argCountErr(name string, args []interface{}) error {
	return fmt.Errorf("%w: %s got %d args", ErrMalformed, name, len(args))
}

func asInt(name string, v interface{}) (int, error) {
	switch n := v.(type) {
	case int64:
		return int(n), nil
	case uint64:
		return int(n), nil
	case int:
		return n, nil
	case int32:
		return int(n), nil
	case uint32:
		return int(n), nil
	case int16:
		return int(n), nil
	case uint16:
		return int(n), nil
	case int8:
		return int(n), nil
	case uint8:
		return int(n), nil
	case float64:
		return int(n), nil
	}
	return 0, fmt.Errorf("%w: %s expected integer, got %T", ErrMalformed, name, v)
}

// asColor accepts an integer RGB value, mapping the protocol's -1 "unset"
// marker through unchanged.
func asColor(name string, v interface{}) (int64, error) {
	n, err := asInt(name, v)
	if err != nil {
		return 0, err
	}
	return int64(n), nil
}

func asFloat(name string, v interface{}) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	}
	if i, err := asInt(name, v); err == nil {
		return float64(i), nil
	}
	return 0, fmt.Errorf("%w: %s expected number, got %T", ErrMalformed, name, v)
}

func asString(name string, v interface{}) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s expected string, got %T", ErrMalformed, name, v)
	}
	return s, nil
}

func asMap(name string, v interface{}) (map[string]interface{}, error) {
	m, ok := v.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("%w: %s expected map, got %T", ErrMalformed, name, v)
	}
	return m, nil
}
