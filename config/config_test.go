// Copyright © 2026 Texelvim contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/config_test.go
// Summary: Exercises defaults and typed getters of the config store.

package config

import "testing"

func TestDefaultsApplied(t *testing.T) {
	SetSystem(make(Config))
	cfg := System()
	if got := cfg.GetString("nvim", "command", ""); got != "nvim" {
		t.Fatalf("nvim command default %q", got)
	}
	if got := cfg.GetInt("cursor", "blink_on_ms", 0); got != 400 {
		t.Fatalf("blink_on_ms default %d", got)
	}
	if !cfg.GetBool("session", "remember", false) {
		t.Fatal("session remember default should be true")
	}
}

func TestDefaultsDoNotOverwrite(t *testing.T) {
	SetSystem(Config{
		"nvim": map[string]interface{}{"command": "/opt/nvim/bin/nvim"},
	})
	cfg := System()
	if got := cfg.GetString("nvim", "command", ""); got != "/opt/nvim/bin/nvim" {
		t.Fatalf("user value overwritten: %q", got)
	}
}

func TestTypedGetterCoercion(t *testing.T) {
	SetSystem(Config{
		"cursor": map[string]interface{}{
			"blink_on_ms": float64(120), // JSON numbers decode as float64
		},
		"session": map[string]interface{}{
			"remember": "false",
		},
	})
	cfg := System()
	if got := cfg.GetInt("cursor", "blink_on_ms", 0); got != 120 {
		t.Fatalf("float coercion %d", got)
	}
	if cfg.GetBool("session", "remember", true) {
		t.Fatal("string bool coercion failed")
	}
}

func TestMissingSectionFallsBack(t *testing.T) {
	SetSystem(make(Config))
	cfg := System()
	if got := cfg.GetString("absent", "key", "fallback"); got != "fallback" {
		t.Fatalf("fallback %q", got)
	}
}
