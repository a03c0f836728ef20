// Copyright © 2026 Texelvim contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/defaults.go
// Summary: Default values for the texelvim configuration file.

package config

func applySystemDefaults(cfg Config) {
	if cfg == nil {
		return
	}
	cfg.RegisterDefaults("nvim", Section{
		"command": "nvim",
		"args":    []interface{}{},
	})
	cfg.RegisterDefaults("cursor", Section{
		// Fallback blink timing for editors that send no mode info.
		"blink_on_ms":   400,
		"blink_off_ms":  250,
		"blink_wait_ms": 700,
	})
	cfg.RegisterDefaults("session", Section{
		"remember":     true,
		"recent_limit": 10,
	})
}
