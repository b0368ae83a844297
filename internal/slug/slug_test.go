// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package slug

import "testing"

func TestDerive(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "Go", "go"},
		{"spaces become hyphens", "Hello World", "hello-world"},
		{"punctuation stripped", "Hello World!", "hello-world"},
		{"mixed case and digits", "Web Dev 101", "web-dev-101"},
		{"existing hyphens kept", "already-sluggish", "already-sluggish"},
		{"tabs and newlines", "a\tb\nc", "a-b-c"},
		{"unicode stripped", "Café", "caf"},
		{"only punctuation is empty", "!!!", ""},
		{"empty input", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Derive(tt.in); got != tt.want {
				t.Errorf("Derive(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
