package main

import (
	"os"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

// testLogger returns a logger that discards everything.
func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

// chdir changes the working directory to dir for the duration of the test,
// restoring the previous directory on cleanup (equivalent to t.Chdir).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Errorf("restore working directory: %v", err)
		}
	})
}

// stripANSI removes ANSI escape sequences from a string.
// Handles CSI sequences (ESC [ ... letter) and OSC/private sequences (ESC ] ... BEL).
func stripANSI(s string) string {
	var b strings.Builder
	i := 0
	for i < len(s) {
		if s[i] != '\x1b' || i+1 >= len(s) {
			b.WriteByte(s[i])
			i++
			continue
		}
		switch s[i+1] {
		case '[':
			j := i + 2
			for j < len(s) && (s[j] < '@' || s[j] > '~') {
				j++
			}
			i = j + 1
		case ']':
			j := i + 2
			for j < len(s) && s[j] != '\a' {
				j++
			}
			i = j + 1
		default:
			i += 2
		}
	}
	return b.String()
}

func TestStripANSI(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain", input: "Alice", want: "Alice"},
		{name: "color", input: "\x1b[1;38;5;12mAlice\x1b[0m", want: "Alice"},
		{name: "cursor move", input: "\x1b[2JContact List\x1b[H", want: "Contact List"},
		{name: "osc title", input: "\x1b]0;contacts\aBob", want: "Bob"},
		{name: "private mode", input: "\x1b[?25lCarol\x1b[?25h", want: "Carol"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripANSI(tt.input); got != tt.want {
				t.Errorf("stripANSI(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
