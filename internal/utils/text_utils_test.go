package utils

import (
	"strings"
	"testing"
	"unicode/utf8"

	"go.uber.org/zap"
)

func TestTruncateText(t *testing.T) {
	tp := NewTextProcessor(zap.NewNop())

	if got := tp.TruncateText("short", 100); got != "short" {
		t.Errorf("TruncateText returned %q for text within limit", got)
	}
	if got := tp.TruncateText("unbounded", 0); got != "unbounded" {
		t.Errorf("zero limit must disable truncation, got %q", got)
	}

	got := tp.TruncateText(strings.Repeat("a", 100), 10)
	if len(got) != 10 {
		t.Errorf("truncated length = %d, want 10", len(got))
	}

	// Truncation must not split a multi-byte rune.
	got = tp.TruncateText(strings.Repeat("é", 50), 7)
	if !utf8.ValidString(got) {
		t.Errorf("truncated text is not valid UTF-8: %q", got)
	}
}

func TestPreview(t *testing.T) {
	tp := NewTextProcessor(zap.NewNop())

	tests := []struct {
		name string
		text string
		max  int
		want string
	}{
		{"short text unchanged", "hello world", 40, "hello world"},
		{"newlines collapsed", "line one\nline two\r\n\tline three", 80, "line one line two line three"},
		{"truncation marked", "abcdefghij", 5, "abcde..."},
		{"no limit", "abcdefghij", 0, "abcdefghij"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tp.Preview(tt.text, tt.max); got != tt.want {
				t.Errorf("Preview(%q, %d) = %q, want %q", tt.text, tt.max, got, tt.want)
			}
		})
	}
}
