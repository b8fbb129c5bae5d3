package highlight

import (
	"strings"
	"testing"
)

func TestHighlighter_Language(t *testing.T) {
	h := New("")

	tests := []struct {
		title string
		want  string
	}{
		{"debounce.js", "JavaScript"},
		{"reset.css", "CSS"},
		{"index.html", "HTML"},
		{"main.go", "Go"},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			if got := h.Language(tt.title, ""); got != tt.want {
				t.Errorf("Language(%q) = %q, want %q", tt.title, got, tt.want)
			}
		})
	}
}

func TestHighlighter_CodeAddsEscapes(t *testing.T) {
	h := New("monokai")

	got, err := h.Code("main.go", "package main\n\nfunc main() {}\n")
	if err != nil {
		t.Fatalf("Code failed: %v", err)
	}
	if !strings.Contains(got, "\x1b[") {
		t.Errorf("expected ANSI escapes in output, got %q", got)
	}
	if !strings.Contains(got, "package") {
		t.Errorf("expected source text to survive, got %q", got)
	}
}

func TestHighlighter_EmptyCode(t *testing.T) {
	got, err := New("no-such-style").Code("x.js", "")
	if err != nil {
		t.Fatalf("Code failed: %v", err)
	}
	if got != "" {
		t.Errorf("expected empty output, got %q", got)
	}
}
