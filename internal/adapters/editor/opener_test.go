package editor

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func fakeEnv(vars map[string]string) func(string) string {
	return func(key string) string { return vars[key] }
}

func TestOpener_CommandUsesEditorWithFlags(t *testing.T) {
	o := &Opener{lookup: fakeEnv(map[string]string{"EDITOR": "code --wait"})}

	cmd, err := o.Command("/tmp/x.js")
	if err != nil {
		t.Fatalf("Command failed: %v", err)
	}
	got := strings.Join(cmd.Args, " ")
	if got != "code --wait /tmp/x.js" {
		t.Errorf("unexpected args %q", got)
	}
}

func TestOpener_VisualFallback(t *testing.T) {
	o := &Opener{lookup: fakeEnv(map[string]string{"VISUAL": "emacs"})}

	cmd, err := o.Command("f.txt")
	if err != nil {
		t.Fatalf("Command failed: %v", err)
	}
	if cmd.Args[0] != "emacs" {
		t.Errorf("expected emacs, got %v", cmd.Args)
	}
	if !o.Available() {
		t.Error("expected editor to be available")
	}
}

func TestScratch_RoundTrip(t *testing.T) {
	s, err := NewScratch("package main\n", ".go")
	if err != nil {
		t.Fatalf("NewScratch failed: %v", err)
	}
	defer s.Remove()

	if filepath.Ext(s.Path) != ".go" {
		t.Errorf("expected .go suffix, got %s", s.Path)
	}

	if err := os.WriteFile(s.Path, []byte("package edited\n"), 0o600); err != nil {
		t.Fatalf("simulated edit failed: %v", err)
	}
	got, err := s.Read()
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if got != "package edited\n" {
		t.Errorf("unexpected content %q", got)
	}

	if err := s.Remove(); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if err := s.Remove(); err != nil {
		t.Errorf("second Remove should be a no-op, got %v", err)
	}
}
