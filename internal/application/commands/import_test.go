package commands

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestImportFileCommand(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hello.js")
	if err := os.WriteFile(path, []byte("console.log('hi')\n"), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	store := newMemStore()
	cmd := NewImportFileCommand(store, path)
	cmd.TagNames = []string{"js"}

	result, err := cmd.Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if result.Fragment.Title != "hello.js" {
		t.Errorf("expected title from file name, got %q", result.Fragment.Title)
	}
	if result.Fragment.Code != "console.log('hi')\n" {
		t.Errorf("unexpected code %q", result.Fragment.Code)
	}
	if len(result.CreatedTags) != 1 {
		t.Errorf("expected js tag to be created, got %+v", result.CreatedTags)
	}
}

func TestImportFileCommand_Rejects(t *testing.T) {
	dir := t.TempDir()

	binary := filepath.Join(dir, "blob.bin")
	if err := os.WriteFile(binary, []byte{0x7f, 'E', 'L', 'F', 0, 0, 1}, 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	large := filepath.Join(dir, "large.txt")
	if err := os.WriteFile(large, make([]byte, MaxImportSize+1), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	tests := []struct {
		name   string
		path   string
		errMsg string
	}{
		{"empty path", "", "file path is required"},
		{"missing file", filepath.Join(dir, "nope.txt"), "no such file"},
		{"directory", dir, "is a directory"},
		{"binary", binary, "does not look like a text file"},
		{"too large", large, "too large"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemStore()
			_, err := NewImportFileCommand(store, tt.path).Execute(context.Background())
			if err == nil || !contains(err.Error(), tt.errMsg) {
				t.Errorf("expected error containing %q, got %v", tt.errMsg, err)
			}
			if len(store.doc.Fragments) != 0 {
				t.Error("rejected import still stored a fragment")
			}
		})
	}
}

func TestIsText(t *testing.T) {
	tests := []struct {
		data []byte
		want bool
	}{
		{[]byte("plain"), true},
		{[]byte("héllo 世界"), true},
		{[]byte{}, true},
		{[]byte{'a', 0, 'b'}, false},
		{[]byte{0xff, 0xfe}, false},
	}
	for _, tt := range tests {
		if got := IsText(tt.data); got != tt.want {
			t.Errorf("IsText(%q) = %v, want %v", tt.data, got, tt.want)
		}
	}
}
