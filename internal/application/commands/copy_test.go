package commands

import (
	"context"
	"errors"
	"testing"

	"fragments/internal/application"
	"fragments/internal/domain"
)

func TestCopyFragmentCommand(t *testing.T) {
	store := newMemStore()
	f, _ := store.SaveFragment(domain.Fragment{Title: "snippet", Code: "echo hi"})
	clip := &fakeClipboard{}
	ctx := context.Background()

	result, err := NewCopyFragmentCommand(store, clip, f.ID).Execute(ctx)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if clip.text != "echo hi" {
		t.Errorf("expected clipboard to hold code, got %q", clip.text)
	}
	if result.Bytes != len("echo hi") {
		t.Errorf("unexpected byte count %d", result.Bytes)
	}

	if _, err := NewCopyFragmentCommand(store, clip, "missing").Execute(ctx); !errors.Is(err, application.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestCopyFragmentCommand_ClipboardFailure(t *testing.T) {
	store := newMemStore()
	f, _ := store.SaveFragment(domain.Fragment{Title: "snippet", Code: "x"})
	clip := &fakeClipboard{err: errors.New("no display")}

	_, err := NewCopyFragmentCommand(store, clip, f.ID).Execute(context.Background())
	if err == nil || !contains(err.Error(), "no display") {
		t.Errorf("expected clipboard error, got %v", err)
	}
}

func TestCopyFragmentCommand_NoClipboard(t *testing.T) {
	err := NewCopyFragmentCommand(newMemStore(), nil, "x").Validate()
	if !errors.Is(err, application.ErrInvalidOperation) {
		t.Errorf("expected ErrInvalidOperation, got %v", err)
	}
}
