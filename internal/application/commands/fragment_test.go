package commands

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"

	"fragments/internal/application"
	"fragments/internal/domain"
)

func TestSaveFragmentCommand_Validate(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		tagIDs  []string
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid fragment",
			title:   "hello",
			wantErr: false,
		},
		{
			name:    "empty title",
			title:   "",
			wantErr: true,
			errMsg:  "title is required",
		},
		{
			name:    "whitespace title",
			title:   "   ",
			wantErr: true,
			errMsg:  "title is required",
		},
		{
			name:    "title too long",
			title:   strings.Repeat("x", maxTitleLength+1),
			wantErr: true,
			errMsg:  "too long",
		},
		{
			name:    "blank tag id",
			title:   "ok",
			tagIDs:  []string{"t1", " "},
			wantErr: true,
			errMsg:  "tag IDs cannot be blank",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &SaveFragmentCommand{Title: tt.title, TagIDs: tt.tagIDs}
			err := cmd.Validate()

			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error containing %q, got nil", tt.errMsg)
					return
				}
				if !contains(err.Error(), tt.errMsg) {
					t.Errorf("expected error containing %q, got %q", tt.errMsg, err.Error())
				}
			} else {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
			}
		})
	}
}

func TestSaveFragmentCommand_CreateWithTagNames(t *testing.T) {
	store := newMemStore()
	existing, _ := store.SaveTag(domain.Tag{Name: "JavaScript"})
	ctx := context.Background()

	result, err := NewSaveFragmentCommand(store, "", "  hi  ", "console.log(1)").
		WithTagNames([]string{"javascript", "node", ""}).
		Execute(ctx)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if !result.Created {
		t.Error("expected Created to be true")
	}
	if result.Fragment.Title != "hi" {
		t.Errorf("expected trimmed title, got %q", result.Fragment.Title)
	}
	if len(result.CreatedTags) != 1 || result.CreatedTags[0].Name != "node" {
		t.Errorf("expected node to be created, got %+v", result.CreatedTags)
	}
	want := []string{existing.ID, result.CreatedTags[0].ID}
	if !slices.Equal(result.Fragment.Tags, want) {
		t.Errorf("expected tags %v, got %v", want, result.Fragment.Tags)
	}
	if result.Message != "Created fragment: hi" {
		t.Errorf("unexpected message %q", result.Message)
	}
}

func TestSaveFragmentCommand_Update(t *testing.T) {
	store := newMemStore()
	ctx := context.Background()

	created, err := NewSaveFragmentCommand(store, "", "v1", "a").Execute(ctx)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	updated, err := NewSaveFragmentCommand(store, created.Fragment.ID, "v2", "b").
		WithTagIDs([]string{"stale"}).
		Execute(ctx)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Created {
		t.Error("expected Created to be false on update")
	}
	if !strings.HasPrefix(updated.Message, "Updated") {
		t.Errorf("unexpected message %q", updated.Message)
	}

	fragments, _ := store.ListFragments()
	if len(fragments) != 1 || fragments[0].Title != "v2" || fragments[0].Tags[0] != "stale" {
		t.Errorf("unexpected fragments %+v", fragments)
	}
}

func TestSaveFragmentCommand_PropagatesNotFound(t *testing.T) {
	store := newMemStore()

	_, err := NewSaveFragmentCommand(store, "ghost", "x", "").Execute(context.Background())
	if !errors.Is(err, application.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSaveFragmentCommand_StorageError(t *testing.T) {
	store := newMemStore()
	store.saveErr = &application.StorageWriteError{Path: "f.json", Err: errDisk}

	_, err := NewSaveFragmentCommand(store, "", "x", "").Execute(context.Background())
	if !errors.Is(err, application.ErrStorageUnavailable) {
		t.Errorf("expected ErrStorageUnavailable, got %v", err)
	}
}

func TestDeleteFragmentCommand(t *testing.T) {
	store := newMemStore()
	ctx := context.Background()
	f, _ := store.SaveFragment(domain.Fragment{Title: "bye"})

	if _, err := NewDeleteFragmentCommand(store, "").Execute(ctx); err == nil {
		t.Error("expected validation error for empty id")
	}

	first, err := NewDeleteFragmentCommand(store, f.ID).Execute(ctx)
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if !first.Removed {
		t.Error("expected first delete to remove")
	}

	second, err := NewDeleteFragmentCommand(store, f.ID).Execute(ctx)
	if err != nil {
		t.Fatalf("second delete failed: %v", err)
	}
	if second.Removed {
		t.Error("expected second delete to be a no-op")
	}
	if !contains(second.Message, "already gone") {
		t.Errorf("unexpected message %q", second.Message)
	}
}
