package application

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateRequired(t *testing.T) {
	tests := []struct {
		name      string
		fieldName string
		value     string
		wantErr   bool
		errMsg    string
	}{
		{
			name:      "valid value",
			fieldName: "title",
			value:     "Hello",
			wantErr:   false,
		},
		{
			name:      "empty string",
			fieldName: "title",
			value:     "",
			wantErr:   true,
			errMsg:    "title is required",
		},
		{
			name:      "whitespace only",
			fieldName: "name",
			value:     "   ",
			wantErr:   true,
			errMsg:    "name is required",
		},
		{
			name:      "camel case field",
			fieldName: "fragmentID",
			value:     "",
			wantErr:   true,
			errMsg:    "fragment ID is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRequired(tt.fieldName, tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRequired() error = %v, wantErr %v", err, tt.wantErr)
			}

			if err != nil {
				var valErr *ValidationError
				if !errors.As(err, &valErr) {
					t.Fatalf("expected ValidationError, got %T", err)
				}
				if valErr.Field != tt.fieldName {
					t.Errorf("expected field %s, got %s", tt.fieldName, valErr.Field)
				}
				if !strings.Contains(err.Error(), tt.errMsg) {
					t.Errorf("expected error containing %q, got %q", tt.errMsg, err.Error())
				}
			}
		})
	}
}

func TestValidateMaxLength(t *testing.T) {
	if err := ValidateMaxLength("title", "héllo", 5); err != nil {
		t.Errorf("expected 5 runes to pass, got %v", err)
	}
	if err := ValidateMaxLength("title", "héllo!", 5); err == nil {
		t.Error("expected 6 runes to fail")
	}
}

func TestStorageErrors_MatchSentinel(t *testing.T) {
	cause := errors.New("disk on fire")

	readErr := &StorageReadError{Path: "/tmp/f.json", Err: cause}
	if !errors.Is(readErr, ErrStorageUnavailable) {
		t.Error("StorageReadError should match ErrStorageUnavailable")
	}
	if !errors.Is(readErr, cause) {
		t.Error("StorageReadError should unwrap to its cause")
	}

	writeErr := &StorageWriteError{Path: "/tmp/f.json", Err: cause}
	if !errors.Is(writeErr, ErrStorageUnavailable) {
		t.Error("StorageWriteError should match ErrStorageUnavailable")
	}
	if errors.Is(writeErr, ErrNotFound) {
		t.Error("StorageWriteError should not match ErrNotFound")
	}
}

func TestNotFoundError(t *testing.T) {
	err := error(&NotFoundError{Kind: "fragment", ID: "42"})
	if !errors.Is(err, ErrNotFound) {
		t.Error("NotFoundError should match ErrNotFound")
	}
	if err.Error() != "fragment 42 not found" {
		t.Errorf("unexpected message %q", err.Error())
	}
}
