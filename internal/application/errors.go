package application

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	ErrNotFound           = errors.New("not found")
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrInvalidOperation   = errors.New("invalid operation")
)

// ValidationError represents a validation failure with details
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NotFoundError reports an update or lookup of an ID that does not exist
type NotFoundError struct {
	Kind string // "fragment" or "tag"
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// StorageReadError means the document file is missing, unreadable or not
// a valid document.
type StorageReadError struct {
	Path string
	Err  error
}

func (e *StorageReadError) Error() string {
	return fmt.Sprintf("reading %s: %v", e.Path, e.Err)
}

func (e *StorageReadError) Unwrap() error {
	return e.Err
}

func (e *StorageReadError) Is(target error) bool {
	return target == ErrStorageUnavailable
}

// StorageWriteError means the document could not be persisted. The
// previous file content is left in place.
type StorageWriteError struct {
	Path string
	Err  error
}

func (e *StorageWriteError) Error() string {
	return fmt.Sprintf("writing %s: %v", e.Path, e.Err)
}

func (e *StorageWriteError) Unwrap() error {
	return e.Err
}

func (e *StorageWriteError) Is(target error) bool {
	return target == ErrStorageUnavailable
}
