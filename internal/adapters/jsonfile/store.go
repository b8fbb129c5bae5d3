// Package jsonfile persists fragments and tags as a single JSON document.
//
// Every operation loads the whole document, applies its change in memory
// and writes the whole document back through a temp file and an atomic
// rename. A process-wide mutex serializes the read-modify-write cycle so
// concurrent callers cannot lose each other's updates.
package jsonfile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"

	"fragments/internal/application"
	"fragments/internal/domain"
	"fragments/internal/ports"
)

const (
	// DefaultFileName is the document name inside the data directory
	DefaultFileName = "fragments.json"

	filePerm = 0o644
	dirPerm  = 0o755
)

// Store implements ports.FragmentStore on top of one JSON file
type Store struct {
	path   string
	logger *zap.Logger
	newID  domain.IDGenerator
	strict bool

	mu sync.Mutex
}

// Ensure Store implements FragmentStore
var _ ports.FragmentStore = (*Store)(nil)

// Option configures a Store
type Option func(*Store)

// WithLogger sets the logger used for degraded reads and write failures
func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithIDGenerator replaces the UUIDv7 generator used for new records
func WithIDGenerator(gen domain.IDGenerator) Option {
	return func(s *Store) {
		if gen != nil {
			s.newID = gen
		}
	}
}

// WithStrictUpdates makes saves with an unknown ID fail with ErrNotFound
// instead of being silently dropped.
func WithStrictUpdates() Option {
	return func(s *Store) {
		s.strict = true
	}
}

// Open returns a store backed by the file at path, creating the parent
// directory and seeding an empty document if the file does not exist.
func Open(path string, opts ...Option) (*Store, error) {
	path, err := expandHome(path)
	if err != nil {
		return nil, err
	}

	s := &Store{
		path:   path,
		logger: zap.NewNop(),
		newID:  domain.NewID,
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.init(); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the absolute location of the document file
func (s *Store) Path() string {
	return s.path
}

func (s *Store) init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), dirPerm); err != nil {
		return &application.StorageWriteError{Path: s.path, Err: fmt.Errorf("failed to create data directory: %w", err)}
	}

	_, err := os.Stat(s.path)
	if err == nil {
		return nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return &application.StorageReadError{Path: s.path, Err: err}
	}

	s.logger.Info("seeding empty document", zap.String("path", s.path))
	return s.write(domain.NewDocument())
}

// ListFragments returns all fragments in stored order. On a read failure it
// returns an empty slice together with a *application.StorageReadError.
func (s *Store) ListFragments() ([]domain.Fragment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		s.logger.Warn("listing fragments from unreadable document", zap.String("path", s.path), zap.Error(err))
		return []domain.Fragment{}, err
	}
	return doc.CloneFragments(), nil
}

// ListTags returns all tags in stored order, with the same degraded read
// behavior as ListFragments.
func (s *Store) ListTags() ([]domain.Tag, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		s.logger.Warn("listing tags from unreadable document", zap.String("path", s.path), zap.Error(err))
		return []domain.Tag{}, err
	}
	return doc.CloneTags(), nil
}

// SaveFragment creates the fragment when its ID is empty and replaces the
// stored fragment in place otherwise.
func (s *Store) SaveFragment(fragment domain.Fragment) (domain.Fragment, error) {
	fragment = fragment.Clone()

	var saved domain.Fragment
	err := s.update(func(doc *domain.Document) (bool, error) {
		if fragment.ID == "" {
			fragment.ID = domain.UniqueID(s.newID, func(id string) bool {
				return doc.FragmentIndex(id) >= 0
			})
			doc.Fragments = append(doc.Fragments, fragment)
			saved = fragment
			return true, nil
		}

		idx := doc.FragmentIndex(fragment.ID)
		if idx < 0 {
			saved = fragment
			return false, s.unknownID("fragment", fragment.ID)
		}
		doc.Fragments[idx] = fragment
		saved = fragment
		return true, nil
	})
	if err != nil {
		return domain.Fragment{}, err
	}
	return saved.Clone(), nil
}

// SaveTag creates the tag when its ID is empty and replaces the stored tag
// in place otherwise.
func (s *Store) SaveTag(tag domain.Tag) (domain.Tag, error) {
	var saved domain.Tag
	err := s.update(func(doc *domain.Document) (bool, error) {
		if tag.ID == "" {
			tag.ID = domain.UniqueID(s.newID, func(id string) bool {
				return doc.TagIndex(id) >= 0
			})
			doc.Tags = append(doc.Tags, tag)
			saved = tag
			return true, nil
		}

		idx := doc.TagIndex(tag.ID)
		if idx < 0 {
			saved = tag
			return false, s.unknownID("tag", tag.ID)
		}
		doc.Tags[idx] = tag
		saved = tag
		return true, nil
	})
	if err != nil {
		return domain.Tag{}, err
	}
	return saved, nil
}

// DeleteFragment removes the fragment with the given ID. A missing ID is
// not an error.
func (s *Store) DeleteFragment(id string) (bool, error) {
	var removed bool
	err := s.update(func(doc *domain.Document) (bool, error) {
		removed = doc.RemoveFragment(id)
		return removed, nil
	})
	if err != nil {
		return false, err
	}
	return removed, nil
}

// DeleteTag removes the tag with the given ID. Fragments that reference
// the tag keep the now stale ID.
func (s *Store) DeleteTag(id string) (bool, error) {
	var removed bool
	err := s.update(func(doc *domain.Document) (bool, error) {
		removed = doc.RemoveTag(id)
		return removed, nil
	})
	if err != nil {
		return false, err
	}
	return removed, nil
}

// ResolveTagNames finds tags by case-insensitive name and creates the
// missing ones within a single read-modify-write cycle, so concurrent
// callers asking for the same new name share one tag.
func (s *Store) ResolveTagNames(names []string) ([]string, []domain.Tag, error) {
	var (
		ids     []string
		created []domain.Tag
	)
	err := s.update(func(doc *domain.Document) (bool, error) {
		ids, created = doc.ResolveTagNames(names, func() string {
			return domain.UniqueID(s.newID, func(id string) bool {
				return doc.TagIndex(id) >= 0
			})
		})
		return len(created) > 0, nil
	})
	if err != nil {
		return nil, nil, err
	}
	return ids, created, nil
}

// PruneStaleTags removes stale tag IDs from fragments. Only the tag lists
// change; the rest of each fragment is left as stored.
func (s *Store) PruneStaleTags(dryRun bool) ([]string, int, error) {
	var (
		stale   []string
		updated int
	)
	err := s.update(func(doc *domain.Document) (bool, error) {
		stale, updated = doc.PruneStaleTags(dryRun)
		return !dryRun && updated > 0, nil
	})
	if err != nil {
		return nil, 0, err
	}
	return stale, updated, nil
}

// unknownID handles a save whose ID matches nothing. Lenient stores drop
// the update; strict stores report it.
func (s *Store) unknownID(kind, id string) error {
	if s.strict {
		return &application.NotFoundError{Kind: kind, ID: id}
	}
	s.logger.Debug("dropping update for unknown id", zap.String("kind", kind), zap.String("id", id))
	return nil
}

// update runs one read-modify-write cycle. fn reports whether it changed
// the document; unchanged documents are not rewritten.
func (s *Store) update(fn func(doc *domain.Document) (bool, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		s.logger.Error("refusing to modify unreadable document", zap.String("path", s.path), zap.Error(err))
		return err
	}

	changed, err := fn(doc)
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}

	if err := s.write(doc); err != nil {
		s.logger.Error("failed to persist document", zap.String("path", s.path), zap.Error(err))
		return err
	}
	return nil
}

// read loads and validates the document. Callers must hold s.mu.
func (s *Store) read() (*domain.Document, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, &application.StorageReadError{Path: s.path, Err: err}
	}

	doc, err := decodeDocument(data)
	if err != nil {
		return nil, &application.StorageReadError{Path: s.path, Err: err}
	}
	return doc, nil
}

// write replaces the document file atomically. Callers must hold s.mu.
func (s *Store) write(doc *domain.Document) error {
	doc.Normalize()

	data, err := json.Marshal(doc)
	if err != nil {
		return &application.StorageWriteError{Path: s.path, Err: fmt.Errorf("failed to encode document: %w", err)}
	}

	if err := writeFileAtomic(s.path, data); err != nil {
		return &application.StorageWriteError{Path: s.path, Err: err}
	}
	return nil
}

// decodeDocument parses a document, rejecting anything that is not a JSON
// object with at least one of the fragments and tags keys. A missing or
// null collection decodes as empty.
func decodeDocument(data []byte) (*domain.Document, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, errors.New("document is not a JSON object")
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	var doc domain.Document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}
	if dec.More() {
		return nil, errors.New("unexpected data after document")
	}

	var keys map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &keys); err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}
	_, hasFragments := keys["fragments"]
	_, hasTags := keys["tags"]
	if !hasFragments && !hasTags {
		return nil, errors.New("document has neither fragments nor tags")
	}

	doc.Normalize()
	return &doc, nil
}

// writeFileAtomic writes data to a temp file next to path, syncs it and
// renames it over path. On failure the previous file is left untouched.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		return errors.Join(fmt.Errorf("failed to write temp file: %w", err), tmp.Close(), os.Remove(tmpPath))
	}
	if err := tmp.Sync(); err != nil {
		return errors.Join(fmt.Errorf("failed to sync temp file: %w", err), tmp.Close(), os.Remove(tmpPath))
	}
	if err := tmp.Close(); err != nil {
		return errors.Join(fmt.Errorf("failed to close temp file: %w", err), os.Remove(tmpPath))
	}
	if err := os.Chmod(tmpPath, filePerm); err != nil {
		return errors.Join(fmt.Errorf("failed to set permissions: %w", err), os.Remove(tmpPath))
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return errors.Join(fmt.Errorf("failed to replace document: %w", err), os.Remove(tmpPath))
	}
	return nil
}

// expandHome expands a leading ~ to the user's home directory
func expandHome(path string) (string, error) {
	if path == "" {
		return "", errors.New("document path is empty")
	}
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(home, path[1:])
	}
	return filepath.Abs(path)
}
