package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func startWatcher(t *testing.T) (*Watcher, string) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "fragments.json")
	if err := os.WriteFile(path, []byte(`{"fragments":[],"tags":[]}`), 0o644); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	w, err := New(path, WithDebounce(20*time.Millisecond))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := w.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	t.Cleanup(func() { _ = w.Stop() })
	return w, path
}

func TestWatcher_ReportsDocumentWrite(t *testing.T) {
	w, path := startWatcher(t)

	if err := os.WriteFile(path, []byte(`{"fragments":[],"tags":[{"id":"1","name":"go"}]}`), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	select {
	case <-w.Changes():
	case <-time.After(5 * time.Second):
		t.Fatal("expected a change notification")
	}
}

func TestWatcher_ReportsAtomicReplace(t *testing.T) {
	w, path := startWatcher(t)

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(`{}`), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		t.Fatalf("rename failed: %v", err)
	}

	select {
	case <-w.Changes():
	case <-time.After(5 * time.Second):
		t.Fatal("expected a change notification")
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	w, path := startWatcher(t)

	other := filepath.Join(filepath.Dir(path), "notes.txt")
	if err := os.WriteFile(other, []byte("hello"), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	select {
	case <-w.Changes():
		t.Fatal("unexpected change notification")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcher_StopIsIdempotent(t *testing.T) {
	w, _ := startWatcher(t)

	if err := w.Stop(); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}
	if err := w.Stop(); err != nil {
		t.Errorf("second Stop failed: %v", err)
	}
	if err := w.Start(context.Background()); err != nil {
		t.Errorf("Start after Stop should be a no-op, got %v", err)
	}
}

func TestWatcher_StopsOnContextCancel(t *testing.T) {
	dir := t.TempDir()
	w, err := New(filepath.Join(dir, "fragments.json"))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	if err := w.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	cancel()

	select {
	case <-w.doneCh:
	case <-time.After(5 * time.Second):
		t.Fatal("event loop did not exit on cancel")
	}
	if err := w.Stop(); err != nil {
		t.Errorf("Stop failed: %v", err)
	}
}
