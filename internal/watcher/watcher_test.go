package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

// collector records callback invocations for assertions.
type collector struct {
	mu      sync.Mutex
	indexed []string
	removed []string
}

func (c *collector) index(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.indexed = append(c.indexed, path)
}

func (c *collector) remove(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.removed = append(c.removed, path)
}

func (c *collector) indexedPaths() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.indexed...)
}

func (c *collector) removedPaths() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.removed...)
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(20 * time.Millisecond)
	}
	return cond()
}

func TestWatcherIndexesCreatedFile(t *testing.T) {
	dir := t.TempDir()
	c := &collector{}
	w := New([]string{dir}, []string{".txt"}, true, c.index, c.remove)
	w.debounce = 50 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer w.Stop()

	path := filepath.Join(dir, "note.txt")
	if err := os.WriteFile(path, []byte("hello"), 0644); err != nil {
		t.Fatal(err)
	}

	ok := waitFor(t, 3*time.Second, func() bool {
		for _, p := range c.indexedPaths() {
			if p == path {
				return true
			}
		}
		return false
	})
	if !ok {
		t.Fatalf("file %s was not indexed, got %v", path, c.indexedPaths())
	}
}

func TestWatcherIgnoresOtherExtensions(t *testing.T) {
	dir := t.TempDir()
	c := &collector{}
	w := New([]string{dir}, []string{".txt"}, true, c.index, c.remove)
	w.debounce = 50 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer w.Stop()

	if err := os.WriteFile(filepath.Join(dir, "image.png"), []byte{1, 2}, 0644); err != nil {
		t.Fatal(err)
	}
	time.Sleep(300 * time.Millisecond)
	if got := c.indexedPaths(); len(got) != 0 {
		t.Fatalf("expected no indexed files, got %v", got)
	}
}

func TestWatcherReportsRemoval(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gone.txt")
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	c := &collector{}
	w := New([]string{dir}, []string{".txt"}, true, c.index, c.remove)
	w.debounce = 50 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer w.Stop()

	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	ok := waitFor(t, 3*time.Second, func() bool {
		for _, p := range c.removedPaths() {
			if p == path {
				return true
			}
		}
		return false
	})
	if !ok {
		t.Fatalf("removal of %s not reported, got %v", path, c.removedPaths())
	}
}

func TestWatcherAddRemoveDirectory(t *testing.T) {
	base := t.TempDir()
	extra := t.TempDir()

	c := &collector{}
	w := New([]string{base}, nil, true, c.index, c.remove)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer w.Stop()

	if err := w.AddDirectory(extra, false); err != nil {
		t.Fatalf("AddDirectory: %v", err)
	}
	if got := len(w.Directories()); got != 2 {
		t.Fatalf("expected 2 directories, got %d", got)
	}
	// Adding the same root twice is a no-op.
	if err := w.AddDirectory(extra, false); err != nil {
		t.Fatalf("AddDirectory again: %v", err)
	}
	if got := len(w.Directories()); got != 2 {
		t.Fatalf("expected 2 directories after duplicate add, got %d", got)
	}

	if err := w.RemoveDirectory(extra); err != nil {
		t.Fatalf("RemoveDirectory: %v", err)
	}
	if got := len(w.Directories()); got != 1 {
		t.Fatalf("expected 1 directory, got %d", got)
	}
}

func TestWatcherSyncExistingFiles(t *testing.T) {
	dir := t.TempDir()
	want := filepath.Join(dir, "existing.md")
	if err := os.WriteFile(want, []byte("# hi"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "skip.bin"), []byte{0}, 0644); err != nil {
		t.Fatal(err)
	}

	c := &collector{}
	w := New([]string{dir}, []string{".md"}, true, c.index, c.remove)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer w.Stop()

	w.SyncExistingFiles()
	got := c.indexedPaths()
	if len(got) != 1 || got[0] != want {
		t.Fatalf("expected [%s], got %v", want, got)
	}
}

func TestMatchExtension(t *testing.T) {
	tests := []struct {
		path string
		exts []string
		want bool
	}{
		{"a/b.txt", []string{".txt"}, true},
		{"a/b.TXT", []string{".txt"}, true},
		{"a/b.txt", []string{"txt"}, true},
		{"a/b.pdf", []string{".txt", ".md"}, false},
		{"a/b.anything", nil, true},
	}
	for _, tt := range tests {
		if got := matchExtension(tt.path, tt.exts); got != tt.want {
			t.Errorf("matchExtension(%q, %v) = %v, want %v", tt.path, tt.exts, got, tt.want)
		}
	}
}
