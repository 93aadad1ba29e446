package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0644)
}

type recorder struct {
	mu    sync.Mutex
	paths []string
}

func (r *recorder) record(path string) {
	r.mu.Lock()
	r.paths = append(r.paths, path)
	r.mu.Unlock()
}

func (r *recorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.paths...)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestNew_RequiresFiles(t *testing.T) {
	if _, err := New(nil, func(string) {}); err == nil {
		t.Error("expected error for empty file list")
	}
}

func TestWatcher_DebouncesWritesToWatchedFile(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "providers.yaml")
	other := filepath.Join(dir, "notes.txt")
	if err := writeFile(target, "localities: []\n"); err != nil {
		t.Fatal(err)
	}

	rec := &recorder{}
	w, err := New([]string{target}, rec.record, WithDebounce(150*time.Millisecond))
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	for i := 0; i < 5; i++ {
		if err := writeFile(target, "localities: []\n# edit\n"); err != nil {
			t.Fatal(err)
		}
	}
	if err := writeFile(other, "ignored"); err != nil {
		t.Fatal(err)
	}

	waitFor(t, func() bool { return len(rec.snapshot()) > 0 })
	time.Sleep(400 * time.Millisecond)

	got := rec.snapshot()
	if len(got) != 1 {
		t.Fatalf("expected one debounced callback, got %v", got)
	}
	want, _ := filepath.Abs(target)
	if got[0] != want {
		t.Errorf("callback path = %q, want %q", got[0], want)
	}
}

func TestWatcher_AtomicRename(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "providers.yaml")
	if err := writeFile(target, "a"); err != nil {
		t.Fatal(err)
	}

	rec := &recorder{}
	w, err := New([]string{target}, rec.record, WithDebounce(20*time.Millisecond))
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	tmp := filepath.Join(dir, ".providers.yaml.tmp")
	if err := writeFile(tmp, "b"); err != nil {
		t.Fatal(err)
	}
	if err := os.Rename(tmp, target); err != nil {
		t.Fatal(err)
	}
	waitFor(t, func() bool { return len(rec.snapshot()) > 0 })
}

func TestWatcher_StopIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "providers.yaml")
	if err := writeFile(target, "a"); err != nil {
		t.Fatal(err)
	}
	w, err := New([]string{target}, nil)
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	if err := w.Start(ctx); err != nil {
		t.Fatal(err)
	}
	w.Stop()
	w.Stop()
	cancel()
}

func TestWatcher_NilLoggerIsSafe(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "providers.yaml")
	if err := writeFile(target, "a"); err != nil {
		t.Fatal(err)
	}
	rec := &recorder{}
	w, err := New([]string{target}, rec.record, WithLogger(nil), WithDebounce(50*time.Millisecond))
	if err != nil {
		t.Fatal(err)
	}
	want, _ := filepath.Abs(target)
	if files := w.Files(); len(files) != 1 || files[0] != want {
		t.Errorf("Files() = %v, want [%s]", files, want)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	if err := writeFile(target, "b"); err != nil {
		t.Fatal(err)
	}
	waitFor(t, func() bool { return len(rec.snapshot()) > 0 })
}
