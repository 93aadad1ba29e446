package catalog

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/hyperjump/sahayak/internal/models"
)

// Loader produces a fresh dataset, e.g. by reading a file.
type Loader func() (*Dataset, error)

// FileLoader returns a Loader that reads path with LoadDataset.
func FileLoader(path string) Loader {
	return func() (*Dataset, error) { return LoadDataset(path) }
}

// Reloadable serves an immutable Memory snapshot that can be swapped
// atomically. Readers never block on a reload.
type Reloadable struct {
	load    Loader
	current atomic.Pointer[Memory]
	logger  *zap.Logger

	mu        sync.Mutex
	listeners []func(*Memory)
}

// NewReloadable loads the first snapshot. It fails if that load fails.
func NewReloadable(load Loader, logger *zap.Logger) (*Reloadable, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Reloadable{load: load, logger: logger}
	if err := r.Reload(); err != nil {
		return nil, err
	}
	return r, nil
}

// Reload loads and installs a new snapshot. On error the previous snapshot stays.
func (r *Reloadable) Reload() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ds, err := r.load()
	if err != nil {
		r.logger.Warn("catalog reload failed, keeping previous snapshot", zap.Error(err))
		return fmt.Errorf("failed to load dataset: %w", err)
	}
	snap, err := NewMemory(ds)
	if err != nil {
		r.logger.Warn("catalog reload rejected, keeping previous snapshot", zap.Error(err))
		return err
	}
	r.current.Store(snap)
	r.logger.Info("catalog loaded",
		zap.Int("localities", len(snap.names)),
		zap.Int("providers", len(snap.all)))
	for _, fn := range r.listeners {
		fn(snap)
	}
	return nil
}

// OnReload registers fn to run after every successful reload, and once
// immediately with the current snapshot.
func (r *Reloadable) OnReload(fn func(*Memory)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listeners = append(r.listeners, fn)
	fn(r.current.Load())
}

// Snapshot returns the catalog currently being served.
func (r *Reloadable) Snapshot() *Memory {
	return r.current.Load()
}

func (r *Reloadable) ByLocality(ctx context.Context, city, category string) ([]models.Provider, error) {
	return r.Snapshot().ByLocality(ctx, city, category)
}

func (r *Reloadable) ByID(ctx context.Context, id string) (models.Provider, error) {
	return r.Snapshot().ByID(ctx, id)
}

func (r *Reloadable) Categories(ctx context.Context, city string) ([]string, error) {
	return r.Snapshot().Categories(ctx, city)
}

func (r *Reloadable) All(ctx context.Context) ([]models.Provider, error) {
	return r.Snapshot().All(ctx)
}

func (r *Reloadable) Localities() []string {
	return r.Snapshot().Localities()
}

func (r *Reloadable) Close() error { return nil }
