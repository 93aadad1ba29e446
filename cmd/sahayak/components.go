package main

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/hyperjump/sahayak/internal/assistant"
	"github.com/hyperjump/sahayak/internal/catalog"
	"github.com/hyperjump/sahayak/internal/config"
	"github.com/hyperjump/sahayak/internal/metrics"
	"github.com/hyperjump/sahayak/internal/ranking"
	"github.com/hyperjump/sahayak/internal/search"
	"github.com/hyperjump/sahayak/internal/synth"
)

// Components holds initialized services.
type Components struct {
	Catalog catalog.Catalog
	// Reloadable is set when the catalog is served from memory and can be reloaded.
	Reloadable *catalog.Reloadable
	TextIndex  *catalog.TextIndex
	Engine     *search.Engine
	Assistant  *assistant.Assistant
	Metrics    *metrics.Metrics
	Registry   *prometheus.Registry
}

func (c *Components) Close() {
	if c.TextIndex != nil {
		_ = c.TextIndex.Close()
	}
	if c.Catalog != nil {
		_ = c.Catalog.Close()
	}
}

func initializeComponents(cfg *config.Config, logger *zap.Logger) (*Components, error) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)
	c := &Components{Metrics: m, Registry: reg}

	if cfg.Catalog.DatabasePath != "" {
		store, err := openSQLiteCatalog(cfg, logger)
		if err != nil {
			return nil, err
		}
		c.Catalog = store
	} else {
		rl, err := catalog.NewReloadable(catalog.FileLoader(cfg.Catalog.Path), logger)
		if err != nil {
			return nil, fmt.Errorf("failed to load catalog: %w", err)
		}
		c.Catalog = rl
		c.Reloadable = rl
	}

	if cfg.Search.TextIndexOrDefault() {
		if err := c.initTextIndex(cfg, logger); err != nil {
			c.Close()
			return nil, err
		}
	}

	var synthOpts []synth.Option
	if cfg.Synth.Seed != nil {
		synthOpts = append(synthOpts, synth.WithSeed(*cfg.Synth.Seed))
	}
	c.Engine = search.NewEngine(c.Catalog, synth.New(synthOpts...), &cfg.Search,
		search.WithLogger(logger), search.WithMetrics(m))

	assistantOpts := []assistant.Option{
		assistant.WithLogger(logger),
		assistant.WithMetrics(m),
		assistant.WithLookupLimit(cfg.Search.LookupLimit),
	}
	if c.TextIndex != nil {
		assistantOpts = append(assistantOpts, assistant.WithTextIndex(c.TextIndex))
	}
	c.Assistant = assistant.New(c.Catalog, c.Engine, ranking.NewRanker(&cfg.Ranking), assistantOpts...)
	return c, nil
}

// openSQLiteCatalog opens the database and seeds it from the dataset when empty.
func openSQLiteCatalog(cfg *config.Config, logger *zap.Logger) (*catalog.SQLite, error) {
	store, err := catalog.NewSQLite(cfg.Catalog.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize catalog database: %w", err)
	}
	ctx := context.Background()
	n, err := store.Count(ctx)
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	if n > 0 {
		return store, nil
	}
	ds, err := catalog.LoadDataset(cfg.Catalog.Path)
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	if err := store.Import(ctx, ds); err != nil {
		_ = store.Close()
		return nil, err
	}
	logger.Info("seeded catalog database",
		zap.String("path", cfg.Catalog.DatabasePath),
		zap.Int("providers", ds.Size()))
	return store, nil
}

func (c *Components) initTextIndex(cfg *config.Config, logger *zap.Logger) error {
	if c.Reloadable != nil {
		idx, err := catalog.NewTextIndex(nil, cfg.Search.Fuzziness)
		if err != nil {
			return err
		}
		c.TextIndex = idx
		c.Reloadable.OnReload(func(snap *catalog.Memory) {
			all, err := snap.All(context.Background())
			if err == nil {
				err = idx.Rebuild(all)
			}
			if err != nil {
				logger.Warn("text index rebuild failed", zap.Error(err))
			}
		})
		return nil
	}

	all, err := c.Catalog.All(context.Background())
	if err != nil {
		return err
	}
	idx, err := catalog.NewTextIndex(all, cfg.Search.Fuzziness)
	if err != nil {
		return err
	}
	c.TextIndex = idx
	return nil
}
