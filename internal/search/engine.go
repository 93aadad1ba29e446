// Package search finds candidate providers for a category around a location.
package search

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/hyperjump/sahayak/internal/catalog"
	"github.com/hyperjump/sahayak/internal/config"
	"github.com/hyperjump/sahayak/internal/metrics"
	"github.com/hyperjump/sahayak/internal/models"
	"github.com/hyperjump/sahayak/internal/synth"
	"github.com/hyperjump/sahayak/pkg/utils"
)

// Synthesizer produces filler providers when the catalog has too few.
type Synthesizer interface {
	Synthesize(category string, loc models.Location, tier models.PriceTier, count int) []models.Provider
}

// Engine combines catalog lookups with synthetic top-up and distance filtering.
type Engine struct {
	catalog catalog.Catalog
	synth   Synthesizer
	config  *config.SearchConfig
	logger  *zap.Logger
	metrics *metrics.Metrics
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for fail-soft errors.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) { e.logger = utils.OrNop(l) }
}

// WithMetrics records failures and synthesized counts.
func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// NewEngine creates a search engine with the given dependencies.
func NewEngine(cat catalog.Catalog, syn Synthesizer, cfg *config.SearchConfig, opts ...Option) *Engine {
	if cfg == nil {
		cfg = &config.Default().Search
	}
	e := &Engine{
		catalog: cat,
		synth:   syn,
		config:  cfg,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Search returns providers for query sorted by ascending distance. It never
// fails: errors are logged and yield an empty slice.
func (e *Engine) Search(ctx context.Context, query models.ProviderQuery) []models.Provider {
	providers, err := e.TrySearch(ctx, query)
	if err != nil {
		return []models.Provider{}
	}
	return providers
}

// TrySearch runs the search pipeline and reports failures:
//  1. catalog lookup by the location's address and the category
//  2. distances recomputed from the caller's coordinates
//  3. synthetic top-up when fewer than MinCandidates records were found
//  4. radius and price tier filters
//  5. stable sort by distance
//
// Errors are logged here; callers only decide what to show.
func (e *Engine) TrySearch(ctx context.Context, query models.ProviderQuery) (providers []models.Provider, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("search panicked: %v", r)
			providers = nil
		}
		if err != nil {
			e.logger.Error("provider search failed",
				zap.String("category", query.Category),
				zap.String("address", query.Location.Address),
				zap.Error(err))
			e.metrics.ObserveSearchFailure(failureReason(err))
		}
	}()

	if err := ProcessQuery(&query, e.config.RadiusKm); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	found, err := e.catalog.ByLocality(ctx, query.Location.Address, query.Category)
	if err != nil {
		return nil, fmt.Errorf("catalog lookup failed: %w", err)
	}

	loc := query.Location
	candidates := make([]models.Provider, 0, max(len(found), e.config.FillTarget))
	for _, p := range found {
		candidates = append(candidates, p.WithDistance(utils.DistanceKm(loc.Latitude, loc.Longitude, p.Latitude, p.Longitude)))
	}

	if len(candidates) < e.config.MinCandidates && e.synth != nil {
		n := e.config.FillTarget - len(candidates)
		filler := e.synth.Synthesize(query.Category, loc, query.PriceTier, n)
		candidates = append(candidates, filler...)
		e.metrics.ObserveSynthesized(query.Category, len(filler))
		e.logger.Debug("topped up thin result set",
			zap.String("category", query.Category),
			zap.Int("catalog", len(found)),
			zap.Int("synthesized", len(filler)))
	}

	out := make([]models.Provider, 0, len(candidates))
	for _, p := range candidates {
		if !(p.DistanceKm <= query.RadiusKm) {
			continue
		}
		if query.PriceTier != "" && p.PriceTier != query.PriceTier {
			continue
		}
		out = append(out, p)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].DistanceKm < out[j].DistanceKm })
	return out, nil
}

// Details returns the provider with id, or a placeholder record when the
// catalog does not have it. It never fails.
func (e *Engine) Details(ctx context.Context, id string) models.Provider {
	p, err := e.catalog.ByID(ctx, id)
	if err == nil {
		return p
	}
	if !errors.Is(err, catalog.ErrNotFound) {
		e.logger.Warn("provider lookup failed", zap.String("id", id), zap.Error(err))
	}
	return synth.Placeholder(id)
}

// Categories returns the categories offered in the locality named by address.
func (e *Engine) Categories(ctx context.Context, address string) []string {
	cats, err := e.catalog.Categories(ctx, address)
	if err != nil {
		e.logger.Warn("category lookup failed", zap.String("address", address), zap.Error(err))
		return []string{}
	}
	return cats
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, ErrInvalidLocation):
		return "invalid_location"
	case errors.Is(err, ErrInvalidQuery):
		return "invalid_query"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "cancelled"
	default:
		return "internal"
	}
}
