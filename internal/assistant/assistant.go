// Package assistant answers free-text provider queries: it extracts intent,
// searches, ranks and composes a reply.
package assistant

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/hyperjump/sahayak/internal/catalog"
	"github.com/hyperjump/sahayak/internal/intent"
	"github.com/hyperjump/sahayak/internal/metrics"
	"github.com/hyperjump/sahayak/internal/models"
	"github.com/hyperjump/sahayak/internal/ranking"
	"github.com/hyperjump/sahayak/internal/search"
	"github.com/hyperjump/sahayak/pkg/utils"
)

// DefaultLookupLimit caps Lookup results when no limit is given.
const DefaultLookupLimit = 10

// Assistant is the entry point used by the HTTP API and the CLI.
// It holds no per-query state and is safe for concurrent use.
type Assistant struct {
	catalog   catalog.Catalog
	engine    *search.Engine
	ranker    *ranking.Ranker
	extractor *intent.Extractor
	index     *catalog.TextIndex
	limit     int
	logger    *zap.Logger
	metrics   *metrics.Metrics
}

// Option configures an Assistant.
type Option func(*Assistant)

func WithLogger(l *zap.Logger) Option {
	return func(a *Assistant) { a.logger = utils.OrNop(l) }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(a *Assistant) { a.metrics = m }
}

// WithTextIndex enables Lookup.
func WithTextIndex(idx *catalog.TextIndex) Option {
	return func(a *Assistant) { a.index = idx }
}

// WithLookupLimit sets the result cap Lookup uses when called without one.
func WithLookupLimit(n int) Option {
	return func(a *Assistant) {
		if n > 0 {
			a.limit = n
		}
	}
}

// WithExtractor replaces the default rule tables.
func WithExtractor(e *intent.Extractor) Option {
	return func(a *Assistant) { a.extractor = e }
}

// New creates an Assistant. A nil ranker uses the default weights.
func New(cat catalog.Catalog, engine *search.Engine, ranker *ranking.Ranker, opts ...Option) *Assistant {
	if ranker == nil {
		ranker = ranking.NewRanker(nil)
	}
	a := &Assistant{
		catalog:   cat,
		engine:    engine,
		ranker:    ranker,
		extractor: intent.New(),
		limit:     DefaultLookupLimit,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Respond answers one chat turn. A nil loc means the caller's location is unknown.
// history is the conversation so far, oldest first; when query names no service
// the most recent user turn that did is used.
func (a *Assistant) Respond(ctx context.Context, query string, loc *models.Location, history []models.ChatMessage) models.SearchResult {
	query = strings.TrimSpace(query)
	if query == "" {
		return models.SearchResult{
			Providers:     []models.Provider{},
			ResponseText:  askServiceText,
			Suggestions:   intent.DefaultSuggestions(),
			NeedsMoreInfo: true,
		}
	}

	start := time.Now()
	defer func() { a.metrics.ObserveRespond(time.Since(start)) }()

	qi := a.analyze(query, history)
	a.metrics.ObserveQuery(string(qi.Intent))

	needsMoreInfo := qi.ServiceCategory == "" || loc == nil
	providers := []models.Provider{}
	if !needsMoreInfo {
		found, err := a.engine.TrySearch(ctx, models.ProviderQuery{
			Category:  qi.ServiceCategory,
			Location:  *loc,
			PriceTier: qi.PriceTier,
		})
		if err != nil {
			return models.SearchResult{
				Providers:    []models.Provider{},
				ResponseText: genericErrorText,
				Suggestions:  qi.SuggestedQuestions,
				Intent:       &qi,
			}
		}
		providers = ranking.Providers(a.ranker.Rank(query, found, ranking.Preferences{PriceTier: qi.PriceTier}))
	}

	a.logger.Debug("responded",
		zap.String("intent", string(qi.Intent)),
		zap.String("category", qi.ServiceCategory),
		zap.String("price_tier", string(qi.PriceTier)),
		zap.Int("providers", len(providers)),
		zap.Bool("needs_more_info", needsMoreInfo))

	return models.SearchResult{
		Providers:     providers,
		ResponseText:  Compose(query, providers, loc),
		Suggestions:   qi.SuggestedQuestions,
		NeedsMoreInfo: needsMoreInfo,
		Intent:        &qi,
	}
}

func (a *Assistant) analyze(query string, history []models.ChatMessage) models.QueryIntent {
	qi := a.extractor.Analyze(query)
	if qi.ServiceCategory != "" {
		return qi
	}
	for i := len(history) - 1; i >= 0; i-- {
		msg := history[i]
		if !msg.IsUser {
			continue
		}
		prev := a.extractor.ExtractParameters(msg.Text)
		if prev.ServiceCategory == "" {
			continue
		}
		params := intent.Parameters{ServiceCategory: prev.ServiceCategory, PriceTier: qi.PriceTier}
		if params.PriceTier == "" {
			params.PriceTier = prev.PriceTier
		}
		qi.ServiceCategory = params.ServiceCategory
		qi.PriceTier = params.PriceTier
		qi.SuggestedQuestions = a.extractor.GenerateSuggestions(qi.Intent, params)
		break
	}
	return qi
}

// SearchByCategory returns providers for a category near loc, nearest first.
func (a *Assistant) SearchByCategory(ctx context.Context, category string, loc models.Location, tier models.PriceTier) []models.Provider {
	return a.engine.Search(ctx, models.ProviderQuery{Category: category, Location: loc, PriceTier: tier})
}

// ProviderDetails returns the provider with id or a placeholder record. It never fails.
func (a *Assistant) ProviderDetails(ctx context.Context, id string) models.Provider {
	return a.engine.Details(ctx, id)
}

// PopularCategories returns the browsable service categories.
func (a *Assistant) PopularCategories() []models.Category {
	return PopularCategories()
}

// Categories returns the categories offered in the locality named by address.
func (a *Assistant) Categories(ctx context.Context, address string) []string {
	return a.engine.Categories(ctx, address)
}

// Lookup runs a full-text search over the catalog. A limit of zero or less
// uses the configured default. It returns an empty slice when no text index
// is configured or the search fails.
func (a *Assistant) Lookup(ctx context.Context, text string, limit int) []models.Provider {
	out := []models.Provider{}
	if a.index == nil {
		return out
	}
	if limit <= 0 {
		limit = a.limit
	}
	hits, err := a.index.Search(ctx, text, limit)
	if err != nil {
		a.logger.Warn("text lookup failed", zap.String("text", text), zap.Error(err))
		return out
	}
	for _, hit := range hits {
		p, err := a.catalog.ByID(ctx, hit.ID)
		if err != nil {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Status summarizes the loaded catalog.
type Status struct {
	Localities    []string `json:"localities"`
	Providers     int      `json:"providers"`
	TextIndexDocs uint64   `json:"text_index_docs"`
	// DatabaseBytes is set when the catalog is backed by a database file.
	DatabaseBytes int64 `json:"database_bytes,omitempty"`
}

type sizer interface {
	SizeBytes() (int64, error)
}

// Status reports catalog and index sizes.
func (a *Assistant) Status(ctx context.Context) (Status, error) {
	all, err := a.catalog.All(ctx)
	if err != nil {
		return Status{}, err
	}
	st := Status{Localities: a.catalog.Localities(), Providers: len(all)}
	if a.index != nil {
		n, err := a.index.DocCount()
		if err != nil {
			return Status{}, err
		}
		st.TextIndexDocs = n
	}
	if sz, ok := a.catalog.(sizer); ok {
		n, err := sz.SizeBytes()
		if err != nil {
			return Status{}, err
		}
		st.DatabaseBytes = n
	}
	return st, nil
}
