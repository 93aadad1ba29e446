package catalog

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	"github.com/blevesearch/bleve/v2/mapping"

	"github.com/hyperjump/sahayak/internal/models"
)

// TextHit is one full-text match.
type TextHit struct {
	ID    string
	Score float64
}

type providerDoc struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Services    string `json:"services"`
	Address     string `json:"address"`
}

// TextIndex is an in-memory bleve index over provider text fields.
type TextIndex struct {
	mu        sync.RWMutex
	index     bleve.Index
	fuzziness int
}

// NewTextIndex indexes providers in memory. fuzziness > 0 enables typo-tolerant matching.
func NewTextIndex(providers []models.Provider, fuzziness int) (*TextIndex, error) {
	idx, err := buildIndex(providers)
	if err != nil {
		return nil, err
	}
	return &TextIndex{index: idx, fuzziness: fuzziness}, nil
}

func newProviderMapping() mapping.IndexMapping {
	im := bleve.NewIndexMapping()

	docMapping := bleve.NewDocumentMapping()
	textFieldMapping := bleve.NewTextFieldMapping()
	textFieldMapping.Analyzer = standard.Name
	for _, field := range []string{"name", "description", "services", "address"} {
		docMapping.AddFieldMappingsAt(field, textFieldMapping)
	}
	docMapping.AddFieldMappingsAt("category", bleve.NewKeywordFieldMapping())
	im.AddDocumentMapping("provider", docMapping)
	im.DefaultType = "provider"
	im.DefaultMapping = docMapping
	return im
}

func buildIndex(providers []models.Provider) (bleve.Index, error) {
	idx, err := bleve.NewMemOnly(newProviderMapping())
	if err != nil {
		return nil, fmt.Errorf("failed to create Bleve index: %w", err)
	}
	batch := idx.NewBatch()
	for _, p := range providers {
		doc := providerDoc{
			Name:        p.Name,
			Category:    p.Category,
			Description: p.Description,
			Services:    strings.Join(p.Services, " "),
			Address:     p.Address,
		}
		if err := batch.Index(p.ID, doc); err != nil {
			_ = idx.Close()
			return nil, fmt.Errorf("failed to index provider %s: %w", p.ID, err)
		}
	}
	if err := idx.Batch(batch); err != nil {
		_ = idx.Close()
		return nil, fmt.Errorf("failed to index providers: %w", err)
	}
	return idx, nil
}

// Rebuild replaces the index content with providers.
func (t *TextIndex) Rebuild(providers []models.Provider) error {
	idx, err := buildIndex(providers)
	if err != nil {
		return err
	}
	t.mu.Lock()
	old := t.index
	t.index = idx
	t.mu.Unlock()
	return old.Close()
}

// Search runs a match query over all indexed fields and returns up to limit hits.
func (t *TextIndex) Search(ctx context.Context, text string, limit int) ([]TextHit, error) {
	text = strings.TrimSpace(text)
	if text == "" || limit <= 0 {
		return []TextHit{}, nil
	}
	q := bleve.NewMatchQuery(text)
	if t.fuzziness > 0 {
		q.SetFuzziness(t.fuzziness)
	}
	req := bleve.NewSearchRequest(q)
	req.Size = limit

	t.mu.RLock()
	defer t.mu.RUnlock()
	results, err := t.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("Bleve search failed: %w", err)
	}
	out := make([]TextHit, len(results.Hits))
	for i, hit := range results.Hits {
		out[i] = TextHit{ID: hit.ID, Score: hit.Score}
	}
	return out, nil
}

// DocCount returns the number of indexed providers.
func (t *TextIndex) DocCount() (uint64, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.index.DocCount()
}

// Close closes the index.
func (t *TextIndex) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.index.Close()
}
