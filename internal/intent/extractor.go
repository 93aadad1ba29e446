// Package intent turns free-text queries into an intent label, a service
// category and a price tier using ordered keyword rule tables.
package intent

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/hyperjump/sahayak/internal/models"
)

// Confidence reported for every rule-based analysis.
const Confidence = 0.95

const (
	suggestPriceTier = "Would you prefer cheap, mediocre, or premium options?"
	suggestCategory  = "What type of service are you looking for?"
)

var (
	refinementSuggestions = []string{
		"Show me the top rated options",
		"What's available this week?",
		"Compare the best 3 providers",
	}
	exampleQueries = []string{
		"Find plumbers near me",
		"Show cheap gym memberships",
		"Premium tutors in my area",
	}
)

// Parameters are the search parameters found in a query. Empty fields were not found.
type Parameters struct {
	ServiceCategory string
	PriceTier       models.PriceTier
}

// Extractor applies rule tables to query text. It is stateless and safe for concurrent use.
type Extractor struct {
	intents    []compiledRule[models.IntentLabel]
	categories []compiledRule[string]
	tiers      []compiledRule[models.PriceTier]
	vocab      vocabulary
}

type compiledRule[T any] struct {
	value    T
	keywords [][]string
}

// New returns an Extractor using DefaultRules.
func New() *Extractor {
	return NewWithRules(DefaultRules())
}

// NewWithRules returns an Extractor for the given rule tables.
func NewWithRules(r Rules) *Extractor {
	e := &Extractor{}
	for _, rule := range r.Intents {
		e.intents = append(e.intents, compile(rule.Label, rule.Keywords))
	}
	for _, rule := range r.Categories {
		e.categories = append(e.categories, compile(rule.Category, rule.Keywords))
	}
	for _, rule := range r.Tiers {
		e.tiers = append(e.tiers, compile(rule.Tier, rule.Keywords))
	}
	e.vocab = newVocabulary(append(ruleWords(e.categories), ruleWords(e.tiers)...))
	return e
}

func compile[T any](value T, keywords []string) compiledRule[T] {
	c := compiledRule[T]{value: value}
	for _, kw := range keywords {
		if toks := tokenize(kw); len(toks) > 0 {
			c.keywords = append(c.keywords, toks)
		}
	}
	return c
}

// ExtractIntent returns the first intent whose keywords occur in text, or search.
func (e *Extractor) ExtractIntent(text string) models.IntentLabel {
	if label, ok := firstMatch(e.intents, tokenize(text)); ok {
		return label
	}
	return models.IntentSearch
}

// ExtractParameters returns the category and price tier mentioned in text.
// Exact keyword matches win; a field still empty afterwards is retried with
// misspelled words corrected to the nearest keyword.
func (e *Extractor) ExtractParameters(text string) Parameters {
	tokens := tokenize(text)
	var p Parameters
	p.ServiceCategory, _ = firstMatch(e.categories, tokens)
	p.PriceTier, _ = firstMatch(e.tiers, tokens)
	if p.ServiceCategory != "" && p.PriceTier != "" {
		return p
	}
	corrected, changed := e.vocab.correct(tokens)
	if !changed {
		return p
	}
	if p.ServiceCategory == "" {
		p.ServiceCategory, _ = firstMatch(e.categories, corrected)
	}
	if p.PriceTier == "" {
		p.PriceTier, _ = firstMatch(e.tiers, corrected)
	}
	return p
}

// GenerateSuggestions returns follow-up prompts for the parsed query.
func (e *Extractor) GenerateSuggestions(label models.IntentLabel, p Parameters) []string {
	var out []string
	hasCategory := p.ServiceCategory != ""
	hasTier := p.PriceTier != ""

	if hasCategory && !hasTier {
		out = append(out, suggestPriceTier)
	}
	if hasTier && !hasCategory {
		out = append(out, suggestCategory)
	}
	if label == models.IntentSearch && (hasCategory || hasTier) {
		out = append(out, refinementSuggestions...)
	}
	if len(out) == 0 {
		out = DefaultSuggestions()
	}
	return out
}

// Analyze runs the full extraction for text.
func (e *Extractor) Analyze(text string) models.QueryIntent {
	label := e.ExtractIntent(text)
	params := e.ExtractParameters(text)
	return models.QueryIntent{
		Intent:             label,
		ServiceCategory:    params.ServiceCategory,
		PriceTier:          params.PriceTier,
		Confidence:         Confidence,
		SuggestedQuestions: e.GenerateSuggestions(label, params),
	}
}

// DefaultSuggestions returns the example queries offered when nothing else applies.
func DefaultSuggestions() []string {
	return append([]string(nil), exampleQueries...)
}

func firstMatch[T any](rules []compiledRule[T], tokens []string) (T, bool) {
	for _, rule := range rules {
		for _, kw := range rule.keywords {
			if containsPhrase(tokens, kw) {
				return rule.value, true
			}
		}
	}
	var zero T
	return zero, false
}

// containsPhrase reports whether phrase occurs as consecutive words in tokens.
func containsPhrase(tokens, phrase []string) bool {
	for i := 0; i+len(phrase) <= len(tokens); i++ {
		matched := true
		for j, kw := range phrase {
			if !wordMatches(tokens[i+j], kw) {
				matched = false
				break
			}
		}
		if matched {
			return true
		}
	}
	return false
}

// Keywords of at least minPrefixLen runes match any word they begin, so
// "booking" hits "book". Three-rune keywords take only plural and verb endings
// ("fixing"), and shorter ones only their plural, so "ac" stays clear of "accountant".
const minPrefixLen = 4

// wordMatches reports whether word is kw or an inflected form of it.
func wordMatches(word, kw string) bool {
	if word == kw {
		return true
	}
	rest, ok := strings.CutPrefix(word, kw)
	if ok && (rest == "s" || rest == "es") {
		return true
	}
	switch n := utf8.RuneCountInString(kw); {
	case n >= minPrefixLen:
		if ok {
			return true
		}
		// schedule -> scheduling
		stem, dropped := strings.CutSuffix(kw, "e")
		return dropped && strings.HasPrefix(word, stem+"ing")
	case n == minPrefixLen-1:
		return ok && (rest == "ing" || rest == "ed")
	default:
		return false
	}
}

// tokenize lower-cases text and splits it into letter/digit runs.
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
