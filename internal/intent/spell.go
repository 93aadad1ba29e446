package intent

import (
	"sort"
	"unicode/utf8"

	"github.com/hyperjump/sahayak/pkg/utils"
)

// Words shorter than minFuzzyLen runes must match exactly. Longer words may
// be one edit away from a keyword, or two once they reach longFuzzyLen.
const (
	minFuzzyLen  = 5
	longFuzzyLen = 10
)

// vocabulary is the sorted set of words used by category and tier keywords.
type vocabulary []string

func newVocabulary(keywords [][]string) vocabulary {
	seen := map[string]struct{}{}
	var v vocabulary
	for _, kw := range keywords {
		for _, word := range kw {
			if _, ok := seen[word]; ok {
				continue
			}
			seen[word] = struct{}{}
			v = append(v, word)
		}
	}
	sort.Strings(v)
	return v
}

func maxEdits(word string) int {
	switch n := utf8.RuneCountInString(word); {
	case n >= longFuzzyLen:
		return 2
	case n >= minFuzzyLen:
		return 1
	default:
		return 0
	}
}

// correct replaces each unknown token with the nearest vocabulary word within
// its edit budget. Ties go to the alphabetically first word. It reports
// whether any token changed.
func (v vocabulary) correct(tokens []string) ([]string, bool) {
	out := make([]string, len(tokens))
	changed := false
	for i, tok := range tokens {
		out[i] = tok
		budget := maxEdits(tok)
		if budget == 0 || v.known(tok) {
			continue
		}
		best, bestDist := "", budget+1
		for _, word := range v {
			if d := utils.EditDistance(tok, word); d < bestDist {
				best, bestDist = word, d
			}
		}
		if best != "" {
			out[i] = best
			changed = true
		}
	}
	return out, changed
}

func (v vocabulary) known(tok string) bool {
	for _, word := range v {
		if wordMatches(tok, word) {
			return true
		}
	}
	return false
}

func ruleWords[T any](rules []compiledRule[T]) [][]string {
	var out [][]string
	for _, rule := range rules {
		out = append(out, rule.keywords...)
	}
	return out
}
