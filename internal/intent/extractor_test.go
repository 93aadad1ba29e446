package intent

import (
	"reflect"
	"testing"

	"github.com/hyperjump/sahayak/internal/models"
)

func TestExtractIntent(t *testing.T) {
	e := New()
	tests := []struct {
		text string
		want models.IntentLabel
	}{
		{"I need to find a plumber", models.IntentSearch},
		{"book an appointment", models.IntentBooking},
		{"compare these two", models.IntentCompare},
		{"how does this work?", models.IntentHelp},
		{"I'm LOOKING FOR a gym", models.IntentSearch},
		{"Schedule a cleaner and find a painter", models.IntentSearch},
		{"show me electricians", models.IntentSearch},
		{"booking a plumber for tomorrow", models.IntentBooking},
		{"scheduling a visit", models.IntentBooking},
		{"comparing gyms", models.IntentCompare},
		{"helpful tips", models.IntentHelp},
		{"", models.IntentSearch},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			if got := e.ExtractIntent(tt.text); got != tt.want {
				t.Errorf("ExtractIntent(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestExtractParameters(t *testing.T) {
	e := New()
	tests := []struct {
		text string
		want Parameters
	}{
		{"cheap plumber near me", Parameters{"plumber", models.PriceCheap}},
		{"find a tutor in Jaipur", Parameters{"tutor", ""}},
		{"Best IIT-JEE coaching in Kota", Parameters{"tutor", models.PricePremium}},
		{"affordable gyms", Parameters{"gym", models.PriceCheap}},
		{"moderate price deep clean", Parameters{"cleaner", models.PriceMediocre}},
		{"AC service", Parameters{"repair", ""}},
		{"plumbing service for a leaking tap", Parameters{"plumber", ""}},
		{"car repair garage", Parameters{"mechanic", ""}},
		{"need a new door lock", Parameters{"locksmith", ""}},
		{"expensive but cheap", Parameters{"", models.PriceCheap}},
		{"high-end wardrobe", Parameters{"carpenter", models.PricePremium}},
		{"hello there", Parameters{}},
		{"fixing my fridge", Parameters{"repair", ""}},
		{"leaking pipes", Parameters{"plumber", ""}},
		{"fixed the wiring", Parameters{"electrician", ""}},
		{"painting the walls", Parameters{"painter", ""}},
		{"exercising daily", Parameters{"gym", ""}},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			if got := e.ExtractParameters(tt.text); got != tt.want {
				t.Errorf("ExtractParameters(%q) = %+v, want %+v", tt.text, got, tt.want)
			}
		})
	}
}

func TestExtractParameters_WholeWords(t *testing.T) {
	e := New()
	// "coaching" must not trigger the "ac" repair keyword, nor "show" the help intent.
	if got := e.ExtractParameters("coaching centre"); got.ServiceCategory != "tutor" {
		t.Errorf("category = %q, want tutor", got.ServiceCategory)
	}
	if got := e.ExtractParameters("accountant"); got.ServiceCategory != "" {
		t.Errorf("category = %q, want none", got.ServiceCategory)
	}
	if got := e.ExtractIntent("show options"); got != models.IntentSearch {
		t.Errorf("intent = %q, want search", got)
	}
	// Three-rune keywords only take inflections, not arbitrary continuations.
	if got := e.ExtractParameters("keyboard"); got.ServiceCategory != "" {
		t.Errorf("category = %q, want none", got.ServiceCategory)
	}
}

func TestGenerateSuggestions(t *testing.T) {
	e := New()
	tests := []struct {
		name   string
		label  models.IntentLabel
		params Parameters
		want   []string
	}{
		{
			name:   "category without tier",
			label:  models.IntentSearch,
			params: Parameters{ServiceCategory: "plumber"},
			want:   append([]string{suggestPriceTier}, refinementSuggestions...),
		},
		{
			name:   "tier without category",
			label:  models.IntentSearch,
			params: Parameters{PriceTier: models.PriceCheap},
			want:   append([]string{suggestCategory}, refinementSuggestions...),
		},
		{
			name:   "both resolved",
			label:  models.IntentSearch,
			params: Parameters{ServiceCategory: "gym", PriceTier: models.PricePremium},
			want:   refinementSuggestions,
		},
		{
			name:   "booking with category",
			label:  models.IntentBooking,
			params: Parameters{ServiceCategory: "gym"},
			want:   []string{suggestPriceTier},
		},
		{
			name:   "nothing resolved",
			label:  models.IntentHelp,
			params: Parameters{},
			want:   exampleQueries,
		},
		{
			name:   "booking with both",
			label:  models.IntentBooking,
			params: Parameters{ServiceCategory: "gym", PriceTier: models.PriceCheap},
			want:   exampleQueries,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.GenerateSuggestions(tt.label, tt.params)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("GenerateSuggestions() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAnalyze(t *testing.T) {
	got := New().Analyze("find a cheap plumber")
	if got.Intent != models.IntentSearch || got.ServiceCategory != "plumber" || got.PriceTier != models.PriceCheap {
		t.Errorf("Analyze() = %+v", got)
	}
	if got.Confidence != Confidence {
		t.Errorf("Confidence = %v", got.Confidence)
	}
	if len(got.SuggestedQuestions) != 3 {
		t.Errorf("SuggestedQuestions = %v", got.SuggestedQuestions)
	}
}

func TestNewWithRules(t *testing.T) {
	e := NewWithRules(Rules{
		Categories: []CategoryRule{{Category: "vet", Keywords: []string{"dog doctor", "vet"}}},
	})
	if got := e.ExtractParameters("a dog doctor nearby"); got.ServiceCategory != "vet" {
		t.Errorf("category = %q, want vet", got.ServiceCategory)
	}
	if got := e.ExtractIntent("book a vet"); got != models.IntentSearch {
		t.Errorf("intent with no rules = %q, want search default", got)
	}
}

func TestDefaultSuggestions_ReturnsCopy(t *testing.T) {
	s := DefaultSuggestions()
	s[0] = "changed"
	if DefaultSuggestions()[0] != exampleQueries[0] {
		t.Error("DefaultSuggestions shares backing array")
	}
}

func TestExtractParameters_Typos(t *testing.T) {
	e := New()
	tests := []struct {
		text string
		want Parameters
	}{
		{"find a plumer", Parameters{"plumber", ""}},
		{"chaep gym", Parameters{"gym", models.PriceCheap}},
		{"electrican needed", Parameters{"electrician", ""}},
		{"need housekeping", Parameters{"cleaner", ""}},
		{"learning center", Parameters{}},
		{"cheap tutr", Parameters{"", models.PriceCheap}},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			if got := e.ExtractParameters(tt.text); got != tt.want {
				t.Errorf("ExtractParameters(%q) = %+v, want %+v", tt.text, got, tt.want)
			}
		})
	}
}

func TestVocabulary_Correct(t *testing.T) {
	v := newVocabulary([][]string{{"plumber"}, {"water", "tank"}, {"cheap"}})
	got, changed := v.correct([]string{"plumbr", "watr", "tanks", "chaep", "hello"})
	if !changed {
		t.Fatal("expected corrections")
	}
	want := []string{"plumber", "watr", "tanks", "cheap", "hello"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d = %q, want %q", i, got[i], want[i])
		}
	}

	if _, changed := v.correct([]string{"plumbers", "gym"}); changed {
		t.Error("known and short words must stay unchanged")
	}
}
