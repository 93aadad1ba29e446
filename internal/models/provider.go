// Package models defines core data structures for providers, queries, and assistant results.
package models

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// PriceTier is one of three ordered affordability bands. The zero value means unset.
type PriceTier string

const (
	PriceCheap    PriceTier = "CHEAP"
	PriceMediocre PriceTier = "MEDIOCRE"
	PricePremium  PriceTier = "PREMIUM"
)

// PriceTiers lists every tier in ascending order.
var PriceTiers = []PriceTier{PriceCheap, PriceMediocre, PricePremium}

// Valid reports whether p is one of the three known tiers.
func (p PriceTier) Valid() bool {
	return p == PriceCheap || p == PriceMediocre || p == PricePremium
}

// Rank returns 1, 2 or 3 for CHEAP, MEDIOCRE and PREMIUM, and 0 when unset or unknown.
func (p PriceTier) Rank() int {
	switch p {
	case PriceCheap:
		return 1
	case PriceMediocre:
		return 2
	case PricePremium:
		return 3
	default:
		return 0
	}
}

// Label returns the lower-case display form ("cheap", "mediocre", "premium").
func (p PriceTier) Label() string {
	return strings.ToLower(string(p))
}

// ParsePriceTier maps a tier name or one of its synonyms to a PriceTier.
// Matching is case-insensitive. An empty string parses to the unset tier.
func ParsePriceTier(s string) (PriceTier, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return "", nil
	case "cheap", "affordable", "budget":
		return PriceCheap, nil
	case "mediocre", "medium", "moderate":
		return PriceMediocre, nil
	case "premium", "expensive", "high-end":
		return PricePremium, nil
	default:
		return "", fmt.Errorf("unknown price tier %q", s)
	}
}

// Provider is one service business. Catalog providers are never mutated;
// distance updates go through WithDistance, which returns a copy.
type Provider struct {
	ID              string    `json:"id" yaml:"id"`
	Name            string    `json:"name" yaml:"name"`
	Category        string    `json:"category" yaml:"category"`
	Rating          float64   `json:"rating" yaml:"rating"`
	ReviewCount     int       `json:"review_count" yaml:"review_count"`
	PriceTier       PriceTier `json:"price_tier" yaml:"price_tier"`
	Address         string    `json:"address" yaml:"address"`
	DistanceKm      float64   `json:"distance_km" yaml:"distance_km"`
	Phone           string    `json:"phone,omitempty" yaml:"phone,omitempty"`
	Description     string    `json:"description" yaml:"description"`
	Availability    string    `json:"availability" yaml:"availability"`
	ImageURL        string    `json:"image_url,omitempty" yaml:"image_url,omitempty"`
	Latitude        float64   `json:"latitude" yaml:"latitude"`
	Longitude       float64   `json:"longitude" yaml:"longitude"`
	Services        []string  `json:"services" yaml:"services"`
	YearEstablished int       `json:"year_established,omitempty" yaml:"year_established,omitempty"`
	IsVerified      bool      `json:"is_verified" yaml:"is_verified"`
	// Synthetic marks generated filler records that do not come from the catalog.
	Synthetic bool `json:"synthetic,omitempty" yaml:"-"`
}

// WithDistance returns a copy of p with DistanceKm replaced.
func (p Provider) WithDistance(km float64) Provider {
	p.Services = append([]string(nil), p.Services...)
	p.DistanceKm = km
	return p
}

// Clone returns a deep copy of p.
func (p Provider) Clone() Provider {
	return p.WithDistance(p.DistanceKm)
}

// Location is a caller-supplied point. The core never mutates it.
type Location struct {
	Latitude  float64 `json:"latitude" yaml:"latitude"`
	Longitude float64 `json:"longitude" yaml:"longitude"`
	Address   string  `json:"address" yaml:"address"`
}

// Validate returns an error for non-finite or out-of-range coordinates.
func (l Location) Validate() error {
	if math.IsNaN(l.Latitude) || math.IsInf(l.Latitude, 0) || l.Latitude < -90 || l.Latitude > 90 {
		return fmt.Errorf("latitude out of range: %v", l.Latitude)
	}
	if math.IsNaN(l.Longitude) || math.IsInf(l.Longitude, 0) || l.Longitude < -180 || l.Longitude > 180 {
		return fmt.Errorf("longitude out of range: %v", l.Longitude)
	}
	return nil
}

// ChatMessage is one turn of the conversation history passed to the assistant.
type ChatMessage struct {
	ID          string     `json:"id"`
	Text        string     `json:"text"`
	IsUser      bool       `json:"is_user"`
	Timestamp   time.Time  `json:"timestamp"`
	Providers   []Provider `json:"providers,omitempty"`
	Suggestions []string   `json:"suggestions,omitempty"`
}

// Category describes a browsable service category.
type Category struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
}
