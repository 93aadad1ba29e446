// Package synth generates synthetic filler providers for thin result sets.
package synth

import (
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/google/uuid"

	"github.com/hyperjump/sahayak/internal/models"
	"github.com/hyperjump/sahayak/pkg/utils"
)

const (
	MinDistanceKm = 0.5
	MaxDistanceKm = 15.0
	// MaxJitterDeg bounds the coordinate offset from the caller's location, per axis.
	MaxJitterDeg = 0.1
)

var (
	namePrefixes = []string{"Pro", "Expert", "Quality", "Reliable", "Premier", "Elite"}
	nameSuffixes = []string{"Services", "Solutions", "Professionals", "Experts", "Co."}
	streets      = []string{"Main St", "Oak Ave", "Park Blvd", "Center Dr", "Mill Rd"}
	availability = []string{
		"Available Mon-Fri, 9AM-5PM",
		"Available Mon-Sat, 8AM-6PM",
		"Available 24/7 for emergencies",
		"Available by appointment",
		"Available weekends only",
	}
	qualityByTier = map[models.PriceTier]string{
		models.PriceCheap:    "affordable and reliable",
		models.PriceMediocre: "quality",
		models.PricePremium:  "premium, top-rated",
	}
	servicesByCategory = map[string][]string{
		"plumber":     {"Emergency Repairs", "Installation", "Drain Cleaning", "Water Heater"},
		"tutor":       {"Math", "Science", "English", "Test Prep", "Homework Help"},
		"gym":         {"Personal Training", "Group Classes", "Cardio", "Weight Training"},
		"electrician": {"Wiring", "Installation", "Repairs", "Inspection"},
		"repair":      {"Diagnostics", "Repairs", "Maintenance", "Warranty Work"},
		"cleaner":     {"House Cleaning", "Deep Cleaning", "Move-in/out", "Office Cleaning"},
		"mechanic":    {"Oil Change", "Brake Service", "Engine Repair", "Diagnostics"},
		"carpenter":   {"Custom Furniture", "Repairs", "Installation", "Renovation"},
		"painter":     {"Interior Painting", "Exterior Painting", "Touch-ups", "Wallpaper"},
		"locksmith":   {"Lock Installation", "Emergency Lockout", "Rekeying", "Security"},
	}
	fallbackServices = []string{"General Services", "Consultation"}
)

// Source is the random source used for generation.
type Source interface {
	Float64() float64
	IntN(n int) int
	Uint64() uint64
}

// Synthesizer generates providers from a random source guarded by a mutex.
type Synthesizer struct {
	mu  sync.Mutex
	rnd Source
}

// Option configures a Synthesizer.
type Option func(*Synthesizer)

// WithRand sets the random source.
func WithRand(src Source) Option {
	return func(s *Synthesizer) { s.rnd = src }
}

// WithSeed uses a deterministic PCG source seeded with seed.
func WithSeed(seed uint64) Option {
	return func(s *Synthesizer) { s.rnd = rand.New(rand.NewPCG(seed, seed)) }
}

// New returns a Synthesizer. Without options it draws from a randomly seeded source.
func New(opts ...Option) *Synthesizer {
	s := &Synthesizer{}
	for _, opt := range opts {
		opt(s)
	}
	if s.rnd == nil {
		s.rnd = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return s
}

// Synthesize returns count new providers for category around loc. An empty tier
// picks a tier uniformly per record. Records are never cached.
func (s *Synthesizer) Synthesize(category string, loc models.Location, tier models.PriceTier, count int) []models.Provider {
	if count <= 0 {
		return []models.Provider{}
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Provider, count)
	for i := range out {
		out[i] = s.provider(category, loc, tier, i)
	}
	return out
}

func (s *Synthesizer) provider(category string, loc models.Location, tier models.PriceTier, index int) models.Provider {
	if !tier.Valid() {
		tier = models.PriceTiers[s.rnd.IntN(len(models.PriceTiers))]
	}
	services, ok := servicesByCategory[category]
	if !ok {
		services = fallbackServices
	}
	return models.Provider{
		ID: s.uuid(),
		Name: fmt.Sprintf("%s %s %s %d",
			pick(s.rnd, namePrefixes), utils.Capitalize(category), pick(s.rnd, nameSuffixes), index+1),
		Category:        category,
		Rating:          3.0 + s.rnd.Float64()*2.0,
		ReviewCount:     s.between(10, 500),
		PriceTier:       tier,
		Address:         fmt.Sprintf("%d %s", s.between(100, 9999), pick(s.rnd, streets)),
		DistanceKm:      MinDistanceKm + s.rnd.Float64()*(MaxDistanceKm-MinDistanceKm),
		Phone:           fmt.Sprintf("(%d) %d-%d", s.between(200, 999), s.between(100, 999), s.between(1000, 9999)),
		Description:     fmt.Sprintf("Professional %s service with %d years of experience. We provide %s services to our customers.", category, s.between(5, 30), qualityByTier[tier]),
		Availability:    pick(s.rnd, availability),
		ImageURL:        fmt.Sprintf("https://picsum.photos/400/300?random=%d", s.rnd.IntN(1000)),
		Latitude:        loc.Latitude + s.jitter(),
		Longitude:       loc.Longitude + s.jitter(),
		Services:        append([]string(nil), services...),
		YearEstablished: s.between(1990, 2023),
		IsVerified:      s.rnd.IntN(2) == 1,
		Synthetic:       true,
	}
}

// uuid draws a version 4 UUID from the synthesizer's source so seeded runs are reproducible.
func (s *Synthesizer) uuid() string {
	id, err := uuid.NewRandomFromReader(sourceReader{s.rnd})
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// sourceReader adapts a Source to io.Reader.
type sourceReader struct{ src Source }

func (r sourceReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = byte(r.src.Uint64())
	}
	return len(p), nil
}

// between returns an integer in [lo, hi).
func (s *Synthesizer) between(lo, hi int) int {
	return lo + s.rnd.IntN(hi-lo)
}

// jitter returns an offset in (-MaxJitterDeg, MaxJitterDeg).
func (s *Synthesizer) jitter() float64 {
	return (s.rnd.Float64()*2 - 1) * MaxJitterDeg
}

func pick(rnd Source, items []string) string {
	return items[rnd.IntN(len(items))]
}

// Placeholder returns the fixed detail record served for ids that are not in the catalog.
func Placeholder(id string) models.Provider {
	return models.Provider{
		ID:              id,
		Name:            "Expert Service Pro",
		Category:        "plumber",
		Rating:          4.5,
		ReviewCount:     150,
		PriceTier:       models.PriceMediocre,
		Address:         "123 Main Street, Downtown",
		DistanceKm:      2.5,
		Phone:           "(555) 123-4567",
		Description:     "Professional service with 20+ years experience",
		Availability:    "Available Mon-Sat, 8AM-6PM",
		ImageURL:        "https://picsum.photos/400/300",
		Services:        []string{"Emergency Service", "Repairs", "Installation"},
		YearEstablished: 2003,
		IsVerified:      true,
		Synthetic:       true,
	}
}
