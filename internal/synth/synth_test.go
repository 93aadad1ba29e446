package synth

import (
	"math"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyperjump/sahayak/internal/models"
)

var jaipur = models.Location{Latitude: 26.9124, Longitude: 75.7873, Address: "Jaipur"}

func TestSynthesize_Bounds(t *testing.T) {
	s := New(WithSeed(42))
	got := s.Synthesize("plumber", jaipur, "", 5)
	require.Len(t, got, 5)

	seen := map[string]bool{}
	for i, p := range got {
		assert.True(t, p.Synthetic)
		assert.Equal(t, "plumber", p.Category)
		assert.GreaterOrEqual(t, p.DistanceKm, MinDistanceKm)
		assert.Less(t, p.DistanceKm, MaxDistanceKm)
		assert.LessOrEqual(t, math.Abs(p.Latitude-jaipur.Latitude), MaxJitterDeg)
		assert.LessOrEqual(t, math.Abs(p.Longitude-jaipur.Longitude), MaxJitterDeg)
		assert.GreaterOrEqual(t, p.Rating, 3.0)
		assert.LessOrEqual(t, p.Rating, 5.0)
		assert.GreaterOrEqual(t, p.ReviewCount, 10)
		assert.Less(t, p.ReviewCount, 500)
		assert.GreaterOrEqual(t, p.YearEstablished, 1990)
		assert.Less(t, p.YearEstablished, 2023)
		assert.True(t, p.PriceTier.Valid())
		assert.Equal(t, servicesByCategory["plumber"], p.Services)
		assert.Contains(t, p.Name, "Plumber")
		assert.Regexp(t, `\d$`, p.Name)
		assert.Contains(t, p.Description, "Professional plumber service")

		id, err := uuid.Parse(p.ID)
		require.NoError(t, err, "record %d", i)
		assert.Equal(t, uuid.Version(4), id.Version())
		assert.False(t, seen[p.ID], "duplicate id %s", p.ID)
		seen[p.ID] = true
	}
}

func TestSynthesize_FixedTier(t *testing.T) {
	got := New(WithSeed(7)).Synthesize("gym", jaipur, models.PricePremium, 20)
	for _, p := range got {
		assert.Equal(t, models.PricePremium, p.PriceTier)
		assert.Contains(t, p.Description, "premium, top-rated")
	}
}

func TestSynthesize_UnknownCategoryFallsBack(t *testing.T) {
	got := New(WithSeed(1)).Synthesize("astrologer", jaipur, "", 1)
	require.Len(t, got, 1)
	assert.Equal(t, []string{"General Services", "Consultation"}, got[0].Services)
}

func TestSynthesize_ZeroCount(t *testing.T) {
	assert.Empty(t, New().Synthesize("gym", jaipur, "", 0))
	assert.Empty(t, New().Synthesize("gym", jaipur, "", -3))
}

func TestSynthesize_SeedIsDeterministic(t *testing.T) {
	a := New(WithSeed(99)).Synthesize("tutor", jaipur, "", 4)
	b := New(WithSeed(99)).Synthesize("tutor", jaipur, "", 4)
	assert.Equal(t, a, b)

	c := New(WithSeed(100)).Synthesize("tutor", jaipur, "", 4)
	assert.NotEqual(t, a, c)
}

func TestSynthesize_NoCachingAcrossCalls(t *testing.T) {
	s := New(WithSeed(5))
	a := s.Synthesize("tutor", jaipur, "", 3)
	b := s.Synthesize("tutor", jaipur, "", 3)
	assert.NotEqual(t, a[0].ID, b[0].ID)
}

func TestSynthesize_ConcurrentUse(t *testing.T) {
	s := New(WithSeed(3))
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Len(t, s.Synthesize("cleaner", jaipur, "", 10), 10)
		}()
	}
	wg.Wait()
}

func TestPlaceholder(t *testing.T) {
	p := Placeholder("missing-id")
	assert.Equal(t, "missing-id", p.ID)
	assert.Equal(t, "Expert Service Pro", p.Name)
	assert.Equal(t, models.PriceMediocre, p.PriceTier)
	assert.Equal(t, 4.5, p.Rating)
	assert.True(t, p.IsVerified)
}
