package utils

import (
	"math"
	"testing"
)

func TestDistanceKm(t *testing.T) {
	tests := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		wantMin, wantMax       float64
	}{
		{"identical points", 26.9124, 75.7873, 26.9124, 75.7873, 0, 0},
		{"new delhi to mumbai", 28.6139, 77.2090, 19.0760, 72.8777, 1150, 1160},
		{"jaipur to kota", 26.9124, 75.7873, 25.2138, 75.8648, 185, 195},
		{"across the antimeridian", 0, 179.5, 0, -179.5, 110, 112},
		{"antipodal", 10, 20, -10, -160, 20010, 20020},
		{"poles", 90, 0, -90, 0, 20010, 20020},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DistanceKm(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			if got < tt.wantMin || got > tt.wantMax {
				t.Errorf("DistanceKm() = %v, want between %v and %v", got, tt.wantMin, tt.wantMax)
			}
		})
	}
}

func TestDistanceKm_Symmetric(t *testing.T) {
	points := [][2]float64{
		{26.9124, 75.7873},
		{12.9716, 77.5946},
		{-33.8688, 151.2093},
		{51.5074, -0.1278},
	}
	for _, a := range points {
		for _, b := range points {
			ab := DistanceKm(a[0], a[1], b[0], b[1])
			ba := DistanceKm(b[0], b[1], a[0], a[1])
			if math.Abs(ab-ba) > 1e-9 {
				t.Errorf("distance(%v,%v)=%v but distance(%v,%v)=%v", a, b, ab, b, a, ba)
			}
		}
	}
}
