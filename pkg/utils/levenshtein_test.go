package utils

import "testing"

func TestEditDistance(t *testing.T) {
	tests := []struct {
		name     string
		a        string
		b        string
		expected int
	}{
		{"identical empty", "", "", 0},
		{"identical word", "plumber", "plumber", 0},
		{"empty a", "", "gym", 3},
		{"empty b", "gym", "", 3},
		{"one substitution", "cat", "bat", 1},
		{"one insertion", "plumer", "plumber", 1},
		{"one deletion", "tutorr", "tutor", 1},
		{"transposition", "cheap", "chaep", 1},
		{"transposition ab-ba", "ab", "ba", 1},
		{"kitten to sitting", "kitten", "sitting", 3},
		{"unicode substitution", "café", "cafe", 1},
		{"case difference", "Gym", "gym", 1},
		{"unrelated", "jaipur", "repair", 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EditDistance(tt.a, tt.b); got != tt.expected {
				t.Errorf("EditDistance(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.expected)
			}
			if rev := EditDistance(tt.b, tt.a); rev != tt.expected {
				t.Errorf("EditDistance(%q, %q) = %d, not symmetric", tt.b, tt.a, rev)
			}
		})
	}
}
