package utils

import (
	"testing"
)

func TestTruncate(t *testing.T) {
	if Truncate("hello", 10) != "hello" {
		t.Error("short string unchanged")
	}
	if Truncate("hello world", 5) != "hello..." {
		t.Errorf("got %s", Truncate("hello world", 5))
	}
	if Truncate("x", 0) != "x" {
		t.Error("maxLen 0 returns as-is")
	}
	if Truncate("नमस्ते दुनिया", 3) != "नमस..." {
		t.Errorf("multi-byte truncate got %s", Truncate("नमस्ते दुनिया", 3))
	}
}

func TestCapitalize(t *testing.T) {
	tests := map[string]string{
		"plumber": "Plumber",
		"Gym":     "Gym",
		"":        "",
	}
	for in, want := range tests {
		if got := Capitalize(in); got != want {
			t.Errorf("Capitalize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestContainsFold(t *testing.T) {
	if !ContainsFold("C-Scheme, Jaipur, Rajasthan", "jaipur") {
		t.Error("expected case-insensitive match")
	}
	if ContainsFold("Kota", "Jaipur") {
		t.Error("unexpected match")
	}
}
