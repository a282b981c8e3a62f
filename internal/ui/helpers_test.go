package ui

import (
	"testing"
)

func TestPadRight(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		width int
		want  string
	}{
		{"shorter", "abc", 5, "abc  "},
		{"exact", "abcde", 5, "abcde"},
		{"longer truncated", "abcdefgh", 5, "abcd…"},
		{"empty", "", 3, "   "},
		{"multibyte pads by runes", "творог", 8, "творог  "},
		{"multibyte exact", "яйцо", 4, "яйцо"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := padRight(tt.in, tt.width); got != tt.want {
				t.Errorf("padRight(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
			}
		})
	}
}

func TestPadLeft(t *testing.T) {
	if got := padLeft("42", 5); got != "   42" {
		t.Errorf("padLeft = %q", got)
	}
	if got := padLeft("123456", 5); got != "123456" {
		t.Errorf("padLeft overlong = %q", got)
	}
	if got := padLeft("кг", 4); got != "  кг" {
		t.Errorf("padLeft multibyte = %q", got)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		width int
		want  string
	}{
		{"fits", "short", 10, "short"},
		{"cut", "a very long food name", 10, "a very lo…"},
		{"multibyte", "творог пятипроцентный", 8, "творог …"},
		{"width one", "abc", 1, "a"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := truncate(tt.in, tt.width); got != tt.want {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
			}
		})
	}
}

func TestFormatPercent(t *testing.T) {
	if got := formatPercent(0, false); got != "–" {
		t.Errorf("formatPercent without target = %q, want dash", got)
	}
	if got := formatPercent(0, true); got != "0.0%" {
		t.Errorf("formatPercent of zero-kcal entry = %q, want 0.0%%", got)
	}
	if got := formatPercent(3.85, true); got != "3.9%" {
		t.Errorf("formatPercent(3.85) = %q", got)
	}
}

func TestParsePositiveInt(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		ok   bool
		name string
	}{
		{"150", 150, true, "plain"},
		{"0", 0, false, "zero"},
		{"-5", 0, false, "negative"},
		{"12.5", 0, false, "fractional"},
		{"abc", 0, false, "garbage"},
		{"", 0, false, "empty"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, ok := parsePositiveInt(tt.in)
			if n != tt.n || ok != tt.ok {
				t.Errorf("parsePositiveInt(%q) = (%d, %v), want (%d, %v)", tt.in, n, ok, tt.n, tt.ok)
			}
		})
	}
}

func TestParsePositiveFloat(t *testing.T) {
	if v, ok := parsePositiveFloat("72.5"); !ok || v != 72.5 {
		t.Errorf("parsePositiveFloat(72.5) = (%v, %v)", v, ok)
	}
	if _, ok := parsePositiveFloat("-1"); ok {
		t.Errorf("parsePositiveFloat accepted negative")
	}
	if _, ok := parsePositiveFloat("x"); ok {
		t.Errorf("parsePositiveFloat accepted garbage")
	}
}
