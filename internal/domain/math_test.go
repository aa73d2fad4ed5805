package domain

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
)

func TestSafeParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"valid integer", "100", "100"},
		{"valid decimal", "3.14", "3.14"},
		{"zero", "0", "0"},
		{"negative", "-5.5", "-5.5"},
		{"empty string", "", "0"},
		{"invalid string", "abc", "0"},
		{"whitespace", "  ", "0"},
		{"padded", " 42 ", "42"},
		{"large number", "999999999999.1234567", "999999999999.1234567"},
		{"null literal", "null", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SafeParse(tt.input)
			want, _ := decimal.NewFromString(tt.want)
			if !got.Equal(want) {
				t.Errorf("SafeParse(%q) = %s, want %s", tt.input, got, want)
			}
		})
	}
}

func TestFinite(t *testing.T) {
	tests := []struct {
		name  string
		input float64
		want  float64
	}{
		{"regular", 12.5, 12.5},
		{"nan", math.NaN(), 0},
		{"positive infinity", math.Inf(1), 0},
		{"negative infinity", math.Inf(-1), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Finite(tt.input); got != tt.want {
				t.Errorf("Finite(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNonNegative(t *testing.T) {
	if got := NonNegative(-10); got != 0 {
		t.Errorf("NonNegative(-10) = %v, want 0", got)
	}
	if got := NonNegative(10); got != 10 {
		t.Errorf("NonNegative(10) = %v, want 10", got)
	}
}

func TestRound(t *testing.T) {
	tests := []struct {
		name   string
		input  float64
		places int32
		want   float64
	}{
		{"two places", 12.345, 2, 12.35},
		{"already round", 12, 2, 12},
		{"half away from zero", 2.5, 0, 3},
		{"negative", -1.005, 1, -1},
		{"nan", math.NaN(), 2, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Round(tt.input, tt.places); got != tt.want {
				t.Errorf("Round(%v, %d) = %v, want %v", tt.input, tt.places, got, tt.want)
			}
		})
	}
}

func TestPercent(t *testing.T) {
	tests := []struct {
		name        string
		part, total float64
		want        float64
	}{
		{"quarter", 25000, 100000, 25},
		{"zero total", 10, 0, 0},
		{"negative total", 10, -5, 0},
		{"whole", 50, 50, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Percent(tt.part, tt.total); got != tt.want {
				t.Errorf("Percent(%v, %v) = %v, want %v", tt.part, tt.total, got, tt.want)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(-3, 0, 100); got != 0 {
		t.Errorf("Clamp(-3) = %v, want 0", got)
	}
	if got := Clamp(130, 0, 100); got != 100 {
		t.Errorf("Clamp(130) = %v, want 100", got)
	}
	if got := Clamp(55.5, 0, 100); got != 55.5 {
		t.Errorf("Clamp(55.5) = %v, want 55.5", got)
	}
}
