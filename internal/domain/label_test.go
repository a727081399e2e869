package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatCount(t *testing.T) {
	tests := []struct {
		name     string
		input    int
		expected string
	}{
		{"millions", 8550405, "8,550,405"},
		{"thousands", 554636, "554,636"},
		{"hundreds ungrouped", 740, "740"},
		{"zero", 0, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatCount(tt.input))
		})
	}
}

func TestFormatRate(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected string
	}{
		{"rounds down", 67.4, "67"},
		{"rounds up", 67.5, "68"},
		{"groups thousands", 1749.6, "1,750"},
		{"zero", 0, "0"},
		{"missing", math.NaN(), "n/a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatRate(tt.input))
		})
	}
}
