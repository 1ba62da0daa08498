package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSafeDivide(t *testing.T) {
	tests := []struct {
		name        string
		numerator   float64
		denominator float64
		expected    float64
	}{
		{name: "divisão comum", numerator: 300, denominator: 1000, expected: 0.3},
		{name: "denominador zero retorna zero", numerator: 10, denominator: 0, expected: 0},
		{name: "zero sobre zero retorna zero", numerator: 0, denominator: 0, expected: 0},
		{name: "infinito retorna zero", numerator: math.Inf(1), denominator: 1, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SafeDivide(tt.numerator, tt.denominator))
		})
	}
}

func TestPercentage(t *testing.T) {
	assert.InDelta(t, 30.0, Percentage(300, 1000), 1e-9)
	assert.Equal(t, 0.0, Percentage(5, 0))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.0, Clamp(-12, 0, 100))
	assert.Equal(t, 100.0, Clamp(140, 0, 100))
	assert.Equal(t, 42.5, Clamp(42.5, 0, 100))
	assert.Equal(t, 0.0, Clamp(math.NaN(), 0, 100))
}

func TestPercentageChange(t *testing.T) {
	assert.Equal(t, 100.0, PercentageChange(50, 0))
	assert.Equal(t, 0.0, PercentageChange(0, 0))
	assert.InDelta(t, -25.0, PercentageChange(75, 100), 1e-9)
	assert.InDelta(t, 50.0, PercentageChange(150, 100), 1e-9)
}
