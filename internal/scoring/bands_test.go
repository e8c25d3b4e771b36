package scoring

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kimyuchan-1/MiniProject-sub000/internal/domain"
)

func TestDefaultBandWeights(t *testing.T) {
	bands := DefaultDistanceBands()
	tests := []struct {
		distance float64
		want     float64
	}{
		{0, 1.0},
		{-10, 1.0},
		{30, 1.0},
		{50, 1.0},
		{50.001, 0.7},
		{100, 0.7},
		{250, 0.4},
		{300, 0.4},
		{499, 0.1},
		{500, 0.1},
		{500.5, 0},
		{600, 0},
		{math.Inf(1), 0},
		{math.NaN(), 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, bands.Weight(tt.distance), "distance %v", tt.distance)
	}
}

func TestBandWeightMonotonic(t *testing.T) {
	custom, err := NewDistanceBands(
		Band{MaxMeters: 10, Weight: 0.9},
		Band{MaxMeters: 20, Weight: 0.9},
		Band{MaxMeters: 1000, Weight: 0.05},
	)
	require.NoError(t, err)

	for _, bands := range []DistanceBands{DefaultDistanceBands(), custom} {
		prev := bands.Weight(0)
		for d := 0.0; d <= 1200; d += 0.5 {
			w := bands.Weight(d)
			assert.LessOrEqual(t, w, prev, "weight increased at %vm", d)
			assert.GreaterOrEqual(t, w, 0.0)
			assert.LessOrEqual(t, w, 1.0)
			prev = w
		}
	}
}

func TestNewDistanceBandsValidation(t *testing.T) {
	tests := []struct {
		name  string
		bands []Band
	}{
		{"empty", nil},
		{"zero bound", []Band{{MaxMeters: 0, Weight: 1}}},
		{"descending bounds", []Band{{MaxMeters: 100, Weight: 1}, {MaxMeters: 50, Weight: 0.5}}},
		{"duplicate bounds", []Band{{MaxMeters: 100, Weight: 1}, {MaxMeters: 100, Weight: 0.5}}},
		{"increasing weight", []Band{{MaxMeters: 50, Weight: 0.5}, {MaxMeters: 100, Weight: 0.6}}},
		{"weight above one", []Band{{MaxMeters: 50, Weight: 1.5}}},
		{"negative weight", []Band{{MaxMeters: 50, Weight: -0.1}}},
		{"infinite bound", []Band{{MaxMeters: math.Inf(1), Weight: 0.5}}},
		{"nan weight", []Band{{MaxMeters: 50, Weight: math.NaN()}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDistanceBands(tt.bands...)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestDistanceBandsAreImmutable(t *testing.T) {
	input := []Band{{MaxMeters: 100, Weight: 1}, {MaxMeters: 200, Weight: 0.5}}
	bands, err := NewDistanceBands(input...)
	require.NoError(t, err)

	input[0].Weight = 0
	assert.Equal(t, 1.0, bands.Weight(50))

	out := bands.Bands()
	out[1].Weight = 0
	assert.Equal(t, 0.5, bands.Weight(150))
	assert.Equal(t, 2, bands.Len())
	assert.Equal(t, 200.0, bands.Cutoff())
}
