package scoring

import (
	"math"

	"github.com/rotisserie/eris"

	"github.com/kimyuchan-1/MiniProject-sub000/internal/domain"
)

// Band is one distance-decay step: distances up to MaxMeters get Weight
type Band struct {
	MaxMeters float64 `json:"max_meters" mapstructure:"max_meters"`
	Weight    float64 `json:"weight" mapstructure:"weight"`
}

// DistanceBands is an immutable, ordered step function from distance to weight.
// Distances beyond the last bound get weight 0.
type DistanceBands struct {
	bands []Band
}

// DefaultDistanceBands returns ≤50m→1.0, ≤100m→0.7, ≤300m→0.4, ≤500m→0.1, beyond→0.
func DefaultDistanceBands() DistanceBands {
	return DistanceBands{bands: []Band{
		{MaxMeters: 50, Weight: 1.0},
		{MaxMeters: 100, Weight: 0.7},
		{MaxMeters: 300, Weight: 0.4},
		{MaxMeters: 500, Weight: 0.1},
	}}
}

// NewDistanceBands copies and validates the given bands. Bounds must be finite,
// positive and strictly ascending; weights must lie in [0,1] and never increase.
func NewDistanceBands(bands ...Band) (DistanceBands, error) {
	if len(bands) == 0 {
		return DistanceBands{}, eris.Wrap(domain.ErrInvalidInput, "scoring: no distance bands")
	}

	prevMax := 0.0
	prevWeight := 1.0
	for i, b := range bands {
		if math.IsNaN(b.MaxMeters) || math.IsInf(b.MaxMeters, 0) || b.MaxMeters <= prevMax {
			return DistanceBands{}, eris.Wrapf(domain.ErrInvalidInput,
				"scoring: band %d bound %v must be finite and greater than %v", i, b.MaxMeters, prevMax)
		}
		if math.IsNaN(b.Weight) || b.Weight < 0 || b.Weight > prevWeight {
			return DistanceBands{}, eris.Wrapf(domain.ErrInvalidInput,
				"scoring: band %d weight %v must be in [0, %v]", i, b.Weight, prevWeight)
		}
		prevMax = b.MaxMeters
		prevWeight = b.Weight
	}

	cp := make([]Band, len(bands))
	copy(cp, bands)
	return DistanceBands{bands: cp}, nil
}

// Weight returns the decay factor for a distance in meters.
// Negative distances count as 0; NaN gets weight 0.
func (db DistanceBands) Weight(distanceMeters float64) float64 {
	if math.IsNaN(distanceMeters) {
		return 0
	}
	for _, b := range db.bands {
		if distanceMeters <= b.MaxMeters {
			return b.Weight
		}
	}
	return 0
}

// Cutoff is the outermost finite bound; anything farther has weight 0
func (db DistanceBands) Cutoff() float64 {
	if len(db.bands) == 0 {
		return 0
	}
	return db.bands[len(db.bands)-1].MaxMeters
}

// Len returns the number of finite bands
func (db DistanceBands) Len() int {
	return len(db.bands)
}

// Bands returns a copy of the configured steps
func (db DistanceBands) Bands() []Band {
	cp := make([]Band, len(db.bands))
	copy(cp, db.bands)
	return cp
}
