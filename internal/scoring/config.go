// Package scoring converts accident records and crosswalk facilities into
// normalized 0-100 risk and safety scores, aggregates them around points and
// regions, and classifies the results for display.
//
// Everything in this package is a pure function of its inputs. A Scorer holds
// only value configuration and is safe for concurrent use.
package scoring

import (
	"math"

	"github.com/rotisserie/eris"

	"github.com/kimyuchan-1/MiniProject-sub000/internal/domain"
)

// Normalization and grouping defaults.
const (
	// DefaultLinearReference is the severity that maps to 100 for a single record
	DefaultLinearReference = 40.0
	// DefaultSaturationK is the scale of the saturating transform for point aggregates
	DefaultSaturationK = 80.0
	// DefaultHotspotRadius is the inner radius (meters) of the nearby-accident counter
	DefaultHotspotRadius = 100.0
	// DefaultRegionCutoffDegrees is the degree-space distance (~5km) for joining a region
	DefaultRegionCutoffDegrees = 0.045
)

// RiskWeights maps each severity category to a point value
type RiskWeights struct {
	Fatality       float64 `json:"fatality" mapstructure:"fatality"`
	SeriousInjury  float64 `json:"serious_injury" mapstructure:"serious_injury"`
	MinorInjury    float64 `json:"minor_injury" mapstructure:"minor_injury"`
	ReportedInjury float64 `json:"reported_injury" mapstructure:"reported_injury"`
	Accident       float64 `json:"accident" mapstructure:"accident"`
}

// DefaultRiskWeights returns the default severity profile.
func DefaultRiskWeights() RiskWeights {
	return RiskWeights{
		Fatality:       10,
		SeriousInjury:  5,
		MinorInjury:    2,
		ReportedInjury: 1,
		Accident:       1,
	}
}

// Validate rejects negative or non-finite weights.
func (w RiskWeights) Validate() error {
	return validateWeights(map[string]float64{
		"fatality":        w.Fatality,
		"serious_injury":  w.SeriousInjury,
		"minor_injury":    w.MinorInjury,
		"reported_injury": w.ReportedInjury,
		"accident":        w.Accident,
	})
}

// SafetyWeights maps each crosswalk feature to an additive point value
type SafetyWeights struct {
	Signal               float64 `json:"signal" mapstructure:"signal"`
	PedestrianButton     float64 `json:"pedestrian_button" mapstructure:"pedestrian_button"`
	SoundSignal          float64 `json:"sound_signal" mapstructure:"sound_signal"`
	RemainingTimeDisplay float64 `json:"remaining_time_display" mapstructure:"remaining_time_display"`
	HighlandCrossing     float64 `json:"highland_crossing" mapstructure:"highland_crossing"`
	CurbRamp             float64 `json:"curb_ramp" mapstructure:"curb_ramp"`
	BrailleBlock         float64 `json:"braille_block" mapstructure:"braille_block"`
	Spotlight            float64 `json:"spotlight" mapstructure:"spotlight"`
}

// DefaultSafetyWeights returns the default feature profile. Weights sum to 100.
func DefaultSafetyWeights() SafetyWeights {
	return SafetyWeights{
		Signal:               30,
		SoundSignal:          15,
		RemainingTimeDisplay: 12,
		HighlandCrossing:     12,
		PedestrianButton:     8,
		CurbRamp:             8,
		BrailleBlock:         8,
		Spotlight:            7,
	}
}

// Validate rejects negative or non-finite weights.
func (w SafetyWeights) Validate() error {
	return validateWeights(map[string]float64{
		"signal":                 w.Signal,
		"pedestrian_button":      w.PedestrianButton,
		"sound_signal":           w.SoundSignal,
		"remaining_time_display": w.RemainingTimeDisplay,
		"highland_crossing":      w.HighlandCrossing,
		"curb_ramp":              w.CurbRamp,
		"braille_block":          w.BrailleBlock,
		"spotlight":              w.Spotlight,
	})
}

// Sum returns the score of a facility with every feature enabled, before capping
func (w SafetyWeights) Sum() float64 {
	return w.Signal + w.PedestrianButton + w.SoundSignal + w.RemainingTimeDisplay +
		w.HighlandCrossing + w.CurbRamp + w.BrailleBlock + w.Spotlight
}

func validateWeights(weights map[string]float64) error {
	for name, v := range weights {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return eris.Wrapf(domain.ErrInvalidInput, "scoring: weight %s must be a finite value >= 0, got %v", name, v)
		}
	}
	return nil
}

// Config is the full scoring configuration surface.
type Config struct {
	Risk   RiskWeights
	Safety SafetyWeights
	Bands  DistanceBands

	LinearReference     float64
	SaturationK         float64
	HotspotRadius       float64
	RegionCutoffDegrees float64
}

// DefaultConfig returns a fresh default configuration.
func DefaultConfig() Config {
	return Config{
		Risk:                DefaultRiskWeights(),
		Safety:              DefaultSafetyWeights(),
		Bands:               DefaultDistanceBands(),
		LinearReference:     DefaultLinearReference,
		SaturationK:         DefaultSaturationK,
		HotspotRadius:       DefaultHotspotRadius,
		RegionCutoffDegrees: DefaultRegionCutoffDegrees,
	}
}

// Validate checks that a Config is internally consistent.
func (c Config) Validate() error {
	if err := c.Risk.Validate(); err != nil {
		return err
	}
	if err := c.Safety.Validate(); err != nil {
		return err
	}
	if c.Bands.Len() == 0 {
		return eris.Wrap(domain.ErrInvalidInput, "scoring: at least one distance band is required")
	}
	positive := map[string]float64{
		"linear_reference":      c.LinearReference,
		"saturation_k":          c.SaturationK,
		"hotspot_radius":        c.HotspotRadius,
		"region_cutoff_degrees": c.RegionCutoffDegrees,
	}
	for name, v := range positive {
		if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
			return eris.Wrapf(domain.ErrInvalidInput, "scoring: %s must be a finite value > 0, got %v", name, v)
		}
	}
	return nil
}
