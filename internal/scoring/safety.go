package scoring

import (
	"math"

	"github.com/kimyuchan-1/MiniProject-sub000/internal/domain"
)

// SafetyScore sums the weights of every present feature, capped at 100.
func (s *Scorer) SafetyScore(f domain.CrosswalkFacility) float64 {
	return featureScore(f.Features(), s.cfg.Safety)
}

func featureScore(ft domain.FacilityFeatures, w SafetyWeights) float64 {
	var sum float64
	add := func(on bool, weight float64) {
		if on {
			sum += weight
		}
	}
	add(ft.Signal, w.Signal)
	add(ft.PedestrianButton, w.PedestrianButton)
	add(ft.SoundSignal, w.SoundSignal)
	add(ft.RemainingTimeDisplay, w.RemainingTimeDisplay)
	add(ft.HighlandCrossing, w.HighlandCrossing)
	add(ft.CurbRamp, w.CurbRamp)
	add(ft.BrailleBlock, w.BrailleBlock)
	add(ft.Spotlight, w.Spotlight)
	return math.Min(sum, 100)
}
