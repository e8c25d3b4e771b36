package scoring

import (
	"math"

	"github.com/kimyuchan-1/MiniProject-sub000/internal/domain"
)

// AggregatedRiskScore is the distance-weighted mean severity of the records
// around ref, normalized once with 100·(1 − exp(−S̄/K)).
//
// Records without coordinates, and records beyond the outermost band, do not
// contribute. With no contributing record the result is 0. Any record with a
// negative count fails the whole call.
func (s *Scorer) AggregatedRiskScore(records []domain.AccidentRecord, ref Point) (float64, error) {
	if err := ref.Validate(); err != nil {
		return 0, err
	}

	var weightedSum, weightSum float64
	for _, r := range records {
		if err := ValidateRecord(r); err != nil {
			return 0, err
		}
		d, ok := recordDistance(r, ref)
		if !ok {
			continue
		}
		w := s.cfg.Bands.Weight(d)
		if w == 0 {
			continue
		}
		weightedSum += severity(r, s.cfg.Risk) * w
		weightSum += w
	}

	if weightSum == 0 {
		return 0, nil
	}
	mean := weightedSum / weightSum
	return 100 * (1 - math.Exp(-mean/s.cfg.SaturationK)), nil
}

// InRange returns the records that would contribute to AggregatedRiskScore
func (s *Scorer) InRange(records []domain.AccidentRecord, ref Point) []domain.AccidentRecord {
	var out []domain.AccidentRecord
	for _, r := range records {
		if d, ok := recordDistance(r, ref); ok && s.cfg.Bands.Weight(d) > 0 {
			out = append(out, r)
		}
	}
	return out
}

// NearbyCount counts unique record IDs strictly closer than HotspotRadius to
// ref. It is independent of the weighted aggregate.
func (s *Scorer) NearbyCount(records []domain.AccidentRecord, ref Point) int {
	seen := make(map[string]struct{})
	for _, r := range records {
		d, ok := recordDistance(r, ref)
		if !ok || d >= s.cfg.HotspotRadius {
			continue
		}
		seen[r.ID] = struct{}{}
	}
	return len(seen)
}
