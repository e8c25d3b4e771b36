package scoring

import (
	"github.com/rotisserie/eris"

	"github.com/kimyuchan-1/MiniProject-sub000/internal/domain"
	"github.com/kimyuchan-1/MiniProject-sub000/pkg/utils"
)

// ValidateRecord rejects records with negative count fields.
func ValidateRecord(r domain.AccidentRecord) error {
	counts := []struct {
		name  string
		value int
	}{
		{"accident_count", r.AccidentCount},
		{"casualty_count", r.CasualtyCount},
		{"fatality_count", r.FatalityCount},
		{"serious_injury_count", r.SeriousInjuryCount},
		{"minor_injury_count", r.MinorInjuryCount},
		{"reported_injury_count", r.ReportedInjuryCount},
	}
	for _, c := range counts {
		if c.value < 0 {
			return eris.Wrapf(domain.ErrInvalidInput, "scoring: record %q has negative %s (%d)", r.ID, c.name, c.value)
		}
	}
	return nil
}

// Severity returns the raw weighted severity of one record
func (s *Scorer) Severity(r domain.AccidentRecord) (float64, error) {
	if err := ValidateRecord(r); err != nil {
		return 0, err
	}
	return severity(r, s.cfg.Risk), nil
}

func severity(r domain.AccidentRecord, w RiskWeights) float64 {
	return float64(r.FatalityCount)*w.Fatality +
		float64(r.SeriousInjuryCount)*w.SeriousInjury +
		float64(r.MinorInjuryCount)*w.MinorInjury +
		float64(r.AccidentCount)*w.Accident +
		float64(r.ReportedInjuryCount)*w.ReportedInjury
}

// RiskScore scales one record linearly against LinearReference:
// min(100, severity * 100 / reference).
func (s *Scorer) RiskScore(r domain.AccidentRecord) (float64, error) {
	sev, err := s.Severity(r)
	if err != nil {
		return 0, err
	}
	return s.linear(sev), nil
}

// RiskScoreFrom is RiskScore decayed by the record's distance to ref. Records
// without coordinates are not decayed; records with out-of-range coordinates
// are rejected.
func (s *Scorer) RiskScoreFrom(r domain.AccidentRecord, ref Point) (float64, error) {
	if err := ref.Validate(); err != nil {
		return 0, err
	}
	if lat, lon, ok := r.Location(); ok && !utils.ValidCoordinate(lat, lon) {
		return 0, eris.Wrapf(domain.ErrInvalidCoordinate, "scoring: record %q coordinates (%v, %v)", r.ID, lat, lon)
	}
	score, err := s.RiskScore(r)
	if err != nil {
		return 0, err
	}
	if d, ok := recordDistance(r, ref); ok {
		score *= s.cfg.Bands.Weight(d)
	}
	return utils.Clamp(score, 0, 100), nil
}

func (s *Scorer) linear(sev float64) float64 {
	return utils.Clamp(sev*100/s.cfg.LinearReference, 0, 100)
}
