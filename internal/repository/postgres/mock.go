package postgres

import (
	"context"

	"github.com/kimyuchan-1/MiniProject-sub000/internal/domain"
)

// MockRepository implements domain.SafetyRepository on a fixed Seoul dataset
// for demo mode and tests
type MockRepository struct {
	accidents  []domain.AccidentRecord
	crosswalks []domain.CrosswalkFacility
}

// NewMockRepository creates a new mock repository
func NewMockRepository() *MockRepository {
	return &MockRepository{
		accidents:  mockAccidents(),
		crosswalks: mockCrosswalks(),
	}
}

// NewMockRepositoryFrom serves the given records instead of the built-in dataset
func NewMockRepositoryFrom(accidents []domain.AccidentRecord, crosswalks []domain.CrosswalkFacility) *MockRepository {
	return &MockRepository{
		accidents:  accidents,
		crosswalks: crosswalks,
	}
}

// ListAccidents filters the fixed accident set
func (r *MockRepository) ListAccidents(ctx context.Context, q domain.AccidentQuery) ([]domain.AccidentRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	results := []domain.AccidentRecord{}
	for _, a := range r.accidents {
		if q.Year > 0 && a.Year != q.Year {
			continue
		}
		if q.DistrictCode != "" && a.DistrictCode != q.DistrictCode {
			continue
		}
		if !q.Bounds.IsZero() {
			lat, lon, ok := a.Location()
			if !ok || !q.Bounds.Contains(lat, lon) {
				continue
			}
		}
		results = append(results, a)
	}
	return results, nil
}

// ListCrosswalks filters the fixed crosswalk set
func (r *MockRepository) ListCrosswalks(ctx context.Context, b domain.Bounds) ([]domain.CrosswalkFacility, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	results := []domain.CrosswalkFacility{}
	for _, c := range r.crosswalks {
		if !b.IsZero() {
			lat, lon, ok := c.Location()
			if !ok || !b.Contains(lat, lon) {
				continue
			}
		}
		results = append(results, c)
	}
	return results, nil
}

// Health always returns nil in mock mode
func (r *MockRepository) Health(ctx context.Context) error {
	return nil
}

func accident(id, district string, year, accidents, casualties, fatalities, serious, minor, reported int, lat, lon float64) domain.AccidentRecord {
	return domain.AccidentRecord{
		ID:                  id,
		DistrictCode:        district,
		Year:                year,
		AccidentCount:       accidents,
		CasualtyCount:       casualties,
		FatalityCount:       fatalities,
		SeriousInjuryCount:  serious,
		MinorInjuryCount:    minor,
		ReportedInjuryCount: reported,
		Latitude:            domain.Float64(lat),
		Longitude:           domain.Float64(lon),
	}
}

// Jongno-gu, Jung-gu, Yongsan-gu and Gangnam-gu hotspots around central Seoul
func mockAccidents() []domain.AccidentRecord {
	return []domain.AccidentRecord{
		accident("acc-11110-2023-1", "11110", 2023, 12, 14, 1, 4, 8, 1, 37.5704, 126.9831),
		accident("acc-11110-2023-2", "11110", 2023, 5, 5, 0, 2, 3, 0, 37.5725, 126.9769),
		accident("acc-11110-2022-1", "11110", 2022, 9, 10, 0, 3, 6, 1, 37.5704, 126.9831),
		accident("acc-11140-2023-1", "11140", 2023, 18, 21, 2, 7, 11, 1, 37.5636, 126.9976),
		accident("acc-11140-2023-2", "11140", 2023, 7, 8, 0, 2, 5, 1, 37.5600, 126.9810),
		accident("acc-11140-2022-1", "11140", 2022, 11, 12, 1, 3, 7, 1, 37.5636, 126.9976),
		accident("acc-11170-2023-1", "11170", 2023, 6, 6, 0, 1, 4, 1, 37.5326, 126.9905),
		accident("acc-11680-2023-1", "11680", 2023, 21, 25, 1, 8, 14, 2, 37.4979, 127.0276),
		accident("acc-11680-2023-2", "11680", 2023, 10, 11, 0, 3, 7, 1, 37.5172, 127.0473),
		{
			ID:               "acc-11650-2023-1",
			DistrictCode:     "11650",
			Year:             2023,
			AccidentCount:    8,
			CasualtyCount:    9,
			MinorInjuryCount: 9,
		},
	}
}

func crosswalk(id, sigungu, address string, lat, lon float64, signal, button, sound, remaining, highland, ramp, braille, spotlight bool) domain.CrosswalkFacility {
	return domain.CrosswalkFacility{
		ID:                   id,
		Sido:                 "서울특별시",
		Sigungu:              sigungu,
		Address:              address,
		Latitude:             domain.Float64(lat),
		Longitude:            domain.Float64(lon),
		HasSignal:            domain.Bool(signal),
		PedestrianButton:     domain.Bool(button),
		SoundSignal:          domain.Bool(sound),
		RemainingTimeDisplay: domain.Bool(remaining),
		HighlandCrossing:     domain.Bool(highland),
		CurbRamp:             domain.Bool(ramp),
		BrailleBlock:         domain.Bool(braille),
		Spotlight:            domain.Bool(spotlight),
	}
}

func mockCrosswalks() []domain.CrosswalkFacility {
	return []domain.CrosswalkFacility{
		crosswalk("cw-001", "종로구", "종로 1가", 37.5702, 126.9828, true, true, true, true, true, true, true, true),
		crosswalk("cw-002", "종로구", "세종대로 172", 37.5720, 126.9768, true, false, true, true, false, true, true, false),
		crosswalk("cw-003", "중구", "을지로 3가", 37.5662, 126.9918, true, false, false, true, false, true, false, false),
		crosswalk("cw-004", "중구", "남대문로 5가", 37.5598, 126.9812, false, false, false, false, false, true, false, false),
		crosswalk("cw-005", "용산구", "한강대로 100", 37.5328, 126.9902, true, true, false, false, false, false, true, true),
		crosswalk("cw-006", "강남구", "강남대로 396", 37.4981, 127.0279, true, true, true, true, true, true, true, false),
		crosswalk("cw-007", "강남구", "테헤란로 521", 37.5085, 127.0630, true, false, true, false, false, true, false, true),
		{
			ID:        "cw-008",
			Sido:      "서울특별시",
			Sigungu:   "중구",
			Address:   "퇴계로 100",
			Latitude:  domain.Float64(37.5610),
			Longitude: domain.Float64(126.9855),
			HasSignal: domain.Bool(true),
		},
	}
}
