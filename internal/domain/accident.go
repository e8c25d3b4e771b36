package domain

import (
	"github.com/rotisserie/eris"

	"github.com/kimyuchan-1/MiniProject-sub000/pkg/utils"
)

// AccidentRecord is one aggregated pedestrian-accident statistics row for a
// district and year. Coordinates are optional and may be estimated.
type AccidentRecord struct {
	ID           string `json:"id"`
	DistrictCode string `json:"district_code"`
	Year         int    `json:"year"`
	Month        int    `json:"month,omitempty"`

	AccidentCount       int `json:"accident_count"`
	CasualtyCount       int `json:"casualty_count"`
	FatalityCount       int `json:"fatality_count"`
	SeriousInjuryCount  int `json:"serious_injury_count"`
	MinorInjuryCount    int `json:"minor_injury_count"`
	ReportedInjuryCount int `json:"reported_injury_count"`

	Latitude  *float64 `json:"lat,omitempty"`
	Longitude *float64 `json:"lon,omitempty"`
}

// Location returns the record coordinates and whether both are present
func (r AccidentRecord) Location() (lat, lon float64, ok bool) {
	if r.Latitude == nil || r.Longitude == nil {
		return 0, 0, false
	}
	return *r.Latitude, *r.Longitude, true
}

// AccidentQuery filters accident records fetched from the data source.
// Zero values mean "no filter".
type AccidentQuery struct {
	Bounds       Bounds
	Year         int
	DistrictCode string
}

// Bounds is a latitude/longitude bounding box
type Bounds struct {
	South float64 `json:"south"`
	West  float64 `json:"west"`
	North float64 `json:"north"`
	East  float64 `json:"east"`
}

// IsZero reports whether no bounds were set
func (b Bounds) IsZero() bool {
	return b == Bounds{}
}

// Validate checks that the box corners are valid coordinates and ordered.
// The zero box is valid and means "everywhere".
func (b Bounds) Validate() error {
	if b.IsZero() {
		return nil
	}
	if !utils.ValidCoordinate(b.South, b.West) || !utils.ValidCoordinate(b.North, b.East) {
		return eris.Wrapf(ErrInvalidCoordinate, "bounds %+v", b)
	}
	if b.South > b.North || b.West > b.East {
		return eris.Wrapf(ErrInvalidCoordinate, "bounds %+v are not ordered south<=north, west<=east", b)
	}
	return nil
}

// Contains reports whether the point lies inside the box (edges included)
func (b Bounds) Contains(lat, lon float64) bool {
	return lat >= b.South && lat <= b.North && lon >= b.West && lon <= b.East
}

// Float64 returns a pointer to v, for building records with coordinates
func Float64(v float64) *float64 {
	return &v
}

// Bool returns a pointer to v, for building facility flags
func Bool(v bool) *bool {
	return &v
}
