package scoring

import (
	"github.com/rotisserie/eris"

	"github.com/kimyuchan-1/MiniProject-sub000/internal/domain"
	"github.com/kimyuchan-1/MiniProject-sub000/pkg/utils"
)

// Point is a reference location in decimal degrees
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Validate returns ErrInvalidCoordinate unless the point is finite and in range
func (p Point) Validate() error {
	if !utils.ValidCoordinate(p.Lat, p.Lon) {
		return eris.Wrapf(domain.ErrInvalidCoordinate, "scoring: point (%v, %v)", p.Lat, p.Lon)
	}
	return nil
}

// DistanceMeters returns the great-circle distance between two coordinates.
// Invalid coordinates yield ErrInvalidCoordinate, never a number.
func DistanceMeters(lat1, lon1, lat2, lon2 float64) (float64, error) {
	if err := (Point{Lat: lat1, Lon: lon1}).Validate(); err != nil {
		return 0, err
	}
	if err := (Point{Lat: lat2, Lon: lon2}).Validate(); err != nil {
		return 0, err
	}
	return utils.Haversine(lat1, lon1, lat2, lon2), nil
}

// recordDistance is the distance from a record to ref; ok is false when the
// record has no usable coordinates.
func recordDistance(r domain.AccidentRecord, ref Point) (float64, bool) {
	lat, lon, ok := r.Location()
	if !ok || !utils.ValidCoordinate(lat, lon) {
		return 0, false
	}
	return utils.Haversine(lat, lon, ref.Lat, ref.Lon), true
}
