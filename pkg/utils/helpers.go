package utils

import (
	"math"
)

// EarthRadiusMeters is the mean Earth radius used for great-circle distances
const EarthRadiusMeters = 6371000.0

// Haversine calculates distance between two points in meters.
// Inputs are not validated; see ValidCoordinate.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	deltaLat := (lat2 - lat1) * math.Pi / 180
	deltaLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLon/2)*math.Sin(deltaLon/2)
	// rounding can push a slightly above 1 for antipodal points
	a = Clamp(a, 0, 1)

	return 2 * EarthRadiusMeters * math.Asin(math.Sqrt(a))
}

// ValidCoordinate reports whether lat/lon are finite decimal degrees in range
func ValidCoordinate(lat, lon float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lon) || math.IsInf(lat, 0) || math.IsInf(lon, 0) {
		return false
	}
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

// DegreeDistance is the planar Euclidean distance in degree space
func DegreeDistance(lat1, lon1, lat2, lon2 float64) float64 {
	return math.Hypot(lat2-lat1, lon2-lon1)
}

// Clamp limits a value between min and max
func Clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// RoundTo rounds a float to specified decimal places
func RoundTo(value float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(value*factor) / factor
}

// BoundingBox returns the south/west/north/east box enclosing a circle of
// radius meters around lat/lon. Latitudes are clamped at the poles. A circle
// that crosses the antimeridian gets the full -180..180 longitude range, since
// a single west <= east box cannot wrap.
func BoundingBox(lat, lon, meters float64) (south, west, north, east float64) {
	dLat := meters / EarthRadiusMeters * 180 / math.Pi
	south = Clamp(lat-dLat, -90, 90)
	north = Clamp(lat+dLat, -90, 90)

	cos := math.Cos(lat * math.Pi / 180)
	if cos < 1e-9 || dLat/cos >= 180 {
		return south, -180, north, 180
	}
	dLon := dLat / cos
	if lon-dLon < -180 || lon+dLon > 180 {
		return south, -180, north, 180
	}
	return south, lon - dLon, north, lon + dLon
}
