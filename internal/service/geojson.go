package service

import (
	"context"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/kimyuchan-1/MiniProject-sub000/internal/domain"
)

// HeatmapGeoJSON returns the heatmap as a FeatureCollection of points.
// Coordinates are [lon, lat] as GeoJSON requires.
func (s *RiskService) HeatmapGeoJSON(ctx context.Context, b domain.Bounds, year int) (*geojson.FeatureCollection, error) {
	hm, err := s.Heatmap(ctx, b, year)
	if err != nil {
		return nil, err
	}
	return PointsToGeoJSON(hm.Points), nil
}

// PointsToGeoJSON converts scored points into GeoJSON features
func PointsToGeoJSON(points []domain.ScoredPoint) *geojson.FeatureCollection {
	fc := &geojson.FeatureCollection{
		Features: make([]*geojson.Feature, 0, len(points)),
	}
	for _, p := range points {
		props := map[string]interface{}{
			"region_code":    p.RegionCode,
			"risk_score":     p.RiskScore,
			"safety_score":   p.SafetyScore,
			"combined_score": p.CombinedScore,
			"accident_count": p.AccidentCount,
			"facility_count": p.FacilityCount,
		}
		if p.Risk != nil {
			props["risk_label"] = p.Risk.Label
			props["risk_tone"] = string(p.Risk.Tone)
		}
		if p.Safety != nil {
			props["safety_label"] = p.Safety.Label
			props["safety_tone"] = string(p.Safety.Tone)
		}

		fc.Features = append(fc.Features, &geojson.Feature{
			ID:         p.RegionCode,
			Geometry:   geom.NewPointFlat(geom.XY, []float64{p.Longitude, p.Latitude}),
			Properties: props,
		})
	}
	return fc
}
