package scoring

import (
	"fmt"
	"math"
	"sort"

	"github.com/kimyuchan-1/MiniProject-sub000/internal/domain"
	"github.com/kimyuchan-1/MiniProject-sub000/pkg/utils"
)

// regionGroup accumulates the accidents and facilities of one heatmap region
type regionGroup struct {
	key            string
	latSum, lonSum float64
	accidents      int
	riskSum        float64
	safetySum      float64
	facilities     int
}

func (g *regionGroup) add(lat, lon, risk float64) {
	g.latSum += lat
	g.lonSum += lon
	g.accidents++
	g.riskSum += risk
}

func (g *regionGroup) centroid() (float64, float64) {
	return g.latSum / float64(g.accidents), g.lonSum / float64(g.accidents)
}

// HeatmapPoints groups accidents by region and emits one scored point per
// region with at least one located accident.
//
// Region risk is the sum of per-record linear risk scores capped at 100; this
// is a coarser policy than AggregatedRiskScore and the two must not be mixed.
// Records without a district code join the nearest region seen so far within
// RegionCutoffDegrees, or start their own. Facilities join their nearest region
// within the same cutoff, and a region's safety is the mean of its facilities'
// scores (0 without any).
func (s *Scorer) HeatmapPoints(accidents []domain.AccidentRecord, facilities []domain.CrosswalkFacility) ([]domain.ScoredPoint, error) {
	groups := make(map[string]*regionGroup)
	var order []*regionGroup

	type located struct {
		rec      domain.AccidentRecord
		lat, lon float64
		risk     float64
		idx      int
	}
	var coded, uncoded []located
	for i, r := range accidents {
		if err := ValidateRecord(r); err != nil {
			return nil, err
		}
		lat, lon, ok := r.Location()
		if !ok || !utils.ValidCoordinate(lat, lon) {
			continue
		}
		l := located{rec: r, lat: lat, lon: lon, risk: s.linear(severity(r, s.cfg.Risk)), idx: i}
		if r.DistrictCode != "" {
			coded = append(coded, l)
		} else {
			uncoded = append(uncoded, l)
		}
	}

	for _, l := range coded {
		g, ok := groups[l.rec.DistrictCode]
		if !ok {
			g = &regionGroup{key: l.rec.DistrictCode}
			groups[g.key] = g
			order = append(order, g)
		}
		g.add(l.lat, l.lon, l.risk)
	}

	for _, l := range uncoded {
		g := nearestGroup(order, l.lat, l.lon, s.cfg.RegionCutoffDegrees)
		if g == nil {
			key := "record:" + l.rec.ID
			if l.rec.ID == "" {
				key = fmt.Sprintf("record:#%d", l.idx)
			} else if _, taken := groups[key]; taken {
				// duplicate IDs far apart
				key = fmt.Sprintf("record:%s#%d", l.rec.ID, l.idx)
			}
			g = &regionGroup{key: key}
			groups[key] = g
			order = append(order, g)
		}
		g.add(l.lat, l.lon, l.risk)
	}

	if len(order) == 0 {
		return []domain.ScoredPoint{}, nil
	}

	for _, f := range facilities {
		lat, lon, ok := f.Location()
		if !ok || !utils.ValidCoordinate(lat, lon) {
			continue
		}
		g := nearestGroup(order, lat, lon, s.cfg.RegionCutoffDegrees)
		if g == nil {
			continue
		}
		g.safetySum += s.SafetyScore(f)
		g.facilities++
	}

	points := make([]domain.ScoredPoint, 0, len(order))
	for _, g := range order {
		lat, lon := g.centroid()
		risk := math.Min(g.riskSum, 100)
		var safety float64
		if g.facilities > 0 {
			safety = g.safetySum / float64(g.facilities)
		}
		points = append(points, domain.ScoredPoint{
			RegionCode:    g.key,
			Latitude:      lat,
			Longitude:     lon,
			RiskScore:     risk,
			SafetyScore:   safety,
			CombinedScore: safety - risk,
			AccidentCount: g.accidents,
			FacilityCount: g.facilities,
		})
	}

	sort.SliceStable(points, func(i, j int) bool {
		return points[i].RegionCode < points[j].RegionCode
	})
	return points, nil
}

// nearestGroup returns the group whose current centroid is closest in degree
// space, or nil when none is within cutoff. Ties keep the earlier group.
func nearestGroup(groups []*regionGroup, lat, lon, cutoff float64) *regionGroup {
	var best *regionGroup
	bestDist := math.Inf(1)
	for _, g := range groups {
		cLat, cLon := g.centroid()
		d := utils.DegreeDistance(lat, lon, cLat, cLon)
		if d <= cutoff && d < bestDist {
			best = g
			bestDist = d
		}
	}
	return best
}
