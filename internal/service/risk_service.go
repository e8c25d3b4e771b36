package service

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kimyuchan-1/MiniProject-sub000/internal/domain"
	"github.com/kimyuchan-1/MiniProject-sub000/internal/scoring"
	"github.com/kimyuchan-1/MiniProject-sub000/pkg/utils"
)

const (
	// DefaultRadiusMeters is used when a point query names no radius
	DefaultRadiusMeters = 500.0
	// MaxRadiusMeters caps point query radii
	MaxRadiusMeters = 5000.0
)

// RiskService answers point, heatmap and crosswalk queries over the repository
type RiskService struct {
	repo   SafetyRepository
	scorer *scoring.Scorer
	isMock bool
	now    func() time.Time
}

// NewRiskService creates a new risk service. isMock marks responses built
// from the in-memory dataset.
func NewRiskService(repo SafetyRepository, scorer *scoring.Scorer, isMock bool) *RiskService {
	if scorer == nil {
		scorer = scoring.Default()
	}
	return &RiskService{
		repo:   repo,
		scorer: scorer,
		isMock: isMock,
		now:    time.Now,
	}
}

// IsMock reports whether the service runs on mock data
func (s *RiskService) IsMock() bool {
	return s.isMock
}

// NormalizeRadius applies the default and the cap. NaN, infinite and negative
// radii are rejected.
func NormalizeRadius(radius float64) (float64, error) {
	if math.IsNaN(radius) || math.IsInf(radius, 0) || radius < 0 {
		return 0, eris.Wrapf(domain.ErrInvalidInput, "radius %v", radius)
	}
	if radius == 0 {
		return DefaultRadiusMeters, nil
	}
	return math.Min(radius, MaxRadiusMeters), nil
}

// fetch loads accidents and crosswalks concurrently
func (s *RiskService) fetch(ctx context.Context, q domain.AccidentQuery, cwBounds domain.Bounds) ([]domain.AccidentRecord, []domain.CrosswalkFacility, error) {
	var (
		accidents  []domain.AccidentRecord
		crosswalks []domain.CrosswalkFacility
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a, err := s.repo.ListAccidents(gctx, q)
		if err != nil {
			return eris.Wrap(err, "service: list accidents")
		}
		accidents = a
		return nil
	})
	g.Go(func() error {
		c, err := s.repo.ListCrosswalks(gctx, cwBounds)
		if err != nil {
			return eris.Wrap(err, "service: list crosswalks")
		}
		crosswalks = c
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	return accidents, crosswalks, nil
}

// AnalyzePoint scores the location: distance-weighted accident risk, hotspot
// count and the safety of crosswalks within radius meters
func (s *RiskService) AnalyzePoint(ctx context.Context, lat, lon, radius float64, year int) (domain.PointAnalysis, error) {
	ref := scoring.Point{Lat: lat, Lon: lon}
	if err := ref.Validate(); err != nil {
		return domain.PointAnalysis{}, err
	}
	radius, err := NormalizeRadius(radius)
	if err != nil {
		return domain.PointAnalysis{}, err
	}

	// accidents are weighted out to the last band regardless of radius
	cfg := s.scorer.Config()
	q := domain.AccidentQuery{
		Bounds: boundsAround(lat, lon, math.Max(radius, cfg.Bands.Cutoff())),
		Year:   year,
	}
	accidents, crosswalks, err := s.fetch(ctx, q, boundsAround(lat, lon, radius))
	if err != nil {
		return domain.PointAnalysis{}, err
	}

	risk, err := s.scorer.AggregatedRiskScore(accidents, ref)
	if err != nil {
		return domain.PointAnalysis{}, eris.Wrap(err, "service: aggregate risk")
	}

	scored := make([]domain.ScoredCrosswalk, 0, len(crosswalks))
	var safetySum float64
	for _, c := range crosswalks {
		cLat, cLon, ok := c.Location()
		if !ok {
			continue
		}
		d, err := scoring.DistanceMeters(lat, lon, cLat, cLon)
		if err != nil || d > radius {
			continue
		}
		sc, err := s.scoreCrosswalk(c)
		if err != nil {
			return domain.PointAnalysis{}, err
		}
		sc.DistanceMeters = &d
		scored = append(scored, sc)
		safetySum += sc.SafetyScore
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return *scored[i].DistanceMeters < *scored[j].DistanceMeters
	})

	avgSafety := 0.0
	if len(scored) > 0 {
		avgSafety = safetySum / float64(len(scored))
	}

	riskClass, err := scoring.Classify(risk, domain.KindRisk)
	if err != nil {
		return domain.PointAnalysis{}, eris.Wrap(err, "service: classify risk")
	}
	safetyClass, err := scoring.Classify(avgSafety, domain.KindSafety)
	if err != nil {
		return domain.PointAnalysis{}, eris.Wrap(err, "service: classify safety")
	}

	analysis := domain.PointAnalysis{
		Latitude:         lat,
		Longitude:        lon,
		RadiusMeters:     radius,
		Year:             year,
		RiskScore:        utils.RoundTo(risk, 2),
		Risk:             riskClass,
		NearbyAccidents:  s.scorer.NearbyCount(accidents, ref),
		AccidentsInRange: len(s.scorer.InRange(accidents, ref)),
		AverageSafety:    utils.RoundTo(avgSafety, 2),
		Safety:           safetyClass,
		Crosswalks:       scored,
		Timestamp:        s.now(),
	}

	zap.L().Debug("point analyzed",
		zap.Float64("lat", lat),
		zap.Float64("lon", lon),
		zap.Float64("radius_m", radius),
		zap.Int("accidents", len(accidents)),
		zap.Int("crosswalks", len(scored)),
		zap.Float64("risk", analysis.RiskScore),
	)

	return analysis, nil
}

// Heatmap builds classified region points for the bounds
func (s *RiskService) Heatmap(ctx context.Context, b domain.Bounds, year int) (domain.Heatmap, error) {
	if err := b.Validate(); err != nil {
		return domain.Heatmap{}, err
	}

	accidents, crosswalks, err := s.fetch(ctx, domain.AccidentQuery{Bounds: b, Year: year}, b)
	if err != nil {
		return domain.Heatmap{}, err
	}

	points, err := s.scorer.HeatmapPoints(accidents, crosswalks)
	if err != nil {
		return domain.Heatmap{}, eris.Wrap(err, "service: heatmap points")
	}
	for i := range points {
		risk, err := scoring.Classify(points[i].RiskScore, domain.KindRisk)
		if err != nil {
			return domain.Heatmap{}, eris.Wrapf(err, "service: classify region %s", points[i].RegionCode)
		}
		safety, err := scoring.Classify(points[i].SafetyScore, domain.KindSafety)
		if err != nil {
			return domain.Heatmap{}, eris.Wrapf(err, "service: classify region %s", points[i].RegionCode)
		}
		points[i].Risk = &risk
		points[i].Safety = &safety
	}

	zap.L().Debug("heatmap generated",
		zap.Int("accidents", len(accidents)),
		zap.Int("crosswalks", len(crosswalks)),
		zap.Int("points", len(points)),
	)

	return domain.Heatmap{
		Bounds:    b,
		Year:      year,
		Points:    points,
		Timestamp: s.now(),
		IsMock:    s.isMock,
	}, nil
}

// CrosswalkSafety scores every crosswalk inside the bounds
func (s *RiskService) CrosswalkSafety(ctx context.Context, b domain.Bounds) ([]domain.ScoredCrosswalk, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}

	crosswalks, err := s.repo.ListCrosswalks(ctx, b)
	if err != nil {
		return nil, eris.Wrap(err, "service: list crosswalks")
	}

	scored := make([]domain.ScoredCrosswalk, 0, len(crosswalks))
	for _, c := range crosswalks {
		sc, err := s.scoreCrosswalk(c)
		if err != nil {
			return nil, err
		}
		scored = append(scored, sc)
	}
	return scored, nil
}

// Classify maps a score to its label and tone
func (s *RiskService) Classify(score float64, kind domain.ScoreKind) (domain.ScoreClassification, error) {
	return scoring.Classify(score, kind)
}

// Health checks the data source
func (s *RiskService) Health(ctx context.Context) error {
	return s.repo.Health(ctx)
}

func (s *RiskService) scoreCrosswalk(c domain.CrosswalkFacility) (domain.ScoredCrosswalk, error) {
	score := s.scorer.SafetyScore(c)
	class, err := scoring.Classify(score, domain.KindSafety)
	if err != nil {
		return domain.ScoredCrosswalk{}, eris.Wrapf(err, "service: classify crosswalk %q", c.ID)
	}
	return domain.ScoredCrosswalk{
		Facility:       c,
		SafetyScore:    score,
		Classification: class,
	}, nil
}

func boundsAround(lat, lon, meters float64) domain.Bounds {
	south, west, north, east := utils.BoundingBox(lat, lon, meters)
	return domain.Bounds{South: south, West: west, North: north, East: east}
}
