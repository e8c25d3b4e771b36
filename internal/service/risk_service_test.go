package service

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-geom"

	"github.com/kimyuchan-1/MiniProject-sub000/internal/domain"
	"github.com/kimyuchan-1/MiniProject-sub000/internal/repository/postgres"
	"github.com/kimyuchan-1/MiniProject-sub000/internal/scoring"
	"github.com/kimyuchan-1/MiniProject-sub000/pkg/utils"
)

// MockRepository is a testify mock of domain.SafetyRepository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) ListAccidents(ctx context.Context, q domain.AccidentQuery) ([]domain.AccidentRecord, error) {
	args := m.Called(ctx, q)
	records, _ := args.Get(0).([]domain.AccidentRecord)
	return records, args.Error(1)
}

func (m *MockRepository) ListCrosswalks(ctx context.Context, b domain.Bounds) ([]domain.CrosswalkFacility, error) {
	args := m.Called(ctx, b)
	facilities, _ := args.Get(0).([]domain.CrosswalkFacility)
	return facilities, args.Error(1)
}

func (m *MockRepository) Health(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

const (
	centerLat = 37.5665
	centerLon = 126.9780
)

var metersPerDegreeLat = utils.EarthRadiusMeters * math.Pi / 180

func northOf(meters float64) (float64, float64) {
	return centerLat + meters/metersPerDegreeLat, centerLon
}

func fixedClock(s *RiskService) time.Time {
	ts := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return ts }
	return ts
}

func TestNormalizeRadius(t *testing.T) {
	tests := []struct {
		in      float64
		want    float64
		wantErr bool
	}{
		{0, DefaultRadiusMeters, false},
		{250, 250, false},
		{5000, 5000, false},
		{12000, MaxRadiusMeters, false},
		{-1, 0, true},
		{math.NaN(), 0, true},
		{math.Inf(1), 0, true},
	}
	for _, tt := range tests {
		got, err := NormalizeRadius(tt.in)
		if tt.wantErr {
			assert.ErrorIs(t, err, domain.ErrInvalidInput, "radius %v", tt.in)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "radius %v", tt.in)
	}
}

func TestAnalyzePoint(t *testing.T) {
	repo := new(MockRepository)
	svc := NewRiskService(repo, scoring.Default(), false)
	ts := fixedClock(svc)

	aLat, aLon := northOf(30)
	accidents := []domain.AccidentRecord{
		{ID: "near", Year: 2023, AccidentCount: 10, Latitude: domain.Float64(aLat), Longitude: domain.Float64(aLon)},
	}

	farLat, farLon := northOf(300)
	outLat, outLon := northOf(800)
	crosswalks := []domain.CrosswalkFacility{
		{ID: "far", Latitude: domain.Float64(farLat), Longitude: domain.Float64(farLon), HasSignal: domain.Bool(true)},
		{
			ID: "here", Latitude: domain.Float64(centerLat), Longitude: domain.Float64(centerLon),
			HasSignal: domain.Bool(true), PedestrianButton: domain.Bool(true), SoundSignal: domain.Bool(true),
			RemainingTimeDisplay: domain.Bool(true), HighlandCrossing: domain.Bool(true), CurbRamp: domain.Bool(true),
			BrailleBlock: domain.Bool(true), Spotlight: domain.Bool(true),
		},
		{ID: "outside", Latitude: domain.Float64(outLat), Longitude: domain.Float64(outLon), HasSignal: domain.Bool(true)},
		{ID: "unlocated", HasSignal: domain.Bool(true)},
	}

	repo.On("ListAccidents", mock.Anything, mock.MatchedBy(func(q domain.AccidentQuery) bool {
		return q.Year == 2023 && q.Bounds.Contains(centerLat, centerLon)
	})).Return(accidents, nil).Once()
	repo.On("ListCrosswalks", mock.Anything, mock.Anything).Return(crosswalks, nil).Once()

	got, err := svc.AnalyzePoint(context.Background(), centerLat, centerLon, 0, 2023)
	require.NoError(t, err)

	assert.Equal(t, DefaultRadiusMeters, got.RadiusMeters)
	assert.Equal(t, 2023, got.Year)
	assert.Equal(t, ts, got.Timestamp)

	wantRisk := 100 * (1 - math.Exp(-10/scoring.DefaultSaturationK))
	assert.InDelta(t, wantRisk, got.RiskScore, 0.01)
	assert.Equal(t, domain.ToneExcellent, got.Risk.Tone)
	assert.Equal(t, 1, got.NearbyAccidents)
	assert.Equal(t, 1, got.AccidentsInRange)

	require.Len(t, got.Crosswalks, 2)
	assert.Equal(t, "here", got.Crosswalks[0].Facility.ID)
	assert.Equal(t, 100.0, got.Crosswalks[0].SafetyScore)
	assert.Equal(t, domain.ToneExcellent, got.Crosswalks[0].Classification.Tone)
	assert.InDelta(t, 0, *got.Crosswalks[0].DistanceMeters, 1e-6)
	assert.Equal(t, "far", got.Crosswalks[1].Facility.ID)
	assert.InDelta(t, 300, *got.Crosswalks[1].DistanceMeters, 0.5)

	assert.InDelta(t, 65, got.AverageSafety, 1e-9)
	assert.Equal(t, domain.ToneGood, got.Safety.Tone)

	repo.AssertExpectations(t)
}

func TestAnalyzePointNoData(t *testing.T) {
	repo := new(MockRepository)
	svc := NewRiskService(repo, nil, false)

	repo.On("ListAccidents", mock.Anything, mock.Anything).Return([]domain.AccidentRecord{}, nil)
	repo.On("ListCrosswalks", mock.Anything, mock.Anything).Return([]domain.CrosswalkFacility{}, nil)

	got, err := svc.AnalyzePoint(context.Background(), centerLat, centerLon, 200, 0)
	require.NoError(t, err)
	assert.Equal(t, 0.0, got.RiskScore)
	assert.Equal(t, 0.0, got.AverageSafety)
	assert.Equal(t, domain.ToneCritical, got.Safety.Tone)
	assert.NotNil(t, got.Crosswalks)
	assert.Empty(t, got.Crosswalks)
}

func TestAnalyzePointInvalidInput(t *testing.T) {
	repo := new(MockRepository)
	svc := NewRiskService(repo, nil, false)
	ctx := context.Background()

	_, err := svc.AnalyzePoint(ctx, 91, 0, 500, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidCoordinate)

	_, err = svc.AnalyzePoint(ctx, math.NaN(), 0, 500, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidCoordinate)

	_, err = svc.AnalyzePoint(ctx, centerLat, centerLon, -10, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	repo.AssertNotCalled(t, "ListAccidents", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "ListCrosswalks", mock.Anything, mock.Anything)
}

func TestAnalyzePointRepositoryError(t *testing.T) {
	repo := new(MockRepository)
	svc := NewRiskService(repo, nil, false)

	repo.On("ListAccidents", mock.Anything, mock.Anything).Return(nil, errors.New("connection refused"))
	repo.On("ListCrosswalks", mock.Anything, mock.Anything).Return([]domain.CrosswalkFacility{}, nil).Maybe()

	_, err := svc.AnalyzePoint(context.Background(), centerLat, centerLon, 500, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list accidents")
}

func TestAnalyzePointNegativeCounts(t *testing.T) {
	repo := new(MockRepository)
	svc := NewRiskService(repo, nil, false)

	bad := domain.AccidentRecord{ID: "bad", MinorInjuryCount: -3, Latitude: domain.Float64(centerLat), Longitude: domain.Float64(centerLon)}
	repo.On("ListAccidents", mock.Anything, mock.Anything).Return([]domain.AccidentRecord{bad}, nil)
	repo.On("ListCrosswalks", mock.Anything, mock.Anything).Return([]domain.CrosswalkFacility{}, nil)

	_, err := svc.AnalyzePoint(context.Background(), centerLat, centerLon, 500, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestHeatmapOnMockData(t *testing.T) {
	svc := NewRiskService(postgres.NewMockRepository(), nil, true)
	ts := fixedClock(svc)

	seoul := domain.Bounds{South: 37.4, West: 126.8, North: 37.7, East: 127.2}
	hm, err := svc.Heatmap(context.Background(), seoul, 2023)
	require.NoError(t, err)

	assert.True(t, hm.IsMock)
	assert.Equal(t, seoul, hm.Bounds)
	assert.Equal(t, ts, hm.Timestamp)
	require.NotEmpty(t, hm.Points)

	for i, p := range hm.Points {
		require.NotNil(t, p.Risk)
		require.NotNil(t, p.Safety)
		assert.GreaterOrEqual(t, p.RiskScore, 0.0)
		assert.LessOrEqual(t, p.RiskScore, 100.0)
		assert.InDelta(t, p.SafetyScore-p.RiskScore, p.CombinedScore, 1e-9)
		want, err := scoring.Classify(p.RiskScore, domain.KindRisk)
		require.NoError(t, err)
		assert.Equal(t, want, *p.Risk)
		if i > 0 {
			assert.Less(t, hm.Points[i-1].RegionCode, p.RegionCode)
		}
	}
}

func TestHeatmapInvalidBounds(t *testing.T) {
	repo := new(MockRepository)
	svc := NewRiskService(repo, nil, false)

	_, err := svc.Heatmap(context.Background(), domain.Bounds{South: 38, West: 126, North: 37, East: 127}, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidCoordinate)

	_, err = svc.HeatmapGeoJSON(context.Background(), domain.Bounds{South: 37, West: 126, North: 95, East: 127}, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidCoordinate)

	repo.AssertNotCalled(t, "ListAccidents", mock.Anything, mock.Anything)
}

func TestHeatmapGeoJSON(t *testing.T) {
	svc := NewRiskService(postgres.NewMockRepository(), nil, true)

	hm, err := svc.Heatmap(context.Background(), domain.Bounds{}, 0)
	require.NoError(t, err)
	fc, err := svc.HeatmapGeoJSON(context.Background(), domain.Bounds{}, 0)
	require.NoError(t, err)
	require.Len(t, fc.Features, len(hm.Points))

	for i, f := range fc.Features {
		p := hm.Points[i]
		pt, ok := f.Geometry.(*geom.Point)
		require.True(t, ok)
		assert.Equal(t, []float64{p.Longitude, p.Latitude}, pt.FlatCoords())
		assert.Equal(t, p.RegionCode, f.Properties["region_code"])
		assert.Equal(t, string(p.Risk.Tone), f.Properties["risk_tone"])
	}

	raw, err := json.Marshal(fc)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"FeatureCollection"`)
	assert.Contains(t, string(raw), `"Point"`)
}

func TestCrosswalkSafety(t *testing.T) {
	svc := NewRiskService(postgres.NewMockRepository(), nil, true)

	jongno := domain.Bounds{South: 37.565, West: 126.97, North: 37.575, East: 126.99}
	scored, err := svc.CrosswalkSafety(context.Background(), jongno)
	require.NoError(t, err)
	require.Len(t, scored, 2)

	assert.Equal(t, "cw-001", scored[0].Facility.ID)
	assert.Equal(t, 100.0, scored[0].SafetyScore)
	assert.Equal(t, domain.ToneExcellent, scored[0].Classification.Tone)
	assert.Nil(t, scored[0].DistanceMeters)

	// signal, sound, remaining time, curb ramp, braille
	assert.Equal(t, 73.0, scored[1].SafetyScore)
	assert.Equal(t, domain.ToneGood, scored[1].Classification.Tone)

	_, err = svc.CrosswalkSafety(context.Background(), domain.Bounds{South: math.NaN(), North: 1, East: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidCoordinate)
}

func TestClassifyAndHealth(t *testing.T) {
	repo := new(MockRepository)
	svc := NewRiskService(repo, nil, false)
	assert.False(t, svc.IsMock())

	c, err := svc.Classify(85, domain.KindRisk)
	require.NoError(t, err)
	assert.Equal(t, domain.ToneCritical, c.Tone)

	repo.On("Health", mock.Anything).Return(errors.New("down")).Once()
	assert.Error(t, svc.Health(context.Background()))
	repo.On("Health", mock.Anything).Return(nil).Once()
	assert.NoError(t, svc.Health(context.Background()))
	repo.AssertExpectations(t)
}

func TestAnalyzePointAcrossAntimeridian(t *testing.T) {
	lat, lon := 0.0, 179.9999
	// 60 m east of lon, past the antimeridian
	across := lon + 60/metersPerDegreeLat - 360
	accidents := []domain.AccidentRecord{
		{ID: "east", Year: 2023, AccidentCount: 10, FatalityCount: 1, Latitude: domain.Float64(lat), Longitude: domain.Float64(across)},
	}
	svc := NewRiskService(postgres.NewMockRepositoryFrom(accidents, []domain.CrosswalkFacility{}), nil, false)

	got, err := svc.AnalyzePoint(context.Background(), lat, lon, 500, 0)
	require.NoError(t, err)

	want, err := scoring.Default().AggregatedRiskScore(accidents, scoring.Point{Lat: lat, Lon: lon})
	require.NoError(t, err)
	assert.Greater(t, want, 0.0)
	assert.InDelta(t, want, got.RiskScore, 0.01)
	assert.Equal(t, 1, got.NearbyAccidents)
	assert.Equal(t, 1, got.AccidentsInRange)
}

func TestServiceClassificationsMatchClassify(t *testing.T) {
	svc := NewRiskService(postgres.NewMockRepository(), nil, true)
	ctx := context.Background()

	var (
		analysis domain.PointAnalysis
		scored   []domain.ScoredCrosswalk
		err      error
	)
	require.NotPanics(t, func() {
		analysis, err = svc.AnalyzePoint(ctx, 37.5704, 126.9831, 500, 2023)
	})
	require.NoError(t, err)

	want, err := scoring.Classify(analysis.RiskScore, domain.KindRisk)
	require.NoError(t, err)
	assert.Equal(t, want.Tone, analysis.Risk.Tone)
	for _, c := range analysis.Crosswalks {
		want, err := scoring.Classify(c.SafetyScore, domain.KindSafety)
		require.NoError(t, err)
		assert.Equal(t, want, c.Classification, c.Facility.ID)
	}

	require.NotPanics(t, func() {
		scored, err = svc.CrosswalkSafety(ctx, domain.Bounds{South: 37.4, West: 126.8, North: 37.7, East: 127.2})
	})
	require.NoError(t, err)
	require.NotEmpty(t, scored)
	for _, c := range scored {
		want, err := scoring.Classify(c.SafetyScore, domain.KindSafety)
		require.NoError(t, err)
		assert.Equal(t, want, c.Classification, c.Facility.ID)
	}
}
