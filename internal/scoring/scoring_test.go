package scoring

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kimyuchan-1/MiniProject-sub000/internal/domain"
	"github.com/kimyuchan-1/MiniProject-sub000/pkg/utils"
)

// metersPerDegreeLat is the length of one degree of latitude on the Haversine sphere
const metersPerDegreeLat = utils.EarthRadiusMeters * math.Pi / 180

var refPoint = Point{Lat: 37.5665, Lon: 126.9780}

// northOf returns a coordinate the given distance due north of refPoint
func northOf(meters float64) (*float64, *float64) {
	return domain.Float64(refPoint.Lat + meters/metersPerDegreeLat), domain.Float64(refPoint.Lon)
}

// recordAt builds a record with only AccidentCount set, located north of refPoint
func recordAt(id string, meters float64, accidents int) domain.AccidentRecord {
	lat, lon := northOf(meters)
	return domain.AccidentRecord{ID: id, AccidentCount: accidents, Latitude: lat, Longitude: lon}
}

func TestConfigDefaults(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.InDelta(t, 100.0, cfg.Safety.Sum(), 1e-9)
	assert.Equal(t, 40.0, cfg.LinearReference)
	assert.Equal(t, 80.0, cfg.SaturationK)
	assert.Equal(t, 500.0, cfg.Bands.Cutoff())

	// defaults are values: changing one copy leaves the next untouched
	cfg.Risk.Fatality = 99
	assert.Equal(t, 10.0, DefaultRiskWeights().Fatality)
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative risk weight", func(c *Config) { c.Risk.SeriousInjury = -1 }},
		{"negative safety weight", func(c *Config) { c.Safety.Spotlight = -0.5 }},
		{"no bands", func(c *Config) { c.Bands = DistanceBands{} }},
		{"zero linear reference", func(c *Config) { c.LinearReference = 0 }},
		{"negative saturation", func(c *Config) { c.SaturationK = -80 }},
		{"zero hotspot radius", func(c *Config) { c.HotspotRadius = 0 }},
		{"zero region cutoff", func(c *Config) { c.RegionCutoffDegrees = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			s, err := New(cfg)
			assert.Nil(t, s)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestNewKeepsConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LinearReference = 20
	s, err := New(cfg)
	require.NoError(t, err)
	assert.Equal(t, 20.0, s.Config().LinearReference)
}
