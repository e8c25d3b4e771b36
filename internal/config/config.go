// Package config loads server, database, logging and scoring configuration
// from .env files, an optional config.yaml and the environment.
package config

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/kimyuchan-1/MiniProject-sub000/internal/scoring"
)

// Config is the root application configuration.
type Config struct {
	Env      string         `mapstructure:"env"`
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Log      LogConfig      `mapstructure:"log"`
	Scoring  ScoringConfig  `mapstructure:"scoring"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Port                string `mapstructure:"port"`
	ReadTimeoutSecs     int    `mapstructure:"read_timeout_secs"`
	WriteTimeoutSecs    int    `mapstructure:"write_timeout_secs"`
	ShutdownTimeoutSecs int    `mapstructure:"shutdown_timeout_secs"`
	AllowOrigins        string `mapstructure:"allow_origins"`
}

// DatabaseConfig configures the Postgres pool. An empty URL runs on mock data.
type DatabaseConfig struct {
	URL             string `mapstructure:"url"`
	MaxConns        int32  `mapstructure:"max_conns"`
	MinConns        int32  `mapstructure:"min_conns"`
	ConnectTimeoutS int    `mapstructure:"connect_timeout_secs"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ScoringConfig mirrors scoring.Config in a decodable form.
type ScoringConfig struct {
	Risk                scoring.RiskWeights   `mapstructure:"risk"`
	Safety              scoring.SafetyWeights `mapstructure:"safety"`
	Bands               []scoring.Band        `mapstructure:"bands"`
	LinearReference     float64               `mapstructure:"linear_reference"`
	SaturationK         float64               `mapstructure:"saturation_k"`
	HotspotRadius       float64               `mapstructure:"hotspot_radius"`
	RegionCutoffDegrees float64               `mapstructure:"region_cutoff_degrees"`
}

// ToScoring validates the section and builds the immutable scoring.Config.
func (c ScoringConfig) ToScoring() (scoring.Config, error) {
	bands, err := scoring.NewDistanceBands(c.Bands...)
	if err != nil {
		return scoring.Config{}, eris.Wrap(err, "config: scoring bands")
	}
	cfg := scoring.Config{
		Risk:                c.Risk,
		Safety:              c.Safety,
		Bands:               bands,
		LinearReference:     c.LinearReference,
		SaturationK:         c.SaturationK,
		HotspotRadius:       c.HotspotRadius,
		RegionCutoffDegrees: c.RegionCutoffDegrees,
	}
	if err := cfg.Validate(); err != nil {
		return scoring.Config{}, eris.Wrap(err, "config: scoring")
	}
	return cfg, nil
}

// LoadDotEnv loads .env style files into the process environment. It reports
// whether any file was read; missing files are not an error.
func LoadDotEnv(files ...string) bool {
	return godotenv.Load(files...) == nil
}

// Load reads configuration from file and environment. An empty path looks for
// config.yaml in the working directory and ignores it when absent.
func Load(path string) (*Config, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	// Environment
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("env", "GO_ENV")
	_ = v.BindEnv("server.port", "PORT", "SERVER_PORT")
	_ = v.BindEnv("database.url", "DATABASE_URL")

	setDefaults(v)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || path != "" {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "development")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.read_timeout_secs", 10)
	v.SetDefault("server.write_timeout_secs", 10)
	v.SetDefault("server.shutdown_timeout_secs", 5)
	v.SetDefault("server.allow_origins", "*")
	v.SetDefault("database.url", "")
	v.SetDefault("database.max_conns", 10)
	v.SetDefault("database.min_conns", 2)
	v.SetDefault("database.connect_timeout_secs", 10)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	rw := scoring.DefaultRiskWeights()
	v.SetDefault("scoring.risk.fatality", rw.Fatality)
	v.SetDefault("scoring.risk.serious_injury", rw.SeriousInjury)
	v.SetDefault("scoring.risk.minor_injury", rw.MinorInjury)
	v.SetDefault("scoring.risk.reported_injury", rw.ReportedInjury)
	v.SetDefault("scoring.risk.accident", rw.Accident)

	sw := scoring.DefaultSafetyWeights()
	v.SetDefault("scoring.safety.signal", sw.Signal)
	v.SetDefault("scoring.safety.pedestrian_button", sw.PedestrianButton)
	v.SetDefault("scoring.safety.sound_signal", sw.SoundSignal)
	v.SetDefault("scoring.safety.remaining_time_display", sw.RemainingTimeDisplay)
	v.SetDefault("scoring.safety.highland_crossing", sw.HighlandCrossing)
	v.SetDefault("scoring.safety.curb_ramp", sw.CurbRamp)
	v.SetDefault("scoring.safety.braille_block", sw.BrailleBlock)
	v.SetDefault("scoring.safety.spotlight", sw.Spotlight)

	bands := scoring.DefaultDistanceBands().Bands()
	defaults := make([]map[string]any, 0, len(bands))
	for _, b := range bands {
		defaults = append(defaults, map[string]any{"max_meters": b.MaxMeters, "weight": b.Weight})
	}
	v.SetDefault("scoring.bands", defaults)
	v.SetDefault("scoring.linear_reference", scoring.DefaultLinearReference)
	v.SetDefault("scoring.saturation_k", scoring.DefaultSaturationK)
	v.SetDefault("scoring.hotspot_radius", scoring.DefaultHotspotRadius)
	v.SetDefault("scoring.region_cutoff_degrees", scoring.DefaultRegionCutoffDegrees)
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
