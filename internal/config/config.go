package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/eugenenazirov/stow-planner/internal/stowage"
)

const (
	defaultPort           = "8080"
	defaultRateLimitRPS   = 25.0
	defaultRateLimitBurst = 50
)

// Config aggregates runtime configuration resolved from multiple sources.
// Precedence: CLI flags > Environment variables > YAML config > Defaults
type Config struct {
	Port                 string
	ShutdownGracePeriod  time.Duration
	ReadHeaderTimeout    time.Duration
	WriteTimeout         time.Duration
	IdleTimeout          time.Duration
	EnableRequestLogging bool
	RateLimitRPS         float64
	RateLimitBurst       int

	Ship     stowage.ShipProfile
	Grid     stowage.GridSpec
	Settings stowage.Settings
}

// yamlConfig represents the YAML configuration file structure.
type yamlConfig struct {
	Port                 string        `yaml:"port"`
	ShutdownGracePeriod  string        `yaml:"shutdown_grace_period"`
	ReadHeaderTimeout    string        `yaml:"read_header_timeout"`
	WriteTimeout         string        `yaml:"write_timeout"`
	IdleTimeout          string        `yaml:"idle_timeout"`
	EnableRequestLogging bool          `yaml:"enable_request_logging"`
	RateLimit            yamlRateLimit `yaml:"rate_limit"`
	Ship                 yamlShip      `yaml:"ship"`
	Grid                 yamlGrid      `yaml:"grid"`
	Stowage              yamlStowage   `yaml:"stowage"`
}

type yamlRateLimit struct {
	RPS   *float64 `yaml:"rps"`
	Burst *int     `yaml:"burst"`
}

type yamlShip struct {
	LightshipWeight float64 `yaml:"lightship_weight"`
	LightshipKG     float64 `yaml:"lightship_kg"`
	KB              float64 `yaml:"kb"`
	BM              float64 `yaml:"bm"`
	TierBaseHeight  float64 `yaml:"tier_base_height"`
	TierHeightStep  float64 `yaml:"tier_height_step"`
}

type yamlGrid struct {
	Bays             int      `yaml:"bays"`
	Rows             int      `yaml:"rows"`
	Tiers            int      `yaml:"tiers"`
	BaseTierCapacity float64  `yaml:"base_tier_capacity"`
	TierCapacityStep *float64 `yaml:"tier_capacity_step"`
	MaxStackWeight   float64  `yaml:"max_stack_weight"`
	PoweredRows      []int    `yaml:"powered_rows"`
	FortyFootBays    []int    `yaml:"forty_foot_bays"`
}

type yamlStowage struct {
	GMThreshold      float64     `yaml:"gm_threshold"`
	HazmatSeparation *int        `yaml:"hazmat_separation"`
	PreferredBayFrom *int        `yaml:"preferred_bay_from"`
	PreferredBayTo   *int        `yaml:"preferred_bay_to"`
	Weights          yamlWeights `yaml:"weights"`
}

type yamlWeights struct {
	Tier       *float64 `yaml:"tier"`
	Stability  *float64 `yaml:"stability"`
	Centerline *float64 `yaml:"centerline"`
	Bay        *float64 `yaml:"bay"`
}

// CLIOverrides holds command-line flag overrides.
type CLIOverrides struct {
	ConfigFile       string
	Port             *string
	GMThreshold      *float64
	HazmatSeparation *int
	RateLimitRPS     *float64
	RateLimitBurst   *int
}

// Load extracts configuration from multiple sources with precedence:
// CLI flags > Environment variables > YAML config > Defaults
func Load(overrides *CLIOverrides) (Config, error) {
	cfg := defaultConfig()

	if overrides != nil && overrides.ConfigFile != "" {
		yamlCfg, err := loadFromFile(overrides.ConfigFile)
		if err != nil {
			return Config{}, fmt.Errorf("load YAML config: %w", err)
		}
		applyYAMLConfig(&cfg, yamlCfg)
	}

	applyEnvConfig(&cfg)

	if overrides != nil {
		applyCLIOverrides(&cfg, overrides)
	}

	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// defaultConfig returns a Config describing a small feeder vessel: 10 bays,
// 7 rows, 4 tiers, reefer plugs on the outboard rows, forty-foot slots in the
// odd bays.
func defaultConfig() Config {
	return Config{
		Port:                 defaultPort,
		ShutdownGracePeriod:  10 * time.Second,
		ReadHeaderTimeout:    5 * time.Second,
		WriteTimeout:         15 * time.Second,
		IdleTimeout:          60 * time.Second,
		EnableRequestLogging: true,
		RateLimitRPS:         defaultRateLimitRPS,
		RateLimitBurst:       defaultRateLimitBurst,
		Ship: stowage.ShipProfile{
			LightshipWeight: 8600,
			LightshipKG:     9.1,
			KB:              4.9,
			BM:              7.4,
			TierBaseHeight:  2.2,
			TierHeightStep:  2.6,
		},
		Grid: stowage.GridSpec{
			Bays:             10,
			Rows:             7,
			Tiers:            4,
			BaseTierCapacity: 60,
			TierCapacityStep: 10,
			MaxStackWeight:   150,
			PoweredRows:      []int{0, 6},
			FortyFootBays:    []int{1, 3, 5, 7, 9},
		},
		Settings: stowage.DefaultSettings(),
	}
}

// loadFromFile loads configuration from a YAML file.
func loadFromFile(path string) (*yamlConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var yamlCfg yamlConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}

	return &yamlCfg, nil
}

// applyYAMLConfig applies YAML configuration to the Config struct.
func applyYAMLConfig(cfg *Config, yamlCfg *yamlConfig) {
	if yamlCfg.Port != "" {
		cfg.Port = yamlCfg.Port
	}

	applyDuration(&cfg.ShutdownGracePeriod, yamlCfg.ShutdownGracePeriod)
	applyDuration(&cfg.ReadHeaderTimeout, yamlCfg.ReadHeaderTimeout)
	applyDuration(&cfg.WriteTimeout, yamlCfg.WriteTimeout)
	applyDuration(&cfg.IdleTimeout, yamlCfg.IdleTimeout)

	cfg.EnableRequestLogging = yamlCfg.EnableRequestLogging

	if yamlCfg.RateLimit.RPS != nil && *yamlCfg.RateLimit.RPS >= 0 {
		cfg.RateLimitRPS = *yamlCfg.RateLimit.RPS
	}
	if yamlCfg.RateLimit.Burst != nil && *yamlCfg.RateLimit.Burst >= 0 {
		cfg.RateLimitBurst = *yamlCfg.RateLimit.Burst
	}

	applyYAMLShip(&cfg.Ship, yamlCfg.Ship)
	applyYAMLGrid(&cfg.Grid, yamlCfg.Grid)
	applyYAMLStowage(&cfg.Settings, yamlCfg.Stowage)
}

func applyDuration(dst *time.Duration, raw string) {
	if raw == "" {
		return
	}
	if d, err := time.ParseDuration(raw); err == nil {
		*dst = d
	}
}

func applyYAMLShip(ship *stowage.ShipProfile, y yamlShip) {
	if y.LightshipWeight > 0 {
		ship.LightshipWeight = y.LightshipWeight
	}
	if y.LightshipKG > 0 {
		ship.LightshipKG = y.LightshipKG
	}
	if y.KB > 0 {
		ship.KB = y.KB
	}
	if y.BM > 0 {
		ship.BM = y.BM
	}
	if y.TierBaseHeight > 0 {
		ship.TierBaseHeight = y.TierBaseHeight
	}
	if y.TierHeightStep > 0 {
		ship.TierHeightStep = y.TierHeightStep
	}
}

func applyYAMLGrid(grid *stowage.GridSpec, y yamlGrid) {
	if y.Bays > 0 {
		grid.Bays = y.Bays
	}
	if y.Rows > 0 {
		grid.Rows = y.Rows
	}
	if y.Tiers > 0 {
		grid.Tiers = y.Tiers
	}
	if y.BaseTierCapacity > 0 {
		grid.BaseTierCapacity = y.BaseTierCapacity
	}
	if y.TierCapacityStep != nil && *y.TierCapacityStep >= 0 {
		grid.TierCapacityStep = *y.TierCapacityStep
	}
	if y.MaxStackWeight > 0 {
		grid.MaxStackWeight = y.MaxStackWeight
	}
	if y.PoweredRows != nil {
		grid.PoweredRows = y.PoweredRows
	}
	if y.FortyFootBays != nil {
		grid.FortyFootBays = y.FortyFootBays
	}
}

func applyYAMLStowage(settings *stowage.Settings, y yamlStowage) {
	if y.GMThreshold > 0 {
		settings.GMThreshold = y.GMThreshold
	}
	if y.HazmatSeparation != nil && *y.HazmatSeparation >= 0 {
		settings.HazmatSeparation = *y.HazmatSeparation
	}
	if y.PreferredBayFrom != nil && *y.PreferredBayFrom >= 0 {
		settings.PreferredBayFrom = *y.PreferredBayFrom
	}
	if y.PreferredBayTo != nil && *y.PreferredBayTo >= 0 {
		settings.PreferredBayTo = *y.PreferredBayTo
	}
	applyWeight(&settings.Weights.Tier, y.Weights.Tier)
	applyWeight(&settings.Weights.Stability, y.Weights.Stability)
	applyWeight(&settings.Weights.Centerline, y.Weights.Centerline)
	applyWeight(&settings.Weights.Bay, y.Weights.Bay)
}

func applyWeight(dst *float64, src *float64) {
	if src != nil && *src >= 0 {
		*dst = *src
	}
}

// applyEnvConfig applies environment variable configuration.
func applyEnvConfig(cfg *Config) {
	if port := strings.TrimSpace(os.Getenv("PORT")); port != "" {
		cfg.Port = port
	}

	if raw := strings.TrimSpace(os.Getenv("GM_THRESHOLD")); raw != "" {
		if value, err := strconv.ParseFloat(raw, 64); err == nil && value > 0 {
			cfg.Settings.GMThreshold = value
		}
	}

	if raw := strings.TrimSpace(os.Getenv("HAZMAT_SEPARATION")); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value >= 0 {
			cfg.Settings.HazmatSeparation = value
		}
	}

	if rps := strings.TrimSpace(os.Getenv("RATE_LIMIT_RPS")); rps != "" {
		if value, err := strconv.ParseFloat(rps, 64); err == nil && value >= 0 {
			cfg.RateLimitRPS = value
		}
	}

	if burst := strings.TrimSpace(os.Getenv("RATE_LIMIT_BURST")); burst != "" {
		if value, err := strconv.Atoi(burst); err == nil && value >= 0 {
			cfg.RateLimitBurst = value
		}
	}
}

// applyCLIOverrides applies command-line flag overrides.
func applyCLIOverrides(cfg *Config, overrides *CLIOverrides) {
	if overrides.Port != nil && *overrides.Port != "" {
		cfg.Port = *overrides.Port
	}

	if overrides.GMThreshold != nil && *overrides.GMThreshold > 0 {
		cfg.Settings.GMThreshold = *overrides.GMThreshold
	}

	if overrides.HazmatSeparation != nil && *overrides.HazmatSeparation >= 0 {
		cfg.Settings.HazmatSeparation = *overrides.HazmatSeparation
	}

	if overrides.RateLimitRPS != nil && *overrides.RateLimitRPS >= 0 {
		cfg.RateLimitRPS = *overrides.RateLimitRPS
	}

	if overrides.RateLimitBurst != nil && *overrides.RateLimitBurst >= 0 {
		cfg.RateLimitBurst = *overrides.RateLimitBurst
	}
}

// validateConfig validates the final configuration. Ship, grid and settings
// validation is delegated to the stowage package so the service and the engine
// cannot disagree on what is acceptable.
func validateConfig(cfg Config) error {
	if cfg.RateLimitRPS < 0 {
		return fmt.Errorf("RATE_LIMIT_RPS must be >= 0")
	}
	if cfg.RateLimitBurst < 0 {
		return fmt.Errorf("RATE_LIMIT_BURST must be >= 0")
	}
	if err := cfg.Ship.Validate(); err != nil {
		return err
	}
	if err := cfg.Grid.Validate(); err != nil {
		return err
	}
	if err := cfg.Settings.Validate(); err != nil {
		return err
	}
	return nil
}
