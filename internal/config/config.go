// Package config carries osmgt's tuning knobs: the constants spec.md leaves
// as implementation-defined (R-tree candidate count, worker-pool bound,
// isochrone buffer parameters, retry policy) are loaded here via viper,
// grounded on SoySergo-location_microservice/internal/config, with defaults
// taken directly from original_source/ where spec.md names a source value
// (spec.md §9 Open Question (b)).
package config

import (
	"time"

	"github.com/spf13/viper"
)

// CapStyle mirrors go-geos's buffer end-cap styles.
type CapStyle int

// JoinStyle mirrors go-geos's buffer join styles.
type JoinStyle int

const (
	CapRound CapStyle = iota
	CapFlat
	CapSquare
)

const (
	JoinRound JoinStyle = iota
	JoinMitre
	JoinBevel
)

// Config holds every tuning knob referenced elsewhere in the pipeline.
type Config struct {
	// TopologyBuilder Phase A.
	RTreeNearestK     int // spec.md §4.3: "R-tree nearest-k (k=10)"
	SnapRefineLevel   int // spec.md §4.3 step 1: refine(L.geometry, 7)
	LineRefineLevel   int // spec.md §4.3 Phase E: refine level 4

	// Bounded worker pools (spec.md §5).
	WorkerPoolLimit int

	// Isochrone polygon synthesis (spec.md §4.6, §9 Open Question (b)).
	// Defaults sourced from original_source/osmgt/processing/isochrone.py:
	// __DEFAULT_CAPSTYLE=1 (flat), __DEFAULT_JOINSTYLE=1 (round),
	// __ROADS_BUFFER_EROSION_DIVISOR=10.
	PathBufferMeters float64
	DilatationMeters float64
	ErosionMeters    float64
	CapStyle         CapStyle
	JoinStyle        JoinStyle
	QuadrantSegments int

	// HTTP retry policy (spec.md §5): exponential backoff, up to 4
	// attempts, initial delay 3s, backoff factor 2.
	RetryMaxAttempts int
	RetryInitialWait time.Duration
	RetryFactor      float64
}

// Default returns the configuration matching the spec/original-source
// defaults, used when no config file/env override is supplied.
func Default() Config {
	return Config{
		RTreeNearestK:   10,
		SnapRefineLevel: 7,
		LineRefineLevel: 4,

		WorkerPoolLimit: 8,

		PathBufferMeters: 5,
		DilatationMeters: 30,
		ErosionMeters:    3, // dilatation / __ROADS_BUFFER_EROSION_DIVISOR
		CapStyle:         CapFlat,
		JoinStyle:        JoinRound,
		QuadrantSegments: 8,

		RetryMaxAttempts: 4,
		RetryInitialWait: 3 * time.Second,
		RetryFactor:      2,
	}
}

// Load reads configuration from file (if present), environment variables
// (prefix OSMGT_), and falls back to Default() for anything unset.
func Load(configPath string) (Config, error) {
	cfg := Default()

	v := viper.New()
	v.SetEnvPrefix("OSMGT")
	v.AutomaticEnv()
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return cfg, err
		}
	}

	if v.IsSet("rtree_nearest_k") {
		cfg.RTreeNearestK = v.GetInt("rtree_nearest_k")
	}
	if v.IsSet("worker_pool_limit") {
		cfg.WorkerPoolLimit = v.GetInt("worker_pool_limit")
	}
	if v.IsSet("path_buffer_meters") {
		cfg.PathBufferMeters = v.GetFloat64("path_buffer_meters")
	}
	if v.IsSet("dilatation_meters") {
		cfg.DilatationMeters = v.GetFloat64("dilatation_meters")
	}
	if v.IsSet("erosion_meters") {
		cfg.ErosionMeters = v.GetFloat64("erosion_meters")
	}
	if v.IsSet("retry_max_attempts") {
		cfg.RetryMaxAttempts = v.GetInt("retry_max_attempts")
	}
	if v.IsSet("retry_initial_wait") {
		cfg.RetryInitialWait = v.GetDuration("retry_initial_wait")
	}
	if v.IsSet("retry_factor") {
		cfg.RetryFactor = v.GetFloat64("retry_factor")
	}

	return cfg, nil
}
