package movns

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// LocalSearchMode selects which Pareto Local Search variant the driver
// performs after each Shake, per spec §4.5.
type LocalSearchMode int

const (
	// Pareto enumerates every neighbor and keeps those non-dominated
	// w.r.t. a local archive.
	Pareto LocalSearchMode = iota
	// Weighted draws a random weight simplex and performs first-
	// improvement descent on the weighted scalarization.
	Weighted
)

func (m LocalSearchMode) String() string {
	if m == Weighted {
		return "weighted"
	}
	return "pareto"
}

// Config enumerates the driver options of spec §6. Every field has a
// documented default; construct one with DefaultConfig and override only
// what you need.
type Config struct {
	InitialSolutions int // default 20
	ArchiveMax       int // default 60
	KMax             int // default 5
	MaxTime          time.Duration // default 120s
	MaxIterations    int           // default 0 meaning unbounded
	IdleLimit        int           // default 30
	LocalSearchMode  LocalSearchMode
	Seed             int64 // 0 is a valid seed; use HasSeed to distinguish "unset"
	HasSeed          bool

	SpreadThreshold  float64 // default 0.35
	SpreadWindow     int     // default 50
	EpsilonThreshold float64 // default 0.05
	EpsilonWindows   int     // default 3
	EpsilonWindowLen int     // default 10 outer loops per window (documented as 10 vs 50; see DESIGN.md)

	ConvergenceSlack float64 // τ in spec §4.6, default 0
}

// DefaultConfig returns the documented defaults of spec §6 and §9.
func DefaultConfig() Config {
	return Config{
		InitialSolutions: 20,
		ArchiveMax:       60,
		KMax:             5,
		MaxTime:          120 * time.Second,
		MaxIterations:    0,
		IdleLimit:        30,
		LocalSearchMode:  Pareto,
		SpreadThreshold:  0.35,
		SpreadWindow:     50,
		EpsilonThreshold: 0.05,
		EpsilonWindows:   3,
		EpsilonWindowLen: 10,
		ConvergenceSlack: 0,
	}
}

// Validate reports a *Error with Kind ConfigurationError for any
// out-of-range field, checked before the driver starts.
func (c Config) Validate() error {
	switch {
	case c.InitialSolutions <= 0:
		return newError("Config.Validate", ConfigurationError, fmt.Errorf("initial_solutions must be positive, got %d", c.InitialSolutions))
	case c.ArchiveMax <= 0:
		return newError("Config.Validate", ConfigurationError, fmt.Errorf("archive_max must be positive, got %d", c.ArchiveMax))
	case c.KMax <= 0:
		return newError("Config.Validate", ConfigurationError, fmt.Errorf("k_max must be positive, got %d", c.KMax))
	case c.MaxTime <= 0:
		return newError("Config.Validate", ConfigurationError, fmt.Errorf("max_time_seconds must be positive, got %s", c.MaxTime))
	case c.MaxIterations < 0:
		return newError("Config.Validate", ConfigurationError, fmt.Errorf("max_iterations must be >= 0, got %d", c.MaxIterations))
	case c.IdleLimit <= 0:
		return newError("Config.Validate", ConfigurationError, fmt.Errorf("idle_limit must be positive, got %d", c.IdleLimit))
	case c.SpreadThreshold <= 0:
		return newError("Config.Validate", ConfigurationError, fmt.Errorf("spread_threshold must be positive, got %g", c.SpreadThreshold))
	case c.SpreadWindow <= 0:
		return newError("Config.Validate", ConfigurationError, fmt.Errorf("spread_window must be positive, got %d", c.SpreadWindow))
	case c.EpsilonThreshold <= 0:
		return newError("Config.Validate", ConfigurationError, fmt.Errorf("epsilon_threshold must be positive, got %g", c.EpsilonThreshold))
	case c.EpsilonWindows <= 0:
		return newError("Config.Validate", ConfigurationError, fmt.Errorf("epsilon_windows must be positive, got %d", c.EpsilonWindows))
	case c.EpsilonWindowLen <= 0:
		return newError("Config.Validate", ConfigurationError, fmt.Errorf("epsilon window length must be positive, got %d", c.EpsilonWindowLen))
	case c.ConvergenceSlack < 0:
		return newError("Config.Validate", ConfigurationError, fmt.Errorf("convergence slack (tau) must be >= 0, got %g", c.ConvergenceSlack))
	}
	return nil
}

// configSchema validates the JSON document shape accepted by
// FromJSON, following the recreational-facility-data example's
// practice of validating externally-authored JSON against a schema before
// trusting it.
const configSchema = `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "object",
	"properties": {
		"initial_solutions": {"type": "integer", "minimum": 1},
		"archive_max": {"type": "integer", "minimum": 1},
		"k_max": {"type": "integer", "minimum": 1},
		"max_time_seconds": {"type": "number", "exclusiveMinimum": 0},
		"max_iterations": {"type": "integer", "minimum": 0},
		"idle_limit": {"type": "integer", "minimum": 1},
		"local_search_mode": {"type": "string", "enum": ["pareto", "weighted"]},
		"seed": {"type": "integer"},
		"spread_threshold": {"type": "number", "exclusiveMinimum": 0},
		"spread_window": {"type": "integer", "minimum": 1},
		"epsilon_threshold": {"type": "number", "exclusiveMinimum": 0},
		"epsilon_windows": {"type": "integer", "minimum": 1}
	},
	"additionalProperties": false
}`

type configDoc struct {
	InitialSolutions *int     `json:"initial_solutions"`
	ArchiveMax       *int     `json:"archive_max"`
	KMax             *int     `json:"k_max"`
	MaxTimeSeconds   *float64 `json:"max_time_seconds"`
	MaxIterations    *int     `json:"max_iterations"`
	IdleLimit        *int     `json:"idle_limit"`
	LocalSearchMode  *string  `json:"local_search_mode"`
	Seed             *int64   `json:"seed"`
	SpreadThreshold  *float64 `json:"spread_threshold"`
	SpreadWindow     *int     `json:"spread_window"`
	EpsilonThreshold *float64 `json:"epsilon_threshold"`
	EpsilonWindows   *int     `json:"epsilon_windows"`
}

// FromJSON parses and schema-validates a configuration document, layering
// any present field over DefaultConfig.
func FromJSON(r io.Reader) (Config, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return Config{}, newError("Config.FromJSON", ConfigurationError, err)
	}

	compiler := jsonschema.NewCompiler()
	schema, err := jsonschema.UnmarshalJSON(bytes.NewReader([]byte(configSchema)))
	if err != nil {
		return Config{}, newError("Config.FromJSON", ConfigurationError, err)
	}
	if err := compiler.AddResource("config.json", schema); err != nil {
		return Config{}, newError("Config.FromJSON", ConfigurationError, err)
	}
	sch, err := compiler.Compile("config.json")
	if err != nil {
		return Config{}, newError("Config.FromJSON", ConfigurationError, err)
	}

	instance, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return Config{}, newError("Config.FromJSON", ConfigurationError, err)
	}
	if err := sch.Validate(instance); err != nil {
		return Config{}, newError("Config.FromJSON", ConfigurationError, err)
	}

	var doc configDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return Config{}, newError("Config.FromJSON", ConfigurationError, err)
	}

	cfg := DefaultConfig()
	if doc.InitialSolutions != nil {
		cfg.InitialSolutions = *doc.InitialSolutions
	}
	if doc.ArchiveMax != nil {
		cfg.ArchiveMax = *doc.ArchiveMax
	}
	if doc.KMax != nil {
		cfg.KMax = *doc.KMax
	}
	if doc.MaxTimeSeconds != nil {
		cfg.MaxTime = time.Duration(*doc.MaxTimeSeconds * float64(time.Second))
	}
	if doc.MaxIterations != nil {
		cfg.MaxIterations = *doc.MaxIterations
	}
	if doc.IdleLimit != nil {
		cfg.IdleLimit = *doc.IdleLimit
	}
	if doc.LocalSearchMode != nil && *doc.LocalSearchMode == "weighted" {
		cfg.LocalSearchMode = Weighted
	}
	if doc.Seed != nil {
		cfg.Seed = *doc.Seed
		cfg.HasSeed = true
	}
	if doc.SpreadThreshold != nil {
		cfg.SpreadThreshold = *doc.SpreadThreshold
	}
	if doc.SpreadWindow != nil {
		cfg.SpreadWindow = *doc.SpreadWindow
	}
	if doc.EpsilonThreshold != nil {
		cfg.EpsilonThreshold = *doc.EpsilonThreshold
	}
	if doc.EpsilonWindows != nil {
		cfg.EpsilonWindows = *doc.EpsilonWindows
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
