// Package config provides configuration loading and validation for the
// result collection tool.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config represents the main configuration structure.
type Config struct {
	Scores ScoresConfig `toml:"scores"`
	Report ReportConfig `toml:"report"`
}

// ScoresConfig names the score-file basename parts. A score file is named
// "<split>-<norm>", e.g. "scores-dev-nonorm".
type ScoresConfig struct {
	Dev    string `toml:"dev"`
	Eval   string `toml:"eval"`
	Nonorm string `toml:"nonorm"`
	Ztnorm string `toml:"ztnorm"`
}

// ReportConfig contains report settings.
type ReportConfig struct {
	// FARThresholds are the false-accept-rate operating points, highest
	// first. Each produces one table column.
	FARThresholds []float64 `toml:"far_thresholds"`
	// Rank is the identification rank for CMC and DIR columns.
	Rank int `toml:"rank"`
}

// DevNonorm returns the development-set non-normalized score file name.
func (s ScoresConfig) DevNonorm() string { return s.Dev + "-" + s.Nonorm }

// DevZtnorm returns the development-set ZT-normalized score file name.
func (s ScoresConfig) DevZtnorm() string { return s.Dev + "-" + s.Ztnorm }

// EvalNonorm returns the evaluation-set non-normalized score file name.
func (s ScoresConfig) EvalNonorm() string { return s.Eval + "-" + s.Nonorm }

// EvalZtnorm returns the evaluation-set ZT-normalized score file name.
func (s ScoresConfig) EvalZtnorm() string { return s.Eval + "-" + s.Ztnorm }

// All returns the four score file names.
func (s ScoresConfig) All() []string {
	return []string{s.DevNonorm(), s.DevZtnorm(), s.EvalNonorm(), s.EvalZtnorm()}
}

// Default returns the configuration used when no config file is given.
func Default() *Config {
	return &Config{
		Scores: ScoresConfig{
			Dev:    "scores-dev",
			Eval:   "scores-eval",
			Nonorm: "nonorm",
			Ztnorm: "ztnorm",
		},
		Report: ReportConfig{
			FARThresholds: []float64{0.1, 0.01, 0.001},
			Rank:          1,
		},
	}
}

// validatePath checks for path traversal attempts.
func validatePath(path string) error {
	cleanPath := filepath.Clean(path)
	if strings.HasPrefix(cleanPath, "..") || strings.Contains(cleanPath, "../") {
		return fmt.Errorf("path contains invalid traversal sequence: %s", path)
	}
	return nil
}

// Load reads and parses the TOML configuration file. An empty path yields
// the defaults; a missing or malformed file is an error.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	if err := validatePath(path); err != nil {
		return nil, fmt.Errorf("invalid config path: %w", err)
	}

	// #nosec G304 - Path validated above, this is intentional file inclusion
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	for _, part := range []struct {
		name, value string
	}{
		{"scores.dev", c.Scores.Dev},
		{"scores.eval", c.Scores.Eval},
		{"scores.nonorm", c.Scores.Nonorm},
		{"scores.ztnorm", c.Scores.Ztnorm},
	} {
		if part.value == "" {
			return fmt.Errorf("%s must not be empty", part.name)
		}
		if strings.ContainsAny(part.value, "/\\") {
			return fmt.Errorf("%s must be a basename part, got %q", part.name, part.value)
		}
	}

	if len(c.Report.FARThresholds) == 0 {
		return fmt.Errorf("report.far_thresholds must not be empty")
	}
	prev := 1.0
	for _, far := range c.Report.FARThresholds {
		if far <= 0 || far >= 1 {
			return fmt.Errorf("report.far_thresholds entries must be in (0,1), got %v", far)
		}
		if far >= prev {
			return fmt.Errorf("report.far_thresholds must be strictly descending")
		}
		prev = far
	}

	if c.Report.Rank < 1 {
		return fmt.Errorf("report.rank must be >= 1, got %d", c.Report.Rank)
	}

	return nil
}
