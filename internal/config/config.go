package config

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"clockrate/internal/errors"
	"clockrate/internal/timer"
)

// Chart views
const (
	ViewDeviation = "deviation" // signed percentage error against desired rate
	ViewCompare   = "compare"   // actual against desired with the ideal y = x line
)

// DefaultOutput is written to the working directory and overwritten on every run
const DefaultOutput = "timer_results.png"

// DefaultSweepOutput is the table the sweep command writes
const DefaultSweepOutput = "timer_results.csv"

// Config represents the complete application configuration
type Config struct {
	Plot    PlotConfig
	Sweep   SweepConfig
	Verbose bool
}

// PlotConfig holds chart rendering settings
type PlotConfig struct {
	Output string
	View   string
	Show   bool
	Width  int
	Height int
}

// SweepConfig holds the timer sweep range and its output file
type SweepConfig struct {
	Params timer.SweepParams
	Output string
}

// Default returns the configuration used when no flags are given
func Default() *Config {
	return &Config{
		Plot: PlotConfig{
			Output: DefaultOutput,
			View:   ViewDeviation,
			Show:   true,
			Width:  1000,
			Height: 600,
		},
		Sweep: SweepConfig{
			Params: timer.DefaultSweepParams(),
			Output: DefaultSweepOutput,
		},
	}
}

// Validate checks the plot settings
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Plot.Output) == "" {
		return errors.ConfigInvalid("output path is required")
	}
	if !strings.EqualFold(filepath.Ext(c.Plot.Output), ".png") {
		return errors.ConfigInvalid(fmt.Sprintf("output %q must be a .png file", c.Plot.Output))
	}
	switch c.Plot.View {
	case ViewDeviation, ViewCompare:
	default:
		return errors.ConfigInvalid(fmt.Sprintf("unknown view %q (use %s or %s)", c.Plot.View, ViewDeviation, ViewCompare))
	}
	if c.Plot.Width <= 0 || c.Plot.Height <= 0 {
		return errors.ConfigInvalid("chart width and height must be positive")
	}
	return nil
}

// ValidateSweep checks the sweep range and output
func (c *Config) ValidateSweep() error {
	if strings.TrimSpace(c.Sweep.Output) == "" {
		return errors.ConfigInvalid("sweep output path is required")
	}
	if err := c.Sweep.Params.Validate(); err != nil {
		return errors.WithCode(errors.CodeConfigInvalid, err)
	}
	return nil
}

// ParsePrescalers parses a comma separated prescaler list such as "1,8,64"
func ParsePrescalers(s string) ([]uint64, error) {
	var out []uint64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.ParseUint(part, 10, 64)
		if err != nil || v == 0 {
			return nil, errors.ConfigInvalid(fmt.Sprintf("invalid prescaler %q", part))
		}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil, errors.ConfigInvalid("at least one prescaler is required")
	}
	return out, nil
}
