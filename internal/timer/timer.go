// Package timer solves prescaler and compare-match settings for hardware
// timers that derive an output frequency from a source clock:
//
//	actual = source / (prescaler * compare)
package timer

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Skew is the preferred direction when the desired rate cannot be hit exactly
type Skew int

const (
	SkewNone Skew = iota
	SkewLow       // never exceed the desired rate
	SkewHigh      // never fall below the desired rate
)

// ParseSkew accepts "none", "low" or "high"
func ParseSkew(s string) (Skew, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return SkewNone, nil
	case "low":
		return SkewLow, nil
	case "high":
		return SkewHigh, nil
	}
	return SkewNone, fmt.Errorf("unknown skew %q (use none, low or high)", s)
}

func (s Skew) String() string {
	switch s {
	case SkewLow:
		return "low"
	case SkewHigh:
		return "high"
	default:
		return "none"
	}
}

var (
	ErrImpossibleClock = errors.New("impossible clock")
	errZeroDiv         = errors.New("zero division")
	ErrErrorRange      = errors.New("error range")
	errTooLow          = errors.New("clock rate too low")
	errTooHigh         = errors.New("clock rate too high")
)

// DefaultPrescalers are the dividers of an 8-bit AVR timer
var DefaultPrescalers = []uint64{1, 8, 64, 256, 1024}

const (
	DefaultSource     uint64 = 16_000_000
	DefaultMaxCompare uint64 = math.MaxUint16
)

// Config describes one timer setting and the rate it achieves
type Config struct {
	Prescaler uint64
	Compare   uint64
	Source    uint64 // Hz
	Desired   uint64 // Hz
	Actual    uint64 // Hz
	Skew      Skew
	Error     float64 // |actual - desired| / actual
}

func (c Config) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Prescaler: %d\n", c.Prescaler)
	fmt.Fprintf(&b, "Compare Value: %d\n", c.Compare)
	fmt.Fprintf(&b, "Source Clock Frequency (Hz): %d\n", c.Source)
	fmt.Fprintf(&b, "Desired Clock Frequency (Hz): %d\n", c.Desired)
	fmt.Fprintf(&b, "Achieved Clock Frequency (Hz): %d\n", c.Actual)
	fmt.Fprintf(&b, "Error (%%): %f\n", c.Error*100)
	return b.String()
}

// Solve searches prescalers in order for the setting closest to desired.
// The search stops at the first setting within maxError. If the best
// setting found is still outside maxError it is returned with ErrErrorRange.
func Solve(source, desired uint64, skew Skew, prescalers []uint64, maxCompare uint64, maxError float64) (Config, error) {
	cfg := Config{Source: source, Desired: desired, Skew: skew}
	if desired > source {
		return cfg, ErrImpossibleClock
	}

	var best Config
	bestError := math.Inf(1)

	for _, p := range prescalers {
		// a prescaler that already divides the source below the target cannot work
		if p == 0 || source/p < desired {
			continue
		}
		attempt, err := compareFor(cfg, p, maxCompare)
		if err == nil && attempt.Error < bestError {
			best = attempt
			bestError = attempt.Error
		}
		if bestError <= maxError {
			break
		}
	}

	if math.IsInf(bestError, 1) {
		return cfg, ErrImpossibleClock
	}
	if bestError > maxError {
		return best, ErrErrorRange
	}
	return best, nil
}

// compareFor picks the compare value for a prescaler and checks the skew preference
func compareFor(cfg Config, prescaler, maxCompare uint64) (Config, error) {
	cfg.Prescaler = prescaler
	if cfg.Desired == 0 {
		cfg.Error = math.Inf(1)
		return cfg, errZeroDiv
	}

	ideal := float64(cfg.Source) / float64(cfg.Desired*prescaler)
	compare := uint64(math.Max(math.Round(ideal), 1))
	if maxCompare > 0 && compare > maxCompare {
		compare = maxCompare
	}
	cfg.Compare = compare
	cfg.Actual = cfg.Source / (prescaler * compare)
	cfg.Error = relativeError(cfg.Actual, cfg.Desired)

	switch {
	case cfg.Skew == SkewHigh && cfg.Actual < cfg.Desired:
		return cfg, errTooLow
	case cfg.Skew == SkewLow && cfg.Actual > cfg.Desired:
		return cfg, errTooHigh
	}
	return cfg, nil
}

func relativeError(actual, desired uint64) float64 {
	if actual == 0 {
		return math.Inf(1)
	}
	var delta uint64
	if actual > desired {
		delta = actual - desired
	} else {
		delta = desired - actual
	}
	return float64(delta) / float64(actual)
}
