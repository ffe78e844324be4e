package timer

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
)

// SweepParams is the range of desired rates to solve and the timer hardware they run on
type SweepParams struct {
	Lower      uint64
	Upper      uint64
	Step       uint64
	Source     uint64
	Prescalers []uint64
	MaxCompare uint64
}

// DefaultSweepParams covers 1 Hz to 76 kHz on a 16 MHz AVR timer
func DefaultSweepParams() SweepParams {
	prescalers := make([]uint64, len(DefaultPrescalers))
	copy(prescalers, DefaultPrescalers)
	return SweepParams{
		Lower:      1,
		Upper:      76_000,
		Step:       1,
		Source:     DefaultSource,
		Prescalers: prescalers,
		MaxCompare: DefaultMaxCompare,
	}
}

// Validate checks the range is walkable
func (p SweepParams) Validate() error {
	switch {
	case p.Lower == 0:
		return fmt.Errorf("lower bound must be at least 1 Hz")
	case p.Upper < p.Lower:
		return fmt.Errorf("upper bound %d is below lower bound %d", p.Upper, p.Lower)
	case p.Step == 0:
		return fmt.Errorf("step must be positive")
	case p.Source == 0:
		return fmt.Errorf("source clock must be positive")
	case len(p.Prescalers) == 0:
		return fmt.Errorf("at least one prescaler is required")
	case p.MaxCompare == 0:
		return fmt.Errorf("max compare must be positive")
	}
	return nil
}

// Count is the number of rates the sweep visits
func (p SweepParams) Count() uint64 {
	if p.Step == 0 || p.Upper < p.Lower {
		return 0
	}
	return (p.Upper-p.Lower)/p.Step + 1
}

func (p SweepParams) String() string {
	values := make([]string, len(p.Prescalers))
	for i, v := range p.Prescalers {
		values[i] = fmt.Sprintf("%d", v)
	}
	var b strings.Builder
	b.WriteString("Clock Rate Sweep:\n")
	fmt.Fprintf(&b, "lower: %d\n", p.Lower)
	fmt.Fprintf(&b, "upper: %d\n", p.Upper)
	fmt.Fprintf(&b, "step: %d\n", p.Step)
	fmt.Fprintf(&b, "src: %d\n", p.Source)
	fmt.Fprintf(&b, "nprescalers: %d\n", len(p.Prescalers))
	fmt.Fprintf(&b, "prescaler values: {%s}\n", strings.Join(values, ", "))
	fmt.Fprintf(&b, "max compare: %d\n", p.MaxCompare)
	return b.String()
}

// Point is one solved row of the sweep
type Point struct {
	Desired uint64
	Actual  uint64
}

// Sweep solves every desired rate in the range with no skew preference.
// An inexact setting is expected; any other solver failure aborts the sweep.
func Sweep(ctx context.Context, p SweepParams) ([]Point, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	points := make([]Point, 0, p.Count())
	inexact := 0
	for desired := p.Lower; ; desired += p.Step {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		cfg, err := Solve(p.Source, desired, SkewNone, p.Prescalers, p.MaxCompare, 0)
		if err != nil {
			if !errors.Is(err, ErrErrorRange) {
				return nil, fmt.Errorf("unable to find a valid timer configuration for desired value of %d: %w", desired, err)
			}
			inexact++
		}
		points = append(points, Point{Desired: desired, Actual: cfg.Actual})

		if p.Upper-desired < p.Step {
			break
		}
	}

	log.Printf("[Sweep] solved %d rates (%d inexact)", len(points), inexact)
	return points, nil
}

// Rows converts points to table rows for the Desired,Actual writers
func Rows(points []Point) [][]float64 {
	rows := make([][]float64, len(points))
	for i, pt := range points {
		rows[i] = []float64{float64(pt.Desired), float64(pt.Actual)}
	}
	return rows
}
