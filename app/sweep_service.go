package app

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"clockrate/adapters/excel"
	"clockrate/domain/measurement"
	"clockrate/internal/config"
	"clockrate/internal/errors"
	"clockrate/internal/timer"
)

// SweepService generates Desired,Actual measurement tables from the timer solver
type SweepService struct {
	out io.Writer
}

// NewSweepService creates a sweep service printing its summary to out
func NewSweepService(out io.Writer) *SweepService {
	return &SweepService{out: out}
}

// Run solves the configured range and writes the table to cfg.Output
func (s *SweepService) Run(ctx context.Context, cfg config.SweepConfig) ([]timer.Point, error) {
	fmt.Fprint(s.out, cfg.Params.String())
	fmt.Fprintf(s.out, "results: %s\n", cfg.Output)

	startTime := time.Now()
	points, err := timer.Sweep(ctx, cfg.Params)
	if err != nil {
		return nil, errors.Wrap(err, "error performing clock rate sweep")
	}

	if err := excel.WriteTable(cfg.Output, measurement.RequiredColumns(), timer.Rows(points)); err != nil {
		return nil, err
	}
	log.Printf("[SweepService] wrote %d rows to %s in %v", len(points), cfg.Output, time.Since(startTime))
	return points, nil
}
