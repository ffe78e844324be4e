package app

import (
	"context"
	"io"
	"log"
	"time"

	"clockrate/adapters/excel"
	"clockrate/adapters/plotting"
	"clockrate/internal/analysis"
	"clockrate/internal/config"
	"clockrate/internal/errors"
	"clockrate/internal/validation"
	"clockrate/ports"

	chart "github.com/wcharczuk/go-chart/v2"
)

// PlotService runs the load, validate, analyze and render pipeline for one file
type PlotService struct {
	cfg        config.PlotConfig
	openReader func(path string) ports.TableReader
	validator  *validation.SchemaValidator
	analyzer   *analysis.DeviationAnalyzer
	renderer   *plotting.Renderer
	viewer     ports.ChartViewer
	out        io.Writer
}

// PlotResult is what a successful run produced
type PlotResult struct {
	Report     *analysis.DeviationReport
	OutputPath string
	ImageBytes int
}

// NewPlotService creates a plot service writing its report to out.
// viewer may be nil when cfg.Show is false.
func NewPlotService(cfg config.PlotConfig, viewer ports.ChartViewer, out io.Writer) *PlotService {
	return &PlotService{
		cfg:        cfg,
		openReader: func(path string) ports.TableReader { return excel.NewDataReader(path) },
		validator:  validation.NewSchemaValidator(),
		analyzer:   analysis.NewDeviationAnalyzer(),
		renderer:   plotting.NewRenderer(cfg.Width, cfg.Height),
		viewer:     viewer,
		out:        out,
	}
}

// Run processes the measurement file at path
func (s *PlotService) Run(ctx context.Context, path string) (*PlotResult, error) {
	startTime := time.Now()

	raw, err := s.openReader(path).ReadData()
	if err != nil {
		return nil, err
	}

	table, err := s.validator.Validate(raw)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report, err := s.analyzer.Analyze(table)
	if err != nil {
		return nil, err
	}
	WriteReport(s.out, report)

	var ch *chart.Chart
	switch s.cfg.View {
	case config.ViewCompare:
		ch, err = s.renderer.CompareChart(table)
	default:
		ch, err = s.renderer.DeviationChart(table)
	}
	if err != nil {
		return nil, err
	}

	img, err := s.renderer.PNG(ch)
	if err != nil {
		return nil, err
	}
	if err := plotting.SaveFile(s.cfg.Output, img); err != nil {
		return nil, err
	}
	log.Printf("[PlotService] %s processed in %v (%d rows)", path, time.Since(startTime), table.Len())

	if s.cfg.Show {
		if s.viewer == nil {
			return nil, errors.InternalError("no chart viewer configured")
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := s.viewer.Show(s.cfg.Output, img); err != nil {
			return nil, errors.Wrap(err, "failed to display chart")
		}
	}

	return &PlotResult{Report: report, OutputPath: s.cfg.Output, ImageBytes: len(img)}, nil
}
