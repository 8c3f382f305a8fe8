// Package service runs the survey procedures: the feature correlation
// heatmap and the market segment radar chart.
package service

import (
	"context"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/okian/smartwatch/internal/adapters/console"
	"github.com/okian/smartwatch/internal/adapters/render"
	"github.com/okian/smartwatch/internal/config"
	"github.com/okian/smartwatch/internal/domain/correlation"
	"github.com/okian/smartwatch/internal/domain/dataset"
	"github.com/okian/smartwatch/internal/domain/radar"
	"github.com/okian/smartwatch/pkg/logger"
	"github.com/okian/smartwatch/pkg/metrics"
)

// Chart kinds for the rendered counter.
const (
	chartHeatmap = "heatmap"
	chartRadar   = "radar"
)

// Service wires loading, computing and rendering for both procedures.
// A Service runs sequentially and is not meant for concurrent use.
type Service struct {
	// Inputs
	dataFile string
	sheet    string
	columns  []string
	chart    radar.Chart

	// Outputs
	heatmapPath string
	radarPath   string

	// Collaborators
	renderer *render.Renderer
	printer  *console.Printer
	metrics  *metrics.Manager
	logger   logger.Logger

	runID string
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithDataFile sets the workbook path and sheet. An empty sheet selects the
// first sheet.
func WithDataFile(path, sheet string) Option {
	return func(s *Service) {
		if path != "" {
			s.dataFile = path
		}
		s.sheet = sheet
	}
}

// WithColumns sets the columns to correlate.
func WithColumns(columns ...string) Option {
	return func(s *Service) {
		if len(columns) > 0 {
			s.columns = append([]string(nil), columns...)
		}
	}
}

// WithChart replaces the segment chart.
func WithChart(chart radar.Chart) Option {
	return func(s *Service) {
		s.chart = chart
	}
}

// WithOutputs sets the heatmap and radar image paths. Empty values keep
// the defaults.
func WithOutputs(heatmapPath, radarPath string) Option {
	return func(s *Service) {
		if heatmapPath != "" {
			s.heatmapPath = heatmapPath
		}
		if radarPath != "" {
			s.radarPath = radarPath
		}
	}
}

// WithRenderer sets the chart renderer.
func WithRenderer(r *render.Renderer) Option {
	return func(s *Service) {
		if r != nil {
			s.renderer = r
		}
	}
}

// WithPrinter sets where the correlation matrix is printed.
func WithPrinter(p *console.Printer) Option {
	return func(s *Service) {
		if p != nil {
			s.printer = p
		}
	}
}

// WithMetrics sets the metrics manager.
func WithMetrics(m *metrics.Manager) Option {
	return func(s *Service) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithRunID sets the run identifier attached to every log line.
func WithRunID(id string) Option {
	return func(s *Service) {
		if id != "" {
			s.runID = id
		}
	}
}

// WithConfig applies the file and column settings of cfg.
func WithConfig(cfg *config.Config) Option {
	return func(s *Service) {
		if cfg == nil {
			return
		}
		WithDataFile(cfg.DataFile, cfg.Sheet)(s)
		WithColumns(cfg.Columns...)(s)
		WithOutputs(
			filepath.Join(cfg.OutputDir, cfg.HeatmapFile),
			filepath.Join(cfg.OutputDir, cfg.RadarFile),
		)(s)
	}
}

// New constructs a Service that reproduces the survey defaults.
func New(opts ...Option) *Service {
	s := &Service{
		dataFile:    config.DefaultDataFile,
		columns:     []string{"Wellness", "Athlete"},
		chart:       radar.DefaultChart(),
		heatmapPath: config.DefaultHeatmapFile,
		radarPath:   config.DefaultRadarFile,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.runID == "" {
		s.runID = uuid.NewString()
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	s.logger = s.logger.Named("service").With(logger.String("run_id", s.runID))
	if s.metrics == nil {
		s.metrics = metrics.Default()
	}
	if s.renderer == nil {
		s.renderer = render.New()
	}
	if s.printer == nil {
		s.printer = console.New()
	}
	return s
}

// RunID returns the identifier of this run.
func (s *Service) RunID() string { return s.runID }

// Run executes both procedures. A failing procedure does not stop the
// other one; the first failure is returned.
func (s *Service) Run(ctx context.Context) error {
	var first error
	if _, err := s.RunCorrelationHeatmap(ctx); err != nil {
		first = err
	}
	if err := s.RunSegmentRadar(ctx); err != nil && first == nil {
		first = err
	}
	return first
}

// RunCorrelationHeatmap loads the workbook, correlates the configured
// columns, prints the matrix and renders the heatmap.
func (s *Service) RunCorrelationHeatmap(ctx context.Context) (*correlation.Matrix, error) {
	const proc = ProcedureCorrelationHeatmap
	log := s.logger.With(logger.String("procedure", proc))

	var selected *dataset.Dataset
	err := s.stage(ctx, proc, StageLoad, func() error {
		ds, err := dataset.Load(s.dataFile, s.sheet)
		if err != nil {
			return err
		}
		s.metrics.UpdateDatasetRows(ds.Rows())
		log.Debug(ctx, "workbook loaded",
			logger.String("file", s.dataFile),
			logger.Int("rows", ds.Rows()),
			logger.Any("columns", ds.Columns()),
		)
		selected, err = ds.Select(s.columns...)
		return err
	})
	if err != nil {
		return nil, err
	}

	var m *correlation.Matrix
	err = s.stage(ctx, proc, StageCompute, func() error {
		var err error
		if m, err = correlation.Pearson(selected); err != nil {
			return err
		}
		s.metrics.UpdateMatrixNaNCells(m.NaNCount())
		if n := m.NaNCount(); n > 0 {
			log.Warn(ctx, "correlation undefined for zero-variance or sparse columns", logger.Int("nan_cells", n))
		}
		log.Info(ctx, "correlation matrix computed",
			logger.String("method", correlation.Method),
			logger.Any("labels", m.Labels()),
			logger.Any("values", m.Rows(6)),
		)
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = s.stage(ctx, proc, StageRender, func() error {
		if err := s.printer.PrintMatrix(m); err != nil {
			return err
		}
		if err := s.renderer.Heatmap(m, s.heatmapPath); err != nil {
			return err
		}
		s.metrics.RecordChartRendered(chartHeatmap)
		log.Info(ctx, "heatmap written", logger.String("file", s.heatmapPath))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

// RunSegmentRadar validates the segment chart and renders it.
func (s *Service) RunSegmentRadar(ctx context.Context) error {
	const proc = ProcedureSegmentRadar
	log := s.logger.With(logger.String("procedure", proc))

	err := s.stage(ctx, proc, StageCompute, func() error {
		polys, err := s.chart.Polygons()
		if err != nil {
			return err
		}
		log.Debug(ctx, "segment polygons built",
			logger.Int("segments", len(polys)),
			logger.Int("attributes", len(s.chart.Labels)),
		)
		return nil
	})
	if err != nil {
		return err
	}

	return s.stage(ctx, proc, StageRender, func() error {
		if err := s.renderer.Radar(s.chart, s.radarPath); err != nil {
			return err
		}
		s.metrics.RecordChartRendered(chartRadar)
		log.Info(ctx, "radar chart written", logger.String("file", s.radarPath))
		return nil
	})
}

// stage runs fn as one timed stage. Failures are counted, logged and
// returned as *StageError. A cancelled context fails the stage before fn
// runs.
func (s *Service) stage(ctx context.Context, procedure, stage string, fn func() error) error {
	err := ctx.Err()
	start := time.Now()
	if err == nil {
		err = fn()
		s.metrics.ObserveStage(procedure, stage, float64(time.Since(start).Microseconds())/1e3)
	}
	if err == nil {
		return nil
	}

	s.metrics.RecordStageFailure(procedure, stage)
	s.logger.Error(ctx, "stage failed",
		logger.String("procedure", procedure),
		logger.String("stage", stage),
		logger.Error(err),
	)
	return &StageError{Procedure: procedure, Stage: stage, Err: err}
}
