package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sganes21/Dataset-Final-Project/internal/analytics"
	"github.com/sganes21/Dataset-Final-Project/internal/charts"
	"github.com/sganes21/Dataset-Final-Project/internal/config"
	"github.com/sganes21/Dataset-Final-Project/internal/dataprocessing"
	apperrors "github.com/sganes21/Dataset-Final-Project/internal/errors"
	"github.com/sganes21/Dataset-Final-Project/internal/exporter"
	"github.com/sganes21/Dataset-Final-Project/internal/files"
	"github.com/sganes21/Dataset-Final-Project/internal/frame"
	"github.com/sganes21/Dataset-Final-Project/internal/infrastructure"
	"github.com/sganes21/Dataset-Final-Project/internal/operations"
	"github.com/sganes21/Dataset-Final-Project/internal/validation"
	"github.com/sganes21/Dataset-Final-Project/pkg/contracts/domain"
)

// Names of the tables passed between steps.
const (
	TableStateRaw    = "state-raw"
	TableAnnotations = "annotations"
	TableSurvey      = "survey"
	TableState       = "state"
	TableCombined    = "combined"
)

// DashboardTitle is the page title of the HTML dashboard
const DashboardTitle = "Animal Shelter Intake and Outcomes"

// Pipeline owns the components of one run and builds its step graph.
type Pipeline struct {
	cfg        *config.Config
	paths      *config.Paths
	loader     *dataprocessing.Loader
	normalizer *dataprocessing.Normalizer
	cleaner    *dataprocessing.Cleaner
	filter     analytics.Filter
	validator  *validation.FileValidator
	writer     *exporter.CSVWriter
	renderer   *charts.Renderer
	metrics    *infrastructure.PipelineMetrics
	logger     *slog.Logger
}

// Option configures a Pipeline
type Option func(*Pipeline)

// WithLoader replaces the loader built from the configuration
func WithLoader(l *dataprocessing.Loader) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.loader = l
		}
	}
}

// WithMetrics records row, cell and chart counts
func WithMetrics(m *infrastructure.PipelineMetrics) Option {
	return func(p *Pipeline) {
		p.metrics = m
	}
}

// New builds the run's components from cfg
func New(cfg *config.Config, paths *config.Paths, logger *slog.Logger, opts ...Option) (*Pipeline, error) {
	if cfg == nil || paths == nil {
		return nil, apperrors.NewConfigError("pipeline needs a configuration and paths", nil)
	}
	if logger == nil {
		logger = slog.Default()
	}

	ranges, err := dataprocessing.ParseColumnRanges(cfg.Cleaning.ZeroFillRanges)
	if err != nil {
		return nil, apperrors.NewConfigError("invalid zero fill ranges", err)
	}

	var rule *dataprocessing.OutlierRule
	if o := cfg.Cleaning.Outlier; o.Enabled {
		rule = &dataprocessing.OutlierRule{
			ShelterColumn:   domain.ColShelterName,
			Shelter:         o.Shelter,
			Column:          o.Column,
			DateColumn:      o.DateColumn,
			Year:            o.Year,
			Month:           time.Month(o.Month),
			SameShelterOnly: o.SameShelterOnly,
		}
	}

	loaderOpts := []dataprocessing.LoaderOption{
		dataprocessing.WithTimeout(cfg.Sources.HTTPTimeout),
		dataprocessing.WithSheet(cfg.Sources.Sheet),
		dataprocessing.WithLogger(logger),
	}
	if cfg.Sources.CacheRemote {
		loaderOpts = append(loaderOpts, dataprocessing.WithCache(files.NewManager(paths.CacheDir, logger)))
	}

	renderer := charts.NewRenderer(paths.OutputDir, cfg.Output.ChartWidth, cfg.Output.ChartHeight, logger)
	if cfg.Output.HTML {
		renderer.WithHTML(charts.NewHTMLReport(DashboardTitle))
	}

	p := &Pipeline{
		cfg:   cfg,
		paths: paths,
		loader: dataprocessing.NewLoader(loaderOpts...),
		normalizer: dataprocessing.NewNormalizer(
			cfg.Cleaning.HeaderRow,
			cfg.Cleaning.DropLeadingColumns,
			cfg.Cleaning.IntegerFromColumn,
			logger,
		),
		cleaner: dataprocessing.NewCleaner(dataprocessing.CleanerOptions{
			DateLayouts:    cfg.Sources.DateLayouts,
			DefaultState:   cfg.Cleaning.DefaultState,
			ZeroFillRanges: ranges,
			Outlier:        rule,
		}, logger),
		filter: analytics.Filter{
			YearFrom:          cfg.Analysis.YearFrom,
			YearTo:            cfg.Analysis.YearTo,
			ExcludeAnnotation: cfg.Analysis.ExcludeAnnotation,
		},
		validator: validation.NewFileValidator(logger),
		writer:    exporter.NewCSVWriter(paths, logger),
		renderer:  renderer,
		logger:    logger.With(slog.String("component", "pipeline")),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Registry builds the step graph of a run
func (p *Pipeline) Registry() (*operations.Registry, error) {
	reg := operations.NewRegistry()
	steps := append(p.dataSteps(), p.chartSteps()...)
	if p.renderer.HTML() != nil {
		steps = append(steps, p.dashboardStep())
	}
	for _, s := range steps {
		if err := reg.Register(s); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

// Run executes the whole pipeline. tracer may be nil.
func (p *Pipeline) Run(ctx context.Context, tracer *operations.StepTracer) (*operations.RunState, error) {
	reg, err := p.Registry()
	if err != nil {
		return nil, err
	}
	manager := operations.NewManager(reg,
		operations.WithTracer(tracer),
		operations.WithLogger(p.logger),
	)
	state, err := manager.Run(ctx, operations.NewRunState(infrastructure.GetTraceID(ctx)))
	if err != nil {
		return state, err
	}

	p.logger.InfoContext(ctx, "Pipeline finished",
		slog.String("run_id", state.ID),
		slog.Int("steps", len(state.Steps())),
		slog.Int("files_written", len(state.Outputs())),
		slog.Duration("duration", state.Duration()))
	return state, nil
}

// yearSpan is the "(2021-2023)" suffix of chart titles
func (p *Pipeline) yearSpan() string {
	return fmt.Sprintf("(%d-%d)", p.filter.YearFrom, p.filter.YearTo)
}

// logDtypes reports the dtype profile of a table, one debug line per column
func (p *Pipeline) logDtypes(ctx context.Context, stage string, f *frame.Frame) map[string]frame.ColumnProfile {
	profiles := frame.DetailedDtypes(f)
	p.logger.InfoContext(ctx, "Table profiled",
		slog.String("stage", stage),
		slog.Int("rows", f.NumRows()),
		slog.Int("columns", f.NumCols()))
	for _, row := range frame.ProfileRows(profiles) {
		p.logger.DebugContext(ctx, "Column dtype",
			slog.String("stage", stage),
			slog.String("column", row[0]),
			slog.String("storage_type", row[1]),
			slog.String("value_types", row[2]),
			slog.String("missing", row[3]),
			slog.String("unique", row[4]))
	}
	return profiles
}
