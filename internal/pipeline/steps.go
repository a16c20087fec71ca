package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"

	"github.com/sganes21/Dataset-Final-Project/internal/config"
	"github.com/sganes21/Dataset-Final-Project/internal/dataprocessing"
	apperrors "github.com/sganes21/Dataset-Final-Project/internal/errors"
	"github.com/sganes21/Dataset-Final-Project/internal/infrastructure"
	"github.com/sganes21/Dataset-Final-Project/internal/operations"
	"github.com/sganes21/Dataset-Final-Project/pkg/contracts/domain"
)

// Step IDs of the data preparation stage.
const (
	StepPrepareOutput   = "prepare-output"
	StepLoadState       = "load-state"
	StepLoadAnnotations = "load-annotations"
	StepLoadSurvey      = "load-survey"
	StepNormalizeState  = "normalize-state"
	StepAnnotate        = "annotate"
	StepMerge           = "merge"
	StepClean           = "clean"
	StepCorrectOutliers = "correct-outliers"
	StepExport          = "export"
)

func (p *Pipeline) dataSteps() []operations.Step {
	steps := []operations.Step{
		operations.NewFuncStep(StepPrepareOutput, "Prepare output directories", p.prepareOutput),
		operations.NewFuncStep(StepLoadState, "Load state export",
			p.loadStep(p.cfg.Sources.StateExport, TableStateRaw)),
		operations.NewFuncStep(StepLoadAnnotations, "Load shelter annotations",
			p.loadStep(p.cfg.Sources.Annotations, TableAnnotations)),
		operations.NewFuncStep(StepLoadSurvey, "Load survey export",
			p.loadStep(p.cfg.Sources.Survey, TableSurvey)),
		operations.NewFuncStep(StepNormalizeState, "Normalize state export", p.normalize,
			StepLoadState),
		operations.NewFuncStep(StepAnnotate, "Attach shelter annotations", p.annotate,
			StepNormalizeState, StepLoadAnnotations),
		operations.NewFuncStep(StepMerge, "Merge survey on shelter name", p.merge,
			StepAnnotate, StepLoadSurvey),
		operations.NewFuncStep(StepClean, "Clean combined table", p.clean,
			StepMerge),
		operations.NewFuncStep(StepCorrectOutliers, "Correct outliers", p.correctOutliers,
			StepClean),
	}
	if p.cfg.Output.ExportCombined {
		steps = append(steps, operations.NewFuncStep(StepExport, "Export combined table", p.export,
			StepCorrectOutliers, StepPrepareOutput))
	}
	return steps
}

func (p *Pipeline) prepareOutput(ctx context.Context, _ *operations.RunState) error {
	if err := p.validator.ValidateOutputDirectory(p.paths.OutputDir); err != nil {
		return err
	}
	if err := p.paths.EnsureDirectories(); err != nil {
		return apperrors.NewExportError("failed to create output directories", err)
	}
	p.paths.LogPathResolution(p.logger)
	return nil
}

// loadStep reads source into table. The loader only logs its failures, so
// a nil table is turned back into an error here.
func (p *Pipeline) loadStep(source, table string) operations.StepFunc {
	return func(ctx context.Context, state *operations.RunState) error {
		if err := p.validator.ValidateSource(source); err != nil {
			return err
		}
		f := p.loader.Load(ctx, source)
		if f == nil {
			return apperrors.NewLoadError(fmt.Sprintf("no data loaded from %s", source), nil).
				WithContext("source", source)
		}
		state.SetFrame(table, f)
		p.metrics.RecordRows(ctx, table, f.NumRows())
		return nil
	}
}

func (p *Pipeline) normalize(ctx context.Context, state *operations.RunState) error {
	raw, err := state.Frame(TableStateRaw)
	if err != nil {
		return err
	}
	f, err := p.normalizer.Normalize(raw)
	if err != nil {
		return err
	}
	p.logDtypes(ctx, StepNormalizeState, f)
	state.SetFrame(TableState, f)
	return nil
}

func (p *Pipeline) annotate(ctx context.Context, state *operations.RunState) error {
	f, err := state.Frame(TableState)
	if err != nil {
		return err
	}
	ann, err := state.Frame(TableAnnotations)
	if err != nil {
		return err
	}
	if ann.NumRows() != f.NumRows() {
		p.logger.WarnContext(ctx, "Annotation rows do not line up with the state export",
			slog.Int("state_rows", f.NumRows()),
			slog.Int("annotation_rows", ann.NumRows()))
	}
	out, err := dataprocessing.AttachColumn(f, ann, domain.ColAnnotation)
	if err != nil {
		return err
	}
	state.SetFrame(TableState, out)
	return nil
}

func (p *Pipeline) merge(ctx context.Context, state *operations.RunState) error {
	f, err := state.Frame(TableState)
	if err != nil {
		return err
	}
	survey, err := state.Frame(TableSurvey)
	if err != nil {
		return err
	}
	p.logDtypes(ctx, StepLoadSurvey, survey)

	combined, err := dataprocessing.Merge(f, survey, domain.ColShelterName)
	if err != nil {
		return err
	}
	p.logger.InfoContext(ctx, "Survey merged",
		slog.Int("state_rows", f.NumRows()),
		slog.Int("survey_rows", survey.NumRows()),
		slog.Int("combined_rows", combined.NumRows()))
	state.SetFrame(TableCombined, combined)
	return nil
}

func (p *Pipeline) clean(ctx context.Context, state *operations.RunState) error {
	f, err := state.Frame(TableCombined)
	if err != nil {
		return err
	}
	report, err := p.cleaner.Clean(f)
	if err != nil {
		return err
	}
	state.SetReport(report)
	p.metrics.RecordZeroFilled(ctx, report.PlaceholdersZeroed, report.MissingZeroed)
	infrastructure.AddSpanEvent(ctx, "table_cleaned",
		attribute.Int("years_derived", report.YearsDerived),
		attribute.Int("states_defaulted", report.StatesDefaulted),
		attribute.Int("placeholders_zeroed", report.PlaceholdersZeroed),
		attribute.Int("missing_zeroed", report.MissingZeroed))
	p.logDtypes(ctx, TableCombined, f)
	return nil
}

func (p *Pipeline) correctOutliers(ctx context.Context, state *operations.RunState) error {
	f, err := state.Frame(TableCombined)
	if err != nil {
		return err
	}
	report := state.Report()
	if err := p.cleaner.CorrectOutliers(f, report); err != nil {
		return err
	}
	if report != nil && report.Outlier != nil && !report.Outlier.Skipped {
		p.metrics.RecordOutliers(ctx, len(report.Outlier.Rows))
		infrastructure.AddSpanEvent(ctx, "outliers_corrected",
			attribute.Int("cells", len(report.Outlier.Rows)),
			attribute.Float64("replacement", report.Outlier.Replacement),
			attribute.Int("reference_rows", report.Outlier.ReferenceRows))
	}
	return nil
}

func (p *Pipeline) export(ctx context.Context, state *operations.RunState) error {
	f, err := state.Frame(TableCombined)
	if err != nil {
		return err
	}

	csvPath, err := p.writer.WriteFrame(config.CombinedCSVFile, f)
	if err != nil {
		return err
	}
	state.AddOutput(csvPath)

	xlsxPath, err := p.writer.WriteWorkbook(config.CombinedXLSXFile, f)
	if err != nil {
		return err
	}
	state.AddOutput(xlsxPath)

	dtypesPath, err := p.writer.WriteDtypes(config.DtypesCSVFile, p.logDtypes(ctx, StepExport, f))
	if err != nil {
		return err
	}
	state.AddOutput(dtypesPath)
	return nil
}
