package dataprocessing

import (
	"log/slog"

	"github.com/sganes21/Dataset-Final-Project/internal/frame"
	"github.com/sganes21/Dataset-Final-Project/pkg/contracts/domain"
)

// CleaningReport summarizes what the cleaning passes changed.
type CleaningReport struct {
	YearsDerived       int
	StatesDefaulted    int
	PlaceholdersZeroed int
	MissingZeroed      int
	Outlier            *Correction
}

// CleanerOptions configures a Cleaner
type CleanerOptions struct {
	DateLayouts    []string
	DefaultState   string
	ZeroFillRanges []ColumnRange
	// Outlier is applied by CorrectOutliers; nil disables it.
	Outlier *OutlierRule
}

// Cleaner runs the cleaning passes over the combined table in place.
type Cleaner struct {
	opts   CleanerOptions
	logger *slog.Logger
}

// NewCleaner creates a cleaner
func NewCleaner(opts CleanerOptions, logger *slog.Logger) *Cleaner {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.DateLayouts == nil {
		opts.DateLayouts = frame.DefaultDateLayouts
	}
	if opts.DefaultState == "" {
		opts.DefaultState = domain.DefaultState
	}
	return &Cleaner{opts: opts, logger: logger.With(slog.String("component", "cleaner"))}
}

// Clean derives Data Year from Report Period End, defaults missing states
// and zero fills the configured column ranges.
func (c *Cleaner) Clean(f *frame.Frame) (*CleaningReport, error) {
	report := &CleaningReport{}

	derived, err := DeriveDataYear(f, domain.ColReportPeriodEnd, domain.ColDataYear, c.opts.DateLayouts)
	if err != nil {
		return nil, err
	}
	report.YearsDerived = derived

	filled, err := DefaultState(f, domain.ColState, c.opts.DefaultState)
	if err != nil {
		return nil, err
	}
	report.StatesDefaulted = filled

	res, err := ZeroFill(f, c.opts.ZeroFillRanges)
	if err != nil {
		return nil, err
	}
	report.PlaceholdersZeroed = res.Placeholders
	report.MissingZeroed = res.Missing

	c.logger.Info("Combined table cleaned",
		slog.Int("years_derived", report.YearsDerived),
		slog.Int("states_defaulted", report.StatesDefaulted),
		slog.Int("placeholders_zeroed", report.PlaceholdersZeroed),
		slog.Int("missing_zeroed", report.MissingZeroed))
	return report, nil
}

// CorrectOutliers applies the configured outlier rule and records the
// result on report.
func (c *Cleaner) CorrectOutliers(f *frame.Frame, report *CleaningReport) error {
	if c.opts.Outlier == nil {
		c.logger.Debug("Outlier correction disabled")
		return nil
	}
	corr, err := CorrectOutlier(f, *c.opts.Outlier, c.opts.DateLayouts)
	if err != nil {
		return err
	}
	if report != nil {
		report.Outlier = corr
	}

	if corr.Skipped {
		c.logger.Warn("Outlier correction skipped, no reference values",
			slog.String("rule", corr.Rule.String()))
		return nil
	}
	c.logger.Info("Outlier corrected",
		slog.String("rule", corr.Rule.String()),
		slog.Int("rows", len(corr.Rows)),
		slog.Int("reference_rows", corr.ReferenceRows),
		slog.Float64("replacement", corr.Replacement))
	return nil
}
