package config

import (
	"fmt"
	"os"
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"github.com/sganes21/Dataset-Final-Project/internal/frame"
)

// Config represents the complete application configuration
type Config struct {
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Sources   SourcesConfig   `yaml:"sources" envconfig:"SOURCES"`
	Cleaning  CleaningConfig  `yaml:"cleaning" envconfig:"CLEANING"`
	Analysis  AnalysisConfig  `yaml:"analysis" envconfig:"ANALYSIS"`
	Output    OutputConfig    `yaml:"output" envconfig:"OUTPUT"`
	Telemetry TelemetryConfig `yaml:"telemetry" envconfig:"TELEMETRY"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn warning error"`
	Format   string `yaml:"format" envconfig:"FORMAT" validate:"oneof=json text"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=stdout file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// SourcesConfig locates the three input workbooks. Each source is either
// an http(s) URL or a local path.
type SourcesConfig struct {
	StateExport string        `yaml:"state_export" envconfig:"STATE_EXPORT" validate:"required"`
	Annotations string        `yaml:"annotations" envconfig:"ANNOTATIONS" validate:"required"`
	Survey      string        `yaml:"survey" envconfig:"SURVEY" validate:"required"`
	Sheet       string        `yaml:"sheet" envconfig:"SHEET"`
	HTTPTimeout time.Duration `yaml:"http_timeout" envconfig:"HTTP_TIMEOUT" validate:"gt=0"`
	CacheRemote bool          `yaml:"cache_remote" envconfig:"CACHE_REMOTE"`
	DateLayouts []string      `yaml:"date_layouts" envconfig:"DATE_LAYOUTS" validate:"min=1"`
}

// CleaningConfig drives schema normalization and the cleaning passes.
type CleaningConfig struct {
	HeaderRow          int           `yaml:"header_row" envconfig:"HEADER_ROW" validate:"gte=0"`
	DropLeadingColumns int           `yaml:"drop_leading_columns" envconfig:"DROP_LEADING_COLUMNS" validate:"gte=0"`
	IntegerFromColumn  int           `yaml:"integer_from_column" envconfig:"INTEGER_FROM_COLUMN" validate:"gte=0"`
	ZeroFillRanges     []string      `yaml:"zero_fill_ranges" envconfig:"ZERO_FILL_RANGES" validate:"dive,colrange"`
	DefaultState       string        `yaml:"default_state" envconfig:"DEFAULT_STATE" validate:"required"`
	Outlier            OutlierConfig `yaml:"outlier" envconfig:"OUTLIER"`
}

// OutlierConfig names the single cell that is replaced by a seasonal mean.
type OutlierConfig struct {
	Enabled         bool   `yaml:"enabled" envconfig:"ENABLED"`
	Shelter         string `yaml:"shelter" envconfig:"SHELTER" validate:"required_if=Enabled true"`
	Column          string `yaml:"column" envconfig:"COLUMN" validate:"required_if=Enabled true"`
	DateColumn      string `yaml:"date_column" envconfig:"DATE_COLUMN" validate:"required_if=Enabled true"`
	Year            int    `yaml:"year" envconfig:"YEAR" validate:"gte=1900"`
	Month           int    `yaml:"month" envconfig:"MONTH" validate:"min=1,max=12"`
	SameShelterOnly bool   `yaml:"same_shelter_only" envconfig:"SAME_SHELTER_ONLY"`
}

// AnalysisConfig controls the aggregation passes.
type AnalysisConfig struct {
	YearFrom          int    `yaml:"year_from" envconfig:"YEAR_FROM" validate:"gte=1900"`
	YearTo            int    `yaml:"year_to" envconfig:"YEAR_TO" validate:"gtefield=YearFrom"`
	TopShelters       int    `yaml:"top_shelters" envconfig:"TOP_SHELTERS" validate:"gte=1"`
	ExcludeAnnotation string `yaml:"exclude_annotation" envconfig:"EXCLUDE_ANNOTATION"`
}

// OutputConfig controls where and what the run writes.
type OutputConfig struct {
	Dir            string  `yaml:"dir" envconfig:"DIR" validate:"required"`
	HTML           bool    `yaml:"html" envconfig:"HTML"`
	ExportCombined bool    `yaml:"export_combined" envconfig:"EXPORT_COMBINED"`
	ChartWidth     float64 `yaml:"chart_width" envconfig:"CHART_WIDTH" validate:"gt=0"`
	ChartHeight    float64 `yaml:"chart_height" envconfig:"CHART_HEIGHT" validate:"gt=0"`
}

// TelemetryConfig controls the trace file and the metrics textfile.
type TelemetryConfig struct {
	Tracing     bool   `yaml:"tracing" envconfig:"TRACING"`
	Metrics     bool   `yaml:"metrics" envconfig:"METRICS"`
	Environment string `yaml:"environment" envconfig:"ENVIRONMENT"`
}

// Load builds the configuration from defaults, then the YAML file at path
// (or the first config file found in the usual locations when path is
// empty), then SHELTER_* environment variables, and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = getConfigFilePath()
	}
	if path != "" {
		if err := loadFromFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// loadFromFile overlays the YAML file at filePath onto cfg
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

var columnRange = regexp.MustCompile(`^\d+:\d*$`)

// Validate checks the configuration against its struct tags
func (c *Config) Validate() error {
	v := validator.New()
	v.RegisterValidation("colrange", func(fl validator.FieldLevel) bool {
		return columnRange.MatchString(fl.Field().String())
	})
	return v.Struct(c)
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	locations := []string{
		"shelterstats.yaml",
		"configs/shelterstats.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return ""
}

// Default returns default configuration
func Default() *Config {
	layouts := make([]string, len(frame.DefaultDateLayouts))
	copy(layouts, frame.DefaultDateLayouts)
	ranges := make([]string, len(DefaultZeroFillRanges))
	copy(ranges, DefaultZeroFillRanges)

	return &Config{
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "both",
			FilePath: "logs/" + LogFile,
		},
		Sources: SourcesConfig{
			StateExport: DefaultStateExportURL,
			Annotations: DefaultAnnotationsPath,
			Survey:      DefaultSurveyPath,
			HTTPTimeout: DefaultHTTPTimeout,
			DateLayouts: layouts,
		},
		Cleaning: CleaningConfig{
			HeaderRow:          DefaultHeaderRow,
			DropLeadingColumns: DefaultDropLeadingColumns,
			IntegerFromColumn:  DefaultIntegerFromColumn,
			ZeroFillRanges:     ranges,
			DefaultState:       "GA",
			Outlier: OutlierConfig{
				Enabled:    true,
				Shelter:    DefaultOutlierShelter,
				Column:     DefaultOutlierColumn,
				DateColumn: "Report Period Start",
				Year:       DefaultOutlierYear,
				Month:      DefaultOutlierMonth,
			},
		},
		Analysis: AnalysisConfig{
			YearFrom:          DefaultYearFrom,
			YearTo:            DefaultYearTo,
			TopShelters:       DefaultTopShelters,
			ExcludeAnnotation: "R",
		},
		Output: OutputConfig{
			Dir:            ".",
			ExportCombined: true,
			ChartWidth:     DefaultChartWidth,
			ChartHeight:    DefaultChartHeight,
		},
		Telemetry: TelemetryConfig{
			Tracing:     false,
			Metrics:     true,
			Environment: "production",
		},
	}
}
