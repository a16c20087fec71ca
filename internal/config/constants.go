package config

import "time"

// Application constants
const (
	AppName = "shelterstats"

	// EnvPrefix namespaces every environment override, e.g.
	// SHELTER_ANALYSIS_YEAR_FROM=2021.
	EnvPrefix = "SHELTER"

	// Input sources
	DefaultStateExportURL  = "https://agr.georgia.gov/sites/default/files/documents/pets-and-livestock/shelter-report-data-export-october-2024.xlsx.xlsx"
	DefaultAnnotationsPath = "shelter-report-data-export-october-2024_annotations_master.xlsx"
	DefaultSurveyPath      = "Data Request-Ganesan.xlsx"
	DefaultHTTPTimeout     = 60 * time.Second

	// Schema normalization
	DefaultHeaderRow          = 2
	DefaultDropLeadingColumns = 1
	DefaultIntegerFromColumn  = 4

	// Outlier correction
	DefaultOutlierShelter = "DEKALB COUNTY ANIMAL SERVICES"
	DefaultOutlierColumn  = "Canine stray at large"
	DefaultOutlierYear    = 2022
	DefaultOutlierMonth   = 9

	// Aggregation
	DefaultYearFrom    = 2021
	DefaultYearTo      = 2023
	DefaultTopShelters = 10

	// Chart geometry in inches
	DefaultChartWidth  = 12.0
	DefaultChartHeight = 6.0

	// Export file names
	CombinedCSVFile  = "combined.csv"
	CombinedXLSXFile = "combined.xlsx"
	DtypesCSVFile    = "dtypes.csv"
	DashboardFile    = "dashboard.html"
	MetricsFile      = "shelterstats.prom"
	TraceFile        = "trace.json"
	LogFile          = "shelterstats.log"
)

// DefaultZeroFillRanges are the column ranges of the combined table that
// receive the missing-value policy, as start:end with an open end allowed.
var DefaultZeroFillRanges = []string{"4:35", "41:"}
