// Package config provides centralized configuration for the shelter
// pipeline. It handles loading configuration from multiple sources,
// validation, and the resolution of output paths.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//  1. Environment variables (highest priority)
//  2. A YAML configuration file
//  3. Default values (lowest priority)
//
// The defaults reproduce the fixed behavior of the pipeline: the Georgia
// state export URL, the two local workbooks, header row 2, integer
// coercion from column 4, zero-fill ranges 4:35 and 41:, the DeKalb
// September 2022 correction and the 2021-2023 analysis window.
//
// # Environment Variables
//
// All environment variables follow the pattern SHELTER_<SECTION>_<KEY>:
//
//	SHELTER_SOURCES_STATE_EXPORT=./export.xlsx
//	SHELTER_ANALYSIS_YEAR_FROM=2022
//	SHELTER_CLEANING_OUTLIER_ENABLED=false
//	SHELTER_OUTPUT_HTML=true
//	SHELTER_LOGGING_LEVEL=debug
//
// # Paths
//
// GetPaths resolves the output directory. Chart images are written
// directly into it; exports/, logs/ and cache/ are created beneath it.
package config
