// Package dataprocessing turns the shelter workbooks into one cleaned
// table.
//
// # Components
//
//  1. Loader: fetches a workbook over HTTP or from disk and parses its
//     first sheet with excelize.
//  2. Normalizer: rebuilds the state export's header and coerces its count
//     columns to integers.
//  3. AttachColumn and Merge: add the annotation column by position and
//     outer join the state export with the survey on Shelter Name.
//  4. Cleaner: derives Data Year, defaults the state, zero fills the count
//     ranges and applies the outlier correction.
//
// # Usage
//
//	loader := dataprocessing.NewLoader(dataprocessing.WithTimeout(time.Minute))
//	raw := loader.Load(ctx, url)
//	if raw == nil {
//	    // the failure has been logged
//	}
//	state, err := dataprocessing.NewNormalizer(2, 1, 4, logger).Normalize(raw)
//
// # Error Handling
//
// Only Load swallows errors. Every other function returns an
// *errors.AppError whose Type names the failing stage.
package dataprocessing
