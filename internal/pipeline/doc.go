// Package pipeline wires the loaders, cleaning passes, aggregates and chart
// renderer into one step graph and runs it with the operations manager.
//
// A run loads the state export, the shelter annotations and the survey
// export, normalizes the state export, attaches the annotations by row
// position, merges the survey on shelter name, cleans the combined table,
// corrects the configured outlier and then draws every chart from the
// cleaned table. The combined table is optionally exported as CSV and
// xlsx, and the charts are optionally mirrored into an HTML dashboard.
package pipeline
