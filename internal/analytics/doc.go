// Package analytics computes the aggregate views drawn as charts: totals
// by state, by species and state, by shelter and year, and by outcome.
//
// Every function reads the combined table and returns a new value; none
// of them modifies the table or depends on another's result.
package analytics
