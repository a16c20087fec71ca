// Package operations runs a pipeline as a graph of named steps.
//
// Steps are registered in a Registry, ordered by their declared
// dependencies and executed one at a time by a Manager. Steps exchange
// tables through the RunState. Each step gets its own span and its
// duration is recorded as a metric; the first failure stops the run and
// is returned as an *OperationError carrying the step id.
package operations
