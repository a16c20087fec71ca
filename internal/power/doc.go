// Package power sizes an independent two-sample t test with equal group
// sizes. Power is computed exactly from the noncentral t distribution.
package power
