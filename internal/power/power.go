package power

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/integrate/quad"
	"gonum.org/v1/gonum/stat/distuv"

	apperrors "github.com/sganes21/Dataset-Final-Project/internal/errors"
)

// Alternative is the alternative hypothesis of the test
type Alternative string

const (
	TwoSided Alternative = "two-sided"
	Larger   Alternative = "larger"
	Smaller  Alternative = "smaller"
)

// ParseAlternative accepts the names used on the command line
func ParseAlternative(s string) (Alternative, error) {
	switch a := Alternative(s); a {
	case TwoSided, Larger, Smaller:
		return a, nil
	}
	return "", apperrors.NewValidationError(fmt.Sprintf("unknown alternative %q", s), nil)
}

// quadrature nodes for the integral over the chi-square mixing distribution
const nodes = 512

// Power returns the power of a two-sample t test with nobs observations
// in each group, standardized effect size effect and significance alpha.
func Power(effect, nobs, alpha float64, alt Alternative) (float64, error) {
	if err := validate(effect, alpha, alt); err != nil {
		return 0, err
	}
	if !(nobs > 1) || math.IsInf(nobs, 0) {
		return 0, apperrors.NewValidationError(fmt.Sprintf("nobs must be greater than 1, got %v", nobs), nil)
	}
	return power(effect, nobs, alpha, alt), nil
}

func power(effect, nobs, alpha float64, alt Alternative) float64 {
	df := 2*nobs - 2
	nc := effect * math.Sqrt(nobs/2)
	t := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}

	switch alt {
	case Larger:
		return nctSurvival(t.Quantile(1-alpha), df, nc)
	case Smaller:
		return nctCDF(t.Quantile(alpha), df, nc)
	}
	crit := t.Quantile(1 - alpha/2)
	return nctSurvival(crit, df, nc) + nctCDF(-crit, df, nc)
}

// SampleSize returns the number of observations per group needed to reach
// the requested power. The result is not rounded.
func SampleSize(effect, alpha, target float64, alt Alternative) (float64, error) {
	if err := validate(effect, alpha, alt); err != nil {
		return 0, err
	}
	if !(target > alpha && target < 1) {
		return 0, apperrors.NewValidationError(fmt.Sprintf("power must lie in (alpha, 1), got %v", target), nil)
	}
	if effect == 0 {
		return 0, apperrors.NewValidationError("effect size must be non-zero", nil)
	}
	if alt == Larger && effect < 0 || alt == Smaller && effect > 0 {
		return 0, apperrors.NewValidationError(
			fmt.Sprintf("effect size %v points away from the %s alternative", effect, alt), nil)
	}

	lo, hi := 2.0, 4.0
	if power(effect, lo, alpha, alt) >= target {
		return lo, nil
	}
	for power(effect, hi, alpha, alt) < target {
		lo, hi = hi, hi*2
		if hi > 1e9 {
			return 0, apperrors.NewValidationError("sample size does not converge", nil)
		}
	}

	for i := 0; i < 200 && hi-lo > 1e-9*hi; i++ {
		mid := (lo + hi) / 2
		if power(effect, mid, alpha, alt) < target {
			lo = mid
		} else {
			hi = mid
		}
	}
	return (lo + hi) / 2, nil
}

func validate(effect, alpha float64, alt Alternative) error {
	if math.IsNaN(effect) || math.IsInf(effect, 0) {
		return apperrors.NewValidationError(fmt.Sprintf("effect size must be finite, got %v", effect), nil)
	}
	if !(alpha > 0 && alpha < 1) {
		return apperrors.NewValidationError(fmt.Sprintf("alpha must lie in (0, 1), got %v", alpha), nil)
	}
	if _, err := ParseAlternative(string(alt)); err != nil {
		return err
	}
	return nil
}

// nctSurvival is P(T > x) for a noncentral t variable with df degrees of
// freedom and noncentrality nc. T = (Z + nc) / sqrt(V/df) with V
// chi-square, so conditioning on V gives a normal tail; V is integrated
// out over its quantiles.
func nctSurvival(x, df, nc float64) float64 {
	chi := distuv.ChiSquared{K: df}
	return quad.Fixed(func(u float64) float64 {
		s := math.Sqrt(chi.Quantile(u) / df)
		return distuv.UnitNormal.Survival(x*s - nc)
	}, 0, 1, nodes, nil, 0)
}

// nctCDF is P(T <= x)
func nctCDF(x, df, nc float64) float64 {
	chi := distuv.ChiSquared{K: df}
	return quad.Fixed(func(u float64) float64 {
		s := math.Sqrt(chi.Quantile(u) / df)
		return distuv.UnitNormal.CDF(x*s - nc)
	}, 0, 1, nodes, nil, 0)
}
