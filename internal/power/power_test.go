package power

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat/distuv"

	apperrors "github.com/sganes21/Dataset-Final-Project/internal/errors"
)

func TestSampleSize_Default(t *testing.T) {
	n, err := SampleSize(0.2, 0.01, 0.8, TwoSided)
	require.NoError(t, err)
	assert.InDelta(t, 585.61, n, 0.01)

	p, err := Power(0.2, n, 0.01, TwoSided)
	require.NoError(t, err)
	assert.InDelta(t, 0.8, p, 1e-6)

	// the conventional alpha reproduces the statsmodels figure
	n, err = SampleSize(0.2, 0.05, 0.8, TwoSided)
	require.NoError(t, err)
	assert.InDelta(t, 393.4057, n, 0.01)
}

func TestSampleSize_CloseToNormalApproximation(t *testing.T) {
	z := distuv.UnitNormal.Quantile
	tests := []struct {
		name   string
		effect float64
		alpha  float64
		power  float64
		alt    Alternative
		zAlpha float64
	}{
		{"two-sided medium effect", 0.5, 0.05, 0.8, TwoSided, z(1 - 0.025)},
		{"larger small effect", 0.2, 0.05, 0.9, Larger, z(1 - 0.05)},
		{"smaller negative effect", -0.3, 0.01, 0.8, Smaller, z(1 - 0.01)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := SampleSize(tt.effect, tt.alpha, tt.power, tt.alt)
			require.NoError(t, err)

			approx := 2 * math.Pow(tt.zAlpha+z(tt.power), 2) / (tt.effect * tt.effect)
			// the t test needs slightly more observations than the z test
			assert.Greater(t, n, approx)
			assert.Less(t, n, approx+4)
		})
	}
}

func TestPower_NullEffectIsAlpha(t *testing.T) {
	tests := []struct {
		alt  Alternative
		nobs float64
	}{
		{TwoSided, 10},
		{TwoSided, 300},
		{Larger, 25},
		{Smaller, 25},
	}

	for _, tt := range tests {
		t.Run(string(tt.alt), func(t *testing.T) {
			p, err := Power(0, tt.nobs, 0.05, tt.alt)
			require.NoError(t, err)
			assert.InDelta(t, 0.05, p, 1e-4)
		})
	}
}

func TestPower_IncreasesWithSampleSize(t *testing.T) {
	prev := 0.0
	for _, n := range []float64{5, 20, 80, 320} {
		p, err := Power(0.3, n, 0.05, TwoSided)
		require.NoError(t, err)
		assert.Greater(t, p, prev)
		prev = p
	}
	assert.Greater(t, prev, 0.9)
}

func TestValidation(t *testing.T) {
	tests := []struct {
		name string
		run  func() error
	}{
		{"alpha zero", func() error { _, err := SampleSize(0.2, 0, 0.8, TwoSided); return err }},
		{"alpha one", func() error { _, err := Power(0.2, 10, 1, TwoSided); return err }},
		{"power above one", func() error { _, err := SampleSize(0.2, 0.05, 1.2, TwoSided); return err }},
		{"power below alpha", func() error { _, err := SampleSize(0.2, 0.05, 0.01, TwoSided); return err }},
		{"zero effect", func() error { _, err := SampleSize(0, 0.05, 0.8, TwoSided); return err }},
		{"wrong direction", func() error { _, err := SampleSize(-0.2, 0.05, 0.8, Larger); return err }},
		{"nan effect", func() error { _, err := Power(math.NaN(), 10, 0.05, TwoSided); return err }},
		{"one observation", func() error { _, err := Power(0.2, 1, 0.05, TwoSided); return err }},
		{"unknown alternative", func() error { _, err := Power(0.2, 10, 0.05, "both"); return err }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.run()
			require.Error(t, err)
			assert.Equal(t, apperrors.ErrTypeValidation, apperrors.TypeOf(err))
		})
	}
}

func TestParseAlternative(t *testing.T) {
	for _, s := range []string{"two-sided", "larger", "smaller"} {
		a, err := ParseAlternative(s)
		require.NoError(t, err)
		assert.Equal(t, Alternative(s), a)
	}
	_, err := ParseAlternative("two_sided")
	assert.Error(t, err)
}
