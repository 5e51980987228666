package fuse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEval(t *testing.T) {
	// 2 - x + 3x^2 + 0.5x^3
	p := Polynomial{Coefficients: []float64{2, -1, 3, 0.5}}

	assert.InDelta(t, 2.0, p.Eval(0), 1e-12)
	assert.InDelta(t, 4.5, p.Eval(1), 1e-12)
	assert.InDelta(t, 2.3125, p.Eval(0.5), 1e-12)
}

func TestEvalEmpty(t *testing.T) {
	assert.Zero(t, Polynomial{}.Eval(0.5))
}

func TestFitPolynomialExactData(t *testing.T) {
	// Samples lying exactly on a cubic must be reproduced by the fit.
	cubic := func(x float64) float64 { return 2 - x + 3*x*x + 0.5*x*x*x }

	xs := []float64{0, 0.2, 0.4, 0.6, 0.8, 1}
	ys := make([]float64, len(xs))
	for i, x := range xs {
		ys[i] = cubic(x)
	}

	fit, err := FitPolynomial(xs, ys, 3)
	require.NoError(t, err)
	require.Len(t, fit.Coefficients, 4)

	for i, x := range xs {
		assert.InDelta(t, ys[i], fit.Eval(x), 1e-8, "sample %d", i)
	}

	// The fit also tracks the cubic between samples.
	assert.InDelta(t, cubic(0.35), fit.Eval(0.35), 1e-8)
}

func TestFitPolynomialLinearData(t *testing.T) {
	// A line is inside the cubic space, so the least-squares residual is
	// zero and the higher coefficients vanish.
	xs := []float64{0, 0.25, 0.5, 0.75, 1}
	ys := []float64{100, 110, 120, 130, 140}

	fit, err := FitPolynomial(xs, ys, 3)
	require.NoError(t, err)

	assert.InDelta(t, 100, fit.Eval(0), 1e-8)
	assert.InDelta(t, 124, fit.Eval(0.6), 1e-8)
	assert.InDelta(t, 140, fit.Eval(1), 1e-8)
}

func TestFitPolynomialInsufficientSamples(t *testing.T) {
	xs := []float64{0, 0.5, 1}
	ys := []float64{1, 2, 3}

	_, err := FitPolynomial(xs, ys, 3)
	assert.Error(t, err)
}

func TestFitPolynomialLengthMismatch(t *testing.T) {
	_, err := FitPolynomial([]float64{0, 1}, []float64{1}, 1)
	assert.Error(t, err)
}
