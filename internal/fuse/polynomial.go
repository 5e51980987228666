package fuse

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// fitDegree is the fixed regression degree: low enough to smooth sensor
// noise, high enough to follow gradual trends across an activity.
const fitDegree = 3

// Polynomial is a fitted curve with coefficients in ascending order, so
// Coefficients[i] multiplies x^i.
type Polynomial struct {
	Coefficients []float64
}

// Eval evaluates the polynomial at x using Horner's rule.
func (p Polynomial) Eval(x float64) float64 {
	var y float64
	for i := len(p.Coefficients) - 1; i >= 0; i-- {
		y = y*x + p.Coefficients[i]
	}
	return y
}

// FitPolynomial computes the ordinary least-squares polynomial of the given
// degree over the samples by solving the Vandermonde system with a QR
// factorization.
func FitPolynomial(xs, ys []float64, degree int) (Polynomial, error) {
	if len(xs) != len(ys) {
		return Polynomial{}, fmt.Errorf("sample length mismatch: %d x values, %d y values", len(xs), len(ys))
	}
	if len(xs) < degree+1 {
		return Polynomial{}, fmt.Errorf("need at least %d samples for a degree-%d fit, got %d", degree+1, degree, len(xs))
	}

	rows := len(xs)
	cols := degree + 1

	a := mat.NewDense(rows, cols, nil)
	for i, x := range xs {
		v := 1.0
		for j := 0; j < cols; j++ {
			a.Set(i, j, v)
			v *= x
		}
	}

	b := mat.NewVecDense(rows, ys)

	var qr mat.QR
	qr.Factorize(a)

	coeffs := mat.NewVecDense(cols, nil)
	if err := qr.SolveVecTo(coeffs, false, b); err != nil {
		return Polynomial{}, fmt.Errorf("least-squares solve failed: %w", err)
	}

	out := make([]float64, cols)
	copy(out, coeffs.RawVector().Data)

	return Polynomial{Coefficients: out}, nil
}
