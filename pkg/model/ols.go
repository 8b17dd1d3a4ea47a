// Package model holds the fitted-model code behind the regression and
// clustering operations: ordinary least squares, k-means, and the
// standard scaler that k-means fits in.
package model

import (
	"errors"

	"gonum.org/v1/gonum/stat"
)

// OLS is a simple ordinary-least-squares line fit of y on x.
type OLS struct {
	Slope     float64
	Intercept float64
	R2        float64
	N         int
}

// FitOLS fits y = slope*x + intercept by least squares. It needs at least
// two points. R2 is 1 - SSres/SStot, reported as 0 when y is constant
// (SStot == 0), never NaN.
func FitOLS(x, y []float64) (*OLS, error) {
	if len(x) != len(y) {
		return nil, errors.New("x and y must have the same length")
	}
	if len(x) < 2 {
		return nil, errors.New("need at least 2 points to fit a line")
	}

	intercept, slope := stat.LinearRegression(x, y, nil, false)

	meanY := stat.Mean(y, nil)
	ssTot, ssRes := 0.0, 0.0
	for i := range y {
		d := y[i] - meanY
		ssTot += d * d
		r := y[i] - (slope*x[i] + intercept)
		ssRes += r * r
	}
	r2 := 0.0
	if ssTot != 0 {
		r2 = 1 - ssRes/ssTot
	}

	return &OLS{Slope: slope, Intercept: intercept, R2: r2, N: len(x)}, nil
}

// Predict returns the fitted value at x.
func (m *OLS) Predict(x float64) float64 {
	return m.Slope*x + m.Intercept
}
