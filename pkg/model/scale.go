package model

import (
	"errors"
	"math"
)

// StandardScaler standardizes each column to zero mean and unit variance.
// Columns with zero variance are left centered but unscaled (std treated
// as 1) so Transform never divides by zero.
type StandardScaler struct {
	Mean []float64
	Std  []float64
	fit  bool
}

// NewStandardScaler returns an unfitted scaler.
func NewStandardScaler() *StandardScaler { return &StandardScaler{} }

// Fit learns per-column mean and standard deviation from X.
func (s *StandardScaler) Fit(X [][]float64) error {
	if len(X) == 0 {
		return errors.New("cannot fit scaler on empty data")
	}
	r, c := len(X), len(X[0])
	s.Mean = make([]float64, c)
	s.Std = make([]float64, c)
	for j := 0; j < c; j++ {
		for i := 0; i < r; i++ {
			s.Mean[j] += X[i][j]
		}
		s.Mean[j] /= float64(r)
		v := 0.0
		for i := 0; i < r; i++ {
			d := X[i][j] - s.Mean[j]
			v += d * d
		}
		v /= float64(r)
		s.Std[j] = math.Sqrt(v)
		if s.Std[j] == 0 {
			s.Std[j] = 1
		}
	}
	s.fit = true
	return nil
}

// Transform standardizes X using the fitted parameters. Calling Transform
// before Fit returns X unchanged.
func (s *StandardScaler) Transform(X [][]float64) [][]float64 {
	if !s.fit {
		return X
	}
	r, c := len(X), len(X[0])
	Y := make([][]float64, r)
	for i := 0; i < r; i++ {
		row := make([]float64, c)
		for j := 0; j < c; j++ {
			row[j] = (X[i][j] - s.Mean[j]) / s.Std[j]
		}
		Y[i] = row
	}
	return Y
}

// FitTransform fits the scaler and standardizes X in one call.
func (s *StandardScaler) FitTransform(X [][]float64) ([][]float64, error) {
	if err := s.Fit(X); err != nil {
		return nil, err
	}
	return s.Transform(X), nil
}

// InverseTransform maps standardized rows back to the original feature
// scale. Used to report cluster centroids in interpretable units.
func (s *StandardScaler) InverseTransform(X [][]float64) [][]float64 {
	if !s.fit {
		return X
	}
	r, c := len(X), len(X[0])
	Y := make([][]float64, r)
	for i := 0; i < r; i++ {
		row := make([]float64, c)
		for j := 0; j < c; j++ {
			row[j] = X[i][j]*s.Std[j] + s.Mean[j]
		}
		Y[i] = row
	}
	return Y
}
