// Package preprocessing standardises features before they reach a model.
//
// Scalers are fitted on a matrix of events (gonum mat) and can then be
// applied to whole matrices or to single feature vectors on the hot path.
package preprocessing

import (
	"fmt"
	"math"

	"github.com/YuminosukeSato/onlinelearn/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Scaler is a fitted, invertible per-feature affine map.
type Scaler interface {
	Fit(X mat.Matrix) error
	Transform(X mat.Matrix) (mat.Matrix, error)
	FitTransform(X mat.Matrix) (mat.Matrix, error)
	InverseTransform(X mat.Matrix) (mat.Matrix, error)
	TransformVector(x []float64) ([]float64, error)
}

// constant features keep a scale of 1
const minScale = 1e-8

// StandardScaler maps every feature to zero mean and unit variance.
type StandardScaler struct {
	// Mean of every feature
	Mean []float64
	// Scale is the population standard deviation of every feature
	Scale []float64

	WithMean bool
	WithStd  bool

	fitted bool
}

// NewStandardScaler creates a StandardScaler.
//
//	scaler := preprocessing.NewStandardScaler(true, true)
//	scaled, err := scaler.FitTransform(X)
func NewStandardScaler(withMean, withStd bool) *StandardScaler {
	return &StandardScaler{WithMean: withMean, WithStd: withStd}
}

// NewStandardScalerDefault centres and scales.
func NewStandardScalerDefault() *StandardScaler {
	return NewStandardScaler(true, true)
}

// NumFeatures is the feature count seen by Fit, 0 before.
func (s *StandardScaler) NumFeatures() int {
	return len(s.Mean)
}

// Fit computes per-feature mean and standard deviation.
func (s *StandardScaler) Fit(X mat.Matrix) error {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.Wrap(errors.ErrEmptyData, "StandardScaler.Fit")
	}

	s.Mean = make([]float64, c)
	s.Scale = make([]float64, c)
	col := make([]float64, r)
	for j := 0; j < c; j++ {
		mat.Col(col, j, X)
		mean, std := stat.PopMeanStdDev(col, nil)
		if s.WithMean {
			s.Mean[j] = mean
		}
		s.Scale[j] = 1
		if s.WithStd && math.Abs(std) >= minScale {
			s.Scale[j] = std
		}
	}

	s.fitted = true
	return nil
}

// Transform applies (x - mean) / scale.
func (s *StandardScaler) Transform(X mat.Matrix) (mat.Matrix, error) {
	if err := s.check("Transform", cols(X)); err != nil {
		return nil, err
	}
	return apply(X, func(j int, v float64) float64 {
		return (v - s.Mean[j]) / s.Scale[j]
	}), nil
}

// FitTransform fits on X and transforms it.
func (s *StandardScaler) FitTransform(X mat.Matrix) (mat.Matrix, error) {
	if err := s.Fit(X); err != nil {
		return nil, err
	}
	return s.Transform(X)
}

// InverseTransform applies x*scale + mean.
func (s *StandardScaler) InverseTransform(X mat.Matrix) (mat.Matrix, error) {
	if err := s.check("InverseTransform", cols(X)); err != nil {
		return nil, err
	}
	return apply(X, func(j int, v float64) float64 {
		return v*s.Scale[j] + s.Mean[j]
	}), nil
}

// TransformVector transforms one feature vector.
func (s *StandardScaler) TransformVector(x []float64) ([]float64, error) {
	if err := s.check("TransformVector", len(x)); err != nil {
		return nil, err
	}
	out := make([]float64, len(x))
	for j, v := range x {
		out[j] = (v - s.Mean[j]) / s.Scale[j]
	}
	return out, nil
}

func (s *StandardScaler) check(method string, c int) error {
	if !s.fitted {
		return errors.NewNotFittedError("StandardScaler", method)
	}
	if c != len(s.Mean) {
		return errors.NewDimensionError("StandardScaler."+method, len(s.Mean), c, 1)
	}
	return nil
}

// String describes the scaler.
func (s *StandardScaler) String() string {
	if !s.fitted {
		return fmt.Sprintf("StandardScaler(with_mean=%t, with_std=%t)", s.WithMean, s.WithStd)
	}
	return fmt.Sprintf("StandardScaler(with_mean=%t, with_std=%t, n_features=%d)",
		s.WithMean, s.WithStd, len(s.Mean))
}

// MinMaxScaler maps every feature linearly onto FeatureRange.
type MinMaxScaler struct {
	DataMin []float64
	DataMax []float64
	// Scale is DataMax - DataMin, or 1 for constant features
	Scale []float64

	FeatureRange [2]float64

	fitted bool
}

// NewMinMaxScaler creates a MinMaxScaler for the given output range.
func NewMinMaxScaler(featureRange [2]float64) *MinMaxScaler {
	return &MinMaxScaler{FeatureRange: featureRange}
}

// NewMinMaxScalerDefault scales onto [0, 1].
func NewMinMaxScalerDefault() *MinMaxScaler {
	return NewMinMaxScaler([2]float64{0, 1})
}

// Fit records per-feature minimum and maximum.
func (m *MinMaxScaler) Fit(X mat.Matrix) error {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.Wrap(errors.ErrEmptyData, "MinMaxScaler.Fit")
	}
	if m.FeatureRange[1] <= m.FeatureRange[0] {
		return errors.NewValidationError("feature_range", "max must exceed min", m.FeatureRange)
	}

	m.DataMin = make([]float64, c)
	m.DataMax = make([]float64, c)
	m.Scale = make([]float64, c)
	col := make([]float64, r)
	for j := 0; j < c; j++ {
		mat.Col(col, j, X)
		lo, hi := col[0], col[0]
		for _, v := range col[1:] {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
		m.DataMin[j], m.DataMax[j] = lo, hi
		m.Scale[j] = 1
		if hi-lo >= minScale {
			m.Scale[j] = hi - lo
		}
	}

	m.fitted = true
	return nil
}

// Transform maps onto FeatureRange.
func (m *MinMaxScaler) Transform(X mat.Matrix) (mat.Matrix, error) {
	if err := m.check("Transform", cols(X)); err != nil {
		return nil, err
	}
	return apply(X, m.scale), nil
}

// FitTransform fits on X and transforms it.
func (m *MinMaxScaler) FitTransform(X mat.Matrix) (mat.Matrix, error) {
	if err := m.Fit(X); err != nil {
		return nil, err
	}
	return m.Transform(X)
}

// InverseTransform maps back onto the fitted data range.
func (m *MinMaxScaler) InverseTransform(X mat.Matrix) (mat.Matrix, error) {
	if err := m.check("InverseTransform", cols(X)); err != nil {
		return nil, err
	}
	width := m.FeatureRange[1] - m.FeatureRange[0]
	return apply(X, func(j int, v float64) float64 {
		return (v-m.FeatureRange[0])/width*m.Scale[j] + m.DataMin[j]
	}), nil
}

// TransformVector transforms one feature vector.
func (m *MinMaxScaler) TransformVector(x []float64) ([]float64, error) {
	if err := m.check("TransformVector", len(x)); err != nil {
		return nil, err
	}
	out := make([]float64, len(x))
	for j, v := range x {
		out[j] = m.scale(j, v)
	}
	return out, nil
}

func (m *MinMaxScaler) scale(j int, v float64) float64 {
	width := m.FeatureRange[1] - m.FeatureRange[0]
	return (v-m.DataMin[j])/m.Scale[j]*width + m.FeatureRange[0]
}

func (m *MinMaxScaler) check(method string, c int) error {
	if !m.fitted {
		return errors.NewNotFittedError("MinMaxScaler", method)
	}
	if c != len(m.DataMin) {
		return errors.NewDimensionError("MinMaxScaler."+method, len(m.DataMin), c, 1)
	}
	return nil
}

// String describes the scaler.
func (m *MinMaxScaler) String() string {
	return fmt.Sprintf("MinMaxScaler(feature_range=[%.1f, %.1f], n_features=%d)",
		m.FeatureRange[0], m.FeatureRange[1], len(m.DataMin))
}

func cols(X mat.Matrix) int {
	_, c := X.Dims()
	return c
}

// apply builds a new matrix with f applied element-wise; j is the column.
func apply(X mat.Matrix, f func(j int, v float64) float64) *mat.Dense {
	var out mat.Dense
	out.Apply(func(_, j int, v float64) float64 { return f(j, v) }, X)
	return &out
}

var (
	_ Scaler = (*StandardScaler)(nil)
	_ Scaler = (*MinMaxScaler)(nil)
)
