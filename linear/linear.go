package linear

import (
	"github.com/YuminosukeSato/onlinelearn/core/model"
	"github.com/YuminosukeSato/onlinelearn/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

// Linear is the model w·x + b over a fixed number of features.
//
// Coefficients 0..D-1 are the feature weights, coefficient D is the bias, so
// NumCoefficients is always D+1. The zero coefficients are the initial state.
type Linear struct {
	weights   []float64
	intercept float64
}

// NewLinear creates a zero-initialised Linear model over features inputs.
// It panics if features < 1.
func NewLinear(features int) *Linear {
	if features < 1 {
		panic(errors.NewValidationError("features", "must be at least 1", features))
	}
	return &Linear{weights: make([]float64, features)}
}

// NumFeatures returns D.
func (l *Linear) NumFeatures() int {
	return len(l.weights)
}

// NumCoefficients returns D+1.
func (l *Linear) NumCoefficients() int {
	return len(l.weights) + 1
}

// Coefficient returns weight index, or the bias for index D.
func (l *Linear) Coefficient(index int) float64 {
	errors.CheckIndex("Linear.Coefficient", index, l.NumCoefficients())
	if index == len(l.weights) {
		return l.intercept
	}
	return l.weights[index]
}

// SetCoefficient sets weight index, or the bias for index D.
func (l *Linear) SetCoefficient(index int, value float64) {
	errors.CheckIndex("Linear.SetCoefficient", index, l.NumCoefficients())
	if index == len(l.weights) {
		l.intercept = value
		return
	}
	l.weights[index] = value
}

// Predict returns w·x + b. x must have NumFeatures elements.
func (l *Linear) Predict(x []float64) float64 {
	return floats.Dot(l.weights, x) + l.intercept
}

// Gradient returns ∂Predict/∂coefficient(index): x[index] for a weight and 1
// for the bias.
func (l *Linear) Gradient(index int, x []float64) float64 {
	errors.CheckIndex("Linear.Gradient", index, l.NumCoefficients())
	if index == len(l.weights) {
		return 1
	}
	return x[index]
}

// Weights returns a copy of the feature weights.
func (l *Linear) Weights() []float64 {
	w := make([]float64, len(l.weights))
	copy(w, l.weights)
	return w
}

// Intercept returns the bias.
func (l *Linear) Intercept() float64 {
	return l.intercept
}

var _ model.Model[[]float64, float64] = (*Linear)(nil)
