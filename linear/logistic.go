package linear

import (
	"github.com/YuminosukeSato/onlinelearn/core/model"
	"github.com/YuminosukeSato/onlinelearn/pkg/errors"
)

// Logistic is a binary classifier predicting sigmoid(w·x + b), the
// probability that an event belongs to the positive class.
//
// It shares the coefficient layout of Linear: D weights followed by the bias.
type Logistic struct {
	linear Linear
}

// NewLogistic creates a zero-initialised Logistic model over features inputs.
// A zero model predicts 0.5 for every input.
func NewLogistic(features int) *Logistic {
	return &Logistic{linear: *NewLinear(features)}
}

// NumFeatures returns D.
func (l *Logistic) NumFeatures() int {
	return l.linear.NumFeatures()
}

// NumCoefficients returns D+1.
func (l *Logistic) NumCoefficients() int {
	return l.linear.NumCoefficients()
}

// Coefficient returns weight index, or the bias for index D.
func (l *Logistic) Coefficient(index int) float64 {
	return l.linear.Coefficient(index)
}

// SetCoefficient sets weight index, or the bias for index D.
func (l *Logistic) SetCoefficient(index int, value float64) {
	l.linear.SetCoefficient(index, value)
}

// Predict returns sigmoid(w·x + b).
func (l *Logistic) Predict(x []float64) float64 {
	return Sigmoid(l.linear.Predict(x))
}

// Gradient returns p(1-p) times the gradient of the linear part.
func (l *Logistic) Gradient(index int, x []float64) float64 {
	p := l.Predict(x)
	return p * (1 - p) * l.linear.Gradient(index, x)
}

// Weights returns a copy of the feature weights.
func (l *Logistic) Weights() []float64 {
	return l.linear.Weights()
}

// Intercept returns the bias.
func (l *Logistic) Intercept() float64 {
	return l.linear.Intercept()
}

// Sigmoid is the logistic function 1/(1+e^-z).
func Sigmoid(z float64) float64 {
	return 1 / (1 + errors.StabilizeExp(-z))
}

var _ model.Model[[]float64, float64] = (*Logistic)(nil)
