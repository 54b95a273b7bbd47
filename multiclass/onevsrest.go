// Package multiclass builds K-class classifiers out of K independent binary
// models (one-vs-rest).
//
// The composite presents one flat coefficient space of K*(D+1) coefficients.
// Coefficient i belongs to submodel i/(D+1) at local index i%(D+1), and it
// influences that submodel's output only, so the gradient of any coefficient
// is zero in every output slot but its owner's.
package multiclass

import (
	"github.com/YuminosukeSato/onlinelearn/core/model"
	"github.com/YuminosukeSato/onlinelearn/linear"
	"github.com/YuminosukeSato/onlinelearn/metrics"
	"github.com/YuminosukeSato/onlinelearn/pkg/errors"
)

// OneVsRest is a K-output model made of K logistic submodels sharing the
// same feature dimension.
type OneVsRest struct {
	classes  []*linear.Logistic
	features int
}

// NewOneVsRest creates classes zero-initialised logistic submodels over
// features inputs. It panics if classes < 1 or features < 1.
func NewOneVsRest(classes, features int) *OneVsRest {
	if classes < 1 {
		panic(errors.NewValidationError("classes", "must be at least 1", classes))
	}
	m := &OneVsRest{
		classes:  make([]*linear.Logistic, classes),
		features: features,
	}
	for k := range m.classes {
		m.classes[k] = linear.NewLogistic(features)
	}
	return m
}

// NumClasses returns K.
func (m *OneVsRest) NumClasses() int {
	return len(m.classes)
}

// NumFeatures returns D.
func (m *OneVsRest) NumFeatures() int {
	return m.features
}

// NumCoefficients returns K*(D+1).
func (m *OneVsRest) NumCoefficients() int {
	return len(m.classes) * (m.features + 1)
}

// Submodel returns the binary model of class k. It aliases the composite's
// coefficients.
func (m *OneVsRest) Submodel(k int) *linear.Logistic {
	errors.CheckIndex("OneVsRest.Submodel", k, len(m.classes))
	return m.classes[k]
}

// route splits a global coefficient index into owner class and local index.
func (m *OneVsRest) route(op string, index int) (owner, local int) {
	errors.CheckIndex(op, index, m.NumCoefficients())
	stride := m.features + 1
	return index / stride, index % stride
}

// Coefficient delegates to the owning submodel.
func (m *OneVsRest) Coefficient(index int) float64 {
	owner, local := m.route("OneVsRest.Coefficient", index)
	return m.classes[owner].Coefficient(local)
}

// SetCoefficient delegates to the owning submodel.
func (m *OneVsRest) SetCoefficient(index int, value float64) {
	owner, local := m.route("OneVsRest.SetCoefficient", index)
	m.classes[owner].SetCoefficient(local, value)
}

// Predict returns every submodel's independent probability. The values are
// not normalised across classes.
func (m *OneVsRest) Predict(x []float64) []float64 {
	p := make([]float64, len(m.classes))
	for k, sub := range m.classes {
		p[k] = sub.Predict(x)
	}
	return p
}

// Gradient returns the zero vector except in the owner's slot, which holds
// the owner's gradient for the local index.
func (m *OneVsRest) Gradient(index int, x []float64) []float64 {
	owner, local := m.route("OneVsRest.Gradient", index)
	g := make([]float64, len(m.classes))
	g[owner] = m.classes[owner].Gradient(local, x)
	return g
}

// PredictClass returns the class with the highest probability, ties going to
// the lowest index.
func (m *OneVsRest) PredictClass(x []float64) int {
	return metrics.ArgMax(m.Predict(x))
}

var _ model.Model[[]float64, []float64] = (*OneVsRest)(nil)
