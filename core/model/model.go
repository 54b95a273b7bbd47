// Package model defines the contracts shared by every trainable model, cost
// and teacher in onlinelearn.
//
// A Model owns a flat coefficient vector that is addressable by index. The
// vector is the only mutable state of a model; teachers never hold
// coefficients, only indices into them. Gradients are specified analytically
// by each model and must stay consistent with Predict, since teachers trust
// them for the descent direction.
package model

// Sized is implemented by anything with a fixed number of coefficients.
// Teachers size their training state from it.
type Sized interface {
	// NumCoefficients is constant for the lifetime of the model.
	NumCoefficients() int
}

// Model is a parametric function of features X with output Y.
type Model[X any, Y Target] interface {
	Sized

	// Coefficient returns coefficient index. It panics with an
	// *errors.IndexError when index is outside [0, NumCoefficients()).
	Coefficient(index int) float64

	// SetCoefficient updates coefficient index in place. Same bounds as
	// Coefficient.
	SetCoefficient(index int, value float64)

	// Predict is a pure function of the current coefficients and x.
	Predict(x X) Y

	// Gradient is the partial derivative of Predict with respect to
	// coefficient index, evaluated at the current coefficients and x.
	Gradient(index int, x X) Y
}

// Cost maps a prediction and the truth of an event to the derivative of the
// loss with respect to the prediction (per output slot for vector targets).
type Cost[T any, Y Target] interface {
	OuterDerivative(prediction Y, truth T) Y
}

// Loss is implemented by costs that can also report the loss value itself.
// It is used for monitoring only; teachers need just the derivative.
type Loss[T any, Y Target] interface {
	Loss(prediction Y, truth T) float64
}
