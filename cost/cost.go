// Package cost provides loss functions for online training.
//
// A cost only needs to supply the outer derivative, the derivative of the
// loss with respect to the prediction. Teachers combine it with the model's
// inner gradient by the chain rule.
package cost

import (
	"math"

	"github.com/YuminosukeSato/onlinelearn/core/model"
	"github.com/YuminosukeSato/onlinelearn/pkg/errors"
)

// LeastSquares is the squared error (p-t)²/2 for real-valued targets.
type LeastSquares struct{}

// OuterDerivative returns p - t.
func (LeastSquares) OuterDerivative(prediction, truth float64) float64 {
	return prediction - truth
}

// Loss returns (p-t)²/2.
func (LeastSquares) Loss(prediction, truth float64) float64 {
	d := prediction - truth
	return d * d / 2
}

// LeastAbsoluteDeviation is the absolute error |p-t|, fitting the median.
type LeastAbsoluteDeviation struct{}

// OuterDerivative returns sign(p - t), zero on equality.
func (LeastAbsoluteDeviation) OuterDerivative(prediction, truth float64) float64 {
	switch {
	case prediction > truth:
		return 1
	case prediction < truth:
		return -1
	default:
		return 0
	}
}

// Loss returns |p-t|.
func (LeastAbsoluteDeviation) Loss(prediction, truth float64) float64 {
	return math.Abs(prediction - truth)
}

// MaxLikelihood is the log loss of a Bernoulli probability p against a
// boolean truth.
//
// The outer derivative is taken in the canonical form p - y, the derivative
// of the log loss with respect to the logit.
type MaxLikelihood struct{}

// OuterDerivative returns p - 1 for a positive truth and p otherwise.
func (MaxLikelihood) OuterDerivative(prediction float64, truth bool) float64 {
	return prediction - indicator(truth)
}

// Loss returns the negative log-likelihood of truth under p.
func (MaxLikelihood) Loss(prediction float64, truth bool) float64 {
	if truth {
		return -errors.StabilizeLog(prediction)
	}
	return -errors.StabilizeLog(1 - prediction)
}

// MultiMaxLikelihood is MaxLikelihood applied independently to every slot of
// a K-vector of class probabilities, with the truth given as a class index.
type MultiMaxLikelihood struct{}

// OuterDerivative returns p_c - [truth == c] for every class c. It panics
// with an *errors.IndexError when truth is outside [0, K).
func (MultiMaxLikelihood) OuterDerivative(prediction []float64, truth int) []float64 {
	errors.CheckIndex("MultiMaxLikelihood.OuterDerivative", truth, len(prediction))
	outer := make([]float64, len(prediction))
	for c, p := range prediction {
		outer[c] = p - indicator(truth == c)
	}
	return outer
}

// Loss returns the sum over classes of the per-class negative log-likelihood.
func (MultiMaxLikelihood) Loss(prediction []float64, truth int) float64 {
	errors.CheckIndex("MultiMaxLikelihood.Loss", truth, len(prediction))
	var total float64
	for c, p := range prediction {
		total += MaxLikelihood{}.Loss(p, truth == c)
	}
	return total
}

func indicator(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

var (
	_ model.Cost[float64, float64] = LeastSquares{}
	_ model.Cost[float64, float64] = LeastAbsoluteDeviation{}
	_ model.Cost[bool, float64]    = MaxLikelihood{}
	_ model.Cost[int, []float64]   = MultiMaxLikelihood{}

	_ model.Loss[bool, float64]  = MaxLikelihood{}
	_ model.Loss[int, []float64] = MultiMaxLikelihood{}
)
