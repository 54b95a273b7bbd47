package model

import (
	"gonum.org/v1/gonum/floats"
)

// Target is the set of prediction shapes: a scalar for binary and regression
// models, a vector with one slot per class for composite models.
type Target interface {
	float64 | []float64
}

// Dot combines an outer derivative with an inner gradient by the chain rule:
// the product for scalars, the inner product for vectors. Vectors of
// different length panic.
func Dot[Y Target](a, b Y) float64 {
	switch a := any(a).(type) {
	case float64:
		return a * any(b).(float64)
	case []float64:
		return floats.Dot(a, any(b).([]float64))
	}
	panic("unreachable")
}
