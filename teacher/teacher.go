// Package teacher implements online optimizers ("teachers").
//
// A Teacher holds only hyperparameters. Everything that changes during a run
// lives in a Training created by NewTraining, so one Teacher can drive any
// number of independent models. TeachEvent performs one stochastic update:
// one prediction, one outer derivative and one pass over every coefficient
// in ascending order.
package teacher

import (
	"github.com/YuminosukeSato/onlinelearn/core/model"
)

// Training is the per-run optimizer state of one model.
type Training interface {
	// Delta returns the change to apply to coefficient given its full
	// gradient for the current event, updating any per-coefficient state.
	Delta(coefficient int, gradient float64) float64

	// Finish closes the current event. It is called exactly once per event,
	// after the coefficient pass.
	Finish()

	// EventsSeen is the number of finished events.
	EventsSeen() int
}

// Teacher creates training state sized for a model.
type Teacher interface {
	NewTraining(m model.Sized) Training
}

// TeachEvent trains m on a single event.
//
// For every coefficient c the inner gradient is evaluated at the current
// coefficients, combined with the outer derivative of cost by model.Dot, and
// the delta chosen by training is added to the coefficient in place.
func TeachEvent[X any, Y model.Target, T any](training Training, m model.Model[X, Y], cost model.Cost[T, Y], x X, truth T) {
	prediction := m.Predict(x)
	outer := cost.OuterDerivative(prediction, truth)

	for c := 0; c < m.NumCoefficients(); c++ {
		gradient := model.Dot(outer, m.Gradient(c, x))
		m.SetCoefficient(c, m.Coefficient(c)+training.Delta(c, gradient))
	}
	training.Finish()
}

// LearningRate is the annealing schedule l0 / (1 + eventsSeen/t). It is
// strictly decreasing in eventsSeen for l0 > 0 and t > 0.
func LearningRate(l0, t float64, eventsSeen int) float64 {
	return l0 / (1 + float64(eventsSeen)/t)
}

// counter is embedded by trainings to track finished events.
type counter struct {
	events int
}

func (c *counter) Finish() {
	c.events++
}

func (c *counter) EventsSeen() int {
	return c.events
}
