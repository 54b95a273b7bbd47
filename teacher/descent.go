package teacher

import (
	"math"

	"github.com/YuminosukeSato/onlinelearn/core/model"
	"github.com/YuminosukeSato/onlinelearn/pkg/errors"
)

// GradientDescent applies a constant learning rate: delta = -lr * g.
type GradientDescent struct {
	LearningRate float64
}

// NewGradientDescent validates the learning rate.
func NewGradientDescent(learningRate float64) (*GradientDescent, error) {
	gd := &GradientDescent{LearningRate: learningRate}
	if err := gd.Validate(); err != nil {
		return nil, err
	}
	return gd, nil
}

// Validate checks the hyperparameters.
func (gd GradientDescent) Validate() error {
	return checkPositive("learning_rate", gd.LearningRate)
}

// NewTraining implements Teacher.
func (gd GradientDescent) NewTraining(_ model.Sized) Training {
	return &gradientDescentTraining{learningRate: gd.LearningRate}
}

type gradientDescentTraining struct {
	counter
	learningRate float64
}

func (t *gradientDescentTraining) Delta(_ int, gradient float64) float64 {
	return -t.learningRate * gradient
}

// GradientDescentAl is gradient descent with an annealed learning rate,
// see LearningRate.
type GradientDescentAl struct {
	L0 float64 // initial learning rate
	T  float64 // number of events after which the rate has halved
}

// NewGradientDescentAl validates l0 and t.
func NewGradientDescentAl(l0, t float64) (*GradientDescentAl, error) {
	gd := &GradientDescentAl{L0: l0, T: t}
	if err := gd.Validate(); err != nil {
		return nil, err
	}
	return gd, nil
}

// Validate checks the hyperparameters.
func (gd GradientDescentAl) Validate() error {
	if err := checkPositive("l0", gd.L0); err != nil {
		return err
	}
	return checkPositive("t", gd.T)
}

// NewTraining implements Teacher.
func (gd GradientDescentAl) NewTraining(_ model.Sized) Training {
	return &annealedTraining{l0: gd.L0, t: gd.T}
}

type annealedTraining struct {
	counter
	l0, t float64
}

func (t *annealedTraining) Delta(_ int, gradient float64) float64 {
	return -LearningRate(t.l0, t.t, t.events) * gradient
}

// Adagrad scales the learning rate of each coefficient by the inverse square
// root of its accumulated squared gradients.
type Adagrad struct {
	LearningRate float64
	Epsilon      float64 // keeps the first steps finite
}

// NewAdagrad validates the hyperparameters.
func NewAdagrad(learningRate, epsilon float64) (*Adagrad, error) {
	a := &Adagrad{LearningRate: learningRate, Epsilon: epsilon}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return a, nil
}

// Validate checks the hyperparameters.
func (a Adagrad) Validate() error {
	if err := checkPositive("learning_rate", a.LearningRate); err != nil {
		return err
	}
	return checkPositive("epsilon", a.Epsilon)
}

// NewTraining implements Teacher.
func (a Adagrad) NewTraining(m model.Sized) Training {
	return &adagradTraining{
		learningRate: a.LearningRate,
		epsilon:      a.Epsilon,
		squared:      make([]float64, m.NumCoefficients()),
	}
}

type adagradTraining struct {
	counter
	learningRate, epsilon float64
	squared               []float64
}

func (t *adagradTraining) Delta(coefficient int, gradient float64) float64 {
	errors.CheckIndex("Adagrad.Delta", coefficient, len(t.squared))
	t.squared[coefficient] += gradient * gradient
	return -t.learningRate * gradient / math.Sqrt(t.squared[coefficient]+t.epsilon)
}

func checkPositive(name string, v float64) error {
	if !(v > 0) || math.IsInf(v, 0) {
		return errors.NewValidationError(name, "must be a positive finite number", v)
	}
	return nil
}

var (
	_ Teacher = GradientDescent{}
	_ Teacher = GradientDescentAl{}
	_ Teacher = Adagrad{}
)
