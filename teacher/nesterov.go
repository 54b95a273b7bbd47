package teacher

import (
	"github.com/YuminosukeSato/onlinelearn/core/model"
	"github.com/YuminosukeSato/onlinelearn/pkg/errors"
)

// Nesterov is gradient descent with momentum and an annealed learning rate.
//
// Every coefficient c has a velocity v[c], zero at the start of a run:
//
//	lr   = L0 / (1 + events_seen/T)
//	v[c] = Inertia*v[c] - lr*g
//	coefficient(c) += v[c]
type Nesterov struct {
	L0      float64 // initial learning rate
	T       float64 // annealing horizon in events
	Inertia float64 // momentum, in [0, 1)
}

// NewNesterov validates the hyperparameters.
func NewNesterov(l0, t, inertia float64) (*Nesterov, error) {
	n := &Nesterov{L0: l0, T: t, Inertia: inertia}
	if err := n.Validate(); err != nil {
		return nil, err
	}
	return n, nil
}

// Validate checks the hyperparameters.
func (n Nesterov) Validate() error {
	if err := checkPositive("l0", n.L0); err != nil {
		return err
	}
	if err := checkPositive("t", n.T); err != nil {
		return err
	}
	if n.Inertia < 0 || n.Inertia >= 1 {
		return errors.NewValidationError("inertia", "must be in [0, 1)", n.Inertia)
	}
	return nil
}

// NewTraining implements Teacher. It returns a *NesterovTraining.
func (n Nesterov) NewTraining(m model.Sized) Training {
	return &NesterovTraining{
		teacher:  n,
		velocity: make([]float64, m.NumCoefficients()),
	}
}

// NesterovTraining is the state of a Nesterov run.
type NesterovTraining struct {
	counter
	teacher  Nesterov
	velocity []float64
}

// Delta updates and returns the velocity of coefficient.
func (t *NesterovTraining) Delta(coefficient int, gradient float64) float64 {
	errors.CheckIndex("Nesterov.Delta", coefficient, len(t.velocity))
	v := t.teacher.Inertia*t.velocity[coefficient] - t.LearningRate()*gradient
	t.velocity[coefficient] = v
	return v
}

// LearningRate is the rate applied to the current event.
func (t *NesterovTraining) LearningRate() float64 {
	return LearningRate(t.teacher.L0, t.teacher.T, t.events)
}

// Velocity returns the velocity of coefficient.
func (t *NesterovTraining) Velocity(coefficient int) float64 {
	errors.CheckIndex("Nesterov.Velocity", coefficient, len(t.velocity))
	return t.velocity[coefficient]
}

// NumCoefficients is the number of velocities held.
func (t *NesterovTraining) NumCoefficients() int {
	return len(t.velocity)
}

var _ Teacher = Nesterov{}
