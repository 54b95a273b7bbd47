package multiclass

import (
	"github.com/YuminosukeSato/onlinelearn/core/model"
	"github.com/YuminosukeSato/onlinelearn/pkg/errors"
	"github.com/YuminosukeSato/onlinelearn/teacher"
)

// Teacher trains a OneVsRest model by fanning every event out to one
// independent inner training per submodel. Submodel k sees the event with
// the boolean truth class == k; no cross-class gradient is ever computed.
type Teacher struct {
	inner teacher.Teacher
}

// NewTeacher wraps the teacher used for every submodel.
func NewTeacher(inner teacher.Teacher) *Teacher {
	return &Teacher{inner: inner}
}

// Inner returns the per-submodel teacher.
func (t *Teacher) Inner() teacher.Teacher {
	return t.inner
}

// Training holds one inner training per submodel, in class order.
type Training struct {
	classes []teacher.Training
}

// Class returns the training state of submodel k.
func (tr *Training) Class(k int) teacher.Training {
	errors.CheckIndex("multiclass.Training.Class", k, len(tr.classes))
	return tr.classes[k]
}

// EventsSeen is the number of events taught so far.
func (tr *Training) EventsSeen() int {
	if len(tr.classes) == 0 {
		return 0
	}
	return tr.classes[0].EventsSeen()
}

// NewTraining creates one inner training per submodel of m.
func (t *Teacher) NewTraining(m *OneVsRest) *Training {
	tr := &Training{classes: make([]teacher.Training, m.NumClasses())}
	for k := range tr.classes {
		tr.classes[k] = t.inner.NewTraining(m.Submodel(k))
	}
	return tr
}

// TeachEvent teaches every submodel, in ascending class order, the binary
// event (x, class == k). It panics with an *errors.IndexError when class is
// outside [0, K).
func (t *Teacher) TeachEvent(tr *Training, m *OneVsRest, cost model.Cost[bool, float64], x []float64, class int) {
	errors.CheckIndex("multiclass.Teacher.TeachEvent", class, m.NumClasses())
	for k := 0; k < m.NumClasses(); k++ {
		teacher.TeachEvent[[]float64, float64, bool](tr.classes[k], m.Submodel(k), cost, x, class == k)
	}
}
