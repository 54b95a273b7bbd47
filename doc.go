// Package onlinelearn is a framework for training parametric models online,
// one event at a time.
//
// Three abstractions cooperate:
//
//   - a Model (core/model) exposes its coefficients, a prediction and the
//     gradient of the prediction with respect to every coefficient;
//   - a Cost (cost) gives the derivative of the loss with respect to the
//     prediction;
//   - a Teacher (teacher) turns the chain-rule gradient of every coefficient
//     into an update, keeping its own state in a Training.
//
// The multiclass package composes K binary logistic models into a
// one-vs-rest classifier whose gradients are routed exactly to the owning
// submodel, and trains every submodel with its own Training.
//
// # Quick Start
//
//	model := multiclass.NewOneVsRest(3, 4)
//	t := multiclass.NewTeacher(teacher.Nesterov{L0: 0.0001, T: 1000, Inertia: 0.99})
//	training := t.NewTraining(model)
//
//	for _, ev := range events {
//	    t.TeachEvent(training, model, cost.MaxLikelihood{}, ev.Features, ev.Class)
//	}
//	class := model.PredictClass(x)
//
// The train package runs this loop over a replayable dataset.Source for a
// number of epochs and reports accuracy per epoch; cmd/iris is a complete
// example on the iris data set.
//
// # Errors
//
// Data problems (malformed rows, unknown labels, wrong feature counts) are
// returned as errors from pkg/errors. Contract violations inside the core,
// such as an out-of-range coefficient index, panic with *errors.IndexError;
// train.Run converts them into errors at its boundary.
package onlinelearn
