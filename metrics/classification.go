// Package metrics scores classifiers.
package metrics

import (
	"fmt"
	"runtime"

	"github.com/YuminosukeSato/onlinelearn/core/parallel"
	"github.com/YuminosukeSato/onlinelearn/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// ArgMax returns the index of the largest score, ties going to the lowest
// index. It panics on an empty slice.
func ArgMax(scores []float64) int {
	return floats.MaxIdx(scores)
}

// Tally counts correct and incorrect class predictions.
type Tally struct {
	Hits   int
	Misses int

	// Confusion[actual][predicted], nil unless created by NewTally.
	confusion *mat.Dense
}

// NewTally creates a Tally that also keeps a classes×classes confusion
// matrix.
func NewTally(classes int) Tally {
	return Tally{confusion: mat.NewDense(classes, classes, nil)}
}

// Add records one prediction.
func (t *Tally) Add(predicted, actual int) {
	if t.confusion != nil {
		r, _ := t.confusion.Dims()
		errors.CheckIndex("Tally.Add", actual, r)
		errors.CheckIndex("Tally.Add", predicted, r)
		t.confusion.Set(actual, predicted, t.confusion.At(actual, predicted)+1)
	}
	if predicted == actual {
		t.Hits++
	} else {
		t.Misses++
	}
}

// Merge adds the counts of other.
func (t *Tally) Merge(other Tally) {
	t.Hits += other.Hits
	t.Misses += other.Misses
	if t.confusion != nil && other.confusion != nil {
		t.confusion.Add(t.confusion, other.confusion)
	}
}

// Total is Hits + Misses.
func (t Tally) Total() int {
	return t.Hits + t.Misses
}

// Accuracy is Hits / (Hits + Misses), 0 for an empty tally.
func (t Tally) Accuracy() float64 {
	return errors.SafeDivide(float64(t.Hits), float64(t.Total()))
}

// Confusion returns a copy of the confusion matrix, or nil.
func (t Tally) Confusion() *mat.Dense {
	if t.confusion == nil {
		return nil
	}
	return mat.DenseCopyOf(t.confusion)
}

// Classifier predicts a class index from features.
type Classifier interface {
	NumClasses() int
	NumFeatures() int
	PredictClass(x []float64) int
}

// evaluateThreshold is the number of events below which Evaluate stays on
// the calling goroutine.
const evaluateThreshold = 1000

// Evaluate scores c on every (features[i], classes[i]) pair. The classifier
// is only read, so large inputs are scored in parallel; c must not be
// trained concurrently.
func Evaluate(c Classifier, features [][]float64, classes []int) (Tally, error) {
	if len(features) != len(classes) {
		return Tally{}, errors.NewDimensionError("metrics.Evaluate", len(features), len(classes), 0)
	}
	k := c.NumClasses()
	for i := range features {
		if len(features[i]) != c.NumFeatures() {
			return Tally{}, errors.NewDimensionError("metrics.Evaluate", c.NumFeatures(), len(features[i]), 1)
		}
		if classes[i] < 0 || classes[i] >= k {
			return Tally{}, errors.NewValueError("metrics.Evaluate", fmt.Sprintf("class %d of event %d outside [0, %d)", classes[i], i, k))
		}
	}

	partial := make([]Tally, max(1, len(parallel.Chunks(len(features), runtime.NumCPU()))))
	parallel.ParallelizeWithThreshold(len(features), evaluateThreshold, func(chunk, start, end int) {
		t := NewTally(k)
		for i := start; i < end; i++ {
			t.Add(c.PredictClass(features[i]), classes[i])
		}
		partial[chunk] = t
	})

	total := NewTally(k)
	for _, t := range partial {
		total.Merge(t)
	}
	return total, nil
}
