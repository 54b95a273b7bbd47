// Package dataset supplies labelled events to the training driver.
//
// A Source is replayable: every call to Events starts again from the first
// event, which is how the driver runs epochs.
package dataset

import (
	"iter"

	"github.com/YuminosukeSato/onlinelearn/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Event is one labelled observation.
type Event struct {
	Features []float64
	Class    int
}

// Source is a replayable, ordered stream of events with a fixed feature
// dimension.
type Source interface {
	// NumFeatures is the length of every event's Features.
	NumFeatures() int

	// Events yields the events in order. An error ends the sequence.
	Events() iter.Seq2[Event, error]
}

// Memory is an in-memory Source.
type Memory struct {
	features int
	events   []Event
}

// FromEvents creates a Memory source. Every event must have exactly
// features values and a non-negative class.
func FromEvents(features int, events []Event) (*Memory, error) {
	if features < 1 {
		return nil, errors.NewValidationError("features", "must be at least 1", features)
	}
	for i, ev := range events {
		if len(ev.Features) != features {
			return nil, errors.Wrapf(
				errors.NewDimensionError("dataset.FromEvents", features, len(ev.Features), 1),
				"event %d", i)
		}
		if ev.Class < 0 {
			return nil, errors.NewValueError("dataset.FromEvents", "negative class")
		}
	}
	return &Memory{features: features, events: events}, nil
}

// NumFeatures implements Source.
func (m *Memory) NumFeatures() int {
	return m.features
}

// Len returns the number of events.
func (m *Memory) Len() int {
	return len(m.events)
}

// Events implements Source.
func (m *Memory) Events() iter.Seq2[Event, error] {
	return func(yield func(Event, error) bool) {
		for _, ev := range m.events {
			if !yield(ev, nil) {
				return
			}
		}
	}
}

// Collect reads a whole source into memory.
func Collect(src Source) (*Memory, error) {
	var events []Event
	for ev, err := range src.Events() {
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	if len(events) == 0 {
		return nil, errors.ErrEmptyData
	}
	return &Memory{features: src.NumFeatures(), events: events}, nil
}

// Matrix returns the features as an n×D matrix and the classes in event
// order.
func (m *Memory) Matrix() (*mat.Dense, []int) {
	if len(m.events) == 0 {
		return nil, nil
	}
	x := mat.NewDense(len(m.events), m.features, nil)
	classes := make([]int, len(m.events))
	for i, ev := range m.events {
		x.SetRow(i, ev.Features)
		classes[i] = ev.Class
	}
	return x, classes
}

// FromMatrix pairs the rows of x with classes.
func FromMatrix(x mat.Matrix, classes []int) (*Memory, error) {
	r, c := x.Dims()
	if r != len(classes) {
		return nil, errors.NewDimensionError("dataset.FromMatrix", r, len(classes), 0)
	}
	events := make([]Event, r)
	for i := range events {
		events[i] = Event{Features: mat.Row(nil, i, x), Class: classes[i]}
	}
	return FromEvents(c, events)
}
