package dataset

import (
	"github.com/YuminosukeSato/onlinelearn/pkg/errors"
)

// IrisSpecies are the class labels of the iris data set, in class order.
var IrisSpecies = []string{"setosa", "versicolor", "virginica"}

// Labels maps class names to class indices in [0, K).
type Labels struct {
	names []string
	index map[string]int
}

// NewLabels creates a mapping where names[k] is class k. Names must be
// non-empty and unique.
func NewLabels(names ...string) (*Labels, error) {
	if len(names) == 0 {
		return nil, errors.NewValidationError("labels", "at least one class is required", names)
	}
	l := &Labels{
		names: append([]string(nil), names...),
		index: make(map[string]int, len(names)),
	}
	for k, name := range names {
		if name == "" {
			return nil, errors.NewValidationError("labels", "class names must not be empty", k)
		}
		if _, dup := l.index[name]; dup {
			return nil, errors.NewValidationError("labels", "duplicate class name", name)
		}
		l.index[name] = k
	}
	return l, nil
}

// Index returns the class of name, or a *errors.LabelError.
func (l *Labels) Index(name string) (int, error) {
	k, ok := l.index[name]
	if !ok {
		return 0, errors.NewLabelError(name, l.Names(), 0)
	}
	return k, nil
}

// Name returns the label of class k. It panics if k is out of range.
func (l *Labels) Name(k int) string {
	errors.CheckIndex("Labels.Name", k, len(l.names))
	return l.names[k]
}

// Len returns K.
func (l *Labels) Len() int {
	return len(l.names)
}

// Names returns a copy of the labels in class order.
func (l *Labels) Names() []string {
	return append([]string(nil), l.names...)
}
