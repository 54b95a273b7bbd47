// Package errors provides structured errors and warnings for onlinelearn.
//
// Every constructor attaches a stack trace through cockroachdb/errors so that
// failures surfacing at the training driver can be logged with their origin.
// Types that carry structured fields implement zerolog.LogObjectMarshaler.
package errors

import (
	"fmt"
	"log"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// ===========================================================================
//
//	Warning handling
//
// ===========================================================================

var (
	warningMutex   sync.Mutex
	warningHandler = func(w error) {
		log.Printf("onlinelearn-warning: %v\n", w)
	}
	// set by pkg/log; a plain func avoids an import cycle
	zerologWarnFunc func(warning error)
)

// SetWarningHandler replaces the handler used for warnings when no zerolog
// logger has been registered.
//
// Example:
//
//	errors.SetWarningHandler(func(w error) {
//	    // ignore warnings
//	})
func SetWarningHandler(handler func(w error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	warningHandler = handler
}

// SetZerologWarnFunc registers the structured warning sink. Passing nil falls
// back to the plain handler.
func SetZerologWarnFunc(warnFunc func(warning error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	zerologWarnFunc = warnFunc
}

// Warn emits a warning. The zerolog sink wins over the plain handler.
func Warn(w error) {
	warningMutex.Lock()
	defer warningMutex.Unlock()

	if zerologWarnFunc != nil {
		zerologWarnFunc(w)
		return
	}
	if warningHandler != nil {
		warningHandler(w)
	}
}

// ===========================================================================
//
//	Warnings
//
// ===========================================================================

// ModelDriftWarning is raised when a drift detector flags the online error stream.
type ModelDriftWarning struct {
	DriftScore float64 // detector specific score
	Threshold  float64
	Detector   string // e.g. "DDM"
	Action     string // "reset", "alert", "retrain"
	Event      int    // event index at which drift was flagged
}

func (w *ModelDriftWarning) Error() string {
	return fmt.Sprintf("model drift detected by %s at event %d: score=%.4f (threshold=%.4f). Recommended action: %s",
		w.Detector, w.Event, w.DriftScore, w.Threshold, w.Action)
}

// MarshalZerologObject adds the warning fields to a zerolog event.
func (w *ModelDriftWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("detector", w.Detector).
		Float64("score", w.DriftScore).
		Float64("threshold", w.Threshold).
		Str("action", w.Action).
		Int("event", w.Event).
		Str("type", "ModelDriftWarning")
}

// NewModelDriftWarning creates a ModelDriftWarning.
func NewModelDriftWarning(detector string, score, threshold float64, action string, event int) *ModelDriftWarning {
	return &ModelDriftWarning{
		Detector:   detector,
		DriftScore: score,
		Threshold:  threshold,
		Action:     action,
		Event:      event,
	}
}

// ===========================================================================
//
//	Structured errors
//
// ===========================================================================

// NotFittedError is returned when a transformer is used before Fit.
type NotFittedError struct {
	ModelName string
	Method    string
}

func (e *NotFittedError) Error() string {
	return fmt.Sprintf("onlinelearn: %s: not fitted yet. Call Fit() before using %s()", e.ModelName, e.Method)
}

// MarshalZerologObject adds the error fields to a zerolog event.
func (e *NotFittedError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("model_name", e.ModelName).
		Str("method", e.Method).
		Str("type", "NotFittedError")
}

// NewNotFittedError creates a NotFittedError with a stack trace.
func NewNotFittedError(modelName, method string) error {
	return errors.WithStack(&NotFittedError{ModelName: modelName, Method: method})
}

// DimensionError reports a feature or row count that differs from the one
// fixed at construction time.
type DimensionError struct {
	Op       string
	Expected int
	Got      int
	Axis     int // 0 for rows, 1 for features
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("onlinelearn: %s: dimension mismatch on axis %d (%s). Expected %d, got %d",
		e.Op, e.Axis, axisName(e.Axis), e.Expected, e.Got)
}

// MarshalZerologObject adds the error fields to a zerolog event.
func (e *DimensionError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Int("expected", e.Expected).
		Int("got", e.Got).
		Int("axis", e.Axis).
		Str("axis_name", axisName(e.Axis)).
		Str("type", "DimensionError")
}

func axisName(axis int) string {
	if axis == 0 {
		return "rows"
	}
	return "features"
}

// NewDimensionError creates a DimensionError with a stack trace.
func NewDimensionError(op string, expected, got, axis int) error {
	return errors.WithStack(&DimensionError{Op: op, Expected: expected, Got: got, Axis: axis})
}

// ValidationError reports a hyperparameter or configuration value outside
// its admissible range.
type ValidationError struct {
	ParamName string
	Reason    string
	Value     interface{}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("onlinelearn: validation failed for parameter '%s': %s (got: %v)", e.ParamName, e.Reason, e.Value)
}

// MarshalZerologObject adds the error fields to a zerolog event.
func (e *ValidationError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("param_name", e.ParamName).
		Str("reason", e.Reason).
		Interface("value", e.Value).
		Str("type", "ValidationError")
}

// NewValidationError creates a ValidationError with a stack trace.
func NewValidationError(param, reason string, value interface{}) error {
	return errors.WithStack(&ValidationError{ParamName: param, Reason: reason, Value: value})
}

// ValueError reports an argument with an inappropriate value.
type ValueError struct {
	Op      string
	Message string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("onlinelearn: %s: %s", e.Op, e.Message)
}

// NewValueError creates a ValueError with a stack trace.
func NewValueError(op, message string) error {
	return errors.WithStack(&ValueError{Op: op, Message: message})
}

// IndexError is the panic value used when a coefficient or class index falls
// outside its range. It signals a caller contract violation, not bad data.
type IndexError struct {
	Op    string
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("onlinelearn: %s: index %d out of range [0, %d)", e.Op, e.Index, e.Len)
}

// MarshalZerologObject adds the error fields to a zerolog event.
func (e *IndexError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Int("index", e.Index).
		Int("len", e.Len).
		Str("type", "IndexError")
}

// CheckIndex panics with an *IndexError unless 0 <= index < n.
func CheckIndex(op string, index, n int) {
	if index < 0 || index >= n {
		panic(&IndexError{Op: op, Index: index, Len: n})
	}
}

// LabelError reports a label that does not name a known class. It is fatal
// for a training run.
type LabelError struct {
	Label string
	Known []string
	Line  int // 0 when unknown
}

func (e *LabelError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("onlinelearn: unknown class label %q on line %d (known: %v)", e.Label, e.Line, e.Known)
	}
	return fmt.Sprintf("onlinelearn: unknown class label %q (known: %v)", e.Label, e.Known)
}

// MarshalZerologObject adds the error fields to a zerolog event.
func (e *LabelError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("label", e.Label).
		Strs("known", e.Known).
		Int("line", e.Line).
		Str("type", "LabelError")
}

// NewLabelError creates a LabelError with a stack trace.
func NewLabelError(label string, known []string, line int) error {
	return errors.WithStack(&LabelError{Label: label, Known: known, Line: line})
}

// NumericalInstabilityError reports NaN or Inf values produced during training.
type NumericalInstabilityError struct {
	Operation string // e.g. "predict", "gradient_update"
	Values    []float64
	Iteration int
}

func (e *NumericalInstabilityError) Error() string {
	valStr := ""
	for i, v := range e.Values {
		if i > 0 {
			valStr += ", "
		}
		if i >= 5 {
			valStr += "..."
			break
		}
		valStr += fmt.Sprintf("%.6g", v)
	}
	return fmt.Sprintf("onlinelearn: numerical instability detected in %s at event %d. Values: [%s]",
		e.Operation, e.Iteration, valStr)
}

// NewNumericalInstabilityError creates a NumericalInstabilityError with a stack trace.
func NewNumericalInstabilityError(operation string, values []float64, iteration int) error {
	return errors.WithStack(&NumericalInstabilityError{
		Operation: operation,
		Values:    values,
		Iteration: iteration,
	})
}

// ===========================================================================
//
//	cockroachdb/errors wrappers
//
// ===========================================================================

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap annotates err with a message.
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf annotates err with a formatted message.
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// New creates an error with a stack trace.
func New(message string) error {
	return errors.New(message)
}

// Newf creates a formatted error with a stack trace.
func Newf(format string, args ...interface{}) error {
	return errors.Newf(format, args...)
}

// WithStack annotates err with a stack trace.
func WithStack(err error) error {
	return errors.WithStack(err)
}

var (
	// ErrEmptyData is returned when a source yields no events.
	ErrEmptyData = New("empty data")
)
