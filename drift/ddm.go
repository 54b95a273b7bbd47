// Package drift detects concept drift in the online error stream of a
// classifier.
package drift

import (
	"math"
	"sync"
)

// Detector consumes one prediction outcome per event.
type Detector interface {
	// Update records whether the prediction for the latest event was correct.
	Update(correct bool) Result

	// Reset forgets every observation.
	Reset()

	// Name identifies the detector in warnings and logs.
	Name() string
}

// Result is the state of a detector after an update.
type Result struct {
	Warning   bool
	Drift     bool
	ErrorRate float64
	// Score is error rate plus its standard deviation, Threshold the drift
	// level it is compared to. Both are 0 until the detector is warmed up.
	Score     float64
	Threshold float64
}

// DDM is the Drift Detection Method of Gama et al. (2004), "Learning with
// Drift Detection". The error rate p and its deviation s are tracked and the
// minimum of p+s is kept as reference; p+s above pmin + level*smin raises a
// warning or, past the out-of-control level, a drift. A drift resets the
// detector.
type DDM struct {
	minNumInstances int
	warningLevel    float64
	outControlLevel float64

	numInstances int
	numErrors    int
	errorRate    float64
	stdDev       float64

	minErrorRate float64
	minStdDev    float64

	warningDetected bool
	drifts          int

	mu sync.RWMutex
}

// DDMOption configures a DDM.
type DDMOption func(*DDM)

// WithDDMMinNumInstances sets how many events are seen before detection starts.
func WithDDMMinNumInstances(n int) DDMOption {
	return func(ddm *DDM) {
		ddm.minNumInstances = n
	}
}

// WithDDMWarningLevel sets the warning level in standard deviations.
func WithDDMWarningLevel(level float64) DDMOption {
	return func(ddm *DDM) {
		ddm.warningLevel = level
	}
}

// WithDDMOutControlLevel sets the drift level in standard deviations.
func WithDDMOutControlLevel(level float64) DDMOption {
	return func(ddm *DDM) {
		ddm.outControlLevel = level
	}
}

// NewDDM creates a DDM with warning at 2σ and drift at 3σ after 30 events.
func NewDDM(options ...DDMOption) *DDM {
	ddm := &DDM{
		minNumInstances: 30,
		warningLevel:    2.0,
		outControlLevel: 3.0,
	}
	for _, opt := range options {
		opt(ddm)
	}
	ddm.reset()
	return ddm
}

// Name implements Detector.
func (ddm *DDM) Name() string {
	return "DDM"
}

// Update implements Detector.
func (ddm *DDM) Update(correct bool) Result {
	ddm.mu.Lock()
	defer ddm.mu.Unlock()

	ddm.numInstances++
	if !correct {
		ddm.numErrors++
	}
	if ddm.numInstances < ddm.minNumInstances {
		return Result{}
	}

	n := float64(ddm.numInstances)
	ddm.errorRate = float64(ddm.numErrors) / n
	ddm.stdDev = math.Sqrt(ddm.errorRate * (1 - ddm.errorRate) / n)

	level := ddm.errorRate + ddm.stdDev
	if level < ddm.minErrorRate+ddm.minStdDev {
		ddm.minErrorRate = ddm.errorRate
		ddm.minStdDev = ddm.stdDev
	}

	result := Result{
		ErrorRate: ddm.errorRate,
		Score:     level,
		Threshold: ddm.minErrorRate + ddm.outControlLevel*ddm.minStdDev,
	}

	ddm.warningDetected = level > ddm.minErrorRate+ddm.warningLevel*ddm.minStdDev
	result.Warning = ddm.warningDetected

	if level > result.Threshold {
		result.Drift = true
		ddm.drifts++
		ddm.reset()
	}
	return result
}

// Reset implements Detector.
func (ddm *DDM) Reset() {
	ddm.mu.Lock()
	defer ddm.mu.Unlock()
	ddm.reset()
}

func (ddm *DDM) reset() {
	ddm.numInstances = 0
	ddm.numErrors = 0
	ddm.errorRate = 0
	ddm.stdDev = 0
	ddm.minErrorRate = math.Inf(1)
	ddm.minStdDev = math.Inf(1)
	ddm.warningDetected = false
}

// Statistics returns a snapshot of the detector state.
func (ddm *DDM) Statistics() DDMStatistics {
	ddm.mu.RLock()
	defer ddm.mu.RUnlock()

	return DDMStatistics{
		NumInstances:    ddm.numInstances,
		NumErrors:       ddm.numErrors,
		ErrorRate:       ddm.errorRate,
		StdDev:          ddm.stdDev,
		MinErrorRate:    ddm.minErrorRate,
		MinStdDev:       ddm.minStdDev,
		WarningDetected: ddm.warningDetected,
		Drifts:          ddm.drifts,
	}
}

// DDMStatistics is a snapshot of a DDM.
type DDMStatistics struct {
	NumInstances    int
	NumErrors       int
	ErrorRate       float64
	StdDev          float64
	MinErrorRate    float64
	MinStdDev       float64
	WarningDetected bool
	Drifts          int // drifts detected since creation
}

var _ Detector = (*DDM)(nil)
