package log

// Attribute keys follow a dotted "category.name" convention so that records
// from different packages can be filtered consistently.

// Model and operation context.
const (
	// ModelNameKey identifies the model type, e.g. "OneVsRest", "Logistic".
	ModelNameKey = "model.name"

	// OperationKey is the operation being performed, see the Operation* values.
	OperationKey = "ml.operation"

	// ComponentKey names the package emitting the record.
	ComponentKey = "ml.component"

	// PhaseKey is the lifecycle phase, see the Phase* values.
	PhaseKey = "ml.phase"
)

// Data shape.
const (
	SamplesKey  = "data.samples"
	FeaturesKey = "data.features"
	ClassesKey  = "data.classes"
	SourceKey   = "data.source"
)

// Training progress and metrics.
const (
	AccuracyKey     = "metrics.accuracy"
	HitsKey         = "metrics.hits"
	MissesKey       = "metrics.misses"
	LossKey         = "metrics.loss"
	EpochKey        = "training.epoch"
	EpochsKey       = "training.epochs"
	EventsSeenKey   = "training.events_seen"
	DurationMsKey   = "perf.duration_ms"
	CoefficientsKey = "model.coefficients"
)

// Hyperparameters.
const (
	TeacherKey      = "hyperparams.teacher"
	LearningRateKey = "hyperparams.learning_rate"
	InertiaKey      = "hyperparams.inertia"
	AnnealingKey    = "hyperparams.annealing"
)

// Error context.
const (
	ErrorCodeKey  = "error.code"
	SuggestionKey = "error.suggestion"
)

// Standard attribute values.
const (
	OperationTeach    = "teach_event"
	OperationPredict  = "predict"
	OperationEvaluate = "evaluate"
	OperationLoad     = "load"

	PhaseTraining      = "training"
	PhaseInference     = "inference"
	PhasePreprocessing = "preprocessing"

	ErrorDimensionMismatch = "DIMENSION_MISMATCH"
	ErrorUnknownLabel      = "UNKNOWN_LABEL"
	ErrorEmptyData         = "EMPTY_DATA"
	ErrorNumerical         = "NUMERICAL_INSTABILITY"
)
