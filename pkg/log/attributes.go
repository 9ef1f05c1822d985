package log

// Standard attribute keys for pipeline operations. Using these keys
// consistently keeps log output filterable: every fit, transform, and
// evaluation pass reports the same vocabulary.

// Model and operation context.
const (
	// ModelNameKey identifies the estimator type.
	// Examples: "RandomForest", "StandardScaler", "Pipeline"
	ModelNameKey = "model.name"

	// OperationKey specifies the operation being performed.
	// Standard values: "fit", "predict", "transform", "evaluate"
	OperationKey = "ml.operation"

	// ComponentKey identifies which package is performing the operation.
	// Examples: "dataset", "preprocessing", "evaluate", "report"
	ComponentKey = "ml.component"

	// ResampleKey carries the bootstrap resample index an operation
	// belongs to.
	ResampleKey = "resample.id"
)

// Data shape and characteristics.
const (
	// SamplesKey is the number of rows being processed.
	SamplesKey = "data.samples"

	// FeaturesKey is the number of feature columns after encoding.
	FeaturesKey = "data.features"

	// ClassesKey is the number of target classes.
	ClassesKey = "data.classes"

	// HeldOutKey is the number of held-out rows in a resample.
	HeldOutKey = "data.held_out"
)

// Performance and outcome.
const (
	// DurationMsKey records execution time in milliseconds.
	DurationMsKey = "perf.duration_ms"

	// AccuracyKey records a fold or aggregate accuracy.
	AccuracyKey = "metric.accuracy"

	// AUCKey records a fold or aggregate ROC AUC.
	AUCKey = "metric.auc"
)

// Error context.
const (
	// StacktraceKey carries a stack trace extracted from a wrapped error.
	StacktraceKey = "stacktrace"
)
