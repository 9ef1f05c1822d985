package errors

import (
	"fmt"
	"log"
	"sync"

	"github.com/rs/zerolog"
)

var (
	warningMutex   sync.Mutex
	warningHandler = func(w error) {
		log.Printf("volcanoml warning: %v\n", w)
	}
)

// SetWarningHandler replaces the global warning handler. Metrics that are
// ill-defined for a particular fold (for example precision for a class
// that was never predicted) report through this channel instead of
// failing the fold.
func SetWarningHandler(handler func(w error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	warningHandler = handler
}

// Warn emits a warning through the configured handler.
func Warn(w error) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	if warningHandler != nil {
		warningHandler(w)
	}
}

// UndefinedMetricWarning is raised when a metric cannot be computed for
// some fold and a fallback value is substituted.
type UndefinedMetricWarning struct {
	Metric    string
	Condition string
	Result    float64 // the value substituted under this condition
}

func (w *UndefinedMetricWarning) Error() string {
	return fmt.Sprintf("%q is ill-defined and being set to %g due to %s", w.Metric, w.Result, w.Condition)
}

// MarshalZerologObject adds structured warning information to a zerolog event.
func (w *UndefinedMetricWarning) MarshalZerologObject(event *zerolog.Event) {
	event.Str("metric", w.Metric).
		Str("condition", w.Condition).
		Float64("result", w.Result).
		Str("type", "UndefinedMetricWarning")
}

// NewUndefinedMetricWarning creates a new UndefinedMetricWarning.
func NewUndefinedMetricWarning(metric, condition string, result float64) *UndefinedMetricWarning {
	return &UndefinedMetricWarning{Metric: metric, Condition: condition, Result: result}
}
