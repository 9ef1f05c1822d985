// Package evaluate runs the bootstrap evaluation: every resample gets
// an independent preprocessing-pipeline fit and model fit on its
// training multiset, then predicts its held-out complement. Folds are
// fully independent, so they run in parallel with no shared mutable
// state; a fold that fails (degenerate for oversampling, or a stray
// numeric error) is recorded and excluded without aborting the run.
package evaluate

import (
	"github.com/volcanolab/volcanoml/dataset"
)

// Prediction is one held-out row's outcome in one resample. Immutable
// once produced; Row indexes into the evaluated table so the report can
// join predictions back to coordinates.
type Prediction struct {
	ResampleID int
	Row        int
	Number     int
	True       dataset.Class
	Predicted  dataset.Class
	Proba      []float64
}

// FoldScore summarizes one resample's evaluation. Err is non-nil when
// the fold was excluded from aggregation.
type FoldScore struct {
	ID       int
	Accuracy float64
	AUC      float64
	HeldOut  int
	Err      error
}

// Result collects everything the reporting stage consumes.
type Result struct {
	Folds       []FoldScore
	Predictions []Prediction
}

// Successful returns the folds that completed evaluation.
func (r *Result) Successful() []FoldScore {
	out := make([]FoldScore, 0, len(r.Folds))
	for _, f := range r.Folds {
		if f.Err == nil {
			out = append(out, f)
		}
	}
	return out
}

// Failed returns the folds that were excluded.
func (r *Result) Failed() []FoldScore {
	out := make([]FoldScore, 0)
	for _, f := range r.Folds {
		if f.Err != nil {
			out = append(out, f)
		}
	}
	return out
}
