// Package preprocessing implements the two-phase feature pipeline:
// rare-category collapsing, one-hot encoding, zero-variance filtering,
// standardization, and SMOTE oversampling. Every step learns its
// statistics in Fit and applies them unchanged in Transform, so a
// pipeline fitted on one resample's training data transforms that
// resample's held-out data without leakage.
package preprocessing

import (
	"gonum.org/v1/gonum/mat"
)

// MatrixStep is one transformation in the ordered numeric stage of the
// pipeline. Fit learns statistics from training data; Transform applies
// the frozen statistics to any data and must be deterministic given the
// fitted state.
type MatrixStep interface {
	Name() string
	Fit(X mat.Matrix) error
	Transform(X mat.Matrix) (mat.Matrix, error)
}
