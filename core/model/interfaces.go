package model

import (
	"gonum.org/v1/gonum/mat"
)

// Transformer is the interface for two-phase feature transformations.
// Fit learns statistics from training data only; Transform applies the
// frozen statistics to any data. Implementations must never update
// state inside Transform, so transforming the same input twice yields
// identical output.
type Transformer interface {
	Fit(X mat.Matrix) error
	Transform(X mat.Matrix) (mat.Matrix, error)
}

// Classifier is the interface for multiclass classification models.
type Classifier interface {
	// Fit trains the model. y is an n×1 matrix of class indices.
	Fit(X, y mat.Matrix) error

	// Predict returns an n×1 matrix of predicted class indices.
	Predict(X mat.Matrix) (mat.Matrix, error)

	// PredictProba returns an n×k matrix of class probabilities whose
	// rows sum to one.
	PredictProba(X mat.Matrix) (mat.Matrix, error)

	// Classes returns the class indices seen during fitting.
	Classes() []int
}

// ParameterGetter is implemented by estimators that expose their
// hyperparameters.
type ParameterGetter interface {
	GetParams() map[string]interface{}
}
