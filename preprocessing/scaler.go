package preprocessing

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/volcanolab/volcanoml/pkg/errors"
)

// StandardScaler standardizes every column to zero mean and unit scale
// using statistics computed from the training data alone. The fitted
// mean and scale are reused, never recomputed, when transforming
// held-out data.
type StandardScaler struct {
	// Mean holds the per-column training mean.
	Mean []float64

	// Scale holds the per-column training standard deviation.
	Scale []float64

	nFeatures int
	fitted    bool
}

// NewStandardScaler creates an unfitted scaler.
func NewStandardScaler() *StandardScaler {
	return &StandardScaler{}
}

// Name identifies the step inside a pipeline.
func (s *StandardScaler) Name() string { return "normalize" }

// Fit computes the per-column mean and standard deviation.
func (s *StandardScaler) Fit(X mat.Matrix) error {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.Wrap(errors.ErrEmptyData, "StandardScaler.Fit")
	}

	s.nFeatures = c
	s.Mean = make([]float64, c)
	s.Scale = make([]float64, c)

	for j := 0; j < c; j++ {
		sum := 0.0
		for i := 0; i < r; i++ {
			sum += X.At(i, j)
		}
		s.Mean[j] = sum / float64(r)
	}

	for j := 0; j < c; j++ {
		sumSquares := 0.0
		for i := 0; i < r; i++ {
			diff := X.At(i, j) - s.Mean[j]
			sumSquares += diff * diff
		}
		s.Scale[j] = math.Sqrt(sumSquares / float64(r))

		// Constant columns should pass through unscaled rather than
		// divide by zero; the variance filter normally removes them
		// before this step runs.
		if math.Abs(s.Scale[j]) < 1e-8 {
			s.Scale[j] = 1.0
		}
	}

	s.fitted = true
	return nil
}

// Transform standardizes X with the fitted statistics.
func (s *StandardScaler) Transform(X mat.Matrix) (mat.Matrix, error) {
	if !s.fitted {
		return nil, errors.NewNotFittedError("StandardScaler", "Transform")
	}

	r, c := X.Dims()
	if c != s.nFeatures {
		return nil, errors.NewDimensionError("StandardScaler.Transform", s.nFeatures, c, 1)
	}

	result := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			result.Set(i, j, (X.At(i, j)-s.Mean[j])/s.Scale[j])
		}
	}
	return result, nil
}
