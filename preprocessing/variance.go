package preprocessing

import (
	"gonum.org/v1/gonum/mat"

	"github.com/volcanolab/volcanoml/pkg/errors"
)

// varianceTolerance is the largest variance still treated as zero.
const varianceTolerance = 1e-12

// VarianceFilter drops columns whose training variance is zero. One-hot
// encoding a collapsed category column can leave indicators that never
// vary inside a bootstrap training fold; removing them keeps the scaler
// from standardizing constants.
type VarianceFilter struct {
	support   []int // retained column indices, ascending
	nFeatures int
	fitted    bool
}

// NewVarianceFilter creates an unfitted filter.
func NewVarianceFilter() *VarianceFilter {
	return &VarianceFilter{}
}

// Name identifies the step inside a pipeline.
func (f *VarianceFilter) Name() string { return "zero_variance" }

// Fit records which columns vary across the training data.
func (f *VarianceFilter) Fit(X mat.Matrix) error {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.Wrap(errors.ErrEmptyData, "VarianceFilter.Fit")
	}

	f.nFeatures = c
	f.support = f.support[:0]
	for j := 0; j < c; j++ {
		mean := 0.0
		for i := 0; i < r; i++ {
			mean += X.At(i, j)
		}
		mean /= float64(r)

		variance := 0.0
		for i := 0; i < r; i++ {
			d := X.At(i, j) - mean
			variance += d * d
		}
		variance /= float64(r)

		if variance > varianceTolerance {
			f.support = append(f.support, j)
		}
	}
	f.fitted = true
	return nil
}

// Transform projects X down to the retained columns.
func (f *VarianceFilter) Transform(X mat.Matrix) (mat.Matrix, error) {
	if !f.fitted {
		return nil, errors.NewNotFittedError("VarianceFilter", "Transform")
	}

	r, c := X.Dims()
	if c != f.nFeatures {
		return nil, errors.NewDimensionError("VarianceFilter.Transform", f.nFeatures, c, 1)
	}

	out := mat.NewDense(r, len(f.support), nil)
	for i := 0; i < r; i++ {
		for k, j := range f.support {
			out.Set(i, k, X.At(i, j))
		}
	}
	return out, nil
}

// Support returns the retained column indices in ascending order.
func (f *VarianceFilter) Support() []int {
	return f.support
}
