package preprocessing

import (
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/volcanolab/volcanoml/pkg/errors"
)

// OneHotEncoder turns one categorical column into indicator columns,
// one per category seen during fitting. Category order is fixed
// alphabetically at fit time so column positions are stable across
// Transform calls.
type OneHotEncoder struct {
	categories []string
	index      map[string]int
	fitted     bool
}

// NewOneHotEncoder creates an unfitted encoder.
func NewOneHotEncoder() *OneHotEncoder {
	return &OneHotEncoder{}
}

// Fit records the distinct categories of the training column.
func (e *OneHotEncoder) Fit(values []string) error {
	if len(values) == 0 {
		return errors.Wrap(errors.ErrEmptyData, "OneHotEncoder.Fit")
	}

	seen := make(map[string]bool)
	for _, v := range values {
		seen[v] = true
	}

	e.categories = make([]string, 0, len(seen))
	for cat := range seen {
		e.categories = append(e.categories, cat)
	}
	sort.Strings(e.categories)

	e.index = make(map[string]int, len(e.categories))
	for i, cat := range e.categories {
		e.index[cat] = i
	}
	e.fitted = true
	return nil
}

// Transform produces the n×k indicator matrix. A value outside the
// fitted categories contributes an all-zero row, which is what held-out
// data with an unseen category should look like.
func (e *OneHotEncoder) Transform(values []string) (*mat.Dense, error) {
	if !e.fitted {
		return nil, errors.NewNotFittedError("OneHotEncoder", "Transform")
	}

	out := mat.NewDense(len(values), len(e.categories), nil)
	for i, v := range values {
		if j, ok := e.index[v]; ok {
			out.Set(i, j, 1)
		}
	}
	return out, nil
}

// Categories returns the fitted categories in column order.
func (e *OneHotEncoder) Categories() []string {
	return e.categories
}
