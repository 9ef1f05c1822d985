package preprocessing

import (
	"github.com/volcanolab/volcanoml/pkg/errors"
)

// RareLabel is the category rare values collapse into.
const RareLabel = "Other"

// RareGrouper collapses categories whose training frequency falls below
// a threshold into a single RareLabel category. One grouper is fitted
// per categorical column.
type RareGrouper struct {
	// Threshold is the minimum fraction of training rows a category
	// needs to survive collapsing.
	Threshold float64

	kept   map[string]bool
	fitted bool
}

// NewRareGrouper creates a grouper with the given frequency threshold.
func NewRareGrouper(threshold float64) *RareGrouper {
	return &RareGrouper{Threshold: threshold}
}

// Fit counts category frequencies and records which categories survive.
func (g *RareGrouper) Fit(values []string) error {
	if len(values) == 0 {
		return errors.Wrap(errors.ErrEmptyData, "RareGrouper.Fit")
	}

	counts := make(map[string]int)
	for _, v := range values {
		counts[v]++
	}

	minCount := g.Threshold * float64(len(values))
	g.kept = make(map[string]bool, len(counts))
	for cat, n := range counts {
		if float64(n) >= minCount {
			g.kept[cat] = true
		}
	}
	g.fitted = true
	return nil
}

// Transform maps each value to itself if its category survived fitting,
// otherwise to RareLabel. Categories never seen during fitting also map
// to RareLabel.
func (g *RareGrouper) Transform(values []string) ([]string, error) {
	if !g.fitted {
		return nil, errors.NewNotFittedError("RareGrouper", "Transform")
	}

	out := make([]string, len(values))
	for i, v := range values {
		if g.kept[v] {
			out[i] = v
		} else {
			out[i] = RareLabel
		}
	}
	return out, nil
}
