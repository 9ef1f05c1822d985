// Package resample generates bootstrap resamples of the record set.
// Each resample pairs a training multiset, drawn with replacement at
// the full record-set size, with the complement of records never drawn.
package resample

import (
	"math/rand/v2"

	"github.com/volcanolab/volcanoml/pkg/errors"
)

// Resample is one bootstrap draw. TrainIndices has the same cardinality
// as the original record set and may repeat indices; HeldOut contains
// every index never drawn, in ascending order. A resample is created
// once and consumed exactly once by the evaluation driver.
type Resample struct {
	ID           int
	TrainIndices []int
	HeldOut      []int
}

// Bootstrap produces a fixed number of independent bootstrap resamples.
// The seed is explicit: the reference analysis is unseeded, so callers
// decide between a time-based seed and a fixed one for deterministic
// tests.
type Bootstrap struct {
	Count int
	Seed  uint64
}

// NewBootstrap creates a splitter producing count resamples.
func NewBootstrap(count int, seed uint64) *Bootstrap {
	if count < 1 {
		count = 25
	}
	return &Bootstrap{Count: count, Seed: seed}
}

// Split draws the resamples over a record set of n rows. Sampling is
// uniform with replacement; on average about 63.2% of distinct rows
// land in training, leaving ~36.8% held out.
func (b *Bootstrap) Split(n int) ([]Resample, error) {
	if n <= 0 {
		return nil, errors.NewValueError("Bootstrap.Split", "record set is empty")
	}

	rng := rand.New(rand.NewPCG(b.Seed, b.Seed+1))

	resamples := make([]Resample, b.Count)
	for id := 0; id < b.Count; id++ {
		drawn := make([]bool, n)
		train := make([]int, n)
		for i := 0; i < n; i++ {
			idx := rng.IntN(n)
			train[i] = idx
			drawn[idx] = true
		}

		heldOut := make([]int, 0, n/3)
		for i := 0; i < n; i++ {
			if !drawn[i] {
				heldOut = append(heldOut, i)
			}
		}

		resamples[id] = Resample{ID: id, TrainIndices: train, HeldOut: heldOut}
	}

	return resamples, nil
}
