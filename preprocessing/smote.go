package preprocessing

import (
	"math"
	"math/rand/v2"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/volcanolab/volcanoml/pkg/errors"
)

// SMOTE balances the training classes by synthesizing minority-class
// rows as convex combinations of a minority row and one of its k
// nearest same-class neighbors in feature space. It runs at fit time on
// training data only; held-out data is never oversampled.
type SMOTE struct {
	// Neighbors is the k of the nearest-neighbor search.
	Neighbors int

	// Seed drives base-row and neighbor selection.
	Seed uint64
}

// NewSMOTE creates an oversampler with the given neighbor count.
func NewSMOTE(neighbors int, seed uint64) *SMOTE {
	if neighbors < 1 {
		neighbors = 5
	}
	return &SMOTE{Neighbors: neighbors, Seed: seed}
}

// Oversample brings every class up to the majority-class count.
// Classes already at the majority count are left alone. A class that
// needs synthesis but has no more than Neighbors members cannot supply
// k distinct neighbors and raises a DegenerateFoldError, which the
// evaluation driver treats as a per-resample failure.
func (s *SMOTE) Oversample(X *mat.Dense, y []int, className func(int) string) (*mat.Dense, []int, error) {
	n, p := X.Dims()
	if n == 0 || n != len(y) {
		return nil, nil, errors.NewDimensionError("SMOTE.Oversample", n, len(y), 0)
	}

	byClass := make(map[int][]int)
	for i, label := range y {
		byClass[label] = append(byClass[label], i)
	}

	maxCount := 0
	for _, rows := range byClass {
		if len(rows) > maxCount {
			maxCount = len(rows)
		}
	}

	// Deterministic iteration order for a given seed.
	classes := make([]int, 0, len(byClass))
	for label := range byClass {
		classes = append(classes, label)
	}
	sort.Ints(classes)

	for _, label := range classes {
		if need := maxCount - len(byClass[label]); need > 0 && len(byClass[label]) <= s.Neighbors {
			return nil, nil, errors.NewDegenerateFoldError(-1, className(label), len(byClass[label]), s.Neighbors)
		}
	}

	rng := rand.New(rand.NewPCG(s.Seed, s.Seed^0x9e3779b97f4a7c15))

	outRows := make([][]float64, 0, maxCount*len(classes))
	outLabels := make([]int, 0, maxCount*len(classes))
	for i := 0; i < n; i++ {
		outRows = append(outRows, mat.Row(nil, i, X))
		outLabels = append(outLabels, y[i])
	}

	for _, label := range classes {
		rows := byClass[label]
		need := maxCount - len(rows)
		if need == 0 {
			continue
		}

		neighbors := nearestNeighbors(X, rows, s.Neighbors)
		for k := 0; k < need; k++ {
			baseIdx := rng.IntN(len(rows))
			base := mat.Row(nil, rows[baseIdx], X)
			nbr := mat.Row(nil, neighbors[baseIdx][rng.IntN(len(neighbors[baseIdx]))], X)

			gap := rng.Float64()
			synth := make([]float64, p)
			for j := 0; j < p; j++ {
				synth[j] = base[j] + gap*(nbr[j]-base[j])
			}
			outRows = append(outRows, synth)
			outLabels = append(outLabels, label)
		}
	}

	out := mat.NewDense(len(outRows), p, nil)
	for i, row := range outRows {
		out.SetRow(i, row)
	}
	return out, outLabels, nil
}

// nearestNeighbors returns, for each of the given rows, the indices of
// its k nearest rows among the same set (excluding itself), by
// Euclidean distance. Brute force; the record set is small.
func nearestNeighbors(X *mat.Dense, rows []int, k int) [][]int {
	type distIdx struct {
		d   float64
		idx int
	}

	result := make([][]int, len(rows))
	for a, i := range rows {
		dists := make([]distIdx, 0, len(rows)-1)
		ri := mat.Row(nil, i, X)
		for _, j := range rows {
			if i == j {
				continue
			}
			rj := mat.Row(nil, j, X)
			sum := 0.0
			for c := range ri {
				d := ri[c] - rj[c]
				sum += d * d
			}
			dists = append(dists, distIdx{d: math.Sqrt(sum), idx: j})
		}
		sort.Slice(dists, func(x, y int) bool { return dists[x].d < dists[y].d })

		kk := k
		if kk > len(dists) {
			kk = len(dists)
		}
		nbrs := make([]int, kk)
		for m := 0; m < kk; m++ {
			nbrs[m] = dists[m].idx
		}
		result[a] = nbrs
	}
	return result
}
