package ensemble

import (
	"math/rand/v2"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/volcanolab/volcanoml/core/model"
	"github.com/volcanolab/volcanoml/pkg/errors"
)

// Importance is one feature's permutation-importance score: the mean
// accuracy drop when that feature's column is shuffled.
type Importance struct {
	Feature string
	Score   float64
}

// PermutationImportance scores each feature by shuffling its column
// `repeats` times and measuring the accuracy lost against the unshuffled
// baseline. Results are sorted by descending score. The model must
// already be fitted; X and y are the full preprocessed dataset.
func PermutationImportance(clf model.Classifier, X *mat.Dense, y mat.Matrix, features []string, repeats int, seed uint64) ([]Importance, error) {
	n, p := X.Dims()
	if p != len(features) {
		return nil, errors.NewDimensionError("PermutationImportance", len(features), p, 1)
	}
	if repeats < 1 {
		repeats = 5
	}

	baseline, err := accuracyOf(clf, X, y)
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewPCG(seed, seed|1))

	scores := make([]Importance, p)
	column := make([]float64, n)
	shuffled := make([]float64, n)

	for j := 0; j < p; j++ {
		mat.Col(column, j, X)

		drop := 0.0
		for r := 0; r < repeats; r++ {
			copy(shuffled, column)
			rng.Shuffle(n, func(a, b int) {
				shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
			})
			X.SetCol(j, shuffled)

			permuted, err := accuracyOf(clf, X, y)
			if err != nil {
				X.SetCol(j, column)
				return nil, err
			}
			drop += baseline - permuted
		}
		X.SetCol(j, column)

		scores[j] = Importance{Feature: features[j], Score: drop / float64(repeats)}
	}

	sort.SliceStable(scores, func(a, b int) bool { return scores[a].Score > scores[b].Score })
	return scores, nil
}

func accuracyOf(clf model.Classifier, X, y mat.Matrix) (float64, error) {
	pred, err := clf.Predict(X)
	if err != nil {
		return 0, err
	}

	n, _ := y.Dims()
	correct := 0
	for i := 0; i < n; i++ {
		if pred.At(i, 0) == y.At(i, 0) {
			correct++
		}
	}
	return float64(correct) / float64(n), nil
}
