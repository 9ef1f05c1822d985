// Package ensemble implements the multiclass random-forest classifier:
// an ensemble of CART trees, each grown on a bootstrap sample of the
// preprocessed training data with random feature subsetting at every
// split. Prediction averages the per-tree class distributions.
package ensemble

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"

	"github.com/volcanolab/volcanoml/core/model"
	"github.com/volcanolab/volcanoml/core/parallel"
	"github.com/volcanolab/volcanoml/pkg/errors"
)

// RandomForest is a multiclass random-forest classifier. It satisfies
// model.Classifier and is composed after the preprocessing pipeline
// into a single fit/predict unit.
type RandomForest struct {
	state *model.StateManager

	nTrees         int
	maxDepth       int
	minSamplesLeaf int
	maxFeatures    int // 0 means sqrt(p), decided at fit time
	seed           uint64

	trees     []*treeNode
	classes   []int
	nFeatures int
}

// Option configures a RandomForest.
type Option func(*RandomForest)

// WithTrees sets the ensemble size.
func WithTrees(n int) Option {
	return func(rf *RandomForest) { rf.nTrees = n }
}

// WithMaxDepth caps tree depth.
func WithMaxDepth(d int) Option {
	return func(rf *RandomForest) { rf.maxDepth = d }
}

// WithMinSamplesLeaf sets the minimum samples per leaf.
func WithMinSamplesLeaf(n int) Option {
	return func(rf *RandomForest) { rf.minSamplesLeaf = n }
}

// WithMaxFeatures sets the number of features considered per split.
// The default is the square root of the feature count.
func WithMaxFeatures(n int) Option {
	return func(rf *RandomForest) { rf.maxFeatures = n }
}

// WithSeed fixes the forest's randomness for reproducible fits.
func WithSeed(seed uint64) Option {
	return func(rf *RandomForest) { rf.seed = seed }
}

// NewRandomForest creates a forest with the reference defaults:
// 1000 trees, depth capped at 25, one sample per leaf, sqrt(p)
// features per split.
func NewRandomForest(opts ...Option) *RandomForest {
	rf := &RandomForest{
		state:          model.NewStateManager(),
		nTrees:         1000,
		maxDepth:       25,
		minSamplesLeaf: 1,
	}
	for _, opt := range opts {
		opt(rf)
	}
	if rf.nTrees < 1 {
		rf.nTrees = 1000
	}
	if rf.maxDepth < 1 {
		rf.maxDepth = 25
	}
	if rf.minSamplesLeaf < 1 {
		rf.minSamplesLeaf = 1
	}
	return rf
}

// Fit trains the ensemble. y is an n×1 matrix of class indices in
// [0, k). Trees are independent and trained in parallel; each owns a
// generator derived from the forest seed and its tree index, so a
// seeded fit is deterministic regardless of scheduling.
func (rf *RandomForest) Fit(X, y mat.Matrix) error {
	n, p := X.Dims()
	yr, _ := y.Dims()
	if n == 0 || p == 0 {
		return errors.Wrap(errors.ErrEmptyData, "RandomForest.Fit")
	}
	if yr != n {
		return errors.NewDimensionError("RandomForest.Fit", n, yr, 0)
	}

	labels := make([]int, n)
	maxClass := 0
	for i := 0; i < n; i++ {
		labels[i] = int(y.At(i, 0))
		if labels[i] > maxClass {
			maxClass = labels[i]
		}
	}
	nClasses := maxClass + 1

	rf.classes = make([]int, nClasses)
	for c := range rf.classes {
		rf.classes[c] = c
	}
	rf.nFeatures = p

	maxFeatures := rf.maxFeatures
	if maxFeatures <= 0 || maxFeatures > p {
		maxFeatures = int(math.Sqrt(float64(p)))
		if maxFeatures < 1 {
			maxFeatures = 1
		}
	}

	params := treeParams{
		maxDepth:       rf.maxDepth,
		minSamplesLeaf: rf.minSamplesLeaf,
		maxFeatures:    maxFeatures,
		nClasses:       nClasses,
	}

	Xd := mat.DenseCopyOf(X)
	rf.trees = make([]*treeNode, rf.nTrees)

	parallel.Parallelize(rf.nTrees, func(start, end int) {
		for t := start; t < end; t++ {
			rng := rand.New(rand.NewPCG(rf.seed, uint64(t)+1))

			// Bootstrap sample for this tree.
			samples := make([]int, n)
			for i := range samples {
				samples[i] = rng.IntN(n)
			}

			rf.trees[t] = buildTree(Xd, labels, samples, 0, params, rng)
		}
	})

	rf.state.SetFitted()
	rf.state.SetDimensions(p, n)
	return nil
}

// PredictProba returns the n×k matrix of class probabilities, averaged
// over the per-tree leaf distributions. Rows sum to one.
func (rf *RandomForest) PredictProba(X mat.Matrix) (mat.Matrix, error) {
	if err := rf.state.RequireFitted("RandomForest", "PredictProba"); err != nil {
		return nil, err
	}

	n, p := X.Dims()
	if p != rf.nFeatures {
		return nil, errors.NewDimensionError("RandomForest.PredictProba", rf.nFeatures, p, 1)
	}

	nClasses := len(rf.classes)
	proba := mat.NewDense(n, nClasses, nil)

	row := make([]float64, p)
	for i := 0; i < n; i++ {
		for j := 0; j < p; j++ {
			row[j] = X.At(i, j)
		}

		acc := make([]float64, nClasses)
		for _, tree := range rf.trees {
			for c, v := range tree.predictRow(row) {
				acc[c] += v
			}
		}
		for c := range acc {
			proba.Set(i, c, acc[c]/float64(len(rf.trees)))
		}
	}

	return proba, nil
}

// Predict returns the n×1 matrix of predicted class indices by highest
// averaged probability.
func (rf *RandomForest) Predict(X mat.Matrix) (mat.Matrix, error) {
	proba, err := rf.PredictProba(X)
	if err != nil {
		return nil, err
	}

	n, k := proba.Dims()
	pred := mat.NewDense(n, 1, nil)
	for i := 0; i < n; i++ {
		best, bestP := 0, proba.At(i, 0)
		for c := 1; c < k; c++ {
			if proba.At(i, c) > bestP {
				best, bestP = c, proba.At(i, c)
			}
		}
		pred.Set(i, 0, float64(best))
	}
	return pred, nil
}

// Classes returns the class indices seen during fitting.
func (rf *RandomForest) Classes() []int {
	return rf.classes
}

// GetParams returns the forest hyperparameters.
func (rf *RandomForest) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"n_trees":          rf.nTrees,
		"max_depth":        rf.maxDepth,
		"min_samples_leaf": rf.minSamplesLeaf,
		"max_features":     rf.maxFeatures,
		"seed":             rf.seed,
	}
}
