package ensemble

import (
	"math/rand/v2"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// treeNode is one node of a fitted decision tree. Leaves carry the
// class distribution of the training samples that reached them.
type treeNode struct {
	feature   int
	threshold float64
	left      *treeNode
	right     *treeNode
	probs     []float64 // non-nil only on leaves
}

func (n *treeNode) isLeaf() bool { return n.probs != nil }

// treeParams are the growth limits shared by every tree in a forest.
type treeParams struct {
	maxDepth       int
	minSamplesLeaf int
	maxFeatures    int
	nClasses       int
}

// buildTree grows a CART tree on the sample indices using gini
// impurity, considering a fresh random feature subset at every split.
func buildTree(X *mat.Dense, y []int, samples []int, depth int, params treeParams, rng *rand.Rand) *treeNode {
	if depth >= params.maxDepth || len(samples) < 2*params.minSamplesLeaf || isPure(y, samples) {
		return leaf(y, samples, params.nClasses)
	}

	feature, threshold, ok := bestSplit(X, y, samples, params, rng)
	if !ok {
		return leaf(y, samples, params.nClasses)
	}

	var left, right []int
	for _, i := range samples {
		if X.At(i, feature) <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	if len(left) < params.minSamplesLeaf || len(right) < params.minSamplesLeaf {
		return leaf(y, samples, params.nClasses)
	}

	return &treeNode{
		feature:   feature,
		threshold: threshold,
		left:      buildTree(X, y, left, depth+1, params, rng),
		right:     buildTree(X, y, right, depth+1, params, rng),
	}
}

func leaf(y []int, samples []int, nClasses int) *treeNode {
	probs := make([]float64, nClasses)
	for _, i := range samples {
		probs[y[i]]++
	}
	for c := range probs {
		probs[c] /= float64(len(samples))
	}
	return &treeNode{probs: probs}
}

func isPure(y []int, samples []int) bool {
	first := y[samples[0]]
	for _, i := range samples[1:] {
		if y[i] != first {
			return false
		}
	}
	return true
}

// bestSplit searches a random feature subset for the threshold with the
// lowest weighted gini impurity. Candidate thresholds are midpoints
// between consecutive distinct feature values.
func bestSplit(X *mat.Dense, y []int, samples []int, params treeParams, rng *rand.Rand) (int, float64, bool) {
	_, p := X.Dims()

	features := rng.Perm(p)[:params.maxFeatures]

	bestGini := gini(y, samples, params.nClasses)
	bestFeature, bestThreshold := -1, 0.0
	found := false

	values := make([]float64, len(samples))
	for _, f := range features {
		for i, s := range samples {
			values[i] = X.At(s, f)
		}
		sorted := append([]float64(nil), values...)
		sort.Float64s(sorted)

		for i := 1; i < len(sorted); i++ {
			if sorted[i] == sorted[i-1] {
				continue
			}
			threshold := (sorted[i] + sorted[i-1]) / 2

			score, ok := splitGini(X, y, samples, f, threshold, params)
			if ok && score < bestGini {
				bestGini = score
				bestFeature = f
				bestThreshold = threshold
				found = true
			}
		}
	}

	return bestFeature, bestThreshold, found
}

func splitGini(X *mat.Dense, y []int, samples []int, feature int, threshold float64, params treeParams) (float64, bool) {
	leftCounts := make([]float64, params.nClasses)
	rightCounts := make([]float64, params.nClasses)
	nLeft, nRight := 0, 0

	for _, i := range samples {
		if X.At(i, feature) <= threshold {
			leftCounts[y[i]]++
			nLeft++
		} else {
			rightCounts[y[i]]++
			nRight++
		}
	}
	if nLeft == 0 || nRight == 0 {
		return 0, false
	}

	giniOf := func(counts []float64, n int) float64 {
		g := 1.0
		for _, c := range counts {
			frac := c / float64(n)
			g -= frac * frac
		}
		return g
	}

	total := float64(nLeft + nRight)
	weighted := float64(nLeft)/total*giniOf(leftCounts, nLeft) +
		float64(nRight)/total*giniOf(rightCounts, nRight)
	return weighted, true
}

func gini(y []int, samples []int, nClasses int) float64 {
	counts := make([]float64, nClasses)
	for _, i := range samples {
		counts[y[i]]++
	}
	g := 1.0
	for _, c := range counts {
		frac := c / float64(len(samples))
		g -= frac * frac
	}
	return g
}

// predictRow walks the tree and returns the leaf class distribution.
func (n *treeNode) predictRow(row []float64) []float64 {
	node := n
	for !node.isLeaf() {
		if row[node.feature] <= node.threshold {
			node = node.left
		} else {
			node = node.right
		}
	}
	return node.probs
}
