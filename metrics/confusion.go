package metrics

import (
	"gonum.org/v1/gonum/mat"

	"github.com/volcanolab/volcanoml/pkg/errors"
)

// ConfusionMatrix accumulates true-class × predicted-class counts.
// Predictions from every successful resample pool into one matrix, so
// the cell total equals the number of held-out predictions collected.
type ConfusionMatrix struct {
	Labels []string
	counts [][]int
	total  int
}

// NewConfusionMatrix creates an empty matrix over the given class labels.
func NewConfusionMatrix(labels []string) *ConfusionMatrix {
	counts := make([][]int, len(labels))
	for i := range counts {
		counts[i] = make([]int, len(labels))
	}
	return &ConfusionMatrix{Labels: labels, counts: counts}
}

// Add records one observation.
func (cm *ConfusionMatrix) Add(trueClass, predClass int) error {
	k := len(cm.Labels)
	if trueClass < 0 || trueClass >= k || predClass < 0 || predClass >= k {
		return errors.NewValueError("ConfusionMatrix.Add", "class index out of range")
	}
	cm.counts[trueClass][predClass]++
	cm.total++
	return nil
}

// AddBatch records every row of the n×1 truth and prediction matrices.
func (cm *ConfusionMatrix) AddBatch(yTrue, yPred mat.Matrix) error {
	n, _ := yTrue.Dims()
	np, _ := yPred.Dims()
	if np != n {
		return errors.NewDimensionError("ConfusionMatrix.AddBatch", n, np, 0)
	}
	for i := 0; i < n; i++ {
		if err := cm.Add(int(yTrue.At(i, 0)), int(yPred.At(i, 0))); err != nil {
			return err
		}
	}
	return nil
}

// At returns the count of rows with the given true and predicted class.
func (cm *ConfusionMatrix) At(trueClass, predClass int) int {
	return cm.counts[trueClass][predClass]
}

// Total returns the number of observations recorded.
func (cm *ConfusionMatrix) Total() int {
	return cm.total
}
