// Package metrics implements the classification metrics aggregated
// across bootstrap resamples: accuracy, ROC AUC (binary and one-vs-rest
// multiclass), per-class precision, and the pooled confusion matrix.
package metrics

import (
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/volcanolab/volcanoml/pkg/errors"
)

// Accuracy returns the fraction of rows where yPred matches yTrue.
// Both are n×1 matrices of class indices.
func Accuracy(yTrue, yPred mat.Matrix) (float64, error) {
	n, _ := yTrue.Dims()
	np, _ := yPred.Dims()
	if n == 0 {
		return 0, errors.NewValueError("Accuracy", "empty input")
	}
	if np != n {
		return 0, errors.NewDimensionError("Accuracy", n, np, 0)
	}

	correct := 0
	for i := 0; i < n; i++ {
		if yTrue.At(i, 0) == yPred.At(i, 0) {
			correct++
		}
	}
	return float64(correct) / float64(n), nil
}

// ROCAUC computes the binary area under the ROC curve from scores via
// the rank statistic, with tied scores receiving averaged ranks.
// yTrue holds 0/1 labels; score is the predicted probability of the
// positive class. If only one class is present the metric is
// ill-defined: a warning is raised and 0.5 returned.
func ROCAUC(yTrue, score []float64) (float64, error) {
	n := len(yTrue)
	if n == 0 {
		return 0, errors.NewValueError("ROCAUC", "empty input")
	}
	if len(score) != n {
		return 0, errors.NewDimensionError("ROCAUC", n, len(score), 0)
	}

	nPos := 0
	for _, y := range yTrue {
		switch y {
		case 0:
		case 1:
			nPos++
		default:
			return 0, errors.NewValueError("ROCAUC", "labels must be 0 or 1")
		}
	}
	nNeg := n - nPos

	if nPos == 0 || nNeg == 0 {
		errors.Warn(errors.NewUndefinedMetricWarning("roc_auc", "only one class present", 0.5))
		return 0.5, nil
	}

	// Rank the scores ascending, averaging ranks over ties.
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return score[order[a]] < score[order[b]] })

	ranks := make([]float64, n)
	for i := 0; i < n; {
		j := i
		for j < n && score[order[j]] == score[order[i]] {
			j++
		}
		// Ranks are 1-based; ties share the mean rank of their block.
		avg := float64(i+j+1) / 2
		for k := i; k < j; k++ {
			ranks[order[k]] = avg
		}
		i = j
	}

	rankSum := 0.0
	for i, y := range yTrue {
		if y == 1 {
			rankSum += ranks[i]
		}
	}

	auc := (rankSum - float64(nPos)*float64(nPos+1)/2) / (float64(nPos) * float64(nNeg))
	return auc, nil
}

// OneVsRestAUC computes the macro-averaged multiclass AUC: for each
// class, the binary AUC of that class against the rest using its
// predicted probability column, averaged over classes present in
// yTrue. proba is n×k; yTrue is an n×1 matrix of class indices.
func OneVsRestAUC(yTrue mat.Matrix, proba mat.Matrix) (float64, error) {
	n, _ := yTrue.Dims()
	pn, k := proba.Dims()
	if n == 0 {
		return 0, errors.NewValueError("OneVsRestAUC", "empty input")
	}
	if pn != n {
		return 0, errors.NewDimensionError("OneVsRestAUC", n, pn, 0)
	}

	present := make([]bool, k)
	for i := 0; i < n; i++ {
		c := int(yTrue.At(i, 0))
		if c < 0 || c >= k {
			return 0, errors.NewValueError("OneVsRestAUC", "class index out of range")
		}
		present[c] = true
	}

	sum, count := 0.0, 0
	binary := make([]float64, n)
	scores := make([]float64, n)
	for c := 0; c < k; c++ {
		if !present[c] {
			continue
		}
		for i := 0; i < n; i++ {
			if int(yTrue.At(i, 0)) == c {
				binary[i] = 1
			} else {
				binary[i] = 0
			}
			scores[i] = proba.At(i, c)
		}
		auc, err := ROCAUC(binary, scores)
		if err != nil {
			return 0, err
		}
		sum += auc
		count++
	}

	if count == 0 {
		errors.Warn(errors.NewUndefinedMetricWarning("one_vs_rest_auc", "no classes present", 0.5))
		return 0.5, nil
	}
	return sum / float64(count), nil
}

// PrecisionPerClass returns the positive predictive value of each class:
// of the rows predicted as class c, the fraction truly c. A class never
// predicted is ill-defined; a warning is raised and 0 recorded.
func PrecisionPerClass(yTrue, yPred mat.Matrix, nClasses int) ([]float64, error) {
	n, _ := yTrue.Dims()
	np, _ := yPred.Dims()
	if n == 0 {
		return nil, errors.NewValueError("PrecisionPerClass", "empty input")
	}
	if np != n {
		return nil, errors.NewDimensionError("PrecisionPerClass", n, np, 0)
	}

	truePos := make([]float64, nClasses)
	predicted := make([]float64, nClasses)
	for i := 0; i < n; i++ {
		pred := int(yPred.At(i, 0))
		if pred < 0 || pred >= nClasses {
			return nil, errors.NewValueError("PrecisionPerClass", "class index out of range")
		}
		predicted[pred]++
		if int(yTrue.At(i, 0)) == pred {
			truePos[pred]++
		}
	}

	precision := make([]float64, nClasses)
	for c := 0; c < nClasses; c++ {
		if predicted[c] == 0 {
			errors.Warn(errors.NewUndefinedMetricWarning("precision", "no predicted samples for class", 0))
			continue
		}
		precision[c] = truePos[c] / predicted[c]
	}
	return precision, nil
}
