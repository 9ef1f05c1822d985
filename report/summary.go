// Package report aggregates the evaluation output: metric summaries
// across resamples, the pooled confusion matrix, per-resample per-class
// precision, the permutation-importance ranking, and the two map
// visualizations.
package report

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/volcanolab/volcanoml/dataset"
	"github.com/volcanolab/volcanoml/ensemble"
	"github.com/volcanolab/volcanoml/evaluate"
	"github.com/volcanolab/volcanoml/metrics"
	"github.com/volcanolab/volcanoml/pkg/errors"
	"github.com/volcanolab/volcanoml/preprocessing"
)

// MetricSummary is one metric's mean and spread across successful folds.
type MetricSummary struct {
	Name   string
	Mean   float64
	StdErr float64
	N      int
}

// Summarize reports mean ± standard error of accuracy and one-vs-rest
// AUC over the successful folds.
func Summarize(res *evaluate.Result) []MetricSummary {
	folds := res.Successful()

	acc := make([]float64, len(folds))
	auc := make([]float64, len(folds))
	for i, f := range folds {
		acc[i] = f.Accuracy
		auc[i] = f.AUC
	}

	return []MetricSummary{
		summarize("accuracy", acc),
		summarize("roc_auc", auc),
	}
}

func summarize(name string, values []float64) MetricSummary {
	s := MetricSummary{Name: name, N: len(values)}
	if len(values) == 0 {
		return s
	}
	s.Mean = stat.Mean(values, nil)
	if len(values) > 1 {
		s.StdErr = stat.StdDev(values, nil) / math.Sqrt(float64(len(values)))
	}
	return s
}

// PooledConfusion pools every held-out prediction from every successful
// fold into one true-class × predicted-class count table.
func PooledConfusion(res *evaluate.Result) (*metrics.ConfusionMatrix, error) {
	cm := metrics.NewConfusionMatrix(dataset.ClassNames())
	for _, p := range res.Predictions {
		if err := cm.Add(int(p.True), int(p.Predicted)); err != nil {
			return nil, err
		}
	}
	return cm, nil
}

// PrecisionRow is one resample's precision for one class. Rows are
// reported per resample, not pooled, to surface fold-to-fold variance.
type PrecisionRow struct {
	ResampleID int
	Class      string
	Precision  float64
}

// PrecisionByFold computes per-class positive predictive value
// separately for each successful fold.
func PrecisionByFold(res *evaluate.Result) ([]PrecisionRow, error) {
	byFold := make(map[int][]evaluate.Prediction)
	for _, p := range res.Predictions {
		byFold[p.ResampleID] = append(byFold[p.ResampleID], p)
	}

	ids := make([]int, 0, len(byFold))
	for id := range byFold {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	names := dataset.ClassNames()
	rows := make([]PrecisionRow, 0, len(ids)*len(names))
	for _, id := range ids {
		preds := byFold[id]
		yTrue := mat.NewDense(len(preds), 1, nil)
		yPred := mat.NewDense(len(preds), 1, nil)
		for i, p := range preds {
			yTrue.Set(i, 0, float64(p.True))
			yPred.Set(i, 0, float64(p.Predicted))
		}

		precision, err := metrics.PrecisionPerClass(yTrue, yPred, dataset.NumClasses)
		if err != nil {
			return nil, errors.Wrapf(err, "precision for resample %d", id)
		}
		for c, v := range precision {
			rows = append(rows, PrecisionRow{ResampleID: id, Class: names[c], Precision: v})
		}
	}
	return rows, nil
}

// ImportanceConfig controls the full-data importance fit.
type ImportanceConfig struct {
	Pipeline preprocessing.Config
	Options  []ensemble.Option
	Repeats  int
	Seed     uint64
}

// RankImportance fits one pipeline and forest on the entire record set
// (no resampling) and ranks the encoded predictors by permutation
// importance.
func RankImportance(t *dataset.Table, cfg ImportanceConfig) ([]ensemble.Importance, error) {
	pipe := preprocessing.NewPipeline(cfg.Pipeline)
	X, y, err := pipe.Fit(t)
	if err != nil {
		return nil, errors.Wrap(err, "fitting full-data pipeline")
	}

	forest := ensemble.NewRandomForest(cfg.Options...)
	if err := forest.Fit(X, y); err != nil {
		return nil, errors.Wrap(err, "fitting full-data forest")
	}

	return ensemble.PermutationImportance(forest, X, y, pipe.FeatureNames(), cfg.Repeats, cfg.Seed)
}
