package evaluate

import (
	"context"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/volcanolab/volcanoml/core/model"
	"github.com/volcanolab/volcanoml/core/parallel"
	"github.com/volcanolab/volcanoml/dataset"
	"github.com/volcanolab/volcanoml/metrics"
	"github.com/volcanolab/volcanoml/pkg/errors"
	"github.com/volcanolab/volcanoml/pkg/log"
	"github.com/volcanolab/volcanoml/preprocessing"
	"github.com/volcanolab/volcanoml/resample"
)

// Runner drives the per-resample fits. The factories are called once
// per fold so every fold owns fresh, never-shared fit state.
type Runner struct {
	Splitter      *resample.Bootstrap
	NewPipeline   func(foldID int) *preprocessing.Pipeline
	NewClassifier func(foldID int) model.Classifier
	Logger        log.Logger
}

// NewRunner wires a runner. A nil logger is replaced with a no-op.
func NewRunner(splitter *resample.Bootstrap, newPipeline func(int) *preprocessing.Pipeline, newClassifier func(int) model.Classifier, logger log.Logger) *Runner {
	if logger == nil {
		logger = log.NopLogger{}
	}
	return &Runner{
		Splitter:      splitter,
		NewPipeline:   newPipeline,
		NewClassifier: newClassifier,
		Logger:        logger,
	}
}

// Run evaluates every bootstrap resample of the table. Fold failures
// are recorded on their FoldScore and excluded from aggregation; only
// setup errors (an empty table) fail the run itself. Cancelling the
// context stops unstarted folds, which are then marked with the
// context's error.
func (r *Runner) Run(ctx context.Context, t *dataset.Table) (*Result, error) {
	folds, err := r.Splitter.Split(t.Len())
	if err != nil {
		return nil, err
	}

	scores := make([]FoldScore, len(folds))
	perFold := make([][]Prediction, len(folds))

	parallel.ForEach(len(folds), func(i int) {
		if err := ctx.Err(); err != nil {
			scores[i] = FoldScore{ID: folds[i].ID, Err: err}
			return
		}
		scores[i], perFold[i] = r.runFold(t, folds[i])
	})

	result := &Result{Folds: scores}
	for _, preds := range perFold {
		result.Predictions = append(result.Predictions, preds...)
	}
	return result, nil
}

// runFold fits pipeline and model on one resample's training portion
// and evaluates on its complement.
func (r *Runner) runFold(t *dataset.Table, fold resample.Resample) (FoldScore, []Prediction) {
	start := time.Now()
	score := FoldScore{ID: fold.ID, HeldOut: len(fold.HeldOut)}

	fail := func(err error) (FoldScore, []Prediction) {
		score.Err = err
		r.Logger.Warn("fold excluded",
			log.ResampleKey, fold.ID,
			"error", err,
		)
		return score, nil
	}

	if len(fold.HeldOut) == 0 {
		return fail(errors.NewValueError("fold", "empty held-out set"))
	}

	train := t.Select(fold.TrainIndices)
	held := t.Select(fold.HeldOut)

	pipe := r.NewPipeline(fold.ID)
	Xtrain, ytrain, err := pipe.Fit(train)
	if err != nil {
		return fail(err)
	}

	clf := r.NewClassifier(fold.ID)
	if err := clf.Fit(Xtrain, ytrain); err != nil {
		return fail(err)
	}

	Xheld, yheld, err := pipe.Transform(held)
	if err != nil {
		return fail(err)
	}

	pred, err := clf.Predict(Xheld)
	if err != nil {
		return fail(err)
	}
	proba, err := clf.PredictProba(Xheld)
	if err != nil {
		return fail(err)
	}

	score.Accuracy, err = metrics.Accuracy(yheld, pred)
	if err != nil {
		return fail(err)
	}
	score.AUC, err = metrics.OneVsRestAUC(yheld, proba)
	if err != nil {
		return fail(err)
	}

	_, k := proba.Dims()
	predictions := make([]Prediction, len(fold.HeldOut))
	for i, rowIdx := range fold.HeldOut {
		p := make([]float64, k)
		mat.Row(p, i, proba)
		predictions[i] = Prediction{
			ResampleID: fold.ID,
			Row:        rowIdx,
			Number:     t.Records[rowIdx].Number,
			True:       t.Records[rowIdx].Type,
			Predicted:  dataset.Class(int(pred.At(i, 0))),
			Proba:      p,
		}
	}

	r.Logger.Info("fold evaluated",
		log.ResampleKey, fold.ID,
		log.HeldOutKey, len(fold.HeldOut),
		log.AccuracyKey, score.Accuracy,
		log.AUCKey, score.AUC,
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return score, predictions
}
