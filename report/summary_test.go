package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/volcanolab/volcanoml/dataset"
	"github.com/volcanolab/volcanoml/ensemble"
	"github.com/volcanolab/volcanoml/evaluate"
	"github.com/volcanolab/volcanoml/pkg/errors"
	"github.com/volcanolab/volcanoml/preprocessing"
)

func TestSummarize(t *testing.T) {
	res := &evaluate.Result{Folds: []evaluate.FoldScore{
		{ID: 0, Accuracy: 0.8, AUC: 0.9},
		{ID: 1, Accuracy: 0.6, AUC: 0.7},
		{ID: 2, Err: errors.New("excluded")},
	}}

	summaries := Summarize(res)
	require.Len(t, summaries, 2)

	acc := summaries[0]
	assert.Equal(t, "accuracy", acc.Name)
	assert.Equal(t, 2, acc.N, "failed folds are excluded from aggregation")
	assert.InDelta(t, 0.7, acc.Mean, 1e-10)
	// Sample standard deviation 0.1414 over sqrt(2).
	assert.InDelta(t, 0.1, acc.StdErr, 1e-10)

	auc := summaries[1]
	assert.Equal(t, "roc_auc", auc.Name)
	assert.InDelta(t, 0.8, auc.Mean, 1e-10)
}

func TestSummarizeAllFailed(t *testing.T) {
	res := &evaluate.Result{Folds: []evaluate.FoldScore{
		{ID: 0, Err: errors.New("excluded")},
	}}

	summaries := Summarize(res)
	for _, s := range summaries {
		assert.Equal(t, 0, s.N)
		assert.Zero(t, s.Mean)
	}
}

func TestPooledConfusion(t *testing.T) {
	res := &evaluate.Result{Predictions: []evaluate.Prediction{
		{ResampleID: 0, True: dataset.Stratovolcano, Predicted: dataset.Stratovolcano},
		{ResampleID: 0, True: dataset.Stratovolcano, Predicted: dataset.Other},
		{ResampleID: 1, True: dataset.Shield, Predicted: dataset.Shield},
		{ResampleID: 1, True: dataset.Stratovolcano, Predicted: dataset.Stratovolcano},
	}}

	cm, err := PooledConfusion(res)
	require.NoError(t, err)

	assert.Equal(t, 4, cm.Total(), "total equals pooled prediction count")
	assert.Equal(t, 2, cm.At(int(dataset.Stratovolcano), int(dataset.Stratovolcano)))
	assert.Equal(t, 1, cm.At(int(dataset.Stratovolcano), int(dataset.Other)))
	assert.Equal(t, 1, cm.At(int(dataset.Shield), int(dataset.Shield)))
}

func TestPrecisionByFold(t *testing.T) {
	errors.SetWarningHandler(func(error) {})
	defer errors.SetWarningHandler(func(error) {})

	res := &evaluate.Result{Predictions: []evaluate.Prediction{
		// Fold 0: two stratovolcano predictions, one correct.
		{ResampleID: 0, True: dataset.Stratovolcano, Predicted: dataset.Stratovolcano},
		{ResampleID: 0, True: dataset.Shield, Predicted: dataset.Stratovolcano},
		// Fold 1: everything predicted correctly.
		{ResampleID: 1, True: dataset.Shield, Predicted: dataset.Shield},
		{ResampleID: 1, True: dataset.Other, Predicted: dataset.Other},
	}}

	rows, err := PrecisionByFold(res)
	require.NoError(t, err)
	require.Len(t, rows, 2*dataset.NumClasses)

	byKey := make(map[int]map[string]float64)
	for _, r := range rows {
		if byKey[r.ResampleID] == nil {
			byKey[r.ResampleID] = make(map[string]float64)
		}
		byKey[r.ResampleID][r.Class] = r.Precision
	}

	assert.InDelta(t, 0.5, byKey[0]["Stratovolcano"], 1e-10)
	assert.Zero(t, byKey[0]["Shield"], "never-predicted class scores 0")
	assert.InDelta(t, 1.0, byKey[1]["Shield"], 1e-10)
	assert.InDelta(t, 1.0, byKey[1]["Other"], 1e-10)
}

func reportTable() *dataset.Table {
	var records []dataset.Record
	add := func(n int, class dataset.Class, lat, lon float64, tectonic, rock string) {
		for i := 0; i < n; i++ {
			records = append(records, dataset.Record{
				Number:          len(records) + 1,
				Latitude:        lat + float64(i)*0.4,
				Longitude:       lon + float64(i)*0.5,
				Elevation:       900 + lat*8 + float64(i)*15,
				TectonicSetting: tectonic,
				MajorRock:       rock,
				Type:            class,
			})
		}
	}
	add(10, dataset.Stratovolcano, 40, 140, "Subduction zone", "Andesite")
	add(10, dataset.Shield, -25, -70, "Intraplate", "Basalt")
	add(10, dataset.Other, 5, 30, "Rift zone", "Basalt")
	return &dataset.Table{Records: records}
}

func TestRankImportance(t *testing.T) {
	imps, err := RankImportance(reportTable(), ImportanceConfig{
		Pipeline: preprocessing.Config{
			RareThreshold:  0.01,
			SMOTENeighbors: 2,
			Seed:           5,
			Oversample:     true,
		},
		Options: []ensemble.Option{
			ensemble.WithTrees(20),
			ensemble.WithMaxDepth(10),
			ensemble.WithSeed(5),
		},
		Repeats: 3,
		Seed:    5,
	})
	require.NoError(t, err)
	require.NotEmpty(t, imps)

	for i := 1; i < len(imps); i++ {
		assert.GreaterOrEqual(t, imps[i-1].Score, imps[i].Score, "ranking must be descending")
	}

	names := make(map[string]bool)
	for _, imp := range imps {
		names[imp.Feature] = true
	}
	assert.True(t, names["latitude"], "numeric predictors appear in the ranking: %v", imps)
}
