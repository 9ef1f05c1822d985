package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/volcanolab/volcanoml/dataset"
	"github.com/volcanolab/volcanoml/ensemble"
	"github.com/volcanolab/volcanoml/evaluate"
)

func assertPNGWritten(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestSaveImportancePlot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "importance.png")
	err := SaveImportancePlot([]ensemble.Importance{
		{Feature: "latitude", Score: 0.2},
		{Feature: "tectonic_setting_Intraplate", Score: 0.1},
		{Feature: "elevation", Score: 0.02},
	}, path)
	require.NoError(t, err)
	assertPNGWritten(t, path)
}

func TestSaveImportancePlotEmpty(t *testing.T) {
	err := SaveImportancePlot(nil, filepath.Join(t.TempDir(), "importance.png"))
	require.Error(t, err)
}

func TestSaveClassMap(t *testing.T) {
	path := filepath.Join(t.TempDir(), "class_map.png")
	require.NoError(t, SaveClassMap(reportTable(), path))
	assertPNGWritten(t, path)
}

func TestSaveClassMapEmpty(t *testing.T) {
	err := SaveClassMap(&dataset.Table{}, filepath.Join(t.TempDir(), "class_map.png"))
	require.Error(t, err)
}

func TestSaveAccuracyHexMap(t *testing.T) {
	table := reportTable()
	preds := []evaluate.Prediction{
		{ResampleID: 0, Row: 0, True: dataset.Stratovolcano, Predicted: dataset.Stratovolcano},
		{ResampleID: 0, Row: 12, True: dataset.Shield, Predicted: dataset.Other},
		{ResampleID: 1, Row: 25, True: dataset.Other, Predicted: dataset.Other},
	}

	path := filepath.Join(t.TempDir(), "accuracy_hex.png")
	require.NoError(t, SaveAccuracyHexMap(preds, table, 4, path))
	assertPNGWritten(t, path)
}

func TestSaveAccuracyHexMapNoPredictions(t *testing.T) {
	err := SaveAccuracyHexMap(nil, reportTable(), 4, filepath.Join(t.TempDir(), "hex.png"))
	require.Error(t, err)
}
