package metrics

import (
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestConfusionMatrix(t *testing.T) {
	cm := NewConfusionMatrix([]string{"Stratovolcano", "Shield", "Other"})

	if err := cm.Add(0, 0); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := cm.Add(0, 1); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := cm.Add(2, 2); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	if cm.At(0, 0) != 1 || cm.At(0, 1) != 1 || cm.At(2, 2) != 1 {
		t.Error("unexpected cell counts")
	}
	if cm.At(1, 1) != 0 {
		t.Error("untouched cell should be 0")
	}
	if cm.Total() != 3 {
		t.Errorf("Total() = %d, want 3", cm.Total())
	}
}

func TestConfusionMatrixAddBatch(t *testing.T) {
	cm := NewConfusionMatrix([]string{"a", "b"})

	yTrue := mat.NewDense(4, 1, []float64{0, 0, 1, 1})
	yPred := mat.NewDense(4, 1, []float64{0, 1, 1, 1})
	if err := cm.AddBatch(yTrue, yPred); err != nil {
		t.Fatalf("AddBatch failed: %v", err)
	}

	// Cell total equals the observations recorded.
	sum := 0
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			sum += cm.At(i, j)
		}
	}
	if sum != 4 || cm.Total() != 4 {
		t.Errorf("cells sum to %d, Total() = %d, want 4", sum, cm.Total())
	}
	if cm.At(0, 1) != 1 || cm.At(1, 1) != 2 {
		t.Error("unexpected batch counts")
	}
}

func TestConfusionMatrixOutOfRange(t *testing.T) {
	cm := NewConfusionMatrix([]string{"a", "b"})
	if err := cm.Add(0, 2); err == nil {
		t.Error("expected error for out-of-range class")
	}
	if err := cm.Add(-1, 0); err == nil {
		t.Error("expected error for negative class")
	}
}
