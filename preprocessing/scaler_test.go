package preprocessing

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestStandardScaler(t *testing.T) {
	X := mat.NewDense(4, 2, []float64{
		0, 100,
		2, 200,
		4, 300,
		6, 400,
	})

	s := NewStandardScaler()
	if err := s.Fit(X); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	out, err := s.Transform(X)
	if err != nil {
		t.Fatalf("Transform failed: %v", err)
	}

	// Each column of the training data standardizes to zero mean and
	// unit variance.
	r, c := out.Dims()
	for j := 0; j < c; j++ {
		mean, variance := 0.0, 0.0
		for i := 0; i < r; i++ {
			mean += out.At(i, j)
		}
		mean /= float64(r)
		for i := 0; i < r; i++ {
			d := out.At(i, j) - mean
			variance += d * d
		}
		variance /= float64(r)

		if math.Abs(mean) > 1e-10 {
			t.Errorf("column %d mean = %v, want 0", j, mean)
		}
		if math.Abs(variance-1) > 1e-10 {
			t.Errorf("column %d variance = %v, want 1", j, variance)
		}
	}
}

func TestStandardScalerFrozenStatistics(t *testing.T) {
	train := mat.NewDense(3, 1, []float64{0, 5, 10})
	s := NewStandardScaler()
	if err := s.Fit(train); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	// Held-out data standardizes with the training statistics, not its
	// own: the training mean (5) maps to zero wherever it appears.
	held := mat.NewDense(2, 1, []float64{5, 15})
	out, err := s.Transform(held)
	if err != nil {
		t.Fatalf("Transform failed: %v", err)
	}
	if math.Abs(out.At(0, 0)) > 1e-10 {
		t.Errorf("training mean should map to 0, got %v", out.At(0, 0))
	}
	if out.At(1, 0) <= 0 {
		t.Errorf("value above the training mean should map positive, got %v", out.At(1, 0))
	}

	// Transforming twice is idempotent on the scaler state.
	again, err := s.Transform(held)
	if err != nil {
		t.Fatalf("second Transform failed: %v", err)
	}
	if !mat.EqualApprox(out, again, 1e-12) {
		t.Error("repeated Transform produced different output")
	}
}

func TestStandardScalerConstantColumn(t *testing.T) {
	X := mat.NewDense(3, 1, []float64{7, 7, 7})
	s := NewStandardScaler()
	if err := s.Fit(X); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	out, err := s.Transform(X)
	if err != nil {
		t.Fatalf("Transform failed: %v", err)
	}
	for i := 0; i < 3; i++ {
		if v := out.At(i, 0); math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("constant column produced %v", v)
		}
	}
}

func TestStandardScalerNotFitted(t *testing.T) {
	if _, err := NewStandardScaler().Transform(mat.NewDense(1, 1, nil)); err == nil {
		t.Error("expected not-fitted error")
	}
}
