package ensemble

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/volcanolab/volcanoml/pkg/errors"
)

// threeClusters builds well-separated three-class data.
func threeClusters() (*mat.Dense, *mat.Dense) {
	n := 30
	X := mat.NewDense(n, 2, nil)
	y := mat.NewDense(n, 1, nil)
	for i := 0; i < n; i++ {
		class := i / 10
		jitterA := float64(i%10) * 0.05
		jitterB := float64((i*7)%10) * 0.05
		X.Set(i, 0, float64(class)*10+jitterA)
		X.Set(i, 1, float64(class)*10+jitterB)
		y.Set(i, 0, float64(class))
	}
	return X, y
}

func TestRandomForestFitPredict(t *testing.T) {
	X, y := threeClusters()

	rf := NewRandomForest(WithTrees(30), WithMaxDepth(10), WithSeed(42))
	if err := rf.Fit(X, y); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	if classes := rf.Classes(); len(classes) != 3 {
		t.Fatalf("Classes() = %v, want 3 classes", classes)
	}

	pred, err := rf.Predict(X)
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}
	n, _ := X.Dims()
	for i := 0; i < n; i++ {
		if pred.At(i, 0) != y.At(i, 0) {
			t.Errorf("sample %d: predicted %v, want %v", i, pred.At(i, 0), y.At(i, 0))
		}
	}

	// Fresh points deep inside each cluster.
	XTest := mat.NewDense(3, 2, []float64{
		0.2, 0.2,
		10.2, 10.2,
		20.2, 20.2,
	})
	pred, err = rf.Predict(XTest)
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}
	for i := 0; i < 3; i++ {
		if pred.At(i, 0) != float64(i) {
			t.Errorf("test point %d: predicted %v, want %d", i, pred.At(i, 0), i)
		}
	}
}

func TestRandomForestProbaRowsSumToOne(t *testing.T) {
	X, y := threeClusters()

	rf := NewRandomForest(WithTrees(20), WithSeed(1))
	if err := rf.Fit(X, y); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	proba, err := rf.PredictProba(X)
	if err != nil {
		t.Fatalf("PredictProba failed: %v", err)
	}

	n, k := proba.Dims()
	if k != 3 {
		t.Fatalf("proba has %d columns, want 3", k)
	}
	for i := 0; i < n; i++ {
		sum := 0.0
		for c := 0; c < k; c++ {
			p := proba.At(i, c)
			if p < 0 || p > 1 {
				t.Fatalf("probability %v at [%d,%d] outside [0,1]", p, i, c)
			}
			sum += p
		}
		if math.Abs(sum-1) > 1e-9 {
			t.Errorf("row %d sums to %v", i, sum)
		}
	}
}

func TestRandomForestSeededDeterminism(t *testing.T) {
	X, y := threeClusters()

	fit := func() mat.Matrix {
		rf := NewRandomForest(WithTrees(15), WithSeed(1234))
		if err := rf.Fit(X, y); err != nil {
			t.Fatalf("Fit failed: %v", err)
		}
		proba, err := rf.PredictProba(X)
		if err != nil {
			t.Fatalf("PredictProba failed: %v", err)
		}
		return proba
	}

	// Trees are trained in parallel, but each derives its generator from
	// the seed and its index, so scheduling cannot change the result.
	if !mat.EqualApprox(fit(), fit(), 1e-12) {
		t.Error("identically seeded fits produced different probabilities")
	}
}

func TestRandomForestNotFitted(t *testing.T) {
	rf := NewRandomForest()
	_, err := rf.Predict(mat.NewDense(1, 2, nil))
	if err == nil {
		t.Fatal("expected not-fitted error")
	}
	var notFitted *errors.NotFittedError
	if !errors.As(err, &notFitted) {
		t.Errorf("expected NotFittedError, got %T", err)
	}
}

func TestRandomForestDimensionMismatch(t *testing.T) {
	X, y := threeClusters()
	rf := NewRandomForest(WithTrees(5), WithSeed(3))
	if err := rf.Fit(X, y); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	if _, err := rf.Predict(mat.NewDense(2, 5, nil)); err == nil {
		t.Error("expected dimension error for wrong feature count")
	}

	if err := rf.Fit(X, mat.NewDense(5, 1, nil)); err == nil {
		t.Error("expected dimension error for mismatched labels")
	}
}
