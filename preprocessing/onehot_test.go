package preprocessing

import (
	"testing"
)

func TestOneHotEncoder(t *testing.T) {
	e := NewOneHotEncoder()
	if err := e.Fit([]string{"Rift", "Subduction", "Rift", "Intraplate"}); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	// Categories are fixed alphabetically at fit time.
	cats := e.Categories()
	want := []string{"Intraplate", "Rift", "Subduction"}
	if len(cats) != len(want) {
		t.Fatalf("expected %d categories, got %d", len(want), len(cats))
	}
	for i, c := range cats {
		if c != want[i] {
			t.Errorf("Categories()[%d] = %q, want %q", i, c, want[i])
		}
	}

	out, err := e.Transform([]string{"Subduction", "Intraplate"})
	if err != nil {
		t.Fatalf("Transform failed: %v", err)
	}

	r, c := out.Dims()
	if r != 2 || c != 3 {
		t.Fatalf("dims = %dx%d, want 2x3", r, c)
	}
	wantRows := [][]float64{
		{0, 0, 1},
		{1, 0, 0},
	}
	for i := range wantRows {
		for j := range wantRows[i] {
			if out.At(i, j) != wantRows[i][j] {
				t.Errorf("out[%d,%d] = %v, want %v", i, j, out.At(i, j), wantRows[i][j])
			}
		}
	}
}

func TestOneHotEncoderUnseenValue(t *testing.T) {
	e := NewOneHotEncoder()
	if err := e.Fit([]string{"A", "B"}); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	out, err := e.Transform([]string{"Z"})
	if err != nil {
		t.Fatalf("Transform failed: %v", err)
	}

	// Unseen values contribute an all-zero row.
	for j := 0; j < 2; j++ {
		if out.At(0, j) != 0 {
			t.Errorf("expected all-zero row, got %v at column %d", out.At(0, j), j)
		}
	}
}

func TestOneHotEncoderNotFitted(t *testing.T) {
	if _, err := NewOneHotEncoder().Transform([]string{"A"}); err == nil {
		t.Error("expected not-fitted error")
	}
}
