package resample

import (
	"testing"
)

func TestSplitShape(t *testing.T) {
	const n = 100
	b := NewBootstrap(10, 42)

	resamples, err := b.Split(n)
	if err != nil {
		t.Fatalf("Split failed: %v", err)
	}
	if len(resamples) != 10 {
		t.Fatalf("expected 10 resamples, got %d", len(resamples))
	}

	for _, rs := range resamples {
		if len(rs.TrainIndices) != n {
			t.Errorf("resample %d: training multiset has %d rows, want %d", rs.ID, len(rs.TrainIndices), n)
		}

		drawn := make(map[int]bool, n)
		for _, idx := range rs.TrainIndices {
			if idx < 0 || idx >= n {
				t.Fatalf("resample %d: index %d out of range", rs.ID, idx)
			}
			drawn[idx] = true
		}

		// Held-out is exactly the never-drawn complement, ascending.
		prev := -1
		for _, idx := range rs.HeldOut {
			if drawn[idx] {
				t.Errorf("resample %d: held-out index %d also appears in training", rs.ID, idx)
			}
			if idx <= prev {
				t.Errorf("resample %d: held-out not ascending at %d", rs.ID, idx)
			}
			prev = idx
		}
		if len(drawn)+len(rs.HeldOut) != n {
			t.Errorf("resample %d: %d distinct drawn + %d held out != %d", rs.ID, len(drawn), len(rs.HeldOut), n)
		}
	}
}

func TestSplitHeldOutFraction(t *testing.T) {
	// With replacement at full size, about 1/e of rows are never drawn.
	const n = 5000
	b := NewBootstrap(20, 7)

	resamples, err := b.Split(n)
	if err != nil {
		t.Fatalf("Split failed: %v", err)
	}

	total := 0
	for _, rs := range resamples {
		total += len(rs.HeldOut)
	}
	fraction := float64(total) / float64(n*len(resamples))
	if fraction < 0.34 || fraction > 0.40 {
		t.Errorf("held-out fraction %.4f outside [0.34, 0.40]", fraction)
	}
}

func TestSplitDeterministic(t *testing.T) {
	a, err := NewBootstrap(5, 123).Split(50)
	if err != nil {
		t.Fatalf("Split failed: %v", err)
	}
	b, err := NewBootstrap(5, 123).Split(50)
	if err != nil {
		t.Fatalf("Split failed: %v", err)
	}

	for i := range a {
		for j := range a[i].TrainIndices {
			if a[i].TrainIndices[j] != b[i].TrainIndices[j] {
				t.Fatalf("resample %d differs between identically seeded splitters", i)
			}
		}
	}

	c, err := NewBootstrap(5, 124).Split(50)
	if err != nil {
		t.Fatalf("Split failed: %v", err)
	}
	same := true
	for i := range a {
		for j := range a[i].TrainIndices {
			if a[i].TrainIndices[j] != c[i].TrainIndices[j] {
				same = false
			}
		}
	}
	if same {
		t.Error("different seeds produced identical resamples")
	}
}

func TestSplitEmpty(t *testing.T) {
	if _, err := NewBootstrap(5, 0).Split(0); err == nil {
		t.Error("expected error for empty record set")
	}
}

func TestNewBootstrapDefaultsCount(t *testing.T) {
	if b := NewBootstrap(0, 0); b.Count != 25 {
		t.Errorf("expected default count 25, got %d", b.Count)
	}
}
