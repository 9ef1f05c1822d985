package report

import (
	"math"

	"github.com/volcanolab/volcanoml/dataset"
	"github.com/volcanolab/volcanoml/evaluate"
)

// HexBin is one hexagonal cell of the geographic accuracy map:
// a pointy-top hexagon in lon/lat space with the mean correctness of
// the held-out predictions that fall inside it.
type HexBin struct {
	Q, R     int
	CenterX  float64 // longitude
	CenterY  float64 // latitude
	Count    int
	Accuracy float64
}

// HexBinAccuracy buckets every prediction into hexagonal bins of the
// given size (circumradius, in degrees) and computes mean correctness
// per bin. Each prediction counts once per resample it appears in, so
// well-covered volcanoes weigh more, matching the pooled map.
func HexBinAccuracy(preds []evaluate.Prediction, t *dataset.Table, size float64) []HexBin {
	if size <= 0 {
		size = 4
	}

	type acc struct {
		correct int
		total   int
	}
	type key struct{ q, r int }

	bins := make(map[key]*acc)
	for _, p := range preds {
		rec := t.Records[p.Row]
		q, r := axialRound(rec.Longitude, rec.Latitude, size)
		k := key{q, r}
		if bins[k] == nil {
			bins[k] = &acc{}
		}
		bins[k].total++
		if p.True == p.Predicted {
			bins[k].correct++
		}
	}

	out := make([]HexBin, 0, len(bins))
	for k, a := range bins {
		cx, cy := axialCenter(k.q, k.r, size)
		out = append(out, HexBin{
			Q:        k.q,
			R:        k.r,
			CenterX:  cx,
			CenterY:  cy,
			Count:    a.total,
			Accuracy: float64(a.correct) / float64(a.total),
		})
	}
	return out
}

// axialRound converts a point to the axial coordinates of the pointy-top
// hexagon containing it.
func axialRound(x, y, size float64) (int, int) {
	qf := (math.Sqrt(3)/3*x - y/3) / size
	rf := (2.0 / 3 * y) / size

	// Cube rounding keeps q+r+s == 0.
	sf := -qf - rf
	q := math.Round(qf)
	r := math.Round(rf)
	s := math.Round(sf)

	dq := math.Abs(q - qf)
	dr := math.Abs(r - rf)
	ds := math.Abs(s - sf)

	switch {
	case dq > dr && dq > ds:
		q = -r - s
	case dr > ds:
		r = -q - s
	}
	return int(q), int(r)
}

// axialCenter returns the lon/lat center of a pointy-top hexagon.
func axialCenter(q, r int, size float64) (float64, float64) {
	x := size * math.Sqrt(3) * (float64(q) + float64(r)/2)
	y := size * 3 / 2 * float64(r)
	return x, y
}

// HexVertices returns the six corners of a bin's hexagon for rendering.
func (h HexBin) HexVertices(size float64) ([]float64, []float64) {
	xs := make([]float64, 6)
	ys := make([]float64, 6)
	for i := 0; i < 6; i++ {
		angle := math.Pi/180*(60*float64(i)) - math.Pi/6 // pointy top
		xs[i] = h.CenterX + size*math.Cos(angle)
		ys[i] = h.CenterY + size*math.Sin(angle)
	}
	return xs, ys
}
