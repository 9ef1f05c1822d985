package report

import (
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/volcanolab/volcanoml/dataset"
	"github.com/volcanolab/volcanoml/ensemble"
	"github.com/volcanolab/volcanoml/evaluate"
	"github.com/volcanolab/volcanoml/pkg/errors"
)

var classColors = []color.RGBA{
	{R: 0xd9, G: 0x5f, B: 0x02, A: 0xff}, // Stratovolcano
	{R: 0x1b, G: 0x9e, B: 0x77, A: 0xff}, // Shield
	{R: 0x75, G: 0x70, B: 0xb3, A: 0xff}, // Other
}

// SaveImportancePlot renders the permutation-importance ranking as a
// horizontal bar chart, most important feature on top.
func SaveImportancePlot(imps []ensemble.Importance, path string) error {
	if len(imps) == 0 {
		return errors.NewValueError("SaveImportancePlot", "no importance scores")
	}

	p := plot.New()
	p.Title.Text = "Permutation importance"
	p.X.Label.Text = "mean accuracy drop"

	// Reverse so the top-ranked feature renders at the top.
	values := make(plotter.Values, len(imps))
	names := make([]string, len(imps))
	for i, imp := range imps {
		j := len(imps) - 1 - i
		values[j] = imp.Score
		names[j] = imp.Feature
	}

	bars, err := plotter.NewBarChart(values, vg.Points(12))
	if err != nil {
		return errors.Wrap(err, "building importance bars")
	}
	bars.Horizontal = true
	bars.Color = classColors[2]
	bars.LineStyle.Width = 0

	p.Add(bars)
	p.NominalY(names...)

	return errors.Wrap(p.Save(16*vg.Centimeter, 12*vg.Centimeter, path), "saving importance plot")
}

// SaveClassMap renders every volcano as a point at its coordinates,
// colored by derived class.
func SaveClassMap(t *dataset.Table, path string) error {
	if t.Len() == 0 {
		return errors.Wrap(errors.ErrEmptyData, "SaveClassMap")
	}

	p := plot.New()
	p.Title.Text = "Volcanoes by type"
	p.X.Label.Text = "longitude"
	p.Y.Label.Text = "latitude"
	p.X.Min, p.X.Max = -180, 180
	p.Y.Min, p.Y.Max = -90, 90

	for c := 0; c < dataset.NumClasses; c++ {
		var xys plotter.XYs
		for _, rec := range t.Records {
			if int(rec.Type) != c {
				continue
			}
			xys = append(xys, plotter.XY{X: rec.Longitude, Y: rec.Latitude})
		}
		if len(xys) == 0 {
			continue
		}

		scatter, err := plotter.NewScatter(xys)
		if err != nil {
			return errors.Wrap(err, "building class scatter")
		}
		scatter.GlyphStyle.Color = classColors[c]
		scatter.GlyphStyle.Radius = vg.Points(1.5)

		p.Add(scatter)
		p.Legend.Add(dataset.Class(c).String(), scatter)
	}
	p.Legend.Top = true

	return errors.Wrap(p.Save(24*vg.Centimeter, 12*vg.Centimeter, path), "saving class map")
}

// SaveAccuracyHexMap renders the hex-binned mean correctness of the
// pooled held-out predictions as filled hexagons over the coordinate
// plane. Low-accuracy bins are dark, high-accuracy bins bright.
func SaveAccuracyHexMap(preds []evaluate.Prediction, t *dataset.Table, size float64, path string) error {
	bins := HexBinAccuracy(preds, t, size)
	if len(bins) == 0 {
		return errors.NewValueError("SaveAccuracyHexMap", "no predictions to bin")
	}

	p := plot.New()
	p.Title.Text = "Held-out accuracy by region"
	p.X.Label.Text = "longitude"
	p.Y.Label.Text = "latitude"
	p.X.Min, p.X.Max = -180, 180
	p.Y.Min, p.Y.Max = -90, 90

	for _, bin := range bins {
		xs, ys := bin.HexVertices(size)
		xys := make(plotter.XYs, len(xs))
		for i := range xs {
			xys[i] = plotter.XY{X: xs[i], Y: ys[i]}
		}

		poly, err := plotter.NewPolygon(xys)
		if err != nil {
			return errors.Wrap(err, "building hex polygon")
		}
		poly.Color = accuracyColor(bin.Accuracy)
		poly.LineStyle.Width = 0
		p.Add(poly)
	}

	return errors.Wrap(p.Save(24*vg.Centimeter, 12*vg.Centimeter, path), "saving accuracy hex map")
}

// accuracyColor maps [0,1] onto a dark-purple to yellow ramp.
func accuracyColor(a float64) color.RGBA {
	if a < 0 {
		a = 0
	}
	if a > 1 {
		a = 1
	}
	return color.RGBA{
		R: uint8(60 + 190*a),
		G: uint8(10 + 210*a),
		B: uint8(90 * (1 - a)),
		A: 0xff,
	}
}
