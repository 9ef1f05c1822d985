package preprocessing

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/volcanolab/volcanoml/core/model"
	"github.com/volcanolab/volcanoml/dataset"
	"github.com/volcanolab/volcanoml/pkg/errors"
)

// Config holds the tunable pipeline parameters.
type Config struct {
	// RareThreshold is the minimum category frequency (as a fraction of
	// training rows) below which categories collapse into "Other".
	RareThreshold float64

	// SMOTENeighbors is the k of the oversampling neighbor search.
	SMOTENeighbors int

	// Seed drives the oversampling randomness.
	Seed uint64

	// Oversample disables SMOTE entirely when false.
	Oversample bool
}

// DefaultConfig returns the parameters the reference analysis uses.
func DefaultConfig() Config {
	return Config{
		RareThreshold:  0.02,
		SMOTENeighbors: 5,
		Oversample:     true,
	}
}

// categoricalStage pairs the two string-level steps for one column:
// rare-category collapsing followed by one-hot encoding.
type categoricalStage struct {
	name    string
	extract func(dataset.Record) string
	grouper *RareGrouper
	encoder *OneHotEncoder
}

// Pipeline is the ordered preprocessing sequence. Fit learns every
// step's statistics from one resample's training table and applies
// SMOTE to the result; Transform applies the frozen statistics to any
// table and never oversamples. Each resample owns its own Pipeline
// value, so fitted state is never shared.
type Pipeline struct {
	state *model.StateManager
	cfg   Config

	numeric     []string
	categorical []categoricalStage
	steps       []MatrixStep
	sampler     *SMOTE

	featureNames []string
}

// NewPipeline creates an unfitted pipeline over the volcano modeling
// columns: latitude, longitude, elevation, tectonic setting, major rock.
func NewPipeline(cfg Config) *Pipeline {
	if cfg.RareThreshold <= 0 {
		cfg.RareThreshold = 0.02
	}
	if cfg.SMOTENeighbors < 1 {
		cfg.SMOTENeighbors = 5
	}

	p := &Pipeline{
		state:   model.NewStateManager(),
		cfg:     cfg,
		numeric: []string{"latitude", "longitude", "elevation"},
		categorical: []categoricalStage{
			{
				name:    "tectonic_setting",
				extract: func(r dataset.Record) string { return r.TectonicSetting },
				grouper: NewRareGrouper(cfg.RareThreshold),
				encoder: NewOneHotEncoder(),
			},
			{
				name:    "major_rock",
				extract: func(r dataset.Record) string { return r.MajorRock },
				grouper: NewRareGrouper(cfg.RareThreshold),
				encoder: NewOneHotEncoder(),
			},
		},
		steps: []MatrixStep{
			NewVarianceFilter(),
			NewStandardScaler(),
		},
	}
	if cfg.Oversample {
		p.sampler = NewSMOTE(cfg.SMOTENeighbors, cfg.Seed)
	}
	return p
}

// Fit learns all step statistics from the training table, transforms
// it, and applies SMOTE. It returns the oversampled feature matrix and
// the matching n×1 label matrix.
func (p *Pipeline) Fit(t *dataset.Table) (*mat.Dense, *mat.Dense, error) {
	if t.Len() == 0 {
		return nil, nil, errors.Wrap(errors.ErrEmptyData, "Pipeline.Fit")
	}

	// Stage 1-2: collapse rare categories and fix the indicator layout.
	for i := range p.categorical {
		stage := &p.categorical[i]
		values := columnValues(t, stage.extract)
		if err := stage.grouper.Fit(values); err != nil {
			return nil, nil, err
		}
		collapsed, err := stage.grouper.Transform(values)
		if err != nil {
			return nil, nil, err
		}
		if err := stage.encoder.Fit(collapsed); err != nil {
			return nil, nil, err
		}
	}

	X, names, err := p.encode(t)
	if err != nil {
		return nil, nil, err
	}

	// Stage 3-4: fit and apply the matrix steps in order.
	var Xt mat.Matrix = X
	for _, step := range p.steps {
		if err := step.Fit(Xt); err != nil {
			return nil, nil, errors.Wrapf(err, "fitting step %q", step.Name())
		}
		Xt, err = step.Transform(Xt)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "applying step %q", step.Name())
		}

		if filter, ok := step.(*VarianceFilter); ok {
			kept := make([]string, 0, len(filter.Support()))
			for _, j := range filter.Support() {
				kept = append(kept, names[j])
			}
			names = kept
		}
	}
	p.featureNames = names

	labels := make([]int, t.Len())
	for i, class := range t.Labels() {
		labels[i] = int(class)
	}

	dense := mat.DenseCopyOf(Xt)

	// Stage 5: oversampling, training data only.
	if p.sampler != nil {
		dense, labels, err = p.sampler.Oversample(dense, labels, func(c int) string {
			return dataset.Class(c).String()
		})
		if err != nil {
			return nil, nil, err
		}
	}

	p.state.SetFitted()
	nFeatures := len(names)
	p.state.SetDimensions(nFeatures, t.Len())

	y := mat.NewDense(len(labels), 1, nil)
	for i, label := range labels {
		y.Set(i, 0, float64(label))
	}
	return dense, y, nil
}

// Transform applies the fitted steps to any table. Oversampling is
// never applied here; transforming the same table twice yields
// identical output.
func (p *Pipeline) Transform(t *dataset.Table) (*mat.Dense, *mat.Dense, error) {
	if !p.state.IsFitted() {
		return nil, nil, errors.NewNotFittedError("Pipeline", "Transform")
	}
	if t.Len() == 0 {
		return nil, nil, errors.Wrap(errors.ErrEmptyData, "Pipeline.Transform")
	}

	X, _, err := p.encode(t)
	if err != nil {
		return nil, nil, err
	}

	var Xt mat.Matrix = X
	for _, step := range p.steps {
		Xt, err = step.Transform(Xt)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "applying step %q", step.Name())
		}
	}

	return mat.DenseCopyOf(Xt), t.LabelMatrix(), nil
}

// FeatureNames returns the encoded feature names after zero-variance
// filtering, in column order. Only valid after Fit.
func (p *Pipeline) FeatureNames() []string {
	return p.featureNames
}

// encode builds the raw numeric matrix: the numeric columns followed by
// the indicator columns of each fitted categorical stage.
func (p *Pipeline) encode(t *dataset.Table) (*mat.Dense, []string, error) {
	n := t.Len()

	blocks := make([]*mat.Dense, 0, 1+len(p.categorical))
	names := make([]string, 0, 8)

	numeric := mat.NewDense(n, len(p.numeric), nil)
	for i, rec := range t.Records {
		numeric.Set(i, 0, rec.Latitude)
		numeric.Set(i, 1, rec.Longitude)
		numeric.Set(i, 2, rec.Elevation)
	}
	blocks = append(blocks, numeric)
	names = append(names, p.numeric...)

	for i := range p.categorical {
		stage := &p.categorical[i]
		collapsed, err := stage.grouper.Transform(columnValues(t, stage.extract))
		if err != nil {
			return nil, nil, err
		}
		indicators, err := stage.encoder.Transform(collapsed)
		if err != nil {
			return nil, nil, err
		}
		blocks = append(blocks, indicators)
		for _, cat := range stage.encoder.Categories() {
			names = append(names, fmt.Sprintf("%s_%s", stage.name, cat))
		}
	}

	total := 0
	for _, b := range blocks {
		_, c := b.Dims()
		total += c
	}

	X := mat.NewDense(n, total, nil)
	col := 0
	for _, b := range blocks {
		_, c := b.Dims()
		for j := 0; j < c; j++ {
			for i := 0; i < n; i++ {
				X.Set(i, col, b.At(i, j))
			}
			col++
		}
	}
	return X, names, nil
}

func columnValues(t *dataset.Table, extract func(dataset.Record) string) []string {
	values := make([]string, t.Len())
	for i, rec := range t.Records {
		values[i] = extract(rec)
	}
	return values
}
