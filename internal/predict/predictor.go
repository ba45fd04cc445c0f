package predict

import (
	"errors"
	"fmt"
	"time"

	randomforest "github.com/malaschitz/randomForest"

	"student-analytics/internal/domain"
)

// ErrNotTrained is returned when predicting or saving before Train/Load.
var ErrNotTrained = errors.New("predict: model is not trained")

// Predictor wraps a random forest classifier over the fixed feature schema
// in domain.FeatureColumns.
type Predictor struct {
	forest     *randomforest.Forest
	features   []string
	trainedAt  time.Time
	metrics    Metrics
	importance []Importance
	trained    bool
}

// TrainOptions control training. Zero values fall back to the defaults the
// pipeline uses everywhere (100 trees, 20% held out, seed 42).
type TrainOptions struct {
	Trees        int
	TestFraction float64
	Seed         int64
}

func (o TrainOptions) withDefaults() TrainOptions {
	if o.Trees <= 0 {
		o.Trees = 100
	}
	if o.TestFraction <= 0 || o.TestFraction >= 1 {
		o.TestFraction = 0.2
	}
	if o.Seed == 0 {
		o.Seed = 42
	}
	return o
}

func New() *Predictor {
	return &Predictor{features: domain.FeatureColumns}
}

// Train fits the forest on a stratified train split and evaluates it on the
// held-out split. The labeled dataset must contain both classes.
func (p *Predictor) Train(records []domain.StudentRecord, opts TrainOptions) (Metrics, error) {
	opts = opts.withDefaults()

	var atRisk, healthy int
	for _, r := range records {
		if r.AtRisk {
			atRisk++
		} else {
			healthy++
		}
	}
	if atRisk == 0 || healthy == 0 {
		return Metrics{}, fmt.Errorf("predict: need both classes to train (at_risk=%d, healthy=%d)", atRisk, healthy)
	}

	train, test := stratifiedSplit(records, opts.TestFraction, opts.Seed)
	if len(train) == 0 || len(test) == 0 {
		return Metrics{}, fmt.Errorf("predict: dataset too small to split (%d records)", len(records))
	}

	x := make([][]float64, len(train))
	y := make([]int, len(train))
	for i, r := range train {
		x[i] = r.Features()
		y[i] = boolToClass(r.AtRisk)
	}

	forest := &randomforest.Forest{}
	forest.Data = randomforest.ForestData{X: x, Class: y}
	forest.Train(opts.Trees)

	p.forest = forest
	p.trained = true
	p.trainedAt = time.Now().UTC()

	p.metrics = evaluate(p, test)
	p.metrics.TrainSize = len(train)
	p.metrics.TestSize = len(test)

	p.importance = permutationImportance(p, test, opts.Seed)

	return p.metrics, nil
}

// Predict returns the at-risk classification for one student.
func (p *Predictor) Predict(r domain.StudentRecord) (bool, error) {
	proba, err := p.Proba(r)
	if err != nil {
		return false, err
	}
	return proba > 0.5, nil
}

// Proba returns the at-risk vote share for one student.
func (p *Predictor) Proba(r domain.StudentRecord) (float64, error) {
	if !p.trained {
		return 0, ErrNotTrained
	}
	vote := p.forest.Vote(r.Features())
	if len(vote) < 2 {
		// Forest trained on a single class; the only class it knows is 0.
		return 0, nil
	}
	return vote[1], nil
}

// PredictAll classifies every record.
func (p *Predictor) PredictAll(records []domain.StudentRecord) ([]bool, error) {
	if !p.trained {
		return nil, ErrNotTrained
	}
	out := make([]bool, len(records))
	for i, r := range records {
		pred, err := p.Predict(r)
		if err != nil {
			return nil, err
		}
		out[i] = pred
	}
	return out, nil
}

// Metrics returns the evaluation metrics from the last Train (or the loaded
// artifact).
func (p *Predictor) Metrics() (Metrics, error) {
	if !p.trained {
		return Metrics{}, ErrNotTrained
	}
	return p.metrics, nil
}

// FeatureImportance returns per-feature importance scores, sorted descending.
func (p *Predictor) FeatureImportance() ([]Importance, error) {
	if !p.trained {
		return nil, ErrNotTrained
	}
	out := make([]Importance, len(p.importance))
	copy(out, p.importance)
	return out, nil
}

// TrainedAt returns when the model was fitted.
func (p *Predictor) TrainedAt() (time.Time, error) {
	if !p.trained {
		return time.Time{}, ErrNotTrained
	}
	return p.trainedAt, nil
}

func boolToClass(b bool) int {
	if b {
		return 1
	}
	return 0
}
