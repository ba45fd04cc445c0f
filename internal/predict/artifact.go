package predict

import (
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	randomforest "github.com/malaschitz/randomForest"

	"student-analytics/internal/domain"
)

// artifact is the on-disk model format. The feature schema travels with the
// forest so a stale model cannot silently be applied to reordered columns.
type artifact struct {
	Forest     randomforest.Forest
	Features   []string
	TrainedAt  time.Time
	Metrics    Metrics
	Importance []Importance
}

// Save writes the trained model to path.
func (p *Predictor) Save(path string) error {
	if !p.trained {
		return ErrNotTrained
	}

	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("predict: mkdir %s: %w", dir, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("predict: create %s: %w", path, err)
	}
	defer f.Close()

	art := artifact{
		Forest:     *p.forest,
		Features:   p.features,
		TrainedAt:  p.trainedAt,
		Metrics:    p.metrics,
		Importance: p.importance,
	}
	if err := gob.NewEncoder(f).Encode(art); err != nil {
		return fmt.Errorf("predict: encode model %s: %w", path, err)
	}
	return nil
}

// Load reads a model saved by Save.
func Load(path string) (*Predictor, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("predict: open model %s: %w", path, err)
	}
	defer f.Close()

	var art artifact
	if err := gob.NewDecoder(f).Decode(&art); err != nil {
		return nil, fmt.Errorf("predict: decode model %s: %w", path, err)
	}

	if len(art.Features) == 0 {
		return nil, fmt.Errorf("predict: model %s has no feature schema", path)
	}
	if !slices.Equal(art.Features, domain.FeatureColumns) {
		return nil, fmt.Errorf("predict: model %s was trained on features %v, expected %v",
			path, art.Features, domain.FeatureColumns)
	}

	return &Predictor{
		forest:     &art.Forest,
		features:   art.Features,
		trainedAt:  art.TrainedAt,
		metrics:    art.Metrics,
		importance: art.Importance,
		trained:    true,
	}, nil
}
