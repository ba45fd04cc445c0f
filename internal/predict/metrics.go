package predict

import (
	"math"

	"student-analytics/internal/domain"
)

// Metrics are classification metrics on the held-out split. The confusion
// matrix is indexed [actual][predicted] with 1 = at risk.
type Metrics struct {
	Accuracy  float64   `json:"accuracy"`
	Precision float64   `json:"precision"`
	Recall    float64   `json:"recall"`
	F1        float64   `json:"f1_score"`
	Confusion [2][2]int `json:"confusion_matrix"`
	TrainSize int       `json:"train_size"`
	TestSize  int       `json:"test_size"`
}

func evaluate(p *Predictor, test []domain.StudentRecord) Metrics {
	var m Metrics
	if len(test) == 0 {
		return m
	}

	for _, r := range test {
		pred, err := p.Predict(r)
		if err != nil {
			return m
		}
		m.Confusion[boolToClass(r.AtRisk)][boolToClass(pred)]++
	}

	tn := m.Confusion[0][0]
	fp := m.Confusion[0][1]
	fn := m.Confusion[1][0]
	tp := m.Confusion[1][1]

	m.Accuracy = round3(float64(tp+tn) / float64(len(test)))
	m.Precision = round3(safeRatio(float64(tp), float64(tp+fp)))
	m.Recall = round3(safeRatio(float64(tp), float64(tp+fn)))
	if m.Precision+m.Recall > 0 {
		m.F1 = round3(2 * m.Precision * m.Recall / (m.Precision + m.Recall))
	}

	return m
}

func safeRatio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}

func round3(v float64) float64 { return math.Round(v*1000) / 1000 }
