package predict

import (
	"math/rand"
	"sort"

	"student-analytics/internal/domain"
)

// Importance is one feature's share of the model's predictive signal.
type Importance struct {
	Feature string  `json:"feature"`
	Score   float64 `json:"importance"`
}

const permutationRepeats = 5

// permutationImportance scores each feature by how much held-out accuracy
// drops when that feature's values are shuffled across the test split.
// Drops are averaged over several shuffles and normalized to sum to 1.
func permutationImportance(p *Predictor, test []domain.StudentRecord, seed int64) []Importance {
	out := make([]Importance, len(domain.FeatureColumns))
	for i, name := range domain.FeatureColumns {
		out[i] = Importance{Feature: name}
	}
	if len(test) == 0 {
		return out
	}

	x := make([][]float64, len(test))
	y := make([]int, len(test))
	for i, r := range test {
		x[i] = r.Features()
		y[i] = boolToClass(r.AtRisk)
	}

	baseline := accuracyOn(p, x, y)
	rng := rand.New(rand.NewSource(seed))

	for f := range domain.FeatureColumns {
		var totalDrop float64
		for rep := 0; rep < permutationRepeats; rep++ {
			shuffled := shuffleColumn(x, f, rng)
			totalDrop += baseline - accuracyOn(p, shuffled, y)
		}
		drop := totalDrop / permutationRepeats
		if drop < 0 {
			drop = 0
		}
		out[f].Score = drop
	}

	var total float64
	for _, imp := range out {
		total += imp.Score
	}
	if total > 0 {
		for i := range out {
			out[i].Score = round3(out[i].Score / total)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out
}

func accuracyOn(p *Predictor, x [][]float64, y []int) float64 {
	correct := 0
	for i := range x {
		vote := p.forest.Vote(x[i])
		pred := 0
		if len(vote) >= 2 && vote[1] > 0.5 {
			pred = 1
		}
		if pred == y[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(x))
}

// shuffleColumn returns a copy of x with column f permuted across rows.
func shuffleColumn(x [][]float64, f int, rng *rand.Rand) [][]float64 {
	out := make([][]float64, len(x))
	perm := rng.Perm(len(x))
	for i := range x {
		row := make([]float64, len(x[i]))
		copy(row, x[i])
		row[f] = x[perm[i]][f]
		out[i] = row
	}
	return out
}
