package predict

import (
	"math/rand"

	"student-analytics/internal/domain"
)

// stratifiedSplit shuffles within each class and holds out testFrac of each,
// so the test split keeps the class balance of the input.
func stratifiedSplit(records []domain.StudentRecord, testFrac float64, seed int64) (train, test []domain.StudentRecord) {
	rng := rand.New(rand.NewSource(seed))

	byClass := map[bool][]int{}
	for i, r := range records {
		byClass[r.AtRisk] = append(byClass[r.AtRisk], i)
	}

	for _, class := range []bool{false, true} {
		idx := byClass[class]
		rng.Shuffle(len(idx), func(i, j int) {
			idx[i], idx[j] = idx[j], idx[i]
		})

		nTest := int(float64(len(idx)) * testFrac)
		if nTest == 0 && len(idx) > 1 {
			nTest = 1
		}

		for i, recIdx := range idx {
			if i < nTest {
				test = append(test, records[recIdx])
			} else {
				train = append(train, records[recIdx])
			}
		}
	}

	return train, test
}
