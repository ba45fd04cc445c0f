package analyze

import (
	"sort"

	"student-analytics/internal/domain"
)

// DriftReport describes how the at-risk population moved between two dataset
// snapshots (typically last week's run vs this week's).
type DriftReport struct {
	// NewlyAtRisk: flagged now, not flagged in the previous snapshot.
	NewlyAtRisk []domain.StudentRecord
	// Recovered: flagged before, not flagged now.
	Recovered []domain.StudentRecord
	// Added / Removed: IDs present in only one snapshot.
	Added   []string
	Removed []string
}

// Drift compares the current dataset with a previous snapshot by student ID.
// Students present in only one snapshot are reported but not counted as risk
// transitions.
func Drift(prev, curr []domain.StudentRecord) DriftReport {
	prevByID := make(map[string]domain.StudentRecord, len(prev))
	for _, r := range prev {
		if r.StudentID == "" {
			continue
		}
		prevByID[r.StudentID] = r
	}

	var report DriftReport
	seen := make(map[string]bool, len(curr))

	for _, c := range curr {
		if c.StudentID == "" {
			continue
		}
		seen[c.StudentID] = true

		p, ok := prevByID[c.StudentID]
		if !ok {
			report.Added = append(report.Added, c.StudentID)
			continue
		}
		switch {
		case c.AtRisk && !p.AtRisk:
			report.NewlyAtRisk = append(report.NewlyAtRisk, c)
		case !c.AtRisk && p.AtRisk:
			report.Recovered = append(report.Recovered, c)
		}
	}

	for id := range prevByID {
		if !seen[id] {
			report.Removed = append(report.Removed, id)
		}
	}

	sort.Slice(report.NewlyAtRisk, func(i, j int) bool {
		return report.NewlyAtRisk[i].FinalGrade < report.NewlyAtRisk[j].FinalGrade
	})
	sort.Slice(report.Recovered, func(i, j int) bool {
		return report.Recovered[i].StudentID < report.Recovered[j].StudentID
	})
	sort.Strings(report.Added)
	sort.Strings(report.Removed)

	return report
}
