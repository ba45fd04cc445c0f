package domain

// WeeklyActivity is one week of a student's platform activity.
// Used by the time-series generator; not part of the main dataset schema.
type WeeklyActivity struct {
	StudentID            string
	Week                 int    // 1-based
	Date                 string // ISO date of the week start
	WeeklyScore          float64
	HoursStudied         float64
	AssignmentsCompleted int
}
