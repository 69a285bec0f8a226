package models

// LeaderboardEntry is one ranked row as computed by the server.
// Rank is positional (1-based, assigned after sorting), not stored.
// AthleteID is included so clients do not have to join by display name.
type LeaderboardEntry struct {
	Rank         int        `json:"rank"`
	AthleteID    int        `json:"athlete_id"`
	AthleteName  string     `json:"athlete"`
	TotalScore   float64    `json:"total_score"`
	AverageScore float64    `json:"average_score"`
	TestScore    *TestScore `json:"test_score,omitempty"`
}
