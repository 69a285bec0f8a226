package models

import "time"

// TestScore is one physical assessment session for an athlete.
// SprintTime is a 30m sprint in seconds, VerticalJump in centimeters,
// AgilityTest in seconds, EnduranceTest in minutes.
type TestScore struct {
	ID            int       `json:"id" db:"id"`
	AthleteID     int       `json:"athlete_id" db:"athlete_id"`
	SprintTime    float64   `json:"sprint_time" db:"sprint_time"`
	VerticalJump  float64   `json:"vertical_jump" db:"vertical_jump"`
	AgilityTest   float64   `json:"agility_test" db:"agility_test"`
	EnduranceTest float64   `json:"endurance_test" db:"endurance_test"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}
