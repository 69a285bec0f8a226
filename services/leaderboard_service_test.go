package services

import (
	"context"
	"testing"
	"time"

	"github.com/fitpulse/athlete-tracker/models"
)

func TestTestPointsRewardsBetterResults(t *testing.T) {
	fast := models.TestScore{SprintTime: 4.0, VerticalJump: 50, AgilityTest: 10, EnduranceTest: 12}
	slow := models.TestScore{SprintTime: 6.0, VerticalJump: 50, AgilityTest: 10, EnduranceTest: 12}

	if TestPoints(fast) <= TestPoints(slow) {
		t.Fatalf("faster sprint should score more: fast=%v slow=%v", TestPoints(fast), TestPoints(slow))
	}

	// Timed contributions never go negative.
	terrible := models.TestScore{SprintTime: 1000, VerticalJump: 1, AgilityTest: 1000, EnduranceTest: 1}
	if got := TestPoints(terrible); got != 1+2 {
		t.Fatalf("expected floor at jump+endurance contributions, got %v", got)
	}
}

func TestComputeRanksByTotalDescending(t *testing.T) {
	now := time.Now()
	athletes := newMockAthleteRepo(
		models.Athlete{ID: 1, Name: "A. Smith", Sport: "Track"},
		models.Athlete{ID: 2, Name: "B. Jones", Sport: "Soccer"},
		models.Athlete{ID: 3, Name: "C. Brown", Sport: "Track"},
	)
	scores := newMockScoreRepo(
		// A. Smith: one strong test.
		models.TestScore{ID: 1, AthleteID: 1, SprintTime: 4, VerticalJump: 60, AgilityTest: 10, EnduranceTest: 10, CreatedAt: now.Add(-time.Hour)},
		// B. Jones: two tests, larger total.
		models.TestScore{ID: 2, AthleteID: 2, SprintTime: 5, VerticalJump: 55, AgilityTest: 11, EnduranceTest: 12, CreatedAt: now.Add(-2 * time.Hour)},
		models.TestScore{ID: 3, AthleteID: 2, SprintTime: 4.5, VerticalJump: 58, AgilityTest: 10.5, EnduranceTest: 12, CreatedAt: now.Add(-time.Minute)},
		// C. Brown: no tests, must be omitted.
	)

	svc := NewLeaderboardService(athletes, scores)
	entries, err := svc.Compute(context.Background())
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}

	if len(entries) != 2 {
		t.Fatalf("expected 2 entries (athlete without tests omitted), got %d", len(entries))
	}
	if entries[0].AthleteName != "B. Jones" {
		t.Fatalf("expected B. Jones first (two tests), got %q", entries[0].AthleteName)
	}
	for i, entry := range entries {
		if entry.Rank != i+1 {
			t.Fatalf("rank must be positional: entry %d has rank %d", i, entry.Rank)
		}
	}
	if entries[0].TotalScore <= entries[1].TotalScore {
		t.Fatalf("entries must be ordered by total descending: %v then %v", entries[0].TotalScore, entries[1].TotalScore)
	}

	// Latest test attached: B. Jones' newest is ID 3.
	if entries[0].TestScore == nil || entries[0].TestScore.ID != 3 {
		t.Fatalf("expected latest test score ID 3 attached, got %+v", entries[0].TestScore)
	}
}

func TestComputeBreaksTiesByName(t *testing.T) {
	now := time.Now()
	athletes := newMockAthleteRepo(
		models.Athlete{ID: 1, Name: "Zoe", Sport: "Track"},
		models.Athlete{ID: 2, Name: "Amy", Sport: "Track"},
	)
	same := models.TestScore{SprintTime: 5, VerticalJump: 50, AgilityTest: 10, EnduranceTest: 10}
	s1, s2 := same, same
	s1.ID, s1.AthleteID, s1.CreatedAt = 1, 1, now
	s2.ID, s2.AthleteID, s2.CreatedAt = 2, 2, now

	svc := NewLeaderboardService(athletes, newMockScoreRepo(s1, s2))
	entries, err := svc.Compute(context.Background())
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}

	if entries[0].AthleteName != "Amy" || entries[1].AthleteName != "Zoe" {
		t.Fatalf("equal totals must order by name ascending, got %q then %q", entries[0].AthleteName, entries[1].AthleteName)
	}
}
