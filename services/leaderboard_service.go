package services

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/fitpulse/athlete-tracker/models"
	"github.com/fitpulse/athlete-tracker/repositories"
)

type LeaderboardService interface {
	Compute(ctx context.Context) ([]models.LeaderboardEntry, error)
}

type leaderboardService struct {
	athleteRepo repositories.AthleteRepository
	scoreRepo   repositories.ScoreRepository
}

func NewLeaderboardService(athleteRepo repositories.AthleteRepository, scoreRepo repositories.ScoreRepository) LeaderboardService {
	return &leaderboardService{
		athleteRepo: athleteRepo,
		scoreRepo:   scoreRepo,
	}
}

// TestPoints converts one assessment into points. Higher jumps and longer
// endurance runs score more, faster sprint/agility times score more.
// Timed contributions are floored at zero.
func TestPoints(score models.TestScore) float64 {
	sprint := math.Max(0, 100-10*score.SprintTime)
	agility := math.Max(0, 100-5*score.AgilityTest)
	return score.VerticalJump + 2*score.EnduranceTest + sprint + agility
}

// Compute builds the ranked leaderboard: total points over all of an
// athlete's tests, descending, ties broken by athlete name ascending.
// Athletes without any recorded test are omitted.
func (s *leaderboardService) Compute(ctx context.Context) ([]models.LeaderboardEntry, error) {
	athletes, err := s.athleteRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list athletes: %w", err)
	}

	scores, err := s.scoreRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list test scores: %w", err)
	}

	totals := make(map[int]float64, len(athletes))
	counts := make(map[int]int, len(athletes))
	latest := make(map[int]models.TestScore, len(athletes))
	for _, score := range scores {
		totals[score.AthleteID] += TestPoints(score)
		counts[score.AthleteID]++
		// ListAll is newest first, keep the first score seen per athlete.
		if _, ok := latest[score.AthleteID]; !ok {
			latest[score.AthleteID] = score
		}
	}

	entries := make([]models.LeaderboardEntry, 0, len(athletes))
	for _, athlete := range athletes {
		count := counts[athlete.ID]
		if count == 0 {
			continue
		}
		total := round1(totals[athlete.ID])
		entry := models.LeaderboardEntry{
			AthleteID:    athlete.ID,
			AthleteName:  athlete.Name,
			TotalScore:   total,
			AverageScore: round1(totals[athlete.ID] / float64(count)),
		}
		if last, ok := latest[athlete.ID]; ok {
			scoreCopy := last
			entry.TestScore = &scoreCopy
		}
		entries = append(entries, entry)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].TotalScore != entries[j].TotalScore {
			return entries[i].TotalScore > entries[j].TotalScore
		}
		return entries[i].AthleteName < entries[j].AthleteName
	})

	for i := range entries {
		entries[i].Rank = i + 1
	}

	return entries, nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
