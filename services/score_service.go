package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/fitpulse/athlete-tracker/models"
	"github.com/fitpulse/athlete-tracker/repositories"
)

type ScoreService interface {
	Submit(ctx context.Context, input SubmitScoreInput) (*models.TestScore, error)
	ListByAthlete(ctx context.Context, athleteID int) ([]models.TestScore, error)
	Latest(ctx context.Context, athleteID int) (*models.TestScore, error)
	Update(ctx context.Context, id int, input UpdateScoreInput) (*models.TestScore, error)
}

type SubmitScoreInput struct {
	AthleteID     int     `json:"athlete_id"`
	SprintTime    float64 `json:"sprint_time"`
	VerticalJump  float64 `json:"vertical_jump"`
	AgilityTest   float64 `json:"agility_test"`
	EnduranceTest float64 `json:"endurance_test"`
}

// UpdateScoreInput carries a partial update: nil measurements keep their
// stored value.
type UpdateScoreInput struct {
	SprintTime    *float64 `json:"sprint_time"`
	VerticalJump  *float64 `json:"vertical_jump"`
	AgilityTest   *float64 `json:"agility_test"`
	EnduranceTest *float64 `json:"endurance_test"`
}

type scoreService struct {
	scoreRepo   repositories.ScoreRepository
	athleteRepo repositories.AthleteRepository
}

func NewScoreService(scoreRepo repositories.ScoreRepository, athleteRepo repositories.AthleteRepository) ScoreService {
	return &scoreService{
		scoreRepo:   scoreRepo,
		athleteRepo: athleteRepo,
	}
}

func (s *scoreService) Submit(ctx context.Context, input SubmitScoreInput) (*models.TestScore, error) {
	if input.SprintTime <= 0 || input.VerticalJump <= 0 || input.AgilityTest <= 0 || input.EnduranceTest <= 0 {
		return nil, ErrInvalidMeasurement
	}

	if _, err := s.athleteRepo.GetByID(ctx, input.AthleteID); err != nil {
		if errors.Is(err, repositories.ErrAthleteNotFound) {
			return nil, ErrAthleteNotFound
		}
		return nil, err
	}

	score := &models.TestScore{
		AthleteID:     input.AthleteID,
		SprintTime:    input.SprintTime,
		VerticalJump:  input.VerticalJump,
		AgilityTest:   input.AgilityTest,
		EnduranceTest: input.EnduranceTest,
	}

	if err := s.scoreRepo.Create(ctx, score); err != nil {
		if errors.Is(err, repositories.ErrScoreAthleteInvalid) {
			return nil, ErrAthleteNotFound
		}
		return nil, fmt.Errorf("failed to create test score: %w", err)
	}
	return score, nil
}

func (s *scoreService) ListByAthlete(ctx context.Context, athleteID int) ([]models.TestScore, error) {
	if _, err := s.athleteRepo.GetByID(ctx, athleteID); err != nil {
		if errors.Is(err, repositories.ErrAthleteNotFound) {
			return nil, ErrAthleteNotFound
		}
		return nil, err
	}

	scores, err := s.scoreRepo.ListByAthlete(ctx, athleteID)
	if err != nil {
		return nil, fmt.Errorf("failed to list test scores: %w", err)
	}
	return scores, nil
}

// Latest returns the most recent test score for the athlete, or
// ErrScoreNotFound if none have been recorded. ListByAthlete is newest
// first, so the head is the latest.
func (s *scoreService) Latest(ctx context.Context, athleteID int) (*models.TestScore, error) {
	scores, err := s.ListByAthlete(ctx, athleteID)
	if err != nil {
		return nil, err
	}
	if len(scores) == 0 {
		return nil, ErrScoreNotFound
	}
	return &scores[0], nil
}

func (s *scoreService) Update(ctx context.Context, id int, input UpdateScoreInput) (*models.TestScore, error) {
	score, err := s.scoreRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrScoreNotFound) {
			return nil, ErrScoreNotFound
		}
		return nil, err
	}

	if input.SprintTime != nil {
		score.SprintTime = *input.SprintTime
	}
	if input.VerticalJump != nil {
		score.VerticalJump = *input.VerticalJump
	}
	if input.AgilityTest != nil {
		score.AgilityTest = *input.AgilityTest
	}
	if input.EnduranceTest != nil {
		score.EnduranceTest = *input.EnduranceTest
	}

	if score.SprintTime <= 0 || score.VerticalJump <= 0 || score.AgilityTest <= 0 || score.EnduranceTest <= 0 {
		return nil, ErrInvalidMeasurement
	}

	if err := s.scoreRepo.Update(ctx, score); err != nil {
		if errors.Is(err, repositories.ErrScoreNotFound) {
			return nil, ErrScoreNotFound
		}
		return nil, fmt.Errorf("failed to update test score: %w", err)
	}
	return score, nil
}
