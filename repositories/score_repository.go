package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fitpulse/athlete-tracker/models"
	"github.com/lib/pq"
)

var (
	ErrScoreNotFound       = errors.New("test score not found")
	ErrScoreAthleteInvalid = errors.New("test score references unknown athlete")
)

type ScoreRepository interface {
	Create(ctx context.Context, score *models.TestScore) error
	GetByID(ctx context.Context, id int) (*models.TestScore, error)
	// ListByAthlete returns scores newest first. The ordering is part of
	// the contract: callers take the head as the latest result.
	ListByAthlete(ctx context.Context, athleteID int) ([]models.TestScore, error)
	ListAll(ctx context.Context) ([]models.TestScore, error)
	Update(ctx context.Context, score *models.TestScore) error
}

type postgresScoreRepository struct {
	db *sql.DB
}

func NewPostgresScoreRepository(db *sql.DB) ScoreRepository {
	return &postgresScoreRepository{db: db}
}

func (r *postgresScoreRepository) Create(ctx context.Context, score *models.TestScore) error {
	query := `
		INSERT INTO test_scores (athlete_id, sprint_time, vertical_jump, agility_test, endurance_test)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		score.AthleteID,
		score.SprintTime,
		score.VerticalJump,
		score.AgilityTest,
		score.EnduranceTest,
	).Scan(&score.ID, &score.CreatedAt)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			if pqErr.Constraint == "test_scores_athlete_id_fkey" {
				return ErrScoreAthleteInvalid
			}
		}
		return err
	}
	return nil
}

func (r *postgresScoreRepository) GetByID(ctx context.Context, id int) (*models.TestScore, error) {
	query := `
		SELECT id, athlete_id, sprint_time, vertical_jump, agility_test, endurance_test, created_at
		FROM test_scores
		WHERE id = $1`

	score := &models.TestScore{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&score.ID,
		&score.AthleteID,
		&score.SprintTime,
		&score.VerticalJump,
		&score.AgilityTest,
		&score.EnduranceTest,
		&score.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrScoreNotFound
		}
		return nil, fmt.Errorf("failed to scan test score: %w", err)
	}
	return score, nil
}

func (r *postgresScoreRepository) ListByAthlete(ctx context.Context, athleteID int) ([]models.TestScore, error) {
	query := `
		SELECT id, athlete_id, sprint_time, vertical_jump, agility_test, endurance_test, created_at
		FROM test_scores
		WHERE athlete_id = $1
		ORDER BY created_at DESC, id DESC`
	return r.listScores(ctx, query, athleteID)
}

func (r *postgresScoreRepository) ListAll(ctx context.Context) ([]models.TestScore, error) {
	query := `
		SELECT id, athlete_id, sprint_time, vertical_jump, agility_test, endurance_test, created_at
		FROM test_scores
		ORDER BY created_at DESC, id DESC`
	return r.listScores(ctx, query)
}

func (r *postgresScoreRepository) Update(ctx context.Context, score *models.TestScore) error {
	query := `
		UPDATE test_scores SET
			sprint_time = $1,
			vertical_jump = $2,
			agility_test = $3,
			endurance_test = $4
		WHERE id = $5`

	result, err := r.db.ExecContext(ctx, query,
		score.SprintTime,
		score.VerticalJump,
		score.AgilityTest,
		score.EnduranceTest,
		score.ID,
	)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrScoreNotFound)
}

func (r *postgresScoreRepository) listScores(ctx context.Context, query string, args ...interface{}) ([]models.TestScore, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	scores := make([]models.TestScore, 0)
	for rows.Next() {
		var score models.TestScore
		scanErr := rows.Scan(
			&score.ID,
			&score.AthleteID,
			&score.SprintTime,
			&score.VerticalJump,
			&score.AgilityTest,
			&score.EnduranceTest,
			&score.CreatedAt,
		)
		if scanErr != nil {
			return nil, scanErr
		}
		scores = append(scores, score)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return scores, nil
}
