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
	ErrAthleteNotFound      = errors.New("athlete not found")
	ErrAthleteEmailConflict = errors.New("athlete email conflict")
)

type AthleteRepository interface {
	Create(ctx context.Context, athlete *models.Athlete) error
	GetByID(ctx context.Context, id int) (*models.Athlete, error)
	List(ctx context.Context) ([]models.Athlete, error)
	Update(ctx context.Context, athlete *models.Athlete) error
	UpdatePhotoKey(ctx context.Context, id int, key *string) error
	Delete(ctx context.Context, id int) error
}

type postgresAthleteRepository struct {
	db *sql.DB
}

func NewPostgresAthleteRepository(db *sql.DB) AthleteRepository {
	return &postgresAthleteRepository{db: db}
}

func (r *postgresAthleteRepository) Create(ctx context.Context, athlete *models.Athlete) error {
	query := `
		INSERT INTO athletes (name, age, gender, sport, email, phone)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		athlete.Name,
		athlete.Age,
		athlete.Gender,
		athlete.Sport,
		athlete.Email,
		athlete.Phone,
	).Scan(&athlete.ID, &athlete.CreatedAt)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			if pqErr.Constraint == "athletes_email_key" {
				return ErrAthleteEmailConflict
			}
		}
		return err
	}
	return nil
}

func (r *postgresAthleteRepository) GetByID(ctx context.Context, id int) (*models.Athlete, error) {
	query := `
		SELECT id, name, age, gender, sport, email, phone, photo_key, created_at
		FROM athletes
		WHERE id = $1`

	athlete := &models.Athlete{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&athlete.ID,
		&athlete.Name,
		&athlete.Age,
		&athlete.Gender,
		&athlete.Sport,
		&athlete.Email,
		&athlete.Phone,
		&athlete.PhotoKey,
		&athlete.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAthleteNotFound
		}
		return nil, fmt.Errorf("failed to scan athlete: %w", err)
	}
	return athlete, nil
}

func (r *postgresAthleteRepository) List(ctx context.Context) ([]models.Athlete, error) {
	query := `
		SELECT id, name, age, gender, sport, email, phone, photo_key, created_at
		FROM athletes
		ORDER BY name ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	athletes := make([]models.Athlete, 0)
	for rows.Next() {
		var athlete models.Athlete
		scanErr := rows.Scan(
			&athlete.ID,
			&athlete.Name,
			&athlete.Age,
			&athlete.Gender,
			&athlete.Sport,
			&athlete.Email,
			&athlete.Phone,
			&athlete.PhotoKey,
			&athlete.CreatedAt,
		)
		if scanErr != nil {
			return nil, scanErr
		}
		athletes = append(athletes, athlete)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return athletes, nil
}

func (r *postgresAthleteRepository) Update(ctx context.Context, athlete *models.Athlete) error {
	query := `
		UPDATE athletes SET
			name = $1,
			age = $2,
			gender = $3,
			sport = $4,
			email = $5,
			phone = $6
		WHERE id = $7`

	result, err := r.db.ExecContext(ctx, query,
		athlete.Name,
		athlete.Age,
		athlete.Gender,
		athlete.Sport,
		athlete.Email,
		athlete.Phone,
		athlete.ID,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			if pqErr.Constraint == "athletes_email_key" {
				return ErrAthleteEmailConflict
			}
		}
		return err
	}

	return checkAffectedRows(result, ErrAthleteNotFound)
}

func (r *postgresAthleteRepository) UpdatePhotoKey(ctx context.Context, id int, key *string) error {
	query := `UPDATE athletes SET photo_key = $1 WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, key, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrAthleteNotFound)
}

func (r *postgresAthleteRepository) Delete(ctx context.Context, id int) error {
	// Test scores cascade via the athlete_id foreign key.
	query := `DELETE FROM athletes WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrAthleteNotFound)
}
