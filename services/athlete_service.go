package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fitpulse/athlete-tracker/models"
	"github.com/fitpulse/athlete-tracker/repositories"
	"github.com/fitpulse/athlete-tracker/storage"
	"github.com/fitpulse/athlete-tracker/utils"
	"github.com/google/uuid"
)

type AthleteService interface {
	List(ctx context.Context) ([]models.Athlete, error)
	GetByID(ctx context.Context, id int) (*models.Athlete, error)
	Create(ctx context.Context, input CreateAthleteInput) (*models.Athlete, error)
	Update(ctx context.Context, id int, input UpdateAthleteInput) (*models.Athlete, error)
	Delete(ctx context.Context, id int) error
	UploadPhoto(ctx context.Context, id int, contentType string, photo io.Reader) (*models.Athlete, error)
}

type CreateAthleteInput struct {
	Name   string        `json:"name"`
	Age    int           `json:"age"`
	Gender models.Gender `json:"gender"`
	Sport  string        `json:"sport"`
	Email  string        `json:"email"`
	Phone  string        `json:"phone"`
}

// UpdateAthleteInput carries a partial update: nil fields are left as-is.
type UpdateAthleteInput struct {
	Name   *string        `json:"name"`
	Age    *int           `json:"age"`
	Gender *models.Gender `json:"gender"`
	Sport  *string        `json:"sport"`
	Email  *string        `json:"email"`
	Phone  *string        `json:"phone"`
}

var photoContentTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

type athleteService struct {
	athleteRepo repositories.AthleteRepository
	uploader    storage.FileUploader // nil when photo storage is not configured
}

func NewAthleteService(athleteRepo repositories.AthleteRepository, uploader storage.FileUploader) AthleteService {
	return &athleteService{
		athleteRepo: athleteRepo,
		uploader:    uploader,
	}
}

func (s *athleteService) List(ctx context.Context) ([]models.Athlete, error) {
	athletes, err := s.athleteRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list athletes: %w", err)
	}
	for i := range athletes {
		s.populatePhotoURL(&athletes[i])
	}
	return athletes, nil
}

func (s *athleteService) GetByID(ctx context.Context, id int) (*models.Athlete, error) {
	athlete, err := s.athleteRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrAthleteNotFound) {
			return nil, ErrAthleteNotFound
		}
		return nil, err
	}
	s.populatePhotoURL(athlete)
	return athlete, nil
}

func (s *athleteService) Create(ctx context.Context, input CreateAthleteInput) (*models.Athlete, error) {
	if err := validateAthleteFields(input.Name, input.Age, input.Gender, input.Sport, input.Email); err != nil {
		return nil, err
	}

	athlete := &models.Athlete{
		Name:   strings.TrimSpace(input.Name),
		Age:    input.Age,
		Gender: input.Gender,
		Sport:  strings.TrimSpace(input.Sport),
		Email:  input.Email,
		Phone:  input.Phone,
	}

	if err := s.athleteRepo.Create(ctx, athlete); err != nil {
		if errors.Is(err, repositories.ErrAthleteEmailConflict) {
			return nil, ErrAthleteEmailConflict
		}
		return nil, fmt.Errorf("failed to create athlete: %w", err)
	}
	return athlete, nil
}

func (s *athleteService) Update(ctx context.Context, id int, input UpdateAthleteInput) (*models.Athlete, error) {
	athlete, err := s.athleteRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrAthleteNotFound) {
			return nil, ErrAthleteNotFound
		}
		return nil, err
	}

	if input.Name != nil {
		athlete.Name = strings.TrimSpace(*input.Name)
	}
	if input.Age != nil {
		athlete.Age = *input.Age
	}
	if input.Gender != nil {
		athlete.Gender = *input.Gender
	}
	if input.Sport != nil {
		athlete.Sport = strings.TrimSpace(*input.Sport)
	}
	if input.Email != nil {
		athlete.Email = *input.Email
	}
	if input.Phone != nil {
		athlete.Phone = *input.Phone
	}

	if err := validateAthleteFields(athlete.Name, athlete.Age, athlete.Gender, athlete.Sport, athlete.Email); err != nil {
		return nil, err
	}

	if err := s.athleteRepo.Update(ctx, athlete); err != nil {
		switch {
		case errors.Is(err, repositories.ErrAthleteNotFound):
			return nil, ErrAthleteNotFound
		case errors.Is(err, repositories.ErrAthleteEmailConflict):
			return nil, ErrAthleteEmailConflict
		}
		return nil, fmt.Errorf("failed to update athlete: %w", err)
	}

	s.populatePhotoURL(athlete)
	return athlete, nil
}

func (s *athleteService) Delete(ctx context.Context, id int) error {
	athlete, err := s.athleteRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrAthleteNotFound) {
			return ErrAthleteNotFound
		}
		return err
	}

	if err := s.athleteRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrAthleteNotFound) {
			return ErrAthleteNotFound
		}
		return fmt.Errorf("failed to delete athlete: %w", err)
	}

	// Best effort: the roster entry is gone either way.
	if s.uploader != nil && athlete.PhotoKey != nil {
		_ = s.uploader.Delete(ctx, *athlete.PhotoKey)
	}

	return nil
}

func (s *athleteService) UploadPhoto(ctx context.Context, id int, contentType string, photo io.Reader) (*models.Athlete, error) {
	if s.uploader == nil {
		return nil, ErrPhotoStorageUnavailable
	}

	ext, ok := photoContentTypes[contentType]
	if !ok {
		return nil, ErrUnsupportedPhotoType
	}

	athlete, err := s.athleteRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrAthleteNotFound) {
			return nil, ErrAthleteNotFound
		}
		return nil, err
	}

	key := "athletes/" + uuid.NewString() + ext
	if _, err := s.uploader.Upload(ctx, key, contentType, photo); err != nil {
		return nil, fmt.Errorf("failed to upload athlete photo: %w", err)
	}

	oldKey := athlete.PhotoKey
	if err := s.athleteRepo.UpdatePhotoKey(ctx, id, &key); err != nil {
		_ = s.uploader.Delete(ctx, key)
		if errors.Is(err, repositories.ErrAthleteNotFound) {
			return nil, ErrAthleteNotFound
		}
		return nil, fmt.Errorf("failed to store photo key: %w", err)
	}

	if oldKey != nil && *oldKey != key {
		_ = s.uploader.Delete(ctx, *oldKey)
	}

	athlete.PhotoKey = &key
	s.populatePhotoURL(athlete)
	return athlete, nil
}

func (s *athleteService) populatePhotoURL(athlete *models.Athlete) {
	if s.uploader == nil || athlete.PhotoKey == nil {
		return
	}
	url := s.uploader.GetPublicURL(*athlete.PhotoKey)
	if url != "" {
		athlete.PhotoURL = &url
	}
}

func validateAthleteFields(name string, age int, gender models.Gender, sport, email string) error {
	if strings.TrimSpace(name) == "" {
		return ErrNameRequired
	}
	if age <= 0 {
		return ErrInvalidAge
	}
	if !gender.Valid() {
		return ErrInvalidGender
	}
	if strings.TrimSpace(sport) == "" {
		return ErrSportRequired
	}
	if !utils.IsValidEmail(email) {
		return ErrInvalidEmail
	}
	return nil
}
