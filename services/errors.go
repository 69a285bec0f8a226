package services

import "errors"

// Shared service-layer errors, mapped to HTTP statuses in handlers.
var (
	ErrNotFound = errors.New("requested resource not found")

	// Validation and business rules
	ErrValidationFailed   = errors.New("validation failed")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters")
	ErrNameRequired       = errors.New("name is required")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrInvalidRole        = errors.New("role must be coach or viewer")
	ErrInvalidAge         = errors.New("age must be positive")
	ErrInvalidGender      = errors.New("gender must be male, female or other")
	ErrSportRequired      = errors.New("sport is required")
	ErrInvalidMeasurement = errors.New("test measurements must be positive")

	// Auth
	ErrAuthInvalidCredentials = errors.New("invalid email or password")
	ErrAuthEmailTaken         = errors.New("email is already taken")

	// Conflicts
	ErrAthleteEmailConflict = errors.New("athlete email is already in use")

	// Entity-specific not-found (more context than ErrNotFound)
	ErrAthleteNotFound = errors.New("athlete not found")
	ErrScoreNotFound   = errors.New("test score not found")

	// Storage
	ErrPhotoStorageUnavailable = errors.New("photo storage is not configured")
	ErrUnsupportedPhotoType    = errors.New("unsupported photo content type")
)
