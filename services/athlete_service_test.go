package services

import (
	"context"
	"errors"
	"testing"

	"github.com/fitpulse/athlete-tracker/models"
)

func TestCreateAthleteValidation(t *testing.T) {
	svc := NewAthleteService(newMockAthleteRepo(), nil)

	valid := CreateAthleteInput{
		Name: "A. Smith", Age: 22, Gender: models.GenderMale,
		Sport: "Track", Email: "a@x.com", Phone: "1234567890",
	}

	cases := []struct {
		name    string
		mutate  func(*CreateAthleteInput)
		wantErr error
	}{
		{"empty name", func(in *CreateAthleteInput) { in.Name = "  " }, ErrNameRequired},
		{"zero age", func(in *CreateAthleteInput) { in.Age = 0 }, ErrInvalidAge},
		{"bad gender", func(in *CreateAthleteInput) { in.Gender = "robot" }, ErrInvalidGender},
		{"empty sport", func(in *CreateAthleteInput) { in.Sport = "" }, ErrSportRequired},
		{"bad email", func(in *CreateAthleteInput) { in.Email = "not-an-email" }, ErrInvalidEmail},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := valid
			tc.mutate(&input)
			if _, err := svc.Create(context.Background(), input); !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}

	created, err := svc.Create(context.Background(), valid)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("expected a server-assigned id")
	}
}

func TestUpdateAthletePartialPreservesFields(t *testing.T) {
	repo := newMockAthleteRepo(models.Athlete{
		ID: 7, Name: "A. Smith", Age: 22, Gender: models.GenderMale,
		Sport: "Track", Email: "a@x.com", Phone: "1234567890",
	})
	svc := NewAthleteService(repo, nil)

	sport := "Soccer"
	updated, err := svc.Update(context.Background(), 7, UpdateAthleteInput{Sport: &sport})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	if updated.Sport != "Soccer" {
		t.Fatalf("sport not applied: %q", updated.Sport)
	}
	if updated.Name != "A. Smith" || updated.Age != 22 || updated.Email != "a@x.com" || updated.Phone != "1234567890" {
		t.Fatalf("absent fields must be preserved: %+v", updated)
	}
}

func TestUpdateAthleteNotFound(t *testing.T) {
	svc := NewAthleteService(newMockAthleteRepo(), nil)

	name := "X"
	if _, err := svc.Update(context.Background(), 42, UpdateAthleteInput{Name: &name}); !errors.Is(err, ErrAthleteNotFound) {
		t.Fatalf("expected ErrAthleteNotFound, got %v", err)
	}
}

func TestUploadPhotoWithoutStorage(t *testing.T) {
	svc := NewAthleteService(newMockAthleteRepo(models.Athlete{ID: 1, Name: "A"}), nil)

	if _, err := svc.UploadPhoto(context.Background(), 1, "image/png", nil); !errors.Is(err, ErrPhotoStorageUnavailable) {
		t.Fatalf("expected ErrPhotoStorageUnavailable, got %v", err)
	}
}
