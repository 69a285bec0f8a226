package services

import (
	"context"
	"sort"

	"github.com/fitpulse/athlete-tracker/models"
	"github.com/fitpulse/athlete-tracker/repositories"
)

// mockAthleteRepo is an in-memory AthleteRepository seeded by tests.
type mockAthleteRepo struct {
	athletes map[int]models.Athlete
	nextID   int
}

func newMockAthleteRepo(seed ...models.Athlete) *mockAthleteRepo {
	m := &mockAthleteRepo{athletes: make(map[int]models.Athlete), nextID: 1}
	for _, a := range seed {
		if a.ID >= m.nextID {
			m.nextID = a.ID + 1
		}
		m.athletes[a.ID] = a
	}
	return m
}

func (m *mockAthleteRepo) Create(_ context.Context, athlete *models.Athlete) error {
	athlete.ID = m.nextID
	m.nextID++
	m.athletes[athlete.ID] = *athlete
	return nil
}

func (m *mockAthleteRepo) GetByID(_ context.Context, id int) (*models.Athlete, error) {
	a, ok := m.athletes[id]
	if !ok {
		return nil, repositories.ErrAthleteNotFound
	}
	copy := a
	return &copy, nil
}

func (m *mockAthleteRepo) List(_ context.Context) ([]models.Athlete, error) {
	out := make([]models.Athlete, 0, len(m.athletes))
	for _, a := range m.athletes {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *mockAthleteRepo) Update(_ context.Context, athlete *models.Athlete) error {
	if _, ok := m.athletes[athlete.ID]; !ok {
		return repositories.ErrAthleteNotFound
	}
	m.athletes[athlete.ID] = *athlete
	return nil
}

func (m *mockAthleteRepo) UpdatePhotoKey(_ context.Context, id int, key *string) error {
	a, ok := m.athletes[id]
	if !ok {
		return repositories.ErrAthleteNotFound
	}
	a.PhotoKey = key
	m.athletes[id] = a
	return nil
}

func (m *mockAthleteRepo) Delete(_ context.Context, id int) error {
	if _, ok := m.athletes[id]; !ok {
		return repositories.ErrAthleteNotFound
	}
	delete(m.athletes, id)
	return nil
}

// mockScoreRepo is an in-memory ScoreRepository that keeps the
// newest-first ordering contract.
type mockScoreRepo struct {
	scores []models.TestScore
	nextID int
}

func newMockScoreRepo(seed ...models.TestScore) *mockScoreRepo {
	m := &mockScoreRepo{nextID: 1}
	for _, s := range seed {
		if s.ID >= m.nextID {
			m.nextID = s.ID + 1
		}
		m.scores = append(m.scores, s)
	}
	return m
}

func (m *mockScoreRepo) Create(_ context.Context, score *models.TestScore) error {
	score.ID = m.nextID
	m.nextID++
	m.scores = append(m.scores, *score)
	return nil
}

func (m *mockScoreRepo) GetByID(_ context.Context, id int) (*models.TestScore, error) {
	for _, s := range m.scores {
		if s.ID == id {
			copy := s
			return &copy, nil
		}
	}
	return nil, repositories.ErrScoreNotFound
}

func (m *mockScoreRepo) sorted() []models.TestScore {
	out := make([]models.TestScore, len(m.scores))
	copy(out, m.scores)
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

func (m *mockScoreRepo) ListByAthlete(_ context.Context, athleteID int) ([]models.TestScore, error) {
	out := make([]models.TestScore, 0)
	for _, s := range m.sorted() {
		if s.AthleteID == athleteID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *mockScoreRepo) ListAll(_ context.Context) ([]models.TestScore, error) {
	return m.sorted(), nil
}

func (m *mockScoreRepo) Update(_ context.Context, score *models.TestScore) error {
	for i, s := range m.scores {
		if s.ID == score.ID {
			m.scores[i] = *score
			return nil
		}
	}
	return repositories.ErrScoreNotFound
}
