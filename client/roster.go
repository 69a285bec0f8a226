package client

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"sync"

	"github.com/fitpulse/athlete-tracker/models"
	"github.com/fitpulse/athlete-tracker/services"
)

// Roster owns the cached athlete and test-score lists for one session.
// Mutations call the remote API first and reconcile the cache only on
// success; a failed call leaves the cache untouched. Two overlapping
// mutations resolve last-write-wins in network completion order; the
// store does not sequence requests.
type Roster struct {
	client *Client

	mu       sync.RWMutex
	athletes []models.Athlete
	scores   []models.TestScore
}

func NewRoster(client *Client) *Roster {
	return &Roster{client: client}
}

// Athletes returns a snapshot of the cached athlete list. Callers that
// need guaranteed freshness should use GetAthleteByID instead.
func (r *Roster) Athletes() []models.Athlete {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Athlete, len(r.athletes))
	copy(out, r.athletes)
	return out
}

// Scores returns a snapshot of the session's submitted score cache.
func (r *Roster) Scores() []models.TestScore {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.TestScore, len(r.scores))
	copy(out, r.scores)
	return out
}

// FetchAthletes loads the full roster and replaces the cache. Safe to
// call repeatedly; the last response wins.
func (r *Roster) FetchAthletes(ctx context.Context) ([]models.Athlete, error) {
	var athletes []models.Athlete
	if err := r.client.do(ctx, http.MethodGet, "/athletes", nil, &athletes); err != nil {
		return nil, fmt.Errorf("failed to fetch athletes: %w", err)
	}

	r.mu.Lock()
	r.athletes = athletes
	r.mu.Unlock()

	return athletes, nil
}

// AddAthlete creates the athlete remotely and appends the server-assigned
// record to the cache.
func (r *Roster) AddAthlete(ctx context.Context, input services.CreateAthleteInput) (*models.Athlete, error) {
	var created models.Athlete
	if err := r.client.do(ctx, http.MethodPost, "/athletes", input, &created); err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.athletes = append(r.athletes, created)
	r.mu.Unlock()

	return &created, nil
}

// UpdateAthlete sends a partial update and replaces the cache entry with
// the matching id. When no cached entry matches, the cache keeps its
// stale view until the next FetchAthletes.
func (r *Roster) UpdateAthlete(ctx context.Context, id int, input services.UpdateAthleteInput) (*models.Athlete, error) {
	var updated models.Athlete
	path := fmt.Sprintf("/athletes/%d", id)
	if err := r.client.do(ctx, http.MethodPut, path, input, &updated); err != nil {
		return nil, err
	}

	r.mu.Lock()
	for i := range r.athletes {
		if r.athletes[i].ID == id {
			r.athletes[i] = updated
			break
		}
	}
	r.mu.Unlock()

	return &updated, nil
}

// DeleteAthlete removes the athlete remotely, then from the cache.
func (r *Roster) DeleteAthlete(ctx context.Context, id int) error {
	path := fmt.Sprintf("/athletes/%d", id)
	if err := r.client.do(ctx, http.MethodDelete, path, nil, nil); err != nil {
		return err
	}

	r.mu.Lock()
	kept := r.athletes[:0]
	for _, athlete := range r.athletes {
		if athlete.ID != id {
			kept = append(kept, athlete)
		}
	}
	r.athletes = kept
	r.mu.Unlock()

	return nil
}

// GetAthleteByID is always a live fetch, never a cache lookup, so the
// result may be fresher than the cached list.
func (r *Roster) GetAthleteByID(ctx context.Context, id int) (*models.Athlete, error) {
	var athlete models.Athlete
	path := fmt.Sprintf("/athletes/%d", id)
	if err := r.client.do(ctx, http.MethodGet, path, nil, &athlete); err != nil {
		return nil, err
	}
	return &athlete, nil
}

// SubmitScore records a new test score and appends the server record to
// the local score cache.
func (r *Roster) SubmitScore(ctx context.Context, input services.SubmitScoreInput) (*models.TestScore, error) {
	var created models.TestScore
	if err := r.client.do(ctx, http.MethodPost, "/tests", input, &created); err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.scores = append(r.scores, created)
	r.mu.Unlock()

	return &created, nil
}

// UpdateScore sends a partial measurement update and replaces the cached
// entry with the matching id.
func (r *Roster) UpdateScore(ctx context.Context, id int, input services.UpdateScoreInput) (*models.TestScore, error) {
	var updated models.TestScore
	path := fmt.Sprintf("/scores/%d", id)
	if err := r.client.do(ctx, http.MethodPut, path, input, &updated); err != nil {
		return nil, err
	}

	r.mu.Lock()
	for i := range r.scores {
		if r.scores[i].ID == id {
			r.scores[i] = updated
			break
		}
	}
	r.mu.Unlock()

	return &updated, nil
}

// TestScoresByAthlete is a live fetch of all scores for one athlete,
// newest first per the server contract.
func (r *Roster) TestScoresByAthlete(ctx context.Context, athleteID int) ([]models.TestScore, error) {
	var scores []models.TestScore
	path := fmt.Sprintf("/tests/%d", athleteID)
	if err := r.client.do(ctx, http.MethodGet, path, nil, &scores); err != nil {
		return nil, err
	}
	return scores, nil
}

// LatestTestScore returns the athlete's most recent score, or nil when
// none exist. The server already orders newest first; the re-sort keeps
// the answer right even against servers that do not.
func (r *Roster) LatestTestScore(ctx context.Context, athleteID int) (*models.TestScore, error) {
	scores, err := r.TestScoresByAthlete(ctx, athleteID)
	if err != nil {
		return nil, err
	}
	if len(scores) == 0 {
		return nil, nil
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].CreatedAt.After(scores[j].CreatedAt)
	})
	return &scores[0], nil
}

// Leaderboard is a live fetch of the server-ranked entries. Rank and
// total score are whatever the server computed; nothing is recomputed
// here beyond display enrichment (see Enrich).
func (r *Roster) Leaderboard(ctx context.Context) ([]models.LeaderboardEntry, error) {
	var entries []models.LeaderboardEntry
	if err := r.client.do(ctx, http.MethodGet, "/leaderboard", nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
