package handlers

import (
	"net/http"

	"github.com/fitpulse/athlete-tracker/live"
	"github.com/fitpulse/athlete-tracker/services"
)

type ScoreHandler struct {
	scoreService       services.ScoreService
	leaderboardService services.LeaderboardService
	hub                *live.Hub
}

func NewScoreHandler(scoreService services.ScoreService, leaderboardService services.LeaderboardService, hub *live.Hub) *ScoreHandler {
	return &ScoreHandler{
		scoreService:       scoreService,
		leaderboardService: leaderboardService,
		hub:                hub,
	}
}

// Submit records a new test score. Mounted at POST /tests and, as a
// legacy alias, POST /scores.
func (h *ScoreHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var input services.SubmitScoreInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	score, err := h.scoreService.Submit(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	h.pushLeaderboard(r)

	if err := writeJSON(w, http.StatusCreated, score, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ScoreHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := readIDParam(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.UpdateScoreInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	score, err := h.scoreService.Update(r.Context(), id, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	h.pushLeaderboard(r)

	if err := writeJSON(w, http.StatusOK, score, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ScoreHandler) ListByAthlete(w http.ResponseWriter, r *http.Request) {
	athleteID, err := readIDParam(r, "athleteID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	scores, err := h.scoreService.ListByAthlete(r.Context(), athleteID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, scores, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// pushLeaderboard recomputes the standings and broadcasts them to
// connected dashboards. Failures only cost liveness, never the mutation.
func (h *ScoreHandler) pushLeaderboard(r *http.Request) {
	if h.hub == nil {
		return
	}
	entries, err := h.leaderboardService.Compute(r.Context())
	if err != nil {
		return
	}
	h.hub.BroadcastLeaderboard(entries)
}
