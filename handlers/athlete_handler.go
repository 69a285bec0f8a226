package handlers

import (
	"errors"
	"net/http"

	"github.com/fitpulse/athlete-tracker/services"
)

const maxPhotoBytes = 5 << 20 // 5MB

type AthleteHandler struct {
	athleteService services.AthleteService
}

func NewAthleteHandler(athleteService services.AthleteService) *AthleteHandler {
	return &AthleteHandler{athleteService: athleteService}
}

func (h *AthleteHandler) List(w http.ResponseWriter, r *http.Request) {
	athletes, err := h.athleteService.List(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, athletes, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *AthleteHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := readIDParam(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	athlete, err := h.athleteService.GetByID(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, athlete, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *AthleteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input services.CreateAthleteInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	athlete, err := h.athleteService.Create(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, athlete, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *AthleteHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := readIDParam(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.UpdateAthleteInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	athlete, err := h.athleteService.Update(r.Context(), id, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, athlete, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *AthleteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := readIDParam(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.athleteService.Delete(r.Context(), id); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// UploadPhoto accepts a multipart form with a "photo" file field and
// stores it in object storage.
func (h *AthleteHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	id, err := readIDParam(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := r.ParseMultipartForm(maxPhotoBytes); err != nil {
		badRequestResponse(w, r, errors.New("invalid multipart form"))
		return
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		badRequestResponse(w, r, errors.New("photo file field is required"))
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")

	athlete, err := h.athleteService.UploadPhoto(r.Context(), id, contentType, file)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, athlete, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
