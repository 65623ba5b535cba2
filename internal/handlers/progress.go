package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/bedefrunner/xai-learning-experience-platform/internal/models"
)

type ProgressHandler struct {
	progressRepo progressRepository
}

type progressRepository interface {
	List(ctx context.Context, filter models.ProgressFilter) ([]*models.Progress, error)
	Update(ctx context.Context, id uuid.UUID, upd models.ProgressUpdate) (*models.Progress, error)
}

func NewProgressHandler(progressRepo progressRepository) *ProgressHandler {
	return &ProgressHandler{progressRepo: progressRepo}
}

var validProgressStatuses = map[string]bool{
	models.ProgressNotStarted:  true,
	models.ProgressInProgress:  true,
	models.ProgressCompleted:   true,
	models.ProgressNeedsReview: true,
}

func (h *ProgressHandler) List(w http.ResponseWriter, r *http.Request) {
	var filter models.ProgressFilter

	if raw := r.URL.Query().Get("student_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid student_id", r))
			return
		}
		filter.StudentID = &id
	}
	if raw := r.URL.Query().Get("learning_path_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid learning_path_id", r))
			return
		}
		filter.LearningPathID = &id
	}

	records, err := h.progressRepo.List(r.Context(), filter)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to list progress", r))
		return
	}
	if records == nil {
		records = []*models.Progress{}
	}
	writeJSON(w, http.StatusOK, records)
}

func (h *ProgressHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid progress ID", r))
		return
	}

	var upd models.ProgressUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	if upd.Status != nil && !validProgressStatuses[*upd.Status] {
		writeJSON(w, http.StatusBadRequest, errorRespWithFields("VALIDATION_ERROR", "Validation failed",
			map[string]string{"status": "Invalid status value"}, r))
		return
	}
	if upd.CompletionPercentage != nil && (*upd.CompletionPercentage < 0 || *upd.CompletionPercentage > 100) {
		writeJSON(w, http.StatusBadRequest, errorRespWithFields("VALIDATION_ERROR", "Validation failed",
			map[string]string{"completion_percentage": "Must be between 0 and 100"}, r))
		return
	}

	progress, err := h.progressRepo.Update(r.Context(), id, upd)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Progress record not found", r))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to update progress", r))
		return
	}
	writeJSON(w, http.StatusOK, progress)
}
