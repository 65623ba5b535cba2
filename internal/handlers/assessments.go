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
	"github.com/bedefrunner/xai-learning-experience-platform/internal/repository"
)

type AssessmentHandler struct {
	assessmentRepo *repository.AssessmentRepo
	submitter      assessmentSubmitter
}

type assessmentSubmitter interface {
	Submit(ctx context.Context, assessmentID uuid.UUID, req models.SubmitAssessmentRequest) (*models.AssessmentResult, error)
}

func NewAssessmentHandler(assessmentRepo *repository.AssessmentRepo, submitter assessmentSubmitter) *AssessmentHandler {
	return &AssessmentHandler{assessmentRepo: assessmentRepo, submitter: submitter}
}

func (h *AssessmentHandler) List(w http.ResponseWriter, r *http.Request) {
	var subjectID *uuid.UUID
	if raw := r.URL.Query().Get("subject_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid subject_id", r))
			return
		}
		subjectID = &id
	}

	assessments, err := h.assessmentRepo.List(r.Context(), subjectID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to list assessments", r))
		return
	}
	if assessments == nil {
		assessments = []*models.Assessment{}
	}
	writeJSON(w, http.StatusOK, assessments)
}

func (h *AssessmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid assessment ID", r))
		return
	}

	assessment, err := h.assessmentRepo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Assessment not found", r))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to load assessment", r))
		return
	}
	writeJSON(w, http.StatusOK, assessment)
}

func (h *AssessmentHandler) Submit(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid assessment ID", r))
		return
	}

	var req models.SubmitAssessmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	result, err := h.submitter.Submit(r.Context(), id, req)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}
