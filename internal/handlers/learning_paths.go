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

type LearningPathHandler struct {
	pathRepo    learningPathRepository
	pathService learningPathCreator
}

type learningPathRepository interface {
	List(ctx context.Context, studentID *uuid.UUID, activeOnly bool) ([]*models.LearningPath, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.LearningPath, error)
}

type learningPathCreator interface {
	Create(ctx context.Context, req models.CreateLearningPathRequest) (*models.LearningPath, error)
}

func NewLearningPathHandler(pathRepo learningPathRepository, pathService learningPathCreator) *LearningPathHandler {
	return &LearningPathHandler{pathRepo: pathRepo, pathService: pathService}
}

func (h *LearningPathHandler) List(w http.ResponseWriter, r *http.Request) {
	var studentID *uuid.UUID
	if raw := r.URL.Query().Get("student_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid student_id", r))
			return
		}
		studentID = &id
	}
	activeOnly := r.URL.Query().Get("active") == "true"

	paths, err := h.pathRepo.List(r.Context(), studentID, activeOnly)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to list learning paths", r))
		return
	}
	if paths == nil {
		paths = []*models.LearningPath{}
	}
	writeJSON(w, http.StatusOK, paths)
}

func (h *LearningPathHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid learning path ID", r))
		return
	}

	path, err := h.pathRepo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Learning path not found", r))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to load learning path", r))
		return
	}
	writeJSON(w, http.StatusOK, path)
}

func (h *LearningPathHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateLearningPathRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	path, err := h.pathService.Create(r.Context(), req)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, path)
}
