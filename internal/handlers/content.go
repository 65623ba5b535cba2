package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/bedefrunner/xai-learning-experience-platform/internal/models"
	"github.com/bedefrunner/xai-learning-experience-platform/internal/repository"
)

type ContentHandler struct {
	contentRepo *repository.ContentRepo
}

func NewContentHandler(contentRepo *repository.ContentRepo) *ContentHandler {
	return &ContentHandler{contentRepo: contentRepo}
}

func (h *ContentHandler) List(w http.ResponseWriter, r *http.Request) {
	var filter models.ContentFilter

	if raw := r.URL.Query().Get("subject_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid subject_id", r))
			return
		}
		filter.SubjectID = &id
	}
	filter.Difficulty = r.URL.Query().Get("difficulty")

	items, err := h.contentRepo.List(r.Context(), filter)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to list content", r))
		return
	}
	if items == nil {
		items = []*models.Content{}
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *ContentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid content ID", r))
		return
	}

	content, err := h.contentRepo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Content not found", r))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to load content", r))
		return
	}
	writeJSON(w, http.StatusOK, content)
}
