package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/bedefrunner/xai-learning-experience-platform/internal/models"
	"github.com/bedefrunner/xai-learning-experience-platform/internal/repository"
)

type MentorHandler struct {
	mentor     mentorService
	mentorRepo *repository.MentorRepo
}

type mentorService interface {
	Chat(ctx context.Context, req models.MentorChatRequest) (*models.MentorSession, error)
}

func NewMentorHandler(mentor mentorService, mentorRepo *repository.MentorRepo) *MentorHandler {
	return &MentorHandler{mentor: mentor, mentorRepo: mentorRepo}
}

func (h *MentorHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req models.MentorChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	session, err := h.mentor.Chat(r.Context(), req)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (h *MentorHandler) Sessions(w http.ResponseWriter, r *http.Request) {
	rawID := r.URL.Query().Get("student_id")
	studentID, err := uuid.Parse(rawID)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "student_id is required", r))
		return
	}

	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}

	sessions, err := h.mentorRepo.ListByStudent(r.Context(), studentID, limit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to list sessions", r))
		return
	}
	if sessions == nil {
		sessions = []*models.MentorSession{}
	}
	writeJSON(w, http.StatusOK, sessions)
}
