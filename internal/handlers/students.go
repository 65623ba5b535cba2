package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/bedefrunner/xai-learning-experience-platform/internal/models"
)

type StudentHandler struct {
	students studentService
}

type studentService interface {
	List(ctx context.Context) ([]*models.Student, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Student, error)
	Create(ctx context.Context, req models.CreateStudentRequest) (*models.Student, error)
	Badges(ctx context.Context, studentID uuid.UUID) ([]*models.StudentBadge, error)
}

func NewStudentHandler(students studentService) *StudentHandler {
	return &StudentHandler{students: students}
}

func (h *StudentHandler) List(w http.ResponseWriter, r *http.Request) {
	students, err := h.students.List(r.Context())
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	if students == nil {
		students = []*models.Student{}
	}
	writeJSON(w, http.StatusOK, students)
}

func (h *StudentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid student ID", r))
		return
	}

	student, err := h.students.Get(r.Context(), id)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, student)
}

func (h *StudentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateStudentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	student, err := h.students.Create(r.Context(), req)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, student)
}

func (h *StudentHandler) Badges(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid student ID", r))
		return
	}

	badges, err := h.students.Badges(r.Context(), id)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	if badges == nil {
		badges = []*models.StudentBadge{}
	}
	writeJSON(w, http.StatusOK, badges)
}
