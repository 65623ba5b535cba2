package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/bedefrunner/xai-learning-experience-platform/internal/models"
)

type DashboardHandler struct {
	dashboards dashboardService
}

type dashboardService interface {
	StudentDashboard(ctx context.Context, studentID uuid.UUID) (*models.StudentDashboard, error)
	EducatorDashboard(ctx context.Context, subjectID *uuid.UUID) (*models.EducatorDashboard, error)
}

func NewDashboardHandler(dashboards dashboardService) *DashboardHandler {
	return &DashboardHandler{dashboards: dashboards}
}

func (h *DashboardHandler) Student(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "studentID"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid student ID", r))
		return
	}

	dashboard, err := h.dashboards.StudentDashboard(r.Context(), id)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dashboard)
}

func (h *DashboardHandler) Educator(w http.ResponseWriter, r *http.Request) {
	var subjectID *uuid.UUID
	if raw := r.URL.Query().Get("subject_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid subject_id", r))
			return
		}
		subjectID = &id
	}

	dashboard, err := h.dashboards.EducatorDashboard(r.Context(), subjectID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dashboard)
}
