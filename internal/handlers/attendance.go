package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/bedefrunner/xai-learning-experience-platform/internal/models"
	"github.com/bedefrunner/xai-learning-experience-platform/internal/repository"
)

type AttendanceHandler struct {
	attendanceRepo *repository.AttendanceRepo
}

func NewAttendanceHandler(attendanceRepo *repository.AttendanceRepo) *AttendanceHandler {
	return &AttendanceHandler{attendanceRepo: attendanceRepo}
}

func (h *AttendanceHandler) List(w http.ResponseWriter, r *http.Request) {
	var filter repository.AttendanceFilter

	if raw := r.URL.Query().Get("student_id"); raw != "" {
		if _, err := uuid.Parse(raw); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid student_id", r))
			return
		}
		filter.StudentID = &raw
	}
	if raw := r.URL.Query().Get("date_from"); raw != "" {
		d, err := models.ParseDate(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "date_from must be YYYY-MM-DD", r))
			return
		}
		filter.DateFrom = &d
	}

	records, err := h.attendanceRepo.List(r.Context(), filter)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to list attendance", r))
		return
	}
	if records == nil {
		records = []*models.Attendance{}
	}
	writeJSON(w, http.StatusOK, records)
}
