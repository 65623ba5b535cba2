package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/bedefrunner/xai-learning-experience-platform/internal/models"
	"github.com/bedefrunner/xai-learning-experience-platform/internal/services"
)

type stubDashboards struct {
	student  *models.StudentDashboard
	educator *models.EducatorDashboard
	err      error
}

func (s *stubDashboards) StudentDashboard(ctx context.Context, studentID uuid.UUID) (*models.StudentDashboard, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.student, nil
}

func (s *stubDashboards) EducatorDashboard(ctx context.Context, subjectID *uuid.UUID) (*models.EducatorDashboard, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.educator, nil
}

func TestDashboardHandler_Student_InvalidIDRejected(t *testing.T) {
	h := NewDashboardHandler(&stubDashboards{})

	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("studentID", "not-a-uuid")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/student/not-a-uuid", nil)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	rr := httptest.NewRecorder()
	h.Student(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rr.Code)
	}
}

func TestDashboardHandler_Student_NotFoundMapped(t *testing.T) {
	h := NewDashboardHandler(&stubDashboards{err: &services.NotFoundError{Message: "Student not found"}})

	id := uuid.New()
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("studentID", id.String())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/student/"+id.String(), nil)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	rr := httptest.NewRecorder()
	h.Student(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, rr.Code)
	}
}

func TestDashboardHandler_Educator_ReturnsDashboard(t *testing.T) {
	h := NewDashboardHandler(&stubDashboards{
		educator: &models.EducatorDashboard{
			LearningPaths: []*models.LearningPath{{ID: uuid.New(), Title: "Algebra Foundations"}},
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/educator", nil)
	rr := httptest.NewRecorder()
	h.Educator(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
}
