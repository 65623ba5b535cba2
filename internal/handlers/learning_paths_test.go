package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/bedefrunner/xai-learning-experience-platform/internal/models"
	"github.com/bedefrunner/xai-learning-experience-platform/internal/services"
)

type stubPathRepo struct {
	paths []*models.LearningPath
}

func (s *stubPathRepo) List(ctx context.Context, studentID *uuid.UUID, activeOnly bool) ([]*models.LearningPath, error) {
	return s.paths, nil
}

func (s *stubPathRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.LearningPath, error) {
	for _, p := range s.paths {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, context.Canceled
}

type stubPathCreator struct {
	created *models.LearningPath
	err     error
	calls   int
}

func (s *stubPathCreator) Create(ctx context.Context, req models.CreateLearningPathRequest) (*models.LearningPath, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.created, nil
}

func TestLearningPathHandler_Create_ValidationErrorsSurfaceFields(t *testing.T) {
	creator := &stubPathCreator{
		err: &services.ValidationError{Fields: map[string]string{"title": "Title is required"}},
	}
	h := NewLearningPathHandler(&stubPathRepo{}, creator)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/learning-paths", strings.NewReader(`{}`))
	rr := httptest.NewRecorder()
	h.Create(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rr.Code)
	}

	var payload models.ErrorResponse
	json.NewDecoder(rr.Body).Decode(&payload)
	if payload.Error.Code != "VALIDATION_ERROR" || payload.Error.Fields["title"] == "" {
		t.Fatalf("unexpected error payload %+v", payload.Error)
	}
}

func TestLearningPathHandler_Create_ReturnsCreatedPathWithGoals(t *testing.T) {
	creator := &stubPathCreator{
		created: &models.LearningPath{
			ID:                uuid.New(),
			Title:             "Algebra Foundations",
			PersonalizedGoals: []string{"a", "b"},
		},
	}
	h := NewLearningPathHandler(&stubPathRepo{}, creator)

	body := `{"student_id":"` + uuid.NewString() + `","subject_id":"` + uuid.NewString() + `","title":"Algebra Foundations"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/learning-paths", strings.NewReader(body))
	rr := httptest.NewRecorder()
	h.Create(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d: %s", http.StatusCreated, rr.Code, rr.Body.String())
	}

	var path models.LearningPath
	json.NewDecoder(rr.Body).Decode(&path)
	if len(path.PersonalizedGoals) != 2 || path.PersonalizedGoals[0] != "a" {
		t.Fatalf("goals must round-trip in order, got %v", path.PersonalizedGoals)
	}
}

func TestLearningPathHandler_Create_InvalidBodyDoesNotCallService(t *testing.T) {
	creator := &stubPathCreator{}
	h := NewLearningPathHandler(&stubPathRepo{}, creator)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/learning-paths", strings.NewReader(`not json`))
	rr := httptest.NewRecorder()
	h.Create(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rr.Code)
	}
	if creator.calls != 0 {
		t.Fatal("malformed body must not reach the service")
	}
}

func TestLearningPathHandler_List_BadStudentIDRejected(t *testing.T) {
	h := NewLearningPathHandler(&stubPathRepo{}, &stubPathCreator{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/learning-paths?student_id=nope", nil)
	rr := httptest.NewRecorder()
	h.List(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rr.Code)
	}
}
