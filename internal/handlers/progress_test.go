package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/bedefrunner/xai-learning-experience-platform/internal/models"
)

type stubProgressRepo struct {
	records   []*models.Progress
	updated   bool
	lastID    uuid.UUID
	lastPatch models.ProgressUpdate
}

func (s *stubProgressRepo) List(ctx context.Context, filter models.ProgressFilter) ([]*models.Progress, error) {
	return s.records, nil
}

func (s *stubProgressRepo) Update(ctx context.Context, id uuid.UUID, upd models.ProgressUpdate) (*models.Progress, error) {
	s.updated = true
	s.lastID = id
	s.lastPatch = upd
	return &models.Progress{ID: id, Status: *upd.Status}, nil
}

func progressUpdateRequest(t *testing.T, id uuid.UUID, body string) *http.Request {
	t.Helper()
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id.String())

	req := httptest.NewRequest(http.MethodPut, "/api/v1/progress/"+id.String(), strings.NewReader(body))
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestProgressHandler_Update_InvalidStatusRejected(t *testing.T) {
	repo := &stubProgressRepo{}
	h := NewProgressHandler(repo)

	req := progressUpdateRequest(t, uuid.New(), `{"status":"finished"}`)
	rr := httptest.NewRecorder()
	h.Update(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rr.Code)
	}
	if repo.updated {
		t.Fatal("invalid status must not reach the repository")
	}

	var payload models.ErrorResponse
	json.NewDecoder(rr.Body).Decode(&payload)
	if payload.Error.Fields["status"] == "" {
		t.Fatalf("expected field error for status, got %+v", payload.Error)
	}
}

func TestProgressHandler_Update_CompletionOutOfRangeRejected(t *testing.T) {
	repo := &stubProgressRepo{}
	h := NewProgressHandler(repo)

	req := progressUpdateRequest(t, uuid.New(), `{"completion_percentage":150}`)
	rr := httptest.NewRecorder()
	h.Update(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rr.Code)
	}
	if repo.updated {
		t.Fatal("out-of-range completion must not reach the repository")
	}
}

func TestProgressHandler_Update_ValidPatchApplied(t *testing.T) {
	repo := &stubProgressRepo{}
	h := NewProgressHandler(repo)
	id := uuid.New()

	req := progressUpdateRequest(t, id, `{"status":"completed","completion_percentage":100,"mastery_level":85}`)
	rr := httptest.NewRecorder()
	h.Update(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rr.Code, rr.Body.String())
	}
	if !repo.updated || repo.lastID != id {
		t.Fatal("expected the patch to reach the repository")
	}
	if *repo.lastPatch.Status != models.ProgressCompleted || *repo.lastPatch.MasteryLevel != 85 {
		t.Fatalf("unexpected patch %+v", repo.lastPatch)
	}
}

func TestProgressHandler_List_EmptyIsJSONArray(t *testing.T) {
	h := NewProgressHandler(&stubProgressRepo{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/progress", nil)
	rr := httptest.NewRecorder()
	h.List(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	if got := strings.TrimSpace(rr.Body.String()); got != "[]" {
		t.Fatalf("expected empty array, got %q", got)
	}
}

func TestProgressHandler_List_InvalidFilterRejected(t *testing.T) {
	h := NewProgressHandler(&stubProgressRepo{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/progress?student_id=not-a-uuid", nil)
	rr := httptest.NewRecorder()
	h.List(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rr.Code)
	}
}
