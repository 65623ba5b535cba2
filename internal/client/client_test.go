package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/bedefrunner/xai-learning-experience-platform/internal/models"
)

func TestClient_AuthenticateStoresToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/auth/login" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var req models.LoginRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.UserType != models.UserTypeStudent {
			t.Errorf("unexpected user type %q", req.UserType)
		}
		json.NewEncoder(w).Encode(models.LoginResponse{
			UserID:   uuid.New(),
			Email:    req.Email,
			UserType: req.UserType,
			Tokens:   models.AuthTokens{AccessToken: "token-abc", RefreshToken: "refresh-xyz"},
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	resp, err := c.Authenticate(context.Background(), "sarah@lxp.com", "student123", models.UserTypeStudent)
	if err != nil {
		t.Fatalf("authenticate failed: %v", err)
	}
	if resp.Tokens.AccessToken != "token-abc" {
		t.Fatalf("unexpected token %q", resp.Tokens.AccessToken)
	}
	if c.token() != "token-abc" {
		t.Fatal("access token must be stored on the client")
	}
}

func TestClient_BearerTokenAttached(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer token-abc" {
			t.Errorf("unexpected Authorization header %q", got)
		}
		json.NewEncoder(w).Encode([]*models.Student{})
	}))
	defer srv.Close()

	c := New(srv.URL)
	c.SetToken("token-abc")
	if _, err := c.ListStudents(context.Background()); err != nil {
		t.Fatalf("list students failed: %v", err)
	}
}

func TestClient_APIErrorsAreTyped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(models.ErrorResponse{
			Error: models.APIError{Code: "NOT_FOUND", Message: "Content not found", RequestID: "req-1"},
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.GetContent(context.Background(), uuid.New())
	if err == nil {
		t.Fatal("expected error")
	}

	var apiErr *models.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *models.APIError, got %T: %v", err, err)
	}
	if apiErr.Code != "NOT_FOUND" || apiErr.Message != "Content not found" {
		t.Fatalf("unexpected payload %+v", apiErr)
	}
}

func TestClient_MalformedErrorBodyStillTyped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream exploded"))
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.ListSubjects(context.Background())

	var apiErr *models.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *models.APIError for non-JSON error body, got %T", err)
	}
	if apiErr.Code != "HTTP_ERROR" {
		t.Fatalf("unexpected code %q", apiErr.Code)
	}
}

func TestClient_TransportErrorIsNotAPIError(t *testing.T) {
	// Point at a closed server to force a connection error.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := New(srv.URL)
	_, err := c.ListStudents(context.Background())
	if err == nil {
		t.Fatal("expected transport error")
	}

	var apiErr *models.APIError
	if errors.As(err, &apiErr) {
		t.Fatal("transport failures must not be API errors")
	}
}

func TestClient_QueryParametersEncoded(t *testing.T) {
	studentID := uuid.New()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("student_id") != studentID.String() {
			t.Errorf("missing student_id, got query %v", q)
		}
		if q.Get("active") != "true" {
			t.Errorf("missing active flag, got query %v", q)
		}
		json.NewEncoder(w).Encode([]*models.LearningPath{})
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.ListLearningPaths(context.Background(), LearningPathFilter{StudentID: &studentID, ActiveOnly: true})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
}

func TestClient_UpdateProgressSendsPut(t *testing.T) {
	progressID := uuid.New()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("expected PUT, got %s", r.Method)
		}
		if r.URL.Path != "/api/v1/progress/"+progressID.String() {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var patch models.ProgressUpdate
		json.NewDecoder(r.Body).Decode(&patch)
		if patch.Status == nil || *patch.Status != models.ProgressCompleted {
			t.Errorf("unexpected patch %+v", patch)
		}
		json.NewEncoder(w).Encode(models.Progress{ID: progressID, Status: models.ProgressCompleted})
	}))
	defer srv.Close()

	status := models.ProgressCompleted
	c := New(srv.URL)
	progress, err := c.UpdateProgress(context.Background(), progressID, models.ProgressUpdate{Status: &status})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if progress.Status != models.ProgressCompleted {
		t.Fatalf("unexpected status %q", progress.Status)
	}
}
