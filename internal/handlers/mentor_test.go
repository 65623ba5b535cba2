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

type stubMentorService struct {
	session *models.MentorSession
	err     error
	calls   int
}

func (s *stubMentorService) Chat(ctx context.Context, req models.MentorChatRequest) (*models.MentorSession, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.session, nil
}

func TestMentorHandler_Chat_ReturnsSession(t *testing.T) {
	stub := &stubMentorService{session: &models.MentorSession{
		ID:          uuid.New(),
		SessionType: models.SessionTypeHelp,
		Query:       "What is a variable?",
		Response:    "A variable is a named placeholder for a value.",
	}}
	h := NewMentorHandler(stub, nil)

	body := `{"student_id":"` + uuid.NewString() + `","session_type":"help","query":"What is a variable?"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/ai-mentor/chat", strings.NewReader(body))
	rr := httptest.NewRecorder()
	h.Chat(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rr.Code, rr.Body.String())
	}
	var got models.MentorSession
	if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if got.Response != stub.session.Response {
		t.Errorf("expected response %q, got %q", stub.session.Response, got.Response)
	}
}

func TestMentorHandler_Chat_RateLimited(t *testing.T) {
	stub := &stubMentorService{err: &services.RateLimitError{Message: "AI mentor is busy, try again shortly"}}
	h := NewMentorHandler(stub, nil)

	body := `{"student_id":"` + uuid.NewString() + `","session_type":"help","query":"hi"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/ai-mentor/chat", strings.NewReader(body))
	rr := httptest.NewRecorder()
	h.Chat(rr, req)

	if rr.Code != http.StatusTooManyRequests {
		t.Fatalf("expected status %d, got %d", http.StatusTooManyRequests, rr.Code)
	}
	var envelope struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal error envelope: %v", err)
	}
	if envelope.Error.Code != "RATE_LIMITED" {
		t.Errorf("expected code RATE_LIMITED, got %q", envelope.Error.Code)
	}
}

func TestMentorHandler_Chat_MalformedBody(t *testing.T) {
	stub := &stubMentorService{}
	h := NewMentorHandler(stub, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/ai-mentor/chat", strings.NewReader("{not json"))
	rr := httptest.NewRecorder()
	h.Chat(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rr.Code)
	}
	if stub.calls != 0 {
		t.Errorf("service should not be called on malformed body, got %d calls", stub.calls)
	}
}

func TestMentorHandler_Sessions_RequiresStudentID(t *testing.T) {
	h := NewMentorHandler(&stubMentorService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/ai-mentor/sessions", nil)
	rr := httptest.NewRecorder()
	h.Sessions(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rr.Code)
	}
}
