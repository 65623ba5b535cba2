package ui

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/bedefrunner/xai-learning-experience-platform/internal/models"
)

type stubMentor struct {
	calls    int
	response string
	err      error
}

func (s *stubMentor) ChatWithMentor(ctx context.Context, req models.MentorChatRequest) (*models.MentorSession, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &models.MentorSession{Response: s.response}, nil
}

func newChat(mentor *stubMentor, paths []*models.LearningPath) *MentorChat {
	return NewMentorChat(mentor, uuid.New(), nil, nil, "Sarah", paths)
}

func TestMentorChat_GreetingComputedOnce(t *testing.T) {
	paths := []*models.LearningPath{
		{CompletionPercentage: 40},
		{CompletionPercentage: 60},
	}
	chat := newChat(&stubMentor{response: "ok"}, paths)

	messages := chat.Messages()
	if len(messages) != 1 || messages[0].Type != MessageAI {
		t.Fatalf("expected a single AI greeting, got %v", messages)
	}
	greeting := messages[0].Text

	// Mutating the source slice must not change the seeded greeting.
	paths[0].CompletionPercentage = 0
	chat.Send(context.Background(), "hello")
	if chat.Messages()[0].Text != greeting {
		t.Fatal("greeting must never be refreshed after mount")
	}
}

func TestMentorChat_FailureAppendsExactlyOneApology(t *testing.T) {
	mentor := &stubMentor{err: errors.New("dial tcp: connection refused")}
	chat := newChat(mentor, nil)

	chat.Send(context.Background(), "help")

	messages := chat.Messages()
	// greeting + user turn + apology
	if len(messages) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(messages))
	}
	if messages[1].Type != MessageUser || messages[1].Text != "help" {
		t.Fatalf("user turn must be preserved, got %+v", messages[1])
	}
	if messages[2].Type != MessageAI || messages[2].Text != ApologyMessage {
		t.Fatalf("expected apology, got %+v", messages[2])
	}
	if chat.Loading() {
		t.Fatal("loading must return to false")
	}
}

func TestMentorChat_EmptyResponseTreatedAsFailure(t *testing.T) {
	chat := newChat(&stubMentor{response: "   \n  "}, nil)

	chat.Send(context.Background(), "what is a variable?")

	messages := chat.Messages()
	if messages[len(messages)-1].Text != ApologyMessage {
		t.Fatalf("whitespace-only response must fall back to apology, got %q", messages[len(messages)-1].Text)
	}
}

func TestMentorChat_SuccessTrimsResponse(t *testing.T) {
	chat := newChat(&stubMentor{response: "  A variable is a symbol.  "}, nil)

	chat.Send(context.Background(), "what is a variable?")

	messages := chat.Messages()
	last := messages[len(messages)-1]
	if last.Type != MessageAI || last.Text != "A variable is a symbol." {
		t.Fatalf("expected trimmed response, got %+v", last)
	}
	// exactly one AI message per user turn
	if len(messages) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(messages))
	}
}

func TestMentorChat_BlankInputIgnored(t *testing.T) {
	mentor := &stubMentor{response: "ok"}
	chat := newChat(mentor, nil)

	chat.Send(context.Background(), "   ")

	if len(chat.Messages()) != 1 {
		t.Fatal("blank input must not append anything")
	}
	if mentor.calls != 0 {
		t.Fatal("blank input must not reach the network")
	}
}
