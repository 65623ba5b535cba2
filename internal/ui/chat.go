package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bedefrunner/xai-learning-experience-platform/internal/models"
)

const (
	MessageUser = "user"
	MessageAI   = "ai"
)

// ApologyMessage is appended when a mentor turn fails for any reason.
const ApologyMessage = "I'm sorry, I'm having trouble responding right now. Please try again in a moment."

// ChatMessage is one transcript entry. Ephemeral: lost when the chat closes.
type ChatMessage struct {
	Type      string
	Text      string
	Timestamp time.Time
}

type mentorClient interface {
	ChatWithMentor(ctx context.Context, req models.MentorChatRequest) (*models.MentorSession, error)
}

// MentorChat is a single-threaded turn-based transcript with the AI mentor.
// The user's message is always appended immediately; exactly one AI message
// follows per user turn, falling back to a static apology on any failure.
type MentorChat struct {
	client mentorClient
	clock  func() time.Time

	studentID uuid.UUID
	pathID    *uuid.UUID
	contentID *uuid.UUID

	messages []ChatMessage
	loading  bool
}

// NewMentorChat seeds the transcript with a greeting computed once from the
// student's current learning paths. The greeting is never refreshed.
func NewMentorChat(client mentorClient, studentID uuid.UUID, pathID, contentID *uuid.UUID, firstName string, paths []*models.LearningPath) *MentorChat {
	c := &MentorChat{
		client:    client,
		clock:     time.Now,
		studentID: studentID,
		pathID:    pathID,
		contentID: contentID,
	}
	c.messages = append(c.messages, ChatMessage{
		Type:      MessageAI,
		Text:      Greeting(firstName, paths),
		Timestamp: c.clock(),
	})
	return c
}

// Greeting builds the one-time opening message from the student's active
// paths and their average completion percentage.
func Greeting(firstName string, paths []*models.LearningPath) string {
	if len(paths) == 0 {
		return fmt.Sprintf("Hi %s! I'm your AI mentor. Ask me anything about your studies.", firstName)
	}

	var total float64
	for _, p := range paths {
		total += p.CompletionPercentage
	}
	avg := total / float64(len(paths))

	return fmt.Sprintf(
		"Hi %s! I'm your AI mentor. You're working through %d learning path(s) at %.0f%% average completion. How can I help today?",
		firstName, len(paths), avg)
}

func (c *MentorChat) Messages() []ChatMessage {
	out := make([]ChatMessage, len(c.messages))
	copy(out, c.messages)
	return out
}

func (c *MentorChat) Loading() bool { return c.loading }

// Send appends the user's message, performs one mentor request, and appends
// exactly one AI message: the trimmed response on success, the apology
// otherwise. Blank input is ignored entirely.
func (c *MentorChat) Send(ctx context.Context, text string) {
	text = strings.TrimSpace(text)
	if text == "" || c.loading {
		return
	}

	c.messages = append(c.messages, ChatMessage{Type: MessageUser, Text: text, Timestamp: c.clock()})
	c.loading = true
	defer func() { c.loading = false }()

	session, err := c.client.ChatWithMentor(ctx, models.MentorChatRequest{
		StudentID:      c.studentID,
		LearningPathID: c.pathID,
		ContentID:      c.contentID,
		SessionType:    models.SessionTypeHelp,
		Query:          text,
	})

	reply := ApologyMessage
	if err == nil && session != nil {
		if trimmed := strings.TrimSpace(session.Response); trimmed != "" {
			reply = trimmed
		}
	}
	c.messages = append(c.messages, ChatMessage{Type: MessageAI, Text: reply, Timestamp: c.clock()})
}
