package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const (
	SessionTypeGuidance   = "guidance"
	SessionTypeHelp       = "help"
	SessionTypeAssessment = "assessment"
	SessionTypeFeedback   = "feedback"
)

// MentorSession is one persisted question/answer turn with the AI mentor.
type MentorSession struct {
	ID             uuid.UUID       `json:"id"`
	StudentID      uuid.UUID       `json:"-"`
	LearningPathID *uuid.UUID      `json:"-"`
	SessionType    string          `json:"session_type"`
	Query          string          `json:"query"`
	Response       string          `json:"response"`
	ContextJSON    json.RawMessage `json:"-"`
	CreatedAt      time.Time       `json:"created_at"`
}

type MentorChatRequest struct {
	StudentID      uuid.UUID  `json:"student_id"`
	LearningPathID *uuid.UUID `json:"learning_path_id,omitempty"`
	ContentID      *uuid.UUID `json:"content_id,omitempty"`
	SessionType    string     `json:"session_type"`
	Query          string     `json:"query"`
}
