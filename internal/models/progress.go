package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	ProgressNotStarted  = "not_started"
	ProgressInProgress  = "in_progress"
	ProgressCompleted   = "completed"
	ProgressNeedsReview = "needs_review"
)

// Progress tracks one student against one content item within one learning
// path. Mastery is tracked separately from completion.
type Progress struct {
	ID                   uuid.UUID  `json:"id"`
	StudentID            uuid.UUID  `json:"student_id"`
	LearningPathID       uuid.UUID  `json:"learning_path_id"`
	ContentID            uuid.UUID  `json:"content_id"`
	ContentTitle         string     `json:"content_title"`
	Status               string     `json:"status"`
	CompletionPercentage float64    `json:"completion_percentage"`
	TimeSpentMinutes     int        `json:"time_spent_minutes"`
	MasteryLevel         float64    `json:"mastery_level"`
	Score                *float64   `json:"score"`
	Notes                string     `json:"-"`
	StartedAt            *time.Time `json:"started_at"`
	CompletedAt          *time.Time `json:"completed_at"`
	UpdatedAt            time.Time  `json:"-"`
}

// ProgressUpdate is a partial update; nil fields are left untouched.
type ProgressUpdate struct {
	Status               *string  `json:"status,omitempty"`
	CompletionPercentage *float64 `json:"completion_percentage,omitempty"`
	TimeSpentMinutes     *int     `json:"time_spent_minutes,omitempty"`
	MasteryLevel         *float64 `json:"mastery_level,omitempty"`
	Score                *float64 `json:"score,omitempty"`
}

type ProgressFilter struct {
	StudentID      *uuid.UUID
	LearningPathID *uuid.UUID
}
