package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Content is a shared library item. It belongs to a subject, never to a
// single learning path; paths reference it through content assignments.
type Content struct {
	ID                       uuid.UUID       `json:"id"`
	SubjectID                uuid.UUID       `json:"subject_id"`
	SubjectName              string          `json:"subject_name"`
	Title                    string          `json:"title"`
	ContentType              string          `json:"content_type"` // lesson | video | reading | exercise | quiz | project
	Description              string          `json:"description"`
	ContentBody              string          `json:"content_body"`
	DifficultyLevel          string          `json:"difficulty_level"` // beginner | intermediate | advanced
	EstimatedDurationMinutes int             `json:"estimated_duration_minutes"`
	ExternalURL              *string         `json:"external_url"`
	FileAttachments          json.RawMessage `json:"file_attachments,omitempty"`
	CreatedAt                time.Time       `json:"-"`
}

type ContentFilter struct {
	SubjectID  *uuid.UUID
	Difficulty string
}
