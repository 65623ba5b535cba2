package models

import (
	"time"

	"github.com/google/uuid"
)

type Assessment struct {
	ID               uuid.UUID  `json:"id"`
	SubjectID        uuid.UUID  `json:"subject_id"`
	SubjectName      string     `json:"subject_name"`
	ContentID        *uuid.UUID `json:"content_id"`
	Title            string     `json:"title"`
	AssessmentType   string     `json:"assessment_type"` // quiz | test | assignment | project
	Description      string     `json:"description"`
	Questions        []Question `json:"questions"`
	TotalPoints      int        `json:"total_points"`
	PassingScore     int        `json:"passing_score"`
	DifficultyLevel  string     `json:"difficulty_level"`
	TimeLimitMinutes *int       `json:"time_limit_minutes"`
	CreatedAt        time.Time  `json:"-"`
}

type Question struct {
	ID            string   `json:"id"`
	Question      string   `json:"question"`
	Options       []string `json:"options,omitempty"`
	CorrectAnswer string   `json:"correct_answer"`
}

type SubmitAssessmentRequest struct {
	StudentID      uuid.UUID         `json:"student_id"`
	LearningPathID *uuid.UUID        `json:"learning_path_id"`
	Answers        map[string]string `json:"answers"`
	StartedAt      time.Time         `json:"started_at"`
	SubmittedAt    time.Time         `json:"submitted_at"`
}

type AssessmentResult struct {
	ID               uuid.UUID         `json:"id"`
	StudentID        uuid.UUID         `json:"student_id"`
	AssessmentID     uuid.UUID         `json:"assessment_id"`
	AssessmentTitle  string            `json:"assessment_title"`
	LearningPathID   *uuid.UUID        `json:"learning_path_id,omitempty"`
	Answers          map[string]string `json:"answers"`
	Score            float64           `json:"score"`
	Passed           bool              `json:"passed"`
	Feedback         string            `json:"feedback"`
	AIFeedback       string            `json:"ai_feedback"`
	StartedAt        time.Time         `json:"started_at"`
	SubmittedAt      time.Time         `json:"submitted_at"`
	TimeTakenMinutes int               `json:"time_taken_minutes"`
	CreatedAt        time.Time         `json:"-"`
}
