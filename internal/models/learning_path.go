package models

import (
	"time"

	"github.com/google/uuid"
)

type LearningPath struct {
	ID                   uuid.UUID  `json:"id"`
	StudentID            uuid.UUID  `json:"student_id"`
	StudentName          string     `json:"student_name"`
	SubjectID            uuid.UUID  `json:"subject_id"`
	SubjectName          string     `json:"subject_name"`
	Title                string     `json:"title"`
	Description          string     `json:"description"`
	DifficultyLevel      string     `json:"difficulty_level"`
	PersonalizedGoals    []string   `json:"personalized_goals"`
	RecommendedResources []Resource `json:"recommended_resources"`
	StartDate            Date       `json:"start_date"`
	TargetCompletionDate Date       `json:"target_completion_date"`
	IsActive             bool       `json:"is_active"`
	// Server-computed: completed progress records / assigned content * 100.
	CompletionPercentage float64   `json:"completion_percentage"`
	CreatedAt            time.Time `json:"-"`
}

type Resource struct {
	Title string `json:"title"`
	URL   string `json:"url"`
	Type  string `json:"type"`
}

type CreateLearningPathRequest struct {
	StudentID            uuid.UUID   `json:"student_id"`
	SubjectID            uuid.UUID   `json:"subject_id"`
	Title                string      `json:"title"`
	Description          string      `json:"description"`
	DifficultyLevel      string      `json:"difficulty_level"`
	StartDate            Date        `json:"start_date"`
	TargetCompletionDate Date        `json:"target_completion_date"`
	ContentIDs           []uuid.UUID `json:"content_ids"`
}

// ContentAssignment links a learning path to a shared content item with a
// per-path ordering.
type ContentAssignment struct {
	ID             uuid.UUID `json:"id"`
	LearningPathID uuid.UUID `json:"learning_path_id"`
	ContentID      uuid.UUID `json:"content_id"`
	Order          int       `json:"order"`
	IsRequired     bool      `json:"is_required"`
}
