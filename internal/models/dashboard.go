package models

import "github.com/google/uuid"

type StudentDashboard struct {
	Student        *Student            `json:"student"`
	LearningPaths  []*LearningPath     `json:"learning_paths"`
	RecentProgress []*Progress         `json:"recent_progress"`
	RecentResults  []*AssessmentResult `json:"recent_results"`
	Stats          DashboardStats      `json:"stats"`
}

type DashboardStats struct {
	TotalLearningPaths    int     `json:"total_learning_paths"`
	AverageCompletion     float64 `json:"average_completion"`
	AverageMastery        float64 `json:"average_mastery"`
	TotalAssessmentsTaken int     `json:"total_assessments_taken"`
}

type EducatorDashboard struct {
	LearningPaths            []*LearningPath     `json:"learning_paths"`
	StudentsNeedingAttention []AttentionItem     `json:"students_needing_attention"`
	RecentResults            []*AssessmentResult `json:"recent_results"`
}

// AttentionItem flags a student whose progress on some content needs review.
type AttentionItem struct {
	StudentID    uuid.UUID `json:"student_id"`
	StudentName  string    `json:"student_name"`
	ContentTitle string    `json:"content_title"`
}
