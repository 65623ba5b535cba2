package services

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/bedefrunner/xai-learning-experience-platform/internal/models"
	"github.com/bedefrunner/xai-learning-experience-platform/internal/repository"
)

type LearningPathService struct {
	pathRepo    *repository.LearningPathRepo
	studentRepo *repository.StudentRepo
	subjectRepo *repository.SubjectRepo
	grok        *GrokService
}

func NewLearningPathService(
	pathRepo *repository.LearningPathRepo,
	studentRepo *repository.StudentRepo,
	subjectRepo *repository.SubjectRepo,
	grok *GrokService,
) *LearningPathService {
	return &LearningPathService{
		pathRepo:    pathRepo,
		studentRepo: studentRepo,
		subjectRepo: subjectRepo,
		grok:        grok,
	}
}

// Create builds a learning path: AI-generated goals, content assigned in the
// order given, and an initial not_started progress record per item. Goal
// generation never blocks creation; Grok failures fall back to canned goals.
func (s *LearningPathService) Create(ctx context.Context, req models.CreateLearningPathRequest) (*models.LearningPath, error) {
	fieldErrors := make(map[string]string)
	if req.Title == "" {
		fieldErrors["title"] = "Title is required"
	}
	if req.Description == "" {
		fieldErrors["description"] = "Description is required"
	}
	if req.DifficultyLevel == "" {
		fieldErrors["difficulty_level"] = "Difficulty level is required"
	}
	if req.StartDate.IsZero() {
		fieldErrors["start_date"] = "Start date is required"
	}
	if req.TargetCompletionDate.IsZero() {
		fieldErrors["target_completion_date"] = "Target completion date is required"
	}
	if len(fieldErrors) > 0 {
		return nil, &ValidationError{Fields: fieldErrors}
	}

	student, err := s.studentRepo.GetByID(ctx, req.StudentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &NotFoundError{Message: "Student not found"}
		}
		return nil, err
	}

	subject, err := s.subjectRepo.GetByID(ctx, req.SubjectID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &NotFoundError{Message: "Subject not found"}
		}
		return nil, err
	}

	goals := s.grok.GeneratePersonalizedGoals(ctx, student.GradeLevel, subject.Name, req.DifficultyLevel)

	path := &models.LearningPath{
		StudentID:         student.ID,
		StudentName:       student.FullName(),
		SubjectID:         subject.ID,
		SubjectName:       subject.Name,
		Title:             req.Title,
		Description:       req.Description,
		DifficultyLevel:   req.DifficultyLevel,
		PersonalizedGoals: goals,
		RecommendedResources: []models.Resource{
			{Title: "Khan Academy", URL: "https://khanacademy.org", Type: "external"},
		},
		StartDate:            req.StartDate,
		TargetCompletionDate: req.TargetCompletionDate,
	}

	if err := s.pathRepo.Create(ctx, path, req.ContentIDs); err != nil {
		return nil, err
	}

	// Freshly created, nothing completed yet.
	path.CompletionPercentage = 0
	return path, nil
}
