package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/bedefrunner/xai-learning-experience-platform/internal/models"
	"github.com/bedefrunner/xai-learning-experience-platform/internal/repository"
)

type DashboardService struct {
	studentRepo    *repository.StudentRepo
	pathRepo       *repository.LearningPathRepo
	progressRepo   *repository.ProgressRepo
	assessmentRepo *repository.AssessmentRepo
}

func NewDashboardService(
	studentRepo *repository.StudentRepo,
	pathRepo *repository.LearningPathRepo,
	progressRepo *repository.ProgressRepo,
	assessmentRepo *repository.AssessmentRepo,
) *DashboardService {
	return &DashboardService{
		studentRepo:    studentRepo,
		pathRepo:       pathRepo,
		progressRepo:   progressRepo,
		assessmentRepo: assessmentRepo,
	}
}

func (s *DashboardService) StudentDashboard(ctx context.Context, studentID uuid.UUID) (*models.StudentDashboard, error) {
	student, err := s.studentRepo.GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &NotFoundError{Message: "Student not found"}
		}
		return nil, err
	}

	paths, err := s.pathRepo.List(ctx, &studentID, true)
	if err != nil {
		return nil, err
	}

	recentProgress, err := s.progressRepo.RecentByStudent(ctx, studentID, 5)
	if err != nil {
		return nil, err
	}

	recentResults, err := s.assessmentRepo.RecentResultsByStudent(ctx, studentID, 5)
	if err != nil {
		return nil, err
	}

	var totalCompletion float64
	for _, p := range paths {
		totalCompletion += p.CompletionPercentage
	}
	avgCompletion := 0.0
	if len(paths) > 0 {
		avgCompletion = totalCompletion / float64(len(paths))
	}

	avgMastery, err := s.progressRepo.AverageMastery(ctx, studentID)
	if err != nil {
		return nil, err
	}

	totalTaken, err := s.assessmentRepo.CountResultsByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	return &models.StudentDashboard{
		Student:        student,
		LearningPaths:  paths,
		RecentProgress: recentProgress,
		RecentResults:  recentResults,
		Stats: models.DashboardStats{
			TotalLearningPaths:    len(paths),
			AverageCompletion:     avgCompletion,
			AverageMastery:        avgMastery,
			TotalAssessmentsTaken: totalTaken,
		},
	}, nil
}

func (s *DashboardService) EducatorDashboard(ctx context.Context, subjectID *uuid.UUID) (*models.EducatorDashboard, error) {
	paths, err := s.pathRepo.List(ctx, nil, false)
	if err != nil {
		return nil, err
	}
	if subjectID != nil {
		filtered := paths[:0]
		for _, p := range paths {
			if p.SubjectID == *subjectID {
				filtered = append(filtered, p)
			}
		}
		paths = filtered
	}

	attention, err := s.progressRepo.NeedsReview(ctx)
	if err != nil {
		return nil, err
	}

	recentResults, err := s.assessmentRepo.RecentResults(ctx, 10)
	if err != nil {
		return nil, err
	}

	return &models.EducatorDashboard{
		LearningPaths:            paths,
		StudentsNeedingAttention: attention,
		RecentResults:            recentResults,
	}, nil
}
