package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/bedefrunner/xai-learning-experience-platform/internal/models"
	"github.com/bedefrunner/xai-learning-experience-platform/internal/repository"
)

type AssessmentService struct {
	assessmentRepo *repository.AssessmentRepo
	studentRepo    *repository.StudentRepo
	progressRepo   *repository.ProgressRepo
	grok           *GrokService
}

func NewAssessmentService(
	assessmentRepo *repository.AssessmentRepo,
	studentRepo *repository.StudentRepo,
	progressRepo *repository.ProgressRepo,
	grok *GrokService,
) *AssessmentService {
	return &AssessmentService{
		assessmentRepo: assessmentRepo,
		studentRepo:    studentRepo,
		progressRepo:   progressRepo,
		grok:           grok,
	}
}

// Submit scores the answers, records the result with AI feedback, and rolls
// the outcome into the linked progress record when the assessment belongs to
// a learning path.
func (s *AssessmentService) Submit(ctx context.Context, assessmentID uuid.UUID, req models.SubmitAssessmentRequest) (*models.AssessmentResult, error) {
	assessment, err := s.assessmentRepo.GetByID(ctx, assessmentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &NotFoundError{Message: "Assessment not found"}
		}
		return nil, err
	}

	student, err := s.studentRepo.GetByID(ctx, req.StudentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &NotFoundError{Message: "Student not found"}
		}
		return nil, err
	}

	score, missed := ScoreAnswers(assessment.Questions, req.Answers)
	passed := score >= float64(assessment.PassingScore)
	timeTaken := int(req.SubmittedAt.Sub(req.StartedAt).Minutes())

	aiFeedback := s.grok.GenerateAssessmentFeedback(ctx, score, assessment.SubjectName, missed)

	result := &models.AssessmentResult{
		StudentID:        student.ID,
		AssessmentID:     assessment.ID,
		AssessmentTitle:  assessment.Title,
		LearningPathID:   req.LearningPathID,
		Answers:          req.Answers,
		Score:            score,
		Passed:           passed,
		StartedAt:        req.StartedAt,
		SubmittedAt:      req.SubmittedAt,
		TimeTakenMinutes: timeTaken,
		AIFeedback:       aiFeedback,
	}
	if err := s.assessmentRepo.CreateResult(ctx, result); err != nil {
		return nil, err
	}

	if req.LearningPathID != nil && assessment.ContentID != nil {
		s.updateLinkedProgress(ctx, student.ID, *req.LearningPathID, *assessment.ContentID, score, passed)
	}

	return result, nil
}

// ScoreAnswers grades strict-match answers and reports the text of every
// missed question for feedback generation.
func ScoreAnswers(questions []models.Question, answers map[string]string) (float64, []string) {
	if len(questions) == 0 {
		return 0, nil
	}

	correct := 0
	var missed []string
	for _, q := range questions {
		answer, answered := answers[q.ID]
		if answered && answer == q.CorrectAnswer {
			correct++
			continue
		}
		if answered {
			missed = append(missed, q.Question)
		}
	}

	return float64(correct) / float64(len(questions)) * 100, missed
}

func (s *AssessmentService) updateLinkedProgress(ctx context.Context, studentID, pathID, contentID uuid.UUID, score float64, passed bool) {
	progress, err := s.progressRepo.GetByTriple(ctx, studentID, pathID, contentID)
	if err != nil {
		// No progress record linking this content; nothing to update.
		return
	}

	status := models.ProgressNeedsReview
	upd := models.ProgressUpdate{
		Status:       &status,
		MasteryLevel: &score,
		Score:        &score,
	}
	if passed {
		completed := models.ProgressCompleted
		hundred := 100.0
		upd.Status = &completed
		upd.CompletionPercentage = &hundred
	}

	s.progressRepo.Update(ctx, progress.ID, upd)
}
