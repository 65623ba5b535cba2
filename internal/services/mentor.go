package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"

	"github.com/bedefrunner/xai-learning-experience-platform/internal/models"
	"github.com/bedefrunner/xai-learning-experience-platform/internal/repository"
)

// mentorChatLimit caps how many questions one student can ask per minute.
const mentorChatLimit = 10

type MentorService struct {
	grok         *GrokService
	studentRepo  *repository.StudentRepo
	pathRepo     *repository.LearningPathRepo
	contentRepo  *repository.ContentRepo
	progressRepo *repository.ProgressRepo
	mentorRepo   *repository.MentorRepo
	redis        *redis.Client
}

func NewMentorService(
	grok *GrokService,
	studentRepo *repository.StudentRepo,
	pathRepo *repository.LearningPathRepo,
	contentRepo *repository.ContentRepo,
	progressRepo *repository.ProgressRepo,
	mentorRepo *repository.MentorRepo,
	redisClient *redis.Client,
) *MentorService {
	return &MentorService{
		grok:         grok,
		studentRepo:  studentRepo,
		pathRepo:     pathRepo,
		contentRepo:  contentRepo,
		progressRepo: progressRepo,
		mentorRepo:   mentorRepo,
		redis:        redisClient,
	}
}

var validSessionTypes = map[string]bool{
	models.SessionTypeGuidance:   true,
	models.SessionTypeHelp:       true,
	models.SessionTypeAssessment: true,
	models.SessionTypeFeedback:   true,
}

// Chat assembles the student's learning context, asks Grok, and persists the
// exchange as a mentor session.
func (s *MentorService) Chat(ctx context.Context, req models.MentorChatRequest) (*models.MentorSession, error) {
	fieldErrors := make(map[string]string)
	if strings.TrimSpace(req.Query) == "" {
		fieldErrors["query"] = "Query is required"
	}
	if !validSessionTypes[req.SessionType] {
		fieldErrors["session_type"] = "Invalid session type"
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

	if err := s.checkRateLimit(ctx, req.StudentID.String()); err != nil {
		return nil, err
	}

	studentCtx := &StudentContext{
		StudentName:  student.FirstName,
		StudentGrade: student.GradeLevel,
	}
	contextData := map[string]interface{}{
		"student_grade": student.GradeLevel,
		"student_name":  student.FirstName,
	}

	var contextParts []string

	if req.LearningPathID != nil {
		path, err := s.pathRepo.GetByID(ctx, *req.LearningPathID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, &NotFoundError{Message: "Learning path not found"}
			}
			return nil, err
		}

		studentCtx.Subject = path.SubjectName
		studentCtx.Difficulty = path.DifficultyLevel
		contextData["subject"] = path.SubjectName
		contextData["difficulty"] = path.DifficultyLevel

		contextParts = append(contextParts, fmt.Sprintf(
			"The student is working on: '%s' (Completion: %.0f%%)",
			path.Title, path.CompletionPercentage))

		stats, err := s.progressRepo.StatsForPath(ctx, student.ID, path.ID)
		if err != nil {
			return nil, err
		}
		if stats.CompletedCount > 0 || stats.InProgressCount > 0 {
			contextParts = append(contextParts, fmt.Sprintf(
				"Progress: %d items completed, %d in progress. Average mastery: %.0f%%.",
				stats.CompletedCount, stats.InProgressCount, stats.AverageMastery))
		}
		if len(stats.Struggling) > 0 {
			contextParts = append(contextParts,
				fmt.Sprintf("Areas needing support: %s.", strings.Join(stats.Struggling, ", ")))
		}
		if len(stats.Strong) > 0 {
			contextParts = append(contextParts,
				fmt.Sprintf("Strong areas: %s.", strings.Join(stats.Strong, ", ")))
		}
	}

	if req.ContentID != nil {
		content, err := s.contentRepo.GetByID(ctx, *req.ContentID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, &NotFoundError{Message: "Content not found"}
			}
			return nil, err
		}
		contextData["current_content"] = content.Title
		contextData["content_type"] = content.ContentType
		contextParts = append(contextParts, fmt.Sprintf(
			"The student is currently viewing: '%s' (%s). Focus your help on this specific content.",
			content.Title, content.ContentType))
	}

	responseText := s.grok.Chat(ctx, req.Query, strings.Join(contextParts, " "), studentCtx)

	contextJSON, _ := json.Marshal(contextData)
	session := &models.MentorSession{
		StudentID:      student.ID,
		LearningPathID: req.LearningPathID,
		SessionType:    req.SessionType,
		Query:          req.Query,
		Response:       responseText,
		ContextJSON:    contextJSON,
	}
	if err := s.mentorRepo.CreateSession(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}

func (s *MentorService) checkRateLimit(ctx context.Context, studentID string) error {
	key := "mentor_chat:" + studentID
	count, err := s.redis.Incr(ctx, key).Result()
	if err != nil {
		// Redis being down should not block the mentor.
		return nil
	}
	if count == 1 {
		s.redis.Expire(ctx, key, time.Minute)
	}
	if count > mentorChatLimit {
		return &RateLimitError{Message: "Too many questions right now. Please wait a moment and try again."}
	}
	return nil
}
