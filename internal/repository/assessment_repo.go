package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bedefrunner/xai-learning-experience-platform/internal/models"
)

type AssessmentRepo struct {
	pool *pgxpool.Pool
}

func NewAssessmentRepo(pool *pgxpool.Pool) *AssessmentRepo {
	return &AssessmentRepo{pool: pool}
}

const assessmentSelect = `SELECT a.id, a.subject_id, s.name, a.content_id, a.title, a.assessment_type,
	a.description, a.questions, a.total_points, a.passing_score, a.difficulty_level,
	a.time_limit_minutes, a.created_at
	FROM assessments a JOIN subjects s ON s.id = a.subject_id`

func scanAssessment(row interface{ Scan(...interface{}) error }) (*models.Assessment, error) {
	a := &models.Assessment{}
	err := row.Scan(
		&a.ID, &a.SubjectID, &a.SubjectName, &a.ContentID, &a.Title, &a.AssessmentType,
		&a.Description, &a.Questions, &a.TotalPoints, &a.PassingScore, &a.DifficultyLevel,
		&a.TimeLimitMinutes, &a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *AssessmentRepo) List(ctx context.Context, subjectID *uuid.UUID) ([]*models.Assessment, error) {
	query := assessmentSelect
	var args []interface{}
	if subjectID != nil {
		query += " WHERE a.subject_id = $1"
		args = append(args, *subjectID)
	}
	query += " ORDER BY s.name, a.difficulty_level, a.title"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assessments []*models.Assessment
	for rows.Next() {
		a, err := scanAssessment(rows)
		if err != nil {
			return nil, err
		}
		assessments = append(assessments, a)
	}
	return assessments, rows.Err()
}

func (r *AssessmentRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Assessment, error) {
	return scanAssessment(r.pool.QueryRow(ctx, assessmentSelect+" WHERE a.id = $1", id))
}

func (r *AssessmentRepo) CreateResult(ctx context.Context, res *models.AssessmentResult) error {
	res.ID = uuid.New()
	return r.pool.QueryRow(ctx,
		`INSERT INTO assessment_results (id, student_id, assessment_id, learning_path_id, answers,
			score, passed, started_at, submitted_at, time_taken_minutes, feedback, ai_feedback)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 RETURNING created_at`,
		res.ID, res.StudentID, res.AssessmentID, res.LearningPathID, res.Answers,
		res.Score, res.Passed, res.StartedAt, res.SubmittedAt, res.TimeTakenMinutes,
		res.Feedback, res.AIFeedback,
	).Scan(&res.CreatedAt)
}

const resultSelect = `SELECT r.id, r.student_id, r.assessment_id, a.title, r.learning_path_id,
	r.answers, r.score, r.passed, r.feedback, r.ai_feedback, r.started_at, r.submitted_at,
	r.time_taken_minutes, r.created_at
	FROM assessment_results r JOIN assessments a ON a.id = r.assessment_id`

func (r *AssessmentRepo) listResults(ctx context.Context, query string, args ...interface{}) ([]*models.AssessmentResult, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []*models.AssessmentResult
	for rows.Next() {
		res := &models.AssessmentResult{}
		err := rows.Scan(
			&res.ID, &res.StudentID, &res.AssessmentID, &res.AssessmentTitle, &res.LearningPathID,
			&res.Answers, &res.Score, &res.Passed, &res.Feedback, &res.AIFeedback,
			&res.StartedAt, &res.SubmittedAt, &res.TimeTakenMinutes, &res.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, rows.Err()
}

func (r *AssessmentRepo) RecentResultsByStudent(ctx context.Context, studentID uuid.UUID, limit int) ([]*models.AssessmentResult, error) {
	return r.listResults(ctx,
		resultSelect+" WHERE r.student_id = $1 ORDER BY r.created_at DESC LIMIT $2",
		studentID, limit)
}

func (r *AssessmentRepo) RecentResults(ctx context.Context, limit int) ([]*models.AssessmentResult, error) {
	return r.listResults(ctx, resultSelect+" ORDER BY r.created_at DESC LIMIT $1", limit)
}

func (r *AssessmentRepo) CountResultsByStudent(ctx context.Context, studentID uuid.UUID) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM assessment_results WHERE student_id = $1`, studentID,
	).Scan(&count)
	return count, err
}
