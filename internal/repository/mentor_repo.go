package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bedefrunner/xai-learning-experience-platform/internal/models"
)

type MentorRepo struct {
	pool *pgxpool.Pool
}

func NewMentorRepo(pool *pgxpool.Pool) *MentorRepo {
	return &MentorRepo{pool: pool}
}

func (r *MentorRepo) CreateSession(ctx context.Context, s *models.MentorSession) error {
	s.ID = uuid.New()
	return r.pool.QueryRow(ctx,
		`INSERT INTO mentor_sessions (id, student_id, learning_path_id, session_type, query, response, context_json)
		 VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING created_at`,
		s.ID, s.StudentID, s.LearningPathID, s.SessionType, s.Query, s.Response, s.ContextJSON,
	).Scan(&s.CreatedAt)
}

func (r *MentorRepo) ListByStudent(ctx context.Context, studentID uuid.UUID, limit int) ([]*models.MentorSession, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, student_id, learning_path_id, session_type, query, response, context_json, created_at
		 FROM mentor_sessions WHERE student_id = $1 ORDER BY created_at DESC LIMIT $2`,
		studentID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []*models.MentorSession
	for rows.Next() {
		s := &models.MentorSession{}
		err := rows.Scan(&s.ID, &s.StudentID, &s.LearningPathID, &s.SessionType,
			&s.Query, &s.Response, &s.ContextJSON, &s.CreatedAt)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}
