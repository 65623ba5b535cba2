package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bedefrunner/xai-learning-experience-platform/internal/models"
)

type ContentRepo struct {
	pool *pgxpool.Pool
}

func NewContentRepo(pool *pgxpool.Pool) *ContentRepo {
	return &ContentRepo{pool: pool}
}

const contentSelect = `SELECT c.id, c.subject_id, s.name, c.title, c.content_type, c.description,
	c.content_body, c.difficulty_level, c.estimated_duration_minutes, c.external_url,
	c.file_attachments, c.created_at
	FROM content c JOIN subjects s ON s.id = c.subject_id`

func scanContent(row interface{ Scan(...interface{}) error }) (*models.Content, error) {
	c := &models.Content{}
	err := row.Scan(
		&c.ID, &c.SubjectID, &c.SubjectName, &c.Title, &c.ContentType, &c.Description,
		&c.ContentBody, &c.DifficultyLevel, &c.EstimatedDurationMinutes, &c.ExternalURL,
		&c.FileAttachments, &c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *ContentRepo) List(ctx context.Context, filter models.ContentFilter) ([]*models.Content, error) {
	query := contentSelect
	var args []interface{}
	argIdx := 1

	where := ""
	if filter.SubjectID != nil {
		where += fmt.Sprintf(" WHERE c.subject_id = $%d", argIdx)
		args = append(args, *filter.SubjectID)
		argIdx++
	}
	if filter.Difficulty != "" {
		if where == "" {
			where = fmt.Sprintf(" WHERE c.difficulty_level = $%d", argIdx)
		} else {
			where += fmt.Sprintf(" AND c.difficulty_level = $%d", argIdx)
		}
		args = append(args, filter.Difficulty)
	}

	rows, err := r.pool.Query(ctx, query+where+" ORDER BY s.name, c.difficulty_level, c.title", args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.Content
	for rows.Next() {
		c, err := scanContent(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

func (r *ContentRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Content, error) {
	return scanContent(r.pool.QueryRow(ctx, contentSelect+" WHERE c.id = $1", id))
}
