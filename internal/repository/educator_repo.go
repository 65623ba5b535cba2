package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bedefrunner/xai-learning-experience-platform/internal/models"
)

type EducatorRepo struct {
	pool *pgxpool.Pool
}

func NewEducatorRepo(pool *pgxpool.Pool) *EducatorRepo {
	return &EducatorRepo{pool: pool}
}

func (r *EducatorRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Educator, error) {
	e := &models.Educator{}
	query := `SELECT id, user_id, first_name, last_name, email, department, created_at
		FROM educators WHERE user_id = $1`

	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&e.ID, &e.UserID, &e.FirstName, &e.LastName, &e.Email, &e.Department, &e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return e, nil
}
