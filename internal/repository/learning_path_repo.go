package repository

import (
	"context"
	"math"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bedefrunner/xai-learning-experience-platform/internal/models"
)

type LearningPathRepo struct {
	pool *pgxpool.Pool
}

func NewLearningPathRepo(pool *pgxpool.Pool) *LearningPathRepo {
	return &LearningPathRepo{pool: pool}
}

// Completion is authoritative here: completed progress records over assigned
// content, rounded to two decimals. Clients only display it.
const pathSelect = `SELECT lp.id, lp.student_id, st.first_name || ' ' || st.last_name,
	lp.subject_id, s.name, lp.title, lp.description, lp.difficulty_level,
	lp.personalized_goals, lp.recommended_resources, lp.start_date,
	lp.target_completion_date, lp.is_active, lp.created_at,
	(SELECT COUNT(*) FROM content_assignments ca WHERE ca.learning_path_id = lp.id),
	(SELECT COUNT(*) FROM progress p WHERE p.learning_path_id = lp.id AND p.completed_at IS NOT NULL)
	FROM learning_paths lp
	JOIN students st ON st.id = lp.student_id
	JOIN subjects s ON s.id = lp.subject_id`

func scanPath(row interface{ Scan(...interface{}) error }) (*models.LearningPath, error) {
	lp := &models.LearningPath{}
	var total, completed int
	err := row.Scan(
		&lp.ID, &lp.StudentID, &lp.StudentName, &lp.SubjectID, &lp.SubjectName,
		&lp.Title, &lp.Description, &lp.DifficultyLevel,
		&lp.PersonalizedGoals, &lp.RecommendedResources, &lp.StartDate,
		&lp.TargetCompletionDate, &lp.IsActive, &lp.CreatedAt,
		&total, &completed,
	)
	if err != nil {
		return nil, err
	}
	if total > 0 {
		lp.CompletionPercentage = math.Round(float64(completed)/float64(total)*100*100) / 100
	}
	return lp, nil
}

func (r *LearningPathRepo) List(ctx context.Context, studentID *uuid.UUID, activeOnly bool) ([]*models.LearningPath, error) {
	query := pathSelect
	var args []interface{}

	where := ""
	if studentID != nil {
		where = " WHERE lp.student_id = $1"
		args = append(args, *studentID)
	}
	if activeOnly {
		if where == "" {
			where = " WHERE lp.is_active"
		} else {
			where += " AND lp.is_active"
		}
	}

	rows, err := r.pool.Query(ctx, query+where+" ORDER BY lp.created_at DESC", args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var paths []*models.LearningPath
	for rows.Next() {
		lp, err := scanPath(rows)
		if err != nil {
			return nil, err
		}
		paths = append(paths, lp)
	}
	return paths, rows.Err()
}

func (r *LearningPathRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.LearningPath, error) {
	return scanPath(r.pool.QueryRow(ctx, pathSelect+" WHERE lp.id = $1", id))
}

// Create inserts the path, its ordered content assignments, and one
// not_started progress record per assigned content item, in one transaction.
func (r *LearningPathRepo) Create(ctx context.Context, lp *models.LearningPath, contentIDs []uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	lp.ID = uuid.New()
	err = tx.QueryRow(ctx,
		`INSERT INTO learning_paths (id, student_id, subject_id, title, description, difficulty_level,
			personalized_goals, recommended_resources, start_date, target_completion_date)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING is_active, created_at`,
		lp.ID, lp.StudentID, lp.SubjectID, lp.Title, lp.Description, lp.DifficultyLevel,
		lp.PersonalizedGoals, lp.RecommendedResources, lp.StartDate, lp.TargetCompletionDate,
	).Scan(&lp.IsActive, &lp.CreatedAt)
	if err != nil {
		return err
	}

	for order, contentID := range contentIDs {
		_, err = tx.Exec(ctx,
			`INSERT INTO content_assignments (learning_path_id, content_id, ord, is_required)
			 VALUES ($1, $2, $3, TRUE)`,
			lp.ID, contentID, order+1,
		)
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx,
			`INSERT INTO progress (student_id, learning_path_id, content_id, status)
			 VALUES ($1, $2, $3, 'not_started')`,
			lp.StudentID, lp.ID, contentID,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}
