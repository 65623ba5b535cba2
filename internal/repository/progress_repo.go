package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bedefrunner/xai-learning-experience-platform/internal/models"
)

type ProgressRepo struct {
	pool *pgxpool.Pool
}

func NewProgressRepo(pool *pgxpool.Pool) *ProgressRepo {
	return &ProgressRepo{pool: pool}
}

const progressSelect = `SELECT p.id, p.student_id, p.learning_path_id, p.content_id, c.title,
	p.status, p.completion_percentage, p.time_spent_minutes, p.mastery_level, p.score,
	p.notes, p.started_at, p.completed_at, p.updated_at
	FROM progress p JOIN content c ON c.id = p.content_id`

func scanProgress(row interface{ Scan(...interface{}) error }) (*models.Progress, error) {
	p := &models.Progress{}
	err := row.Scan(
		&p.ID, &p.StudentID, &p.LearningPathID, &p.ContentID, &p.ContentTitle,
		&p.Status, &p.CompletionPercentage, &p.TimeSpentMinutes, &p.MasteryLevel, &p.Score,
		&p.Notes, &p.StartedAt, &p.CompletedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *ProgressRepo) List(ctx context.Context, filter models.ProgressFilter) ([]*models.Progress, error) {
	var clauses []string
	var args []interface{}

	if filter.StudentID != nil {
		args = append(args, *filter.StudentID)
		clauses = append(clauses, fmt.Sprintf("p.student_id = $%d", len(args)))
	}
	if filter.LearningPathID != nil {
		args = append(args, *filter.LearningPathID)
		clauses = append(clauses, fmt.Sprintf("p.learning_path_id = $%d", len(args)))
	}

	query := progressSelect
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY p.updated_at DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*models.Progress
	for rows.Next() {
		p, err := scanProgress(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, p)
	}
	return records, rows.Err()
}

func (r *ProgressRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Progress, error) {
	return scanProgress(r.pool.QueryRow(ctx, progressSelect+" WHERE p.id = $1", id))
}

func (r *ProgressRepo) GetByTriple(ctx context.Context, studentID, pathID, contentID uuid.UUID) (*models.Progress, error) {
	return scanProgress(r.pool.QueryRow(ctx,
		progressSelect+" WHERE p.student_id = $1 AND p.learning_path_id = $2 AND p.content_id = $3",
		studentID, pathID, contentID))
}

// Update applies a partial update. A transition to in_progress stamps
// started_at once; a transition to completed stamps completed_at once.
func (r *ProgressRepo) Update(ctx context.Context, id uuid.UUID, upd models.ProgressUpdate) (*models.Progress, error) {
	sets := []string{"updated_at = NOW()"}
	var args []interface{}

	if upd.Status != nil {
		args = append(args, *upd.Status)
		sets = append(sets, fmt.Sprintf("status = $%d", len(args)))
		switch *upd.Status {
		case models.ProgressInProgress:
			sets = append(sets, "started_at = COALESCE(started_at, NOW())")
		case models.ProgressCompleted:
			sets = append(sets, "completed_at = COALESCE(completed_at, NOW())")
		}
	}
	if upd.CompletionPercentage != nil {
		args = append(args, *upd.CompletionPercentage)
		sets = append(sets, fmt.Sprintf("completion_percentage = $%d", len(args)))
	}
	if upd.TimeSpentMinutes != nil {
		args = append(args, *upd.TimeSpentMinutes)
		sets = append(sets, fmt.Sprintf("time_spent_minutes = $%d", len(args)))
	}
	if upd.MasteryLevel != nil {
		args = append(args, *upd.MasteryLevel)
		sets = append(sets, fmt.Sprintf("mastery_level = $%d", len(args)))
	}
	if upd.Score != nil {
		args = append(args, *upd.Score)
		sets = append(sets, fmt.Sprintf("score = $%d", len(args)))
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE progress SET %s WHERE id = $%d", strings.Join(sets, ", "), len(args))

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// PathStats summarizes one student's progress inside one learning path; the
// mentor service feeds it to the AI as context.
type PathStats struct {
	CompletedCount  int
	InProgressCount int
	AverageMastery  float64
	Struggling      []string // content titles with mastery < 60, max 3
	Strong          []string // content titles with mastery >= 80, max 3
}

func (r *ProgressRepo) StatsForPath(ctx context.Context, studentID, pathID uuid.UUID) (*PathStats, error) {
	stats := &PathStats{}
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FILTER (WHERE status = 'completed'),
			COUNT(*) FILTER (WHERE status = 'in_progress'),
			COALESCE(AVG(mastery_level), 0)
		 FROM progress WHERE student_id = $1 AND learning_path_id = $2`,
		studentID, pathID,
	).Scan(&stats.CompletedCount, &stats.InProgressCount, &stats.AverageMastery)
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT c.title, p.mastery_level
		 FROM progress p JOIN content c ON c.id = p.content_id
		 WHERE p.student_id = $1 AND p.learning_path_id = $2
		   AND (p.mastery_level < 60 OR p.mastery_level >= 80)
		 ORDER BY p.mastery_level`,
		studentID, pathID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var title string
		var mastery float64
		if err := rows.Scan(&title, &mastery); err != nil {
			return nil, err
		}
		if mastery < 60 && len(stats.Struggling) < 3 {
			stats.Struggling = append(stats.Struggling, title)
		}
		if mastery >= 80 && len(stats.Strong) < 3 {
			stats.Strong = append(stats.Strong, title)
		}
	}
	return stats, rows.Err()
}

func (r *ProgressRepo) AverageMastery(ctx context.Context, studentID uuid.UUID) (float64, error) {
	var avg float64
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(AVG(mastery_level), 0) FROM progress WHERE student_id = $1`,
		studentID,
	).Scan(&avg)
	return avg, err
}

func (r *ProgressRepo) RecentByStudent(ctx context.Context, studentID uuid.UUID, limit int) ([]*models.Progress, error) {
	rows, err := r.pool.Query(ctx,
		progressSelect+" WHERE p.student_id = $1 ORDER BY p.updated_at DESC LIMIT $2",
		studentID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*models.Progress
	for rows.Next() {
		p, err := scanProgress(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, p)
	}
	return records, rows.Err()
}

func (r *ProgressRepo) NeedsReview(ctx context.Context) ([]models.AttentionItem, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT DISTINCT p.student_id, s.first_name || ' ' || s.last_name, c.title
		 FROM progress p
		 JOIN students s ON s.id = p.student_id
		 JOIN content c ON c.id = p.content_id
		 WHERE p.status = 'needs_review'`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.AttentionItem
	for rows.Next() {
		var it models.AttentionItem
		if err := rows.Scan(&it.StudentID, &it.StudentName, &it.ContentTitle); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
