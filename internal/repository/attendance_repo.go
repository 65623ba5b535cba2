package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bedefrunner/xai-learning-experience-platform/internal/models"
)

type AttendanceRepo struct {
	pool *pgxpool.Pool
}

func NewAttendanceRepo(pool *pgxpool.Pool) *AttendanceRepo {
	return &AttendanceRepo{pool: pool}
}

type AttendanceFilter struct {
	StudentID *string // uuid string; nil for all students
	DateFrom  *models.Date
}

func (r *AttendanceRepo) List(ctx context.Context, filter AttendanceFilter) ([]*models.Attendance, error) {
	var clauses []string
	var args []interface{}

	if filter.StudentID != nil {
		args = append(args, *filter.StudentID)
		clauses = append(clauses, fmt.Sprintf("student_id = $%d", len(args)))
	}
	if filter.DateFrom != nil {
		args = append(args, filter.DateFrom.Time)
		clauses = append(clauses, fmt.Sprintf("date >= $%d", len(args)))
	}

	query := `SELECT id, student_id, date, status, notes FROM attendance`
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY date DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*models.Attendance
	for rows.Next() {
		a := &models.Attendance{}
		if err := rows.Scan(&a.ID, &a.StudentID, &a.Date, &a.Status, &a.Notes); err != nil {
			return nil, err
		}
		records = append(records, a)
	}
	return records, rows.Err()
}
