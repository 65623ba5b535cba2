package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bedefrunner/xai-learning-experience-platform/internal/models"
)

type StudentRepo struct {
	pool *pgxpool.Pool
}

func NewStudentRepo(pool *pgxpool.Pool) *StudentRepo {
	return &StudentRepo{pool: pool}
}

const studentColumns = `id, user_id, first_name, last_name, email, date_of_birth, gender,
	grade_level, enrollment_date, is_active, phone_number, address, created_at`

func scanStudent(row interface{ Scan(...interface{}) error }) (*models.Student, error) {
	s := &models.Student{}
	err := row.Scan(
		&s.ID, &s.UserID, &s.FirstName, &s.LastName, &s.Email, &s.DateOfBirth, &s.Gender,
		&s.GradeLevel, &s.EnrollmentDate, &s.IsActive, &s.PhoneNumber, &s.Address, &s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *StudentRepo) List(ctx context.Context) ([]*models.Student, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+studentColumns+` FROM students ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		students = append(students, s)
	}
	return students, rows.Err()
}

func (r *StudentRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Student, error) {
	return scanStudent(r.pool.QueryRow(ctx, `SELECT `+studentColumns+` FROM students WHERE id = $1`, id))
}

func (r *StudentRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Student, error) {
	return scanStudent(r.pool.QueryRow(ctx, `SELECT `+studentColumns+` FROM students WHERE user_id = $1`, userID))
}

// Create inserts the auth user and the student profile in one transaction.
func (r *StudentRepo) Create(ctx context.Context, passwordHash string, s *models.Student) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	s.UserID = uuid.New()
	err = tx.QueryRow(ctx,
		`INSERT INTO users (id, email, password_hash, user_type) VALUES ($1, $2, $3, 'student') RETURNING id`,
		s.UserID, s.Email, passwordHash,
	).Scan(&s.UserID)
	if err != nil {
		return err
	}

	s.ID = uuid.New()
	err = tx.QueryRow(ctx,
		`INSERT INTO students (id, user_id, first_name, last_name, email, date_of_birth, gender, grade_level, phone_number, address)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING enrollment_date, is_active, created_at`,
		s.ID, s.UserID, s.FirstName, s.LastName, s.Email, s.DateOfBirth, s.Gender,
		s.GradeLevel, s.PhoneNumber, s.Address,
	).Scan(&s.EnrollmentDate, &s.IsActive, &s.CreatedAt)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *StudentRepo) ListBadges(ctx context.Context, studentID uuid.UUID) ([]*models.StudentBadge, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT b.id, b.name, b.description, b.icon, b.criteria, b.points, sb.earned_at
		 FROM student_badges sb
		 JOIN badges b ON b.id = sb.badge_id
		 WHERE sb.student_id = $1
		 ORDER BY sb.earned_at DESC`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var badges []*models.StudentBadge
	for rows.Next() {
		sb := &models.StudentBadge{}
		err := rows.Scan(&sb.ID, &sb.Name, &sb.Description, &sb.Icon, &sb.Criteria, &sb.Points, &sb.EarnedAt)
		if err != nil {
			return nil, err
		}
		badges = append(badges, sb)
	}
	return badges, rows.Err()
}
