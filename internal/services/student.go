package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/bedefrunner/xai-learning-experience-platform/internal/models"
	"github.com/bedefrunner/xai-learning-experience-platform/internal/repository"
)

type StudentService struct {
	studentRepo *repository.StudentRepo
	userRepo    *repository.UserRepo
}

func NewStudentService(studentRepo *repository.StudentRepo, userRepo *repository.UserRepo) *StudentService {
	return &StudentService{studentRepo: studentRepo, userRepo: userRepo}
}

func (s *StudentService) List(ctx context.Context) ([]*models.Student, error) {
	return s.studentRepo.List(ctx)
}

func (s *StudentService) Get(ctx context.Context, id uuid.UUID) (*models.Student, error) {
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &NotFoundError{Message: "Student not found"}
		}
		return nil, err
	}
	return student, nil
}

func (s *StudentService) Create(ctx context.Context, req models.CreateStudentRequest) (*models.Student, error) {
	fieldErrors := make(map[string]string)
	if strings.TrimSpace(req.FirstName) == "" {
		fieldErrors["first_name"] = "First name is required"
	}
	if strings.TrimSpace(req.LastName) == "" {
		fieldErrors["last_name"] = "Last name is required"
	}
	if !strings.Contains(req.Email, "@") {
		fieldErrors["email"] = "A valid email is required"
	}
	if len(req.Password) < 8 {
		fieldErrors["password"] = "Password must be at least 8 characters"
	}
	if req.GradeLevel < 1 || req.GradeLevel > 12 {
		fieldErrors["grade_level"] = "Grade level must be between 1 and 12"
	}
	if req.DateOfBirth.IsZero() {
		fieldErrors["date_of_birth"] = "Date of birth is required"
	}
	if len(fieldErrors) > 0 {
		return nil, &ValidationError{Fields: fieldErrors}
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, &ConflictError{Message: "Email already registered"}
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		return nil, err
	}

	student := &models.Student{
		Email:       email,
		FirstName:   strings.TrimSpace(req.FirstName),
		LastName:    strings.TrimSpace(req.LastName),
		DateOfBirth: req.DateOfBirth,
		Gender:      req.Gender,
		GradeLevel:  req.GradeLevel,
		PhoneNumber: req.PhoneNumber,
		Address:     req.Address,
	}
	if err := s.studentRepo.Create(ctx, string(hash), student); err != nil {
		return nil, err
	}
	return student, nil
}

func (s *StudentService) Badges(ctx context.Context, studentID uuid.UUID) ([]*models.StudentBadge, error) {
	if _, err := s.Get(ctx, studentID); err != nil {
		return nil, err
	}
	return s.studentRepo.ListBadges(ctx, studentID)
}
