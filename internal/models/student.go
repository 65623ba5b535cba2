package models

import (
	"time"

	"github.com/google/uuid"
)

type Student struct {
	ID             uuid.UUID `json:"id"`
	UserID         uuid.UUID `json:"-"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	Email          string    `json:"email"`
	DateOfBirth    Date      `json:"date_of_birth"`
	Gender         string    `json:"gender"` // M | F | O | N
	GradeLevel     int       `json:"grade_level"`
	EnrollmentDate Date      `json:"enrollment_date"`
	IsActive       bool      `json:"is_active"`
	PhoneNumber    *string   `json:"phone_number"`
	Address        *string   `json:"address"`
	CreatedAt      time.Time `json:"-"`
}

func (s *Student) FullName() string {
	return s.FirstName + " " + s.LastName
}

type CreateStudentRequest struct {
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	Email       string  `json:"email"`
	Password    string  `json:"password"`
	DateOfBirth Date    `json:"date_of_birth"`
	Gender      string  `json:"gender"`
	GradeLevel  int     `json:"grade_level"`
	PhoneNumber *string `json:"phone_number"`
	Address     *string `json:"address"`
}

type Educator struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"-"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	Email      string    `json:"email"`
	Department string    `json:"department"`
	CreatedAt  time.Time `json:"-"`
}

func (e *Educator) FullName() string {
	return e.FirstName + " " + e.LastName
}
