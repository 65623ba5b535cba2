package models

import "github.com/google/uuid"

type Subject struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Code        string    `json:"code"`
	Description string    `json:"description"`
	GradeLevel  int       `json:"grade_level"`
}
