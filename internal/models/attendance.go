package models

import "github.com/google/uuid"

type Attendance struct {
	ID        uuid.UUID `json:"id"`
	StudentID uuid.UUID `json:"student_id"`
	Date      Date      `json:"date"`
	Status    string    `json:"status"` // present | absent | late | excused
	Notes     string    `json:"notes"`
}
