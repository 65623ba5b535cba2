package models

import (
	"time"

	"github.com/google/uuid"
)

type Badge struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	Criteria    string    `json:"criteria"`
	Points      int       `json:"points"`
}

type StudentBadge struct {
	Badge
	EarnedAt time.Time `json:"earned_at"`
}
