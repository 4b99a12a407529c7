package models

import "time"

// Difficulty is a fixed attribute of a goal determining its XP reward.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Valid reports whether the difficulty is one of the known values.
// A false result on a stored goal indicates data corruption and must be
// surfaced, never coerced to a default reward.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Goal is a recurring habit a user checks in against once per day.
type Goal struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	UserID       uint       `gorm:"index;not null" json:"user_id"`
	Title        string     `gorm:"size:255;not null" json:"title"`
	Description  string     `gorm:"type:text" json:"description"`
	Difficulty   Difficulty `gorm:"size:16;not null" json:"difficulty"`
	TimeEstimate int        `gorm:"default:30" json:"time_estimate"` // minutes
	Completed    bool       `gorm:"default:false" json:"completed"`
	IsArchived   bool       `gorm:"default:false" json:"is_archived"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
