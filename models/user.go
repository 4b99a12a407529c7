package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a Lock-in account. Passwords are stored as bcrypt hashes only.
// LastCheckInDate is a calendar date, nil when the user has never checked in;
// StreakCount is zero whenever it is nil.
type User struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	Username        string         `gorm:"size:64;uniqueIndex;not null" json:"username"`
	Email           string         `gorm:"size:255" json:"email"`
	PasswordHash    string         `gorm:"size:255" json:"-"`
	Provider        string         `gorm:"size:32" json:"provider"`
	ProviderID      string         `gorm:"size:255" json:"provider_id"`
	AvatarURL       string         `gorm:"size:512" json:"avatar_url"`
	TotalXP         int            `gorm:"default:0" json:"total_xp"`
	Level           int            `gorm:"default:1" json:"level"`
	StreakCount     int            `gorm:"default:0" json:"streak_count"`
	LastCheckInDate *time.Time     `gorm:"type:date" json:"last_check_in_date"`
	TeamID          *uint          `gorm:"index" json:"team_id"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
	Goals           []Goal         `json:"-"`
	CheckIns        []CheckIn      `json:"-"`
}

// BeforeCreate hook ensures timestamps are set even when not provided.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = now
	return nil
}

// BeforeUpdate ensures the UpdatedAt timestamp is refreshed.
func (u *User) BeforeUpdate(tx *gorm.DB) error {
	u.UpdatedAt = time.Now()
	return nil
}
