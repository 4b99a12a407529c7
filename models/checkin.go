package models

import "time"

// CheckIn is the append-only ledger of daily check-in events.
// The unique (user_id, check_in_date) index enforces at most one successful
// check-in per user per calendar day, even under concurrent requests.
type CheckIn struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"index:idx_checkins_user_date,unique;not null" json:"user_id"`
	GoalID      uint      `gorm:"index;not null" json:"goal_id"`
	CheckInDate time.Time `gorm:"index:idx_checkins_user_date,unique;type:date;not null" json:"check_in_date"`
	XPEarned    int       `gorm:"default:0" json:"xp_earned"`
	CreatedAt   time.Time `json:"created_at"`
}
