package models

import "time"

// Team groups users for the team leaderboard. TotalXP is denormalized from
// member check-ins and periodically reconciled against the ledger.
type Team struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Name       string    `gorm:"size:255;not null" json:"name"`
	InviteCode string    `gorm:"size:64;uniqueIndex;not null" json:"invite_code"`
	TotalXP    int       `gorm:"default:0" json:"total_xp"`
	CreatedAt  time.Time `json:"created_at"`
}

// TeamMembership links a user to a team.
type TeamMembership struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	UserID   uint      `gorm:"index;not null" json:"user_id"`
	TeamID   uint      `gorm:"index;not null" json:"team_id"`
	JoinedAt time.Time `gorm:"autoCreateTime" json:"joined_at"`
}
