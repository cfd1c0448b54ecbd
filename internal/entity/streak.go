package entity

import (
	"time"
)

// StreakSnapshot tracks the currently open streak for a user. Past streaks
// are not kept here; a broken streak replaces the row wholesale.
type StreakSnapshot struct {
	UserID         string    `gorm:"primaryKey;size:64" json:"user_id"`
	StartDate      time.Time `gorm:"type:date;not null" json:"start_date"`
	LastActive     time.Time `gorm:"type:date;not null" json:"last_active"`
	LengthDays     int       `gorm:"not null;default:1" json:"length_days"`
	PointsInStreak int       `gorm:"not null;default:0" json:"points_in_streak"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (StreakSnapshot) TableName() string {
	return "streak_snapshots"
}
