package entity

import (
	"time"
)

// DailyActivity accumulates per-user event counts and point sums for one
// calendar day. One row per user per day; Domain keeps the domain of the
// first event of that day even when later events carry a different one.
type DailyActivity struct {
	ID     uint      `gorm:"primaryKey" json:"id"`
	UserID string    `gorm:"size:64;uniqueIndex:idx_user_day,priority:1;not null" json:"user_id"`
	Day    time.Time `gorm:"type:date;uniqueIndex:idx_user_day,priority:2;not null" json:"day"`
	Domain string    `gorm:"size:50;not null" json:"domain"`
	Events int       `gorm:"not null;default:0" json:"events"`
	Points int       `gorm:"not null;default:0" json:"points"`
}

func (DailyActivity) TableName() string {
	return "daily_activities"
}
