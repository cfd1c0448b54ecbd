package entity

import (
	"time"
)

// ProfileUser is the per-user gamification profile. Level is always the
// result of the level rule lookup applied to PointsCurrent, and
// CurrentStreakDays always mirrors the streak reconciler's view.
type ProfileUser struct {
	UserID            string    `gorm:"primaryKey;size:64" json:"user_id"`
	PointsCurrent     int       `gorm:"not null;default:0" json:"points_current"`
	Level             int       `gorm:"not null;default:1" json:"level"`
	CurrentStreakDays int       `gorm:"not null;default:0" json:"current_streak_days"`
	StreakBest        int       `gorm:"not null;default:0" json:"streak_best"`
	Seniority         string    `gorm:"size:50;not null;default:'Junior'" json:"seniority"`
	Specialization    string    `gorm:"size:100;not null;default:'General'" json:"specialization"`
	AvatarURL         *string   `gorm:"size:512" json:"avatar_url"`
	AvatarPublicID    *string   `gorm:"size:255" json:"-"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func (ProfileUser) TableName() string {
	return "profile_users"
}
