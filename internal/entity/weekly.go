package entity

import (
	"time"

	"github.com/google/uuid"
)

// WeeklyProgress is the 7-slot completion calendar for one user and one
// Monday-anchored week. Slots are only ever flipped false to true within a
// week; TotalActiveDays always equals the count of true slots.
type WeeklyProgress struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          string    `gorm:"size:64;uniqueIndex:idx_user_week,priority:1;not null" json:"user_id"`
	WeekStartDate   time.Time `gorm:"type:date;uniqueIndex:idx_user_week,priority:2;not null" json:"week_start_date"`
	Monday          bool      `gorm:"not null;default:false" json:"-"`
	Tuesday         bool      `gorm:"not null;default:false" json:"-"`
	Wednesday       bool      `gorm:"not null;default:false" json:"-"`
	Thursday        bool      `gorm:"not null;default:false" json:"-"`
	Friday          bool      `gorm:"not null;default:false" json:"-"`
	Saturday        bool      `gorm:"not null;default:false" json:"-"`
	Sunday          bool      `gorm:"not null;default:false" json:"-"`
	CurrentStreak   int       `gorm:"not null;default:0" json:"current_streak"`
	TotalActiveDays int       `gorm:"not null;default:0" json:"total_active_days"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (WeeklyProgress) TableName() string {
	return "weekly_progress"
}

// CompletedDays returns the calendar as a Monday-first slice of 7 booleans.
func (w *WeeklyProgress) CompletedDays() []bool {
	return []bool{w.Monday, w.Tuesday, w.Wednesday, w.Thursday, w.Friday, w.Saturday, w.Sunday}
}

// SetCompletedDay flips the slot at the Monday-first index to the given value.
func (w *WeeklyProgress) SetCompletedDay(index int, completed bool) {
	switch index {
	case 0:
		w.Monday = completed
	case 1:
		w.Tuesday = completed
	case 2:
		w.Wednesday = completed
	case 3:
		w.Thursday = completed
	case 4:
		w.Friday = completed
	case 5:
		w.Saturday = completed
	case 6:
		w.Sunday = completed
	}
}

// CountActiveDays recomputes the number of true slots.
func (w *WeeklyProgress) CountActiveDays() int {
	count := 0
	for _, done := range w.CompletedDays() {
		if done {
			count++
		}
	}
	return count
}
