package repository

import (
	"context"
	"errors"
	"time"

	"devpath.app/profileservice/internal/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type WeeklyProgressRepository interface {
	// GetWeek returns nil without error when no row exists for the week.
	GetWeek(ctx context.Context, userID string, weekStart time.Time) (*entity.WeeklyProgress, error)
	// Save upserts the week row keyed by (user, week start).
	Save(ctx context.Context, progress *entity.WeeklyProgress) error
}

type weeklyProgressRepository struct {
	db *gorm.DB
}

func NewWeeklyProgressRepository(db *gorm.DB) WeeklyProgressRepository {
	return &weeklyProgressRepository{db: db}
}

func (r *weeklyProgressRepository) GetWeek(ctx context.Context, userID string, weekStart time.Time) (*entity.WeeklyProgress, error) {
	var progress entity.WeeklyProgress
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND week_start_date = ?", userID, weekStart).
		First(&progress).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &progress, nil
}

func (r *weeklyProgressRepository) Save(ctx context.Context, progress *entity.WeeklyProgress) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "week_start_date"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"monday":            progress.Monday,
			"tuesday":           progress.Tuesday,
			"wednesday":         progress.Wednesday,
			"thursday":          progress.Thursday,
			"friday":            progress.Friday,
			"saturday":          progress.Saturday,
			"sunday":            progress.Sunday,
			"current_streak":    progress.CurrentStreak,
			"total_active_days": progress.TotalActiveDays,
			"updated_at":        gorm.Expr("CURRENT_TIMESTAMP"),
		}),
	}).Create(progress).Error
}
