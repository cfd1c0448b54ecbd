package repository

import (
	"context"
	"errors"
	"time"

	"devpath.app/profileservice/internal/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type StreakRepository interface {
	// GetCurrent returns nil without error when the user has no open streak.
	GetCurrent(ctx context.Context, userID string) (*entity.StreakSnapshot, error)
	// Save upserts the snapshot for the user, replacing it wholesale.
	Save(ctx context.Context, snapshot *entity.StreakSnapshot) error
	UpdateLength(ctx context.Context, userID string, length int) error
	UpdateLastActive(ctx context.Context, userID string, day time.Time) error
	AddPoints(ctx context.Context, userID string, points int) error
	Reset(ctx context.Context, userID string) error
}

type streakRepository struct {
	db *gorm.DB
}

func NewStreakRepository(db *gorm.DB) StreakRepository {
	return &streakRepository{db: db}
}

func (r *streakRepository) GetCurrent(ctx context.Context, userID string) (*entity.StreakSnapshot, error) {
	var snapshot entity.StreakSnapshot
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&snapshot).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &snapshot, nil
}

func (r *streakRepository) Save(ctx context.Context, snapshot *entity.StreakSnapshot) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"start_date":       snapshot.StartDate,
			"last_active":      snapshot.LastActive,
			"length_days":      snapshot.LengthDays,
			"points_in_streak": snapshot.PointsInStreak,
			"updated_at":       gorm.Expr("CURRENT_TIMESTAMP"),
		}),
	}).Create(snapshot).Error
}

func (r *streakRepository) UpdateLength(ctx context.Context, userID string, length int) error {
	return r.db.WithContext(ctx).Model(&entity.StreakSnapshot{}).
		Where("user_id = ?", userID).
		Update("length_days", length).Error
}

func (r *streakRepository) UpdateLastActive(ctx context.Context, userID string, day time.Time) error {
	return r.db.WithContext(ctx).Model(&entity.StreakSnapshot{}).
		Where("user_id = ?", userID).
		Update("last_active", day).Error
}

func (r *streakRepository) AddPoints(ctx context.Context, userID string, points int) error {
	return r.db.WithContext(ctx).Model(&entity.StreakSnapshot{}).
		Where("user_id = ?", userID).
		Update("points_in_streak", gorm.Expr("points_in_streak + ?", points)).Error
}

func (r *streakRepository) Reset(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&entity.StreakSnapshot{}).Error
}
