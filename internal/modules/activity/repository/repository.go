package repository

import (
	"context"
	"errors"
	"time"

	"devpath.app/profileservice/internal/entity"
	"gorm.io/gorm"
)

type DailyActivityRepository interface {
	// FindByUserAndDay returns nil without error when no row exists yet.
	FindByUserAndDay(ctx context.Context, userID string, day time.Time) (*entity.DailyActivity, error)
	// FindByUserAndDateRange returns rows ordered by day ascending,
	// optionally filtered by domain.
	FindByUserAndDateRange(ctx context.Context, userID string, start, end time.Time, domain string) ([]entity.DailyActivity, error)
	Create(ctx context.Context, activity *entity.DailyActivity) error
	Update(ctx context.Context, activity *entity.DailyActivity) error
}

type dailyActivityRepository struct {
	db *gorm.DB
}

func NewDailyActivityRepository(db *gorm.DB) DailyActivityRepository {
	return &dailyActivityRepository{db: db}
}

func (r *dailyActivityRepository) FindByUserAndDay(ctx context.Context, userID string, day time.Time) (*entity.DailyActivity, error) {
	var activity entity.DailyActivity
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND day = ?", userID, day).
		First(&activity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &activity, nil
}

func (r *dailyActivityRepository) FindByUserAndDateRange(ctx context.Context, userID string, start, end time.Time, domain string) ([]entity.DailyActivity, error) {
	query := r.db.WithContext(ctx).
		Where("user_id = ? AND day >= ? AND day <= ?", userID, start, end)

	if domain != "" {
		query = query.Where("domain = ?", domain)
	}

	var activities []entity.DailyActivity
	if err := query.Order("day ASC").Find(&activities).Error; err != nil {
		return nil, err
	}
	return activities, nil
}

func (r *dailyActivityRepository) Create(ctx context.Context, activity *entity.DailyActivity) error {
	return r.db.WithContext(ctx).Create(activity).Error
}

func (r *dailyActivityRepository) Update(ctx context.Context, activity *entity.DailyActivity) error {
	return r.db.WithContext(ctx).Save(activity).Error
}
