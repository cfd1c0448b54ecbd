package repository

import (
	"context"
	"errors"

	"devpath.app/profileservice/internal/entity"
	"gorm.io/gorm"
)

type ProfileRepository interface {
	// FindByID returns nil without error when the profile does not exist.
	FindByID(ctx context.Context, userID string) (*entity.ProfileUser, error)
	Create(ctx context.Context, profile *entity.ProfileUser) error
	Update(ctx context.Context, profile *entity.ProfileUser) error
	// UpdatePoints writes the new point total together with the level
	// derived from it, in a single row update.
	UpdatePoints(ctx context.Context, userID string, totalPoints, level int) error
	UpdateCurrentStreakDays(ctx context.Context, userID string, days int) error
	UpdateBestStreak(ctx context.Context, userID string, best int) error
	FindAllWithFilters(ctx context.Context, seniority, specialization string) ([]entity.ProfileUser, error)
	DeleteByID(ctx context.Context, userID string) error
}

type profileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) FindByID(ctx context.Context, userID string) (*entity.ProfileUser, error) {
	var profile entity.ProfileUser
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) Create(ctx context.Context, profile *entity.ProfileUser) error {
	return r.db.WithContext(ctx).Create(profile).Error
}

func (r *profileRepository) Update(ctx context.Context, profile *entity.ProfileUser) error {
	return r.db.WithContext(ctx).Save(profile).Error
}

func (r *profileRepository) UpdatePoints(ctx context.Context, userID string, totalPoints, level int) error {
	return r.db.WithContext(ctx).Model(&entity.ProfileUser{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"points_current": totalPoints,
			"level":          level,
		}).Error
}

func (r *profileRepository) UpdateCurrentStreakDays(ctx context.Context, userID string, days int) error {
	return r.db.WithContext(ctx).Model(&entity.ProfileUser{}).
		Where("user_id = ?", userID).
		Update("current_streak_days", days).Error
}

func (r *profileRepository) UpdateBestStreak(ctx context.Context, userID string, best int) error {
	return r.db.WithContext(ctx).Model(&entity.ProfileUser{}).
		Where("user_id = ?", userID).
		Update("streak_best", best).Error
}

func (r *profileRepository) FindAllWithFilters(ctx context.Context, seniority, specialization string) ([]entity.ProfileUser, error) {
	query := r.db.WithContext(ctx)
	if seniority != "" {
		query = query.Where("seniority = ?", seniority)
	}
	if specialization != "" {
		query = query.Where("specialization = ?", specialization)
	}

	var profiles []entity.ProfileUser
	if err := query.Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *profileRepository) DeleteByID(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&entity.ProfileUser{}).Error
}
