package repository

import (
	"context"

	"devpath.app/profileservice/internal/entity"
	"gorm.io/gorm"
)

type LevelRuleRepository interface {
	FindAll(ctx context.Context) ([]entity.LevelRule, error)
}

type levelRuleRepository struct {
	db *gorm.DB
}

func NewLevelRuleRepository(db *gorm.DB) LevelRuleRepository {
	return &levelRuleRepository{db: db}
}

func (r *levelRuleRepository) FindAll(ctx context.Context) ([]entity.LevelRule, error) {
	var rules []entity.LevelRule
	if err := r.db.WithContext(ctx).Find(&rules).Error; err != nil {
		return nil, err
	}
	return rules, nil
}
