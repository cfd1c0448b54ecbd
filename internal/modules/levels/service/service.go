package service

import (
	"context"
	"sort"

	"devpath.app/profileservice/internal/entity"
	levelRepo "devpath.app/profileservice/internal/modules/levels/repository"
)

type LevelService interface {
	// LevelFor maps a cumulative point total to a level number. Falls back
	// to level 1 when no rule matches.
	LevelFor(ctx context.Context, totalPoints int) (int, error)
	// PointsToNextLevel returns how many points are missing until the next
	// level, 0 when the max level is reached. The result is not clamped and
	// can be negative when the total already passed the next threshold.
	PointsToNextLevel(ctx context.Context, totalPoints, currentLevel int) (int, error)
	GetLevelRules(ctx context.Context) ([]entity.LevelRule, error)
}

type levelService struct {
	repo levelRepo.LevelRuleRepository
}

func NewLevelService(repo levelRepo.LevelRuleRepository) LevelService {
	return &levelService{repo: repo}
}

func (s *levelService) LevelFor(ctx context.Context, totalPoints int) (int, error) {
	rules, err := s.repo.FindAll(ctx)
	if err != nil {
		return 0, err
	}

	// Highest matching tier wins.
	sort.Slice(rules, func(i, j int) bool {
		return rules[i].Level > rules[j].Level
	})

	for _, rule := range rules {
		if totalPoints >= rule.MinPoints {
			return rule.Level, nil
		}
	}

	return 1, nil
}

func (s *levelService) PointsToNextLevel(ctx context.Context, totalPoints, currentLevel int) (int, error) {
	rules, err := s.repo.FindAll(ctx)
	if err != nil {
		return 0, err
	}

	for _, rule := range rules {
		if rule.Level == currentLevel+1 {
			return rule.MinPoints - totalPoints, nil
		}
	}

	// Max level reached
	return 0, nil
}

func (s *levelService) GetLevelRules(ctx context.Context) ([]entity.LevelRule, error) {
	rules, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	sort.Slice(rules, func(i, j int) bool {
		return rules[i].Level < rules[j].Level
	})

	return rules, nil
}
