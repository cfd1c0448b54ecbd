package service

import (
	"context"
	"time"

	"devpath.app/profileservice/internal/entity"
	weeklyRepo "devpath.app/profileservice/internal/modules/weekly/repository"
	"github.com/google/uuid"
)

type WeeklyService interface {
	// MarkCompleted flips the Monday-first slot for the date's weekday to
	// true, creating the week row lazily. Marking an already-true day is a
	// no-op on the count. currentStreak mirrors the reconciler's view at
	// save time.
	MarkCompleted(ctx context.Context, userID string, date time.Time, currentStreak int) error
	// GetCurrentWeek returns the calendar for the running week, an all-false
	// one when the user has no activity yet.
	GetCurrentWeek(ctx context.Context, userID string) (*entity.WeeklyProgress, error)
}

type weeklyService struct {
	repo weeklyRepo.WeeklyProgressRepository
}

func NewWeeklyService(repo weeklyRepo.WeeklyProgressRepository) WeeklyService {
	return &weeklyService{repo: repo}
}

func (s *weeklyService) MarkCompleted(ctx context.Context, userID string, date time.Time, currentStreak int) error {
	weekStart := WeekStart(date)
	slot := SlotIndex(date)

	progress, err := s.repo.GetWeek(ctx, userID, weekStart)
	if err != nil {
		return err
	}

	if progress == nil {
		progress = &entity.WeeklyProgress{
			ID:            uuid.New(),
			UserID:        userID,
			WeekStartDate: weekStart,
		}
	}

	progress.SetCompletedDay(slot, true)
	progress.TotalActiveDays = progress.CountActiveDays()
	progress.CurrentStreak = currentStreak

	return s.repo.Save(ctx, progress)
}

func (s *weeklyService) GetCurrentWeek(ctx context.Context, userID string) (*entity.WeeklyProgress, error) {
	weekStart := WeekStart(time.Now())

	progress, err := s.repo.GetWeek(ctx, userID, weekStart)
	if err != nil {
		return nil, err
	}

	if progress == nil {
		progress = &entity.WeeklyProgress{
			ID:            uuid.New(),
			UserID:        userID,
			WeekStartDate: weekStart,
		}
	}

	return progress, nil
}

// WeekStart returns Monday 00:00 of the week containing t.
func WeekStart(t time.Time) time.Time {
	day := truncateToDay(t)
	weekday := int(day.Weekday())
	if weekday == 0 { // Sunday belongs to the week that started 6 days ago
		return day.AddDate(0, 0, -6)
	}
	return day.AddDate(0, 0, 1-weekday)
}

// SlotIndex maps t's weekday to the Monday-first index 0..6.
func SlotIndex(t time.Time) int {
	weekday := int(truncateToDay(t).Weekday())
	if weekday == 0 {
		return 6
	}
	return weekday - 1
}

// truncateToDay pins t's wall-clock calendar date to a UTC midnight so
// timestamps carrying non-UTC offsets resolve to the same week and slot as
// the stored UTC week anchors.
func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
