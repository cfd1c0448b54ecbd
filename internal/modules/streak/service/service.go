package service

import (
	"context"
	"log"
	"time"

	"devpath.app/profileservice/internal/entity"
	profileRepo "devpath.app/profileservice/internal/modules/profile/repository"
	streakRepo "devpath.app/profileservice/internal/modules/streak/repository"
)

type StreakService interface {
	// Reconcile folds one activity day into the user's open streak and
	// returns the resulting streak length. The profile's current streak
	// days and best streak high-water mark are kept in sync.
	Reconcile(ctx context.Context, profile *entity.ProfileUser, day time.Time, points int) (int, error)
}

type streakService struct {
	repo        streakRepo.StreakRepository
	profileRepo profileRepo.ProfileRepository
}

func NewStreakService(repo streakRepo.StreakRepository, profiles profileRepo.ProfileRepository) StreakService {
	return &streakService{repo: repo, profileRepo: profiles}
}

func (s *streakService) Reconcile(ctx context.Context, profile *entity.ProfileUser, day time.Time, points int) (int, error) {
	dayOnly := truncateToDay(day)

	snapshot, err := s.repo.GetCurrent(ctx, profile.UserID)
	if err != nil {
		return 0, err
	}

	if snapshot == nil {
		return s.startFresh(ctx, profile, dayOnly, points)
	}

	lastActive := truncateToDay(snapshot.LastActive)
	gap := daysBetween(lastActive, dayOnly)

	switch {
	case gap == 0:
		// Same-day repeat: points accumulate, length holds.
		if err := s.repo.AddPoints(ctx, profile.UserID, points); err != nil {
			return 0, err
		}
		return snapshot.LengthDays, nil

	case gap == 1:
		newLength := snapshot.LengthDays + 1
		if err := s.repo.UpdateLength(ctx, profile.UserID, newLength); err != nil {
			return 0, err
		}
		if err := s.repo.UpdateLastActive(ctx, profile.UserID, dayOnly); err != nil {
			return 0, err
		}
		if err := s.repo.AddPoints(ctx, profile.UserID, points); err != nil {
			return 0, err
		}
		if err := s.profileRepo.UpdateCurrentStreakDays(ctx, profile.UserID, newLength); err != nil {
			return 0, err
		}
		if err := s.raiseBest(ctx, profile, newLength); err != nil {
			return 0, err
		}
		return newLength, nil

	case gap > 1:
		// Streak broken: the old snapshot is replaced wholesale.
		if err := s.repo.Reset(ctx, profile.UserID); err != nil {
			return 0, err
		}
		return s.startFresh(ctx, profile, dayOnly, points)

	default:
		// Event dated before the last active day (clock skew or replay of an
		// old event). Out-of-order activity never shrinks or mutates the open
		// streak; leave the snapshot untouched.
		log.Printf("streak: out-of-order activity for user %s (activity %s before last active %s), ignoring",
			profile.UserID, dayOnly.Format("2006-01-02"), lastActive.Format("2006-01-02"))
		return snapshot.LengthDays, nil
	}
}

func (s *streakService) startFresh(ctx context.Context, profile *entity.ProfileUser, day time.Time, points int) (int, error) {
	err := s.repo.Save(ctx, &entity.StreakSnapshot{
		UserID:         profile.UserID,
		StartDate:      day,
		LastActive:     day,
		LengthDays:     1,
		PointsInStreak: points,
	})
	if err != nil {
		return 0, err
	}

	if err := s.profileRepo.UpdateCurrentStreakDays(ctx, profile.UserID, 1); err != nil {
		return 0, err
	}
	if err := s.raiseBest(ctx, profile, 1); err != nil {
		return 0, err
	}

	return 1, nil
}

// raiseBest keeps streakBest as a monotonic high-water mark.
func (s *streakService) raiseBest(ctx context.Context, profile *entity.ProfileUser, length int) error {
	if length <= profile.StreakBest {
		return nil
	}
	if err := s.profileRepo.UpdateBestStreak(ctx, profile.UserID, length); err != nil {
		return err
	}
	profile.StreakBest = length
	return nil
}

// truncateToDay pins t's wall-clock calendar date to a UTC midnight, so an
// event reported with a non-UTC offset lands on the same day key as the
// stored UTC dates it is compared against.
func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// daysBetween returns the whole calendar days from a to b. Both are UTC
// midnights from truncateToDay, so the difference is an exact multiple of
// 24h. Negative when b precedes a.
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a) / (24 * time.Hour))
}
