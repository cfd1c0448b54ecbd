package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"devpath.app/profileservice/internal/entity"
	activity "devpath.app/profileservice/internal/modules/activity/service"
	levels "devpath.app/profileservice/internal/modules/levels/service"
	notification "devpath.app/profileservice/internal/modules/notification/service"
	profileDto "devpath.app/profileservice/internal/modules/profile/dto"
	profileRepo "devpath.app/profileservice/internal/modules/profile/repository"
	weekly "devpath.app/profileservice/internal/modules/weekly/service"
	"devpath.app/profileservice/pkg/apperror"
	commonDto "devpath.app/profileservice/pkg/dto"
	"devpath.app/profileservice/pkg/points"
	"devpath.app/profileservice/pkg/storage"
)

const (
	defaultSeniority      = "Junior"
	defaultSpecialization = "General"
)

type ProfileService interface {
	CreateProfile(ctx context.Context, input profileDto.CreateProfileInput) (*profileDto.ProfileResponse, error)
	// GetProfile fails with ErrNotFound when the user has no profile yet.
	GetProfile(ctx context.Context, userID string) (*profileDto.ProfileResponse, error)
	// GetOrCreateProfile creates a default profile on first access.
	GetOrCreateProfile(ctx context.Context, userID string) (*profileDto.ProfileResponse, error)
	UpdateProfile(ctx context.Context, userID string, input profileDto.UpdateProfileInput) (*profileDto.ProfileResponse, error)
	DeleteProfile(ctx context.Context, userID string) error
	// AddPoints credits points to an existing profile, recomputes the level
	// and folds the event into the daily activity rollup.
	AddPoints(ctx context.Context, userID string, input profileDto.AddPointsInput) (*profileDto.AddPointsResponse, error)
	GetUserStats(ctx context.Context, userID string) (*profileDto.UserStatsResponse, error)
	UploadAvatar(ctx context.Context, userID string, avatar *commonDto.AvatarFile) (*profileDto.ProfileResponse, error)
	UpdateAvatarByURL(ctx context.Context, userID string, avatarURL string) (*profileDto.ProfileResponse, error)
}

type profileService struct {
	repo          profileRepo.ProfileRepository
	activities    activity.ActivityService
	weeks         weekly.WeeklyService
	levels        levels.LevelService
	notifications notification.NotificationService
	avatarStorage storage.ImageStorage
}

func NewProfileService(
	repo profileRepo.ProfileRepository,
	activities activity.ActivityService,
	weeks weekly.WeeklyService,
	levelService levels.LevelService,
	notifications notification.NotificationService,
	avatarStorage storage.ImageStorage,
) ProfileService {
	return &profileService{
		repo:          repo,
		activities:    activities,
		weeks:         weeks,
		levels:        levelService,
		notifications: notifications,
		avatarStorage: avatarStorage,
	}
}

func (s *profileService) CreateProfile(ctx context.Context, input profileDto.CreateProfileInput) (*profileDto.ProfileResponse, error) {
	existing, err := s.repo.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("profile for user %s: %w", input.UserID, apperror.ErrConflict)
	}

	profile := &entity.ProfileUser{
		UserID:         input.UserID,
		Seniority:      input.Seniority,
		Specialization: input.Specialization,
		Level:          1,
		AvatarURL:      input.AvatarURL,
	}

	if err := s.repo.Create(ctx, profile); err != nil {
		return nil, err
	}

	return toProfileResponse(profile), nil
}

func (s *profileService) GetProfile(ctx context.Context, userID string) (*profileDto.ProfileResponse, error) {
	profile, err := s.findExisting(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toProfileResponse(profile), nil
}

func (s *profileService) GetOrCreateProfile(ctx context.Context, userID string) (*profileDto.ProfileResponse, error) {
	profile, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if profile == nil {
		profile = &entity.ProfileUser{
			UserID:         userID,
			Seniority:      defaultSeniority,
			Specialization: defaultSpecialization,
			Level:          1,
		}
		if err := s.repo.Create(ctx, profile); err != nil {
			return nil, err
		}
		log.Printf("Created default profile for user %s", userID)
	}

	return toProfileResponse(profile), nil
}

func (s *profileService) UpdateProfile(ctx context.Context, userID string, input profileDto.UpdateProfileInput) (*profileDto.ProfileResponse, error) {
	profile, err := s.findExisting(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Seniority != nil {
		profile.Seniority = *input.Seniority
	}
	if input.Specialization != nil {
		profile.Specialization = *input.Specialization
	}
	if input.AvatarURL != nil {
		profile.AvatarURL = input.AvatarURL
	}

	if err := s.repo.Update(ctx, profile); err != nil {
		return nil, err
	}

	return toProfileResponse(profile), nil
}

func (s *profileService) DeleteProfile(ctx context.Context, userID string) error {
	profile, err := s.findExisting(ctx, userID)
	if err != nil {
		return err
	}

	if profile.AvatarPublicID != nil && s.avatarStorage != nil {
		if err := s.avatarStorage.DeleteAvatar(ctx, *profile.AvatarPublicID); err != nil {
			log.Printf("Failed to delete avatar for user %s: %v", userID, err)
		}
	}

	return s.repo.DeleteByID(ctx, userID)
}

func (s *profileService) AddPoints(ctx context.Context, userID string, input profileDto.AddPointsInput) (*profileDto.AddPointsResponse, error) {
	profile, err := s.findExisting(ctx, userID)
	if err != nil {
		return nil, err
	}

	current, err := points.New(profile.PointsCurrent)
	if err != nil {
		return nil, err
	}
	earned, err := points.New(input.Points)
	if err != nil {
		return nil, err
	}

	previousLevel := profile.Level
	newTotal := current.Add(earned).Value()

	newLevel, err := s.levels.LevelFor(ctx, newTotal)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdatePoints(ctx, userID, newTotal, newLevel); err != nil {
		return nil, err
	}

	// Activity tracking must not fail the credit itself.
	if err := s.activities.Record(ctx, userID, time.Now(), input.Domain, input.Points); err != nil {
		log.Printf("Failed to record daily activity for user %s: %v", userID, err)
	}

	pointsToNext, err := s.levels.PointsToNextLevel(ctx, newTotal, newLevel)
	if err != nil {
		log.Printf("Failed to calculate points to next level for user %s: %v", userID, err)
		pointsToNext = 0
	}

	leveledUp := newLevel > previousLevel
	if leveledUp && s.notifications != nil {
		s.notifications.PublishLevelUp(ctx, userID, previousLevel, newLevel, newTotal)
	}

	return &profileDto.AddPointsResponse{
		PointsAdded:       input.Points,
		TotalPoints:       newTotal,
		PreviousLevel:     previousLevel,
		CurrentLevel:      newLevel,
		LeveledUp:         leveledUp,
		PointsToNextLevel: pointsToNext,
	}, nil
}

func (s *profileService) GetUserStats(ctx context.Context, userID string) (*profileDto.UserStatsResponse, error) {
	profile, err := s.findExisting(ctx, userID)
	if err != nil {
		return nil, err
	}

	week, err := s.weeks.GetCurrentWeek(ctx, userID)
	if err != nil {
		return nil, err
	}

	completedDays := week.CompletedDays()
	thisWeekActiveDays := 0
	for _, done := range completedDays {
		if done {
			thisWeekActiveDays++
		}
	}

	pointsToNext, err := s.levels.PointsToNextLevel(ctx, profile.PointsCurrent, profile.Level)
	if err != nil {
		log.Printf("Failed to calculate points to next level for user %s: %v", userID, err)
		pointsToNext = 0
	}

	bestStreak := profile.StreakBest
	if profile.CurrentStreakDays > bestStreak {
		bestStreak = profile.CurrentStreakDays
	}

	return &profileDto.UserStatsResponse{
		CurrentStreakDays:  profile.CurrentStreakDays,
		BestStreak:         bestStreak,
		PointsCurrent:      profile.PointsCurrent,
		PointsToNextLevel:  pointsToNext,
		Level:              profile.Level,
		TotalActiveDays:    week.TotalActiveDays,
		ThisWeekActiveDays: thisWeekActiveDays,
		WeeklyProgress:     completedDays,
	}, nil
}

func (s *profileService) UploadAvatar(ctx context.Context, userID string, avatar *commonDto.AvatarFile) (*profileDto.ProfileResponse, error) {
	if avatar == nil {
		return nil, fmt.Errorf("avatar file is required: %w", apperror.ErrBadRequest)
	}
	if s.avatarStorage == nil {
		return nil, fmt.Errorf("avatar storage is not configured: %w", apperror.ErrInternal)
	}

	profile, err := s.findExisting(ctx, userID)
	if err != nil {
		return nil, err
	}

	url, publicID, err := s.avatarStorage.UploadAvatar(ctx, avatar.Reader, avatar.FileName)
	if err != nil {
		return nil, err
	}

	oldPublicID := profile.AvatarPublicID
	profile.AvatarURL = &url
	profile.AvatarPublicID = &publicID

	if err := s.repo.Update(ctx, profile); err != nil {
		return nil, err
	}

	if oldPublicID != nil && *oldPublicID != publicID {
		if err := s.avatarStorage.DeleteAvatar(ctx, *oldPublicID); err != nil {
			log.Printf("Failed to delete previous avatar for user %s: %v", userID, err)
		}
	}

	return toProfileResponse(profile), nil
}

func (s *profileService) UpdateAvatarByURL(ctx context.Context, userID string, avatarURL string) (*profileDto.ProfileResponse, error) {
	profile, err := s.findExisting(ctx, userID)
	if err != nil {
		return nil, err
	}

	oldPublicID := profile.AvatarPublicID
	profile.AvatarURL = &avatarURL
	profile.AvatarPublicID = nil

	if err := s.repo.Update(ctx, profile); err != nil {
		return nil, err
	}

	// The stored copy is orphaned once an external URL takes over.
	if oldPublicID != nil && s.avatarStorage != nil {
		if err := s.avatarStorage.DeleteAvatar(ctx, *oldPublicID); err != nil {
			log.Printf("Failed to delete stored avatar for user %s: %v", userID, err)
		}
	}

	return toProfileResponse(profile), nil
}

func (s *profileService) findExisting(ctx context.Context, userID string) (*entity.ProfileUser, error) {
	profile, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, fmt.Errorf("profile for user %s: %w", userID, apperror.ErrNotFound)
	}
	return profile, nil
}

func toProfileResponse(p *entity.ProfileUser) *profileDto.ProfileResponse {
	return &profileDto.ProfileResponse{
		UserID:            p.UserID,
		Seniority:         p.Seniority,
		Specialization:    p.Specialization,
		Level:             p.Level,
		PointsCurrent:     p.PointsCurrent,
		CurrentStreakDays: p.CurrentStreakDays,
		StreakBest:        p.StreakBest,
		AvatarURL:         p.AvatarURL,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}
