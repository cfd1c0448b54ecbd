package service

import (
	"context"
	"log"
	"math"
	"sort"
	"time"

	"devpath.app/profileservice/internal/entity"
	activityRepo "devpath.app/profileservice/internal/modules/activity/repository"
	leaderboardDto "devpath.app/profileservice/internal/modules/leaderboard/dto"
	profileRepo "devpath.app/profileservice/internal/modules/profile/repository"
)

const defaultLimit = 50

type LeaderboardService interface {
	GetLeaderboard(ctx context.Context, req leaderboardDto.LeaderboardRequest) (*leaderboardDto.LeaderboardResponse, error)
}

type leaderboardService struct {
	profiles   profileRepo.ProfileRepository
	activities activityRepo.DailyActivityRepository
}

func NewLeaderboardService(profiles profileRepo.ProfileRepository, activities activityRepo.DailyActivityRepository) LeaderboardService {
	return &leaderboardService{profiles: profiles, activities: activities}
}

func (s *leaderboardService) GetLeaderboard(ctx context.Context, req leaderboardDto.LeaderboardRequest) (*leaderboardDto.LeaderboardResponse, error) {
	timeframe := req.Timeframe
	if timeframe == "" {
		timeframe = leaderboardDto.TimeframeAllTime
	}
	limit := req.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	offset := req.Offset
	if offset < 0 {
		offset = 0
	}

	filters := leaderboardDto.LeaderboardFilters{
		Domain:         req.Domain,
		Timeframe:      timeframe,
		Seniority:      req.Seniority,
		Specialization: req.Specialization,
	}

	profiles, err := s.profiles.FindAllWithFilters(ctx, req.Seniority, req.Specialization)
	if err != nil {
		return nil, err
	}

	if len(profiles) == 0 {
		return &leaderboardDto.LeaderboardResponse{
			Leaderboard: []leaderboardDto.LeaderboardEntry{},
			TotalUsers:  0,
			CurrentPage: 1,
			TotalPages:  0,
			Filters:     filters,
		}, nil
	}

	entries := make([]leaderboardDto.LeaderboardEntry, 0, len(profiles))
	for i := range profiles {
		profile := &profiles[i]

		score := profile.PointsCurrent
		if timeframe != leaderboardDto.TimeframeAllTime {
			score = s.timeframePoints(ctx, profile.UserID, timeframe, req.Domain)
		}

		entries = append(entries, leaderboardDto.LeaderboardEntry{
			UserID:            profile.UserID,
			Points:            score,
			Level:             profile.Level,
			StreakBest:        profile.StreakBest,
			CurrentStreakDays: profile.CurrentStreakDays,
			AvatarURL:         profile.AvatarURL,
			Seniority:         profile.Seniority,
			Specialization:    profile.Specialization,
			RecentActivity:    s.recentActivity(ctx, profile.UserID, req.Domain),
		})
	}

	// Ties keep input order; ranks are a dense 1..N sequence.
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Points > entries[j].Points
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}

	total := len(entries)
	totalPages := int(math.Ceil(float64(total) / float64(limit)))
	currentPage := offset/limit + 1

	page := entries[min(offset, total):min(offset+limit, total)]

	return &leaderboardDto.LeaderboardResponse{
		Leaderboard: page,
		TotalUsers:  total,
		CurrentPage: currentPage,
		TotalPages:  totalPages,
		Filters:     filters,
	}, nil
}

// timeframePoints recomputes the scoring value from daily activity over the
// timeframe window. Errors degrade to a zero score for that user.
func (s *leaderboardService) timeframePoints(ctx context.Context, userID, timeframe, domain string) int {
	now := time.Now()
	var start time.Time

	if timeframe == leaderboardDto.TimeframeWeekly {
		start = now.AddDate(0, 0, -7)
	} else {
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	}

	activities, err := s.activities.FindByUserAndDateRange(ctx, userID, start, now, domain)
	if err != nil {
		log.Printf("Failed to calculate %s points for user %s: %v", timeframe, userID, err)
		return 0
	}

	return sumPoints(activities)
}

func (s *leaderboardService) recentActivity(ctx context.Context, userID, domain string) leaderboardDto.RecentActivity {
	now := time.Now()

	last7, err := s.activities.FindByUserAndDateRange(ctx, userID, now.AddDate(0, 0, -7), now, domain)
	if err != nil {
		log.Printf("Failed to calculate recent activity for user %s: %v", userID, err)
		return leaderboardDto.RecentActivity{}
	}

	last30, err := s.activities.FindByUserAndDateRange(ctx, userID, now.AddDate(0, 0, -30), now, domain)
	if err != nil {
		log.Printf("Failed to calculate recent activity for user %s: %v", userID, err)
		return leaderboardDto.RecentActivity{Last7Days: sumPoints(last7)}
	}

	return leaderboardDto.RecentActivity{
		Last7Days:  sumPoints(last7),
		Last30Days: sumPoints(last30),
	}
}

func sumPoints(activities []entity.DailyActivity) int {
	total := 0
	for _, a := range activities {
		total += a.Points
	}
	return total
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
