package service

import (
	"context"
	"log"
	"math"
	"sort"
	"time"

	"devpath.app/profileservice/internal/entity"
	activityRepo "devpath.app/profileservice/internal/modules/activity/repository"
	metricsDto "devpath.app/profileservice/internal/modules/metrics/dto"
	profileRepo "devpath.app/profileservice/internal/modules/profile/repository"
)

type MetricsService interface {
	GetMonthlyMetrics(ctx context.Context, req metricsDto.MonthlyMetricsRequest) (*metricsDto.MonthlyMetrics, error)
}

type metricsService struct {
	activities activityRepo.DailyActivityRepository
	profiles   profileRepo.ProfileRepository
}

func NewMetricsService(activities activityRepo.DailyActivityRepository, profiles profileRepo.ProfileRepository) MetricsService {
	return &metricsService{activities: activities, profiles: profiles}
}

func (s *metricsService) GetMonthlyMetrics(ctx context.Context, req metricsDto.MonthlyMetricsRequest) (*metricsDto.MonthlyMetrics, error) {
	now := time.Now()
	year := req.Year
	if year == 0 {
		year = now.Year()
	}
	month := req.Month
	if month == 0 {
		month = int(now.Month())
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0).Add(-time.Second)
	daysInMonth := end.Day()

	activities, err := s.activities.FindByUserAndDateRange(ctx, req.UserID, start, end, "")
	if err != nil {
		return nil, err
	}

	totalPoints, totalEvents := totals(activities)
	activeDays := len(activities)

	averagePerDay := 0.0
	if daysInMonth > 0 {
		averagePerDay = round2(float64(totalPoints) / float64(daysInMonth))
	}
	averagePerActiveDay := 0.0
	if activeDays > 0 {
		averagePerActiveDay = round2(float64(totalPoints) / float64(activeDays))
	}

	streakDays := 0
	currentLevel := 1
	profile, err := s.profiles.FindByID(ctx, req.UserID)
	if err != nil {
		log.Printf("Failed to load profile %s for monthly metrics: %v", req.UserID, err)
	} else if profile != nil {
		streakDays = profile.CurrentStreakDays
		currentLevel = profile.Level
	}

	return &metricsDto.MonthlyMetrics{
		Year:                      year,
		Month:                     month,
		TotalPoints:               totalPoints,
		TotalEvents:               totalEvents,
		ActiveDays:                activeDays,
		AveragePointsPerDay:       averagePerDay,
		AveragePointsPerActiveDay: averagePerActiveDay,
		StreakDays:                streakDays,
		LevelProgress: metricsDto.LevelProgress{
			StartLevel: currentLevel,
			EndLevel:   currentLevel,
			LeveledUp:  false,
		},
		DomainBreakdown:           domainBreakdown(activities, totalPoints),
		WeeklyBreakdown:           weeklyBreakdown(activities),
		ComparisonToPreviousMonth: s.previousMonthComparison(ctx, req.UserID, year, month, totalPoints, totalEvents, activeDays),
	}, nil
}

func domainBreakdown(activities []entity.DailyActivity, totalPoints int) []metricsDto.DomainBreakdown {
	type agg struct {
		points int
		events int
	}
	byDomain := make(map[string]*agg)
	order := make([]string, 0)

	for _, a := range activities {
		entry, ok := byDomain[a.Domain]
		if !ok {
			entry = &agg{}
			byDomain[a.Domain] = entry
			order = append(order, a.Domain)
		}
		entry.points += a.Points
		entry.events += a.Events
	}

	breakdown := make([]metricsDto.DomainBreakdown, 0, len(order))
	for _, domain := range order {
		entry := byDomain[domain]
		percentage := 0.0
		if totalPoints > 0 {
			percentage = round2(float64(entry.points) / float64(totalPoints) * 100)
		}
		breakdown = append(breakdown, metricsDto.DomainBreakdown{
			Domain:     domain,
			Points:     entry.points,
			Events:     entry.events,
			Percentage: percentage,
		})
	}

	sort.SliceStable(breakdown, func(i, j int) bool {
		return breakdown[i].Points > breakdown[j].Points
	})

	return breakdown
}

// weeklyBreakdown buckets days by ceil(dayOfMonth/7), deliberately not
// aligned to calendar weeks.
func weeklyBreakdown(activities []entity.DailyActivity) []metricsDto.WeeklyBreakdown {
	byWeek := make(map[int]*metricsDto.WeeklyBreakdown)

	for _, a := range activities {
		week := (a.Day.Day() + 6) / 7
		entry, ok := byWeek[week]
		if !ok {
			entry = &metricsDto.WeeklyBreakdown{Week: week}
			byWeek[week] = entry
		}
		entry.Points += a.Points
		entry.Events += a.Events
		entry.ActiveDays++
	}

	breakdown := make([]metricsDto.WeeklyBreakdown, 0, len(byWeek))
	for _, entry := range byWeek {
		breakdown = append(breakdown, *entry)
	}
	sort.Slice(breakdown, func(i, j int) bool {
		return breakdown[i].Week < breakdown[j].Week
	})

	return breakdown
}

// previousMonthComparison degrades to nil rather than failing the request.
func (s *metricsService) previousMonthComparison(ctx context.Context, userID string, year, month, points, events, activeDays int) *metricsDto.MonthComparison {
	prevYear, prevMonth := year, month-1
	if month == 1 {
		prevYear, prevMonth = year-1, 12
	}

	start := time.Date(prevYear, time.Month(prevMonth), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0).Add(-time.Second)

	prevActivities, err := s.activities.FindByUserAndDateRange(ctx, userID, start, end, "")
	if err != nil {
		log.Printf("Failed to calculate previous month comparison for user %s: %v", userID, err)
		return nil
	}

	prevPoints, prevEvents := totals(prevActivities)
	pointsChange := points - prevPoints

	percentage := 0.0
	if prevPoints > 0 {
		percentage = round2(float64(pointsChange) / float64(prevPoints) * 100)
	}

	return &metricsDto.MonthComparison{
		PointsChange:           pointsChange,
		PointsChangePercentage: percentage,
		ActiveDaysChange:       activeDays - len(prevActivities),
		EventsChange:           events - prevEvents,
	}
}

func totals(activities []entity.DailyActivity) (points, events int) {
	for _, a := range activities {
		points += a.Points
		events += a.Events
	}
	return points, events
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
