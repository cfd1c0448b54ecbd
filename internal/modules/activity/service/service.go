package service

import (
	"context"
	"math"
	"time"

	"devpath.app/profileservice/internal/entity"
	activityDto "devpath.app/profileservice/internal/modules/activity/dto"
	activityRepo "devpath.app/profileservice/internal/modules/activity/repository"
)

type ActivityService interface {
	// Record folds one event into the per-day row for the user. The first
	// event of a day pins the row's domain; later events only bump counters.
	Record(ctx context.Context, userID string, day time.Time, domain string, points int) error
	Query(ctx context.Context, userID string, start, end time.Time, domain string) ([]entity.DailyActivity, error)
	GetDailyActivities(ctx context.Context, req activityDto.DailyActivitiesRequest) (*activityDto.DailyActivitiesResponse, error)
}

type activityService struct {
	repo activityRepo.DailyActivityRepository
}

func NewActivityService(repo activityRepo.DailyActivityRepository) ActivityService {
	return &activityService{repo: repo}
}

func (s *activityService) Record(ctx context.Context, userID string, day time.Time, domain string, points int) error {
	dayOnly := truncateToDay(day)

	existing, err := s.repo.FindByUserAndDay(ctx, userID, dayOnly)
	if err != nil {
		return err
	}

	if existing != nil {
		existing.Events++
		existing.Points += points
		return s.repo.Update(ctx, existing)
	}

	return s.repo.Create(ctx, &entity.DailyActivity{
		UserID: userID,
		Day:    dayOnly,
		Domain: domain,
		Events: 1,
		Points: points,
	})
}

func (s *activityService) Query(ctx context.Context, userID string, start, end time.Time, domain string) ([]entity.DailyActivity, error) {
	return s.repo.FindByUserAndDateRange(ctx, userID, start, end, domain)
}

func (s *activityService) GetDailyActivities(ctx context.Context, req activityDto.DailyActivitiesRequest) (*activityDto.DailyActivitiesResponse, error) {
	// Default window is the last 30 days
	end := time.Now()
	if req.EndDate != nil {
		end = *req.EndDate
	}
	start := end.AddDate(0, 0, -30)
	if req.StartDate != nil {
		start = *req.StartDate
	}

	activities, err := s.repo.FindByUserAndDateRange(ctx, req.UserID, start, end, req.Domain)
	if err != nil {
		return nil, err
	}

	totalDays := len(activities)
	totalEvents := 0
	totalPoints := 0
	var mostActive *entity.DailyActivity
	seenDomains := make(map[string]struct{})
	domains := make([]string, 0)

	for i := range activities {
		a := &activities[i]
		totalEvents += a.Events
		totalPoints += a.Points
		if mostActive == nil || a.Points > mostActive.Points {
			mostActive = a
		}
		if _, ok := seenDomains[a.Domain]; !ok {
			seenDomains[a.Domain] = struct{}{}
			domains = append(domains, a.Domain)
		}
	}

	avg := 0.0
	if totalDays > 0 {
		avg = round2(float64(totalPoints) / float64(totalDays))
	}

	resp := &activityDto.DailyActivitiesResponse{
		Activities:          activities,
		TotalDays:           totalDays,
		TotalEvents:         totalEvents,
		TotalPoints:         totalPoints,
		AveragePointsPerDay: avg,
		Domains:             domains,
	}
	if mostActive != nil {
		day := mostActive.Day
		resp.MostActiveDay = &day
	}

	return resp, nil
}

// truncateToDay pins t's wall-clock calendar date to a UTC midnight so
// events reported with non-UTC offsets bucket into the same day rows as
// the stored UTC dates.
func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
