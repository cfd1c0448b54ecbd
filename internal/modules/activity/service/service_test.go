package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"devpath.app/profileservice/internal/entity"
	activityDto "devpath.app/profileservice/internal/modules/activity/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockDailyActivityRepository struct {
	mock.Mock
}

func (m *MockDailyActivityRepository) FindByUserAndDay(ctx context.Context, userID string, day time.Time) (*entity.DailyActivity, error) {
	args := m.Called(ctx, userID, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.DailyActivity), args.Error(1)
}

func (m *MockDailyActivityRepository) FindByUserAndDateRange(ctx context.Context, userID string, start, end time.Time, domain string) ([]entity.DailyActivity, error) {
	args := m.Called(ctx, userID, start, end, domain)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.DailyActivity), args.Error(1)
}

func (m *MockDailyActivityRepository) Create(ctx context.Context, activity *entity.DailyActivity) error {
	args := m.Called(ctx, activity)
	return args.Error(0)
}

func (m *MockDailyActivityRepository) Update(ctx context.Context, activity *entity.DailyActivity) error {
	args := m.Called(ctx, activity)
	return args.Error(0)
}

func TestRecordFirstEventOfDay(t *testing.T) {
	repo := new(MockDailyActivityRepository)
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	repo.On("FindByUserAndDay", mock.Anything, "u1", day).Return(nil, nil)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(a *entity.DailyActivity) bool {
		return a.UserID == "u1" && a.Day.Equal(day) && a.Domain == "frontend" &&
			a.Events == 1 && a.Points == 20
	})).Return(nil)

	svc := NewActivityService(repo)
	err := svc.Record(context.Background(), "u1", time.Date(2024, 3, 1, 14, 30, 0, 0, time.UTC), "frontend", 20)

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestRecordSecondEventBumpsCounters(t *testing.T) {
	repo := new(MockDailyActivityRepository)
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	existing := &entity.DailyActivity{UserID: "u1", Day: day, Domain: "frontend", Events: 1, Points: 20}
	repo.On("FindByUserAndDay", mock.Anything, "u1", day).Return(existing, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(a *entity.DailyActivity) bool {
		// The first event of the day pins the domain.
		return a.Events == 2 && a.Points == 35 && a.Domain == "frontend"
	})).Return(nil)

	svc := NewActivityService(repo)
	err := svc.Record(context.Background(), "u1", day, "backend", 15)

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestRecordBucketsByWallClockDate(t *testing.T) {
	repo := new(MockDailyActivityRepository)
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	repo.On("FindByUserAndDay", mock.Anything, "u1", day).Return(nil, nil)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(a *entity.DailyActivity) bool {
		return a.Day.Equal(day)
	})).Return(nil)

	// 23:30 March 1 in UTC-7 is already March 2 in UTC; the row still
	// lands on March 1, the date the event reports.
	occurred := time.Date(2024, 3, 1, 23, 30, 0, 0, time.FixedZone("UTC-7", -7*3600))

	svc := NewActivityService(repo)
	err := svc.Record(context.Background(), "u1", occurred, "frontend", 20)

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestRecordRepositoryError(t *testing.T) {
	repo := new(MockDailyActivityRepository)
	repo.On("FindByUserAndDay", mock.Anything, "u1", mock.Anything).Return(nil, errors.New("db down"))

	svc := NewActivityService(repo)
	err := svc.Record(context.Background(), "u1", time.Now(), "frontend", 10)

	assert.Error(t, err)
}

func TestGetDailyActivitiesTotals(t *testing.T) {
	repo := new(MockDailyActivityRepository)
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)

	rows := []entity.DailyActivity{
		{UserID: "u1", Day: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), Domain: "frontend", Events: 2, Points: 40},
		{UserID: "u1", Day: time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC), Domain: "backend", Events: 1, Points: 60},
	}
	repo.On("FindByUserAndDateRange", mock.Anything, "u1", start, end, "").Return(rows, nil)

	svc := NewActivityService(repo)
	res, err := svc.GetDailyActivities(context.Background(), activityDto.DailyActivitiesRequest{
		UserID:    "u1",
		StartDate: &start,
		EndDate:   &end,
	})

	require.NoError(t, err)
	assert.Equal(t, 100, res.TotalPoints)
	assert.Equal(t, 3, res.TotalEvents)
	assert.Equal(t, 2, res.TotalDays)
	require.NotNil(t, res.MostActiveDay)
	assert.Equal(t, rows[1].Day, *res.MostActiveDay)
}

func TestGetDailyActivitiesEmpty(t *testing.T) {
	repo := new(MockDailyActivityRepository)
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)

	repo.On("FindByUserAndDateRange", mock.Anything, "u1", start, end, "").Return([]entity.DailyActivity{}, nil)

	svc := NewActivityService(repo)
	res, err := svc.GetDailyActivities(context.Background(), activityDto.DailyActivitiesRequest{
		UserID:    "u1",
		StartDate: &start,
		EndDate:   &end,
	})

	require.NoError(t, err)
	assert.Equal(t, 0, res.TotalPoints)
	assert.Equal(t, 0, res.TotalDays)
	assert.Nil(t, res.MostActiveDay)
}
