package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"devpath.app/profileservice/internal/entity"
	activityDto "devpath.app/profileservice/internal/modules/activity/dto"
	eventDto "devpath.app/profileservice/internal/modules/event/dto"
	"github.com/stretchr/testify/mock"
)

type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) FindByID(ctx context.Context, userID string) (*entity.ProfileUser, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ProfileUser), args.Error(1)
}

func (m *MockProfileRepository) Create(ctx context.Context, profile *entity.ProfileUser) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockProfileRepository) Update(ctx context.Context, profile *entity.ProfileUser) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockProfileRepository) UpdatePoints(ctx context.Context, userID string, totalPoints, level int) error {
	args := m.Called(ctx, userID, totalPoints, level)
	return args.Error(0)
}

func (m *MockProfileRepository) UpdateCurrentStreakDays(ctx context.Context, userID string, days int) error {
	args := m.Called(ctx, userID, days)
	return args.Error(0)
}

func (m *MockProfileRepository) UpdateBestStreak(ctx context.Context, userID string, best int) error {
	args := m.Called(ctx, userID, best)
	return args.Error(0)
}

func (m *MockProfileRepository) FindAllWithFilters(ctx context.Context, seniority, specialization string) ([]entity.ProfileUser, error) {
	args := m.Called(ctx, seniority, specialization)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.ProfileUser), args.Error(1)
}

func (m *MockProfileRepository) DeleteByID(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type MockActivityService struct {
	mock.Mock
}

func (m *MockActivityService) Record(ctx context.Context, userID string, day time.Time, domain string, points int) error {
	args := m.Called(ctx, userID, day, domain, points)
	return args.Error(0)
}

func (m *MockActivityService) Query(ctx context.Context, userID string, start, end time.Time, domain string) ([]entity.DailyActivity, error) {
	args := m.Called(ctx, userID, start, end, domain)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.DailyActivity), args.Error(1)
}

func (m *MockActivityService) GetDailyActivities(ctx context.Context, req activityDto.DailyActivitiesRequest) (*activityDto.DailyActivitiesResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*activityDto.DailyActivitiesResponse), args.Error(1)
}

type MockStreakService struct {
	mock.Mock
}

func (m *MockStreakService) Reconcile(ctx context.Context, profile *entity.ProfileUser, day time.Time, points int) (int, error) {
	args := m.Called(ctx, profile, day, points)
	return args.Int(0), args.Error(1)
}

type MockWeeklyService struct {
	mock.Mock
}

func (m *MockWeeklyService) MarkCompleted(ctx context.Context, userID string, date time.Time, currentStreak int) error {
	args := m.Called(ctx, userID, date, currentStreak)
	return args.Error(0)
}

func (m *MockWeeklyService) GetCurrentWeek(ctx context.Context, userID string) (*entity.WeeklyProgress, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.WeeklyProgress), args.Error(1)
}

type MockLevelService struct {
	mock.Mock
}

func (m *MockLevelService) LevelFor(ctx context.Context, totalPoints int) (int, error) {
	args := m.Called(ctx, totalPoints)
	return args.Int(0), args.Error(1)
}

func (m *MockLevelService) PointsToNextLevel(ctx context.Context, totalPoints, currentLevel int) (int, error) {
	args := m.Called(ctx, totalPoints, currentLevel)
	return args.Int(0), args.Error(1)
}

func (m *MockLevelService) GetLevelRules(ctx context.Context) ([]entity.LevelRule, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.LevelRule), args.Error(1)
}

type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) PublishLevelUp(ctx context.Context, userID string, previousLevel, newLevel, totalPoints int) {
	m.Called(ctx, userID, previousLevel, newLevel, totalPoints)
}

type processorMocks struct {
	profiles      *MockProfileRepository
	activities    *MockActivityService
	streaks       *MockStreakService
	weeks         *MockWeeklyService
	levels        *MockLevelService
	notifications *MockNotificationService
	dedup         *DedupCache
}

func newProcessor(t *testing.T) (EventProcessor, *processorMocks) {
	t.Helper()
	m := &processorMocks{
		profiles:      new(MockProfileRepository),
		activities:    new(MockActivityService),
		streaks:       new(MockStreakService),
		weeks:         new(MockWeeklyService),
		levels:        new(MockLevelService),
		notifications: new(MockNotificationService),
		dedup:         NewDedupCache(5 * time.Minute),
	}
	p := NewEventProcessor(m.profiles, m.activities, m.streaks, m.weeks, m.levels, m.notifications, m.dedup, time.Hour)
	return p, m
}

func intPtr(v int) *int {
	return &v
}

func validMessage() eventDto.ProfileUpdateMessage {
	return eventDto.ProfileUpdateMessage{
		Event:        "exercise_completed",
		Type:         "frontend",
		CreatedAt:    "2024-03-01T14:30:00Z",
		PointsEarned: intPtr(20),
		UserID:       "u1",
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
		Service:      "exercise-service",
		Version:      "1.0",
		Queue:        "profile_updates",
	}
}

func TestProcessHappyPath(t *testing.T) {
	p, m := newProcessor(t)
	msg := validMessage()
	occurred, _ := msg.OccurredAt()

	profile := &entity.ProfileUser{UserID: "u1", PointsCurrent: 100, Level: 1, CurrentStreakDays: 0}
	m.profiles.On("FindByID", mock.Anything, "u1").Return(profile, nil)
	m.activities.On("Record", mock.Anything, "u1", occurred, "frontend", 20).Return(nil)
	m.streaks.On("Reconcile", mock.Anything, profile, occurred, 20).Return(1, nil)
	m.weeks.On("MarkCompleted", mock.Anything, "u1", occurred, 1).Return(nil)
	m.levels.On("LevelFor", mock.Anything, 120).Return(1, nil)
	m.profiles.On("UpdatePoints", mock.Anything, "u1", 120, 1).Return(nil)

	p.Process(context.Background(), msg)

	m.profiles.AssertExpectations(t)
	m.activities.AssertExpectations(t)
	m.streaks.AssertExpectations(t)
	m.weeks.AssertExpectations(t)
	m.notifications.AssertNotCalled(t, "PublishLevelUp", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestProcessLevelUpPublishesNotification(t *testing.T) {
	p, m := newProcessor(t)
	msg := validMessage()
	msg.PointsEarned = intPtr(950)
	occurred, _ := msg.OccurredAt()

	profile := &entity.ProfileUser{UserID: "u1", PointsCurrent: 100, Level: 1}
	m.profiles.On("FindByID", mock.Anything, "u1").Return(profile, nil)
	m.activities.On("Record", mock.Anything, "u1", occurred, "frontend", 950).Return(nil)
	m.streaks.On("Reconcile", mock.Anything, profile, occurred, 950).Return(1, nil)
	m.weeks.On("MarkCompleted", mock.Anything, "u1", occurred, 1).Return(nil)
	m.levels.On("LevelFor", mock.Anything, 1050).Return(2, nil)
	m.profiles.On("UpdatePoints", mock.Anything, "u1", 1050, 2).Return(nil)
	m.notifications.On("PublishLevelUp", mock.Anything, "u1", 1, 2, 1050).Return()

	p.Process(context.Background(), msg)

	m.notifications.AssertExpectations(t)
}

func TestProcessDropsInvalidMessage(t *testing.T) {
	p, m := newProcessor(t)
	msg := validMessage()
	msg.UserID = ""

	p.Process(context.Background(), msg)

	m.profiles.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestProcessDropsMissingPoints(t *testing.T) {
	p, m := newProcessor(t)
	msg := validMessage()
	msg.PointsEarned = nil

	p.Process(context.Background(), msg)

	m.profiles.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestProcessDropsStaleEvent(t *testing.T) {
	p, m := newProcessor(t)
	msg := validMessage()
	msg.Timestamp = time.Now().Add(-2 * time.Hour).UTC().Format(time.RFC3339)

	p.Process(context.Background(), msg)

	m.profiles.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestProcessDropsUnknownUser(t *testing.T) {
	p, m := newProcessor(t)
	msg := validMessage()

	// Events never create profiles.
	m.profiles.On("FindByID", mock.Anything, "u1").Return(nil, nil)

	p.Process(context.Background(), msg)

	m.activities.AssertNotCalled(t, "Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	m.profiles.AssertNotCalled(t, "UpdatePoints", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestProcessSkipsDuplicate(t *testing.T) {
	p, m := newProcessor(t)
	msg := validMessage()
	occurred, _ := msg.OccurredAt()

	profile := &entity.ProfileUser{UserID: "u1", PointsCurrent: 100, Level: 1}
	m.profiles.On("FindByID", mock.Anything, "u1").Return(profile, nil)
	m.activities.On("Record", mock.Anything, "u1", occurred, "frontend", 20).Return(nil)
	m.streaks.On("Reconcile", mock.Anything, profile, occurred, 20).Return(1, nil)
	m.weeks.On("MarkCompleted", mock.Anything, "u1", occurred, 1).Return(nil)
	m.levels.On("LevelFor", mock.Anything, 120).Return(1, nil)
	m.profiles.On("UpdatePoints", mock.Anything, "u1", 120, 1).Return(nil)

	p.Process(context.Background(), msg)
	p.Process(context.Background(), msg)

	// The second, identical delivery touches nothing.
	m.profiles.AssertNumberOfCalls(t, "UpdatePoints", 1)
	m.activities.AssertNumberOfCalls(t, "Record", 1)
}

func TestProcessStepFailuresAreIsolated(t *testing.T) {
	p, m := newProcessor(t)
	msg := validMessage()
	occurred, _ := msg.OccurredAt()

	profile := &entity.ProfileUser{UserID: "u1", PointsCurrent: 100, Level: 1, CurrentStreakDays: 2}
	m.profiles.On("FindByID", mock.Anything, "u1").Return(profile, nil)
	m.activities.On("Record", mock.Anything, "u1", occurred, "frontend", 20).Return(errors.New("activity write failed"))
	m.streaks.On("Reconcile", mock.Anything, profile, occurred, 20).Return(0, errors.New("streak write failed"))
	// Weekly progress falls back to the profile's streak when reconciliation fails.
	m.weeks.On("MarkCompleted", mock.Anything, "u1", occurred, 2).Return(nil)
	m.levels.On("LevelFor", mock.Anything, 120).Return(1, nil)
	m.profiles.On("UpdatePoints", mock.Anything, "u1", 120, 1).Return(nil)

	p.Process(context.Background(), msg)

	m.weeks.AssertExpectations(t)
	m.profiles.AssertExpectations(t)
}

func TestProcessSkipsUpdateOnCorruptStoredTotal(t *testing.T) {
	p, m := newProcessor(t)
	msg := validMessage()
	occurred, _ := msg.OccurredAt()

	// A negative stored total cannot form a valid point quantity; the
	// rollups still run but the total is left alone.
	profile := &entity.ProfileUser{UserID: "u1", PointsCurrent: -50, Level: 1}
	m.profiles.On("FindByID", mock.Anything, "u1").Return(profile, nil)
	m.activities.On("Record", mock.Anything, "u1", occurred, "frontend", 20).Return(nil)
	m.streaks.On("Reconcile", mock.Anything, profile, occurred, 20).Return(1, nil)
	m.weeks.On("MarkCompleted", mock.Anything, "u1", occurred, 1).Return(nil)

	p.Process(context.Background(), msg)

	m.profiles.AssertNotCalled(t, "UpdatePoints", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestProcessLevelErrorKeepsCurrentLevel(t *testing.T) {
	p, m := newProcessor(t)
	msg := validMessage()
	occurred, _ := msg.OccurredAt()

	profile := &entity.ProfileUser{UserID: "u1", PointsCurrent: 100, Level: 3}
	m.profiles.On("FindByID", mock.Anything, "u1").Return(profile, nil)
	m.activities.On("Record", mock.Anything, "u1", occurred, "frontend", 20).Return(nil)
	m.streaks.On("Reconcile", mock.Anything, profile, occurred, 20).Return(1, nil)
	m.weeks.On("MarkCompleted", mock.Anything, "u1", occurred, 1).Return(nil)
	m.levels.On("LevelFor", mock.Anything, 120).Return(0, errors.New("rules unavailable"))
	m.profiles.On("UpdatePoints", mock.Anything, "u1", 120, 3).Return(nil)

	p.Process(context.Background(), msg)

	m.profiles.AssertExpectations(t)
	m.notifications.AssertNotCalled(t, "PublishLevelUp", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
