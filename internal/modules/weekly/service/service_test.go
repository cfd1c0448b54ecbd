package service

import (
	"context"
	"testing"
	"time"

	"devpath.app/profileservice/internal/entity"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockWeeklyProgressRepository struct {
	mock.Mock
}

func (m *MockWeeklyProgressRepository) GetWeek(ctx context.Context, userID string, weekStart time.Time) (*entity.WeeklyProgress, error) {
	args := m.Called(ctx, userID, weekStart)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.WeeklyProgress), args.Error(1)
}

func (m *MockWeeklyProgressRepository) Save(ctx context.Context, progress *entity.WeeklyProgress) error {
	args := m.Called(ctx, progress)
	return args.Error(0)
}

func TestWeekStart(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{"monday maps to itself", time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC), time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)},
		{"friday maps back to monday", time.Date(2024, 3, 8, 23, 0, 0, 0, time.UTC), time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)},
		{"sunday belongs to the previous monday", time.Date(2024, 3, 10, 1, 0, 0, 0, time.UTC), time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)},
		{"next monday starts a new week", time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC), time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WeekStart(tt.in))
		})
	}
}

func TestSlotIndex(t *testing.T) {
	// 2024-03-04 is a Monday.
	for i := 0; i < 7; i++ {
		date := time.Date(2024, 3, 4+i, 12, 0, 0, 0, time.UTC)
		assert.Equal(t, i, SlotIndex(date))
	}
}

func TestMarkCompletedCreatesWeekLazily(t *testing.T) {
	repo := new(MockWeeklyProgressRepository)
	weekStart := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)

	repo.On("GetWeek", mock.Anything, "u1", weekStart).Return(nil, nil)
	repo.On("Save", mock.Anything, mock.MatchedBy(func(p *entity.WeeklyProgress) bool {
		// Friday 2024-03-08 is the fifth slot.
		return p.UserID == "u1" && p.WeekStartDate.Equal(weekStart) &&
			p.Friday && p.TotalActiveDays == 1 && p.CurrentStreak == 3 &&
			p.ID != uuid.Nil
	})).Return(nil)

	svc := NewWeeklyService(repo)
	err := svc.MarkCompleted(context.Background(), "u1", time.Date(2024, 3, 8, 9, 0, 0, 0, time.UTC), 3)

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestMarkCompletedIsIdempotentPerSlot(t *testing.T) {
	repo := new(MockWeeklyProgressRepository)
	weekStart := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)

	existing := &entity.WeeklyProgress{
		ID:              uuid.New(),
		UserID:          "u1",
		WeekStartDate:   weekStart,
		Friday:          true,
		TotalActiveDays: 1,
	}
	repo.On("GetWeek", mock.Anything, "u1", weekStart).Return(existing, nil)
	repo.On("Save", mock.Anything, mock.MatchedBy(func(p *entity.WeeklyProgress) bool {
		return p.Friday && p.TotalActiveDays == 1
	})).Return(nil)

	svc := NewWeeklyService(repo)
	err := svc.MarkCompleted(context.Background(), "u1", time.Date(2024, 3, 8, 20, 0, 0, 0, time.UTC), 1)

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestMarkCompletedSundaySlot(t *testing.T) {
	repo := new(MockWeeklyProgressRepository)
	weekStart := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)

	repo.On("GetWeek", mock.Anything, "u1", weekStart).Return(nil, nil)
	repo.On("Save", mock.Anything, mock.MatchedBy(func(p *entity.WeeklyProgress) bool {
		return p.Sunday && !p.Monday && p.TotalActiveDays == 1
	})).Return(nil)

	svc := NewWeeklyService(repo)
	err := svc.MarkCompleted(context.Background(), "u1", time.Date(2024, 3, 10, 23, 0, 0, 0, time.UTC), 1)

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestMarkCompletedResolvesSlotFromWallClockDate(t *testing.T) {
	repo := new(MockWeeklyProgressRepository)
	weekStart := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)

	repo.On("GetWeek", mock.Anything, "u1", weekStart).Return(nil, nil)
	repo.On("Save", mock.Anything, mock.MatchedBy(func(p *entity.WeeklyProgress) bool {
		return p.Sunday && !p.Monday && p.WeekStartDate.Equal(weekStart)
	})).Return(nil)

	// 00:30 Sunday March 10 in UTC+5 is still Saturday 19:30 in UTC; the
	// reported date wins, so the Sunday slot of the March 4 week flips.
	occurred := time.Date(2024, 3, 10, 0, 30, 0, 0, time.FixedZone("UTC+5", 5*3600))

	svc := NewWeeklyService(repo)
	err := svc.MarkCompleted(context.Background(), "u1", occurred, 1)

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestGetCurrentWeekDefaultsToEmptyCalendar(t *testing.T) {
	repo := new(MockWeeklyProgressRepository)
	repo.On("GetWeek", mock.Anything, "u1", mock.Anything).Return(nil, nil)

	svc := NewWeeklyService(repo)
	week, err := svc.GetCurrentWeek(context.Background(), "u1")

	require.NoError(t, err)
	assert.Equal(t, []bool{false, false, false, false, false, false, false}, week.CompletedDays())
	assert.Equal(t, 0, week.TotalActiveDays)
}
