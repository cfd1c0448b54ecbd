package dto

import "time"

type CreateProfileInput struct {
	UserID         string  `json:"userId" binding:"required,max=64"`
	Seniority      string  `json:"seniority" binding:"required"`
	Specialization string  `json:"specialization" binding:"required"`
	AvatarURL      *string `json:"avatarUrl" binding:"omitempty,url"`
}

type UpdateProfileInput struct {
	Seniority      *string `json:"seniority" binding:"omitempty,min=1"`
	Specialization *string `json:"specialization" binding:"omitempty,min=1"`
	AvatarURL      *string `json:"avatarUrl" binding:"omitempty,url"`
}

type AddPointsInput struct {
	Points        int    `json:"points" binding:"required,gte=1"`
	Domain        string `json:"domain" binding:"required"`
	SessionID     string `json:"sessionId"`
	SourceService string `json:"sourceService"`
}

type AvatarURLInput struct {
	AvatarURL string `json:"avatarUrl" binding:"required,url"`
}

type ProfileResponse struct {
	UserID            string    `json:"userId"`
	Seniority         string    `json:"seniority"`
	Specialization    string    `json:"specialization"`
	Level             int       `json:"level"`
	PointsCurrent     int       `json:"pointsCurrent"`
	CurrentStreakDays int       `json:"currentStreakDays"`
	StreakBest        int       `json:"streakBest"`
	AvatarURL         *string   `json:"avatarUrl"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

type AddPointsResponse struct {
	PointsAdded       int  `json:"pointsAdded"`
	TotalPoints       int  `json:"totalPoints"`
	PreviousLevel     int  `json:"previousLevel"`
	CurrentLevel      int  `json:"currentLevel"`
	LeveledUp         bool `json:"leveledUp"`
	PointsToNextLevel int  `json:"pointsToNextLevel"`
}

type UserStatsResponse struct {
	CurrentStreakDays  int    `json:"currentStreakDays"`
	BestStreak         int    `json:"bestStreak"`
	PointsCurrent      int    `json:"pointsCurrent"`
	PointsToNextLevel  int    `json:"pointsToNextLevel"`
	Level              int    `json:"level"`
	TotalActiveDays    int    `json:"totalActiveDays"`
	ThisWeekActiveDays int    `json:"thisWeekActiveDays"`
	WeeklyProgress     []bool `json:"weeklyProgress"`
}
