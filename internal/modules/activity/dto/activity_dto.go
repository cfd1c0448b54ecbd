package dto

import (
	"time"

	"devpath.app/profileservice/internal/entity"
)

type DailyActivitiesRequest struct {
	UserID    string
	StartDate *time.Time
	EndDate   *time.Time
	Domain    string
}

type DailyActivitiesResponse struct {
	Activities          []entity.DailyActivity `json:"activities"`
	TotalDays           int                    `json:"total_days"`
	TotalEvents         int                    `json:"total_events"`
	TotalPoints         int                    `json:"total_points"`
	AveragePointsPerDay float64                `json:"average_points_per_day"`
	MostActiveDay       *time.Time             `json:"most_active_day"`
	Domains             []string               `json:"domains"`
}
