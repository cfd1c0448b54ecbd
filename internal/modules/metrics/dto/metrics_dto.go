package dto

type MonthlyMetricsRequest struct {
	UserID string
	Year   int
	Month  int // 1-12
}

type DomainBreakdown struct {
	Domain     string  `json:"domain"`
	Points     int     `json:"points"`
	Events     int     `json:"events"`
	Percentage float64 `json:"percentage"`
}

type WeeklyBreakdown struct {
	Week       int `json:"week"`
	Points     int `json:"points"`
	Events     int `json:"events"`
	ActiveDays int `json:"active_days"`
}

type LevelProgress struct {
	StartLevel int  `json:"start_level"`
	EndLevel   int  `json:"end_level"`
	LeveledUp  bool `json:"leveled_up"`
}

type MonthComparison struct {
	PointsChange           int     `json:"points_change"`
	PointsChangePercentage float64 `json:"points_change_percentage"`
	ActiveDaysChange       int     `json:"active_days_change"`
	EventsChange           int     `json:"events_change"`
}

type MonthlyMetrics struct {
	Year                      int               `json:"year"`
	Month                     int               `json:"month"`
	TotalPoints               int               `json:"total_points"`
	TotalEvents               int               `json:"total_events"`
	ActiveDays                int               `json:"active_days"`
	AveragePointsPerDay       float64           `json:"average_points_per_day"`
	AveragePointsPerActiveDay float64           `json:"average_points_per_active_day"`
	StreakDays                int               `json:"streak_days"`
	LevelProgress             LevelProgress     `json:"level_progress"`
	DomainBreakdown           []DomainBreakdown `json:"domain_breakdown"`
	WeeklyBreakdown           []WeeklyBreakdown `json:"weekly_breakdown"`
	ComparisonToPreviousMonth *MonthComparison  `json:"comparison_to_previous_month"`
}
