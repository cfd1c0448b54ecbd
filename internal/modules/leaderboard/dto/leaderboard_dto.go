package dto

const (
	TimeframeAllTime = "all-time"
	TimeframeWeekly  = "weekly"
	TimeframeMonthly = "monthly"
)

type LeaderboardRequest struct {
	Domain         string
	Timeframe      string
	Seniority      string
	Specialization string
	Limit          int
	Offset         int
}

type RecentActivity struct {
	Last7Days  int `json:"last_7_days"`
	Last30Days int `json:"last_30_days"`
}

type LeaderboardEntry struct {
	UserID            string         `json:"user_id"`
	Points            int            `json:"points"`
	Level             int            `json:"level"`
	StreakBest        int            `json:"streak_best"`
	CurrentStreakDays int            `json:"current_streak_days"`
	AvatarURL         *string        `json:"avatar_url"`
	Seniority         string         `json:"seniority"`
	Specialization    string         `json:"specialization"`
	Rank              int            `json:"rank"`
	RecentActivity    RecentActivity `json:"recent_activity"`
}

type LeaderboardFilters struct {
	Domain         string `json:"domain,omitempty"`
	Timeframe      string `json:"timeframe"`
	Seniority      string `json:"seniority,omitempty"`
	Specialization string `json:"specialization,omitempty"`
}

type LeaderboardResponse struct {
	Leaderboard []LeaderboardEntry `json:"leaderboard"`
	TotalUsers  int                `json:"total_users"`
	CurrentPage int                `json:"current_page"`
	TotalPages  int                `json:"total_pages"`
	Filters     LeaderboardFilters `json:"filters"`
}
