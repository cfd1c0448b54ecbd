package handler

import (
	"net/http"
	"strconv"

	leaderboardDto "devpath.app/profileservice/internal/modules/leaderboard/dto"
	leaderboard "devpath.app/profileservice/internal/modules/leaderboard/service"
	"devpath.app/profileservice/pkg/response"
	"github.com/gin-gonic/gin"
)

type LeaderboardHandler struct {
	service leaderboard.LeaderboardService
}

func NewLeaderboardHandler(service leaderboard.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{service: service}
}

func (h *LeaderboardHandler) GetLeaderboard(c *gin.Context) {
	timeframe := c.DefaultQuery("timeframe", leaderboardDto.TimeframeAllTime)
	switch timeframe {
	case leaderboardDto.TimeframeAllTime, leaderboardDto.TimeframeWeekly, leaderboardDto.TimeframeMonthly:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "timeframe must be one of: all-time, weekly, monthly"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit < 1 {
		limit = 50
	}
	if limit > 100 {
		limit = 100
	}
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if offset < 0 {
		offset = 0
	}

	result, err := h.service.GetLeaderboard(c.Request.Context(), leaderboardDto.LeaderboardRequest{
		Domain:         c.Query("domain"),
		Timeframe:      timeframe,
		Seniority:      c.Query("seniority"),
		Specialization: c.Query("specialization"),
		Limit:          limit,
		Offset:         offset,
	})
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
