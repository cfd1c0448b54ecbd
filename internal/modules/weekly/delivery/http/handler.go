package handler

import (
	"net/http"

	weekly "devpath.app/profileservice/internal/modules/weekly/service"
	"devpath.app/profileservice/pkg/response"
	"github.com/gin-gonic/gin"
)

type WeeklyHandler struct {
	service weekly.WeeklyService
}

func NewWeeklyHandler(service weekly.WeeklyService) *WeeklyHandler {
	return &WeeklyHandler{service: service}
}

func (h *WeeklyHandler) GetWeeklyProgress(c *gin.Context) {
	userID := c.Param("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId is required"})
		return
	}

	progress, err := h.service.GetCurrentWeek(c.Request.Context(), userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user_id":           progress.UserID,
		"week_start_date":   progress.WeekStartDate.Format("2006-01-02"),
		"completed_days":    progress.CompletedDays(),
		"current_streak":    progress.CurrentStreak,
		"total_active_days": progress.TotalActiveDays,
	})
}
