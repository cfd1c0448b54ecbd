package handler

import (
	"net/http"
	"time"

	activityDto "devpath.app/profileservice/internal/modules/activity/dto"
	activity "devpath.app/profileservice/internal/modules/activity/service"
	"devpath.app/profileservice/pkg/response"
	"github.com/gin-gonic/gin"
)

type ActivityHandler struct {
	service activity.ActivityService
}

func NewActivityHandler(service activity.ActivityService) *ActivityHandler {
	return &ActivityHandler{service: service}
}

func (h *ActivityHandler) GetDailyActivities(c *gin.Context) {
	userID := c.Param("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId is required"})
		return
	}

	req := activityDto.DailyActivitiesRequest{
		UserID: userID,
		Domain: c.Query("domain"),
	}

	if start := c.Query("start"); start != "" {
		parsed, err := parseDate(start)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start date"})
			return
		}
		req.StartDate = &parsed
	}
	if end := c.Query("end"); end != "" {
		parsed, err := parseDate(end)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end date"})
			return
		}
		req.EndDate = &parsed
	}

	result, err := h.service.GetDailyActivities(c.Request.Context(), req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
