package handler

import (
	"net/http"
	"strconv"

	metricsDto "devpath.app/profileservice/internal/modules/metrics/dto"
	metrics "devpath.app/profileservice/internal/modules/metrics/service"
	"devpath.app/profileservice/pkg/response"
	"github.com/gin-gonic/gin"
)

type MetricsHandler struct {
	service metrics.MetricsService
}

func NewMetricsHandler(service metrics.MetricsService) *MetricsHandler {
	return &MetricsHandler{service: service}
}

func (h *MetricsHandler) GetMonthlyMetrics(c *gin.Context) {
	userID := c.Param("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId is required"})
		return
	}

	req := metricsDto.MonthlyMetricsRequest{UserID: userID}

	if year := c.Query("year"); year != "" {
		parsed, err := strconv.Atoi(year)
		if err != nil || parsed < 1970 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year"})
			return
		}
		req.Year = parsed
	}
	if month := c.Query("month"); month != "" {
		parsed, err := strconv.Atoi(month)
		if err != nil || parsed < 1 || parsed > 12 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "month must be between 1 and 12"})
			return
		}
		req.Month = parsed
	}

	result, err := h.service.GetMonthlyMetrics(c.Request.Context(), req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
