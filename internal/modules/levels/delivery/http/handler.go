package handler

import (
	"net/http"

	levels "devpath.app/profileservice/internal/modules/levels/service"
	"devpath.app/profileservice/pkg/response"
	"github.com/gin-gonic/gin"
)

type LevelHandler struct {
	service levels.LevelService
}

func NewLevelHandler(service levels.LevelService) *LevelHandler {
	return &LevelHandler{service: service}
}

func (h *LevelHandler) GetLevelRules(c *gin.Context) {
	rules, err := h.service.GetLevelRules(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": rules})
}
