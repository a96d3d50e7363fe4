package api

import (
	"net/http"

	"github.com/Domenick1991/airbooking-gateway/internal/service/aggregator"
	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	service aggregator.AggregatorUseCase
}

func NewHealthHandler(service aggregator.AggregatorUseCase) *HealthHandler {
	return &HealthHandler{service: service}
}

func (h *HealthHandler) Register(router *gin.RouterGroup) {
	router.GET("/health", h.health)
}

func (h *HealthHandler) health(c *gin.Context) {
	report := h.service.Health(c.Request.Context())
	status := http.StatusOK
	if !report.Healthy() {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, report)
}
