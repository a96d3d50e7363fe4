package api

import (
	"net/http"

	"github.com/Domenick1991/airbooking-gateway/internal/service/aggregator"
	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	service aggregator.AggregatorUseCase
}

func NewUserHandler(service aggregator.AggregatorUseCase) *UserHandler {
	return &UserHandler{service: service}
}

func (h *UserHandler) Register(router *gin.RouterGroup) {
	router.GET("/me", h.me)
	router.GET("/privilege", h.privilege)
}

func (h *UserHandler) me(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	profile, err := h.service.Profile(c.Request.Context(), p)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *UserHandler) privilege(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	privilege, err := h.service.Privilege(c.Request.Context(), p)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, privilege)
}
