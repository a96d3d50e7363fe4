package api

import (
	"net/http"
	"strconv"

	"github.com/Domenick1991/airbooking-gateway/internal/domain"
	"github.com/Domenick1991/airbooking-gateway/internal/service/flights"
	"github.com/gin-gonic/gin"
)

type FlightHandler struct {
	service flights.FlightUseCase
}

func NewFlightHandler(service flights.FlightUseCase) *FlightHandler {
	return &FlightHandler{service: service}
}

func (h *FlightHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
}

func (h *FlightHandler) list(c *gin.Context) {
	var fields []domain.FieldError
	page, ok := queryInt(c, "page", flights.DefaultPage)
	if !ok {
		fields = append(fields, domain.FieldError{Field: "page", Description: "must be an integer"})
	}
	size, ok := queryInt(c, "size", flights.DefaultSize)
	if !ok {
		fields = append(fields, domain.FieldError{Field: "size", Description: "must be an integer"})
	}
	if len(fields) > 0 {
		respondError(c, &domain.ValidationError{Fields: fields})
		return
	}

	result, err := h.service.List(c.Request.Context(), page, size)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func queryInt(c *gin.Context, key string, def int) (int, bool) {
	raw, ok := c.GetQuery(key)
	if !ok || raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return n, true
}
