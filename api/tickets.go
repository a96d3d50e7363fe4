package api

import (
	"net/http"

	"github.com/Domenick1991/airbooking-gateway/internal/domain"
	"github.com/Domenick1991/airbooking-gateway/internal/service/aggregator"
	"github.com/Domenick1991/airbooking-gateway/internal/service/saga"
	"github.com/gin-gonic/gin"
)

type TicketHandler struct {
	reader aggregator.AggregatorUseCase
	sagas  saga.SagaUseCase
}

type purchaseRequest struct {
	FlightNumber    string `json:"flightNumber" binding:"required"`
	Price           *int   `json:"price" binding:"required,gt=0"`
	PaidFromBalance *bool  `json:"paidFromBalance" binding:"required"`
}

func NewTicketHandler(reader aggregator.AggregatorUseCase, sagas saga.SagaUseCase) *TicketHandler {
	useJSONFieldNames()
	return &TicketHandler{reader: reader, sagas: sagas}
}

func (h *TicketHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.POST("", h.purchase)
	router.GET("/:ticketUid", h.get)
	router.DELETE("/:ticketUid", h.refund)
}

func (h *TicketHandler) list(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	views, err := h.reader.Tickets(c.Request.Context(), p)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

func (h *TicketHandler) purchase(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	var req purchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, bindingError(err))
		return
	}

	outcome, err := h.sagas.Purchase(c.Request.Context(), p, domain.PurchaseRequest{
		FlightNumber:    req.FlightNumber,
		Price:           *req.Price,
		PaidFromBalance: *req.PaidFromBalance,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, outcome)
}

func (h *TicketHandler) get(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	view, err := h.reader.Ticket(c.Request.Context(), p, c.Param("ticketUid"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *TicketHandler) refund(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	if err := h.sagas.Refund(c.Request.Context(), p, c.Param("ticketUid")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
