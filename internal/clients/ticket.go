package clients

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/Domenick1991/airbooking-gateway/internal/domain"
)

type TicketClient struct {
	baseClient
}

func NewTicketClient(baseURL string, timeout time.Duration) *TicketClient {
	return &TicketClient{baseClient: newBaseClient("ticket", baseURL, timeout)}
}

// List returns the caller's tickets. The Ticket service answers 404 when
// the user has none, which is reported as an empty list.
func (c *TicketClient) List(ctx context.Context, p domain.Principal) ([]domain.Ticket, error) {
	tickets := []domain.Ticket{}
	err := c.do(ctx, call{
		op:        "list tickets",
		method:    http.MethodGet,
		path:      "/api/v1/tickets",
		principal: &p,
		out:       &tickets,
	})
	if errors.Is(err, errNotFound) {
		return []domain.Ticket{}, nil
	}
	if err != nil {
		return nil, err
	}
	return tickets, nil
}

// Get returns domain.ErrTicketNotFound both for unknown tickets and for
// tickets owned by another user.
func (c *TicketClient) Get(ctx context.Context, p domain.Principal, uid string) (*domain.Ticket, error) {
	var ticket domain.Ticket
	err := c.do(ctx, call{
		op:        "get ticket",
		method:    http.MethodGet,
		path:      ticketPath(uid),
		principal: &p,
		out:       &ticket,
	})
	if err != nil {
		return nil, notFoundAs(err, domain.ErrTicketNotFound)
	}
	return &ticket, nil
}

func (c *TicketClient) Create(ctx context.Context, p domain.Principal, in domain.CreateTicketInput) (*domain.Ticket, error) {
	var ticket domain.Ticket
	err := c.do(ctx, call{
		op:        "create ticket",
		method:    http.MethodPost,
		path:      "/api/v1/tickets",
		principal: &p,
		body:      in,
		out:       &ticket,
	})
	if err != nil {
		// a 404 on create is not a missing resource
		return nil, notFoundAs(err, c.fail("create ticket", http.StatusNotFound, errNotFound))
	}
	if ticket.TicketUID == "" {
		return nil, c.fail("create ticket", http.StatusOK, errors.New("response has no ticketUid"))
	}
	return &ticket, nil
}

// Cancel moves the ticket to CANCELED, the only status transition the
// Ticket service exposes.
func (c *TicketClient) Cancel(ctx context.Context, p domain.Principal, uid string) error {
	err := c.do(ctx, call{
		op:        "cancel ticket",
		method:    http.MethodDelete,
		path:      ticketPath(uid),
		principal: &p,
	})
	return notFoundAs(err, domain.ErrTicketNotFound)
}

func ticketPath(uid string) string {
	return "/api/v1/tickets/" + url.PathEscape(uid)
}
