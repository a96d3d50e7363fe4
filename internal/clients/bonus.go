package clients

import (
	"context"
	"net/http"
	"time"

	"github.com/Domenick1991/airbooking-gateway/internal/domain"
)

type BonusClient struct {
	baseClient
}

func NewBonusClient(baseURL string, timeout time.Duration) *BonusClient {
	return &BonusClient{baseClient: newBaseClient("bonus", baseURL, timeout)}
}

type balanceUpdateRequest struct {
	Username      string               `json:"username"`
	TicketUID     string               `json:"ticketUid"`
	BalanceDiff   int                  `json:"balanceDiff"`
	OperationType domain.OperationType `json:"operationType"`
}

// GetPrivilege returns balance, tier and ledger history of the caller.
func (c *BonusClient) GetPrivilege(ctx context.Context, p domain.Principal) (*domain.Privilege, error) {
	var privilege domain.Privilege
	err := c.do(ctx, call{
		op:        "get privilege",
		method:    http.MethodGet,
		path:      "/api/v1/privilege",
		principal: &p,
		out:       &privilege,
	})
	if err != nil {
		return nil, notFoundAs(err, domain.ErrPrivilegeNotFound)
	}
	if privilege.Status == "" {
		privilege.Status = domain.DefaultPrivilegeStatus
	}
	if privilege.History == nil {
		privilege.History = []domain.LedgerEntry{}
	}
	return &privilege, nil
}

// ApplyDelta records a signed balance change. The Bonus service rejects
// changes that would make the balance negative; that surfaces as a
// *domain.ServiceError like any other failure.
func (c *BonusClient) ApplyDelta(ctx context.Context, p domain.Principal, delta domain.BalanceDelta) error {
	err := c.do(ctx, call{
		op:        "update privilege",
		method:    http.MethodPost,
		path:      "/api/v1/privilege/update",
		principal: &p,
		body: balanceUpdateRequest{
			Username:      p.Username,
			TicketUID:     delta.TicketUID,
			BalanceDiff:   delta.BalanceDiff,
			OperationType: delta.OperationType,
		},
	})
	return notFoundAs(err, domain.ErrPrivilegeNotFound)
}
