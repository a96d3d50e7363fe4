package kafka

import "time"

const (
	EventTicketPurchased = "ticket_purchased"
	EventTicketRefunded  = "ticket_refunded"
)

// SagaEvent is published after a purchase or refund has committed. A non
// empty SoftFailures means the bonus ledger may disagree with the ticket.
type SagaEvent struct {
	Type          string    `json:"type"`
	TicketUID     string    `json:"ticket_uid"`
	Username      string    `json:"username"`
	FlightNumber  string    `json:"flight_number"`
	Price         int       `json:"price"`
	PaidByMoney   int       `json:"paid_by_money"`
	PaidByBonuses int       `json:"paid_by_bonuses"`
	BalanceDiff   int       `json:"balance_diff"`
	OperationType string    `json:"operation_type,omitempty"`
	SoftFailures  []string  `json:"soft_failures,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}

func (e SagaEvent) Drifted() bool {
	return len(e.SoftFailures) > 0
}
