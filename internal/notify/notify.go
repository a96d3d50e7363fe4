package notify

import (
	"context"
	"fmt"

	"github.com/Domenick1991/airbooking-gateway/internal/kafka"
	"go.uber.org/zap"
)

// Sender delivers saga outcomes to users. Delivery is a structured log
// line; operators also get a warning for every event whose bonus
// bookkeeping was not fully applied.
type Sender struct {
	logger *zap.Logger
}

func NewSender(logger *zap.Logger) *Sender {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Sender{logger: logger}
}

func (s *Sender) Send(ctx context.Context, event kafka.SagaEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.logger.Info("notify user",
		zap.String("username", event.Username),
		zap.String("type", event.Type),
		zap.String("ticket_uid", event.TicketUID),
		zap.String("message", Message(event)),
	)

	if event.Drifted() {
		s.logger.Warn("bonus ledger may be out of sync",
			zap.String("username", event.Username),
			zap.String("ticket_uid", event.TicketUID),
			zap.Int("balance_diff", event.BalanceDiff),
			zap.String("operation_type", event.OperationType),
			zap.Strings("soft_failures", event.SoftFailures),
		)
	}
	return nil
}

// Message renders the user-facing text for event.
func Message(event kafka.SagaEvent) string {
	switch event.Type {
	case kafka.EventTicketPurchased:
		msg := fmt.Sprintf("Ticket %s for flight %s purchased: %d paid by money, %d paid by bonuses.",
			event.TicketUID, event.FlightNumber, event.PaidByMoney, event.PaidByBonuses)
		if event.BalanceDiff > 0 {
			msg += fmt.Sprintf(" %d bonuses credited.", event.BalanceDiff)
		}
		return msg
	case kafka.EventTicketRefunded:
		msg := fmt.Sprintf("Ticket %s for flight %s cancelled.", event.TicketUID, event.FlightNumber)
		switch {
		case event.BalanceDiff > 0:
			msg += fmt.Sprintf(" %d bonuses returned.", event.BalanceDiff)
		case event.BalanceDiff < 0:
			msg += fmt.Sprintf(" %d bonuses withdrawn.", -event.BalanceDiff)
		}
		return msg
	default:
		return fmt.Sprintf("Ticket %s: %s.", event.TicketUID, event.Type)
	}
}
