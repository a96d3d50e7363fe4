package saga

import (
	"context"
	"time"

	"github.com/Domenick1991/airbooking-gateway/internal/domain"
	"github.com/Domenick1991/airbooking-gateway/internal/kafka"
	"go.uber.org/zap"
)

var ledgerDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// Refund cancels a PAID ticket and reverses the balance change recorded
// for it. A ticket without a ledger entry is cancelled with no reversal.
func (s *SagaService) Refund(ctx context.Context, p domain.Principal, ticketUID string) error {
	j := newJournal(s.logger, "refund", p, zap.String("ticket_uid", ticketUID))

	ticket, err := s.tickets.Get(ctx, p, ticketUID)
	if err != nil {
		return j.settle(StepFetchTicket, err)
	}
	if ticket.Status == domain.TicketStatusCanceled {
		return domain.ErrTicketAlreadyCanceled
	}

	ctx = context.WithoutCancel(ctx)

	var reversal *domain.BalanceDelta
	if privilege, err := s.bonus.GetPrivilege(ctx, p); err == nil {
		entry, matches := findLedgerEntry(privilege.History, ticketUID)
		if matches > 1 {
			j.logger.Warn("duplicate ledger entries for ticket, reversing the latest",
				zap.Int("entries", matches),
				zap.String("date", entry.Date),
			)
		}
		if entry != nil {
			reversal = &domain.BalanceDelta{
				TicketUID:     ticketUID,
				BalanceDiff:   -entry.BalanceDiff,
				OperationType: entry.OperationType.Opposite(),
			}
		}
	} else if err := j.settle(StepReadHistory, err); err != nil {
		return err
	}

	if reversal != nil && reversal.BalanceDiff != 0 {
		if err := s.bonus.ApplyDelta(ctx, p, *reversal); err != nil {
			if err := j.settle(StepReverseBonus, err); err != nil {
				return err
			}
		}
	}

	if err := s.tickets.Cancel(ctx, p, ticketUID); err != nil {
		return j.settle(StepCancelTicket, err)
	}

	event := kafka.SagaEvent{
		Type:         kafka.EventTicketRefunded,
		TicketUID:    ticketUID,
		Username:     p.Username,
		FlightNumber: ticket.FlightNumber,
		Price:        ticket.Price,
		SoftFailures: j.softFailures(),
	}
	if reversal != nil {
		event.BalanceDiff = reversal.BalanceDiff
		event.OperationType = string(reversal.OperationType)
	}
	s.publish(ctx, event)

	j.logger.Info("ticket refunded",
		zap.Int("balance_diff", event.BalanceDiff),
		zap.Strings("soft_failures", j.soft),
	)
	return nil
}

// findLedgerEntry returns the entry to reverse for ticketUID and how many
// entries matched. Among duplicates the most recent by date wins, ties go
// to the later position in the ledger.
func findLedgerEntry(history []domain.LedgerEntry, ticketUID string) (*domain.LedgerEntry, int) {
	var (
		best    *domain.LedgerEntry
		matches int
	)
	for i := range history {
		entry := &history[i]
		if entry.TicketUID != ticketUID {
			continue
		}
		matches++
		if best == nil || !ledgerBefore(entry.Date, best.Date) {
			best = entry
		}
	}
	return best, matches
}

// ledgerBefore reports whether date a is strictly earlier than b. A date
// that does not parse is earlier than any date that does; two such dates
// are compared as strings.
func ledgerBefore(a, b string) bool {
	ta, okA := parseLedgerDate(a)
	tb, okB := parseLedgerDate(b)
	switch {
	case okA && okB:
		return ta.Before(tb)
	case okA != okB:
		return !okA
	default:
		return a < b
	}
}

func parseLedgerDate(s string) (time.Time, bool) {
	for _, layout := range ledgerDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
