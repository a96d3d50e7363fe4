package saga

import (
	"context"

	"github.com/Domenick1991/airbooking-gateway/internal/domain"
	"github.com/Domenick1991/airbooking-gateway/internal/kafka"
	"go.uber.org/zap"
)

// bonusDivisor credits one bonus per ten units paid by money, i.e. 10%
// rounded down. Dividing first keeps large prices from overflowing.
const bonusDivisor = 10

// Purchase buys a ticket, optionally paying from the bonus balance. A
// missing flight or a failed ticket creation aborts with nothing to undo;
// every bonus step after the ticket exists is fail-soft.
func (s *SagaService) Purchase(ctx context.Context, p domain.Principal, req domain.PurchaseRequest) (*domain.PurchaseOutcome, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	j := newJournal(s.logger, "purchase", p, zap.String("flight_number", req.FlightNumber))

	flight, err := s.flights.GetByNumber(ctx, req.FlightNumber)
	if err != nil {
		return nil, j.settle(StepFlightCheck, err)
	}

	balance := 0
	if privilege, err := s.bonus.GetPrivilege(ctx, p); err == nil {
		balance = privilege.Balance
	} else if err := j.settle(StepBalanceRead, err); err != nil {
		return nil, err
	}

	paidByBonuses, delta := splitPayment(req.Price, balance, req.PaidFromBalance)

	ticket, err := s.tickets.Create(ctx, p, domain.CreateTicketInput{FlightNumber: req.FlightNumber, Price: req.Price})
	if err != nil {
		return nil, j.settle(StepCreateTicket, err)
	}

	// The ticket exists: finish the bookkeeping even if the client is gone.
	ctx = context.WithoutCancel(ctx)
	delta.TicketUID = ticket.TicketUID

	if delta.BalanceDiff != 0 {
		if err := s.bonus.ApplyDelta(ctx, p, delta); err != nil {
			if err := j.settle(StepApplyBonusDelta, err); err != nil {
				return nil, err
			}
		}
	}

	info := domain.PrivilegeInfo{Balance: balance + delta.BalanceDiff, Status: domain.DefaultPrivilegeStatus}
	if privilege, err := s.bonus.GetPrivilege(ctx, p); err == nil {
		info = privilege.Info()
	} else if err := j.settle(StepReadPrivilege, err); err != nil {
		return nil, err
	}

	if fresh, err := s.flights.GetByNumber(ctx, req.FlightNumber); err == nil {
		flight = fresh
	} else if err := j.settle(StepReadFlight, err); err != nil {
		return nil, err
	}

	status := ticket.Status
	if status == "" {
		status = domain.TicketStatusPaid
	}
	outcome := &domain.PurchaseOutcome{
		TicketUID:     ticket.TicketUID,
		FlightNumber:  req.FlightNumber,
		FromAirport:   flight.FromAirport,
		ToAirport:     flight.ToAirport,
		Date:          flight.Date,
		Price:         req.Price,
		PaidByMoney:   req.Price - paidByBonuses,
		PaidByBonuses: paidByBonuses,
		Status:        status,
		Privilege:     info,
	}

	s.publish(ctx, kafka.SagaEvent{
		Type:          kafka.EventTicketPurchased,
		TicketUID:     outcome.TicketUID,
		Username:      p.Username,
		FlightNumber:  outcome.FlightNumber,
		Price:         outcome.Price,
		PaidByMoney:   outcome.PaidByMoney,
		PaidByBonuses: outcome.PaidByBonuses,
		BalanceDiff:   delta.BalanceDiff,
		OperationType: string(delta.OperationType),
		SoftFailures:  j.softFailures(),
	})

	j.logger.Info("ticket purchased",
		zap.String("ticket_uid", outcome.TicketUID),
		zap.Int("paid_by_money", outcome.PaidByMoney),
		zap.Int("paid_by_bonuses", outcome.PaidByBonuses),
		zap.Int("balance_diff", delta.BalanceDiff),
		zap.Strings("soft_failures", j.soft),
	)
	return outcome, nil
}

// splitPayment decides how much of price is covered by the balance and
// the resulting balance change. Paying with bonuses earns none.
func splitPayment(price, balance int, fromBalance bool) (int, domain.BalanceDelta) {
	if fromBalance && balance > 0 {
		paid := min(price, balance)
		return paid, domain.BalanceDelta{BalanceDiff: -paid, OperationType: domain.OperationDebit}
	}
	return 0, domain.BalanceDelta{BalanceDiff: price / bonusDivisor, OperationType: domain.OperationFillIn}
}
