package saga

import (
	"github.com/Domenick1991/airbooking-gateway/internal/domain"
	"go.uber.org/zap"
)

type Step string

const (
	StepFlightCheck     Step = "flight_check"
	StepBalanceRead     Step = "balance_read"
	StepCreateTicket    Step = "create_ticket"
	StepApplyBonusDelta Step = "apply_bonus_delta"
	StepReadPrivilege   Step = "read_privilege"
	StepReadFlight      Step = "read_flight"

	StepFetchTicket  Step = "fetch_ticket"
	StepReadHistory  Step = "read_history"
	StepReverseBonus Step = "reverse_bonus"
	StepCancelTicket Step = "cancel_ticket"
)

type Policy int

const (
	// FailHard aborts the saga and surfaces the error to the caller.
	FailHard Policy = iota
	// FailSoft logs the error, records it in the journal and continues
	// with a default.
	FailSoft
)

func (p Policy) String() string {
	if p == FailSoft {
		return "fail-soft"
	}
	return "fail-hard"
}

// Steps that run before the primary effect are fail-hard, bonus
// bookkeeping after it is fail-soft. Ticket creation and cancellation are
// the primary effects.
var policies = map[Step]Policy{
	StepFlightCheck:     FailHard,
	StepBalanceRead:     FailSoft,
	StepCreateTicket:    FailHard,
	StepApplyBonusDelta: FailSoft,
	StepReadPrivilege:   FailSoft,
	StepReadFlight:      FailSoft,

	StepFetchTicket:  FailHard,
	StepReadHistory:  FailSoft,
	StepReverseBonus: FailSoft,
	StepCancelTicket: FailHard,
}

// PolicyOf returns the policy of step. Unknown steps are fail-hard.
func PolicyOf(step Step) Policy {
	if p, ok := policies[step]; ok {
		return p
	}
	return FailHard
}

// journal records the fail-soft steps absorbed during one saga run.
type journal struct {
	logger *zap.Logger
	soft   []string
}

func newJournal(logger *zap.Logger, saga string, p domain.Principal, fields ...zap.Field) *journal {
	fields = append([]zap.Field{zap.String("saga", saga), zap.String("username", p.Username)}, fields...)
	return &journal{logger: logger.With(fields...)}
}

// settle applies the policy of step to a failed step. It returns err for
// fail-hard steps and nil for fail-soft ones.
func (j *journal) settle(step Step, err error) error {
	if PolicyOf(step) == FailHard {
		j.logger.Info("saga aborted", zap.String("step", string(step)), zap.Error(err))
		return err
	}
	j.soft = append(j.soft, string(step))
	j.logger.Warn("saga step failed, continuing", zap.String("step", string(step)), zap.Error(err))
	return nil
}

func (j *journal) softFailures() []string {
	if len(j.soft) == 0 {
		return nil
	}
	return append([]string(nil), j.soft...)
}
