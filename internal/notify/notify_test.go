package notify

import (
	"context"
	"testing"

	"github.com/Domenick1991/airbooking-gateway/internal/kafka"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestMessage(t *testing.T) {
	testCases := []struct {
		name  string
		event kafka.SagaEvent
		want  string
	}{
		{
			name:  "purchase with money",
			event: kafka.SagaEvent{Type: kafka.EventTicketPurchased, TicketUID: "uid-1", FlightNumber: "AFL031", PaidByMoney: 1500, BalanceDiff: 150},
			want:  "Ticket uid-1 for flight AFL031 purchased: 1500 paid by money, 0 paid by bonuses. 150 bonuses credited.",
		},
		{
			name:  "purchase with bonuses",
			event: kafka.SagaEvent{Type: kafka.EventTicketPurchased, TicketUID: "uid-1", FlightNumber: "AFL031", PaidByBonuses: 1500, BalanceDiff: -1500},
			want:  "Ticket uid-1 for flight AFL031 purchased: 0 paid by money, 1500 paid by bonuses.",
		},
		{
			name:  "refund returns bonuses",
			event: kafka.SagaEvent{Type: kafka.EventTicketRefunded, TicketUID: "uid-1", FlightNumber: "AFL031", BalanceDiff: 500},
			want:  "Ticket uid-1 for flight AFL031 cancelled. 500 bonuses returned.",
		},
		{
			name:  "refund withdraws accrual",
			event: kafka.SagaEvent{Type: kafka.EventTicketRefunded, TicketUID: "uid-1", FlightNumber: "AFL031", BalanceDiff: -150},
			want:  "Ticket uid-1 for flight AFL031 cancelled. 150 bonuses withdrawn.",
		},
		{
			name:  "unknown",
			event: kafka.SagaEvent{Type: "ticket_moved", TicketUID: "uid-1"},
			want:  "Ticket uid-1: ticket_moved.",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Message(tc.event))
		})
	}
}

func TestSender_Send(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	sender := NewSender(zap.New(core))

	err := sender.Send(context.Background(), kafka.SagaEvent{Type: kafka.EventTicketPurchased, TicketUID: "uid-1", Username: "Test Max"})

	require.NoError(t, err)
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "notify user", logs.All()[0].Message)
	assert.Equal(t, "Test Max", logs.All()[0].ContextMap()["username"])
}

func TestSender_Send_Drift(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	sender := NewSender(zap.New(core))

	err := sender.Send(context.Background(), kafka.SagaEvent{
		Type:         kafka.EventTicketRefunded,
		TicketUID:    "uid-1",
		SoftFailures: []string{"reverse_bonus"},
	})

	require.NoError(t, err)
	assert.Equal(t, 1, logs.FilterMessage("bonus ledger may be out of sync").Len())
}

func TestSender_Send_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, NewSender(nil).Send(ctx, kafka.SagaEvent{}), context.Canceled)
}
