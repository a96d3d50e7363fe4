package domain

type PrivilegeStatus string

const (
	PrivilegeStatusBronze PrivilegeStatus = "BRONZE"
	PrivilegeStatusSilver PrivilegeStatus = "SILVER"
	PrivilegeStatusGold   PrivilegeStatus = "GOLD"

	DefaultPrivilegeStatus = PrivilegeStatusBronze
)

type OperationType string

const (
	OperationFillIn OperationType = "FILL_IN_BALANCE"
	OperationDebit  OperationType = "DEBIT_THE_ACCOUNT"
)

// Opposite returns the operation that reverses o.
func (o OperationType) Opposite() OperationType {
	if o == OperationDebit {
		return OperationFillIn
	}
	return OperationDebit
}

// LedgerEntry is one balance change recorded by the Bonus service.
type LedgerEntry struct {
	Date          string        `json:"date"`
	TicketUID     string        `json:"ticketUid"`
	BalanceDiff   int           `json:"balanceDiff"`
	OperationType OperationType `json:"operationType"`
}

type Privilege struct {
	Balance int             `json:"balance"`
	Status  PrivilegeStatus `json:"status"`
	History []LedgerEntry   `json:"history"`
}

// Info drops the history.
func (p Privilege) Info() PrivilegeInfo {
	return PrivilegeInfo{Balance: p.Balance, Status: p.Status}
}

type PrivilegeInfo struct {
	Balance int             `json:"balance"`
	Status  PrivilegeStatus `json:"status"`
}

func DefaultPrivilegeInfo() PrivilegeInfo {
	return PrivilegeInfo{Balance: 0, Status: DefaultPrivilegeStatus}
}

// BalanceDelta is a signed change to a user's bonus balance tied to a ticket.
type BalanceDelta struct {
	TicketUID     string
	BalanceDiff   int
	OperationType OperationType
}
