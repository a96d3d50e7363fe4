package domain

import "strings"

type PurchaseRequest struct {
	FlightNumber    string
	Price           int
	PaidFromBalance bool
}

// Validate checks the request before any downstream call is made.
func (r PurchaseRequest) Validate() error {
	var fields []FieldError
	if strings.TrimSpace(r.FlightNumber) == "" {
		fields = append(fields, FieldError{Field: "flightNumber", Description: "flight number is required"})
	}
	if r.Price <= 0 {
		fields = append(fields, FieldError{Field: "price", Description: "price must be a positive integer"})
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

type PurchaseOutcome struct {
	TicketUID     string        `json:"ticketUid"`
	FlightNumber  string        `json:"flightNumber"`
	FromAirport   string        `json:"fromAirport"`
	ToAirport     string        `json:"toAirport"`
	Date          string        `json:"date"`
	Price         int           `json:"price"`
	PaidByMoney   int           `json:"paidByMoney"`
	PaidByBonuses int           `json:"paidByBonuses"`
	Status        TicketStatus  `json:"status"`
	Privilege     PrivilegeInfo `json:"privilege"`
}

type UserProfile struct {
	Tickets   []TicketView  `json:"tickets"`
	Privilege PrivilegeInfo `json:"privilege"`
}

type HealthStatus string

const (
	HealthOK       HealthStatus = "OK"
	HealthDegraded HealthStatus = "DEGRADED"
)

type HealthReport struct {
	Status         HealthStatus      `json:"status"`
	Services       map[string]string `json:"services"`
	FailedServices []string          `json:"failed_services,omitempty"`
}

func (r HealthReport) Healthy() bool {
	return r.Status == HealthOK
}
