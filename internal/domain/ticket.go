package domain

type TicketStatus string

const (
	TicketStatusPaid     TicketStatus = "PAID"
	TicketStatusCanceled TicketStatus = "CANCELED"
)

type Ticket struct {
	TicketUID    string       `json:"ticketUid"`
	FlightNumber string       `json:"flightNumber"`
	Price        int          `json:"price"`
	Status       TicketStatus `json:"status"`
}

type CreateTicketInput struct {
	FlightNumber string `json:"flightNumber"`
	Price        int    `json:"price"`
}

// TicketView is a ticket enriched with the route of its flight. Route
// fields are empty when the flight could not be looked up.
type TicketView struct {
	TicketUID    string       `json:"ticketUid"`
	FlightNumber string       `json:"flightNumber"`
	FromAirport  string       `json:"fromAirport"`
	ToAirport    string       `json:"toAirport"`
	Date         string       `json:"date"`
	Price        int          `json:"price"`
	Status       TicketStatus `json:"status"`
}

func NewTicketView(t Ticket, f *Flight) TicketView {
	view := TicketView{
		TicketUID:    t.TicketUID,
		FlightNumber: t.FlightNumber,
		Price:        t.Price,
		Status:       t.Status,
	}
	if f != nil {
		view.FromAirport = f.FromAirport
		view.ToAirport = f.ToAirport
		view.Date = f.Date
	}
	return view
}
