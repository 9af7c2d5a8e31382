// Package queue defines message payloads exchanged over the message broker.
package queue

// TicketSoldEvent is published after a sale transaction commits.  It
// carries enough information for downstream consumers to journal or
// trigger analytics without querying the primary database.
type TicketSoldEvent struct {
	SessionID     uint64   `json:"session_id"`
	MovieTitle    string   `json:"movie_title"`
	HallID        uint64   `json:"hall_id"`
	StartsAt      string   `json:"starts_at"`
	TicketIDs     []uint64 `json:"ticket_ids"`
	SeatLabels    []string `json:"seats"`
	CustomerPhone string   `json:"customer_phone"`
	EmployeeID    uint64   `json:"employee_id"`
	PaymentMethod string   `json:"payment_method"`
	AmountCents   uint64   `json:"amount_cents"`
	SoldAt        string   `json:"sold_at"`
}
