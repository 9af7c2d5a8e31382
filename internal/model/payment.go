package model

import "time"

// Payment is the one-to-one payment record of a sold ticket.  A
// payment row is created in the same transaction that creates its
// ticket; it never exists without one.
type Payment struct {
	ID          uint64    `json:"id"`           // payments.id
	TicketID    uint64    `json:"ticket_id"`    // payments.ticket_id
	Method      string    `json:"method"`       // payments.method (CASH | CARD)
	AmountCents uint32    `json:"amount_cents"` // payments.amount_cents
	PaidAt      time.Time `json:"paid_at"`      // payments.paid_at
}
