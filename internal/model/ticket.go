package model

import "time"

// TicketStatus enumerates the lifecycle states of a ticket.  The POS
// only ever persists Sold tickets; Reserved and Cancelled exist for
// schema compatibility with box-office integrations.
type TicketStatus string

const (
	TicketReserved  TicketStatus = "RESERVED"
	TicketSold      TicketStatus = "SOLD"
	TicketCancelled TicketStatus = "CANCELLED"
)

// Ticket records the sale of one seat for one session.  At most one
// Sold ticket may exist per (SessionID, SeatID) pair; this is the core
// invariant the sale coordinator upholds under concurrent operators.
//
// Fields:
//  ID         – primary key identifier.
//  SessionID  – session the seat was sold for.
//  SeatID     – physical seat sold.
//  CustomerID – customer the ticket was sold to.
//  EmployeeID – operator who performed the sale.
//  PriceCents – price charged, copied from the session's base price.
//  Status     – lifecycle state, see TicketStatus.
//  SaleTime   – UTC time of the sale.
type Ticket struct {
	ID         uint64       `json:"id"`          // tickets.id
	SessionID  uint64       `json:"session_id"`  // tickets.session_id
	SeatID     uint64       `json:"seat_id"`     // tickets.seat_id
	CustomerID uint64       `json:"customer_id"` // tickets.customer_id
	EmployeeID uint64       `json:"employee_id"` // tickets.employee_id
	PriceCents uint32       `json:"price_cents"` // tickets.price_cents
	Status     TicketStatus `json:"status"`      // tickets.status
	SaleTime   time.Time    `json:"sale_time"`   // tickets.sale_time
}
