// Package sale coordinates the atomic sale of seats for a session.
// One call is one storage transaction: the customer upsert, the
// per-seat sold re-check, and the ticket/payment inserts either all
// commit together or leave no trace.
package sale

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/iliyamo/cinema-pos/internal/model"
)

// Sentinel errors surfaced by Store implementations and by Sell.
var (
	// ErrSessionNotFound aborts the sale before any write.
	ErrSessionNotFound = errors.New("session not found")
	// ErrCustomerNotFound is how a Tx reports an unknown phone number.
	ErrCustomerNotFound = errors.New("customer not found")
	// ErrTicketExists is how a Tx reports the (session, seat)
	// uniqueness constraint firing on insert: another operator sold
	// the seat between our re-check and our write.
	ErrTicketExists = errors.New("ticket already exists")
	// ErrValidation wraps all pre-write input rejections.
	ErrValidation = errors.New("invalid sale request")
)

// Store opens one atomic unit of work.  The function either returns
// nil and the work is committed, or returns an error and every write
// inside it is rolled back.
type Store interface {
	InTx(ctx context.Context, fn func(tx Tx) error) error
}

// Tx is the persistence surface available inside a sale transaction.
// SeatSold must read current transactional state, not a snapshot from
// before the transaction began: the operator's seat grid may be stale
// by the time the sale is confirmed.
type Tx interface {
	SessionByID(ctx context.Context, id uint64) (*model.Session, error)
	CustomerByPhone(ctx context.Context, phone string) (*model.Customer, error)
	CreateCustomer(ctx context.Context, c *model.Customer) error
	RenameCustomer(ctx context.Context, id uint64, fullName string) error
	SeatSold(ctx context.Context, sessionID, seatID uint64) (bool, error)
	CreateTicket(ctx context.Context, t *model.Ticket) error
	CreatePayment(ctx context.Context, p *model.Payment) error
}

// Request describes one counter sale.  EmployeeID is the acting
// operator, passed explicitly rather than read from ambient state.
type Request struct {
	SessionID     uint64
	SeatIDs       []uint64
	CustomerName  string
	CustomerPhone string
	EmployeeID    uint64
	PaymentMethod string
}

// Result reports what the sale actually achieved.  A SoldCount lower
// than the requested seat count is not an error: the missing seats
// were sold concurrently by another operator and are listed in
// SkippedSeatIDs.
type Result struct {
	SoldCount      int      `json:"sold_count"`
	TicketIDs      []uint64 `json:"ticket_ids"`
	SkippedSeatIDs []uint64 `json:"skipped_seat_ids,omitempty"`
}

// Coordinator sells seats.  It holds no in-process locks: the storage
// engine's uniqueness constraint on (session, seat) is the final
// arbiter between racing operators, and a lost race is resolved by
// skipping the seat, never by retrying.
type Coordinator struct {
	store Store
	now   func() time.Time
}

// NewCoordinator builds a Coordinator over the given store.
func NewCoordinator(store Store) *Coordinator {
	return &Coordinator{store: store, now: time.Now}
}

// Sell atomically sells as many of the requested seats as are still
// free.  Within one transaction it resolves the customer by phone
// (creating or renaming as needed), re-checks each seat's sold status,
// and writes a Sold ticket plus its payment for every seat that is
// still free.  Seats lost to a concurrent operator are skipped; any
// other failure rolls the whole transaction back.
func (c *Coordinator) Sell(ctx context.Context, req Request) (*Result, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	seatIDs := dedup(req.SeatIDs)
	if len(seatIDs) == 0 {
		return nil, fmt.Errorf("%w: at least one seat is required", ErrValidation)
	}

	var res Result
	err := c.store.InTx(ctx, func(tx Tx) error {
		res = Result{}
		sess, err := tx.SessionByID(ctx, req.SessionID)
		if err != nil {
			return err
		}

		customerID, err := c.upsertCustomer(ctx, tx, req)
		if err != nil {
			return err
		}

		saleTime := c.now().UTC()
		for _, seatID := range seatIDs {
			sold, err := tx.SeatSold(ctx, req.SessionID, seatID)
			if err != nil {
				return err
			}
			if sold {
				res.SkippedSeatIDs = append(res.SkippedSeatIDs, seatID)
				continue
			}
			ticket := &model.Ticket{
				SessionID:  req.SessionID,
				SeatID:     seatID,
				CustomerID: customerID,
				EmployeeID: req.EmployeeID,
				PriceCents: sess.BasePriceCents,
				Status:     model.TicketSold,
				SaleTime:   saleTime,
			}
			if err := tx.CreateTicket(ctx, ticket); err != nil {
				if errors.Is(err, ErrTicketExists) {
					// lost the race between re-check and insert
					res.SkippedSeatIDs = append(res.SkippedSeatIDs, seatID)
					continue
				}
				return err
			}
			payment := &model.Payment{
				TicketID:    ticket.ID,
				Method:      req.PaymentMethod,
				AmountCents: ticket.PriceCents,
				PaidAt:      saleTime,
			}
			if err := tx.CreatePayment(ctx, payment); err != nil {
				return err
			}
			res.SoldCount++
			res.TicketIDs = append(res.TicketIDs, ticket.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// upsertCustomer resolves the customer by phone.  A returning customer
// with a different name gets renamed, last writer wins.
func (c *Coordinator) upsertCustomer(ctx context.Context, tx Tx, req Request) (uint64, error) {
	cust, err := tx.CustomerByPhone(ctx, req.CustomerPhone)
	switch {
	case err == nil:
		if !strings.EqualFold(cust.FullName, req.CustomerName) {
			if err := tx.RenameCustomer(ctx, cust.ID, req.CustomerName); err != nil {
				return 0, err
			}
		}
		return cust.ID, nil
	case errors.Is(err, ErrCustomerNotFound):
		fresh := &model.Customer{FullName: req.CustomerName, Phone: req.CustomerPhone}
		if err := tx.CreateCustomer(ctx, fresh); err != nil {
			return 0, err
		}
		return fresh.ID, nil
	default:
		return 0, err
	}
}

func (r Request) validate() error {
	if r.SessionID == 0 {
		return fmt.Errorf("%w: session id is required", ErrValidation)
	}
	if len(r.SeatIDs) == 0 {
		return fmt.Errorf("%w: at least one seat is required", ErrValidation)
	}
	if strings.TrimSpace(r.CustomerName) == "" {
		return fmt.Errorf("%w: customer name is required", ErrValidation)
	}
	if !validPhone(r.CustomerPhone) {
		return fmt.Errorf("%w: customer phone must be digits only", ErrValidation)
	}
	if r.EmployeeID == 0 {
		return fmt.Errorf("%w: employee id is required", ErrValidation)
	}
	if r.PaymentMethod == "" {
		return fmt.Errorf("%w: payment method is required", ErrValidation)
	}
	return nil
}

func validPhone(phone string) bool {
	if phone == "" {
		return false
	}
	for _, ch := range phone {
		if ch < '0' || ch > '9' {
			return false
		}
	}
	return true
}

func dedup(ids []uint64) []uint64 {
	seen := make(map[uint64]struct{}, len(ids))
	out := make([]uint64, 0, len(ids))
	for _, id := range ids {
		if id == 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
