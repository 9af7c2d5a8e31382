package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/cinema-pos/internal/model"
	"github.com/iliyamo/cinema-pos/internal/sale"
)

// SaleStore implements sale.Store over MySQL.  Each InTx call is one
// database transaction; the (session_id, seat_id) UNIQUE constraint on
// tickets arbitrates between operators racing for the same seat, and
// its violation is reported as sale.ErrTicketExists.
type SaleStore struct {
	db *sql.DB
}

// NewSaleStore constructs a SaleStore with the given DB handle.
func NewSaleStore(db *sql.DB) *SaleStore {
	return &SaleStore{db: db}
}

// InTx runs fn inside a transaction.  The transaction commits only if
// fn returns nil; any error rolls every write back.
func (s *SaleStore) InTx(ctx context.Context, fn func(tx sale.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := fn(&saleTx{tx: tx}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// saleTx adapts one *sql.Tx to the sale.Tx surface.
type saleTx struct {
	tx *sql.Tx
}

func (t *saleTx) SessionByID(ctx context.Context, id uint64) (*model.Session, error) {
	const q = `SELECT id, movie_id, hall_id, start_time, base_price_cents, created_at, updated_at
	           FROM sessions WHERE id = ?`
	var s model.Session
	err := t.tx.QueryRowContext(ctx, q, id).Scan(
		&s.ID, &s.MovieID, &s.HallID, &s.StartTime, &s.BasePriceCents, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sale.ErrSessionNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (t *saleTx) CustomerByPhone(ctx context.Context, phone string) (*model.Customer, error) {
	const q = `SELECT id, full_name, phone, email, created_at, updated_at
	           FROM customers WHERE phone = ?`
	var c model.Customer
	var email sql.NullString
	err := t.tx.QueryRowContext(ctx, q, phone).
		Scan(&c.ID, &c.FullName, &c.Phone, &email, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sale.ErrCustomerNotFound
		}
		return nil, err
	}
	c.Email = email.String
	return &c, nil
}

func (t *saleTx) CreateCustomer(ctx context.Context, c *model.Customer) error {
	const q = `INSERT INTO customers (full_name, phone, email) VALUES (?, ?, NULLIF(?, ''))`
	res, err := t.tx.ExecContext(ctx, q, c.FullName, c.Phone, c.Email)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = uint64(id)
	return nil
}

func (t *saleTx) RenameCustomer(ctx context.Context, id uint64, fullName string) error {
	const q = `UPDATE customers SET full_name = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	_, err := t.tx.ExecContext(ctx, q, fullName, id)
	return err
}

// SeatSold reads the seat's sold status inside the transaction, not
// from the operator's possibly stale seat grid.
func (t *saleTx) SeatSold(ctx context.Context, sessionID, seatID uint64) (bool, error) {
	const q = `SELECT EXISTS(SELECT 1 FROM tickets WHERE session_id = ? AND seat_id = ? AND status = ?)`
	var sold bool
	err := t.tx.QueryRowContext(ctx, q, sessionID, seatID, model.TicketSold).Scan(&sold)
	return sold, err
}

func (t *saleTx) CreateTicket(ctx context.Context, tk *model.Ticket) error {
	const q = `INSERT INTO tickets (session_id, seat_id, customer_id, employee_id, price_cents, status, sale_time)
	           VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := t.tx.ExecContext(ctx, q,
		tk.SessionID, tk.SeatID, tk.CustomerID, tk.EmployeeID, tk.PriceCents, tk.Status, tk.SaleTime)
	if err != nil {
		if isDuplicateKey(err) {
			return sale.ErrTicketExists
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	tk.ID = uint64(id)
	return nil
}

func (t *saleTx) CreatePayment(ctx context.Context, p *model.Payment) error {
	const q = `INSERT INTO payments (ticket_id, method, amount_cents, paid_at) VALUES (?, ?, ?, ?)`
	res, err := t.tx.ExecContext(ctx, q, p.TicketID, p.Method, p.AmountCents, p.PaidAt)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)
	return nil
}
