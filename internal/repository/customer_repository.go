package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/cinema-pos/internal/model"
)

// ErrCustomerNotFound is returned when a customer lookup fails.
var ErrCustomerNotFound = errors.New("customer not found")

// CustomerRepo provides read access to customers.  The sale
// transaction creates and renames customers through SaleStore; this
// repository only serves lookups, such as pre-filling the operator's
// sale form from a phone number.
type CustomerRepo struct {
	db *sql.DB
}

// NewCustomerRepo constructs a CustomerRepo with the given DB handle.
func NewCustomerRepo(db *sql.DB) *CustomerRepo {
	return &CustomerRepo{db: db}
}

// GetByPhone retrieves a customer by exact phone number.
func (r *CustomerRepo) GetByPhone(ctx context.Context, phone string) (*model.Customer, error) {
	const q = `SELECT id, full_name, phone, email, created_at, updated_at
	           FROM customers WHERE phone = ?`
	var c model.Customer
	var email sql.NullString
	err := r.db.QueryRowContext(ctx, q, phone).
		Scan(&c.ID, &c.FullName, &c.Phone, &email, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	c.Email = email.String
	return &c, nil
}
