package model

import "time"

// Customer is identified at the counter by phone number.  The phone is
// unique; when a returning customer gives a different name the stored
// name is overwritten (last writer wins, no merge detection).
type Customer struct {
	ID        uint64    `json:"id"`         // customers.id
	FullName  string    `json:"full_name"`  // customers.full_name
	Phone     string    `json:"phone"`      // customers.phone (digits only)
	Email     string    `json:"email"`      // customers.email (optional)
	CreatedAt time.Time `json:"created_at"` // customers.created_at
	UpdatedAt time.Time `json:"updated_at"` // customers.updated_at
}
