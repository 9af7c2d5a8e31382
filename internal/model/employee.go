package model

import "time"

// Employee roles.  Operators sell tickets; admins additionally manage
// movies, sessions and other employees.
const (
	RoleOperator = "OPERATOR"
	RoleAdmin    = "ADMIN"
)

// Employee is a box-office operator or administrator.  The login is
// unique; the password is stored as a bcrypt hash.  The acting
// employee's id is carried in the access token and passed explicitly
// into the sale coordinator.
type Employee struct {
	ID           uint64    `json:"id"`         // employees.id
	FullName     string    `json:"full_name"`  // employees.full_name
	Login        string    `json:"login"`      // employees.login
	PasswordHash string    `json:"-"`          // employees.password_hash, never serialized
	Role         string    `json:"role"`       // employees.role (OPERATOR | ADMIN)
	IsActive     bool      `json:"is_active"`  // employees.is_active
	CreatedAt    time.Time `json:"created_at"` // employees.created_at
	UpdatedAt    time.Time `json:"updated_at"` // employees.updated_at
}
