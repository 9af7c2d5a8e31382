package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/cinema-pos/internal/model"
	"github.com/iliyamo/cinema-pos/internal/utils"
)

// ErrLoginExists is returned when registering an employee whose login
// is already taken.
var ErrLoginExists = errors.New("login already exists")

// EmployeeRepo provides access to box-office staff accounts.
type EmployeeRepo struct{ DB *sql.DB }

// NewEmployeeRepo constructs an EmployeeRepo with the given DB handle.
func NewEmployeeRepo(db *sql.DB) *EmployeeRepo { return &EmployeeRepo{DB: db} }

// Create inserts an employee with a bcrypt-hashed password and returns
// the new ID.  The login is normalized to lowercase.
func (r *EmployeeRepo) Create(ctx context.Context, fullName, login, password, role string, cost int) (uint64, error) {
	login = strings.ToLower(strings.TrimSpace(login))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO employees (full_name, login, password_hash, role) VALUES (?,?,?,?)",
		fullName, login, hash, role)
	if err != nil {
		if isDuplicateKey(err) {
			return 0, ErrLoginExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByLogin fetches an employee by normalized login.
func (r *EmployeeRepo) GetByLogin(ctx context.Context, login string) (model.Employee, error) {
	login = strings.ToLower(strings.TrimSpace(login))
	var e model.Employee
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,full_name,login,password_hash,role,is_active,created_at,updated_at FROM employees WHERE login=? LIMIT 1",
		login).Scan(&e.ID, &e.FullName, &e.Login, &e.PasswordHash, &e.Role, &e.IsActive, &e.CreatedAt, &e.UpdatedAt)
	return e, err
}

// GetByID fetches an employee by id.
func (r *EmployeeRepo) GetByID(ctx context.Context, id uint64) (model.Employee, error) {
	var e model.Employee
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,full_name,login,password_hash,role,is_active,created_at,updated_at FROM employees WHERE id=? LIMIT 1",
		id).Scan(&e.ID, &e.FullName, &e.Login, &e.PasswordHash, &e.Role, &e.IsActive, &e.CreatedAt, &e.UpdatedAt)
	return e, err
}
