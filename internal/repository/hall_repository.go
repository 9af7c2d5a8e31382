package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/cinema-pos/internal/model"
)

// ErrHallNotFound is returned when a hall lookup fails.
var ErrHallNotFound = errors.New("hall not found")

// HallWithSeats pairs a hall with its derived seat count.  Seats are
// materialized lazily, so a freshly created hall legitimately reports
// zero until its layout is first opened.
type HallWithSeats struct {
	model.Hall
	SeatCount int `json:"seat_count"`
}

// HallRepo provides methods to create and retrieve halls.
type HallRepo struct {
	db *sql.DB
}

// NewHallRepo constructs a HallRepo with the given DB handle.
func NewHallRepo(db *sql.DB) *HallRepo {
	return &HallRepo{db: db}
}

// Create inserts a new hall and populates its ID and timestamps.
func (r *HallRepo) Create(ctx context.Context, h *model.Hall) error {
	const qInsert = `INSERT INTO halls (name) VALUES (?)`
	res, err := r.db.ExecContext(ctx, qInsert, h.Name)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	h.ID = uint64(id)

	const qSelect = `SELECT id, name, created_at, updated_at FROM halls WHERE id = ?`
	return r.db.QueryRowContext(ctx, qSelect, h.ID).
		Scan(&h.ID, &h.Name, &h.CreatedAt, &h.UpdatedAt)
}

// GetByID retrieves a hall by its ID.  It returns ErrHallNotFound when
// no row is found.
func (r *HallRepo) GetByID(ctx context.Context, id uint64) (*model.Hall, error) {
	const q = `SELECT id, name, created_at, updated_at FROM halls WHERE id = ?`
	var h model.Hall
	err := r.db.QueryRowContext(ctx, q, id).Scan(&h.ID, &h.Name, &h.CreatedAt, &h.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrHallNotFound
		}
		return nil, err
	}
	return &h, nil
}

// List returns all halls with their materialized seat counts, ordered
// by id.
func (r *HallRepo) List(ctx context.Context) ([]HallWithSeats, error) {
	const q = `SELECT h.id, h.name, h.created_at, h.updated_at, COUNT(s.id)
	           FROM halls h
	           LEFT JOIN seats s ON s.hall_id = h.id
	           GROUP BY h.id, h.name, h.created_at, h.updated_at
	           ORDER BY h.id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]HallWithSeats, 0)
	for rows.Next() {
		var h HallWithSeats
		if err := rows.Scan(&h.ID, &h.Name, &h.CreatedAt, &h.UpdatedAt, &h.SeatCount); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
