package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iliyamo/cinema-pos/internal/model"
	"github.com/iliyamo/cinema-pos/internal/seatmap"
)

// ErrSeatNotFound is returned when a seat lookup yields no rows.
var ErrSeatNotFound = errors.New("seat not found")

// SeatRepo provides access to the materialized seats of halls.  It is
// the storage half of the seat materializer: SeatsByHall and
// CreateSeats satisfy seatmap.SeatStore.
type SeatRepo struct {
	db *sql.DB
}

// NewSeatRepo constructs a SeatRepo with the given DB handle.
func NewSeatRepo(db *sql.DB) *SeatRepo {
	return &SeatRepo{db: db}
}

// SeatsByHall retrieves all seats of a hall ordered by row then number.
func (r *SeatRepo) SeatsByHall(ctx context.Context, hallID uint64) ([]model.Seat, error) {
	const q = `SELECT id, hall_id, row_num, seat_number, created_at, updated_at
	           FROM seats
	           WHERE hall_id = ?
	           ORDER BY row_num, seat_number`
	rows, err := r.db.QueryContext(ctx, q, hallID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Seat
	for rows.Next() {
		var s model.Seat
		if err := rows.Scan(&s.ID, &s.HallID, &s.Row, &s.Number, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// CreateSeats inserts the given seats in a single statement.  A
// violated (hall_id, row_num, seat_number) constraint is reported as
// seatmap.ErrDuplicateSeat so the materializer can retry seat by seat.
func (r *SeatRepo) CreateSeats(ctx context.Context, seats []model.Seat) error {
	if len(seats) == 0 {
		return nil
	}
	query := `INSERT INTO seats (hall_id, row_num, seat_number) VALUES `
	args := make([]interface{}, 0, len(seats)*3)
	for i, seat := range seats {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?)"
		args = append(args, seat.HallID, seat.Row, seat.Number)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isDuplicateKey(err) {
			return seatmap.ErrDuplicateSeat
		}
		return err
	}
	return nil
}

// GetByID retrieves a seat by its id.
func (r *SeatRepo) GetByID(ctx context.Context, id uint64) (*model.Seat, error) {
	const q = `SELECT id, hall_id, row_num, seat_number, created_at, updated_at
	           FROM seats WHERE id = ?`
	var s model.Seat
	err := r.db.QueryRowContext(ctx, q, id).
		Scan(&s.ID, &s.HallID, &s.Row, &s.Number, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSeatNotFound
		}
		return nil, err
	}
	return &s, nil
}

// Labels returns display labels ("row/number") for the given seat ids,
// ordered by row then number.  Used when announcing a completed sale.
func (r *SeatRepo) Labels(ctx context.Context, ids []uint64) ([]string, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `SELECT row_num, seat_number FROM seats WHERE id IN (`
	args := make([]interface{}, 0, len(ids))
	for i, id := range ids {
		if i > 0 {
			query += ","
		}
		query += "?"
		args = append(args, id)
	}
	query += `) ORDER BY row_num, seat_number`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var labels []string
	for rows.Next() {
		var row, number int
		if err := rows.Scan(&row, &number); err != nil {
			return nil, err
		}
		labels = append(labels, fmt.Sprintf("%d/%d", row, number))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return labels, nil
}
