package model

import "time"

// Seat is a physical seat position in a hall, materialized lazily from
// the hall's layout grid.  Row and Number are 1-based and correspond to
// the grid cell (Row-1, Number-1).  The combination (HallID, Row,
// Number) is unique; the database constraint is the final arbiter when
// two operators materialize the same hall concurrently.
type Seat struct {
	ID        uint64    `json:"id"`         // seats.id
	HallID    uint64    `json:"hall_id"`    // seats.hall_id
	Row       int       `json:"row"`        // seats.row_num (1-based)
	Number    int       `json:"number"`     // seats.seat_number (1-based)
	CreatedAt time.Time `json:"created_at"` // seats.created_at
	UpdatedAt time.Time `json:"updated_at"` // seats.updated_at
}
