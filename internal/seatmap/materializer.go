// Package seatmap materializes a hall's physical seats from its layout
// grid and projects per-session availability for the seat picker.
package seatmap

import (
	"context"
	"errors"

	"github.com/iliyamo/cinema-pos/internal/layout"
	"github.com/iliyamo/cinema-pos/internal/model"
)

// ErrDuplicateSeat is returned by a SeatStore when an insert hits the
// (hall_id, row, number) uniqueness constraint.  During concurrent
// materialization it means another operator already created the seat.
var ErrDuplicateSeat = errors.New("seat already exists")

// SeatStore is the persistence surface the materializer needs.  The
// MySQL implementation lives in internal/repository.
type SeatStore interface {
	// SeatsByHall returns all seats of the hall.
	SeatsByHall(ctx context.Context, hallID uint64) ([]model.Seat, error)
	// CreateSeats inserts the given seats.  It returns ErrDuplicateSeat
	// when any row violates the (hall, row, number) constraint.
	CreateSeats(ctx context.Context, seats []model.Seat) error
}

// Materializer lazily creates the seat rows for a hall: one per usable
// grid cell that is not persisted yet.  Calling it again for the same
// hall and grid issues no writes.
type Materializer struct {
	store SeatStore
}

// NewMaterializer builds a Materializer over the given store.
func NewMaterializer(store SeatStore) *Materializer {
	return &Materializer{store: store}
}

// EnsureSeats diffs the grid's usable cells against the hall's
// persisted seats and inserts exactly the missing ones.  The bulk
// insert is retried seat-by-seat when it trips the uniqueness
// constraint, so a racing operator costs only the rows it already
// created, never the whole batch.  The database constraint, not this
// diff, is the final arbiter of uniqueness.
func (m *Materializer) EnsureSeats(ctx context.Context, hallID uint64, grid layout.Grid) error {
	existing, err := m.store.SeatsByHall(ctx, hallID)
	if err != nil {
		return err
	}
	have := make(map[[2]int]struct{}, len(existing))
	for _, s := range existing {
		have[[2]int{s.Row, s.Number}] = struct{}{}
	}

	var missing []model.Seat
	for r := 1; r <= layout.Size; r++ {
		for n := 1; n <= layout.Size; n++ {
			if !grid.Usable(r, n) {
				continue
			}
			if _, ok := have[[2]int{r, n}]; ok {
				continue
			}
			missing = append(missing, model.Seat{HallID: hallID, Row: r, Number: n})
		}
	}
	if len(missing) == 0 {
		return nil
	}

	err = m.store.CreateSeats(ctx, missing)
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrDuplicateSeat) {
		return err
	}
	for i := range missing {
		err := m.store.CreateSeats(ctx, missing[i:i+1])
		if err != nil && !errors.Is(err, ErrDuplicateSeat) {
			return err
		}
	}
	return nil
}
