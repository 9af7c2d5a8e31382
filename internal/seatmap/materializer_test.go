package seatmap

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinema-pos/internal/layout"
	"github.com/iliyamo/cinema-pos/internal/model"
)

// fakeSeatStore enforces the (hall, row, number) uniqueness constraint
// like the database would.
type fakeSeatStore struct {
	mu      sync.Mutex
	nextID  uint64
	seats   map[[3]uint64]model.Seat // hall, row, number -> seat
	inserts int
	failOn  error
}

func newFakeSeatStore() *fakeSeatStore {
	return &fakeSeatStore{seats: make(map[[3]uint64]model.Seat)}
}

func (f *fakeSeatStore) SeatsByHall(_ context.Context, hallID uint64) ([]model.Seat, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Seat
	for _, s := range f.seats {
		if s.HallID == hallID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSeatStore) CreateSeats(_ context.Context, seats []model.Seat) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failOn != nil {
		return f.failOn
	}
	f.inserts++
	for _, s := range seats {
		key := [3]uint64{s.HallID, uint64(s.Row), uint64(s.Number)}
		if _, exists := f.seats[key]; exists {
			return ErrDuplicateSeat
		}
	}
	for _, s := range seats {
		f.nextID++
		s.ID = f.nextID
		f.seats[[3]uint64{s.HallID, uint64(s.Row), uint64(s.Number)}] = s
	}
	return nil
}

func (f *fakeSeatStore) count(hallID uint64) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, s := range f.seats {
		if s.HallID == hallID {
			n++
		}
	}
	return n
}

func TestEnsureSeatsMaterializesUsableCells(t *testing.T) {
	grid := layout.Normalize([][]int{
		{1, 0},
		{1, 1},
	})
	store := newFakeSeatStore()
	m := NewMaterializer(store)

	require.NoError(t, m.EnsureSeats(context.Background(), 1, grid))

	seats, err := store.SeatsByHall(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, seats, 3)

	got := make(map[[2]int]bool)
	for _, s := range seats {
		got[[2]int{s.Row, s.Number}] = true
	}
	assert.True(t, got[[2]int{1, 1}])
	assert.True(t, got[[2]int{2, 1}])
	assert.True(t, got[[2]int{2, 2}])
}

func TestEnsureSeatsIsIdempotent(t *testing.T) {
	grid := layout.Fallback()
	store := newFakeSeatStore()
	m := NewMaterializer(store)

	require.NoError(t, m.EnsureSeats(context.Background(), 7, grid))
	after := store.count(7)
	writes := store.inserts

	require.NoError(t, m.EnsureSeats(context.Background(), 7, grid))

	assert.Equal(t, after, store.count(7), "second run creates nothing")
	assert.Equal(t, writes, store.inserts, "second run issues no writes")
	assert.Equal(t, grid.SeatCount(), after)
}

func TestEnsureSeatsSurvivesRacingInsert(t *testing.T) {
	grid := layout.Normalize([][]int{{1, 1, 1}})
	store := newFakeSeatStore()

	// another operator materialized seat (1,2) between our read and write
	require.NoError(t, store.CreateSeats(context.Background(), []model.Seat{
		{HallID: 3, Row: 1, Number: 2},
	}))

	// the racer's row is hidden from our initial read, so the computed
	// diff collides with it on insert
	withRacer := &racingStore{fakeSeatStore: store}
	require.NoError(t, NewMaterializer(withRacer).EnsureSeats(context.Background(), 3, grid))

	assert.Equal(t, 3, store.count(3), "all three seats exist exactly once")
}

// racingStore hides seat (1,2) from the first read so the materializer
// computes a diff that collides with a concurrent insert.
type racingStore struct {
	*fakeSeatStore
	read bool
}

func (r *racingStore) SeatsByHall(ctx context.Context, hallID uint64) ([]model.Seat, error) {
	seats, err := r.fakeSeatStore.SeatsByHall(ctx, hallID)
	if err != nil || r.read {
		return seats, err
	}
	r.read = true
	// pretend the racer's row is not visible yet
	out := seats[:0]
	for _, s := range seats {
		if s.Row == 1 && s.Number == 2 {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func TestEnsureSeatsPropagatesStorageErrors(t *testing.T) {
	grid := layout.Normalize([][]int{{1}})
	store := newFakeSeatStore()
	boom := errors.New("connection lost")
	store.failOn = boom

	err := NewMaterializer(store).EnsureSeats(context.Background(), 1, grid)
	assert.ErrorIs(t, err, boom)
}
