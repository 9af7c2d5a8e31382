package seatmap

import (
	"github.com/iliyamo/cinema-pos/internal/layout"
	"github.com/iliyamo/cinema-pos/internal/model"
)

// CellState classifies one grid cell for the seat picker.
type CellState uint8

const (
	// CellVoid marks a non-seat position: an aisle, a structural gap,
	// or a usable cell whose seat row has not been materialized.
	CellVoid CellState = iota
	// CellAvailable marks a seat that can be sold for the session.
	CellAvailable
	// CellOccupied marks a seat with a Sold ticket for the session.
	CellOccupied
)

// String returns the lowercase wire name of the state.
func (s CellState) String() string {
	switch s {
	case CellAvailable:
		return "available"
	case CellOccupied:
		return "occupied"
	default:
		return "void"
	}
}

// MarshalJSON encodes the state as its wire name.
func (s CellState) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// Cell is one position of the projected seat map.  SeatID is zero for
// void cells.
type Cell struct {
	SeatID uint64    `json:"seat_id,omitempty"`
	Row    int       `json:"row"`
	Number int       `json:"number"`
	State  CellState `json:"state"`
}

// SeatMap is the full 20×20 projection for one session.
type SeatMap [layout.Size][layout.Size]Cell

// Project folds the layout grid, the hall's materialized seats and the
// session's sold seat-id set into a seat map.  It is a pure function:
// callers recompute it after every sale instead of caching it, because
// another operator may sell a seat at any moment.
func Project(grid layout.Grid, seats []model.Seat, sold map[uint64]struct{}) SeatMap {
	byPos := make(map[[2]int]model.Seat, len(seats))
	for _, s := range seats {
		byPos[[2]int{s.Row, s.Number}] = s
	}

	var sm SeatMap
	for r := 1; r <= layout.Size; r++ {
		for n := 1; n <= layout.Size; n++ {
			cell := Cell{Row: r, Number: n, State: CellVoid}
			if grid.Usable(r, n) {
				if seat, ok := byPos[[2]int{r, n}]; ok {
					cell.SeatID = seat.ID
					if _, soldHere := sold[seat.ID]; soldHere {
						cell.State = CellOccupied
					} else {
						cell.State = CellAvailable
					}
				}
			}
			sm[r-1][n-1] = cell
		}
	}
	return sm
}
