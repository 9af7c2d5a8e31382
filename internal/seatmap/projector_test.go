package seatmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinema-pos/internal/layout"
	"github.com/iliyamo/cinema-pos/internal/model"
)

func TestProjectClassifiesCells(t *testing.T) {
	grid := layout.Normalize([][]int{
		{1, 0},
		{1, 1},
	})
	seats := []model.Seat{
		{ID: 11, HallID: 1, Row: 1, Number: 1},
		{ID: 21, HallID: 1, Row: 2, Number: 1},
		{ID: 22, HallID: 1, Row: 2, Number: 2},
	}
	sold := map[uint64]struct{}{21: {}}

	sm := Project(grid, seats, sold)

	assert.Equal(t, CellAvailable, sm[0][0].State)
	assert.Equal(t, uint64(11), sm[0][0].SeatID)
	assert.Equal(t, CellVoid, sm[0][1].State, "layout void stays void")
	assert.Equal(t, CellOccupied, sm[1][0].State)
	assert.Equal(t, CellAvailable, sm[1][1].State)

	// void cells never carry a seat id
	assert.Zero(t, sm[0][1].SeatID)

	// everything outside the 2×2 template is void
	for r := 0; r < layout.Size; r++ {
		for n := 0; n < layout.Size; n++ {
			if r < 2 && n < 2 {
				continue
			}
			assert.Equal(t, CellVoid, sm[r][n].State)
		}
	}
}

func TestProjectUnmaterializedUsableCellIsVoid(t *testing.T) {
	grid := layout.Normalize([][]int{{1, 1}})
	// only (1,1) has a seat row; (1,2) was never materialized
	seats := []model.Seat{{ID: 5, Row: 1, Number: 1}}

	sm := Project(grid, seats, nil)

	assert.Equal(t, CellAvailable, sm[0][0].State)
	assert.Equal(t, CellVoid, sm[0][1].State)
}

func TestProjectOnlyTargetCellChangesAfterSale(t *testing.T) {
	grid := layout.Fallback()
	var seats []model.Seat
	id := uint64(0)
	for r := 1; r <= layout.Size; r++ {
		for n := 1; n <= layout.Size; n++ {
			if grid.Usable(r, n) {
				id++
				seats = append(seats, model.Seat{ID: id, Row: r, Number: n})
			}
		}
	}
	var soldID uint64
	for _, s := range seats {
		if s.Row == 2 && s.Number == 1 {
			soldID = s.ID
		}
	}
	require.NotZero(t, soldID)

	before := Project(grid, seats, nil)
	after := Project(grid, seats, map[uint64]struct{}{soldID: {}})

	for r := 0; r < layout.Size; r++ {
		for n := 0; n < layout.Size; n++ {
			if r == 1 && n == 0 {
				assert.Equal(t, CellAvailable, before[r][n].State)
				assert.Equal(t, CellOccupied, after[r][n].State)
				continue
			}
			assert.Equal(t, before[r][n], after[r][n], "cell (%d,%d) must not change", r+1, n+1)
		}
	}
}

func TestCellStateWireNames(t *testing.T) {
	assert.Equal(t, "void", CellVoid.String())
	assert.Equal(t, "available", CellAvailable.String())
	assert.Equal(t, "occupied", CellOccupied.String())

	b, err := CellOccupied.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"occupied"`, string(b))
}
