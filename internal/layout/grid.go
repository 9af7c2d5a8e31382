package layout // layout resolves hall identifiers to seat-validity grids

// Size is the fixed edge length of every hall grid.  Source templates
// of any shape are normalized to Size×Size before use.
const Size = 20

// Aisle columns and the reserved first row of the fallback grid
// (0-based indices into the normalized grid).
const (
	aisleLeft  = 9
	aisleRight = 10
)

// Grid is a Size×Size matrix of seat validity.  true marks a usable
// seat position, false a void cell (aisle, missing template data or
// structural gap).  Grids are value types and immutable once built.
type Grid [Size][Size]bool

// Usable reports whether the 1-based (row, number) position is a seat.
// Out-of-range positions are void.
func (g Grid) Usable(row, number int) bool {
	if row < 1 || row > Size || number < 1 || number > Size {
		return false
	}
	return g[row-1][number-1]
}

// SeatCount returns the number of usable cells in the grid.
func (g Grid) SeatCount() int {
	n := 0
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if g[r][c] {
				n++
			}
		}
	}
	return n
}

// Normalize converts a raw template matrix (rows outer, columns inner,
// 1 = usable) into a Grid.  Cells beyond the source bounds are void,
// and any value other than the sentinel 1 is void.  Oversized sources
// are truncated to Size×Size.
func Normalize(src [][]int) Grid {
	var g Grid
	for r := 0; r < Size; r++ {
		if r >= len(src) || src[r] == nil {
			continue
		}
		for c := 0; c < Size; c++ {
			if c >= len(src[r]) {
				continue
			}
			g[r][c] = src[r][c] == 1
		}
	}
	return g
}

// Fallback returns the synthesized default grid used when a hall has
// no template: every cell usable except the two aisle columns and the
// entire first row (projection-booth clearance).
func Fallback() Grid {
	var g Grid
	for r := 1; r < Size; r++ {
		for c := 0; c < Size; c++ {
			g[r][c] = c != aisleLeft && c != aisleRight
		}
	}
	return g
}
