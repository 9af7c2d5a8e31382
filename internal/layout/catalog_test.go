package layout

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeUndersized(t *testing.T) {
	g := Normalize([][]int{
		{1, 0},
		{1, 1},
	})

	assert.True(t, g.Usable(1, 1))
	assert.False(t, g.Usable(1, 2))
	assert.True(t, g.Usable(2, 1))
	assert.True(t, g.Usable(2, 2))
	// everything beyond the source bounds is void
	assert.False(t, g.Usable(1, 3))
	assert.False(t, g.Usable(3, 1))
	assert.False(t, g.Usable(Size, Size))
	assert.Equal(t, 3, g.SeatCount())
}

func TestNormalizeOversizedAndJunkValues(t *testing.T) {
	src := make([][]int, Size+5)
	for r := range src {
		src[r] = make([]int, Size+5)
		for c := range src[r] {
			src[r][c] = 1
		}
	}
	src[0][0] = 2  // not the sentinel 1 -> void
	src[0][1] = -1 // negative -> void
	src[3] = nil   // missing row -> whole row void

	g := Normalize(src)

	assert.False(t, g.Usable(1, 1))
	assert.False(t, g.Usable(1, 2))
	assert.True(t, g.Usable(1, 3))
	for c := 1; c <= Size; c++ {
		assert.False(t, g.Usable(4, c))
	}
	// truncated, never larger than Size×Size
	assert.False(t, g.Usable(Size+1, 1))
}

func TestFallbackShape(t *testing.T) {
	g := Fallback()

	for c := 1; c <= Size; c++ {
		assert.False(t, g.Usable(1, c), "first row is reserved")
	}
	for r := 2; r <= Size; r++ {
		assert.False(t, g.Usable(r, aisleLeft+1))
		assert.False(t, g.Usable(r, aisleRight+1))
		assert.True(t, g.Usable(r, 1))
		assert.True(t, g.Usable(r, Size))
	}
	// 19 rows × 18 seats
	assert.Equal(t, 19*18, g.SeatCount())
}

type stubSource struct {
	grids map[uint64][][]int
	err   error
	calls int
}

func (s *stubSource) Template(hallID uint64) ([][]int, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	m, ok := s.grids[hallID]
	if !ok {
		return nil, os.ErrNotExist
	}
	return m, nil
}

func TestCatalogFallsBackOnMissingTemplate(t *testing.T) {
	c := NewCatalog(&stubSource{})

	g := c.Get(42)
	assert.Equal(t, Fallback(), g)
}

func TestCatalogEmptyTemplateIsAllVoid(t *testing.T) {
	src := &stubSource{grids: map[uint64][][]int{
		9: {},
	}}
	c := NewCatalog(src)

	// A hall deliberately templated empty has no seats; only a missing
	// or unparsable template earns the fallback grid.
	g := c.Get(9)
	assert.Equal(t, 0, g.SeatCount())
	assert.NotEqual(t, Fallback(), g)
}

func TestCatalogCachesPerHall(t *testing.T) {
	src := &stubSource{grids: map[uint64][][]int{
		7: {{1, 1}, {1, 1}},
	}}
	c := NewCatalog(src)

	first := c.Get(7)
	second := c.Get(7)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, src.calls, "template read once per hall")
	assert.Equal(t, 4, first.SeatCount())
}

func TestDirSourceReadsTemplateFile(t *testing.T) {
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, "hall_3.json"), []byte(`[[1,0],[0,1]]`), 0o644)
	require.NoError(t, err)

	src := DirSource{Dir: dir}
	m, err := src.Template(3)
	require.NoError(t, err)
	assert.Equal(t, [][]int{{1, 0}, {0, 1}}, m)

	_, err = src.Template(99)
	assert.Error(t, err)
}

func TestDirSourceMalformedJSONYieldsFallbackViaCatalog(t *testing.T) {
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, "hall_5.json"), []byte(`{"not":"a grid"`), 0o644)
	require.NoError(t, err)

	c := NewCatalog(DirSource{Dir: dir})
	assert.Equal(t, Fallback(), c.Get(5))
}
