package layout

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Source supplies the raw template matrix for a hall.  It returns
// os.ErrNotExist (or any other error) when no template is available;
// the catalog treats every failure the same way and falls back.
type Source interface {
	Template(hallID uint64) ([][]int, error)
}

// DirSource reads templates from a directory of JSON files named
// hall_<id>.json, each containing a [][]int matrix (1 = usable).
type DirSource struct {
	Dir string
}

// Template reads and decodes the template file for the hall.
func (s DirSource) Template(hallID uint64) ([][]int, error) {
	path := filepath.Join(s.Dir, fmt.Sprintf("hall_%d.json", hallID))
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m [][]int
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// Catalog resolves hall ids to normalized grids.  Resolved grids are
// cached for the lifetime of the catalog and never invalidated:
// templates are static inputs of a deployment.  Concurrent first
// lookups of the same hall may both compute the grid; the race is
// benign because the result is deterministic and overwriting the
// cache entry with an equal value is harmless.
type Catalog struct {
	src Source

	mu    sync.RWMutex
	cache map[uint64]Grid
}

// NewCatalog builds a catalog over the given template source.
func NewCatalog(src Source) *Catalog {
	return &Catalog{src: src, cache: make(map[uint64]Grid)}
}

// Get returns the hall's grid.  A missing or unparsable template is
// never an error: selling seats must not be blocked by a bad layout
// file, so any failure yields the fallback grid.
func (c *Catalog) Get(hallID uint64) Grid {
	c.mu.RLock()
	g, ok := c.cache[hallID]
	c.mu.RUnlock()
	if ok {
		return g
	}

	g = c.load(hallID)

	c.mu.Lock()
	c.cache[hallID] = g
	c.mu.Unlock()
	return g
}

func (c *Catalog) load(hallID uint64) Grid {
	if c.src == nil {
		return Fallback()
	}
	src, err := c.src.Template(hallID)
	if err != nil {
		return Fallback()
	}
	// An empty matrix is a valid template meaning an all-void hall,
	// not a missing one; only read/parse failures fall back.
	return Normalize(src)
}
