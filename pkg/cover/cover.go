// Package cover computes fixed-level cell coverings of bounding rectangles.
package cover

import (
	"errors"
	"fmt"

	"github.com/golang/geo/s2"

	"github.com/soma-tiles/cellfill/pkg/cell"
)

// DefaultMaxCells bounds the size of a covering. Fixed-level coverings are
// never truncated to fit, so exceeding the bound is an error, not a silent
// trim.
const DefaultMaxCells = 5000

// ErrTooManyCells is returned when a covering would exceed the configured
// cell budget. Callers recover by choosing a coarser level or a smaller
// region.
var ErrTooManyCells = errors.New("cover: covering exceeds cell budget")

// Config holds per-call covering parameters. The zero value uses
// DefaultMaxCells. Config is passed by value and never mutated, so a single
// Config is safe to share across concurrent calls.
type Config struct {
	MaxCells int
}

// Cover computes the set of level-`level` cells whose union contains rect,
// using the default configuration.
func Cover(rect s2.Rect, level int) ([]cell.Token, error) {
	return Config{}.Cover(rect, level)
}

// Cover computes the minimal set of cells at exactly the given level whose
// union contains rect. Both the minimum and maximum subdivision depth are
// pinned to level, so the result is depth-uniform: every level-`level` cell
// intersecting rect appears, and no others. Tokens come back in the
// normalized order of the underlying cell union, which is stable for a
// given rectangle but carries no geometric meaning.
func (c Config) Cover(rect s2.Rect, level int) ([]cell.Token, error) {
	if level < 0 || level > cell.MaxLevel {
		return nil, fmt.Errorf("%w: %d", cell.ErrInvalidLevel, level)
	}
	maxCells := c.MaxCells
	if maxCells <= 0 {
		maxCells = DefaultMaxCells
	}

	rc := &s2.RegionCoverer{
		MinLevel: level,
		MaxLevel: level,
		LevelMod: 1,
		MaxCells: maxCells,
	}
	covering := rc.Covering(rect)

	// MaxCells is a soft constraint inside the region coverer: when the
	// fixed level forces more cells it returns them all rather than leave
	// the region uncovered. Enforce the budget here instead.
	if len(covering) > maxCells {
		return nil, fmt.Errorf("%w: %d cells at level %d, budget %d",
			ErrTooManyCells, len(covering), level, maxCells)
	}

	tokens := make([]cell.Token, len(covering))
	for i, id := range covering {
		tokens[i] = cell.Token(id.ToToken())
	}
	return tokens, nil
}
