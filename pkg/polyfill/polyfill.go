// Package polyfill fills polygons with spatial cells of a fixed level.
//
// The pipeline covers the polygon's bounding rectangle with same-level
// cells, then rejects covering cells whose boundary does not actually
// intersect the polygon. Every call is a pure function of its inputs.
package polyfill

import (
	"runtime"
	"sync"

	"github.com/paulmach/orb/geojson"
	geom "github.com/twpayne/go-geom"

	"github.com/soma-tiles/cellfill/pkg/cell"
	"github.com/soma-tiles/cellfill/pkg/cover"
	"github.com/soma-tiles/cellfill/pkg/geo"
)

// Options controls a fill call. The zero value fills at level 0 with
// (lat, lng) boundaries, no tokens, and sequential filtering.
type Options struct {
	// Level is the subdivision level of the returned cells, in [0, 30].
	Level int
	// Ordering selects the coordinate ordering of boundary output.
	Ordering geo.Ordering
	// WithID attaches each surviving cell's token to its boundary.
	WithID bool
	// Workers bounds the goroutines used for the intersection filter
	// stage. Zero or one runs the filter inline; negative uses GOMAXPROCS.
	Workers int
	// MaxCells overrides the covering cell budget when positive.
	MaxCells int
	// BoundaryFunc overrides how cell boundaries are resolved, letting
	// callers interpose a cache. Nil uses cell.Boundary. Implementations
	// must be safe for concurrent use when Workers enables parallelism.
	BoundaryFunc func(cell.Token) (geo.Ring, error)
}

// Cell pairs a covering cell's boundary with its token. Token is empty
// unless Options.WithID was set.
type Cell struct {
	Token    cell.Token   `json:"id,omitempty"`
	Boundary [][2]float64 `json:"geometry"`
}

// Fill returns the cells at opts.Level whose boundary intersects the ring.
// The result order follows the covering's iteration order; callers must not
// rely on any particular ordering. A decode failure anywhere aborts the
// whole call: a malformed token out of the coverer is a programming error,
// not something to skip past.
func Fill(ring geo.Ring, opts Options) ([]Cell, error) {
	rect, err := ring.Bound()
	if err != nil {
		return nil, err
	}

	tokens, err := cover.Config{MaxCells: opts.MaxCells}.Cover(rect, opts.Level)
	if err != nil {
		return nil, err
	}

	boundaryOf := opts.BoundaryFunc
	if boundaryOf == nil {
		boundaryOf = cell.Boundary
	}

	boundaries := make([]geo.Ring, len(tokens))
	keep := make([]bool, len(tokens))
	if err := filterStage(ring, tokens, boundaryOf, boundaries, keep, opts.Workers); err != nil {
		return nil, err
	}

	out := make([]Cell, 0, len(tokens))
	for i, tok := range tokens {
		if !keep[i] {
			continue
		}
		c := Cell{Boundary: boundaries[i].Pairs(opts.Ordering)}
		if opts.WithID {
			c.Token = tok
		}
		out = append(out, c)
	}
	return out, nil
}

// FillGeoJSON fills the outer ring of a GeoJSON polygon feature.
func FillGeoJSON(f *geojson.Feature, opts Options) ([]Cell, error) {
	ring, err := geo.RingFromGeoJSON(f)
	if err != nil {
		return nil, err
	}
	return Fill(ring, opts)
}

// FillGeom fills the outer ring of a go-geom polygon.
func FillGeom(p *geom.Polygon, opts Options) ([]Cell, error) {
	ring, err := geo.RingFromGeom(p)
	if err != nil {
		return nil, err
	}
	return Fill(ring, opts)
}

// filterStage computes each covering cell's boundary and tests it against
// the target ring. The test always runs in internal (lat, lng) space; the
// requested output ordering only affects how survivors are formatted. The
// test is planar, so for non-rectangular rings crossing the antimeridian
// it may keep extra seam cells; see geo.Intersects.
// Candidates are independent, so the stage fans out across a bounded worker
// pool when workers allows, writing into index slots so the covering order
// is preserved.
func filterStage(ring geo.Ring, tokens []cell.Token, boundaryOf func(cell.Token) (geo.Ring, error), boundaries []geo.Ring, keep []bool, workers int) error {
	if workers < 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers <= 1 || len(tokens) < 2 {
		for i, tok := range tokens {
			b, err := boundaryOf(tok)
			if err != nil {
				return err
			}
			boundaries[i] = b
			keep[i] = geo.Intersects(ring, b)
		}
		return nil
	}

	var (
		wg       sync.WaitGroup
		sem      = make(chan struct{}, workers)
		errOnce  sync.Once
		firstErr error
	)
	for i, tok := range tokens {
		wg.Add(1)
		go func(i int, tok cell.Token) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			b, err := boundaryOf(tok)
			if err != nil {
				errOnce.Do(func() { firstErr = err })
				return
			}
			boundaries[i] = b
			keep[i] = geo.Intersects(ring, b)
		}(i, tok)
	}
	wg.Wait()
	return firstErr
}
