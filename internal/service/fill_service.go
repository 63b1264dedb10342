// Package service glues the fill pipeline to the caches and the renderer
// for the CLI.
package service

import (
	"encoding/json"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/soma-tiles/cellfill/internal/cache"
	"github.com/soma-tiles/cellfill/internal/render"
	"github.com/soma-tiles/cellfill/pkg/cell"
	"github.com/soma-tiles/cellfill/pkg/geo"
	"github.com/soma-tiles/cellfill/pkg/polyfill"
)

// FillServiceConfig contains fill service configuration.
type FillServiceConfig struct {
	Cache    *cache.Manager
	Renderer *render.Renderer
	MaxCells int
	Workers  int
}

// FillService runs fills, serializes results, and caches both the
// serialized payloads and the per-cell boundaries feeding the filter stage.
type FillService struct {
	cache    *cache.Manager
	renderer *render.Renderer
	maxCells int
	workers  int
}

// NewFillService creates a new fill service.
func NewFillService(cfg FillServiceConfig) *FillService {
	return &FillService{
		cache:    cfg.Cache,
		renderer: cfg.Renderer,
		maxCells: cfg.MaxCells,
		workers:  cfg.Workers,
	}
}

// Fill runs the polygon fill and returns the result as a serialized GeoJSON
// FeatureCollection. Feature coordinates are written in the requested
// ordering verbatim, matching the boundary interchange format: callers
// asking for (lat, lng) get open 4-vertex rings, callers asking for the
// GeoJSON-conformant (lng, lat) ordering get closed 5-vertex rings. When
// withID is set, each feature carries its cell token in the "id" property.
// Identical invocations are served from cache.
func (s *FillService) Fill(ring geo.Ring, level int, ordering geo.Ordering, withID bool) ([]byte, error) {
	key := cache.ResultKey(ring, level, ordering, withID)
	if data, ok := s.cache.GetResult(key); ok {
		return data, nil
	}

	cells, err := s.fillCells(ring, level, ordering, withID)
	if err != nil {
		return nil, err
	}

	payload, err := encodeFeatureCollection(cells, withID)
	if err != nil {
		return nil, fmt.Errorf("failed to encode fill result: %w", err)
	}

	if err := s.cache.SetResult(key, payload); err != nil {
		// Cache failures degrade to recomputation, never to a lost result.
		return payload, nil
	}
	return payload, nil
}

// RenderPNG runs the fill and draws the covering under the polygon outline.
func (s *FillService) RenderPNG(ring geo.Ring, level int, ordering geo.Ordering) ([]byte, error) {
	cells, err := s.fillCells(ring, level, ordering, false)
	if err != nil {
		return nil, err
	}
	return s.renderer.RenderCovering(ring, cells, ordering)
}

// Centers resolves the representative point of each token, for centering a
// viewport over a fill result.
func (s *FillService) Centers(tokens []cell.Token) ([]geo.LatLng, error) {
	out := make([]geo.LatLng, len(tokens))
	for i, tok := range tokens {
		c, err := cell.Center(tok)
		if err != nil {
			return nil, err
		}
		out[i] = c
	}
	return out, nil
}

// FillCells runs the fill and returns the structured cells, bypassing the
// result cache. Used by callers that post-process cells instead of
// forwarding the serialized payload.
func (s *FillService) FillCells(ring geo.Ring, level int, ordering geo.Ordering, withID bool) ([]polyfill.Cell, error) {
	return s.fillCells(ring, level, ordering, withID)
}

func (s *FillService) fillCells(ring geo.Ring, level int, ordering geo.Ordering, withID bool) ([]polyfill.Cell, error) {
	return polyfill.Fill(ring, polyfill.Options{
		Level:        level,
		Ordering:     ordering,
		WithID:       withID,
		Workers:      s.workers,
		MaxCells:     s.maxCells,
		BoundaryFunc: s.boundaryOf,
	})
}

// boundaryOf resolves cell boundaries through the LRU cache. Coverings of
// nearby polygons at the same level share most of their cells, so repeated
// fills skip the vertex math for cells they have seen before.
func (s *FillService) boundaryOf(tok cell.Token) (geo.Ring, error) {
	if ring, ok := s.cache.GetBoundary(tok); ok {
		return ring, nil
	}
	ring, err := cell.Boundary(tok)
	if err != nil {
		return nil, err
	}
	s.cache.SetBoundary(tok, ring)
	return ring, nil
}

func encodeFeatureCollection(cells []polyfill.Cell, withID bool) ([]byte, error) {
	fc := geojson.NewFeatureCollection()
	for _, c := range cells {
		ring := make(orb.Ring, len(c.Boundary))
		for i, pair := range c.Boundary {
			ring[i] = orb.Point{pair[0], pair[1]}
		}
		f := geojson.NewFeature(orb.Polygon{ring})
		if withID {
			f.Properties["id"] = string(c.Token)
		}
		fc.Append(f)
	}
	return json.Marshal(fc)
}
