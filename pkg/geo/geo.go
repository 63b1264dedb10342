// Package geo provides coordinate types and planar polygon predicates for
// the cell filling pipeline.
//
// Two point types exist, one per coordinate ordering: LatLng for the
// internal geometric ordering and LngLat for the GeoJSON interchange
// ordering. Conversions between them are explicit, so a ring can never be
// silently interpreted in the wrong ordering.
package geo

import (
	"errors"

	"github.com/golang/geo/s2"
	"github.com/paulmach/orb"
)

// ErrDegeneratePolygon is returned for rings with fewer than three distinct
// vertices. Such rings have no interior to fill.
var ErrDegeneratePolygon = errors.New("geo: degenerate polygon")

// Ordering selects the coordinate ordering of boundary output.
type Ordering int

const (
	// OrderLatLng emits (latitude, longitude) pairs, the internal ordering.
	OrderLatLng Ordering = iota
	// OrderLngLat emits (longitude, latitude) pairs, the GeoJSON ordering.
	OrderLngLat
)

// LatLng is a point in degrees with latitude first.
type LatLng struct {
	Lat float64
	Lng float64
}

// LngLat is a point in degrees with longitude first, as used by GeoJSON.
type LngLat struct {
	Lng float64
	Lat float64
}

// LngLat converts to interchange ordering.
func (p LatLng) LngLat() LngLat { return LngLat{Lng: p.Lng, Lat: p.Lat} }

// LatLng converts to internal ordering.
func (p LngLat) LatLng() LatLng { return LatLng{Lat: p.Lat, Lng: p.Lng} }

// S2 converts the point to an s2.LatLng in radians.
func (p LatLng) S2() s2.LatLng { return s2.LatLngFromDegrees(p.Lat, p.Lng) }

// FromS2 converts an s2.LatLng back to degrees.
func FromS2(ll s2.LatLng) LatLng {
	return LatLng{Lat: ll.Lat.Degrees(), Lng: ll.Lng.Degrees()}
}

// Ring is an ordered polygon ring in internal (lat, lng) ordering. A Ring
// may be open or closed; operations that require a closed ring close it
// themselves.
type Ring []LatLng

// Closed returns the ring with its first vertex repeated at the end. A ring
// that is already closed is returned unchanged.
func (r Ring) Closed() Ring {
	if len(r) == 0 || r[0] == r[len(r)-1] {
		return r
	}
	out := make(Ring, len(r)+1)
	copy(out, r)
	out[len(r)] = r[0]
	return out
}

// Orb converts the ring to a closed orb.Ring in (lng, lat) axis order.
func (r Ring) Orb() orb.Ring {
	closed := r.Closed()
	out := make(orb.Ring, len(closed))
	for i, p := range closed {
		out[i] = orb.Point{p.Lng, p.Lat}
	}
	return out
}

// Validate checks that the ring has at least three distinct vertices.
func (r Ring) Validate() error {
	distinct := make(map[LatLng]struct{}, len(r))
	for _, p := range r {
		distinct[p] = struct{}{}
	}
	if len(distinct) < 3 {
		return ErrDegeneratePolygon
	}
	return nil
}

// Bound returns the bounding rectangle of the ring's vertices. The rectangle
// is built by folding each vertex into an s2.Rect, which grows the longitude
// interval along the shorter arc, so rings crossing the antimeridian produce
// a narrow seam-spanning rectangle rather than a near-global one. Rings
// whose consecutive vertices are 180 degrees or more apart in longitude are
// ambiguous and not supported.
func (r Ring) Bound() (s2.Rect, error) {
	if err := r.Validate(); err != nil {
		return s2.Rect{}, err
	}
	rect := s2.RectFromLatLng(r[0].S2())
	for _, p := range r[1:] {
		rect = rect.AddPoint(p.S2())
	}
	return rect, nil
}

// Pairs flattens the ring into bare coordinate pairs in the requested
// ordering. Matching the interchange format, OrderLatLng yields the open
// ring as-is while OrderLngLat yields a closed ring.
func (r Ring) Pairs(ordering Ordering) [][2]float64 {
	src := r
	if ordering == OrderLngLat {
		src = r.Closed()
	}
	out := make([][2]float64, len(src))
	for i, p := range src {
		if ordering == OrderLngLat {
			out[i] = [2]float64{p.Lng, p.Lat}
		} else {
			out[i] = [2]float64{p.Lat, p.Lng}
		}
	}
	return out
}
