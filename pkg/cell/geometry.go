package cell

import (
	"github.com/golang/geo/s2"

	"github.com/soma-tiles/cellfill/pkg/geo"
)

// Center returns the cell's representative point. Useful for centering a
// map view over a set of cells.
func Center(t Token) (geo.LatLng, error) {
	id, err := ParseToken(t)
	if err != nil {
		return geo.LatLng{}, err
	}
	c := s2.CellFromCellID(id)
	return geo.FromS2(s2.LatLngFromPoint(c.Center())), nil
}

// Boundary returns the cell's four corner vertices as an open ring in
// internal (lat, lng) ordering. The vertices come out in counterclockwise
// winding order, matching the underlying cell vertex order.
func Boundary(t Token) (geo.Ring, error) {
	id, err := ParseToken(t)
	if err != nil {
		return nil, err
	}
	c := s2.CellFromCellID(id)
	ring := make(geo.Ring, 4)
	for i := 0; i < 4; i++ {
		ring[i] = geo.FromS2(s2.LatLngFromPoint(c.Vertex(i)))
	}
	return ring, nil
}

// BoundaryPairs returns the boundary as bare coordinate pairs in the
// requested ordering: an open 4-vertex ring for geo.OrderLatLng, a closed
// 5-vertex ring for geo.OrderLngLat. The shapes mirror the interchange
// format consumers expect for each ordering.
func BoundaryPairs(t Token, ordering geo.Ordering) ([][2]float64, error) {
	ring, err := Boundary(t)
	if err != nil {
		return nil, err
	}
	return ring.Pairs(ordering), nil
}
