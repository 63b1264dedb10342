package geo

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	geom "github.com/twpayne/go-geom"
)

// RingFromOrb extracts the outer ring of an orb polygon, converting from
// (lng, lat) interchange ordering to the internal ordering. Holes are
// ignored; only the outer ring takes part in filling.
func RingFromOrb(p orb.Polygon) (Ring, error) {
	if len(p) == 0 {
		return nil, fmt.Errorf("%w: polygon has no rings", ErrDegeneratePolygon)
	}
	outer := p[0]
	out := make(Ring, len(outer))
	for i, pt := range outer {
		out[i] = LatLng{Lat: pt[1], Lng: pt[0]}
	}
	if err := out.Validate(); err != nil {
		return nil, err
	}
	return out, nil
}

// RingFromGeoJSON extracts the outer ring of a GeoJSON feature carrying a
// Polygon (or the first polygon of a MultiPolygon) geometry.
func RingFromGeoJSON(f *geojson.Feature) (Ring, error) {
	switch g := f.Geometry.(type) {
	case orb.Polygon:
		return RingFromOrb(g)
	case orb.MultiPolygon:
		if len(g) == 0 {
			return nil, fmt.Errorf("%w: empty multipolygon", ErrDegeneratePolygon)
		}
		return RingFromOrb(g[0])
	default:
		return nil, fmt.Errorf("cannot fill geometry of type %T", g)
	}
}

// RingFromGeom extracts the outer ring of a go-geom polygon. The geom
// convention stores coordinates as (X=lng, Y=lat) and repeats the first
// vertex to close the ring.
func RingFromGeom(p *geom.Polygon) (Ring, error) {
	if p.NumLinearRings() == 0 {
		return nil, fmt.Errorf("%w: polygon has no rings", ErrDegeneratePolygon)
	}
	r := p.LinearRing(0)
	n := r.NumCoords()
	out := make(Ring, n)
	for i := 0; i < n; i++ {
		c := r.Coord(i)
		out[i] = LatLng{Lat: c.Y(), Lng: c.X()}
	}
	if err := out.Validate(); err != nil {
		return nil, err
	}
	return out, nil
}
