package geo

import (
	"errors"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	geom "github.com/twpayne/go-geom"
)

func TestRingFromOrb(t *testing.T) {
	p := orb.Polygon{{{10, 50}, {11, 50}, {11, 51}, {10, 51}, {10, 50}}}
	ring, err := RingFromOrb(p)
	if err != nil {
		t.Fatalf("RingFromOrb: %v", err)
	}
	if ring[0] != (LatLng{Lat: 50, Lng: 10}) {
		t.Fatalf("ordering not normalized: %+v", ring[0])
	}
	if len(ring) != 5 {
		t.Fatalf("expected 5 vertices, got %d", len(ring))
	}
}

func TestRingFromGeoJSON(t *testing.T) {
	raw := []byte(`{"type":"Feature","geometry":{"type":"Polygon","coordinates":[[[0,0],[0,1],[1,1],[1,0],[0,0]]]},"properties":{}}`)
	f, err := geojson.UnmarshalFeature(raw)
	if err != nil {
		t.Fatalf("UnmarshalFeature: %v", err)
	}
	ring, err := RingFromGeoJSON(f)
	if err != nil {
		t.Fatalf("RingFromGeoJSON: %v", err)
	}
	// GeoJSON coordinates are (lng, lat); vertex [0,1] is lat=1, lng=0.
	if ring[1] != (LatLng{Lat: 1, Lng: 0}) {
		t.Fatalf("unexpected vertex: %+v", ring[1])
	}
}

func TestRingFromGeoJSONRejectsNonPolygon(t *testing.T) {
	f := geojson.NewFeature(orb.Point{0, 0})
	if _, err := RingFromGeoJSON(f); err == nil {
		t.Fatal("expected error for point geometry")
	}
}

func TestRingFromGeom(t *testing.T) {
	p := geom.NewPolygon(geom.XY)
	if _, err := p.SetCoords([][]geom.Coord{
		{{0, 0}, {1, 0}, {1, 1}, {0, 1}, {0, 0}},
	}); err != nil {
		t.Fatalf("SetCoords: %v", err)
	}
	ring, err := RingFromGeom(p)
	if err != nil {
		t.Fatalf("RingFromGeom: %v", err)
	}
	if ring[1] != (LatLng{Lat: 0, Lng: 1}) {
		t.Fatalf("unexpected vertex: %+v", ring[1])
	}
}

func TestRingFromGeomDegenerate(t *testing.T) {
	p := geom.NewPolygon(geom.XY)
	if _, err := RingFromGeom(p); !errors.Is(err, ErrDegeneratePolygon) {
		t.Fatalf("expected ErrDegeneratePolygon, got %v", err)
	}
}
