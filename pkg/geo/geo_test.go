package geo

import (
	"errors"
	"testing"

	"github.com/golang/geo/s2"
)

func TestOrderingConversions(t *testing.T) {
	p := LatLng{Lat: 12.5, Lng: -70.25}
	swapped := p.LngLat()
	if swapped.Lng != p.Lng || swapped.Lat != p.Lat {
		t.Fatalf("LngLat lost coordinates: %+v -> %+v", p, swapped)
	}
	if swapped.LatLng() != p {
		t.Fatalf("round trip changed point: %+v", swapped.LatLng())
	}
}

func TestRingClosed(t *testing.T) {
	open := Ring{{0, 0}, {0, 1}, {1, 1}, {1, 0}}
	closed := open.Closed()
	if len(closed) != 5 {
		t.Fatalf("expected 5 vertices, got %d", len(closed))
	}
	if closed[0] != closed[4] {
		t.Fatalf("ring not closed: %+v vs %+v", closed[0], closed[4])
	}
	if got := closed.Closed(); len(got) != 5 {
		t.Fatalf("closing a closed ring added vertices: %d", len(got))
	}
}

func TestRingValidate(t *testing.T) {
	cases := []struct {
		name string
		ring Ring
		ok   bool
	}{
		{"square", Ring{{0, 0}, {0, 1}, {1, 1}, {1, 0}}, true},
		{"triangle", Ring{{0, 0}, {0, 1}, {1, 0}}, true},
		{"twoPoints", Ring{{0, 0}, {1, 1}}, false},
		{"repeatedPoint", Ring{{0, 0}, {0, 0}, {0, 0}, {0, 0}}, false},
		{"closedSegment", Ring{{0, 0}, {1, 1}, {0, 0}}, false},
		{"empty", Ring{}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.ring.Validate()
			if tc.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tc.ok && !errors.Is(err, ErrDegeneratePolygon) {
				t.Fatalf("expected ErrDegeneratePolygon, got %v", err)
			}
		})
	}
}

func TestBound(t *testing.T) {
	ring := Ring{{0, 0}, {0, 1}, {1, 1}, {1, 0}}
	rect, err := ring.Bound()
	if err != nil {
		t.Fatalf("Bound: %v", err)
	}
	for _, p := range ring {
		if !rect.ContainsLatLng(p.S2()) {
			t.Fatalf("bound does not contain vertex %+v", p)
		}
	}
	if rect.ContainsLatLng(s2.LatLngFromDegrees(5, 5)) {
		t.Fatalf("bound unexpectedly contains (5, 5)")
	}
}

func TestBoundDegenerate(t *testing.T) {
	if _, err := (Ring{{0, 0}, {1, 1}}).Bound(); !errors.Is(err, ErrDegeneratePolygon) {
		t.Fatalf("expected ErrDegeneratePolygon, got %v", err)
	}
}

// A ring straddling the antimeridian must produce a narrow seam-spanning
// bound, not one wrapping the long way around the globe.
func TestBoundAcrossAntimeridian(t *testing.T) {
	ring := Ring{
		{Lat: -1, Lng: 179.5},
		{Lat: 1, Lng: 179.5},
		{Lat: 1, Lng: -179.5},
		{Lat: -1, Lng: -179.5},
	}
	rect, err := ring.Bound()
	if err != nil {
		t.Fatalf("Bound: %v", err)
	}
	if !rect.ContainsLatLng(s2.LatLngFromDegrees(0, 180)) {
		t.Fatalf("bound does not contain the seam point (0, 180)")
	}
	if rect.ContainsLatLng(s2.LatLngFromDegrees(0, 0)) {
		t.Fatalf("bound wrapped the wrong way around and contains (0, 0)")
	}
	if got := rect.Lng.Length(); got > 0.05 {
		t.Fatalf("longitude span too wide: %v radians", got)
	}
}

func TestPairs(t *testing.T) {
	ring := Ring{{0, 0}, {0, 1}, {1, 1}, {1, 0}}

	latlng := ring.Pairs(OrderLatLng)
	if len(latlng) != 4 {
		t.Fatalf("expected open ring of 4 pairs, got %d", len(latlng))
	}
	if latlng[1] != [2]float64{0, 1} {
		t.Fatalf("unexpected (lat, lng) pair: %v", latlng[1])
	}

	lnglat := ring.Pairs(OrderLngLat)
	if len(lnglat) != 5 {
		t.Fatalf("expected closed ring of 5 pairs, got %d", len(lnglat))
	}
	if lnglat[1] != [2]float64{1, 0} {
		t.Fatalf("unexpected (lng, lat) pair: %v", lnglat[1])
	}
	if lnglat[0] != lnglat[4] {
		t.Fatalf("ring not closed: %v vs %v", lnglat[0], lnglat[4])
	}
}
