package render

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/soma-tiles/cellfill/pkg/geo"
	"github.com/soma-tiles/cellfill/pkg/polyfill"
)

func TestRenderCovering(t *testing.T) {
	ring := geo.Ring{{Lat: 0, Lng: 0}, {Lat: 1, Lng: 0}, {Lat: 1, Lng: 1}, {Lat: 0, Lng: 1}}
	cells, err := polyfill.Fill(ring, polyfill.Options{Level: 7})
	if err != nil {
		t.Fatalf("Fill: %v", err)
	}

	r := NewRenderer(Config{Width: 320, Height: 240, Colormap: "viridis"})
	img, err := r.RenderCovering(ring, cells, geo.OrderLatLng)
	if err != nil {
		t.Fatalf("RenderCovering: %v", err)
	}

	decoded, err := png.Decode(bytes.NewReader(img))
	if err != nil {
		t.Fatalf("output is not a PNG: %v", err)
	}
	b := decoded.Bounds()
	if b.Dx() != 320 || b.Dy() != 240 {
		t.Fatalf("unexpected image size %dx%d", b.Dx(), b.Dy())
	}
}

func TestRenderCoveringEmpty(t *testing.T) {
	ring := geo.Ring{{Lat: 0, Lng: 0}, {Lat: 1, Lng: 0}, {Lat: 1, Lng: 1}, {Lat: 0, Lng: 1}}
	r := NewRenderer(Config{Width: 64, Height: 64, Colormap: "unknown"})
	img, err := r.RenderCovering(ring, nil, geo.OrderLatLng)
	if err != nil {
		t.Fatalf("RenderCovering: %v", err)
	}
	if _, err := png.Decode(bytes.NewReader(img)); err != nil {
		t.Fatalf("output is not a PNG: %v", err)
	}
}

func TestRenderCoveringGeoJSONOrdering(t *testing.T) {
	ring := geo.Ring{{Lat: 0, Lng: 0}, {Lat: 1, Lng: 0}, {Lat: 1, Lng: 1}, {Lat: 0, Lng: 1}}
	cells, err := polyfill.Fill(ring, polyfill.Options{Level: 7, Ordering: geo.OrderLngLat})
	if err != nil {
		t.Fatalf("Fill: %v", err)
	}

	r := NewRenderer(Config{Width: 128, Height: 128, Colormap: "categorical"})
	img, err := r.RenderCovering(ring, cells, geo.OrderLngLat)
	if err != nil {
		t.Fatalf("RenderCovering: %v", err)
	}
	if _, err := png.Decode(bytes.NewReader(img)); err != nil {
		t.Fatalf("output is not a PNG: %v", err)
	}
}
