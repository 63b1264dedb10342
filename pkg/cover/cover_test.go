package cover

import (
	"errors"
	"testing"

	"github.com/golang/geo/s2"

	"github.com/soma-tiles/cellfill/pkg/cell"
)

func rectFromDegrees(latLo, lngLo, latHi, lngHi float64) s2.Rect {
	r := s2.RectFromLatLng(s2.LatLngFromDegrees(latLo, lngLo))
	return r.AddPoint(s2.LatLngFromDegrees(latHi, lngHi))
}

func TestCoverIsDepthUniform(t *testing.T) {
	rect := rectFromDegrees(0, 0, 1, 1)
	tokens, err := Cover(rect, 8)
	if err != nil {
		t.Fatalf("Cover: %v", err)
	}
	if len(tokens) == 0 {
		t.Fatal("covering is empty")
	}
	for _, tok := range tokens {
		level, err := cell.LevelOf(tok)
		if err != nil {
			t.Fatalf("LevelOf(%q): %v", tok, err)
		}
		if level != 8 {
			t.Fatalf("cell %q at level %d, want 8", tok, level)
		}
	}
}

func TestCoverContainsRectCorners(t *testing.T) {
	rect := rectFromDegrees(40, -74.5, 41, -73.5)
	tokens, err := Cover(rect, 7)
	if err != nil {
		t.Fatalf("Cover: %v", err)
	}
	set := make(map[cell.Token]struct{}, len(tokens))
	for _, tok := range tokens {
		set[tok] = struct{}{}
	}

	corners := [][2]float64{
		{40, -74.5}, {40, -73.5}, {41, -74.5}, {41, -73.5}, {40.5, -74},
	}
	for _, c := range corners {
		tok, err := cell.FromCoordinates(c[0], c[1], 7)
		if err != nil {
			t.Fatalf("FromCoordinates: %v", err)
		}
		if _, ok := set[tok]; !ok {
			t.Fatalf("covering misses cell %q containing (%v, %v)", tok, c[0], c[1])
		}
	}
}

func TestCoverStableAcrossCalls(t *testing.T) {
	rect := rectFromDegrees(-10, 100, -9, 101)
	first, err := Cover(rect, 9)
	if err != nil {
		t.Fatalf("Cover: %v", err)
	}
	second, err := Cover(rect, 9)
	if err != nil {
		t.Fatalf("Cover: %v", err)
	}
	if len(first) != len(second) {
		t.Fatalf("covering size changed: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("covering order changed at %d: %q vs %q", i, first[i], second[i])
		}
	}
}

func TestCoverInvalidLevel(t *testing.T) {
	rect := rectFromDegrees(0, 0, 1, 1)
	for _, level := range []int{-1, 31} {
		if _, err := Cover(rect, level); !errors.Is(err, cell.ErrInvalidLevel) {
			t.Fatalf("expected ErrInvalidLevel for level %d, got %v", level, err)
		}
	}
}

func TestCoverCellBudget(t *testing.T) {
	// A ten-degree box at level 10 needs far more than 16 cells.
	rect := rectFromDegrees(0, 0, 10, 10)
	_, err := Config{MaxCells: 16}.Cover(rect, 10)
	if !errors.Is(err, ErrTooManyCells) {
		t.Fatalf("expected ErrTooManyCells, got %v", err)
	}
}

func TestCoverConfigReusableConcurrently(t *testing.T) {
	cfg := Config{MaxCells: 2000}
	rect := rectFromDegrees(10, 10, 11, 11)

	done := make(chan error, 4)
	for i := 0; i < 4; i++ {
		go func() {
			_, err := cfg.Cover(rect, 8)
			done <- err
		}()
	}
	for i := 0; i < 4; i++ {
		if err := <-done; err != nil {
			t.Fatalf("concurrent Cover: %v", err)
		}
	}
}
