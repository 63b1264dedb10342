// Package main is the entry point for the cellfill CLI.
//
// It reads a GeoJSON polygon, fills it with spatial cells at the requested
// level, and writes the resulting boundaries as a GeoJSON FeatureCollection
// to stdout, optionally alongside a PNG visualization of the covering.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/paulmach/orb/geojson"

	"github.com/soma-tiles/cellfill/internal/cache"
	"github.com/soma-tiles/cellfill/internal/config"
	"github.com/soma-tiles/cellfill/internal/render"
	"github.com/soma-tiles/cellfill/internal/service"
	"github.com/soma-tiles/cellfill/pkg/cell"
	"github.com/soma-tiles/cellfill/pkg/geo"
)

func main() {
	// Parse command line flags
	configPath := flag.String("config", "config/cellfill.yaml", "Path to configuration file")
	inPath := flag.String("in", "-", "GeoJSON polygon input file, or - for stdin")
	level := flag.Int("level", -1, "Cell subdivision level in [0, 30]; -1 uses the configured default")
	conformant := flag.Bool("geojson-conformant", false, "Emit closed (lng, lat) boundary rings instead of open (lat, lng) rings")
	withID := flag.Bool("with-id", false, "Attach cell tokens to boundaries")
	pngPath := flag.String("png", "", "Also render the covering to this PNG file")
	center := flag.Bool("center", false, "Log the mean center of the returned cells")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	fillLevel := *cfg.Fill.Level
	if *level >= 0 {
		fillLevel = *level
	}
	ordering := geo.OrderLatLng
	if *conformant {
		ordering = geo.OrderLngLat
	}

	ring, err := readRing(*inPath)
	if err != nil {
		log.Fatalf("Failed to read input polygon: %v", err)
	}

	// Initialize cache manager
	cacheManager, err := cache.NewManager(cache.Config{
		ResultCacheSizeMB: cfg.Cache.ResultSizeMB,
		ResultTTL:         time.Duration(cfg.Cache.ResultTTLMinutes) * time.Minute,
		BoundaryCacheSize: cfg.Cache.BoundaryEntries,
	})
	if err != nil {
		log.Fatalf("Failed to initialize cache: %v", err)
	}
	defer cacheManager.Close()

	// Initialize covering renderer
	coveringRenderer := render.NewRenderer(render.Config{
		Width:    cfg.Render.Width,
		Height:   cfg.Render.Height,
		Colormap: cfg.Render.Colormap,
	})

	fillService := service.NewFillService(service.FillServiceConfig{
		Cache:    cacheManager,
		Renderer: coveringRenderer,
		MaxCells: cfg.Fill.MaxCells,
		Workers:  cfg.Fill.Workers,
	})

	payload, err := fillService.Fill(ring, fillLevel, ordering, *withID)
	if err != nil {
		log.Fatalf("Fill failed: %v", err)
	}
	os.Stdout.Write(payload)
	fmt.Println()

	if *pngPath != "" {
		img, err := fillService.RenderPNG(ring, fillLevel, ordering)
		if err != nil {
			log.Fatalf("Failed to render covering: %v", err)
		}
		if err := os.WriteFile(*pngPath, img, 0o644); err != nil {
			log.Fatalf("Failed to write %s: %v", *pngPath, err)
		}
		log.Printf("Covering image written to %s", *pngPath)
	}

	if *center {
		cells, err := fillService.FillCells(ring, fillLevel, ordering, true)
		if err != nil {
			log.Fatalf("Fill failed: %v", err)
		}
		tokens := make([]cell.Token, len(cells))
		for i, c := range cells {
			tokens[i] = c.Token
		}
		centers, err := fillService.Centers(tokens)
		if err != nil {
			log.Fatalf("Failed to resolve cell centers: %v", err)
		}
		var lat, lng float64
		for _, c := range centers {
			lat += c.Lat
			lng += c.Lng
		}
		if n := float64(len(centers)); n > 0 {
			log.Printf("Covering of %d cell(s), mean center (%.5f, %.5f)", len(centers), lat/n, lng/n)
		} else {
			log.Printf("Covering is empty")
		}
	}
}

// readRing loads a GeoJSON Feature, bare geometry, or FeatureCollection and
// extracts the outer polygon ring.
func readRing(path string) (geo.Ring, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}

	if f, err := geojson.UnmarshalFeature(data); err == nil {
		return geo.RingFromGeoJSON(f)
	}
	if g, err := geojson.UnmarshalGeometry(data); err == nil {
		return geo.RingFromGeoJSON(geojson.NewFeature(g.Geometry()))
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("input is not a GeoJSON polygon: %w", err)
	}
	if len(fc.Features) == 0 {
		return nil, fmt.Errorf("feature collection is empty")
	}
	return geo.RingFromGeoJSON(fc.Features[0])
}
