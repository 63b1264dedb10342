// Package render draws coverings to PNG images using fogleman/gg. The
// output is a developer visualization of a fill result, not map tiles.
package render

import (
	"bytes"
	"image/color"
	"image/png"
	"math"
	"sync"

	"github.com/fogleman/gg"

	"github.com/soma-tiles/cellfill/pkg/colormap"
	"github.com/soma-tiles/cellfill/pkg/geo"
	"github.com/soma-tiles/cellfill/pkg/polyfill"
)

// Config contains renderer configuration.
type Config struct {
	Width    int
	Height   int
	Colormap string
}

// Renderer renders a polygon and its covering cells.
type Renderer struct {
	config     Config
	bufferPool sync.Pool
	colormaps  map[string]colormap.Colormap
}

// NewRenderer creates a new covering renderer.
func NewRenderer(cfg Config) *Renderer {
	r := &Renderer{
		config: cfg,
		bufferPool: sync.Pool{
			New: func() interface{} {
				return bytes.NewBuffer(make([]byte, 0, 32*1024))
			},
		},
		colormaps: make(map[string]colormap.Colormap),
	}

	r.colormaps["viridis"] = colormap.Viridis
	r.colormaps["plasma"] = colormap.Plasma
	r.colormaps["categorical"] = colormap.Categorical

	return r
}

// RenderCovering draws the covering cells under the polygon outline on an
// equirectangular canvas spanning the combined extent of both. Cell fill
// colors ramp over the covering index so adjacent cells stay
// distinguishable. The ordering tells the renderer how to read the
// boundary pairs of the cells.
func (r *Renderer) RenderCovering(ring geo.Ring, cells []polyfill.Cell, ordering geo.Ordering) ([]byte, error) {
	dc := gg.NewContext(r.config.Width, r.config.Height)
	dc.SetColor(color.White)
	dc.Clear()

	proj := newProjection(ring, cells, ordering, float64(r.config.Width), float64(r.config.Height))

	cmap, ok := r.colormaps[r.config.Colormap]
	if !ok {
		cmap = colormap.Viridis
	}

	// Covering cells first, so the polygon outline stays visible on top.
	for i, c := range cells {
		t := 0.0
		if len(cells) > 1 {
			t = float64(i) / float64(len(cells)-1)
		}
		cr, cg, cb, _ := cmap.At(t).RGBA()
		dc.SetRGBA(float64(cr)/65535, float64(cg)/65535, float64(cb)/65535, 0.5)
		tracePairs(dc, proj, c.Boundary, ordering)
		dc.FillPreserve()
		dc.SetRGBA(0.2, 0.2, 0.2, 0.9)
		dc.SetLineWidth(1)
		dc.Stroke()
	}

	dc.SetRGB(0, 0, 0)
	dc.SetLineWidth(2)
	traceRing(dc, proj, ring)
	dc.Stroke()

	return r.encodeContext(dc)
}

// projection maps degree coordinates onto the canvas with a small margin.
type projection struct {
	minLng, maxLng float64
	minLat, maxLat float64
	width, height  float64
}

func newProjection(ring geo.Ring, cells []polyfill.Cell, ordering geo.Ordering, width, height float64) projection {
	p := projection{
		minLng: math.Inf(1), maxLng: math.Inf(-1),
		minLat: math.Inf(1), maxLat: math.Inf(-1),
		width: width, height: height,
	}
	for _, pt := range ring {
		p.extend(pt.Lat, pt.Lng)
	}
	for _, c := range cells {
		for _, pair := range c.Boundary {
			lat, lng := splitPair(pair, ordering)
			p.extend(lat, lng)
		}
	}

	// 5% margin on each side
	lngPad := (p.maxLng - p.minLng) * 0.05
	latPad := (p.maxLat - p.minLat) * 0.05
	if lngPad == 0 {
		lngPad = 0.5
	}
	if latPad == 0 {
		latPad = 0.5
	}
	p.minLng -= lngPad
	p.maxLng += lngPad
	p.minLat -= latPad
	p.maxLat += latPad
	return p
}

func (p *projection) extend(lat, lng float64) {
	p.minLat = math.Min(p.minLat, lat)
	p.maxLat = math.Max(p.maxLat, lat)
	p.minLng = math.Min(p.minLng, lng)
	p.maxLng = math.Max(p.maxLng, lng)
}

// at maps a (lat, lng) point to canvas pixels, with north up.
func (p *projection) at(lat, lng float64) (float64, float64) {
	x := (lng - p.minLng) / (p.maxLng - p.minLng) * p.width
	y := (p.maxLat - lat) / (p.maxLat - p.minLat) * p.height
	return x, y
}

func splitPair(pair [2]float64, ordering geo.Ordering) (lat, lng float64) {
	if ordering == geo.OrderLngLat {
		return pair[1], pair[0]
	}
	return pair[0], pair[1]
}

func tracePairs(dc *gg.Context, proj projection, pairs [][2]float64, ordering geo.Ordering) {
	for i, pair := range pairs {
		lat, lng := splitPair(pair, ordering)
		x, y := proj.at(lat, lng)
		if i == 0 {
			dc.MoveTo(x, y)
		} else {
			dc.LineTo(x, y)
		}
	}
	dc.ClosePath()
}

func traceRing(dc *gg.Context, proj projection, ring geo.Ring) {
	for i, pt := range ring {
		x, y := proj.at(pt.Lat, pt.Lng)
		if i == 0 {
			dc.MoveTo(x, y)
		} else {
			dc.LineTo(x, y)
		}
	}
	dc.ClosePath()
}

func (r *Renderer) encodeContext(dc *gg.Context) ([]byte, error) {
	buf := r.bufferPool.Get().(*bytes.Buffer)
	defer func() {
		buf.Reset()
		r.bufferPool.Put(buf)
	}()

	// Use fast PNG encoder
	encoder := png.Encoder{CompressionLevel: png.BestSpeed}
	if err := encoder.Encode(buf, dc.Image()); err != nil {
		return nil, err
	}

	// Copy buffer contents (buffer will be reused)
	result := make([]byte, buf.Len())
	copy(result, buf.Bytes())
	return result, nil
}
