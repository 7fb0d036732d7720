package raycaster

import (
	"runtime"
	"time"

	"github.com/chewxy/math32"
	"golang.org/x/sync/errgroup"
)

// RenderConfig controls the column pass.
type RenderConfig struct {
	// Filter selects texture sampling. The zero value is FilterNearest.
	Filter Filter
	// Workers is the number of goroutines the columns are split across.
	// Zero or negative means runtime.GOMAXPROCS; 1 renders sequentially on
	// the calling goroutine.
	Workers int
}

// RenderStats describes one rendered frame.
type RenderStats struct {
	Columns  int           // columns in the frame
	Hits     int           // columns that hit a plane
	Bands    int           // column bands dispatched
	Duration time.Duration // wall time of the whole pass
}

// Renderer projects a Scene into an Image one screen column at a time. It
// keeps a plane snapshot between frames to avoid reallocating it; a Renderer
// must not be used by two goroutines at once.
type Renderer struct {
	cfg    RenderConfig
	planes []*Plane
	hits   []int
	last   RenderStats
}

// NewRenderer returns a renderer with the given configuration.
func NewRenderer(cfg RenderConfig) *Renderer {
	return &Renderer{cfg: cfg}
}

// Config returns the renderer configuration.
func (r *Renderer) Config() RenderConfig { return r.cfg }

// SetFilter changes the sampling filter for subsequent frames.
func (r *Renderer) SetFilter(f Filter) { r.cfg.Filter = f }

// Stats returns the statistics of the last rendered frame.
func (r *Renderer) Stats() RenderStats { return r.last }

func (r *Renderer) workers(width int) int {
	n := r.cfg.Workers
	if n <= 0 {
		n = runtime.GOMAXPROCS(0)
	}
	return max(1, min(n, width))
}

// Render clears img and draws s as seen from its camera. The scene must not
// be mutated while Render runs. Columns that hit nothing stay cleared.
func (r *Renderer) Render(s *Scene, img *Image) RenderStats {
	start := time.Now()
	img.Clear()

	r.planes = s.AppendPlanes(r.planes[:0])
	w, h := img.Width(), img.Height()
	stats := RenderStats{Columns: w}
	if w == 0 || h == 0 || len(r.planes) == 0 {
		stats.Duration = time.Since(start)
		r.finish(s, stats)
		return stats
	}

	proj := s.Camera().Camera().Project(w, h)
	n := r.workers(w)
	if cap(r.hits) < n {
		r.hits = make([]int, n)
	}
	r.hits = r.hits[:n]

	if n == 1 {
		r.hits[0] = r.drawColumns(&proj, img, 0, w)
		stats.Bands = 1
	} else {
		band := (w + n - 1) / n
		var g errgroup.Group
		g.SetLimit(n)
		for i := 0; i < n; i++ {
			from := i * band
			to := min(from+band, w)
			if from >= to {
				r.hits[i] = 0
				continue
			}
			stats.Bands++
			g.Go(func() error {
				// Bands cover disjoint column ranges, so no two goroutines
				// write the same pixel.
				r.hits[i] = r.drawColumns(&proj, img, from, to)
				return nil
			})
		}
		_ = g.Wait()
	}

	for _, c := range r.hits {
		stats.Hits += c
	}
	stats.Duration = time.Since(start)
	r.finish(s, stats)
	return stats
}

func (r *Renderer) finish(s *Scene, stats RenderStats) {
	r.last = stats
	if s.Debug() {
		r.debugLog(stats)
	}
}

// drawColumns renders columns [from, to) and returns how many hit a plane.
func (r *Renderer) drawColumns(proj *Projection, img *Image, from, to int) int {
	hits := 0
	for col := from; col < to; col++ {
		if r.drawColumn(proj, img, col) {
			hits++
		}
	}
	return hits
}

func (r *Renderer) drawColumn(proj *Projection, img *Image, col int) bool {
	ray := proj.ColumnRay(col)
	hit, ok := nearest(r.planes, ray)
	if !ok {
		return false
	}
	tex := &hit.Plane.Texture
	if tex.Source == nil || tex.Source.width == 0 || tex.Source.height == 0 {
		return false
	}
	colStart, colEnd, colH := proj.ColumnSpan(ray, hit.R)
	// A camera standing exactly on a plane, or a ray grazing it from behind
	// the view direction, projects to an unbounded column.
	if !(colH > 0) || math32.IsInf(colH, 0) {
		return false
	}

	h := img.height
	hf := img.heightf
	// h - int(hf - x) is ceil(x) for x in (-1, hf]; clamp first so the
	// float to int conversion stays in range for huge columns.
	rowStart := clampRow(h-int(hf-clampSpan(colStart, hf)), h)
	rowEnd := clampRow(h-int(hf-clampSpan(colEnd, hf)), h)
	inv := 1 / colH
	for row := rowStart; row < rowEnd; row++ {
		v := (float32(row) - colStart) * inv
		img.pix[row*img.width+col] = tex.Sample(hit.S, v, r.cfg.Filter)
	}
	return true
}

func clampSpan(x, hf float32) float32 {
	return math32.Max(-1, math32.Min(x, hf))
}

func clampRow(row, h int) int {
	if row < 0 {
		return 0
	}
	if row > h {
		return h
	}
	return row
}

// Render draws s into img with a one-off renderer.
func Render(s *Scene, img *Image, cfg RenderConfig) RenderStats {
	return NewRenderer(cfg).Render(s, img)
}
