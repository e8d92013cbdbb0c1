package render

import (
	"strings"

	"wavescope/internal/dsp"
)

// State is the controller's lifecycle state.
type State int

const (
	StateIdle State = iota
	StateRunning
)

// Controller is the render loop's state machine. It owns the surfaces, the
// render configuration, and the bucket/position caches, and dispatches each
// tick's frame to the renderer for the active mode. It is driven from a
// single goroutine (the UI's tick loop); nothing here locks.
type Controller struct {
	state State
	mode  Mode
	cfg   Config

	width  int // total view width, including the legend gutter
	height int

	sampleRate int
	binCount   int

	surface   *Surface
	waterfall *Waterfall
	bars      *Bars
	active    Renderer
	axis      Axis
	legend    []string // cached gutter lines; nil while hidden
	baseline  string   // cached bar-mode axis line
	buckets   []dsp.Bucket
}

// NewController creates an Idle controller with the given initial mode and
// configuration.
func NewController(mode Mode, cfg Config, fps int) *Controller {
	if cfg.BucketCount < 1 {
		cfg.BucketCount = 48
	}
	return &Controller{
		mode:      mode,
		cfg:       cfg,
		surface:   NewSurface(1, 1),
		waterfall: NewWaterfall(),
		bars:      NewBars(fps),
	}
}

// State returns the controller state.
func (c *Controller) State() State { return c.state }

// Running reports whether a session is active.
func (c *Controller) Running() bool { return c.state == StateRunning }

// Mode returns the active visualization mode.
func (c *Controller) Mode() Mode { return c.mode }

// Config returns the current render configuration.
func (c *Controller) Config() Config { return c.cfg }

// Start transitions Idle -> Running for a frame source with the given
// geometry, clearing all pixel state first.
func (c *Controller) Start(width, height, sampleRate, binCount int) {
	c.width, c.height = width, height
	c.sampleRate, c.binCount = sampleRate, binCount
	c.state = StateRunning
	c.rebuild()
}

// Stop transitions back to Idle. Pixel state is discarded on the next Start.
func (c *Controller) Stop() {
	c.state = StateIdle
}

// Restart begins a fresh session for a new frame source (for example a
// track change), keeping the display geometry but clearing the scroll
// buffer and axis caches.
func (c *Controller) Restart(sampleRate, binCount int) {
	c.sampleRate, c.binCount = sampleRate, binCount
	c.state = StateRunning
	c.rebuild()
}

// Resize adjusts the display geometry, clearing the surfaces.
func (c *Controller) Resize(width, height int) {
	c.width, c.height = width, height
	c.rebuild()
}

// SetMode switches the visualization, clearing the surface and toggling the
// legend before the next tick so the two geometries never mix.
func (c *Controller) SetMode(m Mode) {
	if m == c.mode {
		return
	}
	c.mode = m
	c.rebuild()
}

// CycleMode advances to the next mode.
func (c *Controller) CycleMode() {
	c.SetMode(c.mode.Next())
}

// SetDbRange replaces the normalization window.
func (c *Controller) SetDbRange(minDb, maxDb float64) {
	c.cfg.MinDb, c.cfg.MaxDb = minDb, maxDb
}

// SetBucketCount changes the bar partition size and invalidates the bucket
// cache.
func (c *Controller) SetBucketCount(n int) {
	if n < 1 || n == c.cfg.BucketCount {
		return
	}
	c.cfg.BucketCount = n
	c.rebuild()
}

// Surface exposes the pixel buffer for inspection.
func (c *Controller) Surface() *Surface { return c.surface }

// LegendVisible reports whether the frequency gutter is currently shown.
func (c *Controller) LegendVisible() bool { return c.legend != nil }

// rebuild recomputes every cached mapping (surface geometry, buckets, axis)
// and clears the pixel state. Called on any geometry or mode change.
func (c *Controller) rebuild() {
	w, h := c.surfaceSize()
	sw, sh := c.surface.Size()
	if sw != w || sh != h {
		c.surface.Resize(w, h)
	} else {
		c.surface.Clear()
	}

	c.axis = NewAxis(c.sampleRate, c.binCount)
	if c.mode == ModeBars {
		c.buckets = dsp.Bucketize(c.binCount, c.cfg.BucketCount)
		c.bars.SetBuckets(c.buckets)
		c.baseline = c.axis.Baseline(w, c.buckets)
		c.legend = nil
		c.active = c.bars
	} else {
		c.legend = c.axis.Legend(h)
		c.baseline = ""
		c.active = c.waterfall
	}
}

// surfaceSize derives the pixel surface dimensions from the view geometry:
// spectrogram mode gives up a gutter column for the legend, bar mode keeps
// the full width and reserves bottom rows inside the surface.
func (c *Controller) surfaceSize() (int, int) {
	w, h := c.width, c.height
	if c.mode == ModeSpectrogram {
		w -= legendWidth
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}

// Tick consumes one frame and repaints. A frame whose bin count no longer
// matches the session geometry (analyzer reconfigured mid-flight) restarts
// the session with the new geometry before painting.
func (c *Controller) Tick(frame []float64) {
	if c.state != StateRunning || len(frame) == 0 {
		return
	}
	if len(frame) != c.binCount {
		c.binCount = len(frame)
		c.rebuild()
	}

	c.active.Render(frame, c.cfg, c.surface)
}

// View composes the final text block: legend gutter beside the surface in
// spectrogram mode, surface above the frequency baseline in bar mode.
func (c *Controller) View() string {
	lines := c.surface.Lines()
	var sb strings.Builder
	if c.mode == ModeSpectrogram {
		for i, line := range lines {
			if i > 0 {
				sb.WriteByte('\n')
			}
			if i < len(c.legend) {
				sb.WriteString(c.legend[i])
			}
			sb.WriteString(line)
		}
		return sb.String()
	}

	// Bar mode: the reserved bottom row carries the baseline labels.
	for i := 0; i < len(lines)-axisMargin; i++ {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(lines[i])
	}
	sb.WriteByte('\n')
	sb.WriteString(c.baseline)
	return sb.String()
}
