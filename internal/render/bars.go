package render

import (
	"math"

	"github.com/charmbracelet/harmonica"

	"wavescope/internal/dsp"
)

// barGap is the fixed spacing between adjacent bars, in cells.
const barGap = 1

// Bars aggregates bins into log-spaced buckets and repaints the whole
// surface each tick as a discrete bar chart. Bar heights are eased with a
// spring so they fall smoothly between frames.
type Bars struct {
	buckets []dsp.Bucket
	spring  harmonica.Spring
	pos     []float64
	vel     []float64
}

var _ Renderer = (*Bars)(nil)

// NewBars creates a bar renderer driven at the given tick rate.
func NewBars(fps int) *Bars {
	if fps < 1 {
		fps = 30
	}
	return &Bars{
		spring: harmonica.NewSpring(harmonica.FPS(fps), 10.0, 0.9),
	}
}

// SetBuckets installs a new bucket partition and resets the spring state.
// Called by the controller whenever bin or bucket count changes.
func (b *Bars) SetBuckets(buckets []dsp.Bucket) {
	b.buckets = buckets
	b.pos = make([]float64, len(buckets))
	b.vel = make([]float64, len(buckets))
}

// barLayout computes a uniform bar width so count bars with fixed gaps fill
// the available width as exactly as possible.
func barLayout(width, count int) (barWidth, gap int) {
	if count < 1 {
		return 0, 0
	}
	gap = barGap
	barWidth = (width - (count-1)*gap) / count
	if barWidth < 1 {
		barWidth = 1
		if count > width {
			gap = 0
		}
	}
	return barWidth, gap
}

// Render clears and repaints the surface. The bottom axisMargin rows stay
// unpainted for the frequency baseline.
func (b *Bars) Render(frame []float64, cfg Config, s *Surface) {
	s.Clear()
	if len(b.buckets) == 0 {
		return
	}

	width, height := s.Size()
	usable := height - axisMargin
	if usable < 1 {
		usable = 1
	}
	barWidth, gap := barLayout(width, len(b.buckets))

	for i, bkt := range b.buckets {
		sum := 0.0
		count := 0
		for bin := bkt.Start; bin < bkt.End && bin < len(frame); bin++ {
			sum += frame[bin]
			count++
		}
		avg := cfg.MinDb
		if count > 0 {
			avg = sum / float64(count)
		}

		target := dsp.Compress(dsp.Intensity(avg, cfg.MinDb, cfg.MaxDb), dsp.BarGamma)
		b.pos[i], b.vel[i] = b.spring.Update(b.pos[i], b.vel[i], target)
		amp := b.pos[i]
		if amp < 0 {
			amp = 0
		}
		if amp > 1 {
			amp = 1
		}

		barH := int(math.Round(amp * float64(usable)))
		if barH < 1 {
			barH = 1
		}
		color := heatRGB(amp)
		x0 := i * (barWidth + gap)
		for x := x0; x < x0+barWidth && x < width; x++ {
			for y := usable - barH; y < usable; y++ {
				s.Set(x, y, color)
			}
		}
	}
}
