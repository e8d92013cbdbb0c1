package render

import "wavescope/internal/dsp"

// Waterfall scrolls the surface one column per tick and paints the newest
// frame at the right edge, one pixel per bin. Row positions are log-spaced
// and cached per (binCount, height).
type Waterfall struct {
	rows      []int // bin index -> surface row
	rowsBins  int
	rowsCount int       // surface height the cache was built for
	scratch   []float64 // per-row hottest intensity for the current tick
}

var _ Renderer = (*Waterfall)(nil)

// NewWaterfall creates a waterfall renderer.
func NewWaterfall() *Waterfall {
	return &Waterfall{}
}

func (w *Waterfall) positions(binCount, height int) []int {
	if w.rowsBins == binCount && w.rowsCount == height && w.rows != nil {
		return w.rows
	}
	rows := make([]int, binCount)
	for bin := 0; bin < binCount; bin++ {
		rows[bin] = dsp.BinToPosition(bin, binCount, height)
	}
	w.rows, w.rowsBins, w.rowsCount = rows, binCount, height
	return rows
}

// Render shifts then paints. The two steps happen back to back within the
// tick, so no caller ever sees a shifted-but-unpainted surface.
func (w *Waterfall) Render(frame []float64, cfg Config, s *Surface) {
	width, height := s.Size()
	rows := w.positions(len(frame), height)

	// Several bins can land on one row; keep the hottest so narrow peaks
	// survive the vertical squeeze.
	if len(w.scratch) != height {
		w.scratch = make([]float64, height)
	}
	for i := range w.scratch {
		w.scratch[i] = -1
	}
	for bin, db := range frame {
		v := dsp.Intensity(db, cfg.MinDb, cfg.MaxDb)
		if r := rows[bin]; v > w.scratch[r] {
			w.scratch[r] = v
		}
	}

	s.ShiftLeft()
	x := width - 1
	for row, v := range w.scratch {
		if v < 0 {
			continue
		}
		s.Set(x, row, heatRGB(dsp.Compress(v, dsp.WaterfallGamma)))
	}
}
