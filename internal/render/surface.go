package render

import "strings"

// cell is one pixel of a Surface. An unpainted cell renders as background.
type cell struct {
	color RGB
	on    bool
}

// Surface is a persistent grid of colored pixels backing one visualization.
// The waterfall treats it as a scroll buffer: ShiftLeft discards the oldest
// column and vacates the newest; the bar view clears and repaints it whole.
// Only the owning controller mutates it, from tick execution.
type Surface struct {
	w, h  int
	cells []cell
}

// NewSurface creates a cleared surface of the given dimensions. Width and
// height are clamped to at least 1.
func NewSurface(w, h int) *Surface {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return &Surface{w: w, h: h, cells: make([]cell, w*h)}
}

// Size returns the surface dimensions.
func (s *Surface) Size() (w, h int) { return s.w, s.h }

// Clear resets every pixel to background.
func (s *Surface) Clear() {
	for i := range s.cells {
		s.cells[i] = cell{}
	}
}

// Resize reallocates the surface to new dimensions, cleared.
func (s *Surface) Resize(w, h int) {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	s.w, s.h = w, h
	s.cells = make([]cell, w*h)
}

// ShiftLeft scrolls the whole surface one column toward the older edge,
// discarding column 0 and leaving the rightmost column unpainted.
func (s *Surface) ShiftLeft() {
	for y := 0; y < s.h; y++ {
		row := s.cells[y*s.w : (y+1)*s.w]
		copy(row, row[1:])
		row[s.w-1] = cell{}
	}
}

// Set paints one pixel. Out-of-range coordinates are ignored.
func (s *Surface) Set(x, y int, c RGB) {
	if x < 0 || x >= s.w || y < 0 || y >= s.h {
		return
	}
	s.cells[y*s.w+x] = cell{color: c, on: true}
}

// At reports the pixel at (x, y) and whether it is painted.
func (s *Surface) At(x, y int) (RGB, bool) {
	if x < 0 || x >= s.w || y < 0 || y >= s.h {
		return RGB{}, false
	}
	c := s.cells[y*s.w+x]
	return c.color, c.on
}

// Lines renders the surface as one string per row, coloring runs of painted
// cells with the minimal number of escape sequences.
func (s *Surface) Lines() []string {
	lines := make([]string, s.h)
	for y := 0; y < s.h; y++ {
		var sb strings.Builder
		state := newANSIState()
		for x := 0; x < s.w; x++ {
			c := s.cells[y*s.w+x]
			if !c.on {
				state.reset(&sb)
				sb.WriteByte(' ')
				continue
			}
			state.set(&sb, c.color)
			sb.WriteRune('█')
		}
		state.reset(&sb)
		lines[y] = sb.String()
	}
	return lines
}
