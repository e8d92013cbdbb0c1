package render

import (
	"fmt"
	"math"
	"strings"

	"wavescope/internal/dsp"
)

// Reference frequencies worth labeling, in Hz. Ticks above Nyquist for the
// active sample rate are skipped.
var tickFrequencies = []float64{100, 200, 500, 1000, 2000, 5000, 10000, 20000}

const (
	// legendWidth is the width of the vertical frequency gutter shown in
	// spectrogram mode.
	legendWidth = 6
	// axisMargin is the number of surface rows reserved for the horizontal
	// baseline in bar mode.
	axisMargin = 1
)

// Axis computes label positions for the fixed reference ticks. It must be
// rebuilt whenever sample rate, bin count, or bucket geometry changes.
type Axis struct {
	sampleRate int
	binCount   int
}

// NewAxis creates an axis for the given analysis geometry.
func NewAxis(sampleRate, binCount int) Axis {
	return Axis{sampleRate: sampleRate, binCount: binCount}
}

// ticks returns the reference frequencies at or below Nyquist.
func (a Axis) ticks() []float64 {
	nyquist := float64(a.sampleRate) / 2
	out := tickFrequencies
	for len(out) > 0 && out[len(out)-1] > nyquist {
		out = out[:len(out)-1]
	}
	return out
}

// tickBin returns the linear bin index closest to freq.
func (a Axis) tickBin(freq float64) int {
	nyquist := float64(a.sampleRate) / 2
	if nyquist <= 0 || a.binCount < 2 {
		return 0
	}
	return int(math.Round(freq / nyquist * float64(a.binCount-1)))
}

// Legend renders the vertical frequency gutter for spectrogram mode: one
// line per surface row, labeled where a reference tick lands.
func (a Axis) Legend(height int) []string {
	labels := make(map[int]string, len(tickFrequencies))
	for _, freq := range a.ticks() {
		row := dsp.BinToPosition(a.tickBin(freq), a.binCount, height)
		if _, taken := labels[row]; taken {
			continue
		}
		labels[row] = formatTick(freq)
	}

	lines := make([]string, height)
	for row := 0; row < height; row++ {
		if label, ok := labels[row]; ok {
			lines[row] = fmt.Sprintf("%*s┤", legendWidth-1, label)
		} else {
			lines[row] = strings.Repeat(" ", legendWidth-1) + "│"
		}
	}
	return lines
}

// Baseline renders the horizontal frequency labels for bar mode, aligned
// under the bucket that contains each tick's bin. A tick whose bin falls
// outside every bucket lands under the last one.
func (a Axis) Baseline(width int, buckets []dsp.Bucket) string {
	if width < 1 || len(buckets) == 0 {
		return ""
	}
	barWidth, gap := barLayout(width, len(buckets))

	line := make([]byte, width)
	for i := range line {
		line[i] = ' '
	}
	lastEnd := -1
	for _, freq := range a.ticks() {
		bin := a.tickBin(freq)
		idx := len(buckets) - 1
		for i, b := range buckets {
			if bin >= b.Start && bin < b.End {
				idx = i
				break
			}
		}
		label := formatTick(freq)
		x := idx * (barWidth + gap)
		if x <= lastEnd {
			continue
		}
		if x+len(label) > width {
			break
		}
		copy(line[x:], label)
		lastEnd = x + len(label)
	}
	return string(line)
}

// formatTick formats a tick frequency, using "k" units from 1 kHz up with
// one decimal only when the value is not a whole number of kilohertz.
func formatTick(hz float64) string {
	if hz < 1000 {
		return fmt.Sprintf("%.0f", hz)
	}
	k := hz / 1000
	if k == math.Trunc(k) {
		return fmt.Sprintf("%.0fk", k)
	}
	return fmt.Sprintf("%.1fk", k)
}
