package dsp

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Compression exponents applied after dB normalization. Raw linear dB
// normalization under-represents mid-level signal, so both display paths
// bias the visible range toward louder material.
const (
	WaterfallGamma = 0.5
	BarGamma       = 0.8
)

// Intensity normalizes a decibel value into [0,1] against the configured
// range. Values at or below minDb map to 0, at or above maxDb to 1. A
// degenerate range (maxDb <= minDb) is treated as fully saturated rather
// than propagating NaN.
func Intensity(db, minDb, maxDb float64) float64 {
	span := maxDb - minDb
	if span <= 0 {
		return 1
	}
	return clamp01((db - minDb) / span)
}

// Compress applies a power-law curve to a normalized intensity.
func Compress(v, gamma float64) float64 {
	return math.Pow(clamp01(v), gamma)
}

// HeatColor maps a normalized intensity onto the display gradient: hue runs
// from 260 degrees (quiet, cold) down to 0 (loud, hot) while lightness rises
// from 10% to 60% at full saturation. Both channels move monotonically so
// relative loudness reads consistently across frames.
func HeatColor(v float64) colorful.Color {
	v = clamp01(v)
	hue := 260 * (1 - v)
	lightness := 0.10 + 0.50*v
	return colorful.Hsl(hue, 1, lightness)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
