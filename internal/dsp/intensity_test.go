package dsp

import (
	"math"
	"testing"
)

func TestIntensityRangeAndEndpoints(t *testing.T) {
	const minDb, maxDb = -100.0, -30.0

	if got := Intensity(-100, minDb, maxDb); got != 0 {
		t.Errorf("Intensity at floor = %v, want 0", got)
	}
	if got := Intensity(-30, minDb, maxDb); got != 1 {
		t.Errorf("Intensity at ceiling = %v, want 1", got)
	}
	if got := Intensity(-200, minDb, maxDb); got != 0 {
		t.Errorf("Intensity below floor = %v, want 0", got)
	}
	if got := Intensity(20, minDb, maxDb); got != 1 {
		t.Errorf("Intensity above ceiling = %v, want 1", got)
	}

	got := Intensity(-65, minDb, maxDb)
	if math.Abs(got-0.5) > 1e-9 {
		t.Errorf("Intensity(-65) = %v, want 0.5", got)
	}
}

func TestIntensityOffCenterValue(t *testing.T) {
	got := Intensity(-62.34, -100, -30)
	if math.Abs(got-0.538) > 1e-3 {
		t.Errorf("Intensity(-62.34) = %v, want ~0.538", got)
	}
}

func TestIntensityMonotonic(t *testing.T) {
	const minDb, maxDb = -90.0, 0.0
	prev := -1.0
	for db := -120.0; db <= 30; db += 0.5 {
		v := Intensity(db, minDb, maxDb)
		if v < 0 || v > 1 {
			t.Fatalf("Intensity(%v) = %v out of [0,1]", db, v)
		}
		if v < prev {
			t.Fatalf("Intensity not monotonic: %v after %v at %v dB", v, prev, db)
		}
		prev = v
	}
}

func TestIntensityDegenerateRangeSaturates(t *testing.T) {
	for _, db := range []float64{-120, -50, 0} {
		if got := Intensity(db, -50, -50); got != 1 {
			t.Errorf("Intensity(%v) with zero-width range = %v, want 1", db, got)
		}
	}
}

func TestCompressStaysNormalized(t *testing.T) {
	for _, gamma := range []float64{WaterfallGamma, BarGamma} {
		if got := Compress(0, gamma); got != 0 {
			t.Errorf("Compress(0, %v) = %v", gamma, got)
		}
		if got := Compress(1, gamma); got != 1 {
			t.Errorf("Compress(1, %v) = %v", gamma, got)
		}
		if lo, hi := Compress(0.25, gamma), Compress(0.75, gamma); lo >= hi {
			t.Errorf("Compress not monotonic for gamma %v: %v >= %v", gamma, lo, hi)
		}
	}
	// Sub-unity exponents lift mid-level signal.
	if got := Compress(0.25, WaterfallGamma); got <= 0.25 {
		t.Errorf("Compress(0.25, sqrt) = %v, want > 0.25", got)
	}
}

func TestHeatColorGradientMonotonic(t *testing.T) {
	c0 := HeatColor(0)
	c1 := HeatColor(1)
	h0, _, l0 := c0.Hsl()
	h1, _, l1 := c1.Hsl()
	if h0 == h1 || l0 == l1 {
		t.Fatalf("gradient endpoints must differ in hue and lightness: h %v/%v l %v/%v", h0, h1, l0, l1)
	}

	prevHue, prevLight := h0, l0
	for v := 0.05; v <= 1.0001; v += 0.05 {
		h, s, l := HeatColor(v).Hsl()
		if h >= prevHue {
			t.Fatalf("hue not strictly decreasing at %v: %v >= %v", v, h, prevHue)
		}
		if l <= prevLight {
			t.Fatalf("lightness not strictly increasing at %v: %v <= %v", v, l, prevLight)
		}
		if math.Abs(s-1) > 1e-6 {
			t.Fatalf("saturation drifted at %v: %v", v, s)
		}
		prevHue, prevLight = h, l
	}
}

func TestHeatColorClampsDomain(t *testing.T) {
	if HeatColor(-2) != HeatColor(0) {
		t.Error("values below 0 should clamp to the quiet end")
	}
	if HeatColor(3) != HeatColor(1) {
		t.Error("values above 1 should clamp to the loud end")
	}
}
