package render

import (
	"strings"
	"testing"
)

func newRunningController(t *testing.T, mode Mode) *Controller {
	t.Helper()
	c := NewController(mode, Config{MinDb: -100, MaxDb: -30, BucketCount: 8}, 30)
	c.Start(40, 12, 44100, 64)
	if !c.Running() {
		t.Fatal("controller not running after Start")
	}
	return c
}

func surfacePainted(s *Surface) bool {
	w, h := s.Size()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if _, on := s.At(x, y); on {
				return true
			}
		}
	}
	return false
}

func TestControllerStartStop(t *testing.T) {
	c := NewController(ModeSpectrogram, Config{MinDb: -100, MaxDb: -30, BucketCount: 8}, 30)
	if c.State() != StateIdle {
		t.Fatal("new controller should be idle")
	}
	c.Tick(flatFrame(64, -40))
	if surfacePainted(c.Surface()) {
		t.Error("idle controller painted on Tick")
	}

	c.Start(40, 12, 44100, 64)
	c.Tick(flatFrame(64, -40))
	if !surfacePainted(c.Surface()) {
		t.Error("running controller did not paint")
	}

	c.Stop()
	before := c.Surface().Lines()
	c.Tick(flatFrame(64, -35))
	after := c.Surface().Lines()
	for i := range before {
		if before[i] != after[i] {
			t.Fatal("stopped controller mutated the surface")
		}
	}
}

func TestControllerModeSwitchClearsSurfaceAndTogglesLegend(t *testing.T) {
	c := newRunningController(t, ModeBars)
	c.Tick(flatFrame(64, -40))
	if !surfacePainted(c.Surface()) {
		t.Fatal("bar tick did not paint")
	}
	if c.LegendVisible() {
		t.Fatal("legend visible in bar mode")
	}

	c.SetMode(ModeSpectrogram)
	if surfacePainted(c.Surface()) {
		t.Error("mode switch left stale pixels")
	}
	if !c.LegendVisible() {
		t.Error("legend hidden in spectrogram mode")
	}

	c.SetMode(ModeBars)
	if c.LegendVisible() {
		t.Error("legend still visible after switching back to bars")
	}
}

func TestControllerModeChangesSurfaceGeometry(t *testing.T) {
	c := newRunningController(t, ModeSpectrogram)
	w, _ := c.Surface().Size()
	if w != 40-legendWidth {
		t.Errorf("spectrogram surface width = %d, want %d", w, 40-legendWidth)
	}

	c.SetMode(ModeBars)
	w, _ = c.Surface().Size()
	if w != 40 {
		t.Errorf("bar surface width = %d, want full 40", w)
	}
}

func TestControllerRestartClearsScrollback(t *testing.T) {
	c := newRunningController(t, ModeSpectrogram)
	for i := 0; i < 5; i++ {
		c.Tick(flatFrame(64, -40))
	}
	if !surfacePainted(c.Surface()) {
		t.Fatal("no paint before restart")
	}

	c.Restart(48000, 64)
	if surfacePainted(c.Surface()) {
		t.Error("restart kept stale scrollback")
	}
	if !c.Running() {
		t.Error("restart left controller idle")
	}
}

func TestControllerAdaptsToNewBinCount(t *testing.T) {
	c := newRunningController(t, ModeBars)
	c.Tick(flatFrame(64, -40))

	// Analyzer reconfigured mid-session: frame size changed.
	c.Tick(flatFrame(256, -40))
	if !surfacePainted(c.Surface()) {
		t.Fatal("no paint after geometry change")
	}

	// The bucket cache must follow the new bin count.
	view := c.View()
	if view == "" {
		t.Fatal("empty view")
	}
}

func TestControllerSelectsRendererForMode(t *testing.T) {
	c := newRunningController(t, ModeSpectrogram)
	if c.active != c.waterfall {
		t.Fatal("spectrogram session not driven by the waterfall renderer")
	}
	c.Tick(flatFrame(64, -40))
	w, _ := c.Surface().Size()
	if _, on := c.Surface().At(w-1, 0); !on {
		t.Error("waterfall tick did not paint the newest column")
	}

	c.SetMode(ModeBars)
	if c.active != c.bars {
		t.Fatal("bar session not driven by the bar renderer")
	}
	c.Tick(flatFrame(64, -40))
	w, h := c.Surface().Size()
	for x := 0; x < w; x++ {
		if _, on := c.Surface().At(x, h-1); on {
			t.Fatalf("bar tick painted the baseline margin at x=%d", x)
		}
	}
}

func TestControllerViewComposition(t *testing.T) {
	c := newRunningController(t, ModeSpectrogram)
	c.Tick(flatFrame(64, -40))
	view := c.View()
	lines := strings.Split(view, "\n")
	if len(lines) != 12 {
		t.Fatalf("spectrogram view has %d lines, want 12", len(lines))
	}
	if !strings.Contains(view, "┤") && !strings.Contains(view, "│") {
		t.Error("spectrogram view missing legend gutter")
	}

	c.SetMode(ModeBars)
	c.Tick(flatFrame(64, -40))
	view = c.View()
	lines = strings.Split(view, "\n")
	if len(lines) != 12 {
		t.Fatalf("bar view has %d lines, want 12", len(lines))
	}
}

func TestControllerSettersRebuildCaches(t *testing.T) {
	c := newRunningController(t, ModeBars)
	c.SetBucketCount(16)
	if got := c.Config().BucketCount; got != 16 {
		t.Errorf("bucket count = %d, want 16", got)
	}
	c.SetDbRange(-80, -20)
	cfg := c.Config()
	if cfg.MinDb != -80 || cfg.MaxDb != -20 {
		t.Errorf("db range = [%v,%v], want [-80,-20]", cfg.MinDb, cfg.MaxDb)
	}
}
