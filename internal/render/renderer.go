package render

// Mode selects the active visualization.
type Mode int

const (
	ModeSpectrogram Mode = iota
	ModeBars
)

func (m Mode) String() string {
	switch m {
	case ModeSpectrogram:
		return "spectrogram"
	case ModeBars:
		return "bars"
	default:
		return "unknown"
	}
}

// Next cycles to the following mode.
func (m Mode) Next() Mode {
	if m == ModeSpectrogram {
		return ModeBars
	}
	return ModeSpectrogram
}

// Config is the per-tick render configuration, owned by the Controller and
// read by every renderer.
type Config struct {
	MinDb       float64
	MaxDb       float64
	BucketCount int
}

// Renderer consumes one frame of per-bin decibel magnitudes and paints the
// surface. Implementations must leave the surface fully consistent when they
// return; a tick is never observed half-drawn.
type Renderer interface {
	Render(frame []float64, cfg Config, s *Surface)
}
