package analyzer

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/dsp/fourier"
)

// dbFloor is reported for bins with no measurable energy, keeping the
// output finite instead of -Inf.
const dbFloor = -150.0

// Config controls one analysis session.
type Config struct {
	FrameSize  int     // FFT length, power of two
	Smoothing  float64 // [0,1], 0 = no smoothing across frames
	SampleRate int
}

func (c Config) validate() error {
	if c.FrameSize < 32 || c.FrameSize&(c.FrameSize-1) != 0 {
		return fmt.Errorf("frame size %d: must be a power of two >= 32", c.FrameSize)
	}
	if c.Smoothing < 0 || c.Smoothing > 1 {
		return fmt.Errorf("smoothing %v: must be in [0,1]", c.Smoothing)
	}
	if c.SampleRate <= 0 {
		return fmt.Errorf("sample rate %d: must be positive", c.SampleRate)
	}
	return nil
}

// Analyzer turns raw PCM into per-bin magnitudes in decibels: mono mix,
// Hann window, FFT, then exponential smoothing of the linear magnitudes
// before conversion to dB. All buffers are pre-allocated; Process does not
// allocate.
type Analyzer struct {
	cfg        Config
	fft        *fourier.FFT
	window     []float64
	input      []float64
	coeffs     []complex128
	smoothed   []float64 // linear magnitudes carried between frames
	frame      []float64 // dB output, one value per bin
	primed     bool
	generation uint64
}

// New creates an Analyzer for the given configuration.
func New(cfg Config) (*Analyzer, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	a := &Analyzer{cfg: cfg}
	a.alloc()
	return a, nil
}

func (a *Analyzer) alloc() {
	n := a.cfg.FrameSize
	a.fft = fourier.NewFFT(n)
	a.window = make([]float64, n)
	for i := 0; i < n; i++ {
		a.window[i] = 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n-1)))
	}
	a.input = make([]float64, n)
	a.coeffs = make([]complex128, n/2+1)
	a.smoothed = make([]float64, n/2)
	a.frame = make([]float64, n/2)
	a.primed = false
}

// Bins returns the number of frequency bins per frame (FrameSize/2).
func (a *Analyzer) Bins() int { return a.cfg.FrameSize / 2 }

// SampleRate returns the configured input sample rate.
func (a *Analyzer) SampleRate() int { return a.cfg.SampleRate }

// Generation increments on every reconfiguration so downstream caches keyed
// on analyzer geometry know to invalidate.
func (a *Analyzer) Generation() uint64 { return a.generation }

// Reconfigure replaces the analysis parameters and resets smoothing state.
func (a *Analyzer) Reconfigure(cfg Config) error {
	if err := cfg.validate(); err != nil {
		return err
	}
	a.cfg = cfg
	a.alloc()
	a.generation++
	return nil
}

// SetSmoothing adjusts the smoothing factor without touching geometry.
func (a *Analyzer) SetSmoothing(s float64) {
	if s < 0 {
		s = 0
	}
	if s > 1 {
		s = 1
	}
	a.cfg.Smoothing = s
}

// Process consumes interleaved stereo int16 samples and returns one frame of
// per-bin decibel magnitudes. The returned slice is reused across calls; it
// is valid until the next Process call. Short input is zero-padded.
func (a *Analyzer) Process(samples []int16) []float64 {
	n := a.cfg.FrameSize

	for i := 0; i < n; i++ {
		idx := i * 2
		switch {
		case idx+1 < len(samples):
			a.input[i] = float64(int32(samples[idx])+int32(samples[idx+1])) / 65536.0
		case idx < len(samples):
			a.input[i] = float64(samples[idx]) / 32768.0
		default:
			a.input[i] = 0
		}
		a.input[i] *= a.window[i]
	}

	a.fft.Coefficients(a.coeffs, a.input)

	s := a.cfg.Smoothing
	if !a.primed {
		s = 0
		a.primed = true
	}
	norm := 2 / float64(n)
	for i := range a.smoothed {
		re := real(a.coeffs[i])
		im := imag(a.coeffs[i])
		mag := math.Sqrt(re*re+im*im) * norm
		a.smoothed[i] = s*a.smoothed[i] + (1-s)*mag
		if a.smoothed[i] <= 0 {
			a.frame[i] = dbFloor
			continue
		}
		db := 20 * math.Log10(a.smoothed[i])
		if db < dbFloor {
			db = dbFloor
		}
		a.frame[i] = db
	}
	return a.frame
}

// BinFrequency returns the center frequency in Hz of the given bin.
func (a *Analyzer) BinFrequency(bin int) float64 {
	if bin < 0 || bin >= a.Bins() {
		return 0
	}
	return float64(bin) * float64(a.cfg.SampleRate) / float64(a.cfg.FrameSize)
}
