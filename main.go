package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"wavescope/internal/analyzer"
	"wavescope/internal/player"
	"wavescope/internal/queue"
	"wavescope/internal/render"
	"wavescope/internal/ui"
)

func main() {
	fftSize := flag.Int("fft", 2048, "FFT frame size (power of two)")
	smoothing := flag.Float64("smoothing", 0.8, "temporal smoothing factor, 0 to 1")
	minDb := flag.Float64("min-db", -100, "dB mapped to zero intensity")
	maxDb := flag.Float64("max-db", -30, "dB mapped to full intensity")
	buckets := flag.Int("buckets", 48, "frequency buckets in bar mode")
	modeName := flag.String("mode", "spectrogram", "initial mode: spectrogram or bars")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: wavescope [flags] <file or directory>\n\nflags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	if *maxDb <= *minDb {
		fmt.Fprintf(os.Stderr, "Error: -max-db must be above -min-db\n")
		os.Exit(2)
	}

	mode := render.ModeSpectrogram
	switch *modeName {
	case "spectrogram":
	case "bars":
		mode = render.ModeBars
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", *modeName)
		os.Exit(2)
	}

	tracks, startIdx, err := collectTracks(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	q := queue.New(tracks)
	q.SetCurrentIndex(startIdx)

	p, err := player.New(q.Current().Path, *fftSize*2)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating player: %v\n", err)
		os.Exit(1)
	}
	defer p.Close()

	acfg := analyzer.Config{
		FrameSize:  *fftSize,
		Smoothing:  *smoothing,
		SampleRate: p.SampleRate(),
	}
	an, err := analyzer.New(acfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctrl := render.NewController(mode, render.Config{
		MinDb:       *minDb,
		MaxDb:       *maxDb,
		BucketCount: *buckets,
	}, ui.FPS)

	if os.Getenv("WAVESCOPE_DEBUG") != "" {
		f, err := tea.LogToFile("wavescope.log", "debug")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
	}

	model := ui.New(p, q, an, ctrl, acfg)
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// collectTracks resolves the argument to a playback queue. A directory yields
// every supported file in it; a file yields its directory's supported files
// with the given file as the starting track.
func collectTracks(arg string) ([]queue.Track, int, error) {
	info, err := os.Stat(arg)
	if err != nil {
		return nil, 0, err
	}

	absPath, err := filepath.Abs(arg)
	if err != nil {
		return nil, 0, err
	}

	dir := absPath
	if !info.IsDir() {
		ext := strings.ToLower(filepath.Ext(absPath))
		if !player.IsSupportedExt(ext) {
			return nil, 0, fmt.Errorf("unsupported format %s (supported: %s)", ext, player.SupportedExtsList())
		}
		dir = filepath.Dir(absPath)
	}

	files := scanMediaFiles(dir)
	if info.IsDir() {
		if len(files) == 0 {
			return nil, 0, fmt.Errorf("no supported files in %s", arg)
		}
	} else if len(files) < 2 {
		// Single file with no playable siblings: a one-track queue.
		files = []string{absPath}
	}

	tracks := make([]queue.Track, len(files))
	startIdx := 0
	for i, f := range files {
		tracks[i] = queue.Track{
			Title: strings.TrimSuffix(filepath.Base(f), filepath.Ext(f)),
			Path:  f,
		}
		if f == absPath {
			startIdx = i
		}
	}
	return tracks, startIdx, nil
}

// scanMediaFiles returns all supported media files in dir, sorted
// alphabetically (case-insensitive).
func scanMediaFiles(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if player.IsSupportedExt(ext) {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}

	sort.Slice(files, func(i, j int) bool {
		return strings.ToLower(filepath.Base(files[i])) < strings.ToLower(filepath.Base(files[j]))
	})

	return files
}
