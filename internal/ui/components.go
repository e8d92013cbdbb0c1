package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
)

func newProgress() progress.Model {
	p := progress.New(progress.WithSolidFill("#5A56E0"), progress.WithoutPercentage())
	p.Full = '━'
	p.Empty = '─'
	return p
}

func progressRatio(elapsed, total float64) float64 {
	var ratio float64
	if total > 0 {
		ratio = elapsed / total
	}
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	return ratio
}

func volumeLabel(vol float64) string {
	return fmt.Sprintf("vol %d%%", int(vol*100))
}

func floorLabel(minDb float64) string {
	return fmt.Sprintf("floor %.0f dB", minDb)
}
