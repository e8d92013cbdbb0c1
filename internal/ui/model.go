package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"wavescope/internal/analyzer"
	"wavescope/internal/player"
	"wavescope/internal/queue"
	"wavescope/internal/render"
	"wavescope/internal/util"
)

// chromeRows is the number of view lines spent on everything that is not the
// visualizer: header, track line, progress, status, help, and their spacing.
const chromeRows = 10

// Model is the Bubbletea model for the wavescope TUI. Each tick it pulls the
// newest window of samples from the player's tap, runs it through the
// analyzer, and hands the frame to the render controller.
type Model struct {
	player   *player.Player
	queue    *queue.Queue
	analyzer *analyzer.Analyzer
	ctrl     *render.Controller
	acfg     analyzer.Config

	metadata player.Metadata
	progress progress.Model
	samples  []int16
	gen      uint64
	elapsed  time.Duration
	duration time.Duration
	volume   float64
	paused   bool

	width    int
	height   int
	quitting bool

	errMsg  string
	errTime time.Time
}

// New creates a Model around an already-playing first track. The tap window
// is twice the FFT frame so a full stereo window is always available.
func New(p *player.Player, q *queue.Queue, an *analyzer.Analyzer, ctrl *render.Controller, acfg analyzer.Config) Model {
	return Model{
		player:   p,
		queue:    q,
		analyzer: an,
		ctrl:     ctrl,
		acfg:     acfg,
		metadata: player.ReadMetadata(q.Current().Path),
		progress: newProgress(),
		samples:  make([]int16, acfg.FrameSize*2),
		gen:      an.Generation(),
		duration: p.Duration(),
		volume:   p.Volume(),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(), checkDone(m.player), tea.SetWindowTitle(windowTitle(m.metadata.Title, false)))
}

func checkDone(p *player.Player) tea.Cmd {
	return func() tea.Msg {
		<-p.Done()
		return playbackEndedMsg{}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if isQuit(msg) {
			m.quitting = true
			m.player.Close()
			return m, tea.Sequence(tea.SetWindowTitle(""), tea.Quit)
		}
		switch msg.String() {
		case " ":
			m.player.TogglePause()
			m.paused = m.player.Paused()
			return m, tea.SetWindowTitle(windowTitle(m.metadata.Title, m.paused))
		case "v", "tab":
			m.ctrl.CycleMode()
		case "left", "h":
			cfg := m.ctrl.Config()
			m.ctrl.SetDbRange(cfg.MinDb-5, cfg.MaxDb)
		case "right", "l":
			cfg := m.ctrl.Config()
			if cfg.MinDb+5 <= cfg.MaxDb-10 {
				m.ctrl.SetDbRange(cfg.MinDb+5, cfg.MaxDb)
			}
		case "up", "k":
			m.player.AdjustVolume(0.05)
			m.volume = m.player.Volume()
		case "down", "j":
			m.player.AdjustVolume(-0.05)
			m.volume = m.player.Volume()
		case "n":
			if m.queue.Advance() {
				return m.loadCurrent()
			}
		case "p":
			if m.queue.Previous() {
				return m.loadCurrent()
			}
		}
		return m, nil

	case tickMsg:
		// A bumped analyzer generation means the frame geometry or stream
		// changed underneath us; restart the session before painting.
		if g := m.analyzer.Generation(); g != m.gen {
			m.gen = g
			m.ctrl.Restart(m.analyzer.SampleRate(), m.analyzer.Bins())
		}
		if m.player != nil {
			m.elapsed = m.player.Position()
			m.paused = m.player.Paused()
			if !m.paused {
				m.player.Tap().RecentInto(m.samples)
				m.ctrl.Tick(m.analyzer.Process(m.samples))
			}
		}
		if m.errMsg != "" && time.Since(m.errTime) > 5*time.Second {
			m.errMsg = ""
		}
		return m, tickCmd()

	case playbackEndedMsg:
		if m.queue.Advance() {
			return m.loadCurrent()
		}
		m.elapsed = m.duration
		m.quitting = true
		m.player.Close()
		return m, tea.Sequence(tea.SetWindowTitle(""), tea.Quit)

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		vw, vh := vizSize(msg.Width, msg.Height)
		if m.ctrl.Running() {
			m.ctrl.Resize(vw, vh)
		} else if m.player != nil {
			m.ctrl.Start(vw, vh, m.player.SampleRate(), m.analyzer.Bins())
		}
		return m, nil
	}

	return m, nil
}

// loadCurrent tears down the active player and starts the queue's current
// track, restarting the visualizer session for the new stream. Unplayable
// files are skipped forward.
func (m Model) loadCurrent() (tea.Model, tea.Cmd) {
	tr := m.queue.Current()
	if tr == nil {
		m.quitting = true
		return m, tea.Quit
	}
	if m.player != nil {
		m.player.Close()
	}

	p, err := player.New(tr.Path, m.acfg.FrameSize*2)
	if err != nil {
		m.player = nil
		m.errMsg = fmt.Sprintf("cannot play %s: %v", tr.Title, err)
		m.errTime = time.Now()
		if m.queue.Advance() {
			return m.loadCurrent()
		}
		m.quitting = true
		return m, tea.Quit
	}

	p.SetVolume(m.volume)
	m.player = p
	m.metadata = player.ReadMetadata(tr.Path)
	m.duration = p.Duration()
	m.elapsed = 0
	m.paused = false

	// Reconfiguring resets the smoothing state for the new stream and bumps
	// the analyzer generation; the next tick notices and restarts the
	// render session.
	m.acfg.SampleRate = p.SampleRate()
	if err := m.analyzer.Reconfigure(m.acfg); err != nil {
		m.errMsg = err.Error()
		m.errTime = time.Now()
		m.ctrl.Restart(p.SampleRate(), m.analyzer.Bins())
	}

	return m, tea.Batch(checkDone(p), tea.SetWindowTitle(windowTitle(m.metadata.Title, false)))
}

// vizSize maps the terminal geometry to the visualizer's view rectangle,
// leaving a two-column indent on each side.
func vizSize(width, height int) (int, int) {
	w := width - 4
	h := height - chromeRows
	if w < 10 {
		w = 10
	}
	if h < 4 {
		h = 4
	}
	return w, h
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	w := m.width
	if w < 30 {
		w = 50
	}

	header := headerStyle.Render("wavescope")

	trackLine := titleStyle.Render(m.metadata.Title)
	if m.metadata.Artist != "" {
		trackLine += artistStyle.Render(" — " + m.metadata.Artist)
	}
	if m.queue.Len() > 1 {
		trackLine += timeStyle.Render(fmt.Sprintf("  [%d/%d]", m.queue.CurrentIndex()+1, m.queue.Len()))
	}
	if next := m.queue.Track(m.queue.CurrentIndex() + 1); next != nil {
		trackLine += helpStyle.Render("  next: " + next.Title)
	}

	viz := ""
	if m.ctrl.Running() {
		viz = indentLines(m.ctrl.View())
	}

	elapsedStr := util.FormatDuration(m.elapsed)
	durationStr := util.FormatDuration(m.duration)
	barWidth := w - len(elapsedStr) - len(durationStr) - 8
	if barWidth < 10 {
		barWidth = 10
	}
	m.progress.Width = barWidth
	bar := m.progress.ViewAs(progressRatio(m.elapsed.Seconds(), m.duration.Seconds()))
	progressLine := fmt.Sprintf("%s %s %s", timeStyle.Render(elapsedStr), bar, timeStyle.Render(durationStr))

	statusIcon, statusText := "▶", "playing"
	if m.paused {
		statusIcon, statusText = "❚❚", "paused"
	}
	leftText := fmt.Sprintf("%s  %s  %s", statusIcon, statusText, m.ctrl.Mode())
	rightText := fmt.Sprintf("%s  %s", floorLabel(m.ctrl.Config().MinDb), volumeLabel(m.volume))
	gap := w - len(leftText) - len(rightText) - 4
	if gap < 2 {
		gap = 2
	}
	statusLine := statusStyle.Render(leftText) + spaces(gap) + statusStyle.Render(rightText)

	help := helpStyle.Render(helpText(m.queue.Len() > 1))

	lines := "\n"
	lines += "  " + header + "\n"
	lines += "\n"
	lines += "  " + trackLine + "\n"
	lines += "\n"
	lines += viz + "\n"
	lines += "\n"
	lines += "  " + progressLine + "\n"
	lines += "  " + statusLine + "\n"
	if m.errMsg != "" {
		lines += "  " + helpStyle.Render(m.errMsg) + "\n"
	}
	lines += "\n"
	lines += "  " + help + "\n"

	return lines
}

func windowTitle(title string, paused bool) string {
	if paused {
		return "⏸ " + title + " — wavescope"
	}
	return "▶ " + title + " — wavescope"
}

func indentLines(block string) string {
	return "  " + strings.ReplaceAll(block, "\n", "\n  ")
}

func spaces(n int) string {
	if n < 0 {
		n = 0
	}
	s := ""
	for i := 0; i < n; i++ {
		s += " "
	}
	return s
}
