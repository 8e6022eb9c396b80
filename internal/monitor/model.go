package monitor

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/rileyhilliard/sysdash/internal/analysis"
	"github.com/rileyhilliard/sysdash/internal/errors"
	"github.com/rileyhilliard/sysdash/internal/history"
	"github.com/rileyhilliard/sysdash/internal/logger"
	"github.com/rileyhilliard/sysdash/internal/metrics"
	"github.com/rileyhilliard/sysdash/internal/poller"
)

// Status is the label shown in the dashboard header.
type Status int

const (
	StatusMonitoring Status = iota
	StatusPaused
	StatusOptimizing
	StatusStopped
)

// String returns the human-readable status label.
func (s Status) String() string {
	switch s {
	case StatusMonitoring:
		return "Monitoring"
	case StatusPaused:
		return "Paused"
	case StatusOptimizing:
		return "Optimizing"
	case StatusStopped:
		return "Stopped"
	default:
		return "Unknown"
	}
}

// LayoutMode represents the responsive layout mode based on terminal size.
type LayoutMode int

const (
	// LayoutMinimal is for terminals < 80 columns: readouts and one-row sparklines
	LayoutMinimal LayoutMode = iota
	// LayoutStacked is for terminals 80-120 columns: charts above the scatter
	LayoutStacked
	// LayoutSplit is for terminals 120+ columns: charts left, scatter right
	LayoutSplit
)

// Width breakpoints for layout modes
const (
	BreakpointStacked = 80
	BreakpointSplit   = 120
)

// defaultWidth is assumed until the first WindowSizeMsg arrives.
const defaultWidth = 100

type overlay int

const (
	overlayNone overlay = iota
	overlayHelp
	overlayRecommendations
)

// Options configures a dashboard Model.
type Options struct {
	Controls  *poller.Controls
	Updates   <-chan poller.Update
	Hostname  string
	Capacity  int
	Interval  time.Duration
	Recommend analysis.RecommendConfig
	Mouse     bool
	Logger    logger.Logger
}

// Model is the Bubble Tea model for the dashboard. It is the only reader
// of the poller's update channel and only ever holds the latest snapshot.
type Model struct {
	controls  *poller.Controls
	updates   <-chan poller.Update
	keys      keyMap
	help      help.Model
	zones     *zone.Manager
	log       logger.Logger
	hostname  string
	capacity  int
	interval  time.Duration
	recommend analysis.RecommendConfig

	samples    []metrics.Sample
	assignment *analysis.Assignment
	rates      metrics.Rates
	seq        uint64
	lastUpdate time.Time

	paused       bool
	showClusters bool
	optimizing   bool
	stopped      bool
	fault        string

	overlay         overlay
	recommendations []string

	width    int
	height   int
	quitting bool
}

// updateMsg carries one poller update into the UI loop.
type updateMsg poller.Update

// pollerClosedMsg signals that the poller closed its update channel.
type pollerClosedMsg struct{}

// NewModel creates a dashboard bound to a poller's controls and update stream.
func NewModel(opts Options) Model {
	if opts.Controls == nil {
		opts.Controls = poller.NewControls(true)
	}
	if opts.Capacity <= 0 {
		opts.Capacity = history.DefaultCapacity
	}
	if opts.Interval <= 0 {
		opts.Interval = poller.DefaultInterval
	}
	if opts.Recommend == (analysis.RecommendConfig{}) {
		opts.Recommend = analysis.DefaultRecommendConfig()
	}
	if opts.Logger == nil {
		opts.Logger = logger.Noop()
	}

	m := Model{
		controls:     opts.Controls,
		updates:      opts.Updates,
		keys:         keys,
		help:         help.New(),
		log:          opts.Logger,
		hostname:     opts.Hostname,
		capacity:     opts.Capacity,
		interval:     opts.Interval,
		recommend:    opts.Recommend,
		paused:       !opts.Controls.Active(),
		showClusters: opts.Controls.ShowClusters(),
	}
	if opts.Mouse {
		m.zones = zone.New()
	}
	return m
}

// Init starts draining the poller's update channel.
func (m Model) Init() tea.Cmd {
	return m.waitForUpdate()
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if handled, cmd := m.HandleKeyMsg(msg); handled {
			return m, cmd
		}

	case tea.MouseMsg:
		return m, m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case updateMsg:
		m.applyUpdate(poller.Update(msg))
		return m, m.waitForUpdate()

	case pollerClosedMsg:
		m.updates = nil
		if !m.quitting {
			m.stopped = true
		}
	}

	return m, nil
}

// View renders the dashboard. It reads only model state, so repeated calls
// on the same model produce the same output.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	out := m.renderDashboard()
	switch m.overlay {
	case overlayHelp:
		out = m.renderHelpOverlay()
	case overlayRecommendations:
		out = m.renderRecommendationsOverlay()
	}
	if m.zones != nil {
		out = m.zones.Scan(out)
	}
	return out
}

// Close releases the mouse zone tracker.
func (m Model) Close() {
	if m.zones != nil {
		m.zones.Close()
	}
}

// waitForUpdate blocks on the next poller update.
func (m Model) waitForUpdate() tea.Cmd {
	ch := m.updates
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		u, ok := <-ch
		if !ok {
			return pollerClosedMsg{}
		}
		return updateMsg(u)
	}
}

func (m *Model) applyUpdate(u poller.Update) {
	if u.Err != nil {
		m.stopped = true
		m.optimizing = false
		m.fault = errors.Summary(u.Err)
		m.log.Error("monitoring stopped: %v", u.Err)
		return
	}

	m.seq = u.Seq
	m.samples = u.Snapshot
	m.assignment = u.Assignment
	m.rates = metrics.LatestRates(u.Snapshot)
	m.lastUpdate = u.Sample.Timestamp
	if m.overlay == overlayRecommendations {
		m.recommendations = analysis.Recommend(m.samples, m.recommend)
	}
}

func (m *Model) togglePause() {
	active := m.controls.Toggle()
	m.paused = !active
	if m.paused {
		m.optimizing = false
	}
	m.log.Debug("monitoring active=%t", active)
}

func (m *Model) toggleClusters() {
	m.showClusters = m.controls.ToggleClusters()
	if !m.showClusters {
		m.assignment = nil
	}
	m.log.Debug("show clusters=%t", m.showClusters)
}

func (m *Model) startOptimization() {
	if m.stopped {
		return
	}
	m.optimizing = true
	m.log.Info("optimization requested")
}

func (m *Model) toggleOverlay(o overlay) {
	if m.overlay == o {
		m.overlay = overlayNone
		return
	}
	m.overlay = o
	if o == overlayRecommendations {
		m.recommendations = analysis.Recommend(m.samples, m.recommend)
	}
}

// Status returns the current status label.
func (m Model) Status() Status {
	switch {
	case m.stopped:
		return StatusStopped
	case m.paused:
		return StatusPaused
	case m.optimizing:
		return StatusOptimizing
	default:
		return StatusMonitoring
	}
}

// Samples returns the latest history snapshot.
func (m Model) Samples() []metrics.Sample {
	return m.samples
}

// Recommendations returns the list shown in the recommendations overlay.
func (m Model) Recommendations() []string {
	return m.recommendations
}

// Fault returns the message of the fault that stopped monitoring, if any.
func (m Model) Fault() string {
	return m.fault
}

// LayoutMode returns the current layout mode based on terminal width.
func (m Model) LayoutMode() LayoutMode {
	switch w := m.viewWidth(); {
	case w >= BreakpointSplit:
		return LayoutSplit
	case w >= BreakpointStacked:
		return LayoutStacked
	default:
		return LayoutMinimal
	}
}

func (m Model) viewWidth() int {
	if m.width <= 0 {
		return defaultWidth
	}
	return m.width
}
