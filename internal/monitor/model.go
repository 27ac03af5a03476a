package monitor

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rileyhilliard/sysmon/internal/config"
	"github.com/rileyhilliard/sysmon/internal/history"
	"github.com/rileyhilliard/sysmon/internal/ui"
)

// CollectTimeout bounds one whole collection cycle.
const CollectTimeout = 15 * time.Second

// DefaultWidth is the frame width used before the terminal reports its size.
const DefaultWidth = 100

// Rows reserved around the scrolling viewport.
const (
	headerHeight = 2 // title line + blank
	footerHeight = 2 // blank + hints
)

// Model is the Bubble Tea model for the dashboard.
type Model struct {
	collector *Collector
	store     *history.Store
	cfg       *config.Config
	palette   Palette

	width    int
	height   int
	viewport viewport.Model
	ready    bool
	activity ui.Activity

	snapshot   *Snapshot
	lastUpdate time.Time

	// tickID identifies the live tick chain. Ticks carrying an older id are
	// dropped, so a manual refresh never leaves two chains running.
	tickID     int
	collecting bool

	quitting bool
	showHelp bool

	reloads <-chan *config.Config
}

// tickMsg signals that the refresh interval has elapsed.
type tickMsg struct {
	id int
}

// snapshotMsg carries the result of one collection cycle.
type snapshotMsg struct {
	snap *Snapshot
}

// configMsg carries a reloaded, validated configuration.
type configMsg struct {
	cfg *config.Config
}

// NewModel creates a dashboard reading from collector and recording into a
// fresh history store sized by cfg.
func NewModel(collector *Collector, cfg *config.Config) Model {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	store := history.NewStore(cfg.MaxHistoryPoints,
		history.SeriesCPU, history.SeriesGPU, history.SeriesCPUUsage, history.SeriesMemory)

	return Model{
		collector: collector,
		store:     store,
		cfg:       cfg,
		palette:   PaletteFromConfig(cfg.Colors),
		activity:  ui.NewActivity("collecting"),
	}
}

// WithConfigUpdates makes the dashboard apply every configuration received
// on ch. The sender owns the channel.
func (m Model) WithConfigUpdates(ch <-chan *config.Config) Model {
	m.reloads = ch
	return m
}

// History exposes the store backing the graphs.
func (m Model) History() *history.Store {
	return m.store
}

// Config returns the configuration currently in effect.
func (m Model) Config() *config.Config {
	return m.cfg
}

// Snapshot returns the most recent snapshot, or nil before the first cycle.
func (m Model) Snapshot() *Snapshot {
	return m.snapshot
}

// Init starts the first collection and, when configured, listens for reloads.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.startCollect(), m.waitForConfig())
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		handled, cmd := m.HandleKeyMsg(msg)
		if handled {
			return m, cmd
		}
		var vpCmd tea.Cmd
		m.viewport, vpCmd = m.viewport.Update(msg)
		return m, vpCmd

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)

	case tickMsg:
		if msg.id != m.tickID || m.collecting {
			return m, nil
		}
		return m, m.startCollect()

	case snapshotMsg:
		m.ApplySnapshot(msg.snap)
		m.collecting = false
		m.activity.Stop()
		m.refreshViewport()
		return m, m.tickCmd()

	case configMsg:
		m.ApplyConfig(msg.cfg)
		m.refreshViewport()
		return m, m.waitForConfig()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.activity, cmd = m.activity.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the dashboard.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.showHelp {
		return m.renderHelpOverlay()
	}
	if !m.ready {
		return m.Frame()
	}
	return m.renderHeader() + "\n\n" + m.viewport.View() + "\n\n" + m.renderFooter()
}

// SetSize records the terminal dimensions and sizes the viewport to the
// rows left between header and footer.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height

	vpHeight := height - headerHeight - footerHeight
	if vpHeight < 1 {
		vpHeight = 1
	}

	if !m.ready {
		m.viewport = viewport.New(width, vpHeight)
		m.viewport.YPosition = headerHeight
		m.ready = true
	} else {
		m.viewport.Width = width
		m.viewport.Height = vpHeight
	}
	m.refreshViewport()
}

// ApplySnapshot records a collection result: temperatures feed the graph
// series, usage percentages feed the sparklines. Missing temperatures are
// skipped by the store.
func (m *Model) ApplySnapshot(snap *Snapshot) {
	if snap == nil {
		return
	}
	ts := snap.Timestamp
	m.store.Append(history.SeriesCPU, ts, snap.CPU.Temperature)
	m.store.Append(history.SeriesGPU, ts, snap.GPUTemperature)
	m.store.AppendValue(history.SeriesCPUUsage, ts, snap.CPU.Percent)
	m.store.AppendValue(history.SeriesMemory, ts, snap.Memory.Percent)

	m.snapshot = snap
	m.lastUpdate = ts
}

// ApplyConfig switches to cfg: history capacity, colors and collection
// options take effect immediately, the refresh rate on the next tick.
func (m *Model) ApplyConfig(cfg *config.Config) {
	if cfg == nil {
		return
	}
	m.cfg = cfg
	m.palette = PaletteFromConfig(cfg.Colors)
	m.store.Resize(cfg.MaxHistoryPoints)
	if m.collector != nil {
		m.collector.SetOptions(OptionsFromConfig(cfg))
	}
}

// ClearHistory drops every recorded sample.
func (m *Model) ClearHistory() {
	m.store.ClearAll()
	m.refreshViewport()
}

// refresh starts a collection now and invalidates the pending tick.
func (m *Model) refresh() tea.Cmd {
	if m.collecting {
		return nil
	}
	m.tickID++
	return m.startCollect()
}

func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderBody())
}

// startCollect runs one collection cycle on a goroutine.
func (m *Model) startCollect() tea.Cmd {
	if m.collector == nil {
		return nil
	}
	m.collecting = true
	collector := m.collector
	return tea.Batch(m.activity.Start(), func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), CollectTimeout)
		defer cancel()
		return snapshotMsg{snap: collector.Collect(ctx)}
	})
}

// tickCmd schedules the next cycle after the configured refresh interval.
func (m Model) tickCmd() tea.Cmd {
	id := m.tickID
	return tea.Tick(m.cfg.RefreshInterval(), func(time.Time) tea.Msg {
		return tickMsg{id: id}
	})
}

// waitForConfig blocks on the reload channel; nil when reloads are off.
func (m Model) waitForConfig() tea.Cmd {
	ch := m.reloads
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		cfg, ok := <-ch
		if !ok {
			return nil
		}
		return configMsg{cfg: cfg}
	}
}

// frameWidth is the width panels are laid out to.
func (m Model) frameWidth() int {
	if m.width <= 0 {
		return DefaultWidth
	}
	return m.width
}
