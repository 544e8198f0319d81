// Package tui implements the interactive terminal viewer for saved Wi-Fi
// profiles: stats, search/filter/sort controls, per-network cards with
// reveal and copy, and exports.
package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"wifiview/export"
	"wifiview/i18n"
	"wifiview/logging"
	"wifiview/profile"
	"wifiview/store"
)

const (
	defaultExportDelay  = 500 * time.Millisecond
	defaultNotifyAfter  = 3 * time.Second
	searchMaxLength     = 100
	helpBarMaxWidth     = 80
	helpBarWidthPercent = 0.80
	cardListMaxWidth    = 100
	minListHeight       = 5
)

// =============================================================================
// View States
// =============================================================================

type viewState int

const (
	viewLoading viewState = iota
	viewList
	viewError
	viewAbout
)

func (v viewState) String() string {
	names := []string{"Loading", "List", "Error", "About"}
	if int(v) < len(names) {
		return names[v]
	}
	return fmt.Sprintf("Unknown(%d)", v)
}

// =============================================================================
// Messages
// =============================================================================

type profilesLoadedMsg struct {
	snapshot store.Snapshot
	err      error
}

type copyResultMsg struct {
	name string
	err  error
}

type exportReadyMsg struct {
	format  export.Format
	records []profile.Record
}

type exportDoneMsg struct {
	result export.Result
	err    error
}

type dismissNotificationMsg struct {
	seq int
}

type notifyKind int

const (
	notifyInfo notifyKind = iota
	notifySuccess
	notifyWarning
	notifyError
)

type notification struct {
	text string
	kind notifyKind
	seq  int
}

// =============================================================================
// Model
// =============================================================================

// Options configures a Model. Zero durations fall back to the defaults.
type Options struct {
	Context     context.Context
	Store       *store.Store
	Exporter    export.Exporter
	Clipboard   Clipboard
	ExportDelay time.Duration
	NotifyAfter time.Duration
	Version     string
	Now         func() time.Time
}

// Model is the bubbletea model of the viewer.
type Model struct {
	state viewState

	ctx    context.Context
	cancel context.CancelFunc

	store       *store.Store
	exporter    export.Exporter
	clipboard   Clipboard
	exportDelay time.Duration
	notifyAfter time.Duration
	version     string
	now         func() time.Time

	// UI components
	cards       list.Model
	searchInput textinput.Model
	spinner     spinner.Model
	keys        keyMap
	help        help.Model

	// Data
	records  []profile.Record
	stats    profile.Stats
	visible  []profile.Record
	query    profile.Query
	engine   *profile.Engine
	revealed map[string]bool
	loadErr  error

	// UI state flags
	searching bool
	exporting bool
	note      notification
	noteSeq   int

	// Dimensions
	width  int
	height int
}

// New builds the model. The first load starts with Init.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)

	m := Model{
		state:       viewLoading,
		ctx:         ctx,
		cancel:      cancel,
		store:       opts.Store,
		exporter:    opts.Exporter,
		clipboard:   opts.Clipboard,
		exportDelay: opts.ExportDelay,
		notifyAfter: opts.NotifyAfter,
		version:     opts.Version,
		now:         opts.Now,
		keys:        newKeyMap(),
		engine:      profile.NewEngine(i18n.Tag()),
		revealed:    make(map[string]bool),
	}
	if m.clipboard == nil {
		m.clipboard = SystemClipboard{}
	}
	if m.exportDelay <= 0 {
		m.exportDelay = defaultExportDelay
	}
	if m.notifyAfter <= 0 {
		m.notifyAfter = defaultNotifyAfter
	}
	if m.now == nil {
		m.now = time.Now
	}

	m.cards = list.New([]list.Item{}, cardDelegate{revealed: m.revealed, now: m.now}, 0, 0)
	m.cards.Title = i18n.T("list.title")
	m.cards.Styles.Title = listTitleStyle
	m.cards.SetShowTitle(false)
	m.cards.SetShowStatusBar(false)
	m.cards.SetShowHelp(false)
	m.cards.SetFilteringEnabled(false)
	m.cards.DisableQuitKeybindings()

	m.searchInput = textinput.New()
	m.searchInput.Placeholder = i18n.T("search.placeholder")
	m.searchInput.CharLimit = searchMaxLength
	m.searchInput.Prompt = "/ "
	m.searchInput.Cursor.Style = lipgloss.NewStyle().Foreground(colorPrimary)

	m.spinner = spinner.New()
	m.spinner.Spinner = spinner.Dot
	m.spinner.Style = loadingStyle

	m.help = help.New()
	subtleStyle := lipgloss.NewStyle().Foreground(colorFaint)
	m.help.Styles = help.Styles{
		ShortKey:  subtleStyle,
		ShortDesc: subtleStyle,
		FullKey:   subtleStyle,
		FullDesc:  subtleStyle,
		Ellipsis:  subtleStyle,
	}
	m.keys.currentState = m.state
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(loadProfilesCmd(m.ctx, m.store), m.spinner.Tick)
}

// =============================================================================
// Commands
// =============================================================================

func loadProfilesCmd(ctx context.Context, s *store.Store) tea.Cmd {
	return func() tea.Msg {
		snap, err := s.Load(ctx)
		return profilesLoadedMsg{snapshot: snap, err: err}
	}
}

func copySecretCmd(cb Clipboard, name, secret string) tea.Cmd {
	return func() tea.Msg {
		err := cb.WriteAll(secret)
		if err != nil {
			logging.Warnf("copy password for %s: %v", name, err)
		}
		return copyResultMsg{name: name, err: err}
	}
}

// exportAfterDelay keeps the in-progress indicator up for at least delay.
func exportAfterDelay(delay time.Duration, f export.Format, records []profile.Record) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return exportReadyMsg{format: f, records: records}
	})
}

func writeExportCmd(e export.Exporter, f export.Format, records []profile.Record) tea.Cmd {
	return func() tea.Msg {
		res, err := e.Export(records, f)
		if err != nil {
			logging.Errorf("export %s: %v", f, err)
		} else {
			logging.Infof("exported %d profiles to %s", res.Profiles, res.Path)
		}
		return exportDoneMsg{result: res, err: err}
	}
}

func dismissAfter(d time.Duration, seq int) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return dismissNotificationMsg{seq: seq}
	})
}

// =============================================================================
// Helpers
// =============================================================================

// notify replaces the current notification and schedules its dismissal.
func (m *Model) notify(text string, kind notifyKind) tea.Cmd {
	m.noteSeq++
	m.note = notification{text: text, kind: kind, seq: m.noteSeq}
	return dismissAfter(m.notifyAfter, m.noteSeq)
}

func (m *Model) applySnapshot(snap store.Snapshot) {
	m.records = snap.Records
	m.stats = profile.ComputeStats(snap.Records)
	m.refreshVisible()
}

// refreshVisible recomputes the visible subset and keeps the selection on
// the same record when it is still visible.
func (m *Model) refreshVisible() {
	var selectedID string
	if r, ok := m.selected(); ok {
		selectedID = r.ID
	}

	m.visible = m.engine.Visible(m.records, m.query)
	items := make([]list.Item, len(m.visible))
	index := 0
	for i, r := range m.visible {
		items[i] = card{r}
		if r.ID == selectedID {
			index = i
		}
	}
	m.cards.SetItems(items)
	m.cards.Select(index)
}

func (m Model) selected() (profile.Record, bool) {
	c, ok := m.cards.SelectedItem().(card)
	if !ok {
		return profile.Record{}, false
	}
	return c.Record, true
}

func (m *Model) startExport(f export.Format) tea.Cmd {
	if m.exporting {
		return nil
	}
	m.exporting = true
	records := append([]profile.Record(nil), m.visible...)
	logging.Debugf("export %s of %d visible profiles requested", f, len(records))
	return exportAfterDelay(m.exportDelay, f, records)
}

func exportedText(res export.Result) string {
	return i18n.T("notify.exported", res.Profiles, humanize.Bytes(uint64(res.Bytes)), res.Path)
}

func (m *Model) resizeComponents() {
	availableWidth := m.width - appStyle.GetHorizontalFrameSize()
	availableHeight := m.height - appStyle.GetVerticalFrameSize()

	helpWidth := int(float64(availableWidth) * helpBarWidthPercent)
	if helpWidth > helpBarMaxWidth {
		helpWidth = helpBarMaxWidth
	}
	if helpWidth < 20 {
		helpWidth = 20
	}
	m.help.Width = helpWidth

	listWidth := availableWidth
	if listWidth > cardListMaxWidth {
		listWidth = cardListMaxWidth
	}
	chrome := lipgloss.Height(m.headerView(availableWidth)) +
		lipgloss.Height(m.statsView()) +
		lipgloss.Height(m.controlsView()) + 2 +
		lipgloss.Height(m.footerView(availableWidth))
	listHeight := availableHeight - chrome
	if listHeight < minListHeight {
		listHeight = minListHeight
	}
	m.cards.SetSize(listWidth, listHeight)
	m.searchInput.Width = listWidth / 2
}
