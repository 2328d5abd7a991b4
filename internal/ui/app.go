package ui

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/five82/showcase/internal/catalog"
	"github.com/five82/showcase/internal/hiring"
	"github.com/five82/showcase/internal/logtail"
	"github.com/five82/showcase/internal/prefs"
	"github.com/five82/showcase/internal/session"
)

// View represents the current active view.
type View int

const (
	ViewListing View = iota
	ViewAdmin
	ViewActivity
)

// CatalogStore is the subset of *catalog.Store the UI drives.
type CatalogStore interface {
	Snapshot() catalog.Snapshot
	LoadAll(ctx context.Context) ([]catalog.Item, []catalog.Category, error)
	CreateItem(ctx context.Context, draft catalog.ItemDraft) (catalog.Item, error)
	UpdateItem(ctx context.Context, id string, patch catalog.ItemDraft) (catalog.Item, error)
	DeleteItem(ctx context.Context, id string) error
	CreateCategory(ctx context.Context, name string) (catalog.Category, error)
	RenameCategory(ctx context.Context, id, newName string) (catalog.Category, error)
	DeleteCategory(ctx context.Context, id string) error
}

// Options configures the UI.
type Options struct {
	Context        context.Context
	Store          CatalogStore
	Tracker        *hiring.Tracker
	Session        *session.Session
	Auth           session.Authenticator
	Log            logrus.FieldLogger
	LogFile        string
	UITick         time.Duration
	RequestTimeout time.Duration
	Prefs          prefs.Prefs
	PrefsPath      string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx            context.Context
	store          CatalogStore
	tracker        *hiring.Tracker
	session        *session.Session
	auth           session.Authenticator
	log            logrus.FieldLogger
	logFile        string
	prefsPath      string
	uiTick         time.Duration
	requestTimeout time.Duration
	keys           keyMap

	// UI state
	theme  Theme
	view   View
	width  int
	height int
	ready  bool

	// Data state
	snapshot catalog.Snapshot

	// Listing state
	category    string
	searchInput textinput.Model
	searching   bool
	selected    int

	// Admin state
	adminTab adminTab
	adminRow int

	// Activity state
	activity        viewport.Model
	activityEntries []logtail.Entry
	activityErr     error

	// Status line (errors and confirmations not owned by the notification slot)
	status    string
	statusErr bool
	loading   bool

	// Overlays
	showHelp bool
	modal    Modal
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	uiTick := opts.UITick
	if uiTick <= 0 {
		uiTick = DefaultUIInterval
	}
	timeout := opts.RequestTimeout
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}

	log := opts.Log
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}

	tracker := opts.Tracker
	if tracker == nil {
		tracker = hiring.New(hiring.Options{Log: log})
	}
	sess := opts.Session
	if sess == nil {
		sess = &session.Session{}
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	search := textinput.New()
	search.Placeholder = "Search services..."
	search.Prompt = "/ "
	search.CharLimit = 100

	m := Model{
		ctx:            ctx,
		store:          opts.Store,
		tracker:        tracker,
		session:        sess,
		auth:           opts.Auth,
		log:            log.WithField("component", "ui"),
		logFile:        opts.LogFile,
		prefsPath:      prefsPath,
		uiTick:         uiTick,
		requestTimeout: timeout,
		keys:           DefaultKeyMap(),
		theme:          GetTheme(opts.Prefs.Theme),
		view:           ViewListing,
		category:       opts.Prefs.Category,
		searchInput:    search,
	}
	if m.store != nil {
		m.snapshot = m.store.Snapshot()
		m.reconcileCategory()
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd(m.uiTick)}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.updateActivityViewport()
		return m, nil

	case tickMsg:
		return m.handleTick()

	case snapshotMsg:
		m.applySnapshot(catalog.Snapshot(msg))
		return m, nil

	case hiringMsg:
		// Tracker state is read at render time.
		return m, nil

	case loadMsg:
		m.loading = false
		if msg.err != nil {
			m.setError("Could not load the catalog: " + describeError(msg.err))
		} else {
			m.setStatus("Catalog reloaded")
		}
		return m, fetchSnapshotCmd(m.store)

	case mutationMsg:
		return m.handleMutation(msg)

	case loginMsg:
		return m.handleLogin(msg)

	case activityMsg:
		m.activityEntries = msg.entries
		m.activityErr = msg.err
		m.updateActivityViewport()
		return m, nil
	}

	// Cursor blink and other input plumbing.
	if m.modal != nil {
		next, cmd, closed := m.modal.Update(msg, m.keys)
		m.modal = next
		if closed {
			m.modal = nil
		}
		return m, cmd
	}
	if m.searching {
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	if m.modal != nil {
		return m.modal.View(m.theme, m.width, m.height)
	}
	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}
	if m.modal != nil {
		next, cmd, closed := m.modal.Update(msg, m.keys)
		m.modal = next
		if closed {
			m.modal = nil
		}
		return m, cmd
	}
	if m.searching {
		return m.handleSearchKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.Reload):
		return m.reload()

	case key.Matches(msg, m.keys.ViewActivity):
		m.view = ViewActivity
		return m, m.loadActivityCmd()

	case key.Matches(msg, m.keys.ViewAdmin):
		return m.openAdmin()

	case key.Matches(msg, m.keys.Session):
		return m.toggleSession()

	case key.Matches(msg, m.keys.Escape):
		m.view = ViewListing
		m.status = ""
		return m, nil
	}

	switch m.view {
	case ViewListing:
		return m.handleListingKey(msg)
	case ViewAdmin:
		return m.handleAdminKey(msg)
	case ViewActivity:
		return m.handleActivityKey(msg)
	}
	return m, nil
}

// handleTick processes the UI refresh tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	if m.view == ViewActivity {
		cmds = append(cmds, m.loadActivityCmd())
	}
	cmds = append(cmds, tickCmd(m.uiTick))
	return m, tea.Batch(cmds...)
}

// applySnapshot installs a fresh snapshot and drops hiring state for items
// no longer in the catalog.
func (m *Model) applySnapshot(snap catalog.Snapshot) {
	m.snapshot = snap
	if snap.Loaded {
		ids := make([]string, 0, len(snap.Items))
		for _, item := range snap.Items {
			ids = append(ids, item.ID)
		}
		m.tracker.Retain(ids)
		m.reconcileCategory()
	}
	m.selected = clampIndex(m.selected, len(m.visibleItems()))
	m.adminRow = clampIndex(m.adminRow, m.adminRowCount())
}

// reconcileCategory resets the listing filter when its category is no
// longer used by any item.
func (m *Model) reconcileCategory() {
	if m.category == catalog.AllCategories || !m.snapshot.Loaded {
		return
	}
	if indexOf(m.snapshot.UsedCategories, m.category) < 0 {
		m.category = catalog.AllCategories
	}
}

func (m Model) reload() (tea.Model, tea.Cmd) {
	if m.store == nil || m.loading {
		return m, nil
	}
	m.loading = true
	m.setStatus("Reloading...")
	return m, m.loadCmd()
}

func (m Model) handleMutation(msg mutationMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.log.WithError(msg.err).WithField("action", msg.action).Warn("catalog change rejected")
		text := describeError(msg.err)
		if m.modal != nil {
			m.modal = m.modal.Failed(text)
		} else {
			m.setError(text)
		}
		return m, fetchSnapshotCmd(m.store)
	}
	m.modal = nil
	m.setStatus(msg.done)
	return m, fetchSnapshotCmd(m.store)
}

func (m *Model) setStatus(text string) {
	m.status = text
	m.statusErr = false
}

func (m *Model) setError(text string) {
	m.status = text
	m.statusErr = true
}

func (m Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	p := prefs.Prefs{Theme: m.theme.Name, Category: m.category}
	if err := prefs.Save(m.prefsPath, p); err != nil {
		m.log.WithError(err).Warn("save prefs failed")
	}
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	var b strings.Builder

	// Header line 1: title + status badges
	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	// Header line 2: command bar
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")

	// Main content
	b.WriteString(m.renderContent())
	b.WriteString("\n")

	// Footer: notification slot and status line
	b.WriteString(m.renderFooter())

	return b.String()
}

// renderContent renders the main content area based on current view.
func (m Model) renderContent() string {
	switch m.view {
	case ViewListing:
		return m.renderListing()
	case ViewAdmin:
		return m.renderAdmin()
	case ViewActivity:
		return m.renderActivity()
	default:
		return ""
	}
}

// contentHeight is the number of rows left for the main content.
func (m Model) contentHeight() int {
	// header, command bar, footer (notification + status)
	return maxInt(m.height-4, 3)
}

// Messages

type tickMsg time.Time

type snapshotMsg catalog.Snapshot

// hiringMsg signals a hiring or notification change from a timer.
type hiringMsg struct{}

type loadMsg struct{ err error }

type mutationMsg struct {
	action string
	done   string
	err    error
}

type loginMsg struct {
	err      error
	wantView View
}

type activityMsg struct {
	entries []logtail.Entry
	err     error
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store CatalogStore) tea.Cmd {
	if store == nil {
		return nil
	}
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

func (m Model) loadCmd() tea.Cmd {
	store, ctx, timeout := m.store, m.ctx, m.requestTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		_, _, err := store.LoadAll(ctx)
		return loadMsg{err: err}
	}
}

// mutate runs op against the store off the UI goroutine.
func (m Model) mutate(action, done string, op func(ctx context.Context) error) tea.Cmd {
	ctx, timeout := m.ctx, m.requestTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		return mutationMsg{action: action, done: done, err: op(ctx)}
	}
}

func (m Model) loadActivityCmd() tea.Cmd {
	path := m.logFile
	return func() tea.Msg {
		if path == "" {
			return activityMsg{}
		}
		entries, err := logtail.ReadEntries(path, ActivityLimit)
		return activityMsg{entries: entries, err: err}
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))

	// Timer callbacks may fire while Update runs; Send must not block them.
	m.tracker.SetOnChange(func() { go p.Send(hiringMsg{}) })
	defer m.tracker.SetOnChange(nil)

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && m.ctx.Err() != nil {
		return nil
	}
	return err
}
