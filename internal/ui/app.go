package ui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/alzaabi555/rased/internal/classroom"
	"github.com/alzaabi555/rased/internal/ministry"
	"github.com/alzaabi555/rased/internal/prefs"
	"github.com/alzaabi555/rased/internal/state"
)

// View represents the current active view.
type View int

const (
	ViewRoster View = iota
	ViewAttendance
	ViewBehavior
	ViewMinistry
)

var viewOrder = []View{ViewRoster, ViewAttendance, ViewBehavior, ViewMinistry}

func (v View) String() string {
	switch v {
	case ViewAttendance:
		return "الحضور"
	case ViewBehavior:
		return "السلوك"
	case ViewMinistry:
		return "الوزارة"
	default:
		return "الطلاب"
	}
}

// Reachability reports the last ministry ping.
type Reachability interface {
	Get() (checked, reachable bool, err error)
}

// Ministry is the session the Ministry view drives. *ministry.Adapter
// implements it.
type Ministry interface {
	Phase() ministry.Phase
	Filters() []ministry.Filter
	Selected() (ministry.Filter, bool)
	LastError() error
	Login(ctx context.Context, creds ministry.Credentials) error
	LoadFilters(ctx context.Context) ([]ministry.Filter, error)
	Select(id string) error
	SubmitAttendance(ctx context.Context, students []classroom.Student, date string) (ministry.Ack, int, error)
	Logout()
}

// ResetFunc wipes all stored data when confirmation is correct.
type ResetFunc func(ctx context.Context, confirmation string) error

// Options configures the UI.
type Options struct {
	Context   context.Context
	Store     *state.Store
	Ministry  Ministry
	Reach     Reachability
	Reset     ResetFunc
	Tick      time.Duration
	ThemeName string
	LastClass string
	PrefsPath string
	Log       zerolog.Logger
	Now       func() time.Time
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	store     *state.Store
	ministry  Ministry
	reach     Reachability
	reset     ResetFunc
	prefsPath string
	tick      time.Duration
	log       zerolog.Logger
	now       func() time.Time

	// UI state
	keys        keyMap
	help        help.Model
	theme       Theme
	currentView View
	width       int
	height      int
	ready       bool
	showHelp    bool
	modal       Modal

	// Data state
	snapshot classroom.Snapshot
	status   state.Status

	// Selection
	class       string
	selectedRow int
	date        string

	// Ministry view state
	login        loginForm
	filterRow    int
	ministryBusy bool

	// Transient feedback shown in the header
	notice   string
	errorMsg string
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	tick := opts.Tick
	if tick <= 0 {
		tick = DefaultUIInterval
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	store := opts.Store
	if store == nil {
		store = state.New(classroom.DefaultSnapshot())
	}

	m := Model{
		ctx:         ctx,
		store:       store,
		ministry:    opts.Ministry,
		reach:       opts.Reach,
		reset:       opts.Reset,
		prefsPath:   prefsPath,
		tick:        tick,
		log:         opts.Log,
		now:         now,
		keys:        DefaultKeyMap(),
		help:        help.New(),
		theme:       GetTheme(opts.ThemeName),
		currentView: ViewRoster,
		class:       strings.TrimSpace(opts.LastClass),
		date:        now().Format(dateLayout),
		login:       newLoginForm(),
	}
	m.refresh()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(m.tick), fetchSnapshotCmd(m.store))
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ready = true
		return m, nil

	case tickMsg:
		return m, tea.Batch(fetchSnapshotCmd(m.store), tickCmd(m.tick))

	case snapshotMsg:
		m.snapshot = msg.snapshot
		m.status = msg.status
		m.syncClass()
		return m, nil

	case loginResultMsg:
		return m.handleLoginResult(msg)

	case filtersMsg:
		return m.handleFilters(msg)

	case submitResultMsg:
		return m.handleSubmitResult(msg)

	case resetResultMsg:
		if msg.err != nil {
			m.errorMsg = msg.err.Error()
			return m, nil
		}
		m.refresh()
		m.selectedRow = 0
		m.notice = "تمت إعادة ضبط البيانات"
		return m, nil
	}

	if m.currentView == ViewMinistry && m.login.active(m.ministryPhase()) {
		var cmd tea.Cmd
		m.login, cmd = m.login.update(msg)
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
		modal, cmd, done := m.modal.Update(msg, m.keys)
		m.modal = modal
		if done {
			m.modal = nil
		}
		return m, cmd
	}

	// The login form owns the keyboard while it is shown.
	if m.currentView == ViewMinistry && m.login.active(m.ministryPhase()) {
		return m.handleLoginKey(msg)
	}

	m.notice, m.errorMsg = "", ""
	k := m.keys

	switch {
	case key.Matches(msg, k.Quit):
		return m, tea.Quit

	case key.Matches(msg, k.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, k.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.savePrefs(func(p *prefs.Prefs) { p.Theme = m.theme.Name })
		return m, nil

	case key.Matches(msg, k.Tab):
		m.switchView(m.currentView.next(1))
		return m, nil
	case key.Matches(msg, k.ShiftTab):
		m.switchView(m.currentView.next(-1))
		return m, nil

	case key.Matches(msg, k.ViewRoster), key.Matches(msg, k.Escape):
		m.switchView(ViewRoster)
		return m, nil
	case key.Matches(msg, k.ViewAttendance):
		m.switchView(ViewAttendance)
		return m, nil
	case key.Matches(msg, k.ViewBehavior):
		m.switchView(ViewBehavior)
		return m, nil
	case key.Matches(msg, k.ViewMinistry):
		m.switchView(ViewMinistry)
		return m, nil

	case key.Matches(msg, k.PrevClass):
		m.cycleClass(-1)
		return m, nil
	case key.Matches(msg, k.NextClass):
		m.cycleClass(1)
		return m, nil

	case key.Matches(msg, k.FactoryReset):
		if m.reset != nil {
			m.modal = newConfirmModal(m.ctx, m.reset)
		}
		return m, nil
	}

	switch m.currentView {
	case ViewRoster:
		return m.handleListKey(msg, len(m.classStudents()))
	case ViewAttendance:
		return m.handleAttendanceKey(msg)
	case ViewBehavior:
		return m.handleBehaviorKey(msg)
	case ViewMinistry:
		return m.handleMinistryKey(msg)
	}

	return m, nil
}

func (v View) next(step int) View {
	for i, candidate := range viewOrder {
		if candidate == v {
			return viewOrder[(i+step+len(viewOrder))%len(viewOrder)]
		}
	}
	return ViewRoster
}

func (m *Model) switchView(v View) {
	m.currentView = v
	m.notice, m.errorMsg = "", ""
}

// handleListKey moves the row cursor over a list of count entries.
func (m Model) handleListKey(msg tea.KeyMsg, count int) (tea.Model, tea.Cmd) {
	if count == 0 {
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.Down):
		if m.selectedRow < count-1 {
			m.selectedRow++
		}
	case key.Matches(msg, m.keys.Up):
		if m.selectedRow > 0 {
			m.selectedRow--
		}
	case key.Matches(msg, m.keys.Top):
		m.selectedRow = 0
	case key.Matches(msg, m.keys.Bottom):
		m.selectedRow = count - 1
	}
	return m, nil
}

// mutate applies fn to the store and refreshes the local copy. The
// autosaver picks the change up from the store.
func (m *Model) mutate(fn func(classroom.Snapshot) classroom.Snapshot) {
	m.snapshot = m.store.Update(fn)
	m.status = m.store.Status()
	m.syncClass()
}

func (m *Model) refresh() {
	m.snapshot = m.store.Snapshot()
	m.status = m.store.Status()
	m.syncClass()
}

func (m *Model) savePrefs(fn func(*prefs.Prefs)) {
	if m.prefsPath == "" {
		return
	}
	if _, err := prefs.Update(m.prefsPath, fn); err != nil {
		m.log.Warn().Err(err).Msg("save prefs")
	}
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")
	b.WriteString(m.renderContent())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())

	return b.String()
}

// renderContent renders the main content area based on current view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewAttendance:
		return padContent(m.renderAttendance())
	case ViewBehavior:
		return padContent(m.renderBehavior())
	case ViewMinistry:
		return padContent(m.renderMinistry())
	default:
		return padContent(m.renderRoster())
	}
}

// Messages

type tickMsg time.Time

type snapshotMsg struct {
	snapshot classroom.Snapshot
	status   state.Status
}

type resetResultMsg struct{ err error }

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg{snapshot: store.Snapshot(), status: store.Status()}
	}
}

// Run starts the Bubble Tea program and blocks until the user quits or the
// context is cancelled.
func Run(opts Options) error {
	m := New(opts)
	programOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if opts.Context != nil {
		programOpts = append(programOpts, tea.WithContext(opts.Context))
	}
	p := tea.NewProgram(m, programOpts...)
	_, err := p.Run()
	if opts.Context != nil && opts.Context.Err() != nil && errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}
