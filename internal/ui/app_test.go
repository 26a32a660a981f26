package ui

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/alzaabi555/rased/internal/classroom"
	"github.com/alzaabi555/rased/internal/ministry"
	"github.com/alzaabi555/rased/internal/prefs"
	"github.com/alzaabi555/rased/internal/state"
)

var testNow = time.Date(2025, 3, 2, 8, 15, 0, 0, time.UTC) // a Sunday

func testSnapshot() classroom.Snapshot {
	snap := classroom.DefaultSnapshot()
	snap.Classes = []string{"4A", "5B"}
	a := classroom.NewStudent("أحمد", "4A")
	a.ID = "s1"
	b := classroom.NewStudent("مريم", "4A")
	b.ID = "s2"
	c := classroom.NewStudent("سالم", "5B")
	c.ID = "s3"
	snap.Students = []classroom.Student{a, b, c}
	return snap
}

func newTestModel(t *testing.T, opts Options) Model {
	t.Helper()
	if opts.Store == nil {
		opts.Store = state.New(testSnapshot())
		opts.Store.RecordLoad("file", nil)
	}
	if opts.PrefsPath == "" {
		opts.PrefsPath = filepath.Join(t.TempDir(), "prefs.toml")
	}
	opts.Now = func() time.Time { return testNow }
	opts.Log = zerolog.Nop()
	m := New(opts)
	return send(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return out, cmd
}

func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	out, _ := update(t, m, msg)
	return out
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		m = send(t, m, keyMsg(k))
	}
	return m
}

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	for _, r := range text {
		m = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func studentByID(t *testing.T, store *state.Store, id string) classroom.Student {
	t.Helper()
	students := store.Snapshot().Students
	i := classroom.FindStudent(students, id)
	if i < 0 {
		t.Fatalf("student %s not found", id)
	}
	return students[i]
}

func TestNew_DefaultsAndLastClass(t *testing.T) {
	m := newTestModel(t, Options{ThemeName: "Missing"})
	if m.theme.Name != "Nightfox" {
		t.Fatalf("theme = %q, want Nightfox", m.theme.Name)
	}
	if m.class != "4A" {
		t.Fatalf("class = %q, want first visible class", m.class)
	}
	if m.date != "2025-03-02" {
		t.Fatalf("date = %q", m.date)
	}

	m = newTestModel(t, Options{LastClass: " 5B "})
	if m.class != "5B" || len(m.classStudents()) != 1 {
		t.Fatalf("class = %q students = %d, want 5B with 1", m.class, len(m.classStudents()))
	}

	m = newTestModel(t, Options{LastClass: "gone"})
	if m.class != "4A" {
		t.Fatalf("class = %q, want fallback to 4A", m.class)
	}
}

func TestView_LoadingUntilSized(t *testing.T) {
	m := New(Options{Store: state.New(testSnapshot()), Now: func() time.Time { return testNow }})
	if got := m.View(); got != "Loading..." {
		t.Fatalf("View = %q, want Loading...", got)
	}
	m = send(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	if got := m.View(); !strings.Contains(got, "أحمد") || !strings.Contains(got, "4A") {
		t.Fatalf("View missing roster:\n%s", got)
	}
}

func TestAttendance_ToggleMarks(t *testing.T) {
	store := state.New(testSnapshot())
	store.RecordLoad("file", nil)
	m := newTestModel(t, Options{Store: store})

	m = press(t, m, "2", "a")
	if got, _ := classroom.AttendanceOn(studentByID(t, store, "s1"), "2025-03-02"); got != classroom.StatusAbsent {
		t.Fatalf("status = %q, want absent", got)
	}
	if !m.status.Dirty() || classifySave(m.status) != savePending {
		t.Fatalf("status not pending after edit: %+v", m.status)
	}

	m = press(t, m, "a")
	if _, ok := classroom.AttendanceOn(studentByID(t, store, "s1"), "2025-03-02"); ok {
		t.Fatalf("repeated mark did not clear")
	}

	m = press(t, m, "j", "l")
	if got, _ := classroom.AttendanceOn(studentByID(t, store, "s2"), "2025-03-02"); got != classroom.StatusLate {
		t.Fatalf("s2 status = %q, want late", got)
	}

	m = press(t, m, ",", "t")
	if got, _ := classroom.AttendanceOn(studentByID(t, store, "s2"), "2025-03-01"); got != classroom.StatusTruant {
		t.Fatalf("previous day status = %q, want truant", got)
	}
	if m.date != "2025-03-01" {
		t.Fatalf("date = %q after moving back", m.date)
	}
	m = press(t, m, "n")
	if m.date != "2025-03-02" {
		t.Fatalf("date = %q after today", m.date)
	}
}

func TestAttendance_MarkAllPresentOnlyTouchesClass(t *testing.T) {
	store := state.New(testSnapshot())
	m := newTestModel(t, Options{Store: store})

	press(t, m, "2", "A")
	for _, id := range []string{"s1", "s2"} {
		if got, _ := classroom.AttendanceOn(studentByID(t, store, id), "2025-03-02"); got != classroom.StatusPresent {
			t.Fatalf("%s status = %q, want present", id, got)
		}
	}
	if _, ok := classroom.AttendanceOn(studentByID(t, store, "s3"), "2025-03-02"); ok {
		t.Fatalf("student of another class was marked")
	}
}

func TestBehavior_AwardAndDeduct(t *testing.T) {
	store := state.New(testSnapshot())
	m := newTestModel(t, Options{Store: store})

	press(t, m, "3", "+", "+", "-")
	s := studentByID(t, store, "s1")
	if len(s.Behaviors) != 3 {
		t.Fatalf("behaviors = %d, want 3", len(s.Behaviors))
	}
	if got := classroom.Points(s, classroom.SemesterFirst); got != 1 {
		t.Fatalf("points = %d, want 1", got)
	}
	if s.Behaviors[2].Type != classroom.BehaviorNegative || s.Behaviors[0].Date != "2025-03-02" {
		t.Fatalf("records = %+v", s.Behaviors)
	}
}

func TestClassSwitcher_PersistsChoice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	m := newTestModel(t, Options{PrefsPath: path})

	m = press(t, m, "j", "]")
	if m.class != "5B" || m.selectedRow != 0 {
		t.Fatalf("class = %q row = %d, want 5B and row reset", m.class, m.selectedRow)
	}
	p, _ := prefs.Load(path)
	if p.LastClass != "5B" {
		t.Fatalf("LastClass = %q, want 5B", p.LastClass)
	}

	m = press(t, m, "]")
	if m.class != "4A" {
		t.Fatalf("class = %q, want wrap to 4A", m.class)
	}
}

func TestCycleTheme_SavesPrefs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	if err := prefs.Save(path, prefs.Prefs{Theme: "Nightfox", DeviceID: "DEV-1"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	m := newTestModel(t, Options{PrefsPath: path, ThemeName: "Nightfox"})

	m = press(t, m, "T")
	if m.theme.Name != "Kanagawa" {
		t.Fatalf("theme = %q, want Kanagawa", m.theme.Name)
	}
	p, _ := prefs.Load(path)
	if p.Theme != "Kanagawa" || p.DeviceID != "DEV-1" {
		t.Fatalf("prefs = %+v", p)
	}
}

func TestClassifySave(t *testing.T) {
	tests := []struct {
		name string
		st   state.Status
		want saveState
	}{
		{"clean", state.Status{Version: 2, SavedVersion: 2}, saveClean},
		{"dirty", state.Status{Version: 3, SavedVersion: 2}, savePending},
		{"one failure", state.Status{Version: 3, SavedVersion: 2, SaveError: errors.New("disk"), ConsecutiveFailures: 1}, saveRetrying},
		{"failing", state.Status{Version: 3, SavedVersion: 2, SaveError: errors.New("disk"), ConsecutiveFailures: 2}, saveFailing},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifySave(tt.st); got != tt.want {
				t.Fatalf("classifySave = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHeader_ShowsFailureAndPeriod(t *testing.T) {
	snap := testSnapshot()
	snap.PeriodTimes[0] = classroom.PeriodTime{PeriodNumber: 1, StartTime: "08:00", EndTime: "08:40"}
	snap.Schedule[0].Periods[0] = "4A"
	store := state.New(snap)
	store.RecordLoad("file", nil)
	store.SetClasses(state.Value([]string{"4A", "5B"}))
	_, version := store.Versioned()
	store.RecordSave(version, errors.New("disk full"))
	store.RecordSave(version, errors.New("disk full"))

	m := newTestModel(t, Options{Store: store})
	header := m.renderHeader()
	if !strings.Contains(header, "فشل الحفظ") || !strings.Contains(header, "disk full") {
		t.Fatalf("header missing failure:\n%s", header)
	}
	if got := m.formatPeriod(); got != "الحصة 1 • 4A" {
		t.Fatalf("formatPeriod = %q", got)
	}
}

type fakeAPI struct {
	mu      sync.Mutex
	entries []ministry.AbsenceEntry
}

func (f *fakeAPI) Login(_ context.Context, creds ministry.Credentials) (ministry.Session, error) {
	if creds.Password != "secret" {
		return ministry.Session{}, &ministry.Error{Kind: ministry.KindInvalidCredentials, Op: "login"}
	}
	return ministry.Session{UserID: "1", AuthToken: "tok"}, nil
}

func (f *fakeAPI) FetchFilters(context.Context, ministry.Session) ([]ministry.Filter, error) {
	return []ministry.Filter{{ClassID: "10", ClassName: "4A", GradeID: "4", GradeName: "الرابع"}}, nil
}

func (f *fakeAPI) SubmitAbsence(_ context.Context, _ ministry.Session, _ ministry.Filter, _ string, entries []ministry.AbsenceEntry) (ministry.Ack, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, entries...)
	return ministry.Ack{Message: "ok"}, nil
}

func (f *fakeAPI) SubmitMarks(context.Context, ministry.Session, ministry.MarksConfig, []ministry.MarkEntry) (ministry.Ack, error) {
	return ministry.Ack{}, nil
}

// run executes cmd and feeds its message back into the model.
func run(t *testing.T, m Model, cmd tea.Cmd) (Model, tea.Cmd) {
	t.Helper()
	if cmd == nil {
		t.Fatalf("expected a command")
	}
	return update(t, m, cmd())
}

func TestMinistry_LoginSelectSubmit(t *testing.T) {
	snap := testSnapshot()
	snap.Students[0] = classroom.SetAttendance(snap.Students[0], "2025-03-02", classroom.StatusAbsent)
	api := &fakeAPI{}
	adapter := ministry.NewAdapter(api, zerolog.Nop())
	m := newTestModel(t, Options{Store: state.New(snap), Ministry: adapter})

	m = press(t, m, "4")
	m = typeText(t, m, "teacher")
	m = press(t, m, "enter")
	m = typeText(t, m, "secret")
	m, cmd := update(t, m, keyMsg("enter"))
	if !m.ministryBusy {
		t.Fatalf("login did not mark busy")
	}

	m, cmd = run(t, m, cmd) // login result → load filters
	m, _ = run(t, m, cmd)   // filters
	if adapter.Phase() != ministry.PhaseAuthenticated || m.ministryBusy {
		t.Fatalf("phase = %v busy = %v", adapter.Phase(), m.ministryBusy)
	}
	if got := len(adapter.Filters()); got != 1 {
		t.Fatalf("filters = %d, want 1", got)
	}

	m = press(t, m, "enter")
	if _, ok := adapter.Selected(); !ok {
		t.Fatalf("class not selected")
	}

	m, cmd = update(t, m, keyMsg("s"))
	m, _ = run(t, m, cmd)
	if len(api.entries) != 1 {
		t.Fatalf("submitted entries = %d, want 1", len(api.entries))
	}
	if m.errorMsg != "" || !strings.Contains(m.notice, "1") {
		t.Fatalf("notice = %q error = %q", m.notice, m.errorMsg)
	}

	m = press(t, m, "o")
	if adapter.Phase() != ministry.PhaseUnauthenticated || !m.login.active(m.ministryPhase()) {
		t.Fatalf("logout did not return to login form")
	}
}

func TestMinistry_LoginFailureShowsMessage(t *testing.T) {
	adapter := ministry.NewAdapter(&fakeAPI{}, zerolog.Nop())
	m := newTestModel(t, Options{Ministry: adapter})

	m = press(t, m, "4")
	m = typeText(t, m, "teacher")
	m = press(t, m, "tab")
	m = typeText(t, m, "wrong")
	m, cmd := update(t, m, keyMsg("enter"))
	m, next := run(t, m, cmd)
	if next != nil {
		t.Fatalf("failed login should not load filters")
	}
	if m.ministryBusy || m.errorMsg != ministry.Message(&ministry.Error{Kind: ministry.KindInvalidCredentials}) {
		t.Fatalf("busy = %v error = %q", m.ministryBusy, m.errorMsg)
	}
	if m.login.inputs[1].Value() != "" || m.login.inputs[0].Value() != "teacher" {
		t.Fatalf("form after failure: user=%q pass=%q", m.login.inputs[0].Value(), m.login.inputs[1].Value())
	}

	m = press(t, m, "esc")
	if m.currentView != ViewRoster {
		t.Fatalf("esc did not leave the login form")
	}
}

func TestFactoryReset_RequiresWord(t *testing.T) {
	var got []string
	reset := func(_ context.Context, word string) error {
		got = append(got, word)
		return nil
	}
	m := newTestModel(t, Options{Reset: reset})

	m = press(t, m, "R")
	if m.modal == nil {
		t.Fatalf("reset prompt not shown")
	}
	m = typeText(t, m, "نعم")
	m, cmd := update(t, m, keyMsg("enter"))
	if cmd != nil || m.modal == nil {
		t.Fatalf("wrong word closed the prompt")
	}

	m = typeText(t, m, resetWord)
	m, cmd = update(t, m, keyMsg("enter"))
	if m.modal != nil {
		t.Fatalf("prompt still open after confirmation")
	}
	m, _ = run(t, m, cmd)
	if len(got) != 1 || got[0] != resetWord {
		t.Fatalf("reset calls = %v", got)
	}
	if m.notice == "" {
		t.Fatalf("no notice after reset")
	}
}

func TestFactoryReset_EscCancels(t *testing.T) {
	called := false
	m := newTestModel(t, Options{Reset: func(context.Context, string) error { called = true; return nil }})
	m = press(t, m, "R", "esc")
	if m.modal != nil || called {
		t.Fatalf("esc did not cancel: modal=%v called=%v", m.modal != nil, called)
	}
}
