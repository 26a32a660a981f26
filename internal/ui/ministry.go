package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alzaabi555/rased/internal/classroom"
	"github.com/alzaabi555/rased/internal/ministry"
)

// loginForm collects ministry credentials.
type loginForm struct {
	inputs [2]textinput.Model // username, password
	focus  int
}

func newLoginForm() loginForm {
	var f loginForm
	for i := range f.inputs {
		in := textinput.New()
		in.CharLimit = 64
		in.Width = 30
		f.inputs[i] = in
	}
	f.inputs[0].Placeholder = "اسم المستخدم"
	f.inputs[1].Placeholder = "كلمة المرور"
	f.inputs[1].EchoMode = textinput.EchoPassword
	f.inputs[1].EchoCharacter = '•'
	f.inputs[0].Focus()
	return f
}

// active reports whether the form is shown for phase.
func (f loginForm) active(phase ministry.Phase) bool {
	return phase != ministry.PhaseAuthenticated
}

func (f loginForm) credentials() ministry.Credentials {
	return ministry.Credentials{
		Username: strings.TrimSpace(f.inputs[0].Value()),
		Password: f.inputs[1].Value(),
	}
}

// cycle moves focus between the fields.
func (f loginForm) cycle(step int) loginForm {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + step + len(f.inputs)) % len(f.inputs)
	f.inputs[f.focus].Focus()
	return f
}

func (f loginForm) update(msg tea.Msg) (loginForm, tea.Cmd) {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd
}

// clearPassword empties the password field after an attempt.
func (f loginForm) clearPassword() loginForm {
	f.inputs[1].SetValue("")
	return f
}

func (m Model) ministryPhase() ministry.Phase {
	if m.ministry == nil {
		return ministry.PhaseUnauthenticated
	}
	return m.ministry.Phase()
}

func (m Model) handleLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.switchView(ViewRoster)
		return m, nil
	case "tab", "down":
		m.login = m.login.cycle(1)
		return m, nil
	case "shift+tab", "up":
		m.login = m.login.cycle(-1)
		return m, nil
	case "enter":
		if m.ministryBusy {
			return m, nil
		}
		if m.ministry == nil {
			m.errorMsg = "خدمة الوزارة غير مهيأة"
			return m, nil
		}
		if m.login.focus == 0 {
			m.login = m.login.cycle(1)
			return m, nil
		}
		creds := m.login.credentials()
		if creds.Username == "" || creds.Password == "" {
			m.errorMsg = ministry.Message(&ministry.Error{Kind: ministry.KindInvalidCredentials, Op: "login"})
			return m, nil
		}
		m.ministryBusy = true
		m.notice, m.errorMsg = "جاري تسجيل الدخول...", ""
		m.login = m.login.clearPassword()
		return m, loginCmd(m.ctx, m.ministry, creds)
	}
	if m.ministryBusy {
		return m, nil
	}
	var cmd tea.Cmd
	m.login, cmd = m.login.update(msg)
	return m, cmd
}

func (m Model) handleMinistryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.ministry == nil || m.ministryBusy {
		return m, nil
	}
	filters := m.ministry.Filters()

	k := m.keys
	switch {
	case key.Matches(msg, k.Confirm):
		if m.filterRow < len(filters) {
			f := filters[m.filterRow]
			if err := m.ministry.Select(f.ID()); err != nil {
				m.errorMsg = ministry.Message(err)
				return m, nil
			}
			m.notice = "تم اختيار " + f.Label()
		}
		return m, nil
	case key.Matches(msg, k.Submit):
		if _, ok := m.ministry.Selected(); !ok {
			m.errorMsg = ministry.Message(ministry.ErrNoSelection)
			return m, nil
		}
		m.ministryBusy = true
		m.notice = "جاري إرسال الغياب..."
		return m, submitAttendanceCmd(m.ctx, m.ministry, m.snapshot.Students, m.date)
	case key.Matches(msg, k.Reload):
		m.ministryBusy = true
		m.notice = "جاري تحميل الفصول..."
		return m, loadFiltersCmd(m.ctx, m.ministry)
	case key.Matches(msg, k.Logout):
		m.ministry.Logout()
		m.filterRow = 0
		m.login = newLoginForm()
		m.notice = "تم تسجيل الخروج"
		return m, nil
	case key.Matches(msg, k.Down):
		if m.filterRow < len(filters)-1 {
			m.filterRow++
		}
	case key.Matches(msg, k.Up):
		if m.filterRow > 0 {
			m.filterRow--
		}
	}
	return m, nil
}

func (m Model) handleLoginResult(msg loginResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.ministryBusy = false
		m.notice, m.errorMsg = "", ministry.Message(msg.err)
		return m, nil
	}
	m.notice = "جاري تحميل الفصول..."
	m.filterRow = 0
	return m, loadFiltersCmd(m.ctx, m.ministry)
}

func (m Model) handleFilters(msg filtersMsg) (tea.Model, tea.Cmd) {
	m.ministryBusy = false
	if msg.err != nil {
		m.notice, m.errorMsg = "", ministry.Message(msg.err)
		return m, nil
	}
	m.filterRow = 0
	m.notice = fmt.Sprintf("%d فصول متاحة", len(msg.filters))
	return m, nil
}

func (m Model) handleSubmitResult(msg submitResultMsg) (tea.Model, tea.Cmd) {
	m.ministryBusy = false
	if msg.err != nil {
		m.notice, m.errorMsg = "", ministry.Message(msg.err)
		return m, nil
	}
	m.notice = fmt.Sprintf("تم إرسال %d سجل غياب بتاريخ %s", msg.count, msg.date)
	if msg.ack.Message != "" {
		m.notice += " • " + msg.ack.Message
	}
	return m, nil
}

// renderMinistry shows the login form or, once authenticated, the class
// list and submission controls.
func (m Model) renderMinistry() string {
	styles := m.theme.Styles()
	var b strings.Builder

	phase := m.ministryPhase()
	if m.login.active(phase) {
		b.WriteString(styles.AccentText.Bold(true).Render("تسجيل الدخول إلى بوابة الوزارة"))
		b.WriteString("\n\n")
		for i, in := range m.login.inputs {
			b.WriteString(in.View())
			if i == 0 {
				b.WriteString("\n")
			}
		}
		b.WriteString("\n\n")
		if phase == ministry.PhaseAuthenticating {
			b.WriteString(styles.WarningText.Render("جاري تسجيل الدخول..."))
		} else {
			b.WriteString(styles.FaintText.Render("enter: دخول • tab: الحقل التالي • esc: رجوع"))
		}
		return b.String()
	}

	filters := m.ministry.Filters()
	selected, hasSelected := m.ministry.Selected()

	b.WriteString(styles.AccentText.Bold(true).Render("فصول الوزارة"))
	b.WriteString("\n\n")
	if len(filters) == 0 {
		b.WriteString(styles.FaintText.Render("لا توجد فصول محملة. اضغط r للتحميل"))
		b.WriteString("\n")
	}

	rows := make([]tableRow, len(filters))
	for i, f := range filters {
		mark := ""
		if hasSelected && f.ID() == selected.ID() {
			mark = "✓"
		}
		local := len(matchingStudents(m.snapshot.Students, f))
		rows[i] = tableRow{
			cells: []string{mark, f.Label(), fmt.Sprintf("%d", local)},
			badge: -1,
		}
	}
	if len(rows) > 0 {
		b.WriteString(m.renderTable([]column{{"", 2}, {"الفصل", 30}, {"طلاب محليون", 12}}, rows, m.filterRow))
	}

	b.WriteString("\n")
	if hasSelected {
		b.WriteString(styles.MutedText.Render(fmt.Sprintf("s: إرسال غياب %s لفصل %s", m.date, selected.Label())))
	} else {
		b.WriteString(styles.MutedText.Render("enter: اختيار الفصل"))
	}
	return b.String()
}

func matchingStudents(students []classroom.Student, f ministry.Filter) []classroom.Student {
	var out []classroom.Student
	for _, s := range students {
		if f.Matches(s) {
			out = append(out, s)
		}
	}
	return out
}

// Messages

type loginResultMsg struct{ err error }

type filtersMsg struct {
	filters []ministry.Filter
	err     error
}

type submitResultMsg struct {
	ack   ministry.Ack
	count int
	date  string
	err   error
}

// Commands

func loginCmd(ctx context.Context, svc Ministry, creds ministry.Credentials) tea.Cmd {
	return func() tea.Msg {
		return loginResultMsg{err: svc.Login(ctx, creds)}
	}
}

func loadFiltersCmd(ctx context.Context, svc Ministry) tea.Cmd {
	return func() tea.Msg {
		filters, err := svc.LoadFilters(ctx)
		return filtersMsg{filters: filters, err: err}
	}
}

func submitAttendanceCmd(ctx context.Context, svc Ministry, students []classroom.Student, date string) tea.Cmd {
	return func() tea.Msg {
		ack, n, err := svc.SubmitAttendance(ctx, students, date)
		return submitResultMsg{ack: ack, count: n, date: date, err: err}
	}
}
