package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Tab        key.Binding
	ShiftTab   key.Binding
	Escape     key.Binding

	// View switching
	ViewRoster     key.Binding
	ViewAttendance key.Binding
	ViewBehavior   key.Binding
	ViewMinistry   key.Binding

	// Class switcher
	PrevClass key.Binding
	NextClass key.Binding

	// Navigation
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding

	// Attendance
	PrevDay    key.Binding
	NextDay    key.Binding
	Today      key.Binding
	Present    key.Binding
	Absent     key.Binding
	Late       key.Binding
	Truant     key.Binding
	AllPresent key.Binding

	// Behaviour
	Reward key.Binding
	Deduct key.Binding

	// Ministry
	Submit       key.Binding
	Reload       key.Binding
	Logout       key.Binding
	FactoryReset key.Binding

	// Input
	Confirm key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		// Global
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "e"),
			key.WithHelp("e", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("h", "?"),
			key.WithHelp("h/?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "Next view"),
		),
		ShiftTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "Previous view"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Return to roster"),
		),

		// View switching
		ViewRoster: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "Roster"),
		),
		ViewAttendance: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "Attendance"),
		),
		ViewBehavior: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "Behaviour"),
		),
		ViewMinistry: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "Ministry"),
		),

		// Class switcher
		PrevClass: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "Previous class"),
		),
		NextClass: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "Next class"),
		),

		// Navigation
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "Go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Go to bottom"),
		),

		// Attendance
		PrevDay: key.NewBinding(
			key.WithKeys("left", ","),
			key.WithHelp("←/,", "Previous day"),
		),
		NextDay: key.NewBinding(
			key.WithKeys("right", "."),
			key.WithHelp("→/.", "Next day"),
		),
		Today: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "Today"),
		),
		Present: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "Present"),
		),
		Absent: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "Absent"),
		),
		Late: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "Late"),
		),
		Truant: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "Truant"),
		),
		AllPresent: key.NewBinding(
			key.WithKeys("A"),
			key.WithHelp("A", "Mark all present"),
		),

		// Behaviour
		Reward: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "Award a point"),
		),
		Deduct: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "Deduct a point"),
		),

		// Ministry
		Submit: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "Submit attendance"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Reload classes"),
		),
		Logout: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "Log out"),
		),
		FactoryReset: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "Factory reset"),
		),

		// Input
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Log in / select class"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.PrevClass, k.NextClass, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.ShiftTab, k.ViewRoster, k.ViewAttendance, k.ViewBehavior, k.ViewMinistry, k.Escape},
		{k.PrevClass, k.NextClass, k.Up, k.Down, k.Top, k.Bottom},
		{k.PrevDay, k.NextDay, k.Today, k.Present, k.Absent, k.Late, k.Truant, k.AllPresent},
		{k.Reward, k.Deduct},
		{k.Confirm, k.Submit, k.Reload, k.Logout},
		{k.CycleTheme, k.FactoryReset, k.Help, k.Quit},
	}
}
