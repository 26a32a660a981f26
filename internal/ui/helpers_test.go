package ui

import (
	"testing"
	"time"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		limit int
		want  string
	}{
		{"  short  ", 10, "short"},
		{"exactly", 7, "exactly"},
		{"truncated text", 6, "trunc…"},
		{"أحمد بن سالم", 5, "أحمد…"},
		{"abc", 1, "…"},
		{"abc", 0, "abc"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.limit); got != tt.want {
			t.Fatalf("truncate(%q, %d) = %q, want %q", tt.in, tt.limit, got, tt.want)
		}
	}
}

func TestPadRight(t *testing.T) {
	if got := padRight("مريم", 6); got != "مريم  " {
		t.Fatalf("padRight = %q", got)
	}
	if got := padRight("toolong", 3); got != "toolong" {
		t.Fatalf("padRight shortened input: %q", got)
	}
}

func TestThemeCycle(t *testing.T) {
	seen := map[string]bool{}
	name := ThemeNames()[0]
	for range ThemeNames() {
		seen[name] = true
		name = NextTheme(name)
	}
	if name != ThemeNames()[0] || len(seen) != len(ThemeNames()) {
		t.Fatalf("cycle did not visit every theme once: %v", seen)
	}
	if NextTheme("unknown") != ThemeNames()[0] {
		t.Fatalf("unknown theme should restart the cycle")
	}
	if GetTheme("unknown").Name != "Nightfox" {
		t.Fatalf("GetTheme fallback = %q", GetTheme("unknown").Name)
	}
}

func TestThemesDefineEveryBadge(t *testing.T) {
	keys := []string{"unmarked", "present", "absent", "late", "truant", "positive", "negative"}
	for _, name := range ThemeNames() {
		th := GetTheme(name)
		for _, k := range keys {
			if th.Badges[k] == "" {
				t.Fatalf("theme %s missing badge %q", name, k)
			}
		}
	}
}

func TestFormatRelative(t *testing.T) {
	now := time.Date(2025, 3, 2, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		at   time.Time
		want string
	}{
		{time.Time{}, ""},
		{now.Add(-20 * time.Second), "now"},
		{now.Add(-5 * time.Minute), "5m ago"},
		{now.Add(-3 * time.Hour), "3h ago"},
		{now.AddDate(0, 0, -2), "2025-02-28"},
	}
	for _, tt := range tests {
		if got := formatRelative(tt.at, now); got != tt.want {
			t.Fatalf("formatRelative(%v) = %q, want %q", tt.at, got, tt.want)
		}
	}
}

func TestViewNextWraps(t *testing.T) {
	if ViewMinistry.next(1) != ViewRoster || ViewRoster.next(-1) != ViewMinistry {
		t.Fatalf("view cycle does not wrap")
	}
}
