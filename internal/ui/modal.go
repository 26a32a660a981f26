package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Modal is the interface for modal dialogs.
// The Update method returns the updated modal, a command, and a bool indicating if the modal should close.
type Modal interface {
	Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool)
	View(theme Theme, width, height int) string
}

// resetWord is the confirmation the teacher must type.
const resetWord = "حذف"

// confirmModal asks for the confirmation word before a factory reset.
type confirmModal struct {
	ctx   context.Context
	reset ResetFunc
	input textinput.Model
	err   string
}

func newConfirmModal(ctx context.Context, reset ResetFunc) Modal {
	in := textinput.New()
	in.Placeholder = resetWord
	in.CharLimit = 16
	in.Width = 20
	in.Focus()
	return confirmModal{ctx: ctx, reset: reset, input: in}
}

func (c confirmModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch {
		case k.String() == "esc" || k.String() == "ctrl+c":
			return c, nil, true
		case key.Matches(k, keys.Confirm):
			word := strings.TrimSpace(c.input.Value())
			if word != resetWord {
				c.err = "اكتب " + resetWord + " للتأكيد"
				c.input.SetValue("")
				return c, nil, false
			}
			ctx, reset := c.ctx, c.reset
			return c, func() tea.Msg {
				return resetResultMsg{err: reset(ctx, word)}
			}, true
		}
	}
	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return c, cmd, false
}

func (c confirmModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	var b strings.Builder

	b.WriteString(styles.DangerText.Render("إعادة ضبط المصنع"))
	b.WriteString("\n\n")
	b.WriteString(styles.Text.Render("سيتم حذف جميع الطلاب والدرجات والإعدادات نهائياً."))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("اكتب " + resetWord + " ثم اضغط enter، أو esc للإلغاء."))
	b.WriteString("\n\n")
	b.WriteString(c.input.View())
	if c.err != "" {
		b.WriteString("\n")
		b.WriteString(styles.WarningText.Render(c.err))
	}

	return overlay(theme, width, height, 54, theme.Danger, b.String())
}
