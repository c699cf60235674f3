package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/zarlcorp/core/pkg/zstyle"
	"github.com/zarlcorp/zform/internal/employee"
)

// listModel displays saved registrations, newest first.
type listModel struct {
	employees []employee.Employee
	cursor    int
	flash     string
}

func newListModel(all []employee.Employee) listModel {
	return listModel{employees: all}
}

func (m listModel) Init() tea.Cmd {
	return nil
}

func (m listModel) Update(msg tea.Msg) (listModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case copiedMsg:
		if msg.err != nil {
			m.flash = msg.err.Error()
		} else {
			m.flash = msg.what + " copied"
		}
		return m, clearFlashAfter()

	case flashMsg:
		m.flash = ""
		return m, nil
	}

	return m, nil
}

func (m listModel) handleKey(msg tea.KeyMsg) (listModel, tea.Cmd) {
	if key.Matches(msg, zstyle.KeyQuit) {
		return m, tea.Quit
	}

	if key.Matches(msg, zstyle.KeyBack) {
		return m, func() tea.Msg { return navigateMsg{view: viewMenu} }
	}

	if len(m.employees) == 0 {
		return m, nil
	}

	if key.Matches(msg, zstyle.KeyUp) {
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	}

	if key.Matches(msg, zstyle.KeyDown) {
		if m.cursor < len(m.employees)-1 {
			m.cursor++
		}
		return m, nil
	}

	if msg.String() == "c" {
		return m, copyCmd("email", m.employees[m.cursor].Email)
	}

	return m, nil
}

func (m listModel) View() string {
	accentStyle := lipgloss.NewStyle().Foreground(zstyle.ZburnAccent).Bold(true)

	s := "\n"

	if len(m.employees) == 0 {
		s += "  " + zstyle.MutedText.Render("no registrations") + "\n"
		s += "\n"
		s += m.flashLine()
		return s
	}

	for i, e := range m.employees {
		name := truncate(e.Name(), 22)
		email := truncate(e.Email, 30)
		line := fmt.Sprintf("%-22s %-30s %-8s", name, email, e.EmployeeID)
		line += "  " + zstyle.MutedText.Render(e.CreatedAt.Format("2006-01-02"))

		if i == m.cursor {
			s += "  " + accentStyle.Render("▸") + " " + line + "\n"
		} else {
			s += "    " + line + "\n"
		}
	}

	if e := m.employees[m.cursor]; e.Phone != "" || e.Location != "" {
		s += "\n  " + zstyle.MutedText.Render(e.Phone+"  "+e.Location) + "\n"
	}

	s += "\n"
	s += m.flashLine()
	return s
}

// flashLine always reserves a line for flash to prevent layout shift.
func (m listModel) flashLine() string {
	if m.flash != "" {
		return "  " + zstyle.StatusWarn.Render(m.flash) + "\n"
	}
	return "\n"
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}
