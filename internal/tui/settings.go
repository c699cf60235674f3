package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/zarlcorp/core/pkg/zstyle"
	"github.com/zarlcorp/zform/internal/store"
)

type settingsChoice int

const (
	settingsTheme settingsChoice = iota
	settingsNotifications
	settingsName
	settingsBack
)

var settingsItems = []string{
	"theme",
	"notifications",
	"display name",
	"back",
}

// settingsModel toggles preferences and edits the profile name in place.
type settingsModel struct {
	cursor   int
	settings store.Settings
	name     textinput.Model
	editing  bool
}

// toggleThemeMsg asks the root to flip the theme.
type toggleThemeMsg struct{}

// toggleNotificationsMsg asks the root to flip notifications.
type toggleNotificationsMsg struct{}

// updateNameMsg carries an edited profile name.
type updateNameMsg struct {
	name string
}

func newSettingsModel(p store.Profile, st store.Settings) settingsModel {
	ti := textinput.New()
	ti.CharLimit = 64
	ti.Width = 30
	ti.Prompt = ""
	ti.SetValue(p.Name)

	return settingsModel{
		settings: st,
		name:     ti,
	}
}

// withSettings refreshes the displayed settings after the root applied a
// change.
func (m settingsModel) withSettings(st store.Settings) settingsModel {
	m.settings = st
	return m
}

func (m settingsModel) Init() tea.Cmd {
	return nil
}

func (m settingsModel) Update(msg tea.Msg) (settingsModel, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.editing {
			var cmd tea.Cmd
			m.name, cmd = m.name.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	if m.editing {
		return m.handleEditKey(km)
	}

	if key.Matches(km, zstyle.KeyQuit) {
		return m, tea.Quit
	}

	if key.Matches(km, zstyle.KeyBack) {
		return m, func() tea.Msg { return navigateMsg{view: viewMenu} }
	}

	if key.Matches(km, zstyle.KeyUp) {
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	}

	if key.Matches(km, zstyle.KeyDown) {
		if m.cursor < len(settingsItems)-1 {
			m.cursor++
		}
		return m, nil
	}

	if key.Matches(km, zstyle.KeyEnter) || km.String() == " " {
		return m.selectItem()
	}

	return m, nil
}

// handleEditKey edits the name. Every change is sent to the store as it
// is typed; enter or esc stops editing.
func (m settingsModel) handleEditKey(msg tea.KeyMsg) (settingsModel, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	if key.Matches(msg, zstyle.KeyEnter) || key.Matches(msg, zstyle.KeyBack) {
		m.editing = false
		m.name.Blur()
		return m, nil
	}

	before := m.name.Value()
	var cmd tea.Cmd
	m.name, cmd = m.name.Update(msg)
	if after := m.name.Value(); after != before {
		update := func() tea.Msg { return updateNameMsg{name: after} }
		return m, tea.Batch(cmd, update)
	}
	return m, cmd
}

func (m settingsModel) selectItem() (settingsModel, tea.Cmd) {
	switch settingsChoice(m.cursor) {
	case settingsTheme:
		return m, func() tea.Msg { return toggleThemeMsg{} }
	case settingsNotifications:
		return m, func() tea.Msg { return toggleNotificationsMsg{} }
	case settingsName:
		m.editing = true
		m.name.CursorEnd()
		m.name.Focus()
		return m, textinput.Blink
	case settingsBack:
		return m, func() tea.Msg { return navigateMsg{view: viewMenu} }
	}
	return m, nil
}

func (m settingsModel) valueFor(choice settingsChoice) string {
	switch choice {
	case settingsTheme:
		return zstyle.Highlight.Render(string(m.settings.Theme))
	case settingsNotifications:
		if m.settings.Notifications {
			return zstyle.StatusOK.Render("on")
		}
		return zstyle.StatusErr.Render("off")
	case settingsName:
		return m.name.View()
	}
	return ""
}

func (m settingsModel) View() string {
	s := "\n"

	for i, item := range settingsItems {
		choice := settingsChoice(i)

		mi := zstyle.MenuItem{
			Label:  item,
			Active: m.cursor == i,
		}
		line := zstyle.RenderMenuItem(mi, zstyle.ZburnAccent)
		if v := m.valueFor(choice); v != "" {
			line += " " + v
		}
		s += line + "\n"
	}

	s += "\n"
	if m.editing {
		s += "  " + zstyle.MutedText.Render("editing name: enter or esc to finish") + "\n"
	} else {
		s += "\n"
	}
	return s
}
