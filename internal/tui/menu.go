package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/zarlcorp/core/pkg/zstyle"
	"github.com/zarlcorp/zform/internal/store"
)

// formVersion is the registration form revision shown in the sidebar.
const formVersion = "v2.5.0"

type menuChoice int

const (
	menuRegister menuChoice = iota
	menuStats
	menuSettings
	menuBrowse
	menuQuit
)

var menuItems = []string{
	"Register employee",
	"Statistics",
	"Settings",
	"Browse registrations",
	"Quit",
}

// menuModel is the main menu view.
type menuModel struct {
	cursor  int
	version string
	profile store.Profile
	theme   store.Theme
	vaultOK bool
	notice  string
}

// navigateMsg tells the root model to switch views.
type navigateMsg struct {
	view viewID
}

func newMenuModel(version string) menuModel {
	return menuModel{version: version}
}

func (m menuModel) Init() tea.Cmd {
	return nil
}

func (m menuModel) Update(msg tea.Msg) (menuModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, zstyle.KeyQuit) {
			return m, tea.Quit
		}

		if key.Matches(msg, zstyle.KeyUp) {
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		}

		if key.Matches(msg, zstyle.KeyDown) {
			if m.cursor < len(menuItems)-1 {
				m.cursor++
			}
			return m, nil
		}

		if key.Matches(msg, zstyle.KeyEnter) {
			return m, m.selectItem()
		}
	}

	return m, nil
}

func (m menuModel) selectItem() tea.Cmd {
	switch menuChoice(m.cursor) {
	case menuRegister:
		return func() tea.Msg { return navigateMsg{view: viewHome} }
	case menuStats:
		return func() tea.Msg { return navigateMsg{view: viewStats} }
	case menuSettings:
		return func() tea.Msg { return navigateMsg{view: viewSettings} }
	case menuBrowse:
		return func() tea.Msg { return navigateMsg{view: viewList} }
	case menuQuit:
		return tea.Quit
	}
	return nil
}

func (m menuModel) View() string {
	p := paletteFor(m.theme)
	title := zstyle.Title.Render("zform")
	ver := zstyle.MutedText.Render(m.version)

	s := fmt.Sprintf("\n  %s %s\n", title, ver)
	s += "  " + zstyle.MutedText.Render("signed in as "+m.profile.Name) + "\n\n"

	for i, item := range menuItems {
		if m.cursor == i {
			s += zstyle.Highlight.Render(fmt.Sprintf("  > %s", item)) + "\n"
		} else {
			s += fmt.Sprintf("    %s\n", item)
		}
	}

	s += "\n"
	s += "  " + p.label.Render("Validation Engine") + "  " + zstyle.StatusOK.Render("operational") + "\n"
	if m.vaultOK {
		s += "  " + p.label.Render("Database Sync") + "      " + zstyle.StatusOK.Render("encrypted") + "\n"
	} else {
		s += "  " + p.label.Render("Database Sync") + "      " + zstyle.StatusWarn.Render("in memory") + "\n"
	}
	s += "  " + p.label.Render("Form version") + "       " + zstyle.MutedText.Render(formVersion) + "\n"

	if m.notice != "" {
		s += "\n  " + zstyle.StatusWarn.Render(m.notice) + "\n"
	}

	s += "\n  " + zstyle.MutedText.Render("j/k navigate  enter select  q quit") + "\n\n"
	return s
}
