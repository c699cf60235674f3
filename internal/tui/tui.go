// Package tui implements the root Bubble Tea model for zform.
package tui

import (
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/zarlcorp/core/pkg/zstyle"
	"github.com/zarlcorp/zform/internal/employee"
	"github.com/zarlcorp/zform/internal/form"
	"github.com/zarlcorp/zform/internal/sample"
	"github.com/zarlcorp/zform/internal/store"
	"go.uber.org/zap"
)

type viewID int

const (
	viewMenu viewID = iota
	viewHome
	viewStats
	viewSettings
	viewList
)

// Model is the root TUI model.
type Model struct {
	version  string
	store    *store.Store
	registry *employee.Registry
	gen      *sample.Generator
	log      *zap.Logger
	notice   string

	active   viewID
	menu     menuModel
	home     homeModel
	stats    statsModel
	settings settingsModel
	list     listModel

	// terminal dimensions
	width  int
	height int
}

// Options configures the root model.
type Options struct {
	Version  string
	Store    *store.Store
	Registry *employee.Registry
	Log      *zap.Logger

	// Notice is shown on the menu, e.g. when the vault could not be opened.
	Notice string
}

// New creates the root TUI model.
func New(opts Options) Model {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	st := opts.Store
	if st == nil {
		st = store.New(nil, log)
	}
	reg := opts.Registry
	if reg == nil {
		reg = employee.NewRegistry(nil)
	}

	m := Model{
		version:  opts.Version,
		store:    st,
		registry: reg,
		gen:      sample.New(),
		log:      log,
		notice:   opts.Notice,
		active:   viewMenu,
	}
	m.menu = m.newMenu()
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case navigateMsg:
		return m.navigate(msg.view)

	case registeredMsg:
		return m.handleRegistered(msg.draft)

	case toggleThemeMsg:
		theme := m.store.ToggleTheme()
		m.log.Debug("theme toggled", zap.String("theme", string(theme)))
		m.settings = m.settings.withSettings(m.store.Settings())
		return m, nil

	case toggleNotificationsMsg:
		m.store.ToggleNotifications()
		m.settings = m.settings.withSettings(m.store.Settings())
		return m, nil

	case updateNameMsg:
		name := msg.name
		m.store.UpdateProfile(store.ProfilePatch{Name: &name})
		return m, nil
	}

	return m.updateActive(msg)
}

func (m Model) View() string {
	if m.active == viewMenu {
		return m.menu.View()
	}

	var content string
	switch m.active {
	case viewHome:
		content = m.home.View()
	case viewStats:
		content = m.stats.View()
	case viewSettings:
		content = m.settings.View()
	case viewList:
		content = m.list.View()
	}

	header := zstyle.RenderHeader("zform", viewTitle(m.active), zstyle.ZburnAccent)
	sep := zstyle.RenderSeparator(m.width)
	footer := zstyle.RenderFooter(helpFor(m.active, m.home.submitted()))

	return "\n" + header + "\n" + sep + "\n" + content + "\n" + footer + "\n"
}

// viewTitle returns the display title for each view.
func viewTitle(id viewID) string {
	switch id {
	case viewHome:
		return "Register Employee"
	case viewStats:
		return "Statistics"
	case viewSettings:
		return "Settings"
	case viewList:
		return "Registrations"
	}
	return ""
}

// helpFor returns keybinding pairs for each view's footer.
func helpFor(id viewID, submitted bool) []zstyle.HelpPair {
	switch id {
	case viewHome:
		if submitted {
			return []zstyle.HelpPair{
				{Key: "n", Desc: "register another"},
				{Key: "esc", Desc: "back"},
				{Key: "q", Desc: "quit"},
			}
		}
		return []zstyle.HelpPair{
			{Key: "tab", Desc: "next"},
			{Key: "shift+tab", Desc: "prev"},
			{Key: "enter", Desc: "submit"},
			{Key: "ctrl+g", Desc: "sample"},
			{Key: "ctrl+r", Desc: "reset"},
			{Key: "esc", Desc: "back"},
		}
	case viewStats:
		return []zstyle.HelpPair{
			{Key: "esc", Desc: "back"},
			{Key: "q", Desc: "quit"},
		}
	case viewSettings:
		return []zstyle.HelpPair{
			{Key: "up/down", Desc: "navigate"},
			{Key: "enter", Desc: "toggle"},
			{Key: "esc", Desc: "back"},
		}
	case viewList:
		return []zstyle.HelpPair{
			{Key: "j/k", Desc: "navigate"},
			{Key: "c", Desc: "copy email"},
			{Key: "esc", Desc: "back"},
			{Key: "q", Desc: "quit"},
		}
	}
	return nil
}

func (m Model) updateActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.active {
	case viewMenu:
		m.menu, cmd = m.menu.Update(msg)
	case viewHome:
		m.home, cmd = m.home.Update(msg)
	case viewStats:
		m.stats, cmd = m.stats.Update(msg)
	case viewSettings:
		m.settings, cmd = m.settings.Update(msg)
	case viewList:
		m.list, cmd = m.list.Update(msg)
	}

	return m, cmd
}

func (m Model) navigate(view viewID) (tea.Model, tea.Cmd) {
	switch view {
	case viewMenu:
		m.menu = m.newMenu()
		m.active = viewMenu
		return m, tea.ClearScreen

	case viewHome:
		// keep an in-progress draft when coming back to the form
		if m.home.controller == nil {
			m.home = newHomeModel(form.New(m.store), m.gen)
		}
		m.home.theme = m.store.Settings().Theme
		m.active = viewHome
		return m, tea.Batch(tea.ClearScreen, m.home.Init())

	case viewStats:
		m.stats = newStatsModel(m.store.Profile(), m.store.Stats(), m.store.SessionScore())
		m.active = viewStats
		return m, tea.ClearScreen

	case viewSettings:
		m.settings = newSettingsModel(m.store.Profile(), m.store.Settings())
		m.active = viewSettings
		return m, tea.ClearScreen

	case viewList:
		return m.loadList()
	}

	return m, nil
}

func (m Model) newMenu() menuModel {
	mm := newMenuModel(m.version)
	mm.profile = m.store.Profile()
	mm.vaultOK = m.registry.Available()
	mm.notice = m.notice
	mm.theme = m.store.Settings().Theme
	return mm
}

func (m Model) loadList() (tea.Model, tea.Cmd) {
	all, err := m.registry.List()
	if err != nil {
		m.list = newListModel(nil)
		if errors.Is(err, employee.ErrUnavailable) {
			m.list.flash = "vault unavailable: registrations are not saved"
		} else {
			m.list.flash = "load: " + err.Error()
		}
		m.active = viewList
		return m, tea.Batch(tea.ClearScreen, clearFlashAfter())
	}

	m.list = newListModel(all)
	m.active = viewList
	return m, tea.ClearScreen
}

// handleRegistered records an accepted draft. The profile and stats were
// already updated by the form controller.
func (m Model) handleRegistered(d form.Draft) (tea.Model, tea.Cmd) {
	e, err := m.registry.Add(d)
	if err != nil {
		m.log.Warn("save registration", zap.Error(err))
		m.home.flash = "not saved: " + err.Error()
		return m, clearFlashAfter()
	}

	m.log.Info("employee registered", zap.String("id", e.ID))
	if m.store.Settings().Notifications {
		m.home.flash = "saved " + e.ID
		return m, clearFlashAfter()
	}
	return m, nil
}

// flashMsg clears the flash after a timeout.
type flashMsg struct{}

func clearFlashAfter() tea.Cmd {
	return tea.Tick(2*time.Second, func(time.Time) tea.Msg {
		return flashMsg{}
	})
}
