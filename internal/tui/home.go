package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/zarlcorp/core/pkg/zstyle"
	"github.com/zarlcorp/zform/internal/form"
	"github.com/zarlcorp/zform/internal/sample"
	"github.com/zarlcorp/zform/internal/store"
	"github.com/zarlcorp/zform/internal/validate"
)

var fieldPlaceholders = map[string]string{
	validate.FirstName:  "Jane",
	validate.LastName:   "Doe",
	validate.Email:      "jane@example.com",
	validate.EmployeeID: "EMP-001",
	validate.Phone:      "(555) 123-4567",
	validate.Location:   "Portland, OR",
}

// homeModel is the employee registration form. Field values live in the
// text inputs; every edit and blur is mirrored into the controller, which
// owns validation and submission.
type homeModel struct {
	controller *form.Controller
	gen        *sample.Generator
	inputs     []textinput.Model
	focus      int
	theme      store.Theme
	flash      string
}

// registeredMsg carries a draft the controller accepted.
type registeredMsg struct {
	draft form.Draft
}

func newHomeModel(c *form.Controller, gen *sample.Generator) homeModel {
	inputs := make([]textinput.Model, len(validate.Fields))
	for i, f := range validate.Fields {
		ti := textinput.New()
		ti.CharLimit = 128
		ti.Width = 40
		ti.Prompt = ""
		ti.Placeholder = fieldPlaceholders[f]
		inputs[i] = ti
	}
	inputs[0].Focus()

	return homeModel{
		controller: c,
		gen:        gen,
		inputs:     inputs,
	}
}

func (m homeModel) Init() tea.Cmd {
	return textinput.Blink
}

// submitted reports whether the form is showing its success panel.
func (m homeModel) submitted() bool {
	return m.controller != nil && m.controller.State() == form.Submitted
}

func (m homeModel) Update(msg tea.Msg) (homeModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.submitted() {
			return m.handleSubmittedKey(msg)
		}
		return m.handleKey(msg)

	case flashMsg:
		m.flash = ""
		return m, nil
	}

	return m.updateInput(msg)
}

func (m homeModel) handleSubmittedKey(msg tea.KeyMsg) (homeModel, tea.Cmd) {
	if key.Matches(msg, zstyle.KeyQuit) {
		return m, tea.Quit
	}
	if key.Matches(msg, zstyle.KeyBack) {
		return m, func() tea.Msg { return navigateMsg{view: viewMenu} }
	}

	switch msg.String() {
	case "n", "ctrl+r", "enter":
		return m.reset()
	}
	return m, nil
}

func (m homeModel) handleKey(msg tea.KeyMsg) (homeModel, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	if key.Matches(msg, zstyle.KeyBack) {
		return m, func() tea.Msg { return navigateMsg{view: viewMenu} }
	}

	switch msg.String() {
	case "tab", "down":
		return m.moveFocus(1)
	case "shift+tab", "up":
		return m.moveFocus(-1)
	case "ctrl+r":
		return m.reset()
	case "ctrl+g":
		return m.fillSample(), nil
	}

	if key.Matches(msg, zstyle.KeyEnter) {
		return m.submit()
	}

	m, cmd := m.updateInput(msg)
	f := validate.Fields[m.focus]
	m.controller.Change(f, m.inputs[m.focus].Value())
	return m, cmd
}

// moveFocus blurs the focused field, which marks it touched, and focuses
// the next one in direction dir.
func (m homeModel) moveFocus(dir int) (homeModel, tea.Cmd) {
	m.blurFocused()
	n := len(m.inputs)
	m.focus = (m.focus + dir + n) % n
	m.inputs[m.focus].Focus()
	return m, textinput.Blink
}

func (m *homeModel) blurFocused() {
	f := validate.Fields[m.focus]
	m.controller.Blur(f, m.inputs[m.focus].Value())
	m.inputs[m.focus].Blur()
}

func (m homeModel) submit() (homeModel, tea.Cmd) {
	// the focused field counts as left when submitting
	m.blurFocused()

	if !m.controller.Submit() {
		m.inputs[m.focus].Focus()
		m.flash = "please fix the highlighted fields"
		return m, clearFlashAfter()
	}

	d := m.controller.Draft()
	return m, func() tea.Msg { return registeredMsg{draft: d} }
}

func (m homeModel) reset() (homeModel, tea.Cmd) {
	m.controller.Reset()
	for i := range m.inputs {
		m.inputs[i].SetValue("")
		m.inputs[i].Blur()
	}
	m.focus = 0
	m.flash = ""
	m.inputs[0].Focus()
	return m, textinput.Blink
}

// fillSample replaces every field with generated values, as if typed.
func (m homeModel) fillSample() homeModel {
	d := m.gen.Draft("")
	for i, f := range validate.Fields {
		v := d.Get(f)
		m.inputs[i].SetValue(v)
		m.controller.Change(f, v)
	}
	return m
}

func (m homeModel) updateInput(msg tea.Msg) (homeModel, tea.Cmd) {
	if len(m.inputs) == 0 {
		return m, nil
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m homeModel) View() string {
	if m.submitted() {
		return m.viewSubmitted()
	}

	p := paletteFor(m.theme)
	s := "\n"

	for i, f := range validate.Fields {
		label := p.label.Render(fmt.Sprintf("%-14s", validate.Label(f)))
		cursor := "  "
		if i == m.focus {
			cursor = p.accent.Render("> ")
		}

		s += fmt.Sprintf("  %s%s %s\n", cursor, label, m.inputs[i].View())
		if msg := m.controller.Message(f); msg != "" {
			s += fmt.Sprintf("  %16s %s\n", "", p.errMsg.Render(msg))
		}
	}

	s += "\n"

	// always reserve a line for flash to prevent layout shift
	if m.flash != "" {
		s += "  " + zstyle.StatusWarn.Render(m.flash) + "\n"
	} else {
		s += "\n"
	}
	return s
}

func (m homeModel) viewSubmitted() string {
	p := paletteFor(m.theme)
	d := m.controller.Draft()

	body := zstyle.StatusOK.Render("Registration complete") + "\n\n"
	body += fmt.Sprintf("%s %s\n", p.label.Render("name  "), d.FirstName+" "+d.LastName)
	body += fmt.Sprintf("%s %s\n", p.label.Render("email "), d.Email)
	if d.EmployeeID != "" {
		body += fmt.Sprintf("%s %s\n", p.label.Render("id    "), d.EmployeeID)
	}
	body += "\n" + zstyle.MutedText.Render("press n to register another")

	s := "\n" + indent(p.panel.Render(body)) + "\n\n"
	if m.flash != "" {
		s += "  " + zstyle.StatusOK.Render(m.flash) + "\n"
	} else {
		s += "\n"
	}
	return s
}
