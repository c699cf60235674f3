package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/zarlcorp/zform/internal/employee"
	"github.com/zarlcorp/zform/internal/form"
	"github.com/zarlcorp/zform/internal/sample"
	"github.com/zarlcorp/zform/internal/store"
	"github.com/zarlcorp/zform/internal/validate"
)

// helpers

func keyMsg(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func specialKey(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func enterKey() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyEnter}
}

func escKey() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyEsc}
}

func tabKey() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyTab}
}

func newTestHome() (homeModel, *store.Store) {
	st := store.New(nil, nil)
	return newHomeModel(form.New(st), sample.New()), st
}

// typeInto types s into the focused field, one key at a time.
func typeInto(m homeModel, s string) homeModel {
	for _, r := range s {
		m, _ = m.Update(keyMsg(r))
	}
	return m
}

// focusField tabs forward until field is focused.
func focusField(t *testing.T, m homeModel, field string) homeModel {
	t.Helper()
	for range validate.Fields {
		if validate.Fields[m.focus] == field {
			return m
		}
		m, _ = m.Update(tabKey())
	}
	t.Fatalf("field %q never focused", field)
	return m
}

// menu tests

func TestMenuNavigation(t *testing.T) {
	tests := []struct {
		name  string
		downs int
		want  viewID
	}{
		{"register", 0, viewHome},
		{"stats", 1, viewStats},
		{"settings", 2, viewSettings},
		{"browse", 3, viewList},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newMenuModel("1.0")
			for range tt.downs {
				m, _ = m.Update(specialKey(tea.KeyDown))
			}
			_, cmd := m.Update(enterKey())
			if cmd == nil {
				t.Fatal("expected command")
			}
			nav, ok := cmd().(navigateMsg)
			if !ok {
				t.Fatalf("expected navigateMsg, got %T", cmd())
			}
			if nav.view != tt.want {
				t.Errorf("view = %d, want %d", nav.view, tt.want)
			}
		})
	}
}

func TestMenuCursorBounds(t *testing.T) {
	m := newMenuModel("1.0")
	m, _ = m.Update(specialKey(tea.KeyUp))
	if m.cursor != 0 {
		t.Errorf("cursor = %d, want 0", m.cursor)
	}

	for range len(menuItems) + 3 {
		m, _ = m.Update(specialKey(tea.KeyDown))
	}
	if m.cursor != len(menuItems)-1 {
		t.Errorf("cursor = %d, want %d", m.cursor, len(menuItems)-1)
	}
}

func TestMenuViewShowsStatus(t *testing.T) {
	m := newMenuModel("1.0")
	m.profile = store.Profile{Name: "Guest"}
	m.vaultOK = true
	view := m.View()

	for _, want := range []string{"zform", "Guest", "Validation Engine", "encrypted", formVersion} {
		if !strings.Contains(view, want) {
			t.Errorf("menu view missing %q", want)
		}
	}

	m.vaultOK = false
	m.notice = "vault unavailable"
	view = m.View()
	if !strings.Contains(view, "in memory") {
		t.Error("degraded menu should show in memory")
	}
	if !strings.Contains(view, "vault unavailable") {
		t.Error("degraded menu should show notice")
	}
}

// form view tests

func TestHomeChangeDoesNotShowErrors(t *testing.T) {
	m, _ := newTestHome()
	m = typeInto(m, "J0")

	if got := m.controller.Draft().FirstName; got != "J0" {
		t.Fatalf("first name = %q, want J0", got)
	}
	if m.controller.Message(validate.FirstName) != "" {
		t.Error("untouched field should not show an error")
	}
}

func TestHomeTabBlursField(t *testing.T) {
	m, _ := newTestHome()
	m, _ = m.Update(tabKey())

	if m.focus != 1 {
		t.Errorf("focus = %d, want 1", m.focus)
	}
	if got := m.controller.Message(validate.FirstName); got != validate.MsgRequired {
		t.Errorf("message = %q, want %q", got, validate.MsgRequired)
	}
	if !strings.Contains(m.View(), validate.MsgRequired) {
		t.Error("view should show the visible error")
	}
	// the field we moved to is still untouched
	if m.controller.Touched(validate.LastName) {
		t.Error("last name should not be touched yet")
	}
}

func TestHomeShiftTabWraps(t *testing.T) {
	m, _ := newTestHome()
	m, _ = m.Update(specialKey(tea.KeyShiftTab))

	if m.focus != len(validate.Fields)-1 {
		t.Errorf("focus = %d, want %d", m.focus, len(validate.Fields)-1)
	}
}

func TestHomeSubmitValid(t *testing.T) {
	m, st := newTestHome()
	m = typeInto(m, "Jo")
	m, _ = m.Update(tabKey())
	m = typeInto(m, "Doe")
	m, _ = m.Update(tabKey())
	m = typeInto(m, "jo@x.com")

	m, cmd := m.Update(enterKey())
	if !m.submitted() {
		t.Fatal("form should be submitted")
	}
	if cmd == nil {
		t.Fatal("expected registered command")
	}
	reg, ok := cmd().(registeredMsg)
	if !ok {
		t.Fatalf("expected registeredMsg, got %T", cmd())
	}
	if reg.draft.Email != "jo@x.com" {
		t.Errorf("draft email = %q, want jo@x.com", reg.draft.Email)
	}

	if got := st.Profile(); got != (store.Profile{Name: "Jo Doe", Email: "jo@x.com"}) {
		t.Errorf("profile = %+v", got)
	}
	if got := st.Stats().ProjectsCreated; got != 1 {
		t.Errorf("projects = %d, want 1", got)
	}
	if !strings.Contains(m.View(), "Registration complete") {
		t.Error("submitted view should show success panel")
	}
}

func TestHomeSubmitInvalid(t *testing.T) {
	m, st := newTestHome()
	m, _ = m.Update(tabKey())
	m = typeInto(m, "Doe")
	m, _ = m.Update(tabKey())
	m = typeInto(m, "jo@x.com")

	m, _ = m.Update(enterKey())
	if m.submitted() {
		t.Fatal("form should stay in editing")
	}
	if got := m.controller.Message(validate.FirstName); got != validate.MsgRequired {
		t.Errorf("first name message = %q, want %q", got, validate.MsgRequired)
	}
	if m.flash == "" {
		t.Error("expected flash after rejected submit")
	}
	if got := st.Profile().Name; got != "Guest" {
		t.Errorf("profile name = %q, want Guest", got)
	}
	if got := st.Stats().ProjectsCreated; got != 0 {
		t.Errorf("projects = %d, want 0", got)
	}
}

func TestHomeEmployeeIDCorrection(t *testing.T) {
	m, _ := newTestHome()
	m = focusField(t, m, validate.EmployeeID)
	m = typeInto(m, "EMP-12")
	m, _ = m.Update(tabKey())

	if got := m.controller.Message(validate.EmployeeID); got != validate.MsgEmployeeID {
		t.Fatalf("message = %q, want %q", got, validate.MsgEmployeeID)
	}

	m, _ = m.Update(specialKey(tea.KeyShiftTab))
	m, _ = m.Update(specialKey(tea.KeyEnd))
	m = typeInto(m, "3")

	if got := m.controller.Draft().EmployeeID; got != "EMP-123" {
		t.Fatalf("employee id = %q, want EMP-123", got)
	}
	if got := m.controller.Message(validate.EmployeeID); got != "" {
		t.Errorf("message = %q, want none", got)
	}
}

func TestHomeRegisterAnother(t *testing.T) {
	m, _ := newTestHome()
	m = m.fillSample()
	m, _ = m.Update(enterKey())
	if !m.submitted() {
		t.Fatal("sample draft should be accepted")
	}

	m, _ = m.Update(keyMsg('n'))
	if m.submitted() {
		t.Fatal("form should return to editing")
	}
	if m.controller.Draft() != (form.Draft{}) {
		t.Errorf("draft = %+v, want empty", m.controller.Draft())
	}
	for i := range m.inputs {
		if v := m.inputs[i].Value(); v != "" {
			t.Errorf("input %d = %q, want empty", i, v)
		}
	}
	if m.focus != 0 {
		t.Errorf("focus = %d, want 0", m.focus)
	}
}

func TestHomeFillSample(t *testing.T) {
	m, _ := newTestHome()
	m, _ = m.Update(specialKey(tea.KeyCtrlG))

	d := m.controller.Draft()
	if d.FirstName == "" || d.Email == "" || d.EmployeeID == "" {
		t.Fatalf("sample draft incomplete: %+v", d)
	}
	if m.inputs[0].Value() != d.FirstName {
		t.Errorf("input = %q, want %q", m.inputs[0].Value(), d.FirstName)
	}
	if !validate.Valid(d.Values()) {
		t.Errorf("sample draft should be valid: %v", validate.All(d.Values()))
	}
}

func TestHomeResetWhileEditing(t *testing.T) {
	m, _ := newTestHome()
	m = typeInto(m, "Jo")
	m, _ = m.Update(tabKey())
	m, _ = m.Update(specialKey(tea.KeyCtrlR))

	if m.controller.Draft() != (form.Draft{}) {
		t.Errorf("draft = %+v, want empty", m.controller.Draft())
	}
	if m.controller.Touched(validate.FirstName) {
		t.Error("reset should clear touched fields")
	}
}

func TestHomeEscNavigatesBack(t *testing.T) {
	m, _ := newTestHome()
	_, cmd := m.Update(escKey())
	if cmd == nil {
		t.Fatal("expected command")
	}
	if nav, ok := cmd().(navigateMsg); !ok || nav.view != viewMenu {
		t.Errorf("expected navigate to menu, got %v", cmd())
	}
}

func TestHomeTypesQuitKeys(t *testing.T) {
	m, _ := newTestHome()
	m = typeInto(m, "qjk")
	if got := m.controller.Draft().FirstName; got != "qjk" {
		t.Errorf("first name = %q, want qjk", got)
	}
}

// stats view tests

func TestStatsView(t *testing.T) {
	m := newStatsModel(store.Profile{Name: "Ann"}, store.Stats{TotalVisits: 3, ProjectsCreated: 2}, 15)
	view := m.View()

	for _, want := range []string{"Ann", "3", "2", "15/100"} {
		if !strings.Contains(view, want) {
			t.Errorf("stats view missing %q", want)
		}
	}
}

func TestScoreBar(t *testing.T) {
	for _, score := range []int{0, 50, 100} {
		bar := scoreBar(score)
		if n := strings.Count(bar, "█") + strings.Count(bar, "░"); n != scoreBarWidth {
			t.Errorf("score %d: bar width = %d, want %d", score, n, scoreBarWidth)
		}
	}
}

// settings view tests

func TestSettingsToggleCommands(t *testing.T) {
	m := newSettingsModel(store.Profile{Name: "Guest"}, store.Settings{Theme: store.ThemeLight, Notifications: true})

	_, cmd := m.Update(enterKey())
	if _, ok := cmd().(toggleThemeMsg); !ok {
		t.Errorf("expected toggleThemeMsg, got %T", cmd())
	}

	m, _ = m.Update(specialKey(tea.KeyDown))
	_, cmd = m.Update(enterKey())
	if _, ok := cmd().(toggleNotificationsMsg); !ok {
		t.Errorf("expected toggleNotificationsMsg, got %T", cmd())
	}
}

func TestSettingsEditName(t *testing.T) {
	m := newSettingsModel(store.Profile{Name: "Ann"}, store.Default().Settings)
	m.cursor = int(settingsName)

	m, _ = m.Update(enterKey())
	if !m.editing {
		t.Fatal("enter on name should start editing")
	}

	// q must be typed, not quit
	m, _ = m.Update(keyMsg('q'))
	if got := m.name.Value(); got != "Annq" {
		t.Errorf("name = %q, want Annq", got)
	}

	m, _ = m.Update(escKey())
	if m.editing {
		t.Error("esc should stop editing")
	}
}

func TestSettingsViewShowsValues(t *testing.T) {
	m := newSettingsModel(store.Profile{Name: "Ann"}, store.Settings{Theme: store.ThemeDark, Notifications: false})
	view := m.View()

	for _, want := range []string{"dark", "off", "Ann"} {
		if !strings.Contains(view, want) {
			t.Errorf("settings view missing %q", want)
		}
	}
}

// list view tests

func TestListEmpty(t *testing.T) {
	m := newListModel(nil)
	if !strings.Contains(m.View(), "no registrations") {
		t.Error("empty list should say so")
	}
}

func TestListCopyEmail(t *testing.T) {
	var copied string
	orig := clipboardWrite
	clipboardWrite = func(s string) error { copied = s; return nil }
	t.Cleanup(func() { clipboardWrite = orig })

	m := newListModel([]employee.Employee{
		{ID: "a", FirstName: "Jo", LastName: "Doe", Email: "jo@x.com"},
		{ID: "b", FirstName: "Ann", LastName: "Lee", Email: "ann@x.com"},
	})
	m, _ = m.Update(specialKey(tea.KeyDown))

	_, cmd := m.Update(keyMsg('c'))
	if cmd == nil {
		t.Fatal("expected copy command")
	}
	msg := cmd()
	if copied != "ann@x.com" {
		t.Errorf("copied = %q, want ann@x.com", copied)
	}

	m, _ = m.Update(msg)
	if m.flash != "email copied" {
		t.Errorf("flash = %q, want %q", m.flash, "email copied")
	}
}

func TestListCopyError(t *testing.T) {
	m := newListModel(nil)
	m, _ = m.Update(copiedMsg{what: "email", err: errors.New("no clipboard tool")})
	if m.flash != "no clipboard tool" {
		t.Errorf("flash = %q", m.flash)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("a long name here", 6); got != "a lon…" {
		t.Errorf("truncate = %q", got)
	}
}
