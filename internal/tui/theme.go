package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/zarlcorp/core/pkg/zstyle"
	"github.com/zarlcorp/zform/internal/store"
)

// palette holds the styles that change with the display theme.
type palette struct {
	accent lipgloss.Style
	label  lipgloss.Style
	errMsg lipgloss.Style
	panel  lipgloss.Style
}

var (
	lightPalette = palette{
		accent: lipgloss.NewStyle().Foreground(zstyle.ZburnAccent).Bold(true),
		label:  lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		errMsg: lipgloss.NewStyle().Foreground(lipgloss.Color("160")),
		panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("248")).
			Padding(0, 2),
	}

	darkPalette = palette{
		accent: lipgloss.NewStyle().Foreground(lipgloss.Color("111")).Bold(true),
		label:  lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		errMsg: lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("60")).
			Padding(0, 2),
	}
)

func paletteFor(t store.Theme) palette {
	if t == store.ThemeDark {
		return darkPalette
	}
	return lightPalette
}
