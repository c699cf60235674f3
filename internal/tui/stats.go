package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/zarlcorp/core/pkg/zstyle"
	"github.com/zarlcorp/zform/internal/store"
)

const scoreBarWidth = 20

// statsModel shows usage counters and the derived session score.
type statsModel struct {
	profile store.Profile
	stats   store.Stats
	score   int
}

func newStatsModel(p store.Profile, st store.Stats, score int) statsModel {
	return statsModel{profile: p, stats: st, score: score}
}

func (m statsModel) Init() tea.Cmd {
	return nil
}

func (m statsModel) Update(msg tea.Msg) (statsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if key.Matches(msg, zstyle.KeyQuit) {
			return m, tea.Quit
		}
		if key.Matches(msg, zstyle.KeyBack) {
			return m, func() tea.Msg { return navigateMsg{view: viewMenu} }
		}
	}
	return m, nil
}

func (m statsModel) View() string {
	s := "\n"
	s += fmt.Sprintf("  %s  %s\n", zstyle.MutedText.Render("profile         "), m.profile.Name)
	s += fmt.Sprintf("  %s  %d\n", zstyle.MutedText.Render("total visits    "), m.stats.TotalVisits)
	s += fmt.Sprintf("  %s  %d\n", zstyle.MutedText.Render("projects created"), m.stats.ProjectsCreated)
	s += fmt.Sprintf("  %s  %s %d/100\n", zstyle.MutedText.Render("session score   "), scoreBar(m.score), m.score)
	s += "\n"
	return s
}

// scoreBar renders score (0-100) as a fixed-width bar.
func scoreBar(score int) string {
	filled := score * scoreBarWidth / 100
	filled = max(0, min(scoreBarWidth, filled))
	return zstyle.Highlight.Render(strings.Repeat("█", filled)) +
		zstyle.MutedText.Render(strings.Repeat("░", scoreBarWidth-filled))
}

// indent prefixes every line of a rendered block with two spaces.
func indent(block string) string {
	lines := strings.Split(block, "\n")
	for i, l := range lines {
		lines[i] = "  " + l
	}
	return strings.Join(lines, "\n")
}
