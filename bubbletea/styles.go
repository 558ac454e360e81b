package bubbletea

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/medichat/medichat"
)

// Styles maps a Theme to lipgloss styles for TUI rendering.
type Styles struct {
	UserMsg lipgloss.Style
	BotMsg  lipgloss.Style
	Error   lipgloss.Style
	Success lipgloss.Style
	Muted   lipgloss.Style
	Accent  lipgloss.Style
	Link    lipgloss.Style
	Admin   lipgloss.Style
	Bold    lipgloss.Style

	UserBubble lipgloss.Style
	BotBubble  lipgloss.Style
	NavActive  lipgloss.Style
	Avatar     lipgloss.Style
	Modal      lipgloss.Style
}

// NewStyles creates Styles from a Theme.
func NewStyles(t medichat.Theme) Styles {
	return Styles{
		UserMsg: lipgloss.NewStyle().Foreground(ansiColor(t.UserMsg)).Bold(true),
		BotMsg:  lipgloss.NewStyle().Foreground(ansiColor(t.BotMsg)).Bold(true),
		Error:   lipgloss.NewStyle().Foreground(ansiColor(t.Error)),
		Success: lipgloss.NewStyle().Foreground(ansiColor(t.Success)),
		Muted:   lipgloss.NewStyle().Foreground(ansiColor(t.Muted)).Faint(true),
		Accent:  lipgloss.NewStyle().Foreground(ansiColor(t.Accent)).Bold(true),
		Link:    lipgloss.NewStyle().Foreground(ansiColor(t.Link)),
		Admin:   lipgloss.NewStyle().Foreground(ansiColor(t.Admin)).Bold(true),
		Bold:    lipgloss.NewStyle().Bold(true),

		UserBubble: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, true, false, false).
			BorderForeground(ansiColor(t.UserMsg)).
			PaddingRight(1),
		BotBubble: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(ansiColor(t.BotMsg)).
			PaddingLeft(1),
		NavActive: lipgloss.NewStyle().Foreground(ansiColor(t.Accent)).Bold(true).Reverse(true).Padding(0, 1),
		Avatar:    lipgloss.NewStyle().Foreground(ansiColor(t.Accent)).Bold(true),
		Modal: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ansiColor(t.Accent)).
			Padding(1, 2),
	}
}

func ansiColor(index int) lipgloss.TerminalColor {
	if index < 0 {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(strconv.Itoa(index))
}
