package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#5B8DEF")).
			Padding(0, 0, 1, 0)
	noticeTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F7B801"))
	subtleStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	errorStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
	successStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50"))
	labelStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#CCCCCC")).Width(10)
	buttonStyle      = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#FFFFFF")).
				Background(lipgloss.Color("#5B8DEF")).
				Padding(0, 2)
	buttonBusyStyle = buttonStyle.Background(lipgloss.Color("#999999"))
	boxStyle        = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#5B8DEF")).
			Padding(0, 1)
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666")).Padding(1, 0, 0, 0)
)

func placeholderView() string {
	return subtleStyle.Render("Loading...")
}

func button(label string, busy bool) string {
	if busy {
		return buttonBusyStyle.Render(label)
	}
	return buttonStyle.Render(label)
}

func field(label, input string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(label), input)
}

func (a *App) footer() string {
	var hints []string
	switch a.screen {
	case screenBoard:
		hints = []string{"f filter", "c clear", "r reload", "a admin", "↑/↓ scroll", "q quit"}
	case screenSignIn:
		hints = []string{"tab next field", "enter sign in", "esc board"}
	case screenDashboard:
		hints = []string{"u upload", "s sign out", "esc board"}
	case screenUpload:
		hints = []string{"tab next field", "enter upload", "esc dashboard"}
	}
	return footerStyle.Render(strings.Join(hints, " · "))
}
