package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dmitrijs2005/noticeboard/internal/common"
)

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func (a *App) updateDashboard(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "u":
		return a.navigate(common.UploadPath)
	case "s":
		return a.signOut()
	case "esc", "b":
		return a.navigate(common.PublicEntryPoint)
	case "q":
		return tea.Quit
	}
	return nil
}

func (a *App) signOut() tea.Cmd {
	return func() tea.Msg {
		return signOutMsg{err: a.sessions.SignOut(a.ctx)}
	}
}

// handleSignOut leaves the admin area. The store has already dropped the
// local session even if the provider call failed.
func (a *App) handleSignOut(msg signOutMsg) tea.Cmd {
	if msg.err != nil {
		a.logger.Warn(a.ctx, "sign out failed", "error", msg.err)
	}
	a.session = a.sessions.Current()
	return a.navigate(common.PublicEntryPoint)
}

func (a *App) viewDashboard() string {
	var name, email, id string
	if u := a.session.User; u != nil {
		name, email, id = u.Name, u.Email, u.ID
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		headerStyle.Render("Admin Dashboard"),
		boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
			field("Name", orNA(name)),
			field("Email", orNA(email)),
			field("ID", orNA(id)),
		)),
		"",
		lipgloss.JoinHorizontal(lipgloss.Top,
			button("u  Upload document", false),
			"  ",
			button("s  Sign out", false),
		),
	)
}
