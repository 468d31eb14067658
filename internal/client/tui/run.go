package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dmitrijs2005/noticeboard/internal/client/models"
)

// Run starts the full-screen program and blocks until the user quits or ctx
// is cancelled. Session changes made outside the program, such as the
// periodic refresh, are forwarded to it.
func Run(ctx context.Context, app *App) error {
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))

	unsubscribe := app.sessions.Subscribe(func(s models.Session) {
		p.Send(sessionMsg{session: s})
	})
	defer unsubscribe()

	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return err
	}
	return nil
}
