package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/noticeboard/internal/client/client"
	"github.com/dmitrijs2005/noticeboard/internal/client/feed"
	"github.com/dmitrijs2005/noticeboard/internal/client/guard"
	"github.com/dmitrijs2005/noticeboard/internal/client/models"
	"github.com/dmitrijs2005/noticeboard/internal/client/session"
	"github.com/dmitrijs2005/noticeboard/internal/common"
	"github.com/dmitrijs2005/noticeboard/internal/logging"
)

type App struct {
	sessions        session.Service
	feed            *feed.Feed
	uploader        client.Uploader
	logger          logging.Logger
	refreshInterval time.Duration

	reader   *bufio.Reader
	out      io.Writer
	location string

	adminGuard  *guard.Guard
	signInGuard *guard.Guard
}

func NewApp(sessions session.Service, notices client.NoticeSource, uploader client.Uploader, refreshInterval time.Duration, logger logging.Logger) *App {
	a := &App{
		sessions:        sessions,
		feed:            feed.New(notices, logger),
		uploader:        uploader,
		logger:          logger.With("module", "console"),
		refreshInterval: refreshInterval,
		reader:          bufio.NewReader(os.Stdin),
		out:             os.Stdout,
		location:        common.PublicEntryPoint,
	}
	a.adminGuard = guard.RequireAuth(common.PublicEntryPoint, a.navigate)
	a.signInGuard = guard.RedirectAuthenticated(common.DashboardPath, a.navigate)
	return a
}

// navigate is the console's notion of moving between screens: the current
// location changes and is shown in the prompt.
func (a *App) navigate(path string) {
	if a.location == path {
		return
	}
	a.location = path
	printlnFn("->", path)
}

func (a *App) isLoggedIn() bool {
	return a.sessions.Current().IsAuthenticated()
}

func (a *App) getStatus() string {
	s := a.location
	if u := a.sessions.Current().User; u != nil && a.isLoggedIn() {
		s = fmt.Sprintf("%s (%s)", s, u.Email)
	}
	return s
}

// Run resolves the session, starts the background session watcher and the
// REPL on stdin. It blocks until the user exits or input ends.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if _, err := a.sessions.Refresh(ctx); err != nil {
		a.logger.Warn(ctx, "initial session read failed", "error", err)
	}

	if w, ok := a.sessions.(interface {
		Watch(context.Context, time.Duration)
	}); ok {
		go w.Watch(ctx, a.refreshInterval)
	}

	printlnFn("Notice board console (type 'help' for commands)")
	_ = a.Notices(ctx, nil)

	runREPL(ctx, a, a.getStatus, a.reader)
}

// resolve returns the current session, reading it from the provider first
// if it has not been resolved yet.
func (a *App) resolve(ctx context.Context) models.Session {
	s := a.sessions.Current()
	if s.Status != models.StatusLoading {
		return s
	}
	s, _ = a.sessions.Refresh(ctx)
	return s
}

// refresh re-reads the session; a failed read counts as signed out.
func (a *App) refresh(ctx context.Context) models.Session {
	s, err := a.sessions.Refresh(ctx)
	if err != nil {
		a.logger.Warn(ctx, "session refresh failed", "error", err)
	}
	return s
}
