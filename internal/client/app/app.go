// Package app wires the noticeboard client together: it opens the local
// session database and log file, builds the backend client and the session
// store, and runs the user interface selected in the configuration.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/noticeboard/internal/client/cli"
	"github.com/dmitrijs2005/noticeboard/internal/client/client"
	"github.com/dmitrijs2005/noticeboard/internal/client/config"
	"github.com/dmitrijs2005/noticeboard/internal/client/session"
	"github.com/dmitrijs2005/noticeboard/internal/client/sessionstore"
	"github.com/dmitrijs2005/noticeboard/internal/client/tui"
	"github.com/dmitrijs2005/noticeboard/internal/filex"
	"github.com/dmitrijs2005/noticeboard/internal/logging"
)

// inMemoryDSN is used when the configured database cannot be opened: the
// client still works, but cookies are lost on exit.
const inMemoryDSN = ":memory:"

type App struct {
	config   *config.Config
	logger   logging.Logger
	db       *sql.DB
	client   *client.HTTPClient
	sessions *session.Store
	closers  []io.Closer
}

func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()

	logPath, err := filex.EnsureParentDir(c.LogFile)
	if err != nil {
		return nil, fmt.Errorf("log dir: %w", err)
	}
	logger, logCloser, err := logging.NewFileLogger(logPath, slog.LevelInfo)
	if err != nil {
		return nil, err
	}

	app := &App{config: c, logger: logger, closers: []io.Closer{logCloser}}

	origin, err := url.Parse(c.ServerURL)
	if err != nil {
		app.close()
		return nil, fmt.Errorf("server url: %w", err)
	}

	db, err := app.openDB(ctx)
	if err != nil {
		app.close()
		return nil, err
	}
	app.db = db
	app.closers = append(app.closers, db)

	dropped, err := sessionstore.BindOrigin(ctx, db, origin.Scheme+"://"+origin.Host)
	if err != nil {
		app.close()
		return nil, err
	}
	if dropped > 0 {
		logger.Info(ctx, "server changed, stored session dropped", "server", c.ServerURL, "entries", dropped)
	}

	repo := sessionstore.NewSQLiteRepository(db)
	jar, err := sessionstore.NewPersistentJar(ctx, origin, repo, logger)
	if err != nil {
		app.close()
		return nil, fmt.Errorf("cookie jar init error: %w", err)
	}

	hc, err := client.NewHTTPClient(c.ServerURL, jar, c.RequestTimeout, logger)
	if err != nil {
		app.close()
		return nil, err
	}

	app.client = hc
	app.sessions = session.NewStore(hc, jar, repo, logger)
	return app, nil
}

// openDB opens the configured session database, falling back to an
// in-memory one so that a broken file never blocks the board.
func (app *App) openDB(ctx context.Context) (*sql.DB, error) {
	path, err := filex.EnsureParentDir(app.config.DatabasePath)
	if err == nil {
		var db *sql.DB
		db, err = sessionstore.Open(ctx, path)
		if err == nil {
			return db, nil
		}
	}

	app.logger.Warn(ctx, "session database unavailable, sessions will not persist",
		"path", app.config.DatabasePath, "error", err)

	db, err := sessionstore.Open(ctx, inMemoryDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	return db, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run blocks until the user quits or the process is signalled, then
// releases the database and the log file.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()
	defer app.close()

	app.initSignalHandler(cancelFunc)

	app.logger.Info(ctx, "Starting app...", "mode", app.config.Mode, "server", app.config.ServerURL)
	defer app.logger.Info(ctx, "App stopped")

	switch app.config.Mode {
	case config.ModeConsole:
		cli.NewApp(app.sessions, app.client, app.client, app.config.SessionRefreshInterval, app.logger).Run(ctx)
		return nil
	default:
		go app.sessions.Watch(ctx, app.config.SessionRefreshInterval)
		return tui.Run(ctx, tui.NewApp(ctx, app.sessions, app.client, app.client, app.logger))
	}
}

func (app *App) close() {
	for i := len(app.closers) - 1; i >= 0; i-- {
		_ = app.closers[i].Close()
	}
	app.closers = nil
}
