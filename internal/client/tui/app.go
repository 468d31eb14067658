// internal/client/tui/app.go
//
// Full-screen terminal UI for the notice board. It follows bubbletea's Elm
// architecture: all state lives on App, Update applies one message at a time
// and network calls run as tea.Cmds whose results come back as *Msg values.
//
// Screens map onto the paths of the web client: the public board at "/",
// sign-in at "/admin", the dashboard and the upload form below it. Admin
// screens are wrapped by route guards that consult the session store.

package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dmitrijs2005/noticeboard/internal/client/client"
	"github.com/dmitrijs2005/noticeboard/internal/client/feed"
	"github.com/dmitrijs2005/noticeboard/internal/client/guard"
	"github.com/dmitrijs2005/noticeboard/internal/client/models"
	"github.com/dmitrijs2005/noticeboard/internal/client/session"
	"github.com/dmitrijs2005/noticeboard/internal/common"
	"github.com/dmitrijs2005/noticeboard/internal/logging"
)

// screen represents which page is shown
type screen int

const (
	screenBoard     screen = iota // public notice board
	screenSignIn                  // admin sign-in form
	screenDashboard               // admin profile
	screenUpload                  // document upload form
)

var screenPaths = map[screen]string{
	screenBoard:     common.PublicEntryPoint,
	screenSignIn:    common.SignInPath,
	screenDashboard: common.DashboardPath,
	screenUpload:    common.UploadPath,
}

func screenFor(path string) screen {
	for s, p := range screenPaths {
		if p == path {
			return s
		}
	}
	return screenBoard
}

// App is the bubbletea model.
type App struct {
	ctx      context.Context
	sessions session.Service
	feed     *feed.Feed
	uploader client.Uploader
	logger   logging.Logger

	screen  screen
	session models.Session
	outcome guard.Outcome

	adminGuard  *guard.Guard
	signInGuard *guard.Guard
	pendingNav  string

	width  int
	height int

	board  boardView
	signIn signInView
	upload uploadView
}

func NewApp(ctx context.Context, sessions session.Service, notices client.NoticeSource, uploader client.Uploader, logger logging.Logger) *App {
	a := &App{
		ctx:      ctx,
		sessions: sessions,
		feed:     feed.New(notices, logger),
		uploader: uploader,
		logger:   logger.With("module", "tui"),
		screen:   screenBoard,
		session:  sessions.Current(),
		outcome:  guard.Children,
		board:    newBoardView(),
		signIn:   newSignInView(),
		upload:   newUploadView(),
	}
	nav := func(path string) { a.pendingNav = path }
	a.adminGuard = guard.RequireAuth(common.PublicEntryPoint, nav)
	a.signInGuard = guard.RedirectAuthenticated(common.DashboardPath, nav)
	return a
}

// Init resolves the session and loads the board.
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.refreshSession(), a.mountBoard())
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.board.resize(msg.Width, msg.Height)
		a.board.render(a.feed.State())
		return a, nil

	case sessionMsg:
		a.session = msg.session
		return a, a.evaluate()

	case noticesLoadedMsg:
		return a, a.handleNoticesLoaded(msg)

	case signInResultMsg:
		return a, a.handleSignInResult(msg)

	case signOutMsg:
		return a, a.handleSignOut(msg)

	case uploadDoneMsg:
		return a, a.handleUploadDone(msg)

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return a, tea.Quit
		}
		switch a.screen {
		case screenBoard:
			return a, a.updateBoard(msg)
		case screenSignIn:
			return a, a.updateSignIn(msg)
		case screenDashboard:
			return a, a.updateDashboard(msg)
		case screenUpload:
			return a, a.updateUpload(msg)
		}
		return a, nil
	}

	return a, a.updateInputs(msg)
}

// updateInputs hands other messages, such as cursor blinks, to the text
// inputs. Unfocused inputs ignore them.
func (a *App) updateInputs(msg tea.Msg) tea.Cmd {
	cmds := make([]tea.Cmd, 5)
	a.board.filter, cmds[0] = a.board.filter.Update(msg)
	a.signIn.email, cmds[1] = a.signIn.email.Update(msg)
	a.signIn.password, cmds[2] = a.signIn.password.Update(msg)
	a.upload.title, cmds[3] = a.upload.title.Update(msg)
	a.upload.path, cmds[4] = a.upload.path.Update(msg)
	return tea.Batch(cmds...)
}

func (a *App) View() string {
	var body string
	switch {
	case a.outcome == guard.Placeholder:
		body = placeholderView()
	case a.screen == screenSignIn:
		body = a.viewSignIn()
	case a.screen == screenDashboard:
		body = a.viewDashboard()
	case a.screen == screenUpload:
		body = a.viewUpload()
	default:
		body = a.viewBoard()
	}
	return body + "\n" + a.footer()
}

// evaluate runs the guard of the current screen against the last seen
// session and performs any navigation it asked for.
func (a *App) evaluate() tea.Cmd {
	switch a.screen {
	case screenSignIn:
		a.outcome = a.signInGuard.Evaluate(a.session)
	case screenDashboard, screenUpload:
		a.outcome = a.adminGuard.Evaluate(a.session)
	default:
		a.outcome = guard.Children
	}

	if path := a.pendingNav; path != "" {
		a.pendingNav = ""
		return a.navigate(path)
	}
	return nil
}

func (a *App) navigate(path string) tea.Cmd {
	a.logger.Debug(a.ctx, "navigate", "path", path)
	return a.enter(screenFor(path))
}

// enter switches to s. Each visit re-arms the screen's guard.
func (a *App) enter(s screen) tea.Cmd {
	a.screen = s

	var cmd tea.Cmd
	switch s {
	case screenBoard:
		if !a.feed.State().Loaded {
			cmd = a.mountBoard()
		}
	case screenSignIn:
		a.signInGuard.Reset()
		a.signIn.reset(a.sessions.LastEmail(a.ctx))
	case screenDashboard:
		a.adminGuard.Reset()
	case screenUpload:
		a.adminGuard.Reset()
		a.upload.reset(a.newUploadForm())
	}

	return tea.Batch(cmd, a.evaluate())
}

func (a *App) refreshSession() tea.Cmd {
	return func() tea.Msg {
		s, _ := a.sessions.Refresh(a.ctx)
		return sessionMsg{session: s}
	}
}
