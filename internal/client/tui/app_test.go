package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/noticeboard/internal/client/client"
	"github.com/dmitrijs2005/noticeboard/internal/client/models"
	"github.com/dmitrijs2005/noticeboard/internal/client/upload"
	"github.com/dmitrijs2005/noticeboard/internal/logging"
)

type fakeSessions struct {
	mu         sync.Mutex
	current    models.Session
	remote     models.Session
	signInRes  client.SignInResult
	signInErr  error
	signOutErr error
	lastEmail  string

	gotEmail    string
	gotPassword string
	signOuts    int
}

func (f *fakeSessions) Current() models.Session {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.current
}

func (f *fakeSessions) Subscribe(func(models.Session)) func() { return func() {} }

func (f *fakeSessions) LastEmail(context.Context) string { return f.lastEmail }

func (f *fakeSessions) Refresh(context.Context) (models.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.current = f.remote
	return f.remote, nil
}

func (f *fakeSessions) SignIn(_ context.Context, email string, pw []byte) (client.SignInResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gotEmail, f.gotPassword = email, string(pw)
	if f.signInErr != nil {
		return client.SignInResult{}, f.signInErr
	}
	if f.signInRes.OK() {
		f.current = models.Authenticated(&models.User{ID: "7", Name: "Ada", Email: email}, time.Time{})
	}
	return f.signInRes, nil
}

func (f *fakeSessions) SignOut(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.signOuts++
	f.current = models.Unauthenticated()
	return f.signOutErr
}

type fakeNotices struct {
	mu      sync.Mutex
	notices []models.Notice
	err     error
	dates   []string
}

func (f *fakeNotices) ListNotices(_ context.Context, date string) ([]models.Notice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dates = append(f.dates, date)
	if f.err != nil {
		return nil, f.err
	}
	return f.notices, nil
}

func (f *fakeNotices) calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.dates...)
}

type fakeUploader struct {
	mu                    sync.Mutex
	title, filename, body string
	calls                 int
	err                   error
}

func (f *fakeUploader) Upload(_ context.Context, title, filename string, content io.Reader) error {
	b, _ := io.ReadAll(content)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.title, f.filename, f.body = title, filename, string(b)
	return f.err
}

var ada = &models.User{ID: "7", Name: "Ada", Email: "ada@example.com"}

var sample = models.Notice{
	ID:        "1",
	Title:     "Exam timetable",
	Content:   "<p>Published for <b>all</b> classes</p>",
	CreatedAt: time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC),
	Admin:     models.NoticeAdmin{Name: "Ada"},
}

func newTestApp(s *fakeSessions, n *fakeNotices, u *fakeUploader) *App {
	if n == nil {
		n = &fakeNotices{}
	}
	if u == nil {
		u = &fakeUploader{}
	}
	return NewApp(context.Background(), s, n, u, logging.NewNopLogger())
}

// runCommands executes cmd and feeds the app's own messages back into
// Update until nothing is left. Commands that do not finish quickly, such
// as cursor blinks, are dropped.
func runCommands(t *testing.T, app *App, cmd tea.Cmd) {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := runCmd(c).(type) {
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case sessionMsg, noticesLoadedMsg, signInResultMsg, signOutMsg, uploadDoneMsg:
			_, next := app.Update(msg)
			queue = append(queue, next)
		}
	}
}

func runCmd(c tea.Cmd) tea.Msg {
	ch := make(chan tea.Msg, 1)
	go func() { ch <- c() }()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(100 * time.Millisecond):
		return nil
	}
}

func press(t *testing.T, app *App, key string) {
	t.Helper()
	var msg tea.KeyMsg
	switch key {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	_, cmd := app.Update(msg)
	runCommands(t, app, cmd)
}

func started(t *testing.T, s *fakeSessions, n *fakeNotices, u *fakeUploader) *App {
	t.Helper()
	app := newTestApp(s, n, u)
	runCommands(t, app, app.Init())
	return app
}

func TestInit_LoadsBoardAndResolvesSession(t *testing.T) {
	n := &fakeNotices{notices: []models.Notice{sample}}
	app := started(t, &fakeSessions{current: models.Loading(), remote: models.Unauthenticated()}, n, nil)

	assert.Equal(t, models.StatusUnauthenticated, app.session.Status)
	assert.Equal(t, []string{""}, n.calls())
	assert.Equal(t, screenBoard, app.screen)

	view := app.View()
	assert.Contains(t, view, "Notice Board")
	assert.Contains(t, view, "All notices")
	assert.Contains(t, view, "Exam timetable")
	assert.Contains(t, view, "Uploaded on 2024-01-15 by Ada")
	assert.Contains(t, view, "Published for all classes")
}

func TestBoard_Empty(t *testing.T) {
	app := started(t, &fakeSessions{remote: models.Unauthenticated()}, nil, nil)
	assert.Contains(t, app.View(), "No notices found.")
}

func TestBoard_FilterByDate(t *testing.T) {
	n := &fakeNotices{notices: []models.Notice{sample}}
	app := started(t, &fakeSessions{remote: models.Unauthenticated()}, n, nil)

	press(t, app, "f")
	require.True(t, app.board.filter.Focused())
	press(t, app, "2024-01-15")
	press(t, app, "enter")

	assert.False(t, app.board.filter.Focused())
	assert.Equal(t, []string{"", "2024-01-15"}, n.calls())
	assert.Equal(t, "2024-01-15", app.feed.State().Filter.Date)
	assert.Contains(t, app.View(), "Notices for 2024-01-15")

	press(t, app, "c")
	assert.Equal(t, []string{"", "2024-01-15", ""}, n.calls())
	assert.Empty(t, app.feed.State().Filter.Date)
	assert.Contains(t, app.View(), "All notices")
}

func TestBoard_InvalidDateDoesNotLoad(t *testing.T) {
	n := &fakeNotices{}
	app := started(t, &fakeSessions{remote: models.Unauthenticated()}, n, nil)

	press(t, app, "f")
	press(t, app, "15/01/2024")
	press(t, app, "enter")

	assert.Equal(t, []string{""}, n.calls())
	assert.Contains(t, app.View(), invalidDateMessage)
}

func TestBoard_FailedReloadKeepsNotices(t *testing.T) {
	n := &fakeNotices{notices: []models.Notice{sample}}
	app := started(t, &fakeSessions{remote: models.Unauthenticated()}, n, nil)

	n.mu.Lock()
	n.err = errors.New("boom")
	n.mu.Unlock()
	press(t, app, "r")

	view := app.View()
	assert.Contains(t, view, "Error: boom")
	assert.Contains(t, view, "Exam timetable")
}

func TestBoard_QuitAndCtrlC(t *testing.T) {
	app := started(t, &fakeSessions{remote: models.Unauthenticated()}, nil, nil)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	_, cmd = app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestSignIn_SignedOutSeesForm(t *testing.T) {
	app := started(t, &fakeSessions{remote: models.Unauthenticated(), lastEmail: "old@example.com"}, nil, nil)

	press(t, app, "a")

	assert.Equal(t, screenSignIn, app.screen)
	assert.Equal(t, "old@example.com", app.signIn.email.Value())
	assert.Equal(t, 1, app.signIn.focus)
	assert.Contains(t, app.View(), "Admin Sign In")
}

func TestSignIn_SuccessNavigatesToDashboard(t *testing.T) {
	s := &fakeSessions{remote: models.Unauthenticated()}
	app := started(t, s, nil, nil)

	press(t, app, "a")
	press(t, app, "ada@example.com")
	press(t, app, "tab")
	press(t, app, "secret")

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Contains(t, app.View(), "Signing in...")
	_, again := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, again, "second submit while in flight")

	runCommands(t, app, cmd)

	assert.Equal(t, "ada@example.com", s.gotEmail)
	assert.Equal(t, "secret", s.gotPassword)
	assert.Equal(t, screenDashboard, app.screen)
	assert.Empty(t, app.signIn.password.Value())

	view := app.View()
	assert.Contains(t, view, "Admin Dashboard")
	assert.Contains(t, view, "ada@example.com")
}

func TestSignIn_RejectedStaysWithMessage(t *testing.T) {
	s := &fakeSessions{remote: models.Unauthenticated(), signInRes: client.SignInResult{Error: "CredentialsSignin"}}
	app := started(t, s, nil, nil)

	press(t, app, "a")
	press(t, app, "ada@example.com")
	press(t, app, "tab")
	press(t, app, "wrong")
	press(t, app, "enter")

	assert.Equal(t, screenSignIn, app.screen)
	assert.False(t, app.signIn.submitting)
	assert.Contains(t, app.View(), "CredentialsSignin")
}

func TestSignIn_TransportError(t *testing.T) {
	s := &fakeSessions{remote: models.Unauthenticated(), signInErr: fmt.Errorf("sign in: %w", client.ErrUnavailable)}
	app := started(t, s, nil, nil)

	press(t, app, "a")
	press(t, app, "tab")
	press(t, app, "pw")
	press(t, app, "enter")

	assert.Equal(t, screenSignIn, app.screen)
	assert.Contains(t, app.View(), "Sign in failed: server unavailable")
}

func TestSignIn_AuthenticatedIsRedirected(t *testing.T) {
	app := started(t, &fakeSessions{remote: models.Authenticated(ada, time.Time{})}, nil, nil)

	press(t, app, "a")
	assert.Equal(t, screenDashboard, app.screen)
}

func TestSignIn_EscReturnsToBoard(t *testing.T) {
	app := started(t, &fakeSessions{remote: models.Unauthenticated()}, nil, nil)

	press(t, app, "a")
	press(t, app, "esc")
	assert.Equal(t, screenBoard, app.screen)
}

func TestDashboard_UnauthenticatedIsRedirected(t *testing.T) {
	app := started(t, &fakeSessions{remote: models.Unauthenticated()}, nil, nil)

	runCommands(t, app, app.enter(screenDashboard))
	assert.Equal(t, screenBoard, app.screen)
}

func TestDashboard_LoadingShowsPlaceholder(t *testing.T) {
	app := newTestApp(&fakeSessions{current: models.Loading()}, nil, nil)

	runCommands(t, app, app.enter(screenDashboard))

	assert.Equal(t, screenDashboard, app.screen)
	view := app.View()
	assert.Contains(t, view, "Loading...")
	assert.NotContains(t, view, "Admin Dashboard")

	_, cmd := app.Update(sessionMsg{session: models.Authenticated(ada, time.Time{})})
	runCommands(t, app, cmd)
	assert.Contains(t, app.View(), "Admin Dashboard")
}

func TestDashboard_MissingFieldsShowNA(t *testing.T) {
	app := started(t, &fakeSessions{remote: models.Authenticated(&models.User{ID: "9"}, time.Time{})}, nil, nil)

	press(t, app, "a")
	view := app.View()
	assert.Contains(t, view, "N/A")
	assert.Contains(t, view, "9")
}

func TestDashboard_SessionLossRedirects(t *testing.T) {
	app := started(t, &fakeSessions{remote: models.Authenticated(ada, time.Time{})}, nil, nil)
	press(t, app, "a")
	require.Equal(t, screenDashboard, app.screen)

	_, cmd := app.Update(sessionMsg{session: models.Unauthenticated()})
	runCommands(t, app, cmd)
	assert.Equal(t, screenBoard, app.screen)
}

func TestDashboard_SignOut(t *testing.T) {
	s := &fakeSessions{remote: models.Authenticated(ada, time.Time{}), signOutErr: errors.New("offline")}
	app := started(t, s, nil, nil)
	press(t, app, "a")

	press(t, app, "s")

	assert.Equal(t, 1, s.signOuts)
	assert.Equal(t, screenBoard, app.screen)
	assert.False(t, app.session.IsAuthenticated())
}

func writeTempFile(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func openUpload(t *testing.T, u *fakeUploader) *App {
	t.Helper()
	app := started(t, &fakeSessions{remote: models.Authenticated(ada, time.Time{})}, nil, u)
	press(t, app, "a")
	press(t, app, "u")
	require.Equal(t, screenUpload, app.screen)
	return app
}

func TestUpload_Success(t *testing.T) {
	u := &fakeUploader{}
	app := openUpload(t, u)
	path := writeTempFile(t, "minutes.pdf", "%PDF")

	press(t, app, "Minutes")
	press(t, app, "tab")
	press(t, app, path)
	press(t, app, "enter")

	assert.Equal(t, 1, u.calls)
	assert.Equal(t, "Minutes", u.title)
	assert.Equal(t, "minutes.pdf", u.filename)
	assert.Equal(t, "%PDF", u.body)

	assert.Empty(t, app.upload.title.Value())
	assert.Empty(t, app.upload.path.Value())
	assert.Contains(t, app.View(), upload.SuccessMessage)
}

func TestUpload_MissingFields(t *testing.T) {
	u := &fakeUploader{}
	app := openUpload(t, u)

	press(t, app, "Minutes")
	press(t, app, "tab")
	press(t, app, "enter")

	assert.Zero(t, u.calls)
	assert.Contains(t, app.View(), missingFieldsMessage)
}

func TestUpload_ServerFailureKeepsFields(t *testing.T) {
	u := &fakeUploader{err: &client.StatusError{Method: "POST", Path: "/api/upload", StatusCode: 500}}
	app := openUpload(t, u)
	path := writeTempFile(t, "a.txt", "x")

	press(t, app, "Minutes")
	press(t, app, "tab")
	press(t, app, path)
	press(t, app, "enter")

	assert.Equal(t, "Minutes", app.upload.title.Value())
	assert.Equal(t, path, app.upload.path.Value())
	view := app.View()
	assert.Contains(t, view, upload.FailureMessage)
	assert.NotContains(t, view, upload.SuccessMessage)
}

func TestUpload_ResultForOldFormIgnored(t *testing.T) {
	app := openUpload(t, &fakeUploader{})
	old := app.upload.form

	press(t, app, "esc")
	press(t, app, "u")
	require.NotSame(t, old, app.upload.form)

	app.upload.submitting = true
	_, cmd := app.Update(uploadDoneMsg{form: old})
	assert.Nil(t, cmd)
	assert.True(t, app.upload.submitting)
}

func TestUpload_UnauthorizedReturnsToBoard(t *testing.T) {
	s := &fakeSessions{remote: models.Authenticated(ada, time.Time{})}
	u := &fakeUploader{err: &client.StatusError{Method: "POST", Path: "/api/upload", StatusCode: 401}}
	app := started(t, s, nil, u)
	press(t, app, "a")
	press(t, app, "u")
	require.Equal(t, screenUpload, app.screen)

	s.mu.Lock()
	s.remote = models.Unauthenticated()
	s.mu.Unlock()

	press(t, app, "Minutes")
	press(t, app, "tab")
	press(t, app, writeTempFile(t, "a.txt", "x"))
	press(t, app, "enter")

	assert.Equal(t, 1, u.calls)
	assert.Equal(t, screenBoard, app.screen)
}

func TestBoard_StripsTerminalEscapes(t *testing.T) {
	hostile := sample
	hostile.Title = "Exam\x1b]0;pwned\x07"
	hostile.Admin = models.NoticeAdmin{Name: "Ada\u009b2J"}
	hostile.Content = "<p>Published\x1b]52;c;Zm9v\x07</p>"
	n := &fakeNotices{notices: []models.Notice{hostile}}
	app := started(t, &fakeSessions{remote: models.Unauthenticated()}, n, nil)

	view := app.View()
	assert.NotContains(t, view, "\x1b]")
	assert.NotContains(t, view, "\x07")
	assert.NotContains(t, view, "\u009b")
	assert.Contains(t, view, "Exam]0;pwned")
	assert.Contains(t, view, "by Ada2J")
}
