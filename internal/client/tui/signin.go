package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dmitrijs2005/noticeboard/internal/client/client"
	"github.com/dmitrijs2005/noticeboard/internal/common"
)

type signInView struct {
	email      textinput.Model
	password   textinput.Model
	focus      int
	submitting bool
	err        string
}

func newSignInView() signInView {
	email := textinput.New()
	email.Placeholder = "admin@example.org"
	email.Prompt = ""
	email.Width = 32

	pw := textinput.New()
	pw.Prompt = ""
	pw.Width = 32
	pw.EchoMode = textinput.EchoPassword
	pw.EchoCharacter = '•'

	return signInView{email: email, password: pw}
}

// reset prepares the form for a new visit, prefilled with email.
func (v *signInView) reset(email string) {
	v.email.SetValue(email)
	v.password.SetValue("")
	v.submitting = false
	v.err = ""
	v.focusOn(0)
	if email != "" {
		v.focusOn(1)
	}
}

func (v *signInView) focusOn(i int) tea.Cmd {
	v.focus = i
	if i == 0 {
		v.password.Blur()
		return v.email.Focus()
	}
	v.email.Blur()
	return v.password.Focus()
}

func (a *App) updateSignIn(msg tea.KeyMsg) tea.Cmd {
	v := &a.signIn

	switch msg.String() {
	case "esc":
		return a.navigate(common.PublicEntryPoint)
	case "tab", "shift+tab", "up", "down":
		return v.focusOn(1 - v.focus)
	case "enter":
		if v.focus == 0 {
			return v.focusOn(1)
		}
		return a.submitSignIn()
	}

	if v.submitting {
		return nil
	}

	var cmd tea.Cmd
	if v.focus == 0 {
		v.email, cmd = v.email.Update(msg)
	} else {
		v.password, cmd = v.password.Update(msg)
	}
	return cmd
}

func (a *App) submitSignIn() tea.Cmd {
	v := &a.signIn
	if v.submitting {
		return nil
	}

	email := strings.TrimSpace(v.email.Value())
	password := []byte(v.password.Value())
	v.submitting = true
	v.err = ""

	return func() tea.Msg {
		defer common.WipeByteArray(password)
		res, err := a.sessions.SignIn(a.ctx, email, password)
		return signInResultMsg{result: res, err: err}
	}
}

func (a *App) handleSignInResult(msg signInResultMsg) tea.Cmd {
	v := &a.signIn
	v.submitting = false

	switch {
	case msg.err != nil:
		a.logger.Warn(a.ctx, "sign in failed", "error", msg.err)
		v.err = "Sign in failed: " + describe(msg.err)
	case !msg.result.OK():
		v.err = msg.result.Error
	default:
		v.password.SetValue("")
	}

	a.session = a.sessions.Current()
	return a.evaluate()
}

func describe(err error) string {
	if errors.Is(err, client.ErrUnavailable) {
		return "server unavailable"
	}
	return err.Error()
}

func (a *App) viewSignIn() string {
	v := a.signIn

	label := "Sign in"
	if v.submitting {
		label = "Signing in..."
	}

	rows := []string{
		headerStyle.Render("Admin Sign In"),
		field("Email", v.email.View()),
		field("Password", v.password.View()),
		"",
		button(label, v.submitting),
	}
	if v.err != "" {
		rows = append(rows, "", errorStyle.Render(v.err))
	}
	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
