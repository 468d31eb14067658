package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dmitrijs2005/noticeboard/internal/client/client"
	"github.com/dmitrijs2005/noticeboard/internal/client/upload"
	"github.com/dmitrijs2005/noticeboard/internal/common"
)

const missingFieldsMessage = "Both title and file are required."

type uploadView struct {
	form       *upload.Form
	title      textinput.Model
	path       textinput.Model
	focus      int
	submitting bool
	message    string
}

func newUploadView() uploadView {
	title := textinput.New()
	title.Placeholder = "Document title"
	title.Prompt = ""
	title.Width = 40

	path := textinput.New()
	path.Placeholder = "/path/to/document.pdf"
	path.Prompt = ""
	path.Width = 40

	return uploadView{title: title, path: path}
}

func (v *uploadView) reset(form *upload.Form) {
	v.form = form
	v.title.SetValue("")
	v.path.SetValue("")
	v.submitting = false
	v.message = ""
	v.focusOn(0)
}

func (v *uploadView) focusOn(i int) tea.Cmd {
	v.focus = i
	if i == 0 {
		v.path.Blur()
		return v.title.Focus()
	}
	v.title.Blur()
	return v.path.Focus()
}

func (a *App) newUploadForm() *upload.Form {
	return upload.NewForm(a.uploader, a.logger)
}

func (a *App) updateUpload(msg tea.KeyMsg) tea.Cmd {
	v := &a.upload

	switch msg.String() {
	case "esc":
		return a.navigate(common.DashboardPath)
	case "tab", "shift+tab", "up", "down":
		return v.focusOn(1 - v.focus)
	case "enter":
		if v.focus == 0 {
			return v.focusOn(1)
		}
		return a.submitUpload()
	}

	if v.submitting {
		return nil
	}

	var cmd tea.Cmd
	if v.focus == 0 {
		v.title, cmd = v.title.Update(msg)
	} else {
		v.path, cmd = v.path.Update(msg)
	}
	return cmd
}

func (a *App) submitUpload() tea.Cmd {
	v := &a.upload
	if v.submitting {
		return nil
	}

	title := strings.TrimSpace(v.title.Value())
	path := strings.TrimSpace(v.path.Value())
	if title == "" || path == "" {
		v.message = missingFieldsMessage
		return nil
	}

	form := v.form
	form.SetTitle(title)
	form.SetFile(upload.LocalFile(path))
	v.submitting = true
	v.message = ""

	return func() tea.Msg {
		return uploadDoneMsg{form: form, err: form.Submit(a.ctx)}
	}
}

func (a *App) handleUploadDone(msg uploadDoneMsg) tea.Cmd {
	v := &a.upload
	if msg.form != v.form {
		return nil
	}
	v.submitting = false

	switch {
	case errors.Is(msg.err, upload.ErrSubmitInFlight):
		return nil
	case errors.Is(msg.err, upload.ErrMissingFields):
		v.message = missingFieldsMessage
		return nil
	case errors.Is(msg.err, client.ErrUnauthorized):
		// The session ended on the server; re-reading it lets the guard
		// send the viewer back to the board.
		return a.refreshSession()
	case msg.err == nil:
		v.title.SetValue("")
		v.path.SetValue("")
		return v.focusOn(0)
	}
	return nil
}

func (a *App) viewUpload() string {
	v := a.upload

	label := "Upload"
	if v.submitting {
		label = "Uploading..."
	}

	rows := []string{
		headerStyle.Render("Upload Document"),
		field("Title", v.title.View()),
		field("File", v.path.View()),
		"",
		button(label, v.submitting),
	}

	var st upload.State
	if v.form != nil {
		st = v.form.State()
	}
	switch {
	case v.message != "":
		rows = append(rows, "", errorStyle.Render(v.message))
	case st.ErrorMessage != "":
		rows = append(rows, "", errorStyle.Render(st.ErrorMessage))
	case st.SuccessMessage != "":
		rows = append(rows, "", successStyle.Render(st.SuccessMessage))
	}
	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
