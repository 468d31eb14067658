package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dmitrijs2005/noticeboard/internal/client/feed"
	"github.com/dmitrijs2005/noticeboard/internal/client/htmltext"
	"github.com/dmitrijs2005/noticeboard/internal/common"
)

const invalidDateMessage = "Invalid date, use YYYY-MM-DD"

// chrome is the number of lines around the viewport: header, filter,
// status and footer.
const chrome = 7

type boardView struct {
	filter   textinput.Model
	viewport viewport.Model
	inflight int
	message  string
}

func newBoardView() boardView {
	ti := textinput.New()
	ti.Placeholder = "YYYY-MM-DD"
	ti.CharLimit = len(common.DateLayout)
	ti.Width = 12
	ti.Prompt = ""

	return boardView{
		filter:   ti,
		viewport: viewport.New(80, 20),
	}
}

func (b *boardView) resize(width, height int) {
	b.viewport.Width = width
	b.viewport.Height = max(height-chrome, 3)
}

// render rebuilds the scrollable notice list from st.
func (b *boardView) render(st feed.State) {
	if st.Loaded && len(st.Notices) == 0 {
		b.viewport.SetContent(subtleStyle.Render("No notices found."))
		return
	}

	wrap := lipgloss.NewStyle().Width(max(b.viewport.Width-2, 20))
	var sb strings.Builder
	for i, n := range st.Notices {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(noticeTitleStyle.Render(htmltext.StripControl(n.Title)))
		sb.WriteString("\n")
		sb.WriteString(subtleStyle.Render(htmltext.StripControl(n.Byline())))
		if text := htmltext.ToText(n.Content); text != "" {
			sb.WriteString("\n")
			sb.WriteString(wrap.Render(text))
		}
	}
	b.viewport.SetContent(sb.String())
}

func (a *App) mountBoard() tea.Cmd {
	a.board.inflight++
	return func() tea.Msg {
		return noticesLoadedMsg{err: a.feed.Mount(a.ctx)}
	}
}

func (a *App) reloadBoard() tea.Cmd {
	a.board.inflight++
	date := a.feed.State().Filter.Date
	return func() tea.Msg {
		return noticesLoadedMsg{err: a.feed.Load(a.ctx, date)}
	}
}

func (a *App) filterBoard(date string) tea.Cmd {
	if date != "" {
		if _, err := common.ParseDate(date); err != nil {
			a.board.message = invalidDateMessage
			return nil
		}
	}
	a.board.message = ""
	a.board.inflight++
	return func() tea.Msg {
		return noticesLoadedMsg{err: a.feed.SetFilterDate(a.ctx, date)}
	}
}

func (a *App) handleNoticesLoaded(msg noticesLoadedMsg) tea.Cmd {
	if a.board.inflight > 0 {
		a.board.inflight--
	}
	if errors.Is(msg.err, feed.ErrSuperseded) {
		return nil
	}
	a.board.render(a.feed.State())
	a.board.viewport.GotoTop()
	return nil
}

func (a *App) updateBoard(msg tea.KeyMsg) tea.Cmd {
	if a.board.filter.Focused() {
		switch msg.String() {
		case "enter":
			a.board.filter.Blur()
			return a.filterBoard(strings.TrimSpace(a.board.filter.Value()))
		case "esc":
			a.board.filter.Blur()
			a.board.filter.SetValue(a.feed.State().Filter.Date)
			return nil
		}
		var cmd tea.Cmd
		a.board.filter, cmd = a.board.filter.Update(msg)
		return cmd
	}

	switch msg.String() {
	case "q":
		return tea.Quit
	case "f", "/":
		a.board.message = ""
		return a.board.filter.Focus()
	case "c":
		a.board.message = ""
		a.board.filter.SetValue("")
		return a.mountBoard()
	case "r":
		return a.reloadBoard()
	case "a":
		return a.navigate(common.SignInPath)
	}

	var cmd tea.Cmd
	a.board.viewport, cmd = a.board.viewport.Update(msg)
	return cmd
}

func (a *App) viewBoard() string {
	st := a.feed.State()

	var status string
	switch {
	case a.board.inflight > 0:
		status = subtleStyle.Render("Loading notices...")
	case a.board.message != "":
		status = errorStyle.Render(a.board.message)
	case st.Err != "":
		status = errorStyle.Render("Error: " + st.Err)
	case st.Filter.Date != "":
		status = subtleStyle.Render("Notices for " + st.Filter.Date)
	default:
		status = subtleStyle.Render("All notices")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		headerStyle.Render("Notice Board"),
		field("Date", a.board.filter.View()),
		status,
		"",
		a.board.viewport.View(),
	)
}
