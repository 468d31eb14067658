package tui

import (
	"github.com/dmitrijs2005/noticeboard/internal/client/client"
	"github.com/dmitrijs2005/noticeboard/internal/client/models"
	"github.com/dmitrijs2005/noticeboard/internal/client/upload"
)

// sessionMsg carries a session read from the store, either from a refresh
// command or pushed by the store subscription.
type sessionMsg struct {
	session models.Session
}

type noticesLoadedMsg struct {
	err error
}

type signInResultMsg struct {
	result client.SignInResult
	err    error
}

type signOutMsg struct {
	err error
}

// uploadDoneMsg is ignored unless form is still the one on screen.
type uploadDoneMsg struct {
	form *upload.Form
	err  error
}
