package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/noticeboard/internal/client/client"
	"github.com/dmitrijs2005/noticeboard/internal/client/guard"
	"github.com/dmitrijs2005/noticeboard/internal/common"
)

// Prompt seams.
var (
	askLine     = AskLine
	askPassword = AskPassword
)

// Login opens the sign-in screen. An admin who is already signed in is sent
// to the dashboard instead. Otherwise the user is prompted for email and
// password; a rejection by the provider is printed verbatim.
//
// The password is wiped before returning.
func (a *App) Login(ctx context.Context) error {
	if a.signInGuard.Evaluate(a.resolve(ctx)) != guard.Children {
		printlnFn("Already signed in.")
		return nil
	}
	a.navigate(common.SignInPath)

	prompt := "Enter email"
	last := a.sessions.LastEmail(ctx)
	if last != "" {
		prompt += " [" + last + "]"
	}
	email, err := askLine(a.reader, a.out, prompt)
	if err != nil {
		return err
	}
	if email == "" {
		email = last
	}

	password, err := askPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	printlnFn("Signing in...")
	res, err := a.sessions.SignIn(ctx, email, password)
	if err != nil {
		printlnFn("Sign in failed:", describe(err))
		return err
	}
	if !res.OK() {
		printlnFn(res.Error)
		return nil
	}

	a.signInGuard.Evaluate(a.sessions.Current())
	printlnFn("Signed in as", email)
	return nil
}

// Logout ends the session and returns to the public board.
func (a *App) Logout(ctx context.Context) error {
	err := a.sessions.SignOut(ctx)
	a.navigate(common.PublicEntryPoint)
	if err != nil {
		printlnFn("Signed out locally; server said:", describe(err))
		return err
	}
	printlnFn("Signed out.")
	return nil
}

func describe(err error) string {
	if errors.Is(err, client.ErrUnavailable) {
		return "server unavailable"
	}
	return err.Error()
}
