package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/noticeboard/internal/client/client"
	"github.com/dmitrijs2005/noticeboard/internal/client/guard"
	"github.com/dmitrijs2005/noticeboard/internal/client/upload"
	"github.com/dmitrijs2005/noticeboard/internal/common"
)

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

// enterAdmin runs the route guard for an admin screen at path. It returns
// common.ErrNotAuthenticated when the screen must not render.
func (a *App) enterAdmin(ctx context.Context, path string) error {
	if a.adminGuard.Evaluate(a.resolve(ctx)) != guard.Children {
		printlnFn("Sign in required.")
		return common.ErrNotAuthenticated
	}
	a.navigate(path)
	return nil
}

// Dashboard shows the signed-in admin's profile.
func (a *App) Dashboard(ctx context.Context) error {
	if err := a.enterAdmin(ctx, common.DashboardPath); err != nil {
		return err
	}

	u := a.sessions.Current().User
	if u == nil {
		return common.ErrNotAuthenticated
	}
	printlnFn("Admin Dashboard")
	printlnFn("Name: ", orNA(u.Name))
	printlnFn("Email:", orNA(u.Email))
	printlnFn("ID:   ", orNA(u.ID))
	return nil
}

// Upload prompts for a title and a file path and submits the document.
func (a *App) Upload(ctx context.Context) error {
	if err := a.enterAdmin(ctx, common.UploadPath); err != nil {
		return err
	}

	form := upload.NewForm(a.uploader, a.logger)

	title, err := askLine(a.reader, a.out, "Document title")
	if err != nil {
		return err
	}
	form.SetTitle(title)

	path, err := askLine(a.reader, a.out, "Path to file")
	if err != nil {
		return err
	}
	if path != "" {
		form.SetFile(upload.LocalFile(path))
	}

	printlnFn("Uploading...")
	err = form.Submit(ctx)
	if errors.Is(err, upload.ErrMissingFields) {
		printlnFn("Both title and file are required.")
		return err
	}

	st := form.State()
	if st.SuccessMessage != "" {
		printlnFn(st.SuccessMessage)
	}
	if st.ErrorMessage != "" {
		printlnFn(st.ErrorMessage)
	}
	if errors.Is(err, client.ErrUnauthorized) {
		printlnFn("Session expired, sign in again.")
		a.adminGuard.Evaluate(a.refresh(ctx))
	}
	return err
}
