package client

import (
	"context"
	"io"

	"github.com/dmitrijs2005/noticeboard/internal/client/models"
)

// SignInResult mirrors the provider's answer to a credential sign-in.
// Error is the provider's short reason ("CredentialsSignin", ...) and is
// empty on success.
type SignInResult struct {
	Error string
	URL   string
}

func (r SignInResult) OK() bool { return r.Error == "" }

type SignOutOptions struct {
	CallbackURL string
}

type AuthProvider interface {
	GetSession(ctx context.Context) (models.Session, error)
	SignInWithCredentials(ctx context.Context, email string, password []byte) (SignInResult, error)
	SignOut(ctx context.Context, opts SignOutOptions) error
}

type Uploader interface {
	// Upload sends title and the file content as one multipart request.
	Upload(ctx context.Context, title, filename string, content io.Reader) error
}

type NoticeSource interface {
	// ListNotices returns published notices, restricted to one day when date
	// (YYYY-MM-DD) is not empty.
	ListNotices(ctx context.Context, date string) ([]models.Notice, error)
}
