// Package session holds the process-wide session store: the single owner of
// the current authentication state. Consumers get it passed explicitly and
// read it through the Accessor interface.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/noticeboard/internal/client/client"
	"github.com/dmitrijs2005/noticeboard/internal/client/models"
	"github.com/dmitrijs2005/noticeboard/internal/client/sessionstore"
	"github.com/dmitrijs2005/noticeboard/internal/common"
	"github.com/dmitrijs2005/noticeboard/internal/logging"
)

// Accessor is the read side of the store.
//
// Current never blocks on the network. Subscribe registers fn to be called
// with the new session after every change; the returned func unregisters it.
type Accessor interface {
	Current() models.Session
	Subscribe(fn func(models.Session)) (unsubscribe func())
}

// Service is the store surface the user interfaces drive.
type Service interface {
	Accessor
	Refresh(ctx context.Context) (models.Session, error)
	SignIn(ctx context.Context, email string, password []byte) (client.SignInResult, error)
	SignOut(ctx context.Context) error
	LastEmail(ctx context.Context) string
}

// CookieResetter drops locally held session cookies.
type CookieResetter interface {
	Reset(ctx context.Context) error
}

type Store struct {
	provider client.AuthProvider
	cookies  CookieResetter
	repo     sessionstore.Repository
	logger   logging.Logger
	now      func() time.Time

	mu        sync.Mutex
	current   models.Session
	listeners map[uint64]func(models.Session)
	nextID    uint64
}

var _ Service = (*Store)(nil)

// NewStore returns a store in the loading state. cookies and repo may be nil
// when nothing is persisted locally.
func NewStore(provider client.AuthProvider, cookies CookieResetter, repo sessionstore.Repository, logger logging.Logger) *Store {
	return &Store{
		provider:  provider,
		cookies:   cookies,
		repo:      repo,
		logger:    logger.With("module", "session"),
		now:       time.Now,
		current:   models.Loading(),
		listeners: make(map[uint64]func(models.Session)),
	}
}

func (s *Store) Current() models.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

func (s *Store) Subscribe(fn func(models.Session)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// set stores next and notifies listeners outside the lock. Reads that return
// the same identity with a slid expiry are not reported as changes.
func (s *Store) set(next models.Session) {
	s.mu.Lock()
	prev := s.current
	s.current = next
	if prev.Equal(next) {
		s.mu.Unlock()
		return
	}
	fns := make([]func(models.Session), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	s.logger.Info(context.Background(), "session changed", "from", prev.Status, "to", next.Status)
	for _, fn := range fns {
		fn(next)
	}
}

// Refresh asks the provider for the current session. Any failure resolves
// the session to unauthenticated, as does an expired session.
func (s *Store) Refresh(ctx context.Context) (models.Session, error) {
	sess, err := s.provider.GetSession(ctx)
	if err != nil {
		s.logger.Warn(ctx, "session refresh failed", "error", err)
		s.set(models.Unauthenticated())
		return models.Unauthenticated(), fmt.Errorf("refresh session: %w", err)
	}

	if sess.IsAuthenticated() && sess.Expired(s.now()) {
		s.logger.Info(ctx, "session expired", "expires", sess.Expires)
		sess = models.Unauthenticated()
	}
	if !sess.IsAuthenticated() {
		sess = models.Unauthenticated()
	}

	s.set(sess)
	return sess, nil
}

// SignIn submits credentials. A rejection by the provider is reported in the
// result, not as an error; on success the session is re-read.
func (s *Store) SignIn(ctx context.Context, email string, password []byte) (client.SignInResult, error) {
	res, err := s.provider.SignInWithCredentials(ctx, email, password)
	if err != nil {
		return client.SignInResult{}, err
	}
	if !res.OK() {
		return res, nil
	}

	s.rememberEmail(ctx, email)

	if _, err := s.Refresh(ctx); err != nil {
		return res, err
	}
	return res, nil
}

// SignOut ends the session on the provider and locally. The local side is
// cleared even when the provider call fails.
func (s *Store) SignOut(ctx context.Context) error {
	err := s.provider.SignOut(ctx, client.SignOutOptions{CallbackURL: common.PublicEntryPoint})
	if err != nil {
		s.logger.Warn(ctx, "provider sign out failed", "error", err)
	}

	if s.cookies != nil {
		if rerr := s.cookies.Reset(ctx); rerr != nil {
			s.logger.Error(ctx, "failed to reset cookies", "error", rerr)
		}
	}

	s.set(models.Unauthenticated())

	if err != nil {
		return fmt.Errorf("sign out: %w", err)
	}
	return nil
}

// LastEmail returns the email of the last successful sign-in, if stored.
func (s *Store) LastEmail(ctx context.Context) string {
	if s.repo == nil {
		return ""
	}
	b, err := s.repo.Get(ctx, sessionstore.KeyLastEmail)
	if err != nil {
		s.logger.Warn(ctx, "failed to read last email", "error", err)
		return ""
	}
	return string(b)
}

func (s *Store) rememberEmail(ctx context.Context, email string) {
	if s.repo == nil {
		return
	}
	if err := s.repo.Set(ctx, sessionstore.KeyLastEmail, []byte(email)); err != nil {
		s.logger.Warn(ctx, "failed to save last email", "error", err)
	}
}
