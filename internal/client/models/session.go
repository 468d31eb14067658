package models

import "time"

// SessionStatus is the resolution state of the auth session.
type SessionStatus string

const (
	StatusLoading         SessionStatus = "loading"
	StatusUnauthenticated SessionStatus = "unauthenticated"
	StatusAuthenticated   SessionStatus = "authenticated"
)

// User is the identity attached to an authenticated session.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Session is owned by the auth provider; the client only reads it.
// User is non-nil iff Status is StatusAuthenticated. Build values with
// Loading, Unauthenticated and Authenticated to keep that true.
type Session struct {
	Status  SessionStatus
	User    *User
	Expires time.Time
}

func Loading() Session {
	return Session{Status: StatusLoading}
}

func Unauthenticated() Session {
	return Session{Status: StatusUnauthenticated}
}

// Authenticated returns an authenticated session for u. A nil user yields an
// unauthenticated session.
func Authenticated(u *User, expires time.Time) Session {
	if u == nil {
		return Unauthenticated()
	}
	copied := *u
	return Session{Status: StatusAuthenticated, User: &copied, Expires: expires}
}

func (s Session) IsAuthenticated() bool {
	return s.Status == StatusAuthenticated && s.User != nil
}

// Expired reports whether the session carries an expiry that is before now.
// Sessions without an expiry never expire on the client side.
func (s Session) Expired(now time.Time) bool {
	return !s.Expires.IsZero() && s.Expires.Before(now)
}

// Equal compares status and identity; Expires is ignored because the
// provider slides it on every read.
func (s Session) Equal(o Session) bool {
	if s.Status != o.Status {
		return false
	}
	if s.User == nil || o.User == nil {
		return s.User == o.User
	}
	return *s.User == *o.User
}
