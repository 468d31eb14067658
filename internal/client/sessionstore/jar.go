package sessionstore

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"sync"
	"time"

	"github.com/dmitrijs2005/noticeboard/internal/logging"
)

const persistTimeout = 2 * time.Second

// storedCookie is the persisted form of a cookie. cookiejar only hands back
// name and value, so the attributes are taken from the Set-Cookie that
// created it.
type storedCookie struct {
	Name     string     `json:"name"`
	Value    string     `json:"value"`
	Path     string     `json:"path,omitempty"`
	Expires  *time.Time `json:"expires,omitempty"`
	Secure   bool       `json:"secure,omitempty"`
	HttpOnly bool       `json:"http_only,omitempty"`
}

func (c storedCookie) expired(now time.Time) bool {
	return c.Expires != nil && !c.Expires.After(now)
}

func (c storedCookie) cookie() *http.Cookie {
	hc := &http.Cookie{Name: c.Name, Value: c.Value, Path: c.Path, Secure: c.Secure, HttpOnly: c.HttpOnly}
	if hc.Path == "" {
		hc.Path = "/"
	}
	if c.Expires != nil {
		hc.Expires = *c.Expires
	}
	return hc
}

func fromHTTPCookie(c *http.Cookie, now time.Time) storedCookie {
	sc := storedCookie{Name: c.Name, Value: c.Value, Path: c.Path, Secure: c.Secure, HttpOnly: c.HttpOnly}
	switch {
	case c.MaxAge > 0:
		exp := now.Add(time.Duration(c.MaxAge) * time.Second).UTC()
		sc.Expires = &exp
	case c.MaxAge == 0 && !c.Expires.IsZero():
		exp := c.Expires.UTC()
		sc.Expires = &exp
	}
	return sc
}

// PersistentJar is an in-memory cookie jar whose cookies for one origin are
// mirrored into a Repository. Cookies for other origins are kept in memory
// only.
type PersistentJar struct {
	mu     sync.Mutex
	inner  *cookiejar.Jar
	attrs  map[string]storedCookie
	origin *url.URL
	repo   Repository
	logger logging.Logger
}

// NewPersistentJar builds the jar for origin and restores any cookies saved
// by a previous run.
func NewPersistentJar(ctx context.Context, origin *url.URL, repo Repository, logger logging.Logger) (*PersistentJar, error) {
	inner, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}

	j := &PersistentJar{
		inner:  inner,
		attrs:  map[string]storedCookie{},
		origin: &url.URL{Scheme: origin.Scheme, Host: origin.Host, Path: "/"},
		repo:   repo,
		logger: logger.With("module", "cookie_jar"),
	}

	if err := j.restore(ctx); err != nil {
		return nil, err
	}
	return j, nil
}

func (j *PersistentJar) restore(ctx context.Context) error {
	data, err := j.repo.Get(ctx, KeyCookies)
	if err != nil {
		return err
	}
	if data == nil {
		return nil
	}

	var stored []storedCookie
	if err := json.Unmarshal(data, &stored); err != nil {
		// A corrupt row only costs a fresh sign-in.
		j.logger.Warn(ctx, "discarding unreadable stored cookies", "error", err)
		return j.repo.Delete(ctx, KeyCookies)
	}

	now := time.Now()
	cookies := make([]*http.Cookie, 0, len(stored))
	for _, c := range stored {
		if c.expired(now) {
			continue
		}
		j.attrs[c.Name] = c
		cookies = append(cookies, c.cookie())
	}
	j.inner.SetCookies(j.origin, cookies)
	j.logger.Debug(ctx, "restored cookies", "count", len(cookies))
	return nil
}

func (j *PersistentJar) jar() *cookiejar.Jar {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.inner
}

func (j *PersistentJar) Cookies(u *url.URL) []*http.Cookie {
	return j.jar().Cookies(u)
}

// SetCookies stores cookies and, when u belongs to the backend origin,
// rewrites the persisted copy. Persistence failures are logged; the
// in-memory jar stays authoritative for the running process.
func (j *PersistentJar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	j.jar().SetCookies(u, cookies)

	if u.Host != j.origin.Host {
		return
	}
	j.remember(cookies)

	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	if err := j.persist(ctx); err != nil {
		j.logger.Error(ctx, "persist cookies", "error", err)
	}
}

// remember keeps the attributes of cookies set for the origin.
func (j *PersistentJar) remember(cookies []*http.Cookie) {
	j.mu.Lock()
	defer j.mu.Unlock()

	now := time.Now()
	for _, c := range cookies {
		sc := fromHTTPCookie(c, now)
		if c.MaxAge < 0 || sc.expired(now) {
			delete(j.attrs, c.Name)
			continue
		}
		j.attrs[c.Name] = sc
	}
}

func (j *PersistentJar) persist(ctx context.Context) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	current := j.inner.Cookies(j.origin)
	if len(current) == 0 {
		return j.repo.Delete(ctx, KeyCookies)
	}

	stored := make([]storedCookie, 0, len(current))
	for _, c := range current {
		sc, ok := j.attrs[c.Name]
		if !ok {
			sc = storedCookie{Name: c.Name}
		}
		sc.Value = c.Value
		stored = append(stored, sc)
	}
	data, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("encode cookies: %w", err)
	}
	return j.repo.Set(ctx, KeyCookies, data)
}

// Reset forgets every cookie, in memory and on disk.
func (j *PersistentJar) Reset(ctx context.Context) error {
	inner, err := cookiejar.New(nil)
	if err != nil {
		return err
	}

	j.mu.Lock()
	j.inner = inner
	j.attrs = map[string]storedCookie{}
	j.mu.Unlock()

	return j.repo.Delete(ctx, KeyCookies)
}
