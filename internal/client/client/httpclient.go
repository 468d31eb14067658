package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/noticeboard/internal/client/models"
	"github.com/dmitrijs2005/noticeboard/internal/common"
	"github.com/dmitrijs2005/noticeboard/internal/logging"
)

const (
	pathCSRF        = "/api/auth/csrf"
	pathSession     = "/api/auth/session"
	pathCredentials = "/api/auth/callback/credentials"
	pathSignOut     = "/api/auth/signout"
	pathUpload      = "/api/upload"
	pathNotices     = "/api/notices"

	// Reported when the provider rejects credentials without naming a reason.
	defaultSignInError = "CredentialsSignin"
)

type HTTPClient struct {
	baseURL *url.URL
	http    *http.Client
	logger  logging.Logger
}

// NewHTTPClient builds a client for the backend at baseURL. jar holds the
// session cookies; timeout bounds every request including body transfer.
func NewHTTPClient(baseURL string, jar http.CookieJar, timeout time.Duration, logger logging.Logger) (*HTTPClient, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse server url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("server url %q: scheme must be http or https", baseURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("server url %q: missing host", baseURL)
	}

	return &HTTPClient{
		baseURL: u,
		http:    &http.Client{Jar: jar, Timeout: timeout},
		logger:  logger.With("module", "backend_client"),
	}, nil
}

func (c *HTTPClient) endpoint(path string, query url.Values) string {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + path
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

func (c *HTTPClient) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path, query), body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(common.RequestIDHeaderName, common.NewRequestID())
	return req, nil
}

// do sends req. Transport failures come back wrapped in ErrUnavailable; the
// caller owns resp.Body on success.
func (c *HTTPClient) do(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := c.http.Do(req)
	reqID := req.Header.Get(common.RequestIDHeaderName)

	if err != nil {
		c.logger.Warn(req.Context(), "request failed",
			"method", req.Method, "path", req.URL.Path, "request_id", reqID, "error", err)
		if ctxErr := req.Context().Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	c.logger.Debug(req.Context(), "request done",
		"method", req.Method, "path", req.URL.Path, "request_id", reqID,
		"status", resp.StatusCode, "elapsed", time.Since(start))
	return resp, nil
}

func statusError(resp *http.Response) error {
	return &StatusError{Method: resp.Request.Method, Path: resp.Request.URL.Path, StatusCode: resp.StatusCode}
}

func isSuccess(code int) bool {
	return code >= 200 && code < 300
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
	_ = resp.Body.Close()
}

func (c *HTTPClient) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	req, err := c.newRequest(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return err
	}
	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer drain(resp)

	if !isSuccess(resp.StatusCode) {
		return statusError(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

// postForm submits form and decodes a JSON {url} answer. It returns the
// response status alongside so callers can interpret 401s themselves.
func (c *HTTPClient) postForm(ctx context.Context, path string, form url.Values) (int, string, error) {
	req, err := c.newRequest(ctx, http.MethodPost, path, nil, strings.NewReader(form.Encode()))
	if err != nil {
		return 0, "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("X-Auth-Return-Redirect", "1")

	resp, err := c.do(req)
	if err != nil {
		return 0, "", err
	}
	defer drain(resp)

	var body struct {
		URL string `json:"url"`
	}
	// Error responses may carry no JSON at all.
	_ = json.NewDecoder(resp.Body).Decode(&body)
	return resp.StatusCode, body.URL, nil
}

func (c *HTTPClient) csrfToken(ctx context.Context) (string, error) {
	var body struct {
		CSRFToken string `json:"csrfToken"`
	}
	if err := c.getJSON(ctx, pathCSRF, nil, &body); err != nil {
		return "", fmt.Errorf("get csrf token: %w", err)
	}
	if body.CSRFToken == "" {
		return "", fmt.Errorf("get csrf token: %w: empty token", ErrUnexpectedStatus)
	}
	return body.CSRFToken, nil
}

type sessionBody struct {
	User    *models.User `json:"user"`
	Expires time.Time    `json:"expires"`
}

// GetSession reads the current session. A signed-out visitor gets "{}" (or
// "null") from the provider, which maps to an unauthenticated session.
func (c *HTTPClient) GetSession(ctx context.Context) (models.Session, error) {
	var body *sessionBody
	if err := c.getJSON(ctx, pathSession, nil, &body); err != nil {
		return models.Unauthenticated(), fmt.Errorf("get session: %w", err)
	}
	if body == nil || body.User == nil {
		return models.Unauthenticated(), nil
	}
	return models.Authenticated(body.User, body.Expires), nil
}

// SignInWithCredentials runs the credentials callback. A rejected sign-in is
// not an error: it comes back as SignInResult.Error. The returned error is
// reserved for transport and unexpected-status failures.
func (c *HTTPClient) SignInWithCredentials(ctx context.Context, email string, password []byte) (SignInResult, error) {
	token, err := c.csrfToken(ctx)
	if err != nil {
		return SignInResult{}, err
	}

	form := url.Values{
		"csrfToken":   {token},
		"email":       {email},
		"password":    {string(password)},
		"callbackUrl": {c.endpoint(common.DashboardPath, nil)},
		"json":        {"true"},
	}

	status, redirect, err := c.postForm(ctx, pathCredentials, form)
	if err != nil {
		return SignInResult{}, fmt.Errorf("sign in: %w", err)
	}

	result := SignInResult{URL: redirect}
	if redirect != "" {
		if u, perr := url.Parse(redirect); perr == nil {
			result.Error = u.Query().Get("error")
		}
	}

	switch {
	case isSuccess(status):
	case status == http.StatusUnauthorized:
		if result.Error == "" {
			result.Error = defaultSignInError
		}
	default:
		return SignInResult{}, fmt.Errorf("sign in: %w", &StatusError{Method: http.MethodPost, Path: pathCredentials, StatusCode: status})
	}

	if result.OK() {
		c.logger.Info(ctx, "signed in", "email", email)
	} else {
		c.logger.Info(ctx, "sign in rejected", "email", email, "reason", result.Error)
	}
	return result, nil
}

// SignOut ends the session on the provider; the provider clears the session
// cookie in its response.
func (c *HTTPClient) SignOut(ctx context.Context, opts SignOutOptions) error {
	token, err := c.csrfToken(ctx)
	if err != nil {
		return err
	}

	form := url.Values{"csrfToken": {token}, "json": {"true"}}
	if opts.CallbackURL != "" {
		form.Set("callbackUrl", c.endpoint(opts.CallbackURL, nil))
	}

	status, _, err := c.postForm(ctx, pathSignOut, form)
	if err != nil {
		return fmt.Errorf("sign out: %w", err)
	}
	if !isSuccess(status) {
		return fmt.Errorf("sign out: %w", &StatusError{Method: http.MethodPost, Path: pathSignOut, StatusCode: status})
	}
	c.logger.Info(ctx, "signed out")
	return nil
}

// Upload streams a multipart body with the fields "title" and "file". It
// does not return before the body writer has stopped reading content, so
// the caller may close content as soon as Upload returns.
func (c *HTTPClient) Upload(ctx context.Context, title, filename string, content io.Reader) error {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	done := make(chan struct{})
	go func() {
		defer close(done)
		pw.CloseWithError(writeUploadBody(mw, title, filename, content))
	}()
	// The server may answer before reading the whole body; closing the read
	// side unblocks a writer stuck in the pipe.
	defer func() {
		_ = pr.Close()
		<-done
	}()

	req, err := c.newRequest(ctx, http.MethodPost, pathUpload, nil, pr)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer drain(resp)

	if !isSuccess(resp.StatusCode) {
		return statusError(resp)
	}
	c.logger.Info(ctx, "document uploaded", "title", title, "file", filename)
	return nil
}

func writeUploadBody(mw *multipart.Writer, title, filename string, content io.Reader) error {
	if err := mw.WriteField("title", title); err != nil {
		return err
	}
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, content); err != nil {
		return fmt.Errorf("read upload content: %w", err)
	}
	return mw.Close()
}

func (c *HTTPClient) ListNotices(ctx context.Context, date string) ([]models.Notice, error) {
	var query url.Values
	if date != "" {
		query = url.Values{"date": {date}}
	}

	var list models.NoticeList
	if err := c.getJSON(ctx, pathNotices, query, &list); err != nil {
		return nil, fmt.Errorf("list notices: %w", err)
	}
	if list.Notices == nil {
		list.Notices = []models.Notice{}
	}
	return list.Notices, nil
}

// IsTransportError reports whether err is a failure to reach the backend as
// opposed to a response the backend sent.
func IsTransportError(err error) bool {
	var se *StatusError
	return err != nil && !errors.As(err, &se)
}
