// Package client talks to the noticeboard backend over HTTP.
//
// # Overview
//
// The package provides:
//  1. Transport-agnostic contracts for the three backend surfaces the
//     application consumes: AuthProvider (session read, credential sign-in,
//     sign-out), Uploader (document upload) and NoticeSource (notice query).
//  2. HTTPClient, one implementation of all three. Authentication follows the
//     next-auth credentials flow: a CSRF token is fetched first, identity then
//     travels in cookies held by the http.CookieJar passed in.
//
// # Error Handling
//
// Transport failures wrap ErrUnavailable. Non-2xx responses are returned as
// *StatusError, which matches ErrUnauthorized (401, 403), ErrUnavailable
// (502, 503, 504) or ErrUnexpectedStatus (everything else) under errors.Is.
//
// Every request carries a fresh X-Request-ID that is also logged.
package client
