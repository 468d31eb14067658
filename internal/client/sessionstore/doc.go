// Package sessionstore keeps the client's auth session across restarts.
//
// The backend identifies a signed-in admin by cookies, so the store is a
// small SQLite key/value table (see Repository) plus PersistentJar, an
// http.CookieJar that writes the backend's cookies through to that table and
// restores them on start-up. The schema is applied with embedded goose
// migrations by Open.
//
// Key layout:
//
//	cookies     JSON list of {name, value} for the backend origin
//	last_email  email of the last successful sign-in (prefills the form)
package sessionstore
