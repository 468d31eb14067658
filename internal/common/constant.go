// Package common contains constants, sentinel errors and small helpers shared
// by the noticeboard client packages.
package common

// RequestIDHeaderName carries a per-request correlation id on every call to
// the backend; the same id is written to the log.
const RequestIDHeaderName = "X-Request-ID"

// DateLayout is the wire and input format of notice filter dates.
const DateLayout = "2006-01-02"

// Locations the application can navigate to. They mirror the backend site's
// page paths so log lines and redirects read the same on both sides.
const (
	PublicEntryPoint = "/"
	SignInPath       = "/admin"
	DashboardPath    = "/admin/dashboard"
	UploadPath       = "/admin/dashboard/uploaddoc"
)
