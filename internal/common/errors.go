package common

import "errors"

var (
	// ErrInvalidDate is returned for filter dates not in DateLayout.
	ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")

	// ErrNotAuthenticated is returned by admin operations attempted without
	// an authenticated session.
	ErrNotAuthenticated = errors.New("not authenticated")
)
