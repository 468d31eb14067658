package common

import (
	"time"

	"github.com/google/uuid"
)

// WipeByteArray overwrites b with zeros. Used for passwords read from the
// terminal once they have been sent. Nil-safe.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// NewRequestID returns a fresh random correlation id.
func NewRequestID() string {
	return uuid.NewString()
}

// ParseDate validates s against DateLayout. The empty string is not a date.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return d, nil
}
