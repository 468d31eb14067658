// Package models defines the data the noticeboard client reads from the
// backend: the auth session and published notices.
package models
