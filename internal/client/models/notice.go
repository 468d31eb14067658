package models

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/dmitrijs2005/noticeboard/internal/common"
)

// NoticeID accepts both numeric and string ids from the backend.
type NoticeID string

func (id *NoticeID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = NoticeID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*id = NoticeID(n.String())
	return nil
}

type NoticeAdmin struct {
	Name string `json:"name"`
}

// Notice is a published notice. Content is HTML.
type Notice struct {
	ID        NoticeID    `json:"id"`
	Title     string      `json:"title"`
	Content   string      `json:"content"`
	CreatedAt time.Time   `json:"createdAt"`
	Admin     NoticeAdmin `json:"admin"`
}

// NoticeList is the body of GET /api/notices.
type NoticeList struct {
	Notices []Notice `json:"notices"`
}

// Byline is the "Uploaded on <date> by <admin>" line shown under a notice.
func (n Notice) Byline() string {
	name := n.Admin.Name
	if name == "" {
		name = "unknown"
	}
	date := "unknown date"
	if !n.CreatedAt.IsZero() {
		date = n.CreatedAt.Local().Format(common.DateLayout)
	}
	return "Uploaded on " + date + " by " + name
}
