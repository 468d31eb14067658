// Package feed loads the public notice list and keeps it in step with the
// date filter.
//
// Every Load is numbered. When loads overlap only the most recently issued
// one may change the state; older ones finish with ErrSuperseded. A failed
// load keeps the previous notices and records the error text.
package feed

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/dmitrijs2005/noticeboard/internal/client/client"
	"github.com/dmitrijs2005/noticeboard/internal/client/models"
	"github.com/dmitrijs2005/noticeboard/internal/common"
	"github.com/dmitrijs2005/noticeboard/internal/logging"
)

var (
	ErrSuperseded  = errors.New("superseded by a newer request")
	ErrInvalidDate = common.ErrInvalidDate
)

// FilterState is the date filter. An empty Date means no filter.
type FilterState struct {
	Date string
}

// State is a snapshot of the feed.
type State struct {
	Notices []models.Notice
	Filter  FilterState
	Loading bool
	Loaded  bool
	Err     string
}

type Feed struct {
	source client.NoticeSource
	logger logging.Logger

	mu    sync.Mutex
	seq   uint64
	state State
}

func New(source client.NoticeSource, logger logging.Logger) *Feed {
	return &Feed{source: source, logger: logger.With("module", "feed")}
}

// Mount clears the filter and loads all notices.
func (f *Feed) Mount(ctx context.Context) error {
	f.mu.Lock()
	f.state.Filter = FilterState{}
	f.mu.Unlock()
	return f.Load(ctx, "")
}

// SetFilterDate validates date, stores it as the filter and reloads. An
// invalid date leaves the state untouched.
func (f *Feed) SetFilterDate(ctx context.Context, date string) error {
	if date != "" {
		if _, err := common.ParseDate(date); err != nil {
			return err
		}
	}

	f.mu.Lock()
	f.state.Filter = FilterState{Date: date}
	f.mu.Unlock()
	return f.Load(ctx, date)
}

// Load fetches notices for date and replaces the list with the result.
func (f *Feed) Load(ctx context.Context, date string) error {
	f.mu.Lock()
	f.seq++
	seq := f.seq
	f.state.Loading = true
	f.mu.Unlock()

	notices, err := f.source.ListNotices(ctx, date)

	f.mu.Lock()
	defer f.mu.Unlock()

	if seq != f.seq {
		f.logger.Debug(ctx, "discarding stale notices response", "date", date, "seq", seq)
		return ErrSuperseded
	}

	f.state.Loading = false
	if err != nil {
		f.state.Err = err.Error()
		f.logger.Warn(ctx, "failed to load notices", "date", date, "error", err)
		return err
	}

	f.state.Notices = notices
	f.state.Loaded = true
	f.state.Err = ""
	return nil
}

func (f *Feed) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	st := f.state
	st.Notices = slices.Clone(f.state.Notices)
	return st
}
