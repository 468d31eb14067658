// Package upload holds the document upload form state and submits it.
//
// A Form allows one submission in flight at a time. Success and error
// messages are never set together: both are cleared when a submission starts
// and exactly one is set when it ends.
package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/dmitrijs2005/noticeboard/internal/client/client"
	"github.com/dmitrijs2005/noticeboard/internal/logging"
)

const (
	SuccessMessage = "Document uploaded successfully!"
	FailureMessage = "Upload failed"
)

var (
	ErrSubmitInFlight = errors.New("upload already in progress")
	ErrMissingFields  = errors.New("title and file are required")
)

// FileHandle is a file picked for upload. Open is called once per
// submission.
type FileHandle interface {
	Name() string
	Open() (io.ReadCloser, error)
}

// LocalFile is a path on the local file system, opened at submit time.
type LocalFile string

func (f LocalFile) Name() string { return filepath.Base(string(f)) }

func (f LocalFile) Open() (io.ReadCloser, error) {
	fh, err := os.Open(string(f))
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", f.Name(), err)
	}
	return fh, nil
}

// State is a snapshot of the form.
type State struct {
	Title          string
	File           FileHandle
	Submitting     bool
	ErrorMessage   string
	SuccessMessage string
}

type Form struct {
	uploader client.Uploader
	logger   logging.Logger

	mu    sync.Mutex
	state State
}

func NewForm(uploader client.Uploader, logger logging.Logger) *Form {
	return &Form{uploader: uploader, logger: logger.With("module", "upload")}
}

func (f *Form) SetTitle(title string) {
	f.mu.Lock()
	f.state.Title = title
	f.mu.Unlock()
}

// SetFile picks the file to upload; nil clears the selection.
func (f *Form) SetFile(h FileHandle) {
	f.mu.Lock()
	f.state.File = h
	f.mu.Unlock()
}

func (f *Form) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Submit uploads the current title and file. It returns ErrSubmitInFlight
// without touching the network while another submission runs, and
// ErrMissingFields when the title or the file is missing. The outcome of the
// upload itself is also reflected in State.
func (f *Form) Submit(ctx context.Context) error {
	f.mu.Lock()
	if f.state.Submitting {
		f.mu.Unlock()
		return ErrSubmitInFlight
	}
	if f.state.Title == "" || f.state.File == nil {
		f.mu.Unlock()
		return ErrMissingFields
	}
	f.state.Submitting = true
	f.state.ErrorMessage = ""
	f.state.SuccessMessage = ""
	title, file := f.state.Title, f.state.File
	f.mu.Unlock()

	err := f.send(ctx, title, file)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.state.Submitting = false
	if err != nil {
		f.state.ErrorMessage = failureText(err)
		f.logger.Warn(ctx, "upload failed", "title", title, "file", file.Name(), "error", err)
		return err
	}
	f.state.SuccessMessage = SuccessMessage
	f.state.Title = ""
	f.state.File = nil
	return nil
}

func (f *Form) send(ctx context.Context, title string, file FileHandle) error {
	r, err := file.Open()
	if err != nil {
		return err
	}
	defer r.Close()

	return f.uploader.Upload(ctx, title, file.Name(), r)
}

// failureText keeps the text of errors raised before a response arrived
// and turns any response from the server into the generic message.
func failureText(err error) string {
	if client.IsTransportError(err) {
		return err.Error()
	}
	return FailureMessage
}
