package download

import (
	"context"
	"io"
	"net/http"

	"github.com/handiism/video-downloader/internal/model"
)

// Input supplies the form values for a submission on demand.
type Input interface {
	Values() (rawURL, quality string)
}

// StatusSink displays a single status line.
type StatusSink interface {
	SetStatus(message string, level ProgressLevel)
}

// ProgressSink displays a progress indicator with values in [0,100].
type ProgressSink interface {
	SetProgress(percent float64, label string)
	HideProgress()
}

// Trigger is the control that starts a submission.
type Trigger interface {
	SetEnabled(enabled bool)
}

// Poster sends the conversion request. Non-2xx responses are returned, not
// treated as errors.
type Poster interface {
	PostJSON(ctx context.Context, url string, body any) (*http.Response, error)
}

// Saver is the local "save file" action. href is always absolute. A Saver
// that reports fetch progress should forward it to Orchestrator.DownloadProgress.
type Saver interface {
	SaveLink(ctx context.Context, href, fileName string) (string, error)
	SaveBlob(ctx context.Context, tmp model.TempFile, fileName string) (string, error)
}

// TempStore holds binary payloads until they are saved.
type TempStore interface {
	Create(prefix string, r io.Reader) (model.TempFile, error)
	Release(tmp model.TempFile) error
}

// AfterSaveHook enriches a saved file. link is nil for binary responses.
// Hook errors are reported as warnings and never fail a submission.
type AfterSaveHook interface {
	AfterSave(ctx context.Context, req *model.DownloadRequest, saved *model.SavedFile, link *model.LinkResponse) error
}

// InputFunc adapts a function to the Input interface.
type InputFunc func() (rawURL, quality string)

// Values implements Input.
func (f InputFunc) Values() (string, string) {
	return f()
}

type nopStatus struct{}

func (nopStatus) SetStatus(string, ProgressLevel) {}

type nopProgress struct{}

func (nopProgress) SetProgress(float64, string) {}
func (nopProgress) HideProgress()               {}

type nopTrigger struct{}

func (nopTrigger) SetEnabled(bool) {}
