package download

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/handiism/video-downloader/internal/config"
	vhttp "github.com/handiism/video-downloader/internal/http"
	"github.com/handiism/video-downloader/internal/model"
)

// User-facing messages.
const (
	msgEmptyURL        = "Please enter a video URL."
	msgInvalidURL      = "Please enter a valid video URL."
	msgInvalidQuality  = "Please choose a supported quality."
	msgPreparing       = "Preparing download... This may take a minute."
	msgServerFailed    = "Failed to prepare video download."
	msgMissingTarget   = "Download URL not found in response."
	msgDownloadReady   = "Download ready! Starting download..."
	msgRequestFailed   = "Could not reach the download service"
	msgTimedOut        = "The download service did not answer in time"
	msgMalformed       = "Malformed response from the download service"
	msgLinkSaveFailed  = "Could not download the prepared file"
	msgBlobReadFailed  = "Could not read the downloaded file"
	msgBlobSaveFailed  = "Could not save the downloaded file"
	labelStarting      = "Starting download..."
	labelComplete      = "Complete!"
	labelDownloading   = "Downloading..."
	maxErrorBodyLength = 64 << 10
)

// Collaborators are the capabilities the orchestrator drives. Poster, Saver
// and TempStore are required; missing sinks and triggers are replaced with
// no-ops.
type Collaborators struct {
	Poster    Poster
	Saver     Saver
	TempStore TempStore
	Status    StatusSink
	Progress  ProgressSink
	Trigger   Trigger
}

// Options holds optional orchestrator behaviour.
type Options struct {
	// OnEvent receives diagnostics. Verbose events describe each step;
	// warnings report non-fatal problems such as failing after-save hooks.
	OnEvent func(ProgressEvent)

	// AfterSave hooks run, in order, after every successful save.
	AfterSave []AfterSaveHook

	// Rand returns values in [0,1) for the progress simulation.
	// Defaults to math/rand/v2.Float64.
	Rand func() float64
}

// Orchestrator coordinates one download submission at a time.
type Orchestrator struct {
	settings *config.Settings
	matcher  *model.SourceMatcher

	poster   Poster
	saver    Saver
	temps    TempStore
	status   StatusSink
	progress ProgressSink
	trigger  Trigger

	onEvent   func(ProgressEvent)
	afterSave []AfterSaveHook
	rand      func() float64

	busy  atomic.Bool
	state atomic.Int32
	sim   atomic.Pointer[ProgressSimulator]

	// resetMu guards the delayed display reset. generation is bumped by
	// every submission so a stale timer never clears a newer status.
	resetMu    sync.Mutex
	resetTimer *time.Timer
	generation uint64

	// fetched is the last percentage drawn by DownloadProgress.
	fetchMu sync.Mutex
	fetched float64
}

// NewOrchestrator creates an Orchestrator from settings and collaborators.
func NewOrchestrator(settings *config.Settings, c Collaborators, opts Options) (*Orchestrator, error) {
	if c.Poster == nil || c.Saver == nil || c.TempStore == nil {
		return nil, errors.New("download: poster, saver and temp store are required")
	}
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}

	matcher, err := settings.SourceMatcher()
	if err != nil {
		return nil, fmt.Errorf("accepted source pattern: %w", err)
	}

	o := &Orchestrator{
		settings:  settings,
		matcher:   matcher,
		poster:    c.Poster,
		saver:     c.Saver,
		temps:     c.TempStore,
		status:    c.Status,
		progress:  c.Progress,
		trigger:   c.Trigger,
		onEvent:   opts.OnEvent,
		afterSave: opts.AfterSave,
		rand:      opts.Rand,
	}
	if o.status == nil {
		o.status = nopStatus{}
	}
	if o.progress == nil {
		o.progress = nopProgress{}
	}
	if o.trigger == nil {
		o.trigger = nopTrigger{}
	}
	if o.rand == nil {
		o.rand = rand.Float64
	}

	return o, nil
}

// State returns the current state of the state machine.
func (o *Orchestrator) State() State {
	return State(o.state.Load())
}

// Busy reports whether a submission is in progress.
func (o *Orchestrator) Busy() bool {
	return o.busy.Load()
}

// Ticking reports whether a progress simulator goroutine is alive.
func (o *Orchestrator) Ticking() bool {
	sim := o.sim.Load()
	return sim != nil && sim.Running()
}

// DownloadProgress maps the byte counts of a prepared-file fetch onto the
// progress display, between ReadyProgress and 100. Pass it as the
// on-progress callback of the Saver. Counts without a known total and calls
// outside the Finalizing state are ignored.
func (o *Orchestrator) DownloadProgress(written, total int64) {
	if total <= 0 || o.State() != StateFinalizing {
		return
	}

	ready := o.settings.ReadyProgress
	percent := ready + (100-ready)*float64(min(written, total))/float64(total)
	// 100 is drawn by finish once post-processing is done.
	percent = min(percent, 99)

	o.fetchMu.Lock()
	defer o.fetchMu.Unlock()
	if int(percent) <= int(o.fetched) {
		return
	}
	o.fetched = percent
	o.progress.SetProgress(percent, fmt.Sprintf("%s %s / %s", labelDownloading,
		humanize.Bytes(uint64(written)), humanize.Bytes(uint64(total))))
}

// Close cancels a pending display reset.
func (o *Orchestrator) Close() {
	o.cancelReset()
}

// SubmitFrom reads the form values from in and submits them.
func (o *Orchestrator) SubmitFrom(ctx context.Context, in Input) (*model.SavedFile, error) {
	rawURL, quality := in.Values()
	return o.Submit(ctx, rawURL, quality)
}

// Submit validates rawURL and quality, asks the service to prepare the file
// and saves the result.
//
// Only one submission runs at a time; a concurrent call returns ErrBusy
// without touching the display. Every other failure is an *Error, reported on
// the status sink before Submit returns. The orchestrator is no longer busy
// by the time the trigger is re-enabled.
func (o *Orchestrator) Submit(ctx context.Context, rawURL, quality string) (*model.SavedFile, error) {
	if !o.busy.CompareAndSwap(false, true) {
		return nil, ErrBusy
	}

	o.cancelReset()

	o.setState(StateValidating)
	req, err := model.NewDownloadRequest(rawURL, quality, o.matcher)
	if err != nil {
		verr := validationError(err)
		o.status.SetStatus(verr.Message, LevelWarning)
		o.setState(StateIdle)
		o.busy.Store(false)
		return nil, verr
	}

	saved, err := o.run(ctx, req)
	if err != nil {
		o.fail(err)
		return nil, err
	}

	o.finish(saved)
	return saved, nil
}

// run performs the exchange with the service and the save action. The
// progress simulator is stopped before run returns on every path.
func (o *Orchestrator) run(ctx context.Context, req *model.DownloadRequest) (*model.SavedFile, error) {
	o.setState(StateSubmitting)
	o.trigger.SetEnabled(false)
	o.status.SetStatus(msgPreparing, LevelInfo)
	o.progress.SetProgress(o.settings.InitialProgress, labelProcessing)

	sim := StartProgressSimulator(ctx, SimulatorConfig{
		Interval: o.settings.TickInterval.Std(),
		Start:    o.settings.InitialProgress,
		Step:     o.settings.ProgressStep,
		Cap:      o.settings.SimulatedProgressCap,
	}, o.progress, o.rand)
	o.sim.Store(sim)
	defer sim.Stop()

	// RequestTimeout bounds the wait for response headers only. A blob body
	// is read under the client timeout (DownloadTimeout).
	reqCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	stopDeadline := o.headerDeadline(cancel)

	o.event(LevelVerbose, "POST %s (request %s, %s, %s)", o.settings.Endpoint, req.ID, req.SourceURL, req.Quality)
	resp, err := o.poster.PostJSON(reqCtx, o.settings.Endpoint, req.Body())
	timedOut := stopDeadline()
	sim.Stop()
	if err != nil {
		return nil, o.transportError(ctx, timedOut, err)
	}
	defer resp.Body.Close()
	if timedOut {
		return nil, newError(KindNetwork, msgTimedOut, context.DeadlineExceeded)
	}

	o.setState(StateAwaitingResult)
	o.event(LevelVerbose, "HTTP %d (%s)", resp.StatusCode, resp.Header.Get("Content-Type"))

	if !vhttp.IsSuccess(resp.StatusCode) {
		return nil, serverError(resp)
	}

	body := bufio.NewReader(resp.Body)
	if isJSONResponse(resp.Header, body) {
		return o.finalizeLink(ctx, req, body)
	}
	return o.finalizeBlob(ctx, req, resp.Header, body)
}

// finalizeLink handles a JSON answer pointing at a staged file.
func (o *Orchestrator) finalizeLink(ctx context.Context, req *model.DownloadRequest, body io.Reader) (*model.SavedFile, error) {
	var link model.LinkResponse
	if err := json.NewDecoder(body).Decode(&link); err != nil {
		if errors.Is(err, io.EOF) {
			// An empty body names no target.
			return nil, newError(KindContract, msgMissingTarget, nil)
		}
		return nil, newError(KindNetwork, msgMalformed, err)
	}
	if strings.TrimSpace(link.DownloadURL) == "" {
		return nil, newError(KindContract, msgMissingTarget, nil)
	}
	href, err := resolveReference(o.settings.Endpoint, link.DownloadURL)
	if err != nil {
		return nil, newError(KindContract, msgMissingTarget, err)
	}
	if link.Thumbnail != "" {
		if thumb, err := resolveReference(o.settings.Endpoint, link.Thumbnail); err == nil {
			link.Thumbnail = thumb
		}
	}

	o.fetchMu.Lock()
	o.fetched = o.settings.ReadyProgress
	o.fetchMu.Unlock()

	o.setState(StateFinalizing)
	o.progress.SetProgress(o.settings.ReadyProgress, labelStarting)
	if link.Title != "" {
		o.status.SetStatus(fmt.Sprintf("Downloading: %q", link.Title), LevelInfo)
	} else {
		o.status.SetStatus(msgDownloadReady, LevelInfo)
	}

	fileName := model.SuggestedFileName(link.Filename, req.Quality)
	path, err := o.saver.SaveLink(ctx, href, fileName)
	if err != nil {
		if KindOf(err) != 0 {
			return nil, err
		}
		return nil, newError(KindNetwork, msgLinkSaveFailed, err)
	}
	o.event(LevelVerbose, "Saved %s to %s", href, path)

	saved := &model.SavedFile{
		Path:    path,
		Title:   link.Title,
		Size:    fileSize(path),
		Quality: req.Quality,
	}
	o.runHooks(ctx, req, saved, &link)
	return saved, nil
}

// finalizeBlob handles a response whose body is the file itself. The body is
// staged in exactly one temporary resource, which is released right after the
// save action, whatever its outcome.
func (o *Orchestrator) finalizeBlob(ctx context.Context, req *model.DownloadRequest, header http.Header, body io.Reader) (*model.SavedFile, error) {
	tmp, err := o.temps.Create(req.ID, body)
	if err != nil {
		return nil, newError(KindFetch, msgBlobReadFailed, err)
	}

	released := false
	release := func() {
		if released {
			return
		}
		released = true
		if err := o.temps.Release(tmp); err != nil {
			o.event(LevelWarning, "Could not remove temporary file %s: %v", tmp.Path, err)
		}
	}
	defer release()

	if tmp.Size == 0 {
		return nil, newError(KindContract, msgMissingTarget, nil)
	}

	o.setState(StateFinalizing)
	o.progress.SetProgress(o.settings.ReadyProgress, labelStarting)
	o.status.SetStatus(msgDownloadReady, LevelInfo)

	fileName := model.SuggestedFileName(vhttp.FileNameFromDisposition(header), req.Quality)
	path, err := o.saver.SaveBlob(ctx, tmp, fileName)
	release()
	if err != nil {
		return nil, newError(KindFetch, msgBlobSaveFailed, err)
	}
	o.event(LevelVerbose, "Saved %d bytes to %s", tmp.Size, path)

	saved := &model.SavedFile{
		Path:    path,
		Size:    tmp.Size,
		Quality: req.Quality,
	}
	o.runHooks(ctx, req, saved, nil)
	return saved, nil
}

func (o *Orchestrator) runHooks(ctx context.Context, req *model.DownloadRequest, saved *model.SavedFile, link *model.LinkResponse) {
	for _, hook := range o.afterSave {
		if err := hook.AfterSave(ctx, req, saved, link); err != nil {
			o.event(LevelWarning, "Post-processing %s: %v", saved.Path, err)
		}
	}
}

// finish moves Finalizing → Idle and schedules the display reset. The
// trigger is re-enabled last, once the next submission can be accepted.
func (o *Orchestrator) finish(saved *model.SavedFile) {
	o.progress.SetProgress(100, labelComplete)
	o.status.SetStatus(completionMessage(saved), LevelSuccess)
	o.setState(StateIdle)
	o.scheduleReset()
	o.busy.Store(false)
	o.trigger.SetEnabled(true)
}

// fail moves Failed → Idle. The simulator has already been stopped by run.
func (o *Orchestrator) fail(err error) {
	o.setState(StateFailed)
	o.event(LevelVerbose, "%s: %v", KindOf(err), err)
	o.status.SetStatus("Error: "+err.Error(), LevelError)
	o.progress.HideProgress()
	o.setState(StateIdle)
	o.busy.Store(false)
	o.trigger.SetEnabled(true)
}

func (o *Orchestrator) scheduleReset() {
	o.resetMu.Lock()
	defer o.resetMu.Unlock()

	gen := o.generation
	o.resetTimer = time.AfterFunc(o.settings.ResetDelay.Std(), func() {
		o.resetMu.Lock()
		defer o.resetMu.Unlock()
		if o.generation != gen {
			return
		}
		o.status.SetStatus("", LevelInfo)
		o.progress.HideProgress()
	})
}

func (o *Orchestrator) cancelReset() {
	o.resetMu.Lock()
	defer o.resetMu.Unlock()

	o.generation++
	if o.resetTimer != nil {
		o.resetTimer.Stop()
		o.resetTimer = nil
	}
}

// headerDeadline calls cancel unless stopped within RequestTimeout. The
// returned func stops the timer and reports whether it had already fired.
func (o *Orchestrator) headerDeadline(cancel context.CancelFunc) func() bool {
	timeout := o.settings.RequestTimeout.Std()
	if timeout <= 0 {
		return func() bool { return false }
	}
	timer := time.AfterFunc(timeout, cancel)
	return func() bool { return !timer.Stop() }
}

func (o *Orchestrator) transportError(ctx context.Context, timedOut bool, err error) *Error {
	if timedOut || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return newError(KindNetwork, msgTimedOut, err)
	}
	return newError(KindNetwork, msgRequestFailed, err)
}

// resolveReference resolves a possibly relative href against the endpoint.
func resolveReference(endpoint, href string) (string, error) {
	base, err := url.Parse(endpoint)
	if err != nil {
		return "", err
	}
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return "", err
	}
	return base.ResolveReference(ref).String(), nil
}

func (o *Orchestrator) setState(s State) {
	if State(o.state.Swap(int32(s))) != s {
		o.event(LevelVerbose, "State: %s", s)
	}
}

func (o *Orchestrator) event(level ProgressLevel, format string, args ...any) {
	if o.onEvent != nil {
		o.onEvent(ProgressEvent{Message: fmt.Sprintf(format, args...), Level: level})
	}
}

func validationError(err error) *Error {
	switch {
	case errors.Is(err, model.ErrEmptyURL):
		return newError(KindValidation, msgEmptyURL, nil)
	case errors.Is(err, model.ErrUnknownQuality):
		return newError(KindValidation, msgInvalidQuality, nil)
	default:
		return newError(KindValidation, msgInvalidURL, nil)
	}
}

// serverError builds a KindServer error from a non-2xx response, using the
// "detail" field of a JSON body when there is one.
func serverError(resp *http.Response) *Error {
	message := msgServerFailed

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyLength))
	if err == nil {
		var body model.ErrorResponse
		if json.Unmarshal(data, &body) == nil && strings.TrimSpace(body.Detail) != "" {
			message = body.Detail
		}
	}

	return &Error{Kind: KindServer, Message: message, StatusCode: resp.StatusCode}
}

// isJSONResponse decides between link and blob mode. A missing Content-Type
// falls back to sniffing the first byte.
func isJSONResponse(header http.Header, body *bufio.Reader) bool {
	if header.Get("Content-Type") != "" {
		return vhttp.IsJSON(header)
	}
	first, err := body.Peek(1)
	return err == nil && first[0] == '{'
}

func completionMessage(saved *model.SavedFile) string {
	if saved.Title != "" {
		return fmt.Sprintf("Download complete! %q saved to %s", saved.Title, saved.Path)
	}
	return "Download complete! Saved to " + saved.Path
}

func fileSize(path string) int64 {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return info.Size()
}
