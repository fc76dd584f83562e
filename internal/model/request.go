package model

import (
	"errors"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// DefaultSourcePattern accepts YouTube watch and short links, with or without scheme.
const DefaultSourcePattern = `^(https?://)?(www\.)?(youtube\.com|youtu\.be)/.+`

var (
	// ErrEmptyURL is returned when the submitted URL is empty after trimming.
	ErrEmptyURL = errors.New("empty url")

	// ErrUnsupportedSource is returned when the URL does not match the accepted-source pattern.
	ErrUnsupportedSource = errors.New("unsupported source url")
)

// SourceMatcher decides whether a URL points at an accepted video host.
type SourceMatcher struct {
	re *regexp.Regexp
}

// NewSourceMatcher compiles pattern into a SourceMatcher.
func NewSourceMatcher(pattern string) (*SourceMatcher, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	return &SourceMatcher{re: re}, nil
}

// Match reports whether rawURL is an accepted source.
func (m *SourceMatcher) Match(rawURL string) bool {
	return m.re.MatchString(rawURL)
}

// DownloadRequest is a single validated submission.
//
// It lives for the duration of one exchange with the conversion service and
// is discarded afterwards.
type DownloadRequest struct {
	// ID identifies the request in logs and temporary file names.
	ID string

	// SourceURL is the trimmed, accepted source URL.
	SourceURL string

	// Quality is the selected format token.
	Quality Quality
}

// NewDownloadRequest trims and validates raw form values.
//
// Returns ErrEmptyURL, ErrUnsupportedSource or ErrUnknownQuality (wrapped)
// when the input is rejected.
func NewDownloadRequest(rawURL, quality string, matcher *SourceMatcher) (*DownloadRequest, error) {
	sourceURL := strings.TrimSpace(rawURL)
	if sourceURL == "" {
		return nil, ErrEmptyURL
	}
	if matcher != nil && !matcher.Match(sourceURL) {
		return nil, ErrUnsupportedSource
	}

	q, err := ParseQuality(quality)
	if err != nil {
		return nil, err
	}

	return &DownloadRequest{
		ID:        uuid.NewString(),
		SourceURL: sourceURL,
		Quality:   q,
	}, nil
}

// PrepareRequest is the JSON body posted to the conversion endpoint.
type PrepareRequest struct {
	URL     string `json:"url"`
	Quality string `json:"quality"`
}

// Body returns the wire representation of the request.
func (r *DownloadRequest) Body() PrepareRequest {
	return PrepareRequest{URL: r.SourceURL, Quality: r.Quality.String()}
}

// LinkResponse is returned when the service has already produced the file.
type LinkResponse struct {
	DownloadURL string `json:"download_url"`
	Filename    string `json:"filename,omitempty"`
	Title       string `json:"title,omitempty"`

	// Thumbnail is an optional cover image URL, used for audio tagging.
	Thumbnail string `json:"thumbnail,omitempty"`
}

// ErrorResponse is the body of a rejected request.
type ErrorResponse struct {
	Detail string `json:"detail"`
}
