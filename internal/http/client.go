package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/http/cookiejar"
	"os"
	"strings"

	"github.com/handiism/video-downloader/internal/config"
	"golang.org/x/net/publicsuffix"
)

// Client wraps HTTP operations with service-specific configuration.
//
// Client provides:
//   - Configured User-Agent header
//   - JSON POST for conversion requests
//   - File download with progress tracking
//   - Proxy and cookie handling taken from Settings
//
// Example usage:
//
//	client, err := NewClient(config.DefaultSettings())
//
//	// Submit a job
//	resp, err := client.PostJSON(ctx, endpoint, model.PrepareRequest{URL: u, Quality: "720p"})
//
//	// Download file with progress
//	err = client.DownloadFile(ctx, fileURL, "/path/to/video.mp4", func(written, total int64) {
//	    percent := float64(written) / float64(total) * 100
//	    fmt.Printf("%.1f%%\n", percent)
//	})
type Client struct {
	httpClient *http.Client
	userAgent  string
}

// NewClient creates a new HTTP client from settings.
//
// The client is configured with:
//   - DownloadTimeout as the overall per-request timeout (0 disables it)
//   - UserAgent as the User-Agent header
//   - A proxy according to ProxyType (none, system, manual)
//   - A public-suffix aware cookie jar when KeepCookies is set
func NewClient(settings *config.Settings) (*Client, error) {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	switch settings.ProxyType {
	case "none":
		transport.Proxy = nil
	case "manual":
		transport.Proxy = http.ProxyURL(settings.ProxyURL())
	default:
		transport.Proxy = http.ProxyFromEnvironment
	}

	httpClient := &http.Client{
		Transport: transport,
		Timeout:   settings.DownloadTimeout.Std(),
	}

	if settings.KeepCookies {
		jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
		if err != nil {
			return nil, err
		}
		httpClient.Jar = jar
	}

	userAgent := settings.UserAgent
	if userAgent == "" {
		userAgent = "VideoDownloader"
	}

	return &Client{
		httpClient: httpClient,
		userAgent:  userAgent,
	}, nil
}

// ProgressWriter wraps a writer to track download progress.
//
// Use this to monitor large downloads by providing an OnUpdate callback
// that receives the current bytes written and total expected bytes.
type ProgressWriter struct {
	// Writer is the underlying writer to write data to.
	Writer io.Writer

	// Total is the expected total bytes (from Content-Length header).
	// It is -1 when the server did not announce a length.
	Total int64

	// Written is the current number of bytes written.
	Written int64

	// OnUpdate is called after each Write with current progress.
	OnUpdate func(written, total int64)
}

// Write implements io.Writer, tracking progress and calling OnUpdate.
func (pw *ProgressWriter) Write(p []byte) (int, error) {
	n, err := pw.Writer.Write(p)
	pw.Written += int64(n)
	if pw.OnUpdate != nil {
		pw.OnUpdate(pw.Written, pw.Total)
	}
	return n, err
}

// PostJSON encodes body as JSON and posts it to url.
//
// The response is returned whatever its status code; the caller is
// responsible for interpreting the status and closing resp.Body.
// Only transport failures are returned as errors.
func (c *Client) PostJSON(ctx context.Context, url string, body any) (*http.Response, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json, */*")
	req.Header.Set("User-Agent", c.userAgent)

	return c.httpClient.Do(req)
}

// Get performs a GET request and returns the response body as bytes.
//
// Returns an error if:
//   - The request fails
//   - The response status is not 200 OK
//   - Reading the body fails
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	return io.ReadAll(resp.Body)
}

// DownloadFile downloads a file to the specified path with optional progress callback.
//
// The content is streamed directly to disk. On failure the partially written
// file is removed so a later attempt never mistakes it for a finished download.
//
// Parameters:
//   - ctx: Context for cancellation
//   - url: URL to download from
//   - destPath: Local file path to save to
//   - onProgress: Optional callback called with (bytesWritten, totalBytes)
//     Pass nil to disable progress tracking
//
// Returns the number of bytes written.
func (c *Client) DownloadFile(ctx context.Context, url, destPath string, onProgress func(written, total int64)) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	file, err := os.Create(destPath)
	if err != nil {
		return 0, err
	}

	var writer io.Writer = file
	if onProgress != nil {
		writer = &ProgressWriter{
			Writer:   file,
			Total:    resp.ContentLength,
			OnUpdate: onProgress,
		}
	}

	n, err := io.Copy(writer, resp.Body)
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(destPath)
		return n, err
	}
	return n, nil
}

// FileNameFromDisposition returns the filename parameter of a
// Content-Disposition header, or "" when there is none.
//
// Both filename and the RFC 5987 filename* form are understood; the mime
// package decodes the latter into the plain filename parameter.
func FileNameFromDisposition(header http.Header) string {
	value := header.Get("Content-Disposition")
	if value == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(value)
	if err != nil {
		return ""
	}
	return params["filename"]
}

// IsJSON reports whether the response declares a JSON media type.
func IsJSON(header http.Header) bool {
	mediaType, _, err := mime.ParseMediaType(header.Get("Content-Type"))
	if err != nil {
		return false
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}

// IsSuccess reports whether status is a 2xx code.
func IsSuccess(status int) bool {
	return status >= 200 && status < 300
}
