// Package http provides an HTTP client configured for the conversion service.
//
// The Client in this package handles:
//   - User-Agent headers
//   - JSON submissions to the conversion endpoint
//   - File downloads with progress tracking
//   - Proxy selection and session cookies
//   - Timeout handling
//
// # Basic Usage
//
//	client, err := http.NewClient(settings)
//
//	// Submit a conversion job; the caller owns resp.Body
//	resp, err := client.PostJSON(ctx, settings.Endpoint, req.Body())
//
//	// Download the prepared file with a progress callback
//	client.DownloadFile(ctx, downloadURL, "/path/to/video.mp4", func(written, total int64) {
//	    fmt.Printf("%.1f%%\n", float64(written)/float64(total)*100)
//	})
//
// # Progress Tracking
//
// The ProgressWriter type can be used to wrap any io.Writer for progress tracking:
//
//	pw := &http.ProgressWriter{
//	    Writer:   file,
//	    Total:    contentLength,
//	    OnUpdate: func(written, total int64) { /* update UI */ },
//	}
package http
