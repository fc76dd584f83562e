package download

import (
	"context"
	"strings"

	"github.com/handiism/video-downloader/internal/model"
)

// BatchResult is the outcome of one URL of a batch.
type BatchResult struct {
	URL  string
	File *model.SavedFile
	Err  error
}

// ParseInputURLs splits input on newlines and commas, returning the
// non-empty trimmed entries in order.
func ParseInputURLs(input string) []string {
	fields := strings.FieldsFunc(input, func(r rune) bool {
		return r == '\n' || r == '\r' || r == ','
	})

	urls := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			urls = append(urls, f)
		}
	}
	return urls
}

// RunBatch submits urls one after another through o. onDone, if set, is
// called after each URL. The run stops early when ctx is cancelled; URLs not
// attempted are left out of the result.
func RunBatch(ctx context.Context, o *Orchestrator, urls []string, quality string, onDone func(BatchResult)) []BatchResult {
	results := make([]BatchResult, 0, len(urls))
	for _, u := range urls {
		if ctx.Err() != nil {
			break
		}

		file, err := o.Submit(ctx, u, quality)
		result := BatchResult{URL: u, File: file, Err: err}
		results = append(results, result)
		if onDone != nil {
			onDone(result)
		}
	}
	return results
}
