package model

import (
	"errors"
	"testing"
)

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"normal-file.mp4", "normal-file.mp4"},
		{"file:with:colons.mp4", "file_with_colons.mp4"},
		{"file<with>brackets.mp4", "file_with_brackets.mp4"},
		{"file/with\\slashes.mp4", "file_with_slashes.mp4"},
		{"file|with|pipes.mp4", "file_with_pipes.mp4"},
		{"file?with*wildcards.mp4", "file_with_wildcards.mp4"},
		{"file\"with\"quotes.mp4", "file_with_quotes.mp4"},
		{"trailing dots...", "trailing dots"},
		{"multiple   spaces", "multiple spaces"},
		{"trailing spaces   ", "trailing spaces"},
		{"dots then space.. ", "dots then space"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := SanitizeFileName(tt.input)
			if got != tt.want {
				t.Errorf("SanitizeFileName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseQuality(t *testing.T) {
	tests := []struct {
		input   string
		want    Quality
		wantErr bool
	}{
		{"audio", QualityAudio, false},
		{"720p", Quality720p, false},
		{" 1080P ", Quality1080p, false},
		{"highest", QualityHighest, false},
		{"4k", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseQuality(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownQuality) {
					t.Errorf("ParseQuality(%q) error = %v, want ErrUnknownQuality", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseQuality(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestQuality_DefaultFileName(t *testing.T) {
	for _, q := range Qualities() {
		want := "video.mp4"
		if q == QualityAudio {
			want = "video.mp3"
		}
		if got := q.DefaultFileName(); got != want {
			t.Errorf("%s.DefaultFileName() = %q, want %q", q, got, want)
		}
	}
}

func TestQuality_NextWraps(t *testing.T) {
	q := QualityHighest
	for range Qualities() {
		q = q.Next()
	}
	if q != QualityHighest {
		t.Errorf("cycling through all qualities ended at %q, want %q", q, QualityHighest)
	}
}

func TestSuggestedFileName(t *testing.T) {
	tests := []struct {
		name    string
		server  string
		quality Quality
		want    string
	}{
		{"server name wins", "clip.mp4", QualityAudio, "clip.mp4"},
		{"audio default", "", QualityAudio, "video.mp3"},
		{"video default", "", Quality720p, "video.mp4"},
		{"unusable server name", "...", Quality1080p, "video.mp4"},
		{"sanitized server name", "a/b.mp4", QualityHighest, "a_b.mp4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SuggestedFileName(tt.server, tt.quality); got != tt.want {
				t.Errorf("SuggestedFileName(%q, %q) = %q, want %q", tt.server, tt.quality, got, tt.want)
			}
		})
	}
}

func TestNewDownloadRequest(t *testing.T) {
	matcher, err := NewSourceMatcher(DefaultSourcePattern)
	if err != nil {
		t.Fatalf("NewSourceMatcher: %v", err)
	}

	tests := []struct {
		name    string
		url     string
		quality string
		wantErr error
	}{
		{"watch url", "https://www.youtube.com/watch?v=abc", "720p", nil},
		{"short url without scheme", "youtu.be/abc", "audio", nil},
		{"surrounding whitespace", "  https://youtu.be/abc \n", "1080p", nil},
		{"empty", "", "720p", ErrEmptyURL},
		{"whitespace only", " \t\n ", "720p", ErrEmptyURL},
		{"other host", "https://vimeo.com/123", "720p", ErrUnsupportedSource},
		{"bare host", "https://youtube.com/", "720p", ErrUnsupportedSource},
		{"bad quality", "https://youtu.be/abc", "8k", ErrUnknownQuality},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := NewDownloadRequest(tt.url, tt.quality, matcher)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if req.ID == "" {
				t.Error("ID should be set")
			}
			body := req.Body()
			if body.URL != req.SourceURL || body.Quality != req.Quality.String() {
				t.Errorf("Body() = %+v, want url %q quality %q", body, req.SourceURL, req.Quality)
			}
		})
	}
}
