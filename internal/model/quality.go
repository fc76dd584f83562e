package model

import (
	"errors"
	"fmt"
	"strings"
)

// Quality is a format token understood by the conversion service.
type Quality string

const (
	// QualityHighest asks for the best available video and audio.
	QualityHighest Quality = "highest"

	// Quality1080p asks for 1080p video.
	Quality1080p Quality = "1080p"

	// Quality720p asks for 720p video.
	Quality720p Quality = "720p"

	// QualityAudio asks for an audio-only mp3.
	QualityAudio Quality = "audio"
)

// ErrUnknownQuality is returned by ParseQuality for tokens outside the closed set.
var ErrUnknownQuality = errors.New("unknown quality")

// Qualities returns every supported quality in display order.
func Qualities() []Quality {
	return []Quality{QualityHighest, Quality1080p, Quality720p, QualityAudio}
}

// ParseQuality converts a user-selected token into a Quality.
//
// Matching is case-insensitive and ignores surrounding whitespace. Free text
// is never accepted.
func ParseQuality(s string) (Quality, error) {
	token := Quality(strings.ToLower(strings.TrimSpace(s)))
	for _, q := range Qualities() {
		if q == token {
			return q, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownQuality, s)
}

// String returns the wire token.
func (q Quality) String() string {
	return string(q)
}

// IsAudio reports whether the quality yields an audio-only file.
func (q Quality) IsAudio() bool {
	return q == QualityAudio
}

// Extension returns the file extension for files of this quality, including the dot.
//
// Returns:
//   - ".mp3" for QualityAudio
//   - ".mp4" for everything else
func (q Quality) Extension() string {
	if q.IsAudio() {
		return ".mp3"
	}
	return ".mp4"
}

// DefaultFileName is the name used when the server does not suggest one.
func (q Quality) DefaultFileName() string {
	return "video" + q.Extension()
}

// Next returns the quality after q in display order, wrapping around.
func (q Quality) Next() Quality {
	all := Qualities()
	for i, candidate := range all {
		if candidate == q {
			return all[(i+1)%len(all)]
		}
	}
	return all[0]
}
