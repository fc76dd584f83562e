package model

import (
	"regexp"
	"strings"
)

var (
	invalidFileNameChars = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)
	trailingDots         = regexp.MustCompile(`\.+$`)
	repeatedWhitespace   = regexp.MustCompile(`\s+`)
)

// TempFile is a locally-addressable temporary copy of a binary payload.
type TempFile struct {
	// Path is the location of the temporary file.
	Path string

	// Size is the number of payload bytes written.
	Size int64
}

// SavedFile describes a file materialised by a successful submission.
type SavedFile struct {
	// Path is where the file was saved.
	Path string

	// Title is the video title reported by the service, if any.
	Title string

	// Size is the file size in bytes.
	Size int64

	// Quality is the quality the file was requested with.
	Quality Quality
}

// SuggestedFileName picks the name to save a file under.
//
// The server-provided name is authoritative when present; otherwise the
// quality default ("video.mp3" or "video.mp4") is used.
func SuggestedFileName(serverName string, q Quality) string {
	if name := SanitizeFileName(serverName); name != "" {
		return name
	}
	return q.DefaultFileName()
}

// SanitizeFileName removes or replaces characters that are invalid in file/folder names.
//
// The following transformations are applied:
//   - Invalid characters (<>:"/\|?* and control chars) are replaced with underscore
//   - Trailing dots are removed (Windows limitation)
//   - Multiple whitespace is collapsed to single space
//   - Surrounding whitespace is removed
//
// Example:
//
//	SanitizeFileName("Song: Part 1/2") // Returns "Song_ Part 1_2"
func SanitizeFileName(name string) string {
	name = invalidFileNameChars.ReplaceAllString(name, "_")
	name = repeatedWhitespace.ReplaceAllString(name, " ")
	name = trailingDots.ReplaceAllString(strings.TrimSpace(name), "")
	return strings.TrimSpace(name)
}
