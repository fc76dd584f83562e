package audio

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/handiism/video-downloader/internal/model"
)

func testFiles() []model.SavedFile {
	return []model.SavedFile{
		{Path: "/dl/clip.mp4", Title: "Clip & Friends", Quality: model.Quality720p},
		{Path: "/dl/video.mp3", Quality: model.QualityAudio},
	}
}

func TestPlaylistCreator_M3U(t *testing.T) {
	content := NewPlaylistCreator(FormatM3U, false).CreatePlaylist("Downloads", testFiles())

	if strings.Contains(content, "#EXTM3U") {
		t.Error("plain M3U should not contain #EXTM3U")
	}
	if content != "clip.mp4\nvideo.mp3\n" {
		t.Errorf("content = %q", content)
	}
}

func TestPlaylistCreator_M3UExtended(t *testing.T) {
	content := NewPlaylistCreator(FormatM3U, true).CreatePlaylist("Downloads", testFiles())

	if !strings.HasPrefix(content, "#EXTM3U") {
		t.Error("Extended M3U should start with #EXTM3U")
	}
	if !strings.Contains(content, "#EXTINF:-1,Clip & Friends\n") {
		t.Error("Extended M3U should contain the service title")
	}
	if !strings.Contains(content, "#EXTINF:-1,video\n") {
		t.Error("untitled entries should fall back to the file name")
	}
}

func TestPlaylistCreator_PLS(t *testing.T) {
	content := NewPlaylistCreator(FormatPLS, false).CreatePlaylist("Downloads", testFiles())

	if !strings.HasPrefix(content, "[playlist]") {
		t.Error("PLS should start with [playlist]")
	}
	if !strings.Contains(content, "File2=video.mp3") {
		t.Error("PLS should contain File2=")
	}
	if !strings.Contains(content, "NumberOfEntries=2") {
		t.Error("PLS should contain NumberOfEntries=2")
	}
}

func TestPlaylistCreator_WPL(t *testing.T) {
	content := NewPlaylistCreator(FormatWPL, false).CreatePlaylist("Mine <3", testFiles())

	if !strings.HasPrefix(content, "<?wpl") {
		t.Error("WPL should start with <?wpl")
	}
	if !strings.Contains(content, "<title>Mine &lt;3</title>") {
		t.Error("WPL title should be escaped")
	}
	if strings.Contains(content, "trackTitle") {
		t.Error("WPL should not carry ZPL attributes")
	}
}

func TestPlaylistCreator_ZPL(t *testing.T) {
	content := NewPlaylistCreator(FormatZPL, false).CreatePlaylist("Downloads", testFiles())

	if !strings.HasPrefix(content, "<?zpl") {
		t.Error("ZPL should start with <?zpl")
	}
	if !strings.Contains(content, `trackTitle="Clip &amp; Friends"`) {
		t.Error("ZPL should contain escaped track titles")
	}
	if !strings.Contains(content, `content="2"`) {
		t.Error("ZPL should contain the item count")
	}
}

func TestParsePlaylistFormat(t *testing.T) {
	tests := []struct {
		in   string
		want PlaylistFormat
		ext  string
	}{
		{"m3u", FormatM3U, ".m3u"},
		{"PLS", FormatPLS, ".pls"},
		{"wpl", FormatWPL, ".wpl"},
		{"zpl", FormatZPL, ".zpl"},
		{"xspf", FormatM3U, ".m3u"},
	}

	for _, tt := range tests {
		got := ParsePlaylistFormat(tt.in)
		if got != tt.want || got.Extension() != tt.ext {
			t.Errorf("ParsePlaylistFormat(%q) = %v (%s), want %v (%s)", tt.in, got, got.Extension(), tt.want, tt.ext)
		}
	}
}

func TestPlaylistName(t *testing.T) {
	now := time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC)

	if got := PlaylistName("downloads-{date}", now); got != "downloads-2026-03-09" {
		t.Errorf("PlaylistName() = %q", got)
	}
	if got := PlaylistName("my/list", now); got != "my_list" {
		t.Errorf("PlaylistName() = %q, want sanitized name", got)
	}
}

func TestPlaylistCreator_Save(t *testing.T) {
	dir := t.TempDir()
	p := NewPlaylistCreator(FormatM3U, false)

	first, err := p.Save(context.Background(), dir, "batch", testFiles())
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if first != filepath.Join(dir, "batch.m3u") {
		t.Errorf("path = %q", first)
	}

	data, err := os.ReadFile(first)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "clip.mp4\nvideo.mp3\n" {
		t.Errorf("content = %q", data)
	}

	second, err := p.Save(context.Background(), dir, "batch", testFiles())
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if second != filepath.Join(dir, "batch (1).m3u") {
		t.Errorf("second path = %q, want a new file", second)
	}
}
