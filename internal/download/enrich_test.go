package download

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/bogem/id3v2"
	"github.com/handiism/video-downloader/internal/config"
	"github.com/handiism/video-downloader/internal/model"
)

type stubFetcher struct {
	data  []byte
	err   error
	calls int
}

func (s *stubFetcher) Get(ctx context.Context, url string) ([]byte, error) {
	s.calls++
	return s.data, s.err
}

func pngData(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 32, 16))
	for x := 0; x < 32; x++ {
		for y := 0; y < 16; y++ {
			img.Set(x, y, color.RGBA{R: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func emptyFile(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestAudioTagger_AfterSave(t *testing.T) {
	settings := config.DefaultSettings()
	settings.EmbedThumbnail = true
	fetcher := &stubFetcher{data: pngData(t)}
	hook := NewAudioTagger(settings, fetcher)

	path := emptyFile(t, "song.mp3")
	req := &model.DownloadRequest{SourceURL: "https://youtu.be/abc", Quality: model.QualityAudio}
	saved := &model.SavedFile{Path: path, Title: "Song", Quality: model.QualityAudio}
	link := &model.LinkResponse{DownloadURL: "https://x/song.mp3", Title: "Song", Thumbnail: "https://x/thumb.png"}

	if err := hook.AfterSave(context.Background(), req, saved, link); err != nil {
		t.Fatalf("AfterSave() error = %v", err)
	}
	if fetcher.calls != 1 {
		t.Errorf("thumbnail fetches = %d, want 1", fetcher.calls)
	}

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		t.Fatal(err)
	}
	defer tag.Close()

	if tag.Title() != "Song" {
		t.Errorf("Title() = %q, want Song", tag.Title())
	}
	if pics := tag.GetFrames(tag.CommonID("Attached picture")); len(pics) != 1 {
		t.Errorf("attached pictures = %d, want 1", len(pics))
	}
}

func TestAudioTagger_CoverFailureStillTags(t *testing.T) {
	settings := config.DefaultSettings()
	settings.EmbedThumbnail = true
	hook := NewAudioTagger(settings, &stubFetcher{err: errors.New("404")})

	path := emptyFile(t, "song.mp3")
	req := &model.DownloadRequest{SourceURL: "https://youtu.be/abc", Quality: model.QualityAudio}
	saved := &model.SavedFile{Path: path, Title: "Song", Quality: model.QualityAudio}
	link := &model.LinkResponse{Thumbnail: "https://x/thumb.png"}

	if err := hook.AfterSave(context.Background(), req, saved, link); err == nil {
		t.Fatal("expected cover art error")
	}

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		t.Fatal(err)
	}
	defer tag.Close()
	if tag.Title() != "Song" {
		t.Errorf("Title() = %q, want Song", tag.Title())
	}
}

func TestAudioTagger_SkipsVideo(t *testing.T) {
	fetcher := &stubFetcher{}
	hook := NewAudioTagger(config.DefaultSettings(), fetcher)

	tests := []struct {
		name  string
		saved *model.SavedFile
	}{
		{name: "video quality", saved: &model.SavedFile{Path: "/nonexistent/clip.mp4", Quality: model.Quality720p}},
		{name: "audio without mp3 extension", saved: &model.SavedFile{Path: "/nonexistent/clip.m4a", Quality: model.QualityAudio}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := &model.DownloadRequest{SourceURL: "https://youtu.be/abc", Quality: tt.saved.Quality}
			if err := hook.AfterSave(context.Background(), req, tt.saved, &model.LinkResponse{Thumbnail: "https://x/t.png"}); err != nil {
				t.Errorf("AfterSave() error = %v", err)
			}
		})
	}
	if fetcher.calls != 0 {
		t.Errorf("thumbnail fetches = %d, want 0", fetcher.calls)
	}
}
