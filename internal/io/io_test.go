package ioutils

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/handiism/video-downloader/internal/config"
	vhttp "github.com/handiism/video-downloader/internal/http"
	"github.com/handiism/video-downloader/internal/model"
)

func TestUniquePath(t *testing.T) {
	dir := t.TempDir()

	first := UniquePath(dir, "clip.mp4")
	if first != filepath.Join(dir, "clip.mp4") {
		t.Fatalf("UniquePath() = %q", first)
	}
	if err := os.WriteFile(first, nil, 0644); err != nil {
		t.Fatal(err)
	}

	second := UniquePath(dir, "clip.mp4")
	if second != filepath.Join(dir, "clip (1).mp4") {
		t.Errorf("UniquePath() = %q, want clip (1).mp4", second)
	}
}

func TestTempDir_CreateRelease(t *testing.T) {
	store := NewTempDir(t.TempDir())

	tmp, err := store.Create("req", strings.NewReader("payload"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if tmp.Size != int64(len("payload")) {
		t.Errorf("Size = %d", tmp.Size)
	}
	if _, err := os.Stat(tmp.Path); err != nil {
		t.Fatalf("temp file missing: %v", err)
	}

	if err := store.Release(tmp); err != nil {
		t.Fatalf("Release: %v", err)
	}
	if _, err := os.Stat(tmp.Path); !os.IsNotExist(err) {
		t.Error("temp file should be removed")
	}

	// Releasing twice is harmless.
	if err := store.Release(tmp); err != nil {
		t.Errorf("second Release: %v", err)
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("connection reset")
}

func TestTempDir_CreateReadFailureCleansUp(t *testing.T) {
	dir := t.TempDir()
	store := NewTempDir(dir)

	_, err := store.Create("req", io.MultiReader(strings.NewReader("part"), failingReader{}))
	if err == nil {
		t.Fatal("expected read error")
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("partial temp files left behind: %d", len(entries))
	}
}

func newSaver(t *testing.T, dir string) *FileSaver {
	t.Helper()
	settings := config.DefaultSettings()
	settings.ProxyType = "none"
	client, err := vhttp.NewClient(settings)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return NewFileSaver(client, dir)
}

func TestFileSaver_SaveLink(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "video-bytes")
	}))
	defer server.Close()

	dir := filepath.Join(t.TempDir(), "downloads")
	saver := newSaver(t, dir)

	path, err := saver.SaveLink(context.Background(), server.URL+"/y.mp4", "clip.mp4")
	if err != nil {
		t.Fatalf("SaveLink: %v", err)
	}
	if path != filepath.Join(dir, "clip.mp4") {
		t.Errorf("path = %q", path)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "video-bytes" {
		t.Errorf("content = %q", data)
	}
}

func TestFileSaver_SaveLinkProgress(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "video-bytes")
	}))
	defer server.Close()

	saver := newSaver(t, t.TempDir())
	var written, total int64
	saver.OnProgress = func(n, size int64) {
		written, total = n, size
	}

	if _, err := saver.SaveLink(context.Background(), server.URL+"/y.mp4", "clip.mp4"); err != nil {
		t.Fatalf("SaveLink: %v", err)
	}
	if written != 11 || total != 11 {
		t.Errorf("progress = %d/%d, want 11/11", written, total)
	}
}

func TestFileSaver_Dir(t *testing.T) {
	dir := t.TempDir()
	if got := newSaver(t, dir).Dir(); got != dir {
		t.Errorf("Dir() = %q, want %q", got, dir)
	}
}

func TestFileSaver_SaveBlob(t *testing.T) {
	dir := t.TempDir()
	store := NewTempDir(dir)
	saver := newSaver(t, filepath.Join(dir, "out"))

	tmp, err := store.Create("req", strings.NewReader("blob"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	path, err := saver.SaveBlob(context.Background(), tmp, "song.mp3")
	if err != nil {
		t.Fatalf("SaveBlob: %v", err)
	}
	if err := store.Release(tmp); err != nil {
		t.Fatalf("Release after save: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil || string(data) != "blob" {
		t.Errorf("saved content = %q, err = %v", data, err)
	}
}

func TestFileSaver_SaveBlobMissingTemp(t *testing.T) {
	saver := newSaver(t, t.TempDir())
	_, err := saver.SaveBlob(context.Background(), model.TempFile{Path: filepath.Join(t.TempDir(), "gone.part")}, "x.mp4")
	if err == nil {
		t.Error("expected error for missing temp file")
	}
}

func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 255, A: 255})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestImageService_PrepareCover(t *testing.T) {
	svc := NewImageService()

	out, err := svc.PrepareCover(context.Background(), testPNG(t, 1280, 720), 600)
	if err != nil {
		t.Fatalf("PrepareCover: %v", err)
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("DecodeConfig: %v", err)
	}
	if format != "jpeg" {
		t.Errorf("format = %q, want jpeg", format)
	}
	if cfg.Width != 600 || cfg.Height != 337 {
		t.Errorf("size = %dx%d, want 600x337", cfg.Width, cfg.Height)
	}
}

func TestImageService_PrepareCoverThinImage(t *testing.T) {
	svc := NewImageService()

	out, err := svc.PrepareCover(context.Background(), testPNG(t, 1, 2000), 600)
	if err != nil {
		t.Fatalf("PrepareCover: %v", err)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("DecodeConfig: %v", err)
	}
	if cfg.Width != 1 || cfg.Height != 600 {
		t.Errorf("size = %dx%d, want 1x600", cfg.Width, cfg.Height)
	}
}

func TestImageService_InvalidData(t *testing.T) {
	svc := NewImageService()
	if _, err := svc.PrepareCover(context.Background(), []byte("not an image"), 0); err == nil {
		t.Error("expected decode error")
	}
}

func TestFitWithin(t *testing.T) {
	tests := []struct {
		w, h, maxW, maxH int
		wantW, wantH     int
	}{
		{800, 600, 1000, 1000, 800, 600},
		{1500, 1000, 1000, 1000, 1000, 666},
		{1000, 1500, 1000, 1000, 666, 1000},
		{1, 10000, 600, 600, 1, 600},
		{10000, 1, 600, 600, 600, 1},
	}
	for _, tt := range tests {
		w, h := fitWithin(tt.w, tt.h, tt.maxW, tt.maxH)
		if w != tt.wantW || h != tt.wantH {
			t.Errorf("fitWithin(%d, %d) = %dx%d, want %dx%d", tt.w, tt.h, w, h, tt.wantW, tt.wantH)
		}
	}
}
