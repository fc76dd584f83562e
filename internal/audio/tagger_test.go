package audio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bogem/id3v2"
)

func writeUntaggedMP3(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "video.mp3")
	// Frame sync followed by filler; enough for the tagger, which never decodes audio.
	data := append([]byte{0xFF, 0xFB, 0x90, 0x64}, make([]byte, 256)...)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestTagger_TagFile(t *testing.T) {
	path := writeUntaggedMP3(t)
	cover := []byte{0xFF, 0xD8, 0xFF, 0xD9}

	tagger := NewTagger(nil)
	if err := tagger.TagFile(path, TrackInfo{Title: "Clip", SourceURL: "https://youtu.be/abc"}, cover); err != nil {
		t.Fatalf("TagFile: %v", err)
	}

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer tag.Close()

	if tag.Title() != "Clip" {
		t.Errorf("Title = %q, want Clip", tag.Title())
	}

	comments := tag.GetFrames(tag.CommonID("Comments"))
	if len(comments) != 1 {
		t.Fatalf("got %d comment frames, want 1", len(comments))
	}
	if cf, ok := comments[0].(id3v2.CommentFrame); !ok || cf.Text != "https://youtu.be/abc" {
		t.Errorf("comment = %+v", comments[0])
	}

	pictures := tag.GetFrames(tag.CommonID("Attached picture"))
	if len(pictures) != 1 {
		t.Errorf("got %d pictures, want 1", len(pictures))
	}
}

func TestTagger_RetagReplacesCover(t *testing.T) {
	path := writeUntaggedMP3(t)
	tagger := NewTagger(DefaultTagConfig())

	for i := 0; i < 2; i++ {
		if err := tagger.TagFile(path, TrackInfo{Title: "Clip"}, []byte{0xFF, 0xD8, 0xFF, 0xD9}); err != nil {
			t.Fatalf("TagFile #%d: %v", i, err)
		}
	}

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer tag.Close()

	if n := len(tag.GetFrames(tag.CommonID("Attached picture"))); n != 1 {
		t.Errorf("got %d pictures after retagging, want 1", n)
	}
}

func TestTagger_MissingFile(t *testing.T) {
	tagger := NewTagger(nil)
	if err := tagger.TagFile(filepath.Join(t.TempDir(), "missing.mp3"), TrackInfo{Title: "x"}, nil); err == nil {
		t.Error("expected error for missing file")
	}
}
