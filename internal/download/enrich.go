package download

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/handiism/video-downloader/internal/audio"
	"github.com/handiism/video-downloader/internal/config"
	ioutils "github.com/handiism/video-downloader/internal/io"
	"github.com/handiism/video-downloader/internal/model"
)

// ThumbnailFetcher retrieves thumbnail images.
type ThumbnailFetcher interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

// AudioTagger is an AfterSaveHook that writes ID3 tags to audio downloads.
//
// The title and source URL are always written when tagging is enabled. When
// EmbedThumbnail is set and the service reported a thumbnail, it is fetched,
// scaled down to ThumbnailMaxSize and embedded as the front cover.
type AudioTagger struct {
	tagger  *audio.Tagger
	images  *ioutils.ImageService
	fetcher ThumbnailFetcher

	embedCover bool
	maxSize    int
}

// NewAudioTagger creates an AudioTagger from settings. fetcher may be nil,
// in which case covers are never embedded.
func NewAudioTagger(settings *config.Settings, fetcher ThumbnailFetcher) *AudioTagger {
	cfg := audio.DefaultTagConfig()
	cfg.ModifyTags = settings.ModifyTags

	return &AudioTagger{
		tagger:     audio.NewTagger(cfg),
		images:     ioutils.NewImageService(),
		fetcher:    fetcher,
		embedCover: settings.EmbedThumbnail && fetcher != nil,
		maxSize:    settings.ThumbnailMaxSize,
	}
}

// AfterSave implements AfterSaveHook.
func (a *AudioTagger) AfterSave(ctx context.Context, req *model.DownloadRequest, saved *model.SavedFile, link *model.LinkResponse) error {
	if !saved.Quality.IsAudio() || !strings.EqualFold(filepath.Ext(saved.Path), ".mp3") {
		return nil
	}

	info := audio.TrackInfo{
		Title:     saved.Title,
		SourceURL: req.SourceURL,
	}

	var cover []byte
	var coverErr error
	if a.embedCover && link != nil && link.Thumbnail != "" {
		cover, coverErr = a.fetchCover(ctx, link.Thumbnail)
	}

	if err := a.tagger.TagFile(saved.Path, info, cover); err != nil {
		return fmt.Errorf("tag %s: %w", filepath.Base(saved.Path), err)
	}
	if coverErr != nil {
		return fmt.Errorf("cover art: %w", coverErr)
	}
	return nil
}

func (a *AudioTagger) fetchCover(ctx context.Context, url string) ([]byte, error) {
	data, err := a.fetcher.Get(ctx, url)
	if err != nil {
		return nil, err
	}
	return a.images.PrepareCover(ctx, data, a.maxSize)
}

// DefaultHooks returns the after-save hooks enabled by settings.
func DefaultHooks(settings *config.Settings, fetcher ThumbnailFetcher) []AfterSaveHook {
	var hooks []AfterSaveHook
	if settings.ModifyTags || settings.EmbedThumbnail {
		hooks = append(hooks, NewAudioTagger(settings, fetcher))
	}
	return hooks
}
