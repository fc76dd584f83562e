package ioutils

import (
	"context"
	"fmt"
	"os"

	"github.com/handiism/video-downloader/internal/http"
	"github.com/handiism/video-downloader/internal/model"
)

// FileSaver is the local "save file" action.
//
// Links are fetched into the downloads folder; binary payloads already on
// disk as a TempFile are moved there. File names never overwrite existing
// files (see UniquePath).
type FileSaver struct {
	client *http.Client
	dir    string

	// OnProgress, when set, receives byte counts while a link is fetched.
	OnProgress func(written, total int64)
}

// NewFileSaver creates a FileSaver writing into dir.
func NewFileSaver(client *http.Client, dir string) *FileSaver {
	return &FileSaver{client: client, dir: dir}
}

// Dir returns the downloads folder.
func (s *FileSaver) Dir() string {
	return s.dir
}

// SaveLink downloads href and stores it as fileName. Returns the final path.
func (s *FileSaver) SaveLink(ctx context.Context, href, fileName string) (string, error) {
	if err := EnsureDir(s.dir); err != nil {
		return "", err
	}

	dest := UniquePath(s.dir, fileName)
	if _, err := s.client.DownloadFile(ctx, href, dest, s.OnProgress); err != nil {
		return "", fmt.Errorf("download %s: %w", href, err)
	}
	return dest, nil
}

// SaveBlob moves a temporary payload into the downloads folder as fileName.
// Returns the final path.
func (s *FileSaver) SaveBlob(ctx context.Context, tmp model.TempFile, fileName string) (string, error) {
	if err := EnsureDir(s.dir); err != nil {
		return "", err
	}

	dest := UniquePath(s.dir, fileName)
	if err := os.Rename(tmp.Path, dest); err == nil {
		return dest, nil
	}

	// Rename fails across file systems; fall back to a copy.
	if err := CopyFile(ctx, tmp.Path, dest); err != nil {
		return "", fmt.Errorf("save %s: %w", fileName, err)
	}
	return dest, nil
}
