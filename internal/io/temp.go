package ioutils

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/handiism/video-downloader/internal/model"
)

// TempDir stores binary payloads as temporary files until they are saved.
//
// Temporary files live in Dir (the system temp directory when empty). Keeping
// them on the same file system as the downloads folder lets SaveBlob rename
// instead of copy.
type TempDir struct {
	Dir string
}

// NewTempDir creates a TempDir rooted at dir.
func NewTempDir(dir string) *TempDir {
	return &TempDir{Dir: dir}
}

// Create streams r into a new temporary file.
//
// The returned TempFile must be passed to Release. If reading r fails the
// partial file is removed and the read error is returned.
func (t *TempDir) Create(prefix string, r io.Reader) (model.TempFile, error) {
	if t.Dir != "" {
		if err := EnsureDir(t.Dir); err != nil {
			return model.TempFile{}, err
		}
	}

	f, err := os.CreateTemp(t.Dir, fmt.Sprintf(".vdl-%s-*.part", prefix))
	if err != nil {
		return model.TempFile{}, err
	}

	n, err := io.Copy(f, r)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(f.Name())
		return model.TempFile{}, err
	}

	return model.TempFile{Path: f.Name(), Size: n}, nil
}

// Release removes the temporary file. Releasing a file that was already
// moved away is not an error.
func (t *TempDir) Release(tmp model.TempFile) error {
	if tmp.Path == "" {
		return nil
	}
	if err := os.Remove(tmp.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
