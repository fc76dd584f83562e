// Package ioutils provides file system and image processing utilities.
//
// This package contains:
//   - Directory creation, file copying and collision-free file naming
//   - TempDir, the store for temporary copies of binary payloads
//   - FileSaver, which materialises links and payloads in the downloads folder
//   - Image resizing and format conversion for thumbnails
//
// # Temporary Resources
//
// Binary responses are streamed into a temporary file first and released as
// soon as the save action has run:
//
//	store := ioutils.NewTempDir(settings.DownloadsPath)
//	tmp, err := store.Create(req.ID, resp.Body)
//	defer store.Release(tmp)
//
// # Saving
//
//	saver := ioutils.NewFileSaver(client, settings.DownloadsPath)
//	path, err := saver.SaveLink(ctx, "https://cdn.example/v.mp4", "clip.mp4")
//	path, err = saver.SaveBlob(ctx, tmp, "clip.mp4")
//
// # Image Processing
//
// The ImageService handles thumbnail manipulation:
//
//	svc := ioutils.NewImageService()
//	resized, _ := svc.ResizeImage(ctx, imageData, 600, 600)
//	jpeg, _ := svc.ConvertToJPEG(ctx, pngData)
package ioutils
