// Package model defines the core data structures used throughout
// the video-downloader application.
//
// # Quality
//
// Quality is the closed set of format tokens the conversion service accepts:
//
//	q, err := model.ParseQuality("audio")
//	fmt.Println(q.DefaultFileName()) // video.mp3
//
// # DownloadRequest
//
// DownloadRequest is the transient unit of work created on submission. It is
// validated against the accepted-source pattern before any network call:
//
//	matcher, _ := model.NewSourceMatcher(model.DefaultSourcePattern)
//	req, err := model.NewDownloadRequest(" https://youtu.be/abc ", "720p", matcher)
//
// # Responses
//
// LinkResponse and ErrorResponse mirror the JSON documents returned by the
// remote service. Binary responses are materialised as a TempFile.
//
// # Saved Files
//
// SavedFile describes a file that ended up on disk after a successful
// submission. Batch sessions collect them to build playlists.
package model
