// Package audio provides post-download services for audio files: ID3 tag
// writing and playlist generation.
//
// # ID3 Tagging
//
// Audio-quality downloads arrive as mp3 files named by the service. The
// Tagger writes the video title, the source URL and an optional cover image:
//
//	tagger := audio.NewTagger(audio.DefaultTagConfig())
//	err := tagger.TagFile(path, audio.TrackInfo{Title: "Clip", SourceURL: src}, coverJPEG)
//
// # Playlist Generation
//
// Batch runs can write a playlist of everything they saved:
//
//	creator := audio.NewPlaylistCreator(audio.FormatM3U, true) // extended M3U
//	content := creator.CreatePlaylist("Downloads", savedFiles)
//	os.WriteFile("downloads.m3u", []byte(content), 0644)
//
// Supported formats:
//   - M3U (with optional extended info)
//   - PLS
//   - WPL (Windows Media Player)
//   - ZPL (Zune Media Player)
package audio
