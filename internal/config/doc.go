// Package config provides configuration management for video-downloader.
//
// This package handles:
//   - Loading and saving settings from JSON files
//   - Default configuration values
//   - Environment and .env overrides
//   - Human-readable duration strings ("500ms", "3m", "1h30m")
//
// # Default Settings
//
// Use DefaultSettings() to get sensible defaults:
//
//	settings := config.DefaultSettings()
//	// Posts to the public conversion endpoint
//	// Saves to ~/Downloads/Videos
//	// Accepts youtube.com and youtu.be links
//
// # Loading from File
//
//	settings, err := config.Load("/path/to/config.json")
//	if err != nil {
//	    // Uses defaults if file doesn't exist
//	}
//
// # Environment
//
// LoadEnv reads an optional .env file and applies VDL_* variables on top of
// the loaded settings:
//
//	VDL_ENDPOINT=https://converter.internal/prepare/
//	VDL_DOWNLOADS_PATH=/srv/media
//	VDL_QUALITY=audio
//	VDL_REQUEST_TIMEOUT=5m
//
// # Configuration Options
//
// Settings includes options for:
//   - Conversion endpoint and accepted sources
//   - Request and download timeouts
//   - Progress simulation pacing
//   - Audio tagging and thumbnails
//   - Playlist generation
//   - Proxy configuration
package config
