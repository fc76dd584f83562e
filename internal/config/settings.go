package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/handiism/video-downloader/internal/model"
)

// DefaultEndpoint is the public conversion service the client talks to.
const DefaultEndpoint = "https://ytvid-downloader.onrender.com/prepare/"

// Settings holds all configuration options.
type Settings struct {
	// Service settings
	Endpoint              string   `json:"endpoint"`
	AcceptedSourcePattern string   `json:"accepted_source_pattern"`
	DefaultQuality        string   `json:"default_quality"`
	RequestTimeout        Duration `json:"request_timeout"`
	DownloadTimeout       Duration `json:"download_timeout"`
	UserAgent             string   `json:"user_agent"`
	KeepCookies           bool     `json:"keep_cookies"`

	// Download settings
	DownloadsPath string `json:"downloads_path"`

	// Progress settings
	TickInterval         Duration `json:"tick_interval"`
	InitialProgress      float64  `json:"initial_progress"`
	ProgressStep         float64  `json:"progress_step"`
	SimulatedProgressCap float64  `json:"simulated_progress_cap"`
	ReadyProgress        float64  `json:"ready_progress"`
	ResetDelay           Duration `json:"reset_delay"`

	// Tag settings
	ModifyTags       bool `json:"modify_tags"`
	EmbedThumbnail   bool `json:"embed_thumbnail"`
	ThumbnailMaxSize int  `json:"thumbnail_max_size"`

	// Playlist settings
	CreatePlaylist         bool   `json:"create_playlist"`
	PlaylistFormat         string `json:"playlist_format"` // m3u, pls, wpl, zpl
	PlaylistFileNameFormat string `json:"playlist_file_name_format"`
	M3UExtended            bool   `json:"m3u_extended"`

	// Proxy settings
	ProxyType    string `json:"proxy_type"` // none, system, manual
	ProxyAddress string `json:"proxy_address"`
	ProxyPort    int    `json:"proxy_port"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	homeDir, _ := os.UserHomeDir()
	return &Settings{
		Endpoint:              DefaultEndpoint,
		AcceptedSourcePattern: model.DefaultSourcePattern,
		DefaultQuality:        string(model.Quality720p),
		RequestTimeout:        Duration(3 * time.Minute),
		DownloadTimeout:       Duration(30 * time.Minute),
		UserAgent:             "VideoDownloader",
		KeepCookies:           true,

		DownloadsPath: filepath.Join(homeDir, "Downloads", "Videos"),

		TickInterval:         Duration(500 * time.Millisecond),
		InitialProgress:      10,
		ProgressStep:         3,
		SimulatedProgressCap: 80,
		ReadyProgress:        90,
		ResetDelay:           Duration(2 * time.Second),

		ModifyTags:       true,
		EmbedThumbnail:   true,
		ThumbnailMaxSize: 600,

		CreatePlaylist:         false,
		PlaylistFormat:         "m3u",
		PlaylistFileNameFormat: "downloads-{date}",
		M3UExtended:            true,

		ProxyType: "system",
	}
}

// Load reads settings from a JSON file.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings()
	if err := json.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return settings, nil
}

// Save writes settings to a JSON file.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Validate reports the first setting that would make submissions impossible.
func (s *Settings) Validate() error {
	endpoint, err := url.Parse(s.Endpoint)
	if err != nil || endpoint.Host == "" || (endpoint.Scheme != "http" && endpoint.Scheme != "https") {
		return fmt.Errorf("invalid endpoint %q", s.Endpoint)
	}

	if _, err := model.NewSourceMatcher(s.AcceptedSourcePattern); err != nil {
		return fmt.Errorf("invalid accepted source pattern: %w", err)
	}

	if _, err := model.ParseQuality(s.DefaultQuality); err != nil {
		return fmt.Errorf("invalid default quality: %w", err)
	}

	if s.TickInterval <= 0 {
		return errors.New("tick interval must be positive")
	}

	if s.InitialProgress < 0 || s.SimulatedProgressCap > 100 || s.InitialProgress > s.SimulatedProgressCap {
		return fmt.Errorf("progress bounds %.0f..%.0f out of range", s.InitialProgress, s.SimulatedProgressCap)
	}

	switch s.ProxyType {
	case "none", "system", "":
	case "manual":
		if s.ProxyAddress == "" || s.ProxyPort <= 0 {
			return errors.New("manual proxy requires proxy_address and proxy_port")
		}
	default:
		return fmt.Errorf("unknown proxy type %q", s.ProxyType)
	}

	return nil
}

// SourceMatcher compiles the accepted-source pattern.
func (s *Settings) SourceMatcher() (*model.SourceMatcher, error) {
	return model.NewSourceMatcher(s.AcceptedSourcePattern)
}

// ProxyURL returns the manual proxy address, or nil when no manual proxy is configured.
func (s *Settings) ProxyURL() *url.URL {
	if s.ProxyType != "manual" || s.ProxyAddress == "" {
		return nil
	}
	return &url.URL{Scheme: "http", Host: fmt.Sprintf("%s:%d", s.ProxyAddress, s.ProxyPort)}
}
