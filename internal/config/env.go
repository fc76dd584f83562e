package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables recognised by ApplyEnv.
const (
	EnvEndpoint       = "VDL_ENDPOINT"
	EnvDownloadsPath  = "VDL_DOWNLOADS_PATH"
	EnvQuality        = "VDL_QUALITY"
	EnvRequestTimeout = "VDL_REQUEST_TIMEOUT"
	EnvModifyTags     = "VDL_MODIFY_TAGS"
	EnvProxy          = "VDL_PROXY"
)

// LoadEnv loads variables from the given .env files and applies them to s.
//
// Files that do not exist are skipped. Variables already present in the
// process environment take precedence over the files.
func (s *Settings) LoadEnv(files ...string) error {
	var existing []string
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		}
	}

	if len(existing) > 0 {
		if err := godotenv.Load(existing...); err != nil {
			return fmt.Errorf("load env: %w", err)
		}
	}

	return s.ApplyEnv(os.Getenv)
}

// ApplyEnv overrides settings from VDL_* variables looked up with getenv.
func (s *Settings) ApplyEnv(getenv func(string) string) error {
	if v := getenv(EnvEndpoint); v != "" {
		s.Endpoint = v
	}
	if v := getenv(EnvDownloadsPath); v != "" {
		s.DownloadsPath = v
	}
	if v := getenv(EnvQuality); v != "" {
		s.DefaultQuality = v
	}
	if v := getenv(EnvRequestTimeout); v != "" {
		d, err := ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvRequestTimeout, err)
		}
		s.RequestTimeout = d
	}
	if v := getenv(EnvModifyTags); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvModifyTags, err)
		}
		s.ModifyTags = b
	}
	if v := getenv(EnvProxy); v != "" {
		s.ProxyType = v
	}
	return nil
}
