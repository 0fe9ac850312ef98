package client

import (
	"fmt"
	"time"

	"gopkg.in/ini.v1"
)

const (
	DefaultBaseURL = "http://localhost:3000"
	DefaultTimeout = 5 * time.Second
)

// Settings are the client defaults that flags may override.
type Settings struct {
	BaseURL string
	Timeout time.Duration
}

// LoadSettings reads the [server] section of an ini file:
//
//	[server]
//	base_url = http://localhost:3000
//	timeout  = 5s
//
// An empty path yields the built-in defaults.
func LoadSettings(path string) (*Settings, error) {
	settings := &Settings{
		BaseURL: DefaultBaseURL,
		Timeout: DefaultTimeout,
	}
	if path == "" {
		return settings, nil
	}

	cfg, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	section := cfg.Section("server")
	settings.BaseURL = section.Key("base_url").MustString(DefaultBaseURL)
	if section.HasKey("timeout") {
		timeout, err := section.Key("timeout").Duration()
		if err != nil {
			return nil, fmt.Errorf("invalid timeout in %s: %w", path, err)
		}
		settings.Timeout = timeout
	}

	return settings, nil
}
