package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/crowdtris.yaml
var defaultYAML []byte

// DefaultConfig returns the hardcoded default configuration.
func DefaultConfig() Config {
	return Config{
		Board: BoardConfig{
			Width:    8,
			Height:   13,
			Interval: 500 * time.Millisecond,
		},
		State: StateConfig{
			Backend: BackendFile,
			Path:    "~/.crowdtris/save.json",
			Redis: RedisConfig{
				Addr: "localhost:6379",
				Key:  "crowdtris:state",
			},
		},
		Feed: FeedConfig{
			DB:   "~/.crowdtris/feed.db",
			Keep: 500,
		},
		Theme: ThemeAuto,
		SSH: SSHConfig{
			Addr:        ":23234",
			IdleTimeout: 30 * time.Minute,
		},
		HTTP: HTTPConfig{
			Addr: ":8080",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultYAML
}
