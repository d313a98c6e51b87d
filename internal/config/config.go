// Package config provides YAML-based configuration loading for crowdtris.
package config

import "time"

// Config is the full application configuration.
type Config struct {
	Board BoardConfig `yaml:"board"`
	State StateConfig `yaml:"state"`
	Feed  FeedConfig  `yaml:"feed"`
	Theme string      `yaml:"theme"` // "auto", "dark" or "light"
	SSH   SSHConfig   `yaml:"ssh"`
	HTTP  HTTPConfig  `yaml:"http"`
	Log   LogConfig   `yaml:"log"`
}

// BoardConfig defines the grid used when no saved game exists.
type BoardConfig struct {
	Width    int           `yaml:"width"`
	Height   int           `yaml:"height"`
	Interval time.Duration `yaml:"interval"` // wait between ticks for long-running drivers
	Seed     int64         `yaml:"seed"`     // 0 = random based on time
}

// StateConfig selects where the grid is persisted.
type StateConfig struct {
	Backend string      `yaml:"backend"` // "file" or "redis"
	Path    string      `yaml:"path"`
	Redis   RedisConfig `yaml:"redis"`
}

// RedisConfig holds connection settings for the redis state backend.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Key      string `yaml:"key"`
}

// FeedConfig locates the SQLite feed of posts and replies.
type FeedConfig struct {
	DB   string `yaml:"db"`
	Keep int    `yaml:"keep"` // posts kept when pruning; 0 disables pruning
}

// SSHConfig configures the voting SSH server.
type SSHConfig struct {
	Addr        string        `yaml:"addr"`
	HostKey     string        `yaml:"host_key"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

// HTTPConfig configures the HTTP board/metrics server.
type HTTPConfig struct {
	Addr string `yaml:"addr"`
}

// LogConfig configures the logger.
type LogConfig struct {
	Level string `yaml:"level"`
}

// State backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
)

// Themes.
const (
	ThemeAuto  = "auto"
	ThemeDark  = "dark"
	ThemeLight = "light"
)
