package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// Config represents the overall application configuration.
type Config struct {
	Plex    PlexConfig    `yaml:"plex"`
	Server  ServerConfig  `yaml:"server"`
	Players PlayersConfig `yaml:"players"`
	Log     LogConfig     `yaml:"log"`
}

// PlexConfig holds the Plex Media Server connection configuration.
type PlexConfig struct {
	URL   string `yaml:"url"`
	Token string `yaml:"token"`
	// ClientIdentifier identifies plexplayer to the server and its players. A random identifier is used if blank.
	ClientIdentifier string        `yaml:"client_identifier"`
	DeviceName       string        `yaml:"device_name"`
	Timeout          time.Duration `yaml:"timeout"`
	// LibraryCache is how long the server's library sections are cached.
	LibraryCache time.Duration `yaml:"library_cache"`
}

// ServerConfig holds the HTTP API configuration.
type ServerConfig struct {
	Address         string        `yaml:"address"`
	RateLimitPerSec float64       `yaml:"rate_limit_per_sec"`
	RateLimitBurst  int           `yaml:"rate_limit_burst"`
	CacheTTL        time.Duration `yaml:"cache_ttl"`
	AllowedOrigins  []string      `yaml:"allowed_origins"`
}

// PlayersConfig holds the configuration of the players.
type PlayersConfig struct {
	PollInterval    time.Duration `yaml:"poll_interval"`
	CommandTimeout  time.Duration `yaml:"command_timeout"`
	UseEpisodeArt   bool          `yaml:"use_episode_art"`
	ShowAllControls bool          `yaml:"show_all_controls"`
}

// LogConfig holds the logging configuration.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Environment variables that override the configuration file.
const (
	URLEnv   = "PLEX_URL"
	TokenEnv = "PLEX_TOKEN"
)

// Load reads the configuration from the given path. If the file doesn't exist, the defaults are used.
func Load(fs afero.Fs, path string) (*Config, error) {
	var cfg Config
	data, err := afero.ReadFile(fs, path)
	switch {
	case err == nil:
		if err = yaml.NewDecoder(bytes.NewReader(data)).Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, err
	}

	if url := os.Getenv(URLEnv); url != "" {
		cfg.Plex.URL = url
	}
	if token := os.Getenv(TokenEnv); token != "" {
		cfg.Plex.Token = token
	}
	if cfg.Plex.URL == "" {
		return nil, errors.New("plex.url is required")
	}

	setDefault(&cfg.Plex.Timeout, 10*time.Second)
	setDefault(&cfg.Plex.LibraryCache, 5*time.Minute)

	if cfg.Server.Address == "" {
		cfg.Server.Address = ":8080"
	}
	if cfg.Server.RateLimitPerSec <= 0 {
		cfg.Server.RateLimitPerSec = 10
	}
	if cfg.Server.RateLimitBurst <= 0 {
		cfg.Server.RateLimitBurst = 5
	}
	cfg.Server.CacheTTL = max(cfg.Server.CacheTTL, 0)

	setDefault(&cfg.Players.PollInterval, 10*time.Second)
	setDefault(&cfg.Players.CommandTimeout, 10*time.Second)

	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
	if cfg.Log.Format != "text" && cfg.Log.Format != "json" {
		return nil, fmt.Errorf("log.format: invalid format %q", cfg.Log.Format)
	}
	if _, err = cfg.Log.SlogLevel(); err != nil {
		return nil, fmt.Errorf("log.level: %w", err)
	}

	return &cfg, nil
}

// setDefault replaces a missing or negative duration.
func setDefault(d *time.Duration, value time.Duration) {
	if *d <= 0 {
		*d = value
	}
}

// SlogLevel returns the configured log level. Defaults to info.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if l.Level == "" {
		return slog.LevelInfo, nil
	}
	err := level.UnmarshalText([]byte(l.Level))
	return level, err
}
