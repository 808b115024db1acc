// Package config provides configuration management for the slidecast player daemon
package config

import (
	"time"
)

// Config holds all configuration for the player daemon
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Remote  RemoteConfig  `yaml:"remote"`
	Cache   CacheConfig   `yaml:"cache"`
	Storage StorageConfig `yaml:"storage"`
	Player  PlayerConfig  `yaml:"player"`
}

// ServerConfig holds the local control API settings
type ServerConfig struct {
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"readTimeout"`
	WriteTimeout time.Duration `yaml:"writeTimeout"`
	IdleTimeout  time.Duration `yaml:"idleTimeout"`
}

// RemoteConfig holds the content service settings
type RemoteConfig struct {
	// BaseURL is the content service root, e.g. https://ads.example.com/api
	BaseURL string `yaml:"baseURL"`
	// PollInterval is how often the playlist is refetched
	PollInterval time.Duration `yaml:"pollInterval"`
	// RequestTimeout bounds a single feed request
	RequestTimeout time.Duration `yaml:"requestTimeout"`
}

// CacheConfig holds media asset cache settings
type CacheConfig struct {
	// Dir is where downloaded media files are kept
	Dir string `yaml:"dir"`
}

// StorageConfig holds local state database settings
type StorageConfig struct {
	// Path is the sqlite database file holding the device identity and
	// the playlist snapshot
	Path string `yaml:"path"`
}

// PlayerConfig holds playback behavior settings
type PlayerConfig struct {
	// FadeDuration is the opacity transition gating every slide swap;
	// zero disables fading
	FadeDuration time.Duration `yaml:"fadeDuration"`
	// PairRateLimit caps pairing attempts per PairRatePeriod per client
	PairRateLimit  int           `yaml:"pairRateLimit"`
	PairRatePeriod time.Duration `yaml:"pairRatePeriod"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:         "127.0.0.1",
			Port:         8089,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  120 * time.Second,
		},
		Remote: RemoteConfig{
			PollInterval:   60 * time.Second,
			RequestTimeout: 30 * time.Second,
		},
		Cache: CacheConfig{
			Dir: "/var/lib/slidecast/cache",
		},
		Storage: StorageConfig{
			Path: "/var/lib/slidecast/state.db",
		},
		Player: PlayerConfig{
			FadeDuration:   300 * time.Millisecond,
			PairRateLimit:  10,
			PairRatePeriod: time.Minute,
		},
	}
}

// overlayEnv overlays environment variables on top of file-based config
func (c *Config) overlayEnv() {
	// Server config
	if host := getEnv("SCAST_SERVER_HOST", ""); host != "" {
		c.Server.Host = host
	}
	if port := getEnvAsInt("SCAST_SERVER_PORT", 0); port != 0 {
		c.Server.Port = port
	}
	if readTimeout := getEnvAsDuration("SCAST_SERVER_READ_TIMEOUT", 0); readTimeout != 0 {
		c.Server.ReadTimeout = readTimeout
	}
	if writeTimeout := getEnvAsDuration("SCAST_SERVER_WRITE_TIMEOUT", 0); writeTimeout != 0 {
		c.Server.WriteTimeout = writeTimeout
	}
	if idleTimeout := getEnvAsDuration("SCAST_SERVER_IDLE_TIMEOUT", 0); idleTimeout != 0 {
		c.Server.IdleTimeout = idleTimeout
	}

	// Remote config
	if url := getEnv("SCAST_REMOTE_URL", ""); url != "" {
		c.Remote.BaseURL = url
	}
	if interval := getEnvAsDuration("SCAST_REMOTE_POLL_INTERVAL", 0); interval != 0 {
		c.Remote.PollInterval = interval
	}
	if timeout := getEnvAsDuration("SCAST_REMOTE_REQUEST_TIMEOUT", 0); timeout != 0 {
		c.Remote.RequestTimeout = timeout
	}

	// Cache and storage config
	if dir := getEnv("SCAST_CACHE_DIR", ""); dir != "" {
		c.Cache.Dir = dir
	}
	if path := getEnv("SCAST_STORAGE_PATH", ""); path != "" {
		c.Storage.Path = path
	}

	// Player config
	if fade := getEnvAsDuration("SCAST_PLAYER_FADE_DURATION", -1); fade >= 0 {
		c.Player.FadeDuration = fade
	}
	if limit := getEnvAsInt("SCAST_PAIR_RATE_LIMIT", 0); limit != 0 {
		c.Player.PairRateLimit = limit
	}
	if period := getEnvAsDuration("SCAST_PAIR_RATE_PERIOD", 0); period != 0 {
		c.Player.PairRatePeriod = period
	}
}
