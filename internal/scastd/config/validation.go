package config

import (
	"fmt"
	"net/url"
	"time"
)

func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Remote.BaseURL != "" {
		u, err := url.Parse(c.Remote.BaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("invalid remote base URL: %q", c.Remote.BaseURL)
		}
	}
	if c.Remote.PollInterval < time.Second {
		return fmt.Errorf("poll interval must be at least 1 second")
	}
	if c.Cache.Dir == "" {
		return fmt.Errorf("cache directory is required")
	}
	if c.Storage.Path == "" {
		return fmt.Errorf("storage path is required")
	}
	if c.Player.FadeDuration < 0 {
		return fmt.Errorf("fade duration cannot be negative")
	}
	if c.Player.PairRateLimit < 1 {
		return fmt.Errorf("pair rate limit must be at least 1")
	}
	return nil
}
