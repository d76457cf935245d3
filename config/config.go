package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every key when reading overrides from the environment,
// e.g. TIMELINEBOT_LISTEN_ADDRESS.
const EnvPrefix = "TIMELINEBOT"

// LoadConfig reads the optional config file, applies environment overrides and
// validates the result. An empty configFile means defaults plus environment only.
func LoadConfig(configFile string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	v.SetDefault("listen_address", "0.0.0.0:5000")
	v.SetDefault("upstream_url", "http://localhost:11434/api/generate")
	v.SetDefault("model", "timelinebot")
	v.SetDefault("upstream_timeout", "0s")
	v.SetDefault("allowed_origins", []string{"*"})
	v.SetDefault("strict_upstream_errors", false)
	v.SetDefault("log_level", "info")
	v.SetDefault("metrics_enabled", true)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var configuration Config
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := configuration.Validate(); err != nil {
		return nil, err
	}
	return &configuration, nil
}

// Validate checks the fields the relay cannot run without.
func (c *Config) Validate() error {
	if c.ListenAddress == "" {
		return errors.New("listen_address is required")
	}
	if c.Model == "" {
		return errors.New("model is required")
	}
	if c.UpstreamTimeout < 0 {
		return errors.New("upstream_timeout must not be negative")
	}
	u, err := url.Parse(c.UpstreamURL)
	if err != nil {
		return fmt.Errorf("upstream_url is invalid: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("upstream_url must be an absolute http(s) URL, got %q", c.UpstreamURL)
	}
	return nil
}
