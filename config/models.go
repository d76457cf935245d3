package config

import "time"

// Config holds the relay configuration.
type Config struct {
	ListenAddress        string        `mapstructure:"listen_address"`
	UpstreamURL          string        `mapstructure:"upstream_url"`
	Model                string        `mapstructure:"model"`
	UpstreamTimeout      time.Duration `mapstructure:"upstream_timeout"`
	AllowedOrigins       []string      `mapstructure:"allowed_origins"`
	StrictUpstreamErrors bool          `mapstructure:"strict_upstream_errors"`
	LogLevel             string        `mapstructure:"log_level"`
	MetricsEnabled       bool          `mapstructure:"metrics_enabled"`
}
