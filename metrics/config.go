package metrics

import "time"

type Config struct {
	Enabled           bool          `mapstructure:"enabled"`
	Path              string        `mapstructure:"path"`
	Host              string        `mapstructure:"host"`
	Port              int           `mapstructure:"port"`
	HttpTimeout       time.Duration `mapstructure:"http_timeout"`
	HttpHeaderTimeout time.Duration `mapstructure:"http_header_timeout"`
	// Hold keeps the server up this long after a run finishes so it can be scraped.
	Hold time.Duration `mapstructure:"hold"`
}

func DefaultConfig() Config {
	return Config{
		Enabled:           false,
		Path:              "/metrics",
		Host:              "",
		Port:              9464,
		HttpTimeout:       time.Minute,
		HttpHeaderTimeout: time.Minute,
	}
}
