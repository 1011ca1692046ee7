// Package config loads service configuration from an optional file and WEATHERTREND_
// prefixed environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/darkmode/weathertrend"
	"github.com/darkmode/weathertrend/openweathermap"
	"github.com/darkmode/weathertrend/server"
	"github.com/darkmode/weathertrend/weather"
	"github.com/spf13/viper"
)

const EnvPrefix = "WEATHERTREND"

var (
	ErrNoListenAddr    = errors.New("no listen address")
	ErrInvalidLogLevel = errors.New("invalid log level")
)

// OpenWeatherMap configures the forecast client
type OpenWeatherMap struct {
	APIKey    string        `mapstructure:"api_key"`
	BaseURL   string        `mapstructure:"base_url"`
	Timeout   time.Duration `mapstructure:"timeout"`
	RateLimit float64       `mapstructure:"rate_limit"`
	Burst     int           `mapstructure:"burst"`
}

// Analysis configures windowing and clock rendering
type Analysis struct {
	WindowSize    int  `mapstructure:"window_size"`
	CityLocalTime bool `mapstructure:"city_local_time"`
}

// Config is the full service configuration
type Config struct {
	ListenAddr     string         `mapstructure:"listen_addr"`
	LogLevel       string         `mapstructure:"log_level"`
	CORSOrigins    []string       `mapstructure:"cors_origins"`
	OpenWeatherMap OpenWeatherMap `mapstructure:"openweathermap"`
	Analysis       Analysis       `mapstructure:"analysis"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("listen_addr", ":8080")
	v.SetDefault("log_level", "info")
	v.SetDefault("cors_origins", []string{})
	v.SetDefault("openweathermap.api_key", "")
	v.SetDefault("openweathermap.base_url", openweathermap.DefaultBaseURL)
	v.SetDefault("openweathermap.timeout", openweathermap.DefaultTimeout)
	v.SetDefault("openweathermap.rate_limit", 0.0)
	v.SetDefault("openweathermap.burst", 1)
	v.SetDefault("analysis.window_size", weather.DefaultWindowSize)
	v.SetDefault("analysis.city_local_time", false)
}

// Load reads the configuration file at path, if one is given, and overlays environment
// variables such as WEATHERTREND_OPENWEATHERMAP_API_KEY.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("unable to read config %s, %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config, %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration values the components do not check themselves
func (c *Config) Validate() error {
	if c.ListenAddr == "" {
		return ErrNoListenAddr
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	if _, err := c.ClientOptions().Validate(); err != nil {
		return fmt.Errorf("invalid openweathermap config, %w", err)
	}
	if _, err := c.AnalyzerOptions().Validate(); err != nil {
		return fmt.Errorf("invalid analysis config, %w", err)
	}
	return nil
}

// Level parses the configured log level
func (c *Config) Level() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return lvl, fmt.Errorf("%q, %w", c.LogLevel, ErrInvalidLogLevel)
	}
	return lvl, nil
}

// ClientOptions returns the forecast client options
func (c *Config) ClientOptions() *openweathermap.Options {
	return &openweathermap.Options{
		BaseURL:   c.OpenWeatherMap.BaseURL,
		APIKey:    c.OpenWeatherMap.APIKey,
		Timeout:   c.OpenWeatherMap.Timeout,
		RateLimit: c.OpenWeatherMap.RateLimit,
		Burst:     c.OpenWeatherMap.Burst,
	}
}

// AnalyzerOptions returns the trend analyzer options
func (c *Config) AnalyzerOptions() *weathertrend.Options {
	return &weathertrend.Options{
		WindowSize:    c.Analysis.WindowSize,
		CityLocalTime: c.Analysis.CityLocalTime,
	}
}

// ServerOptions returns the HTTP facade options
func (c *Config) ServerOptions() *server.Options {
	return &server.Options{
		AllowedOrigins: c.CORSOrigins,
	}
}
