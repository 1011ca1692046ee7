package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/darkmode/weathertrend/openweathermap"
	"github.com/darkmode/weathertrend/weather"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("WEATHERTREND_OPENWEATHERMAP_API_KEY", "env-key")

	cfg, err := Load("")
	require.Nil(t, err)

	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, "env-key", cfg.OpenWeatherMap.APIKey)
	assert.Equal(t, openweathermap.DefaultBaseURL, cfg.OpenWeatherMap.BaseURL)
	assert.Equal(t, openweathermap.DefaultTimeout, cfg.OpenWeatherMap.Timeout)
	assert.Equal(t, 8, cfg.Analysis.WindowSize)
	assert.False(t, cfg.Analysis.CityLocalTime)

	lvl, err := cfg.Level()
	require.Nil(t, err)
	assert.Equal(t, slog.LevelInfo, lvl)
}

func TestLoadMissingAPIKey(t *testing.T) {
	t.Setenv("WEATHERTREND_OPENWEATHERMAP_API_KEY", "")

	_, err := Load("")
	assert.ErrorIs(t, err, openweathermap.ErrNoAPIKey)
}

func TestLoadFile(t *testing.T) {
	t.Setenv("WEATHERTREND_OPENWEATHERMAP_API_KEY", "")
	t.Setenv("WEATHERTREND_LISTEN_ADDR", ":9090")

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
log_level: debug
cors_origins:
  - http://localhost:3000
openweathermap:
  api_key: file-key
  timeout: 3s
  rate_limit: 1
  burst: 5
analysis:
  city_local_time: true
`
	require.Nil(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.Nil(t, err)

	assert.Equal(t, ":9090", cfg.ListenAddr)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSOrigins)
	assert.Equal(t, "file-key", cfg.OpenWeatherMap.APIKey)
	assert.Equal(t, 3*time.Second, cfg.OpenWeatherMap.Timeout)
	assert.Equal(t, 1.0, cfg.OpenWeatherMap.RateLimit)
	assert.Equal(t, 5, cfg.OpenWeatherMap.Burst)
	assert.True(t, cfg.Analysis.CityLocalTime)

	lvl, err := cfg.Level()
	require.Nil(t, err)
	assert.Equal(t, slog.LevelDebug, lvl)

	opt := cfg.ClientOptions()
	assert.Equal(t, "file-key", opt.APIKey)
	assert.True(t, cfg.AnalyzerOptions().CityLocalTime)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.ServerOptions().AllowedOrigins)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.NotNil(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			ListenAddr: ":8080",
			LogLevel:   "info",
			OpenWeatherMap: OpenWeatherMap{
				APIKey:  "k",
				Timeout: time.Second,
			},
		}
	}

	testData := map[string]struct {
		mutate func(c *Config)
		err    error
	}{
		"valid":               {func(c *Config) {}, nil},
		"no listen addr":      {func(c *Config) { c.ListenAddr = "" }, ErrNoListenAddr},
		"bad log level":       {func(c *Config) { c.LogLevel = "loud" }, ErrInvalidLogLevel},
		"negative timeout":    {func(c *Config) { c.OpenWeatherMap.Timeout = -time.Second }, openweathermap.ErrInvalidTimeout},
		"negative window":     {func(c *Config) { c.Analysis.WindowSize = -2 }, weather.ErrInvalidWindow},
		"negative rate limit": {func(c *Config) { c.OpenWeatherMap.RateLimit = -1 }, openweathermap.ErrInvalidLimit},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			c := valid()
			td.mutate(c)
			err := c.Validate()
			if td.err != nil {
				assert.ErrorIs(t, err, td.err)
				return
			}
			assert.Nil(t, err)
		})
	}
}
