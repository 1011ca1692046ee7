package openweathermap

import (
	"errors"
	"time"
)

const (
	DefaultBaseURL = "https://api.openweathermap.org/data/2.5"
	DefaultTimeout = 10 * time.Second

	// Units is fixed so temperatures arrive in fahrenheit and wind speeds in mph
	Units = "imperial"
)

var (
	ErrNoAPIKey       = errors.New("no openweathermap api key")
	ErrNoBaseURL      = errors.New("no openweathermap base url")
	ErrInvalidTimeout = errors.New("request timeout must be positive")
	ErrInvalidLimit   = errors.New("rate limit and burst must not be negative")
)

// Options configures the forecast client
type Options struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration

	// RateLimit caps outbound requests per second. Zero disables limiting.
	RateLimit float64
	Burst     int
}

// NewDefaultOptions returns the client defaults. An API key must still be provided.
func NewDefaultOptions() *Options {
	return &Options{
		BaseURL: DefaultBaseURL,
		Timeout: DefaultTimeout,
		Burst:   1,
	}
}

// Validate fills defaults for unset fields and checks the remaining values
func (o *Options) Validate() (*Options, error) {
	if o == nil {
		o = NewDefaultOptions()
	}
	if o.BaseURL == "" {
		o.BaseURL = DefaultBaseURL
	}
	if o.Timeout == 0 {
		o.Timeout = DefaultTimeout
	}
	if o.Timeout < 0 {
		return nil, ErrInvalidTimeout
	}
	if o.APIKey == "" {
		return nil, ErrNoAPIKey
	}
	if o.RateLimit < 0 || o.Burst < 0 {
		return nil, ErrInvalidLimit
	}
	if o.RateLimit > 0 && o.Burst == 0 {
		o.Burst = 1
	}
	return o, nil
}
