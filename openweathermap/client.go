// Package openweathermap fetches 3-hourly forecasts from the OpenWeatherMap 5 day forecast API.
package openweathermap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/darkmode/weathertrend/weather"
	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

const forecastEndpoint = "/forecast"

// Client issues forecast requests. Each call makes at most one request and never retries.
type Client struct {
	opt     *Options
	client  *resty.Client
	limiter *rate.Limiter
}

// New creates a forecast client with its own http client
func New(opt *Options) (*Client, error) {
	return NewWithHTTP(opt, &http.Client{})
}

// NewWithHTTP creates a forecast client on top of the provided http client
func NewWithHTTP(opt *Options, hc *http.Client) (*Client, error) {
	opt, err := opt.Validate()
	if err != nil {
		return nil, err
	}

	rc := resty.NewWithClient(hc).
		SetBaseURL(strings.TrimRight(opt.BaseURL, "/")).
		SetTimeout(opt.Timeout).
		SetRetryCount(0).
		SetHeader("Accept", "application/json")

	rc.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		slog.Debug("forecast request", "method", req.Method, "url", req.URL, "city", req.QueryParam.Get("q"))
		return nil
	})
	rc.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
		slog.Debug("forecast response",
			"status", resp.StatusCode(),
			"duration", resp.Time().String(),
			"bytes", len(resp.Body()),
		)
		return nil
	})

	c := &Client{
		opt:    opt,
		client: rc,
	}
	if opt.RateLimit > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(opt.RateLimit), opt.Burst)
	}
	return c, nil
}

// Name returns the provider name
func (c *Client) Name() string {
	return "OpenWeatherMap"
}

// Forecast fetches and parses the forecast list for a city. The city name is passed through
// unchanged.
func (c *Client) Forecast(ctx context.Context, city string) (*weather.Forecast, error) {
	if strings.TrimSpace(city) == "" {
		return nil, ErrMissingCity
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait canceled, %w", err)
		}
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"q":     city,
			"appid": c.opt.APIKey,
			"units": Units,
		}).
		Get(forecastEndpoint)
	if err != nil {
		// the request url carries the api key
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return nil, fmt.Errorf("%w, %w", ErrTransport, err)
	}

	if !resp.IsSuccess() {
		return nil, newAPIError(resp.StatusCode(), resp.Body())
	}

	f, err := parseForecast(resp.Body())
	if err != nil {
		return nil, err
	}
	return f, nil
}
