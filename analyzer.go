// Package weathertrend analyzes the near-term temperature trend of a city forecast. It fetches
// the forecast from a ForecastSource, fits a least squares line over the first forecast steps,
// and assembles a flat Report for display.
package weathertrend

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/darkmode/weathertrend/weather"
)

var (
	ErrMissingCity = errors.New("missing city name")
	ErrNoSource    = errors.New("no forecast source")
)

// ForecastSource fetches the full forecast list for a city
type ForecastSource interface {
	Forecast(ctx context.Context, city string) (*weather.Forecast, error)
}

// Options configures how forecasts are windowed and how times are rendered
type Options struct {
	// WindowSize is the number of leading forecast steps to fit
	WindowSize int
	// Location renders clock labels when CityLocalTime is false
	Location *time.Location
	// CityLocalTime renders clock labels in the forecast city's UTC offset
	CityLocalTime bool
}

// NewDefaultOptions fits the next 24 hours of 3-hour steps and renders times in the local zone
func NewDefaultOptions() *Options {
	return &Options{
		WindowSize: weather.DefaultWindowSize,
		Location:   time.Local,
	}
}

// Validate fills defaults for unset fields
func (o *Options) Validate() (*Options, error) {
	if o == nil {
		o = NewDefaultOptions()
	}
	if o.WindowSize == 0 {
		o.WindowSize = weather.DefaultWindowSize
	}
	if o.WindowSize < 0 {
		return nil, fmt.Errorf("window size of %d, %w", o.WindowSize, weather.ErrInvalidWindow)
	}
	if o.Location == nil {
		o.Location = time.Local
	}
	return o, nil
}

// Analyzer turns a city name into a trend Report. It holds no per-request state and is safe
// for concurrent use when its ForecastSource is.
type Analyzer struct {
	src ForecastSource
	opt *Options
}

// New creates an Analyzer reading forecasts from src. If no options are provided a default is used.
func New(src ForecastSource, opt *Options) (*Analyzer, error) {
	if src == nil {
		return nil, ErrNoSource
	}
	opt, err := opt.Validate()
	if err != nil {
		return nil, err
	}
	return &Analyzer{
		src: src,
		opt: opt,
	}, nil
}

// Analyze fetches the forecast for city and builds its trend report. A blank city returns
// ErrMissingCity without contacting the forecast source.
func (a *Analyzer) Analyze(ctx context.Context, city string) (*Report, error) {
	if strings.TrimSpace(city) == "" {
		return nil, ErrMissingCity
	}

	f, err := a.src.Forecast(ctx, city)
	if err != nil {
		return nil, fmt.Errorf("unable to fetch forecast for %s, %w", city, err)
	}

	loc := a.opt.Location
	if a.opt.CityLocalTime {
		loc = f.Location()
	}

	r, err := NewReport(f, a.opt.WindowSize, loc)
	if err != nil {
		return nil, fmt.Errorf("unable to analyze forecast for %s, %w", city, err)
	}
	return r, nil
}
