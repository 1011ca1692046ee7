// Package weather holds the parsed forecast model shared by the forecast client and the
// trend analysis.
package weather

import (
	"errors"
	"fmt"
	"time"
)

// DefaultWindowSize is the number of 3-hour forecast steps covering the next 24 hours
const DefaultWindowSize = 8

var (
	ErrNoPoints        = errors.New("forecast has no points")
	ErrNonMonotonic    = errors.New("forecast times are not strictly increasing")
	ErrInvalidWindow   = errors.New("window size must be positive")
	ErrUnnamedLocation = errors.New("forecast has no city name")
)

// ForecastPoint is a single forecast step in imperial units
type ForecastPoint struct {
	Time         time.Time
	TemperatureF float64
	WindSpeedMPH float64
}

// TemperatureC converts the point temperature to celsius
func (p ForecastPoint) TemperatureC() float64 {
	return FahrenheitToCelsius(p.TemperatureF)
}

// FahrenheitToCelsius converts a fahrenheit temperature to celsius
func FahrenheitToCelsius(f float64) float64 {
	return (f - 32.0) * 5.0 / 9.0
}

// Forecast is the full list of forecast points returned for a city
type Forecast struct {
	City string
	// TimezoneOffset is the city's shift from UTC
	TimezoneOffset time.Duration
	Points         []ForecastPoint
}

// NewForecast returns a Forecast after checking that it is named, non-empty, and in
// chronological order. The points are copied.
func NewForecast(city string, tzOffset time.Duration, points []ForecastPoint) (*Forecast, error) {
	if city == "" {
		return nil, ErrUnnamedLocation
	}
	if len(points) == 0 {
		return nil, ErrNoPoints
	}

	var lastT time.Time
	for i, p := range points {
		if i > 0 && !p.Time.After(lastT) {
			return nil, fmt.Errorf("non-monotonic at %d, %w", i, ErrNonMonotonic)
		}
		lastT = p.Time
	}

	pts := make([]ForecastPoint, len(points))
	copy(pts, points)
	return &Forecast{
		City:           city,
		TimezoneOffset: tzOffset,
		Points:         pts,
	}, nil
}

// Current returns the first point of the full forecast
func (f *Forecast) Current() (ForecastPoint, error) {
	if f == nil || len(f.Points) == 0 {
		return ForecastPoint{}, ErrNoPoints
	}
	return f.Points[0], nil
}

// Location returns a fixed zone matching the city's UTC offset
func (f *Forecast) Location() *time.Location {
	return time.FixedZone(f.City, int(f.TimezoneOffset/time.Second))
}

// Window returns the leading size points of the forecast. Shorter forecasts return every point.
func (f *Forecast) Window(size int) (Window, error) {
	if size <= 0 {
		return nil, ErrInvalidWindow
	}
	if f == nil || len(f.Points) == 0 {
		return nil, ErrNoPoints
	}
	if size > len(f.Points) {
		size = len(f.Points)
	}
	w := make(Window, size)
	copy(w, f.Points[:size])
	return w, nil
}

// Window is a chronological slice of forecast points. The position of each point is its
// step index.
type Window []ForecastPoint

// Temperatures returns the fahrenheit temperature of each point
func (w Window) Temperatures() []float64 {
	y := make([]float64, len(w))
	for i, p := range w {
		y[i] = p.TemperatureF
	}
	return y
}

// Labels formats each point time as a 12-hour clock without seconds in the given location
func (w Window) Labels(loc *time.Location) []string {
	labels := make([]string, len(w))
	for i, p := range w {
		labels[i] = p.Time.In(loc).Format(ClockLayout)
	}
	return labels
}

const (
	ClockLayout        = "03:04 PM"
	ClockSecondsLayout = "03:04:05 PM"
)
