package weathertrend

import (
	"fmt"
	"math"
	"time"

	"github.com/darkmode/weathertrend/trend"
	"github.com/darkmode/weathertrend/weather"
)

// Report is the flat result of a trend analysis. Current conditions come from the first point
// of the full forecast while the series fields cover the fitted window.
type Report struct {
	City         string    `json:"city"`
	CurrentTempF int       `json:"current_temp_f"`
	CurrentTempC int       `json:"current_temp_c"`
	WindSpeed    string    `json:"wind_speed"`
	TimeOfDay    string    `json:"time_of_day"`
	Labels       []string  `json:"labels"`
	ActualTemps  []float64 `json:"actual_temps"`
	TrendLine    []float64 `json:"trend_line"`
	TrendText    string    `json:"trend_text"`
	Slope        float64   `json:"slope"`
	Intercept    float64   `json:"intercept"`

	// nil when the metric is undefined, e.g. r-squared over a constant series
	MSE *float64 `json:"mse"`
	R2  *float64 `json:"r2"`
}

// ErrorReport is the uniform failure shape returned in place of a Report
type ErrorReport struct {
	Error string `json:"error"`
}

// NewErrorReport wraps an error message
func NewErrorReport(err error) ErrorReport {
	return ErrorReport{Error: err.Error()}
}

// NewReport fits the leading windowSize points of f and assembles the report, rendering clock
// labels in loc.
func NewReport(f *weather.Forecast, windowSize int, loc *time.Location) (*Report, error) {
	current, err := f.Current()
	if err != nil {
		return nil, err
	}
	window, err := f.Window(windowSize)
	if err != nil {
		return nil, err
	}

	actual := window.Temperatures()
	res, err := trend.Fit(actual)
	if err != nil {
		return nil, err
	}

	return &Report{
		City:         f.City,
		CurrentTempF: int(math.Round(current.TemperatureF)),
		CurrentTempC: int(math.Round(current.TemperatureC())),
		WindSpeed:    fmt.Sprintf("%.2f mph", current.WindSpeedMPH),
		TimeOfDay:    current.Time.In(loc).Format(weather.ClockSecondsLayout),
		Labels:       window.Labels(loc),
		ActualTemps:  actual,
		TrendLine:    res.Predicted,
		TrendText:    res.Label.String(),
		Slope:        res.Slope,
		Intercept:    res.Intercept,
		MSE:          metric(res.Scores.MSE),
		R2:           metric(res.Scores.R2),
	}, nil
}

// metric rounds v to 4 decimal places, returning nil for values JSON cannot represent
func metric(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	r := math.Round(v*1e4) / 1e4
	return &r
}
