package openweathermap

import (
	"fmt"
	"time"

	"github.com/darkmode/weathertrend/weather"
	"github.com/goccy/go-json"
)

func unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

// forecastResponse is the subset of the 5 day / 3 hour forecast payload used for analysis.
// Pointer fields distinguish a missing value from a zero value.
type forecastResponse struct {
	City struct {
		Name     string `json:"name"`
		Timezone int    `json:"timezone"` // shift in seconds from UTC
	} `json:"city"`
	List []forecastEntry `json:"list"`
}

type forecastEntry struct {
	Dt   *int64 `json:"dt"`
	Main *struct {
		Temp *float64 `json:"temp"`
	} `json:"main"`
	Wind *struct {
		Speed *float64 `json:"speed"`
	} `json:"wind"`
}

func (e forecastEntry) point() (weather.ForecastPoint, error) {
	if e.Dt == nil {
		return weather.ForecastPoint{}, fmt.Errorf("missing dt, %w", ErrMalformedEntry)
	}
	if e.Main == nil || e.Main.Temp == nil {
		return weather.ForecastPoint{}, fmt.Errorf("missing main.temp, %w", ErrMalformedEntry)
	}
	if e.Wind == nil || e.Wind.Speed == nil {
		return weather.ForecastPoint{}, fmt.Errorf("missing wind.speed, %w", ErrMalformedEntry)
	}
	return weather.ForecastPoint{
		Time:         time.Unix(*e.Dt, 0),
		TemperatureF: *e.Main.Temp,
		WindSpeedMPH: *e.Wind.Speed,
	}, nil
}

// parseForecast decodes a forecast payload into a validated weather.Forecast
func parseForecast(body []byte) (*weather.Forecast, error) {
	var resp forecastResponse
	if err := unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("unable to decode forecast, %w, %w", ErrInvalidPayload, err)
	}
	if len(resp.List) == 0 {
		return nil, weather.ErrNoPoints
	}

	points := make([]weather.ForecastPoint, 0, len(resp.List))
	for i, entry := range resp.List {
		p, err := entry.point()
		if err != nil {
			return nil, fmt.Errorf("entry %d, %w", i, err)
		}
		points = append(points, p)
	}

	tzOffset := time.Duration(resp.City.Timezone) * time.Second
	f, err := weather.NewForecast(resp.City.Name, tzOffset, points)
	if err != nil {
		return nil, fmt.Errorf("unable to build forecast, %w", err)
	}
	return f, nil
}
