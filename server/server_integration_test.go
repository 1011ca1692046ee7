package server

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/darkmode/weathertrend"
	"github.com/darkmode/weathertrend/openweathermap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func forecastPayload(city string, start int64, temps ...float64) string {
	entries := ""
	for i, temp := range temps {
		if i > 0 {
			entries += ","
		}
		entries += fmt.Sprintf(`{"dt":%d,"main":{"temp":%g},"wind":{"speed":4.5}}`, start+int64(i)*10800, temp)
	}
	return fmt.Sprintf(`{"cod":"200","list":[%s],"city":{"name":%q,"timezone":0}}`, entries, city)
}

func newStack(t *testing.T, upstream http.HandlerFunc) (http.Handler, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	up := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		upstream(w, r)
	}))
	t.Cleanup(up.Close)

	client, err := openweathermap.NewWithHTTP(&openweathermap.Options{
		BaseURL: up.URL,
		APIKey:  "integration-key",
		Timeout: time.Second,
	}, up.Client())
	require.Nil(t, err)

	analyzer, err := weathertrend.New(client, &weathertrend.Options{Location: time.UTC})
	require.Nil(t, err)

	s, err := New(analyzer, nil)
	require.Nil(t, err)
	return s.Handler(), &hits
}

func TestIntegrationAnalyze(t *testing.T) {
	h, hits := newStack(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, forecastPayload(r.URL.Query().Get("q"), 1735732800, 60, 61, 62, 63, 64, 65, 66, 67, 10, 10))
	})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/analyze?city=Austin", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int32(1), hits.Load())

	body := decodeBody(t, rec)
	assert.Equal(t, "Austin", body["city"])
	assert.Equal(t, float64(60), body["current_temp_f"])
	assert.Equal(t, float64(16), body["current_temp_c"])
	assert.Equal(t, "4.50 mph", body["wind_speed"])
	assert.Equal(t, "12:00:00 PM", body["time_of_day"])
	assert.Equal(t, "Heating Up", body["trend_text"])
	assert.Equal(t, 1.0, body["r2"])
	assert.Equal(t, 0.0, body["mse"])
	assert.Len(t, body["labels"], 8)
	assert.Len(t, body["actual_temps"], 8)
	assert.Len(t, body["trend_line"], 8)
}

func TestIntegrationUpstreamNotFound(t *testing.T) {
	h, hits := newStack(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"cod":"404","message":"city not found"}`)
	})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/analyze?city=Atlantis", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, int32(1), hits.Load())

	body := decodeBody(t, rec)
	require.Len(t, body, 1)
	msg, ok := body["error"].(string)
	require.True(t, ok)
	assert.Contains(t, msg, "404")
	assert.Contains(t, msg, "city not found")
	assert.NotContains(t, msg, "integration-key")
}

func TestIntegrationMissingCityMakesNoRequest(t *testing.T) {
	h, hits := newStack(t, func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, forecastPayload("Austin", 1735732800, 60, 61))
	})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/analyze", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, int32(0), hits.Load())
}
