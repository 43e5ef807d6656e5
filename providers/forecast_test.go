package providers

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"weather-lookup/models"
)

const parisForecast = `{
	"current": {"temperature_2m":15.2,"relative_humidity_2m":60,"weather_code":2,"wind_speed_10m":12.1},
	"daily": {
		"time": ["2026-10-15","2026-10-16","2026-10-17","2026-10-18","2026-10-19","2026-10-20","2026-10-21","2026-10-22"],
		"weather_code": [2,3,61,80,95,0,1,45],
		"temperature_2m_max": [16,17,14,13,12,18,19,20],
		"temperature_2m_min": [9,10,8,7,6,11,12,13],
		"precipitation_sum": [0,0.2,5.1,3,12.4,0,0,0]
	}
}`

var paris = models.ResolvedLocation{DisplayName: "Paris, France", Latitude: 48.85, Longitude: 2.35}

func TestForecastFetch(t *testing.T) {
	srv, last := newFakeServer(t, http.StatusOK, parisForecast)

	cur, daily, err := NewForecastClient(srv.URL, time.Second, 7).Fetch(context.Background(), paris)
	require.NoError(t, err)

	require.Equal(t, models.CurrentConditions{
		TemperatureC:    15.2,
		HumidityPercent: 60,
		WindSpeedKmh:    12.1,
		WeatherCode:     2,
	}, cur)

	require.Len(t, daily, 7)
	require.Equal(t, time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC), daily[0].Date)
	require.Equal(t, 61, daily[2].WeatherCode)
	require.Equal(t, 5.1, daily[2].PrecipitationMm)
	require.Equal(t, time.Date(2026, 10, 21, 0, 0, 0, 0, time.UTC), daily[6].Date)

	q := last.get()
	require.Equal(t, "48.85", q.Get("latitude"))
	require.Equal(t, "2.35", q.Get("longitude"))
	require.Equal(t, "temperature_2m,relative_humidity_2m,weather_code,wind_speed_10m", q.Get("current"))
	require.Equal(t, "weather_code,temperature_2m_max,temperature_2m_min,precipitation_sum", q.Get("daily"))
	require.Equal(t, "auto", q.Get("timezone"))
}

func TestForecastFetchShortDaily(t *testing.T) {
	srv, _ := newFakeServer(t, http.StatusOK, `{
		"current": {"temperature_2m":1,"relative_humidity_2m":2,"weather_code":3,"wind_speed_10m":4},
		"daily": {
			"time": ["2026-10-15","2026-10-16","2026-10-17","2026-10-18","2026-10-19"],
			"weather_code": [0,1,2,3,45],
			"temperature_2m_max": [1,2,3,4,5],
			"temperature_2m_min": [0,1,2,3,4],
			"precipitation_sum": [0,0,0,0,0]
		}
	}`)

	_, daily, err := NewForecastClient(srv.URL, time.Second, 7).Fetch(context.Background(), paris)
	require.NoError(t, err)
	require.Len(t, daily, 5)
	require.Equal(t, 45, daily[4].WeatherCode)
}

func TestForecastFetchUnevenArrays(t *testing.T) {
	srv, _ := newFakeServer(t, http.StatusOK, `{
		"current": {"temperature_2m":1,"relative_humidity_2m":2,"weather_code":3,"wind_speed_10m":4},
		"daily": {
			"time": ["2026-10-15","2026-10-16","2026-10-17"],
			"weather_code": [0,1,2],
			"temperature_2m_max": [1,2],
			"temperature_2m_min": [0,1,2],
			"precipitation_sum": [0,0,0]
		}
	}`)

	_, daily, err := NewForecastClient(srv.URL, time.Second, 7).Fetch(context.Background(), paris)
	require.NoError(t, err)
	require.Len(t, daily, 2)
}

func TestForecastFetchDayLimit(t *testing.T) {
	srv, _ := newFakeServer(t, http.StatusOK, parisForecast)

	_, daily, err := NewForecastClient(srv.URL, time.Second, 3).Fetch(context.Background(), paris)
	require.NoError(t, err)
	require.Len(t, daily, 3)
}

func TestForecastFetchMissingFields(t *testing.T) {
	cases := map[string]struct {
		body  string
		field string
	}{
		"no current": {
			body:  `{"daily":{"time":[],"weather_code":[],"temperature_2m_max":[],"temperature_2m_min":[],"precipitation_sum":[]}}`,
			field: "current",
		},
		"no humidity": {
			body:  `{"current":{"temperature_2m":1,"weather_code":3,"wind_speed_10m":4},"daily":{"time":[],"weather_code":[],"temperature_2m_max":[],"temperature_2m_min":[],"precipitation_sum":[]}}`,
			field: "current.relative_humidity_2m",
		},
		"no daily": {
			body:  `{"current":{"temperature_2m":1,"relative_humidity_2m":2,"weather_code":3,"wind_speed_10m":4}}`,
			field: "daily",
		},
		"no precipitation": {
			body:  `{"current":{"temperature_2m":1,"relative_humidity_2m":2,"weather_code":3,"wind_speed_10m":4},"daily":{"time":[],"weather_code":[],"temperature_2m_max":[],"temperature_2m_min":[]}}`,
			field: "daily.precipitation_sum",
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			srv, _ := newFakeServer(t, http.StatusOK, tc.body)

			_, daily, err := NewForecastClient(srv.URL, time.Second, 7).Fetch(context.Background(), paris)
			require.Error(t, err)
			require.Nil(t, daily)

			var mf *MissingFieldError
			require.ErrorAs(t, err, &mf)
			require.Equal(t, tc.field, mf.Field)
		})
	}
}

func TestForecastFetchBadDate(t *testing.T) {
	srv, _ := newFakeServer(t, http.StatusOK, `{
		"current": {"temperature_2m":1,"relative_humidity_2m":2,"weather_code":3,"wind_speed_10m":4},
		"daily": {"time":["15/10/2026"],"weather_code":[0],"temperature_2m_max":[1],"temperature_2m_min":[0],"precipitation_sum":[0]}
	}`)

	_, _, err := NewForecastClient(srv.URL, time.Second, 7).Fetch(context.Background(), paris)
	require.ErrorContains(t, err, "15/10/2026")
}

func TestForecastFetchStatusError(t *testing.T) {
	srv, _ := newFakeServer(t, http.StatusBadRequest, `{"error":true,"reason":"Latitude must be in range of -90 to 90°."}`)

	_, _, err := NewForecastClient(srv.URL, time.Second, 7).Fetch(context.Background(), paris)
	require.ErrorContains(t, err, "Latitude must be in range")
}
