package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"weather-lookup/models"
)

const (
	DefaultForecastURL = "https://api.open-meteo.com/v1/forecast"

	currentFields = "temperature_2m,relative_humidity_2m,weather_code,wind_speed_10m"
	dailyFields   = "weather_code,temperature_2m_max,temperature_2m_min,precipitation_sum"
	dateLayout    = "2006-01-02"
)

// ForecastClient получает текущую погоду и дневной прогноз Open-Meteo
type ForecastClient struct {
	client  *http.Client
	baseURL string
	days    int
}

// NewForecastClient days ограничивает длину прогноза, значения вне 1..7 заменяются на 7
func NewForecastClient(baseURL string, timeout time.Duration, days int) *ForecastClient {
	if baseURL == "" {
		baseURL = DefaultForecastURL
	}
	if days < 1 || days > models.MaxForecastDays {
		days = models.MaxForecastDays
	}
	return &ForecastClient{
		client:  newHTTPClient(timeout),
		baseURL: baseURL,
		days:    days,
	}
}

type forecastResponse struct {
	Current *struct {
		Temperature *float64 `json:"temperature_2m"`
		Humidity    *float64 `json:"relative_humidity_2m"`
		WeatherCode *int     `json:"weather_code"`
		WindSpeed   *float64 `json:"wind_speed_10m"`
	} `json:"current"`
	Daily *struct {
		Time          []string  `json:"time"`
		WeatherCode   []int     `json:"weather_code"`
		TempMax       []float64 `json:"temperature_2m_max"`
		TempMin       []float64 `json:"temperature_2m_min"`
		Precipitation []float64 `json:"precipitation_sum"`
	} `json:"daily"`
}

// Fetch делает один запрос и разбирает блоки current и daily
func (c *ForecastClient) Fetch(ctx context.Context, loc models.ResolvedLocation) (models.CurrentConditions, models.DailyForecast, error) {
	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(loc.Latitude, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(loc.Longitude, 'f', -1, 64))
	params.Set("current", currentFields)
	params.Set("daily", dailyFields)
	params.Set("timezone", "auto")

	var result forecastResponse
	if err := getJSON(ctx, c.client, c.baseURL, params, &result); err != nil {
		return models.CurrentConditions{}, nil, fmt.Errorf("прогноз: %w", err)
	}

	current, err := parseCurrent(&result)
	if err != nil {
		return models.CurrentConditions{}, nil, fmt.Errorf("прогноз: %w", err)
	}

	daily, err := parseDaily(&result, c.days)
	if err != nil {
		return models.CurrentConditions{}, nil, fmt.Errorf("прогноз: %w", err)
	}

	return current, daily, nil
}

func parseCurrent(r *forecastResponse) (models.CurrentConditions, error) {
	cur := r.Current
	switch {
	case cur == nil:
		return models.CurrentConditions{}, missing("current")
	case cur.Temperature == nil:
		return models.CurrentConditions{}, missing("current.temperature_2m")
	case cur.Humidity == nil:
		return models.CurrentConditions{}, missing("current.relative_humidity_2m")
	case cur.WeatherCode == nil:
		return models.CurrentConditions{}, missing("current.weather_code")
	case cur.WindSpeed == nil:
		return models.CurrentConditions{}, missing("current.wind_speed_10m")
	}

	return models.CurrentConditions{
		TemperatureC:    *cur.Temperature,
		HumidityPercent: *cur.Humidity,
		WindSpeedKmh:    *cur.WindSpeed,
		WeatherCode:     *cur.WeatherCode,
	}, nil
}

// parseDaily берет не больше limit дней и не выходит за самый короткий массив
func parseDaily(r *forecastResponse, limit int) (models.DailyForecast, error) {
	d := r.Daily
	switch {
	case d == nil:
		return nil, missing("daily")
	case d.Time == nil:
		return nil, missing("daily.time")
	case d.WeatherCode == nil:
		return nil, missing("daily.weather_code")
	case d.TempMax == nil:
		return nil, missing("daily.temperature_2m_max")
	case d.TempMin == nil:
		return nil, missing("daily.temperature_2m_min")
	case d.Precipitation == nil:
		return nil, missing("daily.precipitation_sum")
	}

	n := min(limit, len(d.Time), len(d.WeatherCode), len(d.TempMax), len(d.TempMin), len(d.Precipitation))

	forecast := make(models.DailyForecast, 0, n)
	for i := 0; i < n; i++ {
		date, err := time.Parse(dateLayout, d.Time[i])
		if err != nil {
			return nil, fmt.Errorf("ошибка парсинга даты %q: %w", d.Time[i], err)
		}
		forecast = append(forecast, models.DailyForecastEntry{
			Date:            date,
			WeatherCode:     d.WeatherCode[i],
			TempMaxC:        d.TempMax[i],
			TempMinC:        d.TempMin[i],
			PrecipitationMm: d.Precipitation[i],
		})
	}
	return forecast, nil
}
