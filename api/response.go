package api

import (
	"weather-lookup/models"
	"weather-lookup/weathercode"
)

type WeatherResponse struct {
	SearchID  string          `json:"search_id"`
	Location  string          `json:"location"`
	Latitude  float64         `json:"latitude"`
	Longitude float64         `json:"longitude"`
	Current   CurrentResponse `json:"current"`
	Daily     []DayResponse   `json:"daily"`
}

type CurrentResponse struct {
	TemperatureC    float64 `json:"temperature_c"`
	HumidityPercent float64 `json:"humidity_percent"`
	WindSpeedKmh    float64 `json:"wind_speed_kmh"`
	WeatherCode     int     `json:"weather_code"`
	Description     string  `json:"description"`
}

type DayResponse struct {
	Date            string  `json:"date"`
	WeatherCode     int     `json:"weather_code"`
	Description     string  `json:"description"`
	TempMaxC        float64 `json:"temp_max_c"`
	TempMinC        float64 `json:"temp_min_c"`
	PrecipitationMm float64 `json:"precipitation_mm"`
}

type CodeResponse struct {
	Code        int    `json:"code"`
	Description string `json:"description"`
}

// newWeatherResponse только для успешного результата
func newWeatherResponse(r models.LookupResult) WeatherResponse {
	days := make([]DayResponse, 0, len(r.Daily))
	for _, d := range r.Daily {
		days = append(days, DayResponse{
			Date:            d.Date.Format("2006-01-02"),
			WeatherCode:     d.WeatherCode,
			Description:     weathercode.Describe(d.WeatherCode),
			TempMaxC:        d.TempMaxC,
			TempMinC:        d.TempMinC,
			PrecipitationMm: d.PrecipitationMm,
		})
	}

	return WeatherResponse{
		SearchID:  r.SearchID,
		Location:  r.Location.DisplayName,
		Latitude:  r.Location.Latitude,
		Longitude: r.Location.Longitude,
		Current: CurrentResponse{
			TemperatureC:    r.Current.TemperatureC,
			HumidityPercent: r.Current.HumidityPercent,
			WindSpeedKmh:    r.Current.WindSpeedKmh,
			WeatherCode:     r.Current.WeatherCode,
			Description:     weathercode.Describe(r.Current.WeatherCode),
		},
		Daily: days,
	}
}
