package models

import (
	"strings"
	"time"

	"weather-lookup/apperrors"
)

// MaxForecastDays верхняя граница длины дневного прогноза
const MaxForecastDays = 7

// SearchQuery очищенный от пробелов непустой запрос пользователя
type SearchQuery string

// NewSearchQuery проверяет ввод до любой сетевой активности
func NewSearchQuery(raw string) (SearchQuery, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", apperrors.Wrap(apperrors.CodeInvalidInput, "gotta type something", nil)
	}
	return SearchQuery(trimmed), nil
}

func (q SearchQuery) String() string {
	return string(q)
}

// ResolvedLocation первый результат геокодирования
type ResolvedLocation struct {
	DisplayName string  `json:"display_name"` // "Город, Страна"
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}

// CurrentConditions текущая погода
type CurrentConditions struct {
	TemperatureC    float64 `json:"temperature_c"`
	HumidityPercent float64 `json:"humidity_percent"`
	WindSpeedKmh    float64 `json:"wind_speed_kmh"`
	WeatherCode     int     `json:"weather_code"`
}

// DailyForecastEntry сводка за один календарный день
type DailyForecastEntry struct {
	Date            time.Time `json:"date"`
	WeatherCode     int       `json:"weather_code"`
	TempMaxC        float64   `json:"temp_max_c"`
	TempMinC        float64   `json:"temp_min_c"`
	PrecipitationMm float64   `json:"precipitation_mm"`
}

// DailyForecast дни в хронологическом порядке начиная с сегодняшнего, не больше MaxForecastDays
type DailyForecast []DailyForecastEntry

// ResultKind тип результата поиска
type ResultKind string

const (
	KindSuccess  ResultKind = "success"
	KindNotFound ResultKind = "not_found"
	KindFailure  ResultKind = "failure"
)

// LookupResult результат одного поиска. Заполнены только поля, относящиеся к Kind.
type LookupResult struct {
	Kind       ResultKind `json:"kind"`
	SearchID   string     `json:"search_id"`
	Generation uint64     `json:"generation"`

	// Success
	Location *ResolvedLocation  `json:"location,omitempty"`
	Current  *CurrentConditions `json:"current,omitempty"`
	Daily    DailyForecast      `json:"daily,omitempty"`

	// NotFound
	Query SearchQuery `json:"query,omitempty"`

	// Failure
	Reason string `json:"reason,omitempty"`
}

// Success собирает успешный результат
func Success(loc ResolvedLocation, cur CurrentConditions, daily DailyForecast) LookupResult {
	return LookupResult{
		Kind:     KindSuccess,
		Location: &loc,
		Current:  &cur,
		Daily:    daily,
	}
}

// NotFound собирает результат "город не найден"
func NotFound(query SearchQuery) LookupResult {
	return LookupResult{Kind: KindNotFound, Query: query}
}

// Failure собирает результат с ошибкой
func Failure(reason string) LookupResult {
	return LookupResult{Kind: KindFailure, Reason: reason}
}

// Err возвращает ошибку для NotFound и Failure, nil для успеха
func (r LookupResult) Err() error {
	switch r.Kind {
	case KindSuccess:
		return nil
	case KindNotFound:
		return apperrors.Wrap(apperrors.CodeNotFound, "can't find "+r.Query.String(), nil)
	default:
		return apperrors.Wrap(apperrors.CodeUpstreamFailure, r.Reason, nil)
	}
}

// ErrorResponse структура для ошибок HTTP API
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}
