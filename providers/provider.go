package providers

import (
	"context"
	"errors"

	"weather-lookup/models"
)

// ErrLocationNotFound геокодер не вернул ни одного кандидата
var ErrLocationNotFound = errors.New("location not found")

// LocationResolver превращает название города в координаты
type LocationResolver interface {
	Resolve(ctx context.Context, query models.SearchQuery) (models.ResolvedLocation, error)
}

// ForecastFetcher получает текущую погоду и дневной прогноз по координатам
type ForecastFetcher interface {
	Fetch(ctx context.Context, loc models.ResolvedLocation) (models.CurrentConditions, models.DailyForecast, error)
}

// MissingFieldError в ответе нет обязательного поля
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return "в ответе нет поля " + e.Field
}

func missing(field string) error {
	return &MissingFieldError{Field: field}
}
