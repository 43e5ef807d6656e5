package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"weather-lookup/models"
)

const DefaultGeocodingURL = "https://geocoding-api.open-meteo.com/v1/search"

// GeocodingClient ищет город через геокодер Open-Meteo
type GeocodingClient struct {
	client  *http.Client
	baseURL string
}

func NewGeocodingClient(baseURL string, timeout time.Duration) *GeocodingClient {
	if baseURL == "" {
		baseURL = DefaultGeocodingURL
	}
	return &GeocodingClient{
		client:  newHTTPClient(timeout),
		baseURL: baseURL,
	}
}

type geocodingResponse struct {
	Results []struct {
		Name      string   `json:"name"`
		Country   string   `json:"country"`
		Latitude  *float64 `json:"latitude"`
		Longitude *float64 `json:"longitude"`
	} `json:"results"`
}

// Resolve запрашивает ровно одного кандидата и берет его без всякого выбора.
// Если кандидатов нет, возвращает ErrLocationNotFound.
func (c *GeocodingClient) Resolve(ctx context.Context, query models.SearchQuery) (models.ResolvedLocation, error) {
	params := url.Values{}
	params.Set("name", query.String())
	params.Set("count", "1")

	var result geocodingResponse
	if err := getJSON(ctx, c.client, c.baseURL, params, &result); err != nil {
		return models.ResolvedLocation{}, fmt.Errorf("геокодирование: %w", err)
	}

	if len(result.Results) == 0 {
		return models.ResolvedLocation{}, ErrLocationNotFound
	}

	first := result.Results[0]
	if first.Latitude == nil {
		return models.ResolvedLocation{}, fmt.Errorf("геокодирование: %w", missing("results[0].latitude"))
	}
	if first.Longitude == nil {
		return models.ResolvedLocation{}, fmt.Errorf("геокодирование: %w", missing("results[0].longitude"))
	}

	return models.ResolvedLocation{
		DisplayName: first.Name + ", " + first.Country,
		Latitude:    *first.Latitude,
		Longitude:   *first.Longitude,
	}, nil
}
