package providers

import (
	"context"
	"fmt"

	"weather-lookup/models"

	"golang.org/x/time/rate"
)

// RateLimitedResolver ждет разрешения лимитера перед каждым геокодированием
type RateLimitedResolver struct {
	resolver LocationResolver
	limiter  *rate.Limiter
}

func NewRateLimitedResolver(resolver LocationResolver, limiter *rate.Limiter) *RateLimitedResolver {
	return &RateLimitedResolver{resolver: resolver, limiter: limiter}
}

func (r *RateLimitedResolver) Resolve(ctx context.Context, query models.SearchQuery) (models.ResolvedLocation, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return models.ResolvedLocation{}, fmt.Errorf("ожидание лимита прервано: %w", err)
	}
	return r.resolver.Resolve(ctx, query)
}

// RateLimitedFetcher ждет разрешения лимитера перед каждым запросом прогноза
type RateLimitedFetcher struct {
	fetcher ForecastFetcher
	limiter *rate.Limiter
}

func NewRateLimitedFetcher(fetcher ForecastFetcher, limiter *rate.Limiter) *RateLimitedFetcher {
	return &RateLimitedFetcher{fetcher: fetcher, limiter: limiter}
}

func (r *RateLimitedFetcher) Fetch(ctx context.Context, loc models.ResolvedLocation) (models.CurrentConditions, models.DailyForecast, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return models.CurrentConditions{}, nil, fmt.Errorf("ожидание лимита прервано: %w", err)
	}
	return r.fetcher.Fetch(ctx, loc)
}

// WithRateLimit оборачивает оба клиента общим лимитером.
// rps <= 0 возвращает клиентов без изменений.
func WithRateLimit(resolver LocationResolver, fetcher ForecastFetcher, rps float64, burst int) (LocationResolver, ForecastFetcher) {
	if rps <= 0 {
		return resolver, fetcher
	}
	limiter := rate.NewLimiter(rate.Limit(rps), burst)
	return NewRateLimitedResolver(resolver, limiter), NewRateLimitedFetcher(fetcher, limiter)
}

var (
	_ LocationResolver = (*GeocodingClient)(nil)
	_ ForecastFetcher  = (*ForecastClient)(nil)
	_ LocationResolver = (*RateLimitedResolver)(nil)
	_ ForecastFetcher  = (*RateLimitedFetcher)(nil)
)
