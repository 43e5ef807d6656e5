package providers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"weather-lookup/models"
)

type countingResolver struct{ calls int }

func (c *countingResolver) Resolve(ctx context.Context, query models.SearchQuery) (models.ResolvedLocation, error) {
	c.calls++
	return models.ResolvedLocation{DisplayName: query.String() + ", X"}, nil
}

type countingFetcher struct{ calls int }

func (c *countingFetcher) Fetch(ctx context.Context, loc models.ResolvedLocation) (models.CurrentConditions, models.DailyForecast, error) {
	c.calls++
	return models.CurrentConditions{}, nil, nil
}

func TestWithRateLimitDisabled(t *testing.T) {
	res, fet := &countingResolver{}, &countingFetcher{}

	r, f := WithRateLimit(res, fet, 0, 0)
	require.Same(t, res, r)
	require.Same(t, fet, f)
}

func TestRateLimitedForwards(t *testing.T) {
	res, fet := &countingResolver{}, &countingFetcher{}
	r, f := WithRateLimit(res, fet, 100, 2)

	loc, err := r.Resolve(context.Background(), "Oslo")
	require.NoError(t, err)
	require.Equal(t, "Oslo, X", loc.DisplayName)

	_, _, err = f.Fetch(context.Background(), loc)
	require.NoError(t, err)
	require.Equal(t, 1, res.calls)
	require.Equal(t, 1, fet.calls)
}

func TestRateLimitedCanceledContext(t *testing.T) {
	res := &countingResolver{}
	limiter := rate.NewLimiter(rate.Limit(0.001), 1)
	require.True(t, limiter.Allow())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewRateLimitedResolver(res, limiter).Resolve(ctx, "Oslo")
	require.ErrorContains(t, err, "ожидание лимита прервано")
	require.Zero(t, res.calls)
}
