package lookup

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"weather-lookup/apperrors"
	"weather-lookup/models"
	"weather-lookup/providers"
)

// Poster ставит функцию в очередь UI потока. Это единственная точка передачи между потоками.
type Poster interface {
	Post(fn func())
}

// Pipeline геокодирует город, затем получает прогноз.
// При наложении поисков побеждает последний: результаты устаревших поколений отбрасываются.
type Pipeline struct {
	resolver providers.LocationResolver
	fetcher  providers.ForecastFetcher
	poster   Poster
	logger   *slog.Logger
	newID    func() string

	mu         sync.Mutex
	generation uint64
	state      State
}

func NewPipeline(resolver providers.LocationResolver, fetcher providers.ForecastFetcher, poster Poster, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		resolver: resolver,
		fetcher:  fetcher,
		poster:   poster,
		logger:   logger.With("component", "lookup.pipeline"),
		newID:    uuid.NewString,
	}
}

// Submit проверяет ввод и запускает поиск в фоне.
// Пустой ввод отклоняется сразу, без сетевых запросов.
// deliver вызывается через Poster ровно один раз, если поиск не был вытеснен более новым.
func (p *Pipeline) Submit(raw string, deliver func(models.LookupResult)) (uint64, error) {
	query, err := models.NewSearchQuery(raw)
	if err != nil {
		return 0, err
	}

	p.mu.Lock()
	p.generation++
	gen := p.generation
	p.state = StateResolving
	p.mu.Unlock()

	id := p.newID()
	p.logger.Debug("search submitted", "search_id", id, "generation", gen, "query", query.String())

	go func() {
		// отмены нет, запросы ограничены таймаутом HTTP клиента
		result := p.lookup(context.Background(), id, query, func(s State) { p.setState(gen, s) })
		result.Generation = gen
		p.poster.Post(func() { p.deliver(gen, result, deliver) })
	}()

	return gen, nil
}

// Lookup синхронная версия поиска для CLI и HTTP API
func (p *Pipeline) Lookup(ctx context.Context, query models.SearchQuery) models.LookupResult {
	return p.lookup(ctx, p.newID(), query, func(State) {})
}

// State возвращает состояние последнего поиска
func (p *Pipeline) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Generation номер последнего отправленного поиска
func (p *Pipeline) Generation() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.generation
}

func (p *Pipeline) lookup(ctx context.Context, id string, query models.SearchQuery, stage func(State)) models.LookupResult {
	log := p.logger.With("search_id", id)

	loc, err := p.resolver.Resolve(ctx, query)
	if errors.Is(err, providers.ErrLocationNotFound) {
		log.Info("location not found", "query", query.String())
		result := models.NotFound(query)
		result.SearchID = id
		return result
	}
	if err != nil {
		return p.failure(log, id, err)
	}
	log.Debug("location resolved", "location", loc.DisplayName, "lat", loc.Latitude, "lon", loc.Longitude)

	stage(StateFetching)
	current, daily, err := p.fetcher.Fetch(ctx, loc)
	if err != nil {
		return p.failure(log, id, err)
	}
	log.Info("forecast fetched", "location", loc.DisplayName, "days", len(daily))

	result := models.Success(loc, current, daily)
	result.SearchID = id
	return result
}

func (p *Pipeline) failure(log *slog.Logger, id string, err error) models.LookupResult {
	err = apperrors.Wrap(apperrors.CodeUpstreamFailure, "не удалось получить погоду", err)
	log.Warn("lookup failed", "error", err)

	result := models.Failure(err.Error())
	result.SearchID = id
	return result
}

// deliver выполняется в UI потоке
func (p *Pipeline) deliver(gen uint64, result models.LookupResult, fn func(models.LookupResult)) {
	if !p.setState(gen, StateDelivering) {
		p.logger.Debug("stale result dropped", "search_id", result.SearchID, "generation", gen)
		return
	}
	fn(result)
	p.setState(gen, StateIdle)
}

// setState меняет состояние, только если gen последнее поколение
func (p *Pipeline) setState(gen uint64, s State) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if gen != p.generation {
		return false
	}
	p.state = s
	return true
}
