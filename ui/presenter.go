package ui

import (
	"log/slog"

	"weather-lookup/models"
)

// Submitter запускает поиск и доставляет результат через UI очередь
type Submitter interface {
	Submit(raw string, deliver func(models.LookupResult)) (uint64, error)
}

// Presenter связывает ввод пользователя, конвейер и Renderer.
// Все методы вызываются в UI потоке.
type Presenter struct {
	submitter Submitter
	renderer  Renderer
	logger    *slog.Logger

	pending map[uint64]string // поколение -> запрос
	closing bool
	isDone  bool
	drained chan struct{}
}

func NewPresenter(submitter Submitter, renderer Renderer, logger *slog.Logger) *Presenter {
	return &Presenter{
		submitter: submitter,
		renderer:  renderer,
		logger:    logger.With("component", "ui.presenter"),
		pending:   make(map[uint64]string),
		drained:   make(chan struct{}),
	}
}

// Search обрабатывает ввод пользователя
func (p *Presenter) Search(raw string) {
	if p.closing {
		return
	}
	gen, err := p.submitter.Submit(raw, p.show)
	if err != nil {
		p.renderer.Warn("gotta type something")
		return
	}

	query, _ := models.NewSearchQuery(raw)
	p.pending[gen] = query.String()
	p.renderer.Status("looking up " + query.String() + "...")
}

// InFlight число поисков, результат которых еще не пришел или был отброшен
func (p *Presenter) InFlight() int {
	return len(p.pending)
}

// Close перестает принимать ввод. Drained закрывается, когда придет последний результат.
func (p *Presenter) Close() {
	if p.closing {
		return
	}
	p.closing = true
	p.checkDrained()
}

func (p *Presenter) Drained() <-chan struct{} {
	return p.drained
}

func (p *Presenter) checkDrained() {
	if p.closing && !p.isDone && len(p.pending) == 0 {
		p.isDone = true
		close(p.drained)
	}
}

func (p *Presenter) show(result models.LookupResult) {
	// устаревшие поколения до сюда не доходят, чистим все что старше
	for gen := range p.pending {
		if gen <= result.Generation {
			delete(p.pending, gen)
		}
	}

	switch result.Kind {
	case models.KindSuccess:
		p.renderer.Weather(*result.Location, *result.Current, result.Daily)
		p.renderer.Status(result.Location.DisplayName + " • just now")
	case models.KindNotFound:
		p.renderer.Error("nah", "can't find "+result.Query.String())
		p.renderer.Status("not found")
	default:
		p.renderer.Error("rip", "something died: "+result.Reason)
		p.renderer.Status("lookup failed")
	}
	p.logger.Debug("result rendered", "search_id", result.SearchID, "kind", result.Kind)
	p.checkDrained()
}
