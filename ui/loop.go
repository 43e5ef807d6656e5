package ui

import (
	"context"
)

// Loop UI поток: выполняет поставленные в очередь функции строго по одной.
// Только функции, выполненные Loop, имеют право трогать состояние отображения.
type Loop struct {
	queue chan func()
	done  chan struct{}
}

func NewLoop(size int) *Loop {
	if size < 1 {
		size = 64
	}
	return &Loop{
		queue: make(chan func(), size),
		done:  make(chan struct{}),
	}
}

// Post ставит fn в очередь. После остановки цикла fn молча отбрасывается.
func (l *Loop) Post(fn func()) {
	select {
	case l.queue <- fn:
	case <-l.done:
	}
}

// Run обрабатывает очередь до отмены ctx
func (l *Loop) Run(ctx context.Context) {
	defer close(l.done)
	for {
		select {
		case <-ctx.Done():
			return
		case fn := <-l.queue:
			fn()
		}
	}
}
