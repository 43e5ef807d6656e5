package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// RunConsole интерактивный режим: строки из in становятся поисками.
// EOF или "quit" завершают ввод, затем ждем последний результат.
func RunConsole(ctx context.Context, in io.Reader, loop *Loop, presenter *Presenter) error {
	loopCtx, stop := context.WithCancel(ctx)
	defer stop()

	loopDone := make(chan struct{})
	go func() {
		defer close(loopDone)
		loop.Run(loopCtx)
	}()

	readErr := make(chan error, 1)
	go func() {
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			line := scanner.Text()
			switch strings.ToLower(strings.TrimSpace(line)) {
			case "quit", "exit":
				readErr <- nil
				return
			}
			loop.Post(func() { presenter.Search(line) })
		}
		readErr <- scanner.Err()
	}()

	var err error
	select {
	case err = <-readErr:
		loop.Post(presenter.Close)
		select {
		case <-presenter.Drained():
		case <-ctx.Done():
		}
	case <-ctx.Done():
	}

	stop()
	<-loopDone

	if err != nil {
		return fmt.Errorf("ошибка чтения ввода: %w", err)
	}
	return nil
}
