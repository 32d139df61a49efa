package main

import (
	"context"
	"errors"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"csclean/internal/concat"
	"csclean/internal/driver"
	"csclean/internal/ui"
)

var errInterrupted = errors.New("interrupted")

type concatOutcome struct {
	result *concat.Result
	err    error
}

func runConcatWithUI(ctx context.Context, out io.Writer, files []string, opts concat.Options, cache *driver.CleanCache) (*concat.Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	events := make(chan concat.Event, 256)
	outcomeCh := make(chan concatOutcome, 1)

	go func() {
		res, err := concat.Run(ctx, files, opts, concat.Env{Cache: cache, Sink: concat.ChannelSink{Ch: events}})
		outcomeCh <- concatOutcome{result: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel("concat", files, events)
	program := tea.NewProgram(model, tea.WithOutput(out), tea.WithContext(ctx))
	_, uiErr := program.Run()
	// UI завершается либо после последнего файла, либо по ctrl+c;
	// во втором случае останавливаем оставшуюся работу.
	cancel()
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if errors.Is(outcome.err, context.Canceled) && ctx.Err() != nil {
		return nil, errInterrupted
	}
	if uiErr != nil && outcome.err == nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}
