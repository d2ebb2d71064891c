package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"numlit/internal/driver"
	"numlit/internal/ui"
)

type batchOutcome struct {
	result *driver.BatchResult
	err    error
}

// runBatchWithUI runs the batch in the background and renders its progress
// events until the batch closes the channel. Quitting the UI early cancels
// the batch.
func runBatchWithUI(ctx context.Context, title string, files []string, opts driver.Options) (*driver.BatchResult, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events, outcomeCh := startBatch(ctx, files, opts)
	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	return awaitBatch(cancel, events, outcomeCh, uiErr)
}

// startBatch runs the batch in a goroutine. The event channel is closed once
// the outcome has been sent.
func startBatch(ctx context.Context, files []string, opts driver.Options) (<-chan driver.Event, <-chan batchOutcome) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan batchOutcome, 1)
	opts.Progress = driver.ChannelSink{Ch: events, Done: ctx.Done()}
	go func() {
		res, err := driver.RunBatch(ctx, files, opts)
		outcomeCh <- batchOutcome{result: res, err: err}
		close(events)
	}()
	return events, outcomeCh
}

// awaitBatch collects the batch once the UI has stopped reading events.
// After ctrl+c the UI quits early: the batch is cancelled and whatever it
// still sends is dropped until it closes the channel.
func awaitBatch(cancel context.CancelFunc, events <-chan driver.Event, outcomeCh <-chan batchOutcome, uiErr error) (*driver.BatchResult, error) {
	cancel()
	for range events {
	}
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}
