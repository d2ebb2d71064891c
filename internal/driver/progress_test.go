package driver

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestChannelSinkGivesUpAfterDone(t *testing.T) {
	done := make(chan struct{})
	sink := ChannelSink{Ch: make(chan Event), Done: done}
	close(done)

	returned := make(chan struct{})
	go func() {
		sink.OnEvent(Event{File: "a.yaml", Stage: StageLoad, Status: StatusQueued})
		close(returned)
	}()
	select {
	case <-returned:
	case <-time.After(5 * time.Second):
		t.Fatalf("OnEvent blocked on an unread channel after Done closed")
	}
}

func TestRunBatchUndrainedSinkStopsOnCancel(t *testing.T) {
	dir := t.TempDir()
	for i := range 100 {
		writeScenario(t, dir, fmt.Sprintf("s%03d.yaml", i), passingScenario)
	}

	ctx, cancel := context.WithCancel(context.Background())
	// nobody reads the channel; it fills during the queued events
	events := make(chan Event, 8)
	opts := Options{Jobs: 4, Progress: ChannelSink{Ch: events, Done: ctx.Done()}}

	errCh := make(chan error, 1)
	go func() {
		_, err := RunBatch(ctx, []string{dir}, opts)
		errCh <- err
	}()
	for len(events) < cap(events) {
		time.Sleep(time.Millisecond)
	}
	cancel()

	select {
	case err := <-errCh:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("RunBatch still blocked after cancel with %d events buffered", len(events))
	}
}
