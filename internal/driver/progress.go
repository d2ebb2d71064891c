package driver

import "time"

// Stage describes a step of processing one scenario file.
type Stage string

const (
	StageLoad     Stage = "load"
	StageEvaluate Stage = "evaluate"
	StageCache    Stage = "cache"
)

// Status captures progress state within a stage.
type Status string

const (
	StatusQueued  Status = "queued"
	StatusWorking Status = "working"
	StatusDone    Status = "done"
	StatusFailed  Status = "failed"
	StatusError   Status = "error"
)

// Event reports progress for a file (or for the whole run when File is empty).
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events. Implementations must be safe for
// concurrent use.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events to Ch. A send gives up once Done is closed, so
// a reader that stops draining Ch cannot stall the batch; pass the batch
// context's Done channel. The caller closes Ch after the run returns.
type ChannelSink struct {
	Ch   chan<- Event
	Done <-chan struct{}
}

func (s ChannelSink) OnEvent(ev Event) {
	select {
	case s.Ch <- ev:
	case <-s.Done:
	}
}

func emit(sink ProgressSink, ev Event) {
	if sink != nil {
		sink.OnEvent(ev)
	}
}
