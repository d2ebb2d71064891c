package trace

import (
	"strconv"
	"sync"
	"time"
)

// Heartbeat emits a KindHeartbeat event every interval until stopped. Each
// beat carries the owner's status line (files and cases done for a batch),
// so a stalled run shows which counter stopped moving.
type Heartbeat struct {
	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

// StartHeartbeat starts beating under parent. It returns nil, which is safe
// to Stop, when t is disabled or interval is not positive. status may be nil.
func StartHeartbeat(t Tracer, interval time.Duration, parent uint64, status func() string) *Heartbeat {
	if t == nil || !t.Enabled() || interval <= 0 {
		return nil
	}
	h := &Heartbeat{stop: make(chan struct{}), done: make(chan struct{})}
	go h.beat(t, interval, parent, status)
	return h
}

func (h *Heartbeat) beat(t Tracer, interval time.Duration, parent uint64, status func() string) {
	defer close(h.done)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for n := 1; ; n++ {
		select {
		case <-h.stop:
			return
		case now := <-ticker.C:
			detail := "#" + strconv.Itoa(n)
			if status != nil {
				detail += " " + status()
			}
			t.Emit(&Event{
				Time:     now,
				Seq:      NextSeq(),
				Kind:     KindHeartbeat,
				Scope:    ScopeDriver,
				ParentID: parent,
				GID:      getGoroutineID(),
				Name:     "heartbeat",
				Detail:   detail,
			})
		}
	}
}

// Stop ends the heartbeat and waits until no more beats can be emitted.
func (h *Heartbeat) Stop() {
	if h == nil {
		return
	}
	h.stopOnce.Do(func() { close(h.stop) })
	<-h.done
}
