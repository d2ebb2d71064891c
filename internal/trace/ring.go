package trace

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"
)

// RingTracer keeps the most recent events for a post-mortem dump. It also
// counts finished spans per scope over the whole run, so a dump says how far
// a batch got even after the ring has wrapped.
type RingTracer struct {
	level Level

	mu       sync.Mutex
	buf      []Event
	next     int    // slot for the next event
	total    uint64 // events ever accepted
	finished [ScopeOp + 1]int
	lastBeat string
}

// NewRingTracer keeps up to capacity events; capacity <= 0 means
// DefaultRingSize.
func NewRingTracer(capacity int, level Level) *RingTracer {
	if capacity <= 0 {
		capacity = DefaultRingSize
	}
	return &RingTracer{level: level, buf: make([]Event, capacity)}
}

func (t *RingTracer) Emit(ev *Event) {
	if ev == nil || (!t.level.ShouldEmit(ev.Scope) && ev.Kind != KindHeartbeat) {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	t.buf[t.next] = *ev
	t.next = (t.next + 1) % len(t.buf)
	t.total++
	switch ev.Kind {
	case KindSpanEnd:
		if int(ev.Scope) < len(t.finished) {
			t.finished[ev.Scope]++
		}
	case KindHeartbeat:
		t.lastBeat = ev.Detail
	}
}

// Snapshot returns the kept events, oldest first.
func (t *RingTracer) Snapshot() []Event {
	t.mu.Lock()
	defer t.mu.Unlock()

	kept := t.keptLocked()
	start := (t.next - kept + len(t.buf)) % len(t.buf)
	out := make([]Event, 0, kept)
	for i := range kept {
		out = append(out, t.buf[(start+i)%len(t.buf)])
	}
	return out
}

func (t *RingTracer) keptLocked() int {
	return int(min(t.total, uint64(len(t.buf))))
}

// RingStats summarises everything the ring accepted, kept or not.
type RingStats struct {
	Events   uint64 `json:"events"`
	Kept     int    `json:"kept"`
	Files    int    `json:"files"`
	Cases    int    `json:"cases"`
	Ops      int    `json:"ops"`
	LastBeat string `json:"last_heartbeat,omitempty"`
}

func (t *RingTracer) Stats() RingStats {
	t.mu.Lock()
	defer t.mu.Unlock()
	return RingStats{
		Events:   t.total,
		Kept:     t.keptLocked(),
		Files:    t.finished[ScopeFile],
		Cases:    t.finished[ScopeCase],
		Ops:      t.finished[ScopeOp],
		LastBeat: t.lastBeat,
	}
}

// Dump writes a RingStats header followed by the kept events.
func (t *RingTracer) Dump(w io.Writer, format Format) error {
	stats := t.Stats()
	if err := writeRingHeader(w, stats, format); err != nil {
		return err
	}
	for _, ev := range t.Snapshot() {
		if _, err := w.Write(FormatEvent(&ev, format)); err != nil {
			return err
		}
	}
	return nil
}

func writeRingHeader(w io.Writer, stats RingStats, format Format) error {
	if format == FormatNDJSON {
		data, err := json.Marshal(struct {
			Ring RingStats `json:"ring"`
		}{stats})
		if err != nil {
			return err
		}
		_, err = w.Write(append(data, '\n'))
		return err
	}
	_, err := fmt.Fprintf(w, "# ring: kept %d of %d events; finished %d files, %d cases, %d ops",
		stats.Kept, stats.Events, stats.Files, stats.Cases, stats.Ops)
	if err == nil && stats.LastBeat != "" {
		_, err = fmt.Fprintf(w, "; last heartbeat %s", stats.LastBeat)
	}
	if err == nil {
		_, err = io.WriteString(w, "\n")
	}
	return err
}

// Flush is a no-op: events stay in memory until Dump.
func (t *RingTracer) Flush() error { return nil }

func (t *RingTracer) Close() error { return nil }

func (t *RingTracer) Level() Level { return t.level }

func (t *RingTracer) Enabled() bool { return t.level > LevelOff }
