package trace

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Tracer receives trace events. Implementations are safe for concurrent use.
type Tracer interface {
	Emit(ev *Event)
	// Flush writes out buffered events.
	Flush() error
	// Close flushes and releases the output.
	Close() error
	Level() Level
	// Enabled reports Level() > LevelOff.
	Enabled() bool
}

// DefaultRingSize is the ring capacity used when none is configured.
const DefaultRingSize = 4096

// StorageMode says where events go: straight to the output, into the
// in-memory ring that is dumped on panic, or to both.
type StorageMode string

const (
	ModeStream StorageMode = "stream"
	ModeRing   StorageMode = "ring"
	ModeBoth   StorageMode = "both"
)

func (m StorageMode) String() string { return string(m) }

func (m StorageMode) streams() bool { return m == ModeStream || m == ModeBoth }

func (m StorageMode) buffers() bool { return m == ModeRing || m == ModeBoth }

// ParseMode reads a storage mode, ignoring case and surrounding space.
func ParseMode(s string) (StorageMode, error) {
	switch m := StorageMode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeStream, ModeRing, ModeBoth:
		return m, nil
	}
	return "", fmt.Errorf("invalid storage mode: %q (expected: stream|ring|both)", s)
}

// Config describes the tracer New builds.
type Config struct {
	Level Level
	Mode  StorageMode
	// Format applies to the stream; FormatAuto picks it from OutputPath.
	Format Format
	// Output wins over OutputPath. An empty path or "-" means stderr.
	Output     io.Writer
	OutputPath string
	// RingSize <= 0 means DefaultRingSize.
	RingSize int
}

// New builds a stream tracer, a ring tracer, or both behind a MultiTracer.
// LevelOff gives Nop without opening the output.
func New(cfg Config) (Tracer, error) {
	if cfg.Level == LevelOff {
		return Nop, nil
	}
	if !cfg.Mode.streams() && !cfg.Mode.buffers() {
		return nil, fmt.Errorf("unknown storage mode: %q", cfg.Mode)
	}

	var sinks []Tracer
	if cfg.Mode.streams() {
		w, err := cfg.output()
		if err != nil {
			return nil, err
		}
		format := cfg.Format
		if format == FormatAuto {
			format = formatForPath(cfg.OutputPath)
		}
		sinks = append(sinks, NewStreamTracer(w, cfg.Level, format))
	}
	if cfg.Mode.buffers() {
		sinks = append(sinks, NewRingTracer(cfg.RingSize, cfg.Level))
	}
	if len(sinks) == 1 {
		return sinks[0], nil
	}
	return NewMultiTracer(cfg.Level, sinks...), nil
}

func (cfg Config) output() (io.Writer, error) {
	switch {
	case cfg.Output != nil:
		return cfg.Output, nil
	case cfg.OutputPath == "" || cfg.OutputPath == "-":
		return stderrWriter{os.Stderr}, nil
	}
	f, err := os.Create(cfg.OutputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open trace output: %w", err)
	}
	return f, nil
}

// stderrWriter keeps StreamTracer.Close from closing stderr.
type stderrWriter struct{ io.Writer }

func (stderrWriter) Close() error { return nil }
