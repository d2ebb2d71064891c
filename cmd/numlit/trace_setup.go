package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"numlit/internal/trace"
)

// setupTracing merges the trace flags over [trace] from numlit.toml, builds
// the tracer and attaches it to the command context.
func setupTracing(cmd *cobra.Command, s *settings) error {
	flags := cmd.Root().PersistentFlags()
	cfg := s.config.Trace

	traceOutput, err := flags.GetString("trace")
	if err != nil {
		return fmt.Errorf("failed to get trace flag: %w", err)
	}
	if flags.Changed("trace") {
		cfg.Output = traceOutput
	}
	levelStr, err := flags.GetString("trace-level")
	if err != nil {
		return fmt.Errorf("failed to get trace-level flag: %w", err)
	}
	if flags.Changed("trace-level") {
		cfg.Level = levelStr
	} else if flags.Changed("trace") && (cfg.Level == "" || cfg.Level == "off") {
		// --trace alone means "trace something"
		cfg.Level = "phase"
	}
	modeStr, err := flags.GetString("trace-mode")
	if err != nil {
		return fmt.Errorf("failed to get trace-mode flag: %w", err)
	}
	if flags.Changed("trace-mode") {
		cfg.Mode = modeStr
	}
	ringSize, err := flags.GetInt("trace-ring-size")
	if err != nil {
		return fmt.Errorf("failed to get trace-ring-size flag: %w", err)
	}
	heartbeatInterval, err := flags.GetDuration("trace-heartbeat")
	if err != nil {
		return fmt.Errorf("failed to get trace-heartbeat flag: %w", err)
	}
	if heartbeatInterval < 0 {
		return fmt.Errorf("--trace-heartbeat must not be negative")
	}

	level, err := trace.ParseLevel(cfg.Level)
	if err != nil {
		return fmt.Errorf("invalid trace level: %w", err)
	}
	if level == trace.LevelOff {
		s.tracer = trace.Nop
		cmd.SetContext(trace.WithTracer(cmd.Context(), trace.Nop))
		return nil
	}
	mode, err := trace.ParseMode(cfg.Mode)
	if err != nil {
		return fmt.Errorf("invalid trace mode: %w", err)
	}

	tracer, err := trace.New(trace.Config{
		Level:      level,
		Mode:       mode,
		OutputPath: cfg.Output,
		RingSize:   ringSize,
	})
	if err != nil {
		return fmt.Errorf("failed to create tracer: %w", err)
	}
	s.tracer = tracer
	s.heartbeat = heartbeatInterval
	cmd.SetContext(trace.WithTracer(cmd.Context(), tracer))

	s.cleanup = func() {
		if err := tracer.Flush(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: flush error: %v\n", err)
		}
		if err := tracer.Close(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: close error: %v\n", err)
		}
	}
	return nil
}

// ringOf returns the ring buffer behind t, if it keeps one.
func ringOf(t trace.Tracer) (*trace.RingTracer, bool) {
	switch tt := t.(type) {
	case *trace.RingTracer:
		return tt, true
	case *trace.MultiTracer:
		return tt.Ring()
	default:
		return nil, false
	}
}

// dumpTraceOnPanic writes the ring buffer to stderr before letting a panic
// continue. Must be deferred directly.
func dumpTraceOnPanic(cmd *cobra.Command, t trace.Tracer) {
	r := recover()
	if r == nil {
		return
	}
	if ring, ok := ringOf(t); ok {
		fmt.Fprintln(cmd.ErrOrStderr(), "trace: last events before panic:")
		if err := ring.Dump(cmd.ErrOrStderr(), trace.FormatText); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: dump error: %v\n", err)
		}
	}
	panic(r)
}
