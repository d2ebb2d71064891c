package main

import (
	"context"
	"fmt"
	"errors"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"numlit/internal/project"
	"numlit/internal/trace"
)

type outputFormat string

const (
	formatPretty outputFormat = "pretty"
	formatJSON   outputFormat = "json"
)

// settings is numlit.toml merged with the persistent flags.
type settings struct {
	manifest *project.Manifest
	config   project.Config
	color    bool
	quiet    bool
	timings  bool
	maxDiags int
	format   outputFormat
	tracer   trace.Tracer

	// heartbeat is the batch heartbeat interval; 0 disables it.
	heartbeat time.Duration
	cleanup   func()
}

type settingsKey struct{}

func settingsFrom(ctx context.Context) *settings {
	if s, ok := ctx.Value(settingsKey{}).(*settings); ok {
		return s
	}
	return &settings{config: project.DefaultConfig(), format: formatPretty, tracer: trace.Nop, cleanup: func() {}}
}

// prepare runs before every subcommand: it loads numlit.toml, applies flag
// overrides and installs the tracer in the command context.
func prepare(cmd *cobra.Command) error {
	flags := cmd.Root().PersistentFlags()

	s := &settings{config: project.DefaultConfig(), cleanup: func() {}}
	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}
	manifest, ok, err := project.Load(wd)
	if err != nil {
		return err
	}
	if ok {
		s.manifest = manifest
		s.config = manifest.Config
	}

	colorFlag, err := flags.GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}
	if s.color, err = resolveColor(colorFlag, isTerminal(os.Stdout)); err != nil {
		return err
	}
	color.NoColor = !s.color
	if s.quiet, err = flags.GetBool("quiet"); err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if s.timings, err = flags.GetBool("timings"); err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}

	s.maxDiags = s.config.Batch.MaxDiagnostics
	if flags.Changed("max-diagnostics") {
		if s.maxDiags, err = flags.GetInt("max-diagnostics"); err != nil {
			return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
		}
		if s.maxDiags < 0 {
			return fmt.Errorf("--max-diagnostics must not be negative")
		}
	}

	formatStr, err := flags.GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	switch f := outputFormat(strings.ToLower(strings.TrimSpace(formatStr))); f {
	case formatPretty, formatJSON:
		s.format = f
	default:
		return fmt.Errorf("unsupported format %q (must be pretty or json)", formatStr)
	}

	if err := setupTracing(cmd, s); err != nil {
		return err
	}
	cmd.SetContext(context.WithValue(cmd.Context(), settingsKey{}, s))
	return nil
}

// toggle is the value of an auto|on|off flag such as --color or --ui.
type toggle string

const (
	toggleAuto toggle = "auto"
	toggleOn   toggle = "on"
	toggleOff  toggle = "off"
)

func parseToggle(flag, value string) (toggle, error) {
	switch t := toggle(strings.ToLower(strings.TrimSpace(value))); t {
	case "":
		return toggleAuto, nil
	case toggleAuto, toggleOn, toggleOff:
		return t, nil
	}
	return "", fmt.Errorf("invalid --%s value %q (expected auto|on|off)", flag, value)
}

// enabled resolves the toggle; auto is what auto mode would pick.
func (t toggle) enabled(auto bool) bool {
	switch t {
	case toggleOn:
		return true
	case toggleOff:
		return false
	}
	return auto
}

func resolveColor(mode string, tty bool) (bool, error) {
	t, err := parseToggle("color", mode)
	if err != nil {
		return false, err
	}
	return t.enabled(tty && os.Getenv("NO_COLOR") == ""), nil
}

// runner wraps a RunE body in a command span, flushes the tracer even when
// the body fails and dumps the ring buffer if it panics.
func runner(fn func(cmd *cobra.Command, args []string, s *settings) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		s := settingsFrom(cmd.Context())
		defer s.cleanup()
		defer dumpTraceOnPanic(cmd, s.tracer)

		span, ctx := trace.Start(cmd.Context(), trace.ScopeDriver, "cmd:"+cmd.Name())
		cmd.SetContext(ctx)
		err := fn(cmd, args, s)
		switch {
		case err == nil:
			span.End("")
		case errors.Is(err, errFailed):
			span.End("failed")
		default:
			span.End("error")
		}
		return err
	}
}
