package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"numlit/internal/trace"
	"numlit/internal/version"
)

// errFailed signals that the command already printed its findings and only
// the exit status is left to set.
var errFailed = errors.New("failed")

// newRootCmd builds the full command tree. Tests call it once per run so
// flag state never leaks between invocations.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "numlit",
		Short:         "Numeric literal range toolkit",
		Long:          `numlit inspects the numeric-literal lattice: widths, ranges, meets, defaults and literal seeding`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return prepare(cmd)
		},
	}

	rootCmd.AddCommand(newWidthsCmd())
	rootCmd.AddCommand(newMeetCmd())
	rootCmd.AddCommand(newMatchCmd())
	rootCmd.AddCommand(newDefaultsCmd())
	rootCmd.AddCommand(newSeedCmd())
	rootCmd.AddCommand(newExplainCmd())
	rootCmd.AddCommand(newBatchCmd())
	rootCmd.AddCommand(newVersionCmd())

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 0, "maximum number of diagnostics to show (0 = numlit.toml value)")
	rootCmd.PersistentFlags().String("format", "pretty", "output format (pretty|json)")
	rootCmd.PersistentFlags().String("trace", "", "trace output file (\"-\" for stderr)")
	rootCmd.PersistentFlags().String("trace-level", "", "trace level (off|error|phase|detail|debug)")
	rootCmd.PersistentFlags().String("trace-mode", "", "trace storage mode (stream|ring|both)")
	rootCmd.PersistentFlags().Int("trace-ring-size", trace.DefaultRingSize, "ring buffer capacity for ring/both trace modes")
	rootCmd.PersistentFlags().Duration("trace-heartbeat", 0, "emit a batch progress heartbeat into the trace at this interval (0 = off)")

	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errFailed) {
			fmt.Fprintf(os.Stderr, "numlit: %v\n", err)
		}
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
