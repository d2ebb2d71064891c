package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"numlit/internal/diagfmt"
	"numlit/internal/driver"
)

func newBatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch <file.yaml|directory>...",
		Short: "Run YAML scenario files and compare outcomes with expectations",
		Long: `Evaluates every case in the given scenario files (directories are searched
for *.yaml and *.yml) in parallel and reports each mismatch as a diagnostic.
Exits with a non-zero status when any case fails.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runner(runBatch),
	}
	cmd.Flags().Int("jobs", 0, "max parallel workers (0 = numlit.toml value, then one per CPU)")
	cmd.Flags().Bool("cache", false, "reuse outcomes of unchanged files (default from numlit.toml)")
	cmd.Flags().Bool("clear-cache", false, "drop every cached outcome before running")
	cmd.Flags().String("ui", "auto", "progress UI (auto|on|off)")
	cmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	return cmd
}

type batchOptions struct {
	jobs       int
	cache      bool
	clearCache bool
	ui         toggle
	withNotes  bool
}

func readBatchOptions(cmd *cobra.Command, s *settings) (batchOptions, error) {
	opts := batchOptions{jobs: s.config.Batch.Jobs, cache: s.config.Cache.Enabled}
	flags := cmd.Flags()
	if flags.Changed("jobs") {
		jobs, err := flags.GetInt("jobs")
		if err != nil {
			return opts, fmt.Errorf("failed to get jobs flag: %w", err)
		}
		if jobs < 0 {
			return opts, fmt.Errorf("--jobs must not be negative")
		}
		opts.jobs = jobs
	}
	if flags.Changed("cache") {
		cache, err := flags.GetBool("cache")
		if err != nil {
			return opts, fmt.Errorf("failed to get cache flag: %w", err)
		}
		opts.cache = cache
	}
	var err error
	if opts.clearCache, err = flags.GetBool("clear-cache"); err != nil {
		return opts, fmt.Errorf("failed to get clear-cache flag: %w", err)
	}
	uiStr, err := flags.GetString("ui")
	if err != nil {
		return opts, fmt.Errorf("failed to get ui flag: %w", err)
	}
	if opts.ui, err = parseToggle("ui", uiStr); err != nil {
		return opts, err
	}
	if opts.withNotes, err = flags.GetBool("with-notes"); err != nil {
		return opts, fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	return opts, nil
}

func runBatch(cmd *cobra.Command, args []string, s *settings) error {
	bopts, err := readBatchOptions(cmd, s)
	if err != nil {
		return err
	}
	files, err := driver.ListScenarioFiles(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no scenario files found in %v", args)
	}

	opts := driver.Options{
		Jobs:           bopts.jobs,
		MaxDiagnostics: s.maxDiags,
		// the pretty form prints the timer table instead
		Timings:   s.timings && s.format == formatJSON,
		Heartbeat: s.heartbeat,
	}
	if bopts.cache || bopts.clearCache {
		cache, err := driver.OpenDiskCache(s.manifest.CacheDir())
		if err != nil {
			return fmt.Errorf("failed to open cache: %w", err)
		}
		if bopts.clearCache {
			if err := cache.DropAll(); err != nil {
				return fmt.Errorf("failed to clear cache: %w", err)
			}
		}
		if bopts.cache {
			opts.Cache = cache
		}
	}

	var res *driver.BatchResult
	if s.format == formatPretty && !s.quiet && bopts.ui.enabled(isTerminal(os.Stdout)) {
		res, err = runBatchWithUI(cmd.Context(), "numlit batch", files, opts)
	} else {
		res, err = driver.RunBatch(cmd.Context(), files, opts)
	}
	if err != nil {
		return err
	}

	if s.format == formatJSON {
		if err := writeJSON(cmd.OutOrStdout(), buildBatchJSON(res, bopts.withNotes, s.maxDiags)); err != nil {
			return err
		}
	} else {
		renderBatch(cmd.OutOrStdout(), newTableStyles(s.color), res, s.quiet)
		if err := printDiagnostics(cmd.ErrOrStderr(), res.Bag, s, bopts.withNotes); err != nil {
			return err
		}
		if s.timings {
			fmt.Fprint(cmd.ErrOrStderr(), res.Timer.Summary())
		}
	}

	if _, failed := res.Totals(); failed > 0 || res.Bag.HasErrors() {
		return errFailed
	}
	return nil
}

type batchFileJSON struct {
	Path      string               `json:"path"`
	Name      string               `json:"name,omitempty"`
	Cases     int                  `json:"cases"`
	Failed    int                  `json:"failed"`
	Cached    bool                 `json:"cached"`
	ElapsedMS float64              `json:"elapsed_ms"`
	Outcomes  []driver.CaseOutcome `json:"outcomes"`
}

type batchJSON struct {
	Files       []batchFileJSON           `json:"files"`
	Cases       int                       `json:"cases"`
	Failed      int                       `json:"failed"`
	Diagnostics diagfmt.DiagnosticsOutput `json:"diagnostics"`
}

func buildBatchJSON(res *driver.BatchResult, withNotes bool, maxDiags int) batchJSON {
	out := batchJSON{Files: make([]batchFileJSON, 0, len(res.Files))}
	for i := range res.Files {
		fr := &res.Files[i]
		out.Files = append(out.Files, batchFileJSON{
			Path:      fr.Path,
			Name:      fr.Name,
			Cases:     len(fr.Outcomes),
			Failed:    fr.Failed(),
			Cached:    fr.Cached,
			ElapsedMS: toMillis(fr.Elapsed),
			Outcomes:  fr.Outcomes,
		})
	}
	out.Cases, out.Failed = res.Totals()
	res.Bag.Sort()
	out.Diagnostics = diagfmt.BuildDiagnosticsOutput(res.Bag, diagfmt.JSONOpts{Max: maxDiags, IncludeNotes: withNotes})
	return out
}

func renderBatch(w io.Writer, st tableStyles, res *driver.BatchResult, quiet bool) {
	if !quiet {
		rows := make([][]string, 0, len(res.Files))
		for i := range res.Files {
			fr := &res.Files[i]
			cached := ""
			if fr.Cached {
				cached = "yes"
			}
			rows = append(rows, []string{
				fr.Path,
				fmt.Sprint(len(fr.Outcomes)),
				fmt.Sprint(fr.Failed()),
				cached,
				fmt.Sprintf("%.1f ms", toMillis(fr.Elapsed)),
			})
		}
		renderTable(w, st, "", []string{"FILE", "CASES", "FAILED", "CACHED", "TIME"}, rows)
	}
	cases, failed := res.Totals()
	fmt.Fprintf(w, "%d files, %d cases, %d failed\n", len(res.Files), cases, failed)
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
