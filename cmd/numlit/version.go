package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"numlit/internal/version"
)

const versionTagline = "every literal finds its width"

type versionOptions struct {
	showHash bool
	showDate bool
}

type versionPayload struct {
	Tool    string `json:"tool"`
	Tagline string `json:"tagline"`
	version.Info
}

func newVersionCmd() *cobra.Command {
	var showHash, showDate, showFull bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show numlit build metadata",
		Args:  cobra.NoArgs,
		RunE: runner(func(cmd *cobra.Command, args []string, s *settings) error {
			opts := versionOptions{
				showHash: showHash || showFull,
				showDate: showDate || showFull,
			}
			info := collectVersionInfo()
			if s.format == formatJSON {
				return renderVersionJSON(cmd.OutOrStdout(), info, opts)
			}
			renderVersionPretty(cmd.OutOrStdout(), info, opts, s.color)
			return nil
		}),
	}
	cmd.Flags().BoolVar(&showHash, "hash", false, "include git commit hash")
	cmd.Flags().BoolVar(&showDate, "date", false, "include build timestamp")
	cmd.Flags().BoolVar(&showFull, "full", false, "show every recorded bit of build metadata")
	return cmd
}

func collectVersionInfo() version.Info {
	info := version.Current()
	info.Version = strings.TrimSpace(info.Version)
	if info.Version == "" {
		info.Version = "dev"
	}
	info.GitCommit = strings.TrimSpace(info.GitCommit)
	info.BuildDate = strings.TrimSpace(info.BuildDate)
	return info
}

func renderVersionPretty(out io.Writer, info version.Info, opts versionOptions, color bool) {
	v := info.Version
	if color && v == version.Version {
		v = version.Colored()
	}
	fmt.Fprintf(out, "numlit %s: %s\n", v, versionTagline)
	if opts.showHash {
		fmt.Fprintf(out, "commit: %s\n", valueOrUnknown(info.GitCommit))
	}
	if opts.showDate {
		fmt.Fprintf(out, "built:  %s\n", valueOrUnknown(info.BuildDate))
	}
}

func renderVersionJSON(out io.Writer, info version.Info, opts versionOptions) error {
	payload := versionPayload{Tool: "numlit", Tagline: versionTagline, Info: version.Info{Version: info.Version}}
	if opts.showHash {
		payload.GitCommit = valueOrUnknown(info.GitCommit)
	}
	if opts.showDate {
		payload.BuildDate = valueOrUnknown(info.BuildDate)
	}
	return writeJSON(out, payload)
}

func valueOrUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
