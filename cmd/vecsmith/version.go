package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"vecsmith/internal/version"
)

type versionOptions struct {
	format   string
	showHash bool
	showDate bool
}

type versionPayload struct {
	Tool      string `json:"tool"`
	Version   string `json:"version"`
	Tagline   string `json:"tagline"`
	GitCommit string `json:"git_commit,omitempty"`
	BuildDate string `json:"build_date,omitempty"`
}

const versionTagline = "every lane accounted for"

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show vecsmith build fingerprints",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")
			hash, _ := cmd.Flags().GetBool("hash")
			date, _ := cmd.Flags().GetBool("date")
			full, _ := cmd.Flags().GetBool("full")
			opts := versionOptions{
				format:   strings.ToLower(format),
				showHash: hash || full,
				showDate: date || full,
			}
			switch opts.format {
			case "pretty":
				renderVersionPretty(cmd.OutOrStdout(), version.Current(), opts)
				return nil
			case "json":
				return renderVersionJSON(cmd.OutOrStdout(), version.Current(), opts)
			default:
				return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
			}
		},
	}
	cmd.Flags().Bool("hash", false, "include git commit hash")
	cmd.Flags().Bool("date", false, "include build timestamp")
	cmd.Flags().Bool("full", false, "show every recorded bit of build metadata")
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	return cmd
}

func renderVersionPretty(out io.Writer, info version.Info, opts versionOptions) {
	fmt.Fprintf(out, "vecsmith %s: %s\n", version.Colored(info.Version), versionTagline)
	if opts.showHash {
		fmt.Fprintf(out, "commit: %s\n", valueOrUnknown(info.GitCommit))
	}
	if opts.showDate {
		fmt.Fprintf(out, "built:  %s\n", valueOrUnknown(info.BuildDate))
	}
	if !opts.showHash && !opts.showDate {
		fmt.Fprintln(out, "set --hash, --date, or --full for more build trivia")
	}
}

func renderVersionJSON(out io.Writer, info version.Info, opts versionOptions) error {
	payload := versionPayload{
		Tool:    "vecsmith",
		Version: info.Version,
		Tagline: versionTagline,
	}
	if opts.showHash {
		payload.GitCommit = valueOrUnknown(info.GitCommit)
	}
	if opts.showDate {
		payload.BuildDate = valueOrUnknown(info.BuildDate)
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}

func valueOrUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
