package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"vecsmith/internal/version"
)

// newRootCmd builds the command tree. Tests build a fresh tree per case.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "vecsmith",
		Short: "Random C program generator for vector types",
		Long: `vecsmith generates random, deterministic C programs that declare vector
variables, read and write their lanes through swizzles, initialise them with
nested vector literals and checksum every lane at exit.`,
		SilenceUsage: true,
		Version:      version.Current().Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return applyColor(cmd)
		},
	}

	root.AddCommand(newGenCmd())
	root.AddCommand(newBatchCmd())
	root.AddCommand(newRuntimeCmd())
	root.AddCommand(newInitCmd())
	root.AddCommand(newCacheCmd())
	root.AddCommand(newVersionCmd())

	// Глобальные флаги
	flags := root.PersistentFlags()
	flags.String("color", "auto", "colorize output (auto|on|off)")
	flags.Bool("quiet", false, "suppress non-essential output")
	flags.Bool("timings", false, "show timing information")
	flags.String("ui", "auto", "progress UI for batch (auto|on|off)")
	flags.String("trace", "", "trace output file (\"-\" for stderr)")
	flags.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	flags.String("trace-mode", "stream", "trace storage (stream|ring|both)")
	flags.String("trace-format", "auto", "trace format (auto|text|ndjson|chrome)")
	flags.Int("trace-ring-size", 4096, "events kept in ring mode")
	flags.Duration("trace-heartbeat", 0, "heartbeat interval (0 disables)")
	flags.String("cpu-profile", "", "write CPU profile to file")
	flags.String("mem-profile", "", "write heap profile to file")
	flags.String("runtime-trace", "", "write Go runtime trace to file")
	return root
}

// main executes the root command and exits with status 1 on error.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func applyColor(cmd *cobra.Command) error {
	mode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return err
	}
	switch mode {
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	case "auto":
		color.NoColor = !isTerminal(os.Stdout)
	default:
		return errUsage("--color", mode, "auto|on|off")
	}
	return nil
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
