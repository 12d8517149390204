package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"vecsmith/internal/gen"
	"vecsmith/internal/observ"
)

func newGenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate one program",
		Long: `Generate one C program from the [generator] settings of vecsmith.toml,
overridden by flags. The program is written to stdout unless -o is given.`,
		Args: cobra.NoArgs,
		RunE: runGen,
	}
	addGeneratorFlags(cmd.Flags())
	cmd.Flags().StringP("output", "o", "", "write the program to this file")
	return cmd
}

func runGen(cmd *cobra.Command, args []string) error {
	m, err := loadManifest(cmd)
	if err != nil {
		return err
	}
	output, _ := cmd.Flags().GetString("output")
	showTimings, _ := cmd.Root().PersistentFlags().GetBool("timings")
	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")

	opts := generatorOptions(m.Config)
	if showTimings {
		opts.Timer = observ.NewTimer()
	}
	return instrumented(cmd, func(ctx context.Context) error {
		prog, err := gen.Generate(ctx, opts)
		if err != nil {
			return err
		}
		if output == "" {
			_, err = fmt.Fprint(cmd.OutOrStdout(), prog.Text)
		} else {
			err = writeProgram(output, prog.Text)
			if err == nil && !quiet {
				fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s (%d vectors, %d views)\n", output, prog.Vectors, prog.Views)
			}
		}
		if err != nil {
			return err
		}
		if opts.Timer != nil {
			printTimings(cmd.ErrOrStderr(), opts.Timer)
		}
		return nil
	})
}

func writeProgram(path, text string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
