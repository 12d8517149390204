package main

import (
	"fmt"

	"github.com/spf13/cobra"

	runtimeembed "vecsmith/runtime"
)

func newRuntimeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runtime",
		Short: "Write the vecsmith.h runtime header",
		Long: `Write vecsmith.h, the header every generated program includes, into the
directory given by -o (default: current directory). Without -o and with
--stdout the header is printed instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("output")
			toStdout, _ := cmd.Flags().GetBool("stdout")
			if toStdout {
				_, err := cmd.OutOrStdout().Write(runtimeembed.Header())
				return err
			}
			path, err := runtimeembed.WriteHeader(dir)
			if err != nil {
				return err
			}
			if quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet"); !quiet {
				fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			}
			return nil
		},
	}
	cmd.Flags().StringP("output", "o", ".", "directory to write the header into")
	cmd.Flags().Bool("stdout", false, "print the header instead of writing it")
	return cmd
}
