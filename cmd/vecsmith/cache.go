package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"vecsmith/internal/driver"
)

func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the corpus cache",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Drop every cached program record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cache, err := driver.OpenDiskCache(cacheApp)
			if err != nil {
				return err
			}
			if err := cache.DropAll(); err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}
			if quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet"); !quiet {
				fmt.Fprintf(cmd.OutOrStdout(), "cleared %s\n", cache.Dir())
			}
			return nil
		},
	})
	return cmd
}
