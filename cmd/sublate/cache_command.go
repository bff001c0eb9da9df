package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"sublate/internal/cache"
)

func newCacheCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the translation cache",
	}
	cmd.AddCommand(newCacheStatsCommand(ctx))
	cmd.AddCommand(newCachePurgeCommand(ctx))
	return cmd
}

func newCacheStatsCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show cache size and location",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := requireCache(ctx)
			if err != nil {
				return err
			}
			defer func() {
				_ = store.Close()
			}()

			count, err := store.Count(cmd.Context())
			if err != nil {
				return err
			}

			if jsonOutput {
				return writeJSON(cmd, struct {
					Path    string `json:"path"`
					Entries int64  `json:"entries"`
				}{store.Path(), count})
			}
			rows := [][]string{
				{"Path", store.Path()},
				{"Entries", strconv.FormatInt(count, 10)},
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Field", "Value"}, rows, nil))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit cache stats as JSON")
	return cmd
}

func newCachePurgeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "purge",
		Short: "Delete all cached translations",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := requireCache(ctx)
			if err != nil {
				return err
			}
			defer func() {
				_ = store.Close()
			}()

			count, err := store.Count(cmd.Context())
			if err != nil {
				return err
			}
			if err := store.Purge(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "purged %d cached translations\n", count)
			return nil
		},
	}
}

func requireCache(ctx *commandContext) (*cache.Store, error) {
	store, err := ctx.openCache()
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, fmt.Errorf("translation cache is disabled in configuration")
	}
	return store, nil
}
