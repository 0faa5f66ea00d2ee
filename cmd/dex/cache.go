package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ersonp/dex-core/internal/infrastructure/storage/sqlite"
)

func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the response cache",
	}

	cmd.AddCommand(newCacheClearCmd())
	cmd.AddCommand(newCacheStatsCmd())

	return cmd
}

func newCacheClearCmd() *cobra.Command {
	var expired bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove cached provider responses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			return withStore(ctx, func(store *sqlite.Repository) error {
				cache := store.ResponseCache()

				if expired {
					n, err := cache.PurgeExpired(ctx, currentConfig().Cache.TTL)
					if err != nil {
						return fmt.Errorf("purging expired entries: %w", err)
					}
					fmt.Printf("Removed %d expired entries\n", n)
					return nil
				}

				if err := cache.Purge(ctx); err != nil {
					return fmt.Errorf("purging cache: %w", err)
				}
				fmt.Println("Cache cleared")
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&expired, "expired", false, "Only remove entries older than the cache ttl")

	return cmd
}

func newCacheStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show cache size",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			return withStore(ctx, func(store *sqlite.Repository) error {
				n, err := store.ResponseCache().Count(ctx)
				if err != nil {
					return fmt.Errorf("counting cache entries: %w", err)
				}
				fmt.Printf("%d cached responses in %s\n", n, store.Path())
				return nil
			})
		},
	}
}
