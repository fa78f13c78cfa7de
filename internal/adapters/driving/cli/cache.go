package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var cacheTopN int

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Cache maintenance",
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show cache diagnostics",
	RunE:  runCacheStats,
}

var cacheSweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Remove expired cache entries",
	RunE:  runCacheSweep,
}

func init() {
	cacheStatsCmd.Flags().IntVar(&cacheTopN, "top", 5, "how many most-accessed entries to list")
	cacheCmd.AddCommand(cacheStatsCmd, cacheSweepCmd)
	rootCmd.AddCommand(cacheCmd)
}

func runCacheStats(cmd *cobra.Command, _ []string) error {
	if err := initRetrieval(); err != nil {
		return err
	}

	stats, err := retrievalService.CacheStats(cmd.Context(), cacheTopN)
	if err != nil {
		return fmt.Errorf("reading cache stats: %w", err)
	}

	cmd.Printf("live entries:    %d\n", stats.Entries)
	cmd.Printf("expired entries: %d\n", stats.Expired)
	if len(stats.MostAccessed) > 0 {
		cmd.Println("\nmost accessed:")
		for _, entry := range stats.MostAccessed {
			cmd.Printf("  %4d  %s  (expires %s)\n",
				entry.HitCount, entry.Key, entry.ExpiresAt.Format(time.RFC3339))
		}
	}
	return nil
}

func runCacheSweep(cmd *cobra.Command, _ []string) error {
	if err := initRetrieval(); err != nil {
		return err
	}

	n, err := store.CacheStore().Sweep(cmd.Context())
	if err != nil {
		return fmt.Errorf("sweeping cache: %w", err)
	}
	cmd.Printf("removed %d expired entries\n", n)
	return nil
}
