package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/lesson-forge/internal/repositories/scriptcache"
)

var cacheFlags struct {
	expired bool
}

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Script cache commands",
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove cached scripts",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp(cmd.Context(), appOptions{cacheOnly: true})
		if err != nil {
			return err
		}
		defer a.close()

		remove := a.cache.Clear
		if cacheFlags.expired {
			remove = a.cache.ClearExpired
		}
		out, err := remove(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Removed %d cached scripts\n", out.Removed)
		return nil
	},
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Count cached scripts",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp(cmd.Context(), appOptions{cacheOnly: true})
		if err != nil {
			return err
		}
		defer a.close()

		stats, err := a.cache.Stats(cmd.Context())
		if err != nil {
			return err
		}

		printStats(cmd.OutOrStdout(), stats)
		return nil
	},
}

func init() {
	cacheClearCmd.Flags().BoolVar(&cacheFlags.expired, "expired", false, "only remove entries older than the TTL")

	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheStatsCmd)
}

func printStats(w io.Writer, stats *scriptcache.StatsOutput) {
	subjects := "-"
	if len(stats.Subjects) > 0 {
		subjects = strings.Join(stats.Subjects, ", ")
	}

	fmt.Fprintf(w, "Total:    %d\n", stats.Total)
	fmt.Fprintf(w, "Active:   %d\n", stats.Active)
	fmt.Fprintf(w, "Expired:  %d\n", stats.Expired)
	fmt.Fprintf(w, "Subjects: %s\n", subjects)
}
