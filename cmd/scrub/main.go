// Package main provides the entry point for the scrub cleaning toolkit.
package main

import (
	"fmt"
	"os"

	"github.com/TFMV/scrub/logger"
	"github.com/TFMV/scrub/version"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "scrub",
		Short: "scrub cleans tabular exports from accounting and inventory software",
		Long: `scrub normalizes, deduplicates, filters, and enriches row-oriented
tabular data (CSV, TSV, Excel, Parquet, Arrow). Its centerpiece is a
conflict-aware merge that joins two tables through hierarchical,
colon-delimited keys and copies fields under an explicit overwrite policy.`,
	}

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number of scrub",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("scrub v%s (%s)\n", version.Version, version.BuildDate)
		},
	})

	rootCmd.AddCommand(newMergeCommand())
	rootCmd.AddCommand(newDuplicatesCommand())
	rootCmd.AddCommand(newFilterCommand())
	rootCmd.AddCommand(newAggregateCommand())
	rootCmd.AddCommand(newConvertCommand())
	rootCmd.AddCommand(newServeCommand())

	defer logger.Sync()
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
