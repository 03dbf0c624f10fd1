package main

import (
	"context"
	"fmt"

	"github.com/TFMV/scrub/pkg/dedupe"
	"github.com/TFMV/scrub/pkg/keys"
	"github.com/TFMV/scrub/pkg/readers"
	"github.com/TFMV/scrub/pkg/writers"
	"github.com/spf13/cobra"
)

// DuplicatesOptions represents the options for the duplicates command.
type DuplicatesOptions struct {
	KeyColumn  string
	Normalize  bool
	Delimiter  string
	OutputPath string
}

// newDuplicatesCommand creates the duplicates command.
func newDuplicatesCommand() *cobra.Command {
	options := &DuplicatesOptions{Normalize: true}

	cmd := &cobra.Command{
		Use:   "duplicates [flags] INPUT",
		Short: "Find rows whose keys collide after leaf normalization",
		Long: `The duplicates command indexes a table on its key column, reduces
composite keys to their leaf segment, and reports every row whose key is
shared with another row. Each reported row carries an original_index
column pointing back into the source table.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDuplicates(cmd.Context(), options, args[0])
		},
	}

	cmd.Flags().StringVarP(&options.KeyColumn, "key", "k", "", "Key column to index on")
	cmd.Flags().BoolVar(&options.Normalize, "normalize", options.Normalize, "Reduce composite keys to their leaf segment")
	cmd.Flags().StringVar(&options.Delimiter, "delimiter", "", "Composite key delimiter (default \":\")")
	cmd.Flags().StringVarP(&options.OutputPath, "output", "o", "", "Output path for the duplicate rows")
	_ = cmd.MarkFlagRequired("key")

	return cmd
}

func runDuplicates(ctx context.Context, options *DuplicatesOptions, path string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	t, err := readers.Load(ctx, path)
	if err != nil {
		return fmt.Errorf("failed to load table: %w", err)
	}
	ix, err := keys.NewIndex(t, options.KeyColumn, keys.IndexOptions{
		Normalize: options.Normalize,
		Delimiter: options.Delimiter,
	})
	if err != nil {
		return err
	}
	dups, err := dedupe.Duplicates(t, ix)
	if err != nil {
		return err
	}
	fmt.Printf("%d of %d rows share a key\n", dups.NumRows(), t.NumRows())
	if options.OutputPath != "" {
		return writers.Save(ctx, dups, options.OutputPath)
	}
	return nil
}
