package main

import (
	"context"
	"fmt"

	"github.com/TFMV/scrub/pkg/aggregate"
	"github.com/TFMV/scrub/pkg/readers"
	"github.com/TFMV/scrub/pkg/writers"
	"github.com/spf13/cobra"
)

// AggregateOptions represents the options for the aggregate command.
type AggregateOptions struct {
	GroupBy    []string
	Sum        []string
	Mean       []string
	Count      []string
	OutputPath string
}

// newAggregateCommand creates the aggregate command.
func newAggregateCommand() *cobra.Command {
	options := &AggregateOptions{}

	cmd := &cobra.Command{
		Use:   "aggregate [flags] INPUT",
		Short: "Group rows and compute per-group sums, means, or counts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAggregate(cmd.Context(), options, args[0])
		},
	}

	cmd.Flags().StringSliceVarP(&options.GroupBy, "group-by", "g", nil, "Columns to group on")
	cmd.Flags().StringSliceVar(&options.Sum, "sum", nil, "Columns to sum per group")
	cmd.Flags().StringSliceVar(&options.Mean, "mean", nil, "Columns to average per group")
	cmd.Flags().StringSliceVar(&options.Count, "count", nil, "Columns to count per group")
	cmd.Flags().StringVarP(&options.OutputPath, "output", "o", "", "Output path for the aggregated table")
	_ = cmd.MarkFlagRequired("group-by")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

func runAggregate(ctx context.Context, options *AggregateOptions, path string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	spec := aggregate.Spec{}
	for _, c := range options.Sum {
		spec[c] = aggregate.Sum
	}
	for _, c := range options.Mean {
		spec[c] = aggregate.Mean
	}
	for _, c := range options.Count {
		spec[c] = aggregate.Count
	}

	t, err := readers.Load(ctx, path)
	if err != nil {
		return fmt.Errorf("failed to load table: %w", err)
	}
	result, err := aggregate.GroupBy(t, options.GroupBy, spec)
	if err != nil {
		return err
	}
	fmt.Printf("%d rows grouped into %d\n", t.NumRows(), result.NumRows())
	return writers.Save(ctx, result, options.OutputPath)
}
