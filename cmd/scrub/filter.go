package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/TFMV/scrub/pkg/filter"
	"github.com/TFMV/scrub/pkg/readers"
	"github.com/TFMV/scrub/pkg/table"
	"github.com/TFMV/scrub/pkg/writers"
	"github.com/spf13/cobra"
)

// FilterOptions represents the options for the filter command.
type FilterOptions struct {
	Keep          []string
	Discard       []string
	CaseSensitive bool
	DateColumn    string
	From          string
	To            string
	EmptyFields   []string
	OutputPath    string
}

// newFilterCommand creates the filter command.
func newFilterCommand() *cobra.Command {
	options := &FilterOptions{}

	cmd := &cobra.Command{
		Use:   "filter [flags] INPUT",
		Short: "Filter rows by text patterns, date range, or empty fields",
		Long: `The filter command keeps rows matching the --keep patterns, drops rows
matching the --discard patterns (discard wins), and can further restrict
a date column to an inclusive mm/dd/yyyy range or extract rows missing
values in required fields. Pattern flags take the form COLUMN=pat1,pat2.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFilter(cmd.Context(), options, args[0])
		},
	}

	cmd.Flags().StringArrayVar(&options.Keep, "keep", nil, "Keep rows where COLUMN matches any pattern (COLUMN=pat1,pat2)")
	cmd.Flags().StringArrayVar(&options.Discard, "discard", nil, "Discard rows where COLUMN matches any pattern (COLUMN=pat1,pat2)")
	cmd.Flags().BoolVar(&options.CaseSensitive, "case-sensitive", false, "Match patterns case-sensitively")
	cmd.Flags().StringVar(&options.DateColumn, "date-col", "", "Date column for range filtering")
	cmd.Flags().StringVar(&options.From, "from", "", "Range start, mm/dd/yyyy inclusive")
	cmd.Flags().StringVar(&options.To, "to", "", "Range end, mm/dd/yyyy inclusive")
	cmd.Flags().StringSliceVar(&options.EmptyFields, "empty-fields", nil, "Instead, extract rows with an empty value in any of these fields")
	cmd.Flags().StringVarP(&options.OutputPath, "output", "o", "", "Output path for the filtered table")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

// parsePatternSpecs parses repeated COLUMN=pat1,pat2 flags.
func parsePatternSpecs(specs []string) (map[string][]string, error) {
	if len(specs) == 0 {
		return nil, nil
	}
	out := make(map[string][]string, len(specs))
	for _, s := range specs {
		col, pats, ok := strings.Cut(s, "=")
		if !ok || col == "" {
			return nil, fmt.Errorf("bad pattern spec %q, want COLUMN=pat1,pat2", s)
		}
		out[col] = append(out[col], strings.Split(pats, ",")...)
	}
	return out, nil
}

func runFilter(ctx context.Context, options *FilterOptions, path string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	t, err := readers.Load(ctx, path)
	if err != nil {
		return fmt.Errorf("failed to load table: %w", err)
	}
	in := t.NumRows()

	var result *table.Table
	if len(options.EmptyFields) > 0 {
		result, err = filter.EmptyFields(t, options.EmptyFields)
		if err != nil {
			return err
		}
	} else {
		keep, err := parsePatternSpecs(options.Keep)
		if err != nil {
			return err
		}
		discard, err := parsePatternSpecs(options.Discard)
		if err != nil {
			return err
		}
		result = t
		if len(keep) > 0 || len(discard) > 0 {
			result, err = filter.ByText(result, keep, discard, options.CaseSensitive)
			if err != nil {
				return err
			}
		}
		if options.DateColumn != "" {
			result, err = filter.ByDateRange(result, options.DateColumn, options.From, options.To)
			if err != nil {
				return err
			}
		}
	}

	fmt.Printf("%d of %d rows kept\n", result.NumRows(), in)
	return writers.Save(ctx, result, options.OutputPath)
}
