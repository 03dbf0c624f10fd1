package main

import (
	"context"
	"fmt"
	"time"

	"github.com/TFMV/scrub/pkg/readers"
	"github.com/TFMV/scrub/pkg/writers"
	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"
)

// newConvertCommand creates the convert command.
func newConvertCommand() *cobra.Command {
	var sheet string

	cmd := &cobra.Command{
		Use:   "convert INPUT OUTPUT",
		Short: "Convert a table between CSV, TSV, Excel, Parquet, and Arrow",
		Long: `The convert command reads INPUT and writes it as OUTPUT, with both
formats detected from the file extensions.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd.Context(), args[0], args[1], sheet)
		},
	}

	cmd.Flags().StringVar(&sheet, "sheet", "", "Excel worksheet to read (first sheet when empty)")

	return cmd
}

func runConvert(ctx context.Context, inPath, outPath, sheet string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	inType := readers.DetectType(inPath)
	if inType == "" {
		return fmt.Errorf("cannot detect format of %s", inPath)
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " Converting..."
	s.Start()
	defer s.Stop()

	r, err := readers.DefaultFactory.Create(readers.Config{Type: inType, Path: inPath, Sheet: sheet})
	if err != nil {
		return err
	}
	defer r.Close()
	t, err := r.Read(ctx)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", inPath, err)
	}
	if err := writers.Save(ctx, t, outPath); err != nil {
		return fmt.Errorf("failed to write %s: %w", outPath, err)
	}
	s.Stop()
	fmt.Printf("wrote %d rows to %s\n", t.NumRows(), outPath)
	return nil
}
