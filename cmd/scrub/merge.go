package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/TFMV/scrub/config"
	"github.com/TFMV/scrub/logger"
	"github.com/TFMV/scrub/pkg/merge"
	"github.com/TFMV/scrub/pkg/readers"
	"github.com/TFMV/scrub/pkg/writers"
	"github.com/TFMV/scrub/report"
	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"
)

// MergeOptions represents the options for the merge command.
type MergeOptions struct {
	ConfigPath          string
	BaseKeyColumn       string
	SecondaryKeyColumn  string
	BaseNameColumn      string
	SecondaryNameColumn string
	Fields              []string
	Overwrite           string
	Delimiter           string
	OutputPath          string
	ReportPath          string
	ReportFormat        string
}

// newMergeCommand creates the merge command.
func newMergeCommand() *cobra.Command {
	options := &MergeOptions{
		Overwrite:    string(merge.NeverOverwrite),
		ReportFormat: "text",
	}

	cmd := &cobra.Command{
		Use:   "merge [flags] BASE SECONDARY",
		Short: "Enrich a base table with fields from a secondary table",
		Long: `The merge command joins a secondary table into a base table through
leaf-normalized keys and copies the named fields under the chosen
overwrite policy. Every value update, duplicate key, and unmatched key
is written to the audit log.`,
		Args: cobra.RangeArgs(0, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if options.ConfigPath != "" {
				cfg, err := config.LoadConfig(options.ConfigPath)
				if err != nil {
					return err
				}
				if err := cfg.Validate(); err != nil {
					return err
				}
				if cfg.Merge == nil {
					return fmt.Errorf("config %s has no merge section", options.ConfigPath)
				}
				applyMergeConfig(options, cfg.Merge, &args)
			}
			if len(args) != 2 {
				return fmt.Errorf("merge requires BASE and SECONDARY paths")
			}
			return runMerge(cmd.Context(), options, args[0], args[1])
		},
	}

	cmd.Flags().StringVarP(&options.ConfigPath, "config", "c", "", "Job config file (YAML)")
	cmd.Flags().StringVar(&options.BaseKeyColumn, "base-key", "", "Key column in the base table")
	cmd.Flags().StringVar(&options.SecondaryKeyColumn, "secondary-key", "", "Key column in the secondary table")
	cmd.Flags().StringVar(&options.BaseNameColumn, "base-name", "", "Display-name column in the base table (audit only)")
	cmd.Flags().StringVar(&options.SecondaryNameColumn, "secondary-name", "", "Display-name column in the secondary table (audit only)")
	cmd.Flags().StringSliceVarP(&options.Fields, "fields", "f", nil, "Fields to copy from the secondary table")
	cmd.Flags().StringVar(&options.Overwrite, "overwrite", options.Overwrite, "Overwrite policy (never, if-different)")
	cmd.Flags().StringVar(&options.Delimiter, "delimiter", "", "Composite key delimiter (default \":\")")
	cmd.Flags().StringVarP(&options.OutputPath, "output", "o", "", "Output path for the enriched base table")
	cmd.Flags().StringVar(&options.ReportPath, "report", "", "Write a run report to this path")
	cmd.Flags().StringVar(&options.ReportFormat, "report-format", options.ReportFormat, "Report format (text, json)")

	return cmd
}

func applyMergeConfig(options *MergeOptions, mc *config.MergeConfig, args *[]string) {
	if len(*args) == 0 {
		*args = []string{mc.BasePath, mc.SecondaryPath}
	}
	if options.BaseKeyColumn == "" {
		options.BaseKeyColumn = mc.BaseKeyColumn
	}
	if options.SecondaryKeyColumn == "" {
		options.SecondaryKeyColumn = mc.SecondaryKeyColumn
	}
	if options.BaseNameColumn == "" {
		options.BaseNameColumn = mc.BaseNameColumn
	}
	if options.SecondaryNameColumn == "" {
		options.SecondaryNameColumn = mc.SecondaryNameColumn
	}
	if len(options.Fields) == 0 {
		options.Fields = mc.FieldsToCopy
	}
	if mc.Overwrite != "" {
		options.Overwrite = mc.Overwrite
	}
	if options.Delimiter == "" {
		options.Delimiter = mc.Delimiter
	}
	if options.OutputPath == "" {
		options.OutputPath = mc.OutputPath
	}
}

func runMerge(ctx context.Context, options *MergeOptions, basePath, secondaryPath string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	policy, err := merge.ParsePolicy(options.Overwrite)
	if err != nil {
		return err
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " Merging..."
	s.Start()
	defer s.Stop()

	base, err := readers.Load(ctx, basePath)
	if err != nil {
		return fmt.Errorf("failed to load base table: %w", err)
	}
	secondary, err := readers.Load(ctx, secondaryPath)
	if err != nil {
		return fmt.Errorf("failed to load secondary table: %w", err)
	}

	start := time.Now()
	stats, err := merge.Merge(base, secondary, merge.Options{
		BaseKeyColumn:       options.BaseKeyColumn,
		SecondaryKeyColumn:  options.SecondaryKeyColumn,
		BaseNameColumn:      options.BaseNameColumn,
		SecondaryNameColumn: options.SecondaryNameColumn,
		FieldsToCopy:        options.Fields,
		Policy:              policy,
		Delimiter:           options.Delimiter,
		Audit:               merge.ZapAuditor{Log: logger.GetLogger()},
	})
	if err != nil {
		return err
	}
	duration := time.Since(start)

	outPath := options.OutputPath
	if outPath == "" {
		outPath = basePath
	}
	if err := writers.Save(ctx, base, outPath); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	s.Stop()

	rep := report.MergeReport{
		BasePath:      basePath,
		SecondaryPath: secondaryPath,
		OutputPath:    outPath,
		KeyColumn:     options.BaseKeyColumn,
		FieldsCopied:  options.Fields,
		Policy:        string(policy),
		BaseRows:      base.NumRows(),
		SecondaryRows: secondary.NumRows(),
		Stats:         stats,
		StartTime:     start,
		Duration:      duration,
	}
	var gen report.Generator = report.TextGenerator{}
	if options.ReportFormat == "json" {
		gen = report.JSONGenerator{}
	}
	if options.ReportPath != "" {
		if err := report.Save(gen, rep, options.ReportPath); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
	}
	out, err := (report.TextGenerator{}).Generate(rep)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(out)
	return err
}
