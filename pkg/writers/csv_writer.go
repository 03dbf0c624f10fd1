package writers

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"

	"github.com/TFMV/scrub/pkg/table"
)

// CSVWriter writes delimited text files with a header row.
type CSVWriter struct {
	file  *os.File
	comma rune
}

// NewCSVWriter creates a writer for a CSV or TSV file. The delimiter
// defaults to comma for type "csv" and tab for type "tsv".
func NewCSVWriter(config Config) (Writer, error) {
	if config.Path == "" {
		return nil, errors.New("path is required for CSV writer")
	}
	comma := config.Delimiter
	if comma == 0 {
		comma = ','
		if config.Type == "tsv" {
			comma = '\t'
		}
	}
	file, err := os.Create(config.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	return &CSVWriter{file: file, comma: comma}, nil
}

// Write writes the header row followed by every table row.
func (w *CSVWriter) Write(ctx context.Context, t *table.Table) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	cw := csv.NewWriter(w.file)
	cw.Comma = w.comma
	if err := cw.Write(t.Columns()); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	cols := t.Columns()
	for i := 0; i < t.NumRows(); i++ {
		cells := make([]string, len(cols))
		for j, c := range cols {
			cells[j], _ = t.Value(i, c)
		}
		if err := cw.Write(cells); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Close closes the underlying file.
func (w *CSVWriter) Close() error {
	if w.file == nil {
		return nil
	}
	err := w.file.Close()
	w.file = nil
	return err
}
