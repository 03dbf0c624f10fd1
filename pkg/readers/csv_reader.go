package readers

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/TFMV/scrub/pkg/table"
)

// CSVReader reads delimited text files with a header row. Values stay
// strings; the table model does no type inference.
type CSVReader struct {
	file  *os.File
	comma rune
}

// NewCSVReader creates a reader for a CSV or TSV file. The delimiter
// defaults to comma for type "csv" and tab for type "tsv".
func NewCSVReader(config Config) (Reader, error) {
	if config.Path == "" {
		return nil, errors.New("path is required for CSV reader")
	}
	comma := config.Delimiter
	if comma == 0 {
		comma = ','
		if config.Type == "tsv" {
			comma = '\t'
		}
	}
	file, err := os.Open(config.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return &CSVReader{file: file, comma: comma}, nil
}

// Read materializes the whole file. The first record is the header; later
// short records are padded with empty cells so every row fits the schema.
func (r *CSVReader) Read(ctx context.Context) (*table.Table, error) {
	cr := csv.NewReader(r.file)
	cr.Comma = r.comma
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return table.New(nil)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	t, err := table.New(header)
	if err != nil {
		return nil, err
	}

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		rec, err := cr.Read()
		if err == io.EOF {
			return t, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row: %w", err)
		}
		if len(rec) < len(header) {
			padded := make([]string, len(header))
			copy(padded, rec)
			rec = padded
		} else if len(rec) > len(header) {
			rec = rec[:len(header)]
		}
		if err := t.Append(rec); err != nil {
			return nil, err
		}
	}
}

// Close closes the underlying file.
func (r *CSVReader) Close() error {
	if r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	return err
}
