package readers

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/TFMV/scrub/internal/arrowconv"
	"github.com/TFMV/scrub/pkg/table"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet/file"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"
)

// ParquetReader reads a Parquet file as a table, stringifying all columns.
type ParquetReader struct {
	file        *os.File
	fileReader  *file.Reader
	arrowReader *pqarrow.FileReader
	alloc       memory.Allocator
}

// NewParquetReader creates a new Parquet reader.
func NewParquetReader(config Config) (Reader, error) {
	if config.Path == "" {
		return nil, errors.New("path is required for Parquet reader")
	}
	f, err := os.Open(config.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open Parquet file: %w", err)
	}
	parquetReader, err := file.NewParquetReader(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create Parquet file reader: %w", err)
	}
	alloc := memory.NewGoAllocator()
	arrowReader, err := pqarrow.NewFileReader(parquetReader, pqarrow.ArrowReadProperties{}, alloc)
	if err != nil {
		parquetReader.Close()
		f.Close()
		return nil, fmt.Errorf("failed to create Arrow reader: %w", err)
	}
	return &ParquetReader{file: f, fileReader: parquetReader, arrowReader: arrowReader, alloc: alloc}, nil
}

// Read materializes the whole file.
func (r *ParquetReader) Read(ctx context.Context) (*table.Table, error) {
	at, err := r.arrowReader.ReadTable(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read Parquet table: %w", err)
	}
	defer at.Release()

	cols := make([]string, at.NumCols())
	for i := range cols {
		cols[i] = at.Schema().Field(i).Name
	}
	t, err := table.New(cols)
	if err != nil {
		return nil, err
	}

	reader := array.NewTableReader(at, 0)
	defer reader.Release()
	for reader.Next() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		if err := arrowconv.AppendRecord(t, reader.Record()); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Close closes the reader and the file.
func (r *ParquetReader) Close() error {
	if r.fileReader != nil {
		if err := r.fileReader.Close(); err != nil {
			return err
		}
		r.fileReader = nil
	}
	if r.file != nil {
		err := r.file.Close()
		r.file = nil
		return err
	}
	return nil
}
