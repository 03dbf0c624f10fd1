package writers

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/TFMV/scrub/internal/arrowconv"
	"github.com/TFMV/scrub/pkg/table"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/compress"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"
)

// ParquetWriter writes a table as an all-utf8 Parquet file.
type ParquetWriter struct {
	file   *os.File
	writer *pqarrow.FileWriter
}

// NewParquetWriter creates a new Parquet writer.
func NewParquetWriter(config Config) (Writer, error) {
	if config.Path == "" {
		return nil, errors.New("path is required for Parquet writer")
	}
	file, err := os.Create(config.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to create Parquet file: %w", err)
	}
	return &ParquetWriter{file: file}, nil
}

// Write writes the table as a single record batch with SNAPPY compression.
func (w *ParquetWriter) Write(ctx context.Context, t *table.Table) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	rec := arrowconv.ToRecord(t, memory.NewGoAllocator())
	defer rec.Release()

	if w.writer == nil {
		writeProps := parquet.NewWriterProperties(
			parquet.WithCompression(compress.Codecs.Snappy),
			parquet.WithDictionaryDefault(false),
		)
		writer, err := pqarrow.NewFileWriter(rec.Schema(), w.file, writeProps, pqarrow.NewArrowWriterProperties())
		if err != nil {
			return fmt.Errorf("failed to create Parquet writer: %w", err)
		}
		w.writer = writer
	}
	if err := w.writer.Write(rec); err != nil {
		return fmt.Errorf("failed to write record: %w", err)
	}
	return nil
}

// Close closes the writer and flushes any pending data.
func (w *ParquetWriter) Close() error {
	if w.writer != nil {
		// The parquet writer closes its sink, so the file must not be
		// closed again afterwards.
		if err := w.writer.Close(); err != nil {
			return err
		}
		w.writer = nil
		w.file = nil
		return nil
	}
	if w.file != nil {
		err := w.file.Close()
		w.file = nil
		return err
	}
	return nil
}
