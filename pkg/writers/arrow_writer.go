package writers

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/TFMV/scrub/internal/arrowconv"
	"github.com/TFMV/scrub/pkg/table"
	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/apache/arrow-go/v18/arrow/memory"
)

// ArrowWriter writes a table as an Arrow IPC file.
type ArrowWriter struct {
	file   *os.File
	writer *ipc.FileWriter
}

// NewArrowWriter creates a new Arrow IPC writer.
func NewArrowWriter(config Config) (Writer, error) {
	if config.Path == "" {
		return nil, errors.New("path is required for Arrow writer")
	}
	file, err := os.Create(config.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to create Arrow file: %w", err)
	}
	return &ArrowWriter{file: file}, nil
}

// Write writes the table as a single record batch.
func (w *ArrowWriter) Write(ctx context.Context, t *table.Table) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	rec := arrowconv.ToRecord(t, memory.NewGoAllocator())
	defer rec.Release()

	if w.writer == nil {
		writer, err := ipc.NewFileWriter(w.file, ipc.WithSchema(rec.Schema()))
		if err != nil {
			return fmt.Errorf("failed to create Arrow writer: %w", err)
		}
		w.writer = writer
	}
	if err := w.writer.Write(rec); err != nil {
		return fmt.Errorf("failed to write record: %w", err)
	}
	return nil
}

// Close closes the writer and flushes any pending data.
func (w *ArrowWriter) Close() error {
	if w.writer != nil {
		if err := w.writer.Close(); err != nil {
			return err
		}
		w.writer = nil
	}
	if w.file != nil {
		err := w.file.Close()
		w.file = nil
		return err
	}
	return nil
}
