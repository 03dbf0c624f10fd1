package readers

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/TFMV/scrub/internal/arrowconv"
	"github.com/TFMV/scrub/pkg/table"
	"github.com/apache/arrow-go/v18/arrow/ipc"
)

// ArrowReader reads Arrow IPC files as tables.
type ArrowReader struct {
	file   *os.File
	reader *ipc.FileReader
}

// NewArrowReader creates a new Arrow IPC reader.
func NewArrowReader(config Config) (Reader, error) {
	if config.Path == "" {
		return nil, errors.New("path is required for Arrow reader")
	}
	f, err := os.Open(config.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open Arrow file: %w", err)
	}
	reader, err := ipc.NewFileReader(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create Arrow file reader: %w", err)
	}
	return &ArrowReader{file: f, reader: reader}, nil
}

// Read materializes every record batch of the file.
func (r *ArrowReader) Read(ctx context.Context) (*table.Table, error) {
	schema := r.reader.Schema()
	cols := make([]string, schema.NumFields())
	for i := range cols {
		cols[i] = schema.Field(i).Name
	}
	t, err := table.New(cols)
	if err != nil {
		return nil, err
	}
	for i := 0; i < r.reader.NumRecords(); i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		rec, err := r.reader.Record(i)
		if err != nil {
			return nil, fmt.Errorf("failed to read record %d: %w", i, err)
		}
		if err := arrowconv.AppendRecord(t, rec); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Close closes the reader and the file.
func (r *ArrowReader) Close() error {
	if r.reader != nil {
		if err := r.reader.Close(); err != nil {
			return err
		}
		r.reader = nil
	}
	if r.file != nil {
		err := r.file.Close()
		r.file = nil
		return err
	}
	return nil
}
