// Package writers persists tables to the supported export formats: CSV,
// TSV, Excel workbooks, Parquet, and Arrow IPC files.
package writers

import (
	"context"
	"fmt"

	"github.com/TFMV/scrub/pkg/readers"
	"github.com/TFMV/scrub/pkg/table"
)

// Config selects and parameterizes a writer.
type Config struct {
	// Type is the format name: csv, tsv, xlsx, parquet, arrow.
	Type string
	// Path to the output file, created or truncated.
	Path string
	// Delimiter overrides the field separator for delimited formats.
	Delimiter rune
	// Sheet names the Excel worksheet; "Sheet1" when empty.
	Sheet string
}

// Writer persists a table to a destination file.
type Writer interface {
	// Write persists the table.
	Write(ctx context.Context, t *table.Table) error

	// Close flushes and closes the destination.
	Close() error
}

// Creator builds a writer from its configuration.
type Creator func(config Config) (Writer, error)

// Factory creates writers by registered format name.
type Factory struct {
	writers map[string]Creator
}

// NewFactory creates an empty writer factory.
func NewFactory() *Factory {
	return &Factory{writers: make(map[string]Creator)}
}

// Register registers a creator for a format name.
func (f *Factory) Register(typ string, creator Creator) {
	f.writers[typ] = creator
}

// Create creates a writer for the configured format.
func (f *Factory) Create(config Config) (Writer, error) {
	creator, ok := f.writers[config.Type]
	if !ok {
		return nil, fmt.Errorf("unsupported writer type: %s", config.Type)
	}
	return creator(config)
}

// DefaultFactory is the writer factory with the built-in format types.
var DefaultFactory = NewFactory()

func init() {
	DefaultFactory.Register("csv", NewCSVWriter)
	DefaultFactory.Register("tsv", NewCSVWriter)
	DefaultFactory.Register("xlsx", NewExcelWriter)
	DefaultFactory.Register("parquet", NewParquetWriter)
	DefaultFactory.Register("arrow", NewArrowWriter)
}

// Save writes t to path, detecting the format from the extension, and
// closes the writer.
func Save(ctx context.Context, t *table.Table, path string) error {
	typ := readers.DetectType(path)
	if typ == "" {
		return fmt.Errorf("cannot detect format of %s", path)
	}
	w, err := DefaultFactory.Create(Config{Type: typ, Path: path})
	if err != nil {
		return err
	}
	if err := w.Write(ctx, t); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}
