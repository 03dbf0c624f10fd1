// Package readers materializes tables from the supported export formats:
// CSV, TSV, Excel workbooks, Parquet, and Arrow IPC files.
package readers

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/TFMV/scrub/pkg/table"
)

// Config selects and parameterizes a reader.
type Config struct {
	// Type is the format name: csv, tsv, xlsx, parquet, arrow.
	Type string
	// Path to the input file.
	Path string
	// Delimiter overrides the field separator for delimited formats.
	Delimiter rune
	// Sheet selects an Excel worksheet; the first sheet when empty.
	Sheet string
}

// Reader loads a complete table from a source file.
type Reader interface {
	// Read materializes the file as an in-memory table.
	Read(ctx context.Context) (*table.Table, error)

	// Close releases the underlying file.
	Close() error
}

// Creator builds a reader from its configuration.
type Creator func(config Config) (Reader, error)

// Factory creates readers by registered format name.
type Factory struct {
	readers map[string]Creator
}

// NewFactory creates an empty reader factory.
func NewFactory() *Factory {
	return &Factory{readers: make(map[string]Creator)}
}

// Register registers a creator for a format name.
func (f *Factory) Register(typ string, creator Creator) {
	f.readers[typ] = creator
}

// Create creates a reader for the configured format.
func (f *Factory) Create(config Config) (Reader, error) {
	creator, ok := f.readers[config.Type]
	if !ok {
		return nil, fmt.Errorf("unsupported reader type: %s", config.Type)
	}
	return creator(config)
}

// DefaultFactory is the reader factory with the built-in format types.
var DefaultFactory = NewFactory()

func init() {
	DefaultFactory.Register("csv", NewCSVReader)
	DefaultFactory.Register("tsv", NewCSVReader)
	DefaultFactory.Register("xlsx", NewExcelReader)
	DefaultFactory.Register("parquet", NewParquetReader)
	DefaultFactory.Register("arrow", NewArrowReader)
}

// DetectType infers the format name from a path's extension; "" when the
// extension is not recognized.
func DetectType(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return "csv"
	case ".tsv", ".tab":
		return "tsv"
	case ".xlsx", ".xlsm":
		return "xlsx"
	case ".parquet":
		return "parquet"
	case ".arrow", ".ipc", ".feather":
		return "arrow"
	}
	return ""
}

// Load opens, reads, and closes a table from path, detecting the format
// from the extension.
func Load(ctx context.Context, path string) (*table.Table, error) {
	typ := DetectType(path)
	if typ == "" {
		return nil, fmt.Errorf("cannot detect format of %s", path)
	}
	r, err := DefaultFactory.Create(Config{Type: typ, Path: path})
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return r.Read(ctx)
}
