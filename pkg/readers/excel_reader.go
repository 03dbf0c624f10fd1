package readers

import (
	"context"
	"errors"
	"fmt"

	"github.com/TFMV/scrub/pkg/table"
	"github.com/xuri/excelize/v2"
)

// ExcelReader reads one worksheet of an xlsx workbook as a table.
type ExcelReader struct {
	book  *excelize.File
	sheet string
}

// NewExcelReader opens an xlsx workbook. With no sheet configured, the
// first sheet is read.
func NewExcelReader(config Config) (Reader, error) {
	if config.Path == "" {
		return nil, errors.New("path is required for Excel reader")
	}
	book, err := excelize.OpenFile(config.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	sheet := config.Sheet
	if sheet == "" {
		sheet = book.GetSheetName(0)
	}
	return &ExcelReader{book: book, sheet: sheet}, nil
}

// Read materializes the sheet. The first row is the header; short rows are
// padded with empty cells.
func (r *ExcelReader) Read(ctx context.Context) (*table.Table, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	rows, err := r.book.GetRows(r.sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", r.sheet, err)
	}
	if len(rows) == 0 {
		return table.New(nil)
	}
	t, err := table.New(rows[0])
	if err != nil {
		return nil, err
	}
	width := len(rows[0])
	for _, row := range rows[1:] {
		if len(row) < width {
			padded := make([]string, width)
			copy(padded, row)
			row = padded
		} else if len(row) > width {
			row = row[:width]
		}
		if err := t.Append(row); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Close closes the workbook.
func (r *ExcelReader) Close() error {
	if r.book == nil {
		return nil
	}
	err := r.book.Close()
	r.book = nil
	return err
}
