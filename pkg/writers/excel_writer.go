package writers

import (
	"context"
	"errors"
	"fmt"

	"github.com/TFMV/scrub/pkg/table"
	"github.com/xuri/excelize/v2"
)

// ExcelWriter writes a table as one worksheet of an xlsx workbook with the
// header row frozen.
type ExcelWriter struct {
	path  string
	sheet string
	book  *excelize.File
}

// NewExcelWriter creates a writer for an xlsx workbook.
func NewExcelWriter(config Config) (Writer, error) {
	if config.Path == "" {
		return nil, errors.New("path is required for Excel writer")
	}
	sheet := config.Sheet
	if sheet == "" {
		sheet = "Sheet1"
	}
	return &ExcelWriter{path: config.Path, sheet: sheet}, nil
}

// Write writes the header and every row, then freezes the header row.
func (w *ExcelWriter) Write(ctx context.Context, t *table.Table) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	book := excelize.NewFile()
	if w.sheet != "Sheet1" {
		if err := book.SetSheetName("Sheet1", w.sheet); err != nil {
			return err
		}
	}

	cols := t.Columns()
	header := make([]interface{}, len(cols))
	for i, c := range cols {
		header[i] = c
	}
	if err := book.SetSheetRow(w.sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i := 0; i < t.NumRows(); i++ {
		cells := make([]interface{}, len(cols))
		for j, c := range cols {
			cells[j], _ = t.Value(i, c)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := book.SetSheetRow(w.sheet, cell, &cells); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i, err)
		}
	}

	if err := book.SetPanes(w.sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return err
	}
	w.book = book
	return nil
}

// Close saves the workbook to disk.
func (w *ExcelWriter) Close() error {
	if w.book == nil {
		return nil
	}
	err := w.book.SaveAs(w.path)
	closeErr := w.book.Close()
	w.book = nil
	if err != nil {
		return err
	}
	return closeErr
}
