// Package arrowconv bridges the string-typed table model and Arrow records.
// Tables cross into Arrow as all-utf8 record batches; incoming records are
// stringified column by column, with nulls becoming empty cells.
package arrowconv

import (
	"fmt"

	"github.com/TFMV/scrub/pkg/table"
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
)

// ToRecord builds an all-utf8 Arrow record from t. The caller owns the
// returned record and must Release it.
func ToRecord(t *table.Table, alloc memory.Allocator) arrow.Record {
	if alloc == nil {
		alloc = memory.NewGoAllocator()
	}
	cols := t.Columns()
	fields := make([]arrow.Field, len(cols))
	for i, c := range cols {
		fields[i] = arrow.Field{Name: c, Type: arrow.BinaryTypes.String}
	}
	schema := arrow.NewSchema(fields, nil)

	builder := array.NewRecordBuilder(alloc, schema)
	defer builder.Release()
	for i := 0; i < t.NumRows(); i++ {
		for j, c := range cols {
			v, _ := t.Value(i, c)
			builder.Field(j).(*array.StringBuilder).Append(v)
		}
	}
	return builder.NewRecord()
}

// FromRecord converts an Arrow record into a new table, stringifying every
// column. Null cells become empty strings.
func FromRecord(rec arrow.Record) (*table.Table, error) {
	cols := make([]string, rec.NumCols())
	for i := range cols {
		cols[i] = rec.ColumnName(i)
	}
	t, err := table.New(cols)
	if err != nil {
		return nil, err
	}
	if err := AppendRecord(t, rec); err != nil {
		return nil, err
	}
	return t, nil
}

// AppendRecord appends every row of rec to t. The record's column names
// must match t's schema positionally.
func AppendRecord(t *table.Table, rec arrow.Record) error {
	cols := t.Columns()
	if int(rec.NumCols()) != len(cols) {
		return fmt.Errorf("record has %d columns, table has %d", rec.NumCols(), len(cols))
	}
	for i := 0; i < int(rec.NumRows()); i++ {
		cells := make([]string, len(cols))
		for j := 0; j < int(rec.NumCols()); j++ {
			col := rec.Column(j)
			if col.IsNull(i) {
				continue
			}
			cells[j] = col.ValueStr(i)
		}
		if err := t.Append(cells); err != nil {
			return err
		}
	}
	return nil
}
