package writers

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/TFMV/scrub/pkg/readers"
	"github.com/TFMV/scrub/pkg/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample(t *testing.T) *table.Table {
	t.Helper()
	tab, err := table.New([]string{"Item", "Class", "Qty"})
	require.NoError(t, err)
	rows := [][]string{
		{"Retinol Serum", "Retail:Skincare", "2"},
		{"Lotion, 8 oz", "Retail", "5"},
		{"Cleanser", "Sample", "1"},
	}
	for _, r := range rows {
		require.NoError(t, tab.Append(r))
	}
	return tab
}

func TestRoundTrip(t *testing.T) {
	for _, name := range []string{"out.csv", "out.tsv", "out.xlsx", "out.parquet", "out.arrow"} {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			want := sample(t)
			path := filepath.Join(t.TempDir(), name)

			require.NoError(t, Save(ctx, want, path))

			got, err := readers.Load(ctx, path)
			require.NoError(t, err)
			assert.Equal(t, want.Columns(), got.Columns())
			require.Equal(t, want.NumRows(), got.NumRows())
			for i := 0; i < want.NumRows(); i++ {
				for _, c := range want.Columns() {
					wv, _ := want.Value(i, c)
					gv, _ := got.Value(i, c)
					assert.Equal(t, wv, gv, "row %d column %s", i, c)
				}
			}
		})
	}
}

func TestSaveUnknownExtension(t *testing.T) {
	err := Save(context.Background(), sample(t), "out.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot detect format")
}

func TestFactoryUnknownType(t *testing.T) {
	_, err := DefaultFactory.Create(Config{Type: "dbf", Path: "x.dbf"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported writer type")
}

func TestExcelWriterNamedSheet(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "named.xlsx")

	w, err := DefaultFactory.Create(Config{Type: "xlsx", Path: path, Sheet: "Inventory"})
	require.NoError(t, err)
	require.NoError(t, w.Write(ctx, sample(t)))
	require.NoError(t, w.Close())

	r, err := readers.DefaultFactory.Create(readers.Config{Type: "xlsx", Path: path, Sheet: "Inventory"})
	require.NoError(t, err)
	defer r.Close()
	got, err := r.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, got.NumRows())
}

func TestCSVWriterMissingPath(t *testing.T) {
	_, err := NewCSVWriter(Config{Type: "csv"})
	assert.Error(t, err)
}
