package dedupe

import (
	"testing"

	"github.com/TFMV/scrub/pkg/keys"
	"github.com/TFMV/scrub/pkg/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func itemTable(t *testing.T, items ...string) *table.Table {
	t.Helper()
	tab, err := table.New([]string{"Item", "Description"})
	require.NoError(t, err)
	for _, k := range items {
		require.NoError(t, tab.Append([]string{k, "desc"}))
	}
	return tab
}

func TestDuplicatesFindsCollidingRows(t *testing.T) {
	tab := itemTable(t, "a:sku1", "sku2", "b:sku1", "sku3")

	ix, err := keys.NewIndex(tab, "Item", keys.IndexOptions{Normalize: true})
	require.NoError(t, err)
	dups, err := Duplicates(tab, ix)
	require.NoError(t, err)

	require.Equal(t, 2, dups.NumRows())
	assert.Equal(t, []string{"Item", "Description", OriginalIndexColumn}, dups.Columns())

	item, _ := dups.Value(0, "Item")
	assert.Equal(t, "a:sku1", item)
	orig, _ := dups.Value(0, OriginalIndexColumn)
	assert.Equal(t, "0", orig)

	item, _ = dups.Value(1, "Item")
	assert.Equal(t, "b:sku1", item)
	orig, _ = dups.Value(1, OriginalIndexColumn)
	assert.Equal(t, "2", orig)
}

func TestDuplicatesPreservesOriginalOrder(t *testing.T) {
	// Bucket order differs from row order; output must follow row order.
	tab := itemTable(t, "y", "x", "y", "x")

	ix, err := keys.NewIndex(tab, "Item", keys.IndexOptions{})
	require.NoError(t, err)
	dups, err := Duplicates(tab, ix)
	require.NoError(t, err)

	require.Equal(t, 4, dups.NumRows())
	for i, want := range []string{"0", "1", "2", "3"} {
		got, _ := dups.Value(i, OriginalIndexColumn)
		assert.Equal(t, want, got)
	}
}

func TestDuplicatesEmptyWhenNoCollisions(t *testing.T) {
	tab := itemTable(t, "a", "b", "c")

	ix, err := keys.NewIndex(tab, "Item", keys.IndexOptions{})
	require.NoError(t, err)
	dups, err := Duplicates(tab, ix)
	require.NoError(t, err)

	assert.Equal(t, 0, dups.NumRows())
}

// Rows that collide only through leaf normalization are not duplicates of
// each other under the raw key, so a second detection pass over the output,
// re-indexed on the raw key column, finds nothing new.
func TestDuplicatesIdempotentUnderDisjointReindex(t *testing.T) {
	tab := itemTable(t, "a:sku1", "b:sku1", "c:sku2", "d:sku2")

	dups, err := PermutedKeyRows(tab, "Item", ":")
	require.NoError(t, err)
	require.Equal(t, 4, dups.NumRows())

	ix, err := keys.NewIndex(dups, "Item", keys.IndexOptions{})
	require.NoError(t, err)
	again, err := Duplicates(dups, ix)
	require.NoError(t, err)
	assert.Equal(t, 0, again.NumRows())
}

func TestPermutedKeyRowsSchemaError(t *testing.T) {
	tab := itemTable(t, "a")
	_, err := PermutedKeyRows(tab, "Nope", ":")
	var schemaErr *table.SchemaError
	require.ErrorAs(t, err, &schemaErr)
}
