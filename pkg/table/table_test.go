package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsDuplicateColumns(t *testing.T) {
	_, err := New([]string{"a", "b", "a"})
	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, "a", schemaErr.Column)
}

func TestAppendAndValue(t *testing.T) {
	tab := MustNew([]string{"Item", "Account"})
	require.NoError(t, tab.Append([]string{"sku1", "A100"}))
	require.NoError(t, tab.AppendMap(map[string]string{"Item": "sku2"}))

	v, err := tab.Value(0, "Account")
	require.NoError(t, err)
	assert.Equal(t, "A100", v)

	v, err = tab.Value(1, "Account")
	require.NoError(t, err)
	assert.Equal(t, "", v)

	_, err = tab.Value(0, "Missing")
	var schemaErr *SchemaError
	assert.ErrorAs(t, err, &schemaErr)

	_, err = tab.Value(5, "Item")
	assert.Error(t, err)

	err = tab.Append([]string{"too", "many", "cells"})
	assert.ErrorAs(t, err, &schemaErr)

	err = tab.AppendMap(map[string]string{"Nope": "x"})
	assert.ErrorAs(t, err, &schemaErr)
}

func TestAddColumn(t *testing.T) {
	tab := MustNew([]string{"Item"})
	require.NoError(t, tab.Append([]string{"sku1"}))

	tab.AddColumn("Account", "")
	assert.Equal(t, []string{"Item", "Account"}, tab.Columns())
	v, err := tab.Value(0, "Account")
	require.NoError(t, err)
	assert.Equal(t, "", v)

	// Re-adding an existing column leaves values alone.
	require.NoError(t, tab.Set(0, "Account", "A100"))
	tab.AddColumn("Account", "")
	v, _ = tab.Value(0, "Account")
	assert.Equal(t, "A100", v)
}

func TestReorder(t *testing.T) {
	tab := MustNew([]string{"a", "b", "c", "d"})
	require.NoError(t, tab.Append([]string{"1", "2", "3", "4"}))

	require.NoError(t, tab.Reorder([]string{"c", "a"}, false))
	assert.Equal(t, []string{"c", "a", "b", "d"}, tab.Columns())
	v, _ := tab.Value(0, "c")
	assert.Equal(t, "3", v)
	v, _ = tab.Value(0, "d")
	assert.Equal(t, "4", v)

	require.NoError(t, tab.Reorder([]string{"c"}, true))
	assert.Equal(t, []string{"a", "b", "d", "c"}, tab.Columns())

	err := tab.Reorder([]string{"nope"}, false)
	var schemaErr *SchemaError
	assert.ErrorAs(t, err, &schemaErr)
}

func TestCloneIsIndependent(t *testing.T) {
	tab := MustNew([]string{"Item"})
	require.NoError(t, tab.Append([]string{"sku1"}))

	clone := tab.Clone()
	require.NoError(t, clone.Set(0, "Item", "changed"))

	v, _ := tab.Value(0, "Item")
	assert.Equal(t, "sku1", v)
}

func TestRowView(t *testing.T) {
	tab := MustNew([]string{"Item", "Name"})
	require.NoError(t, tab.Append([]string{"sku1", "Widget"}))

	row := tab.Row(0)
	assert.Equal(t, 0, row.Position())
	v, err := row.Get("Name")
	require.NoError(t, err)
	assert.Equal(t, "Widget", v)
	assert.Equal(t, "", row.GetDefault("Missing"))

	// The view tracks later writes.
	require.NoError(t, tab.Set(0, "Name", "Gadget"))
	assert.Equal(t, "Gadget", row.GetDefault("Name"))
}

func TestAppendRowFrom(t *testing.T) {
	src := MustNew([]string{"Item", "Extra"})
	require.NoError(t, src.Append([]string{"sku1", "x"}))

	dst := MustNew([]string{"Item", "Account"})
	dst.AppendRowFrom(src, 0)

	require.Equal(t, 1, dst.NumRows())
	v, _ := dst.Value(0, "Item")
	assert.Equal(t, "sku1", v)
	v, _ = dst.Value(0, "Account")
	assert.Equal(t, "", v)
}
