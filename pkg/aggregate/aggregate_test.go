package aggregate

import (
	"testing"

	"github.com/TFMV/scrub/pkg/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func salesTable(t *testing.T) *table.Table {
	t.Helper()
	tab, err := table.New([]string{"Region", "Rep", "Amount", "Qty"})
	require.NoError(t, err)
	rows := [][]string{
		{"West", "Ana", "10.5", "2"},
		{"East", "Bo", "3", "1"},
		{"West", "Ana", "4.5", "3"},
		{"West", "Cy", "2", "oops"},
	}
	for _, r := range rows {
		require.NoError(t, tab.Append(r))
	}
	return tab
}

func TestGroupBySum(t *testing.T) {
	got, err := GroupBy(salesTable(t), []string{"Region"}, Spec{"Amount": Sum})
	require.NoError(t, err)

	assert.Equal(t, []string{"Region", "Amount"}, got.Columns())
	require.Equal(t, 2, got.NumRows())

	v, _ := got.Value(0, "Region")
	assert.Equal(t, "West", v, "groups appear in first-seen order")
	v, _ = got.Value(0, "Amount")
	assert.Equal(t, "17", v)
	v, _ = got.Value(1, "Amount")
	assert.Equal(t, "3", v)
}

func TestGroupByMeanAndCount(t *testing.T) {
	got, err := GroupBy(salesTable(t), []string{"Region", "Rep"}, Spec{"Amount": Mean, "Qty": Count})
	require.NoError(t, err)

	assert.Equal(t, []string{"Region", "Rep", "Amount", "Qty"}, got.Columns())
	require.Equal(t, 3, got.NumRows())

	v, _ := got.Value(0, "Rep")
	assert.Equal(t, "Ana", v)
	v, _ = got.Value(0, "Amount")
	assert.Equal(t, "7.5", v)
	v, _ = got.Value(0, "Qty")
	assert.Equal(t, "2", v)
}

func TestGroupByUnparseableCellsCountAsZero(t *testing.T) {
	got, err := GroupBy(salesTable(t), []string{"Rep"}, Spec{"Qty": Sum})
	require.NoError(t, err)

	byRep := map[string]string{}
	for i := 0; i < got.NumRows(); i++ {
		rep, _ := got.Value(i, "Rep")
		qty, _ := got.Value(i, "Qty")
		byRep[rep] = qty
	}
	assert.Equal(t, "0", byRep["Cy"])
	assert.Equal(t, "5", byRep["Ana"])
}

func TestGroupByAggColumnsFollowSchemaOrder(t *testing.T) {
	got, err := GroupBy(salesTable(t), []string{"Region"}, Spec{"Qty": Sum, "Amount": Sum})
	require.NoError(t, err)
	assert.Equal(t, []string{"Region", "Amount", "Qty"}, got.Columns())
}

func TestGroupByErrors(t *testing.T) {
	tab := salesTable(t)

	var configErr *table.ConfigError
	_, err := GroupBy(tab, nil, Spec{"Amount": Sum})
	require.ErrorAs(t, err, &configErr)

	_, err = GroupBy(tab, []string{"Region"}, Spec{})
	require.ErrorAs(t, err, &configErr)

	_, err = GroupBy(tab, []string{"Region"}, Spec{"Amount": Kind("median")})
	require.ErrorAs(t, err, &configErr)

	var schemaErr *table.SchemaError
	_, err = GroupBy(tab, []string{"Region"}, Spec{"Ghost": Sum})
	require.ErrorAs(t, err, &schemaErr)

	_, err = GroupBy(tab, []string{"Ghost"}, Spec{"Amount": Sum})
	require.ErrorAs(t, err, &schemaErr)
}
