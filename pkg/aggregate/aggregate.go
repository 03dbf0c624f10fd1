// Package aggregate groups table rows by one or more columns and computes
// per-group numeric summaries.
package aggregate

import (
	"strconv"
	"strings"

	"github.com/TFMV/scrub/pkg/table"
)

// Kind names an aggregation function.
type Kind string

const (
	Sum   Kind = "sum"
	Mean  Kind = "mean"
	Count Kind = "count"
)

// Spec maps an input column to the aggregation applied to it. The output
// table carries one column per spec entry, named after the input column.
type Spec map[string]Kind

const groupKeySep = "\x1f"

// GroupBy groups t on groupColumns and aggregates the spec'd columns over
// each group, returning one output row per group in first-seen group order.
// Cells are parsed as floats for Sum and Mean; unparseable cells count as 0.
// Sum and Mean are formatted with minimal decimal digits; Count as an int.
func GroupBy(t *table.Table, groupColumns []string, spec Spec) (*table.Table, error) {
	if len(groupColumns) == 0 {
		return nil, &table.ConfigError{Field: "groupColumns", Reason: "must name at least one column"}
	}
	if len(spec) == 0 {
		return nil, &table.ConfigError{Field: "spec", Reason: "must name at least one aggregation"}
	}
	aggCols := make([]string, 0, len(spec))
	for _, c := range t.Columns() {
		if k, ok := spec[c]; ok {
			if k != Sum && k != Mean && k != Count {
				return nil, &table.ConfigError{Field: c, Reason: "unknown aggregation kind"}
			}
			aggCols = append(aggCols, c)
		}
	}
	if len(aggCols) != len(spec) {
		for c := range spec {
			if !t.HasColumn(c) {
				return nil, &table.SchemaError{Column: c, Reason: "column not found"}
			}
		}
	}
	if err := t.RequireColumns(groupColumns...); err != nil {
		return nil, err
	}

	type acc struct {
		keyCells []string
		sums     map[string]float64
		counts   map[string]int
	}
	var order []string
	groups := make(map[string]*acc)
	for i := 0; i < t.NumRows(); i++ {
		cells := make([]string, len(groupColumns))
		for j, c := range groupColumns {
			cells[j], _ = t.Value(i, c)
		}
		gk := strings.Join(cells, groupKeySep)
		g, ok := groups[gk]
		if !ok {
			g = &acc{keyCells: cells, sums: make(map[string]float64), counts: make(map[string]int)}
			groups[gk] = g
			order = append(order, gk)
		}
		for _, c := range aggCols {
			v, _ := t.Value(i, c)
			f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil {
				f = 0
			}
			g.sums[c] += f
			g.counts[c]++
		}
	}

	out, err := table.New(append(append([]string{}, groupColumns...), aggCols...))
	if err != nil {
		return nil, err
	}
	for _, gk := range order {
		g := groups[gk]
		cells := append([]string{}, g.keyCells...)
		for _, c := range aggCols {
			switch spec[c] {
			case Sum:
				cells = append(cells, strconv.FormatFloat(g.sums[c], 'f', -1, 64))
			case Mean:
				cells = append(cells, strconv.FormatFloat(g.sums[c]/float64(g.counts[c]), 'f', -1, 64))
			case Count:
				cells = append(cells, strconv.Itoa(g.counts[c]))
			}
		}
		if err := out.Append(cells); err != nil {
			return nil, err
		}
	}
	return out, nil
}
