// Package dedupe detects rows whose (optionally leaf-normalized) key
// collides with another row's key.
package dedupe

import (
	"strconv"

	"github.com/TFMV/scrub/pkg/keys"
	"github.com/TFMV/scrub/pkg/table"
)

// OriginalIndexColumn records each duplicate row's position in the source
// table, since the result table is re-indexed from zero.
const OriginalIndexColumn = "original_index"

// Duplicates returns a new table holding every row of t whose index bucket
// has more than one position, in the rows' original relative order, with an
// extra OriginalIndexColumn. A source already carrying that column has it
// rewritten rather than duplicated. An index without collisions yields an
// empty table.
func Duplicates(t *table.Table, ix *keys.Index) (*table.Table, error) {
	cols := append([]string{}, t.Columns()...)
	if !t.HasColumn(OriginalIndexColumn) {
		cols = append(cols, OriginalIndexColumn)
	}
	out, err := table.New(cols)
	if err != nil {
		return nil, err
	}

	collided := make(map[int]bool)
	for _, k := range ix.Keys() {
		positions := ix.Positions(k)
		if len(positions) < 2 {
			continue
		}
		for _, p := range positions {
			collided[p] = true
		}
	}

	for i := 0; i < t.NumRows(); i++ {
		if !collided[i] {
			continue
		}
		out.AppendRowFrom(t, i)
		if err := out.Set(out.NumRows()-1, OriginalIndexColumn, strconv.Itoa(i)); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// PermutedKeyRows finds rows of t whose keys are permuted representations of
// the same entity: distinct composite keys sharing a leaf segment. It builds
// a leaf-normalized index on keyColumn and returns the colliding rows.
func PermutedKeyRows(t *table.Table, keyColumn, delimiter string) (*table.Table, error) {
	ix, err := keys.NewIndex(t, keyColumn, keys.IndexOptions{Normalize: true, Delimiter: delimiter})
	if err != nil {
		return nil, err
	}
	return Duplicates(t, ix)
}
