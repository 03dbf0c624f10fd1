// Package keys implements key normalization and key→row indexing for
// hierarchical, delimiter-separated keys such as QuickBooks item paths
// (parentClass:childClass:leaf).
package keys

import (
	"strings"

	"github.com/TFMV/scrub/pkg/table"
)

// DefaultDelimiter separates the segments of a composite key.
const DefaultDelimiter = ":"

// Leaf returns the trailing segment of a composite key: the substring after
// the last occurrence of delimiter, or the key unchanged when the delimiter
// is absent. Total over all inputs, including the empty string.
func Leaf(key, delimiter string) string {
	if delimiter == "" || !strings.Contains(key, delimiter) {
		return key
	}
	return key[strings.LastIndex(key, delimiter)+len(delimiter):]
}

// IndexOptions controls Index construction.
type IndexOptions struct {
	// Normalize reduces each key to its leaf segment before indexing.
	Normalize bool
	// Delimiter used for leaf extraction; DefaultDelimiter when empty.
	Delimiter string
}

// Index maps keys to the row positions holding them, preserving first-seen
// key order and insertion order within each bucket.
type Index struct {
	keys    []string
	buckets map[string][]int
}

// Keys returns the indexed keys in first-seen order.
func (ix *Index) Keys() []string {
	return ix.keys
}

// Positions returns the ordered row positions indexed under key.
func (ix *Index) Positions(key string) []int {
	return ix.buckets[key]
}

// Multiplicity returns the bucket size for key; 0 when absent.
func (ix *Index) Multiplicity(key string) int {
	return len(ix.buckets[key])
}

// Contains reports whether key is indexed.
func (ix *Index) Contains(key string) bool {
	_, ok := ix.buckets[key]
	return ok
}

// Len returns the number of distinct keys.
func (ix *Index) Len() int {
	return len(ix.keys)
}

// NewIndex builds an Index of t keyed on keyColumn. Each row's key is its
// string cell value (empty cells index under the degenerate key ""); with
// opts.Normalize the key is first reduced to its leaf. Every row position
// appears in exactly one bucket. Construction is deterministic: the same
// table yields the same key order and the same bucket contents.
func NewIndex(t *table.Table, keyColumn string, opts IndexOptions) (*Index, error) {
	if keyColumn == "" {
		return nil, &table.ConfigError{Field: "keyColumn", Reason: "must not be empty"}
	}
	if err := t.RequireColumns(keyColumn); err != nil {
		return nil, err
	}
	delim := opts.Delimiter
	if delim == "" {
		delim = DefaultDelimiter
	}
	ix := &Index{buckets: make(map[string][]int)}
	for i := 0; i < t.NumRows(); i++ {
		key, _ := t.Value(i, keyColumn)
		if opts.Normalize {
			key = Leaf(key, delim)
		}
		if _, seen := ix.buckets[key]; !seen {
			ix.keys = append(ix.keys, key)
		}
		ix.buckets[key] = append(ix.buckets[key], i)
	}
	return ix, nil
}
