// Package merge implements a one-directional, conflict-aware enrichment
// merge: field values are copied from a secondary table into a base table,
// joined through leaf-normalized keys, under an explicit overwrite policy
// and with a structured audit trail.
package merge

import (
	"fmt"

	"github.com/TFMV/scrub/pkg/keys"
	"github.com/TFMV/scrub/pkg/table"
)

// OverwritePolicy governs whether an existing non-empty base field value may
// be replaced by a differing secondary value.
type OverwritePolicy string

const (
	// NeverOverwrite copies a secondary value only into empty base fields.
	NeverOverwrite OverwritePolicy = "never"
	// OverwriteIfDifferent replaces the base value whenever the secondary
	// value is non-empty and differs.
	OverwriteIfDifferent OverwritePolicy = "if-different"
)

// ParsePolicy converts a policy name as given on the command line.
func ParsePolicy(s string) (OverwritePolicy, error) {
	switch OverwritePolicy(s) {
	case NeverOverwrite, OverwriteIfDifferent:
		return OverwritePolicy(s), nil
	default:
		return "", &table.ConfigError{Field: "overwrite", Reason: fmt.Sprintf("unknown policy %q", s)}
	}
}

// Options configures a merge pass. Policy and the key columns are required;
// the name columns are optional and only feed the audit trail.
type Options struct {
	BaseKeyColumn      string
	SecondaryKeyColumn string
	// FieldsToCopy are copied base←secondary in the given order. Fields
	// missing from the base schema are added with empty defaults before
	// merging, so the result schema is a superset of the base schema.
	FieldsToCopy []string
	Policy       OverwritePolicy
	// Delimiter for leaf extraction; keys.DefaultDelimiter when empty.
	Delimiter string
	// BaseNameColumn and SecondaryNameColumn name human-readable columns
	// quoted in audit events.
	BaseNameColumn      string
	SecondaryNameColumn string
	// Audit receives the structured merge events. Nil means no auditing.
	Audit Auditor
}

func (o *Options) validate(base, secondary *table.Table) error {
	if o.BaseKeyColumn == "" {
		return &table.ConfigError{Field: "BaseKeyColumn", Reason: "must not be empty"}
	}
	if o.SecondaryKeyColumn == "" {
		return &table.ConfigError{Field: "SecondaryKeyColumn", Reason: "must not be empty"}
	}
	if len(o.FieldsToCopy) == 0 {
		return &table.ConfigError{Field: "FieldsToCopy", Reason: "must name at least one field"}
	}
	if _, err := ParsePolicy(string(o.Policy)); err != nil {
		return err
	}
	if err := base.RequireColumns(o.BaseKeyColumn); err != nil {
		return fmt.Errorf("base table: %w", err)
	}
	if err := secondary.RequireColumns(o.SecondaryKeyColumn); err != nil {
		return fmt.Errorf("secondary table: %w", err)
	}
	if err := secondary.RequireColumns(o.FieldsToCopy...); err != nil {
		return fmt.Errorf("secondary table: %w", err)
	}
	return nil
}

// Stats counts the secondary keys classified during one merge pass.
// Counters tally keys, not individual field copies.
type Stats struct {
	// Updated counts secondary keys that uniquely matched a base row.
	Updated int `json:"updated"`
	// Duplicates counts secondary keys whose leaf had already been matched
	// by an earlier secondary key in the same pass.
	Duplicates int `json:"duplicates"`
	// Unmatched counts secondary keys whose leaf is absent from the base.
	Unmatched int `json:"unmatched"`
}

type pendingUpdate struct {
	row   int
	field string
	value string
}

// Merge enriches base in place from secondary and returns the pass stats.
// Secondary keys are visited in first-seen order; each key's leaf either
// uniquely matches one unconsumed base row (field copy), repeats an already
// consumed leaf (counted duplicate), or misses the base (counted unmatched).
// A base key held by more than one base row is never matchable.
//
// Classification runs entirely against indices built up front, and all cell
// writes are deferred until classification has finished, so decisions never
// observe partial updates.
func Merge(base, secondary *table.Table, opts Options) (Stats, error) {
	var stats Stats
	if err := opts.validate(base, secondary); err != nil {
		return stats, err
	}
	delim := opts.Delimiter
	if delim == "" {
		delim = keys.DefaultDelimiter
	}

	for _, f := range opts.FieldsToCopy {
		base.AddColumn(f, "")
	}

	// The base index is leaf-normalized so a composite base key and a
	// composite secondary key can meet at their shared leaf. Base tables
	// whose keys are already leaves index identically either way.
	baseIndex, err := keys.NewIndex(base, opts.BaseKeyColumn, keys.IndexOptions{Normalize: true, Delimiter: delim})
	if err != nil {
		return stats, err
	}
	secondaryIndex, err := keys.NewIndex(secondary, opts.SecondaryKeyColumn, keys.IndexOptions{})
	if err != nil {
		return stats, err
	}

	audit := opts.Audit
	if audit == nil {
		audit = NopAuditor{}
	}

	var pending []pendingUpdate
	consumed := make(map[string]bool)
	for _, secondaryKey := range secondaryIndex.Keys() {
		secondaryRow := secondaryIndex.Positions(secondaryKey)[0]
		leaf := keys.Leaf(secondaryKey, delim)
		switch {
		case baseIndex.Multiplicity(leaf) == 1 && !consumed[leaf]:
			baseRow := baseIndex.Positions(leaf)[0]
			for _, field := range opts.FieldsToCopy {
				baseVal, _ := base.Value(baseRow, field)
				secondaryVal, _ := secondary.Value(secondaryRow, field)
				if secondaryVal == "" || secondaryVal == baseVal {
					continue
				}
				if opts.Policy == NeverOverwrite && baseVal != "" {
					continue
				}
				pending = append(pending, pendingUpdate{row: baseRow, field: field, value: secondaryVal})
				audit.ValueUpdate(ValueUpdateEvent{
					BaseRow:  baseRow,
					Key:      leaf,
					Field:    field,
					OldValue: baseVal,
					NewValue: secondaryVal,
				})
			}
			consumed[leaf] = true
			stats.Updated++
		case baseIndex.Contains(leaf) && consumed[leaf]:
			stats.Duplicates++
			baseRow := baseIndex.Positions(leaf)[0]
			audit.DuplicateFound(DuplicateEvent{
				LeafKey:       leaf,
				BaseName:      base.Row(baseRow).GetDefault(opts.BaseNameColumn),
				SecondaryKey:  secondaryKey,
				SecondaryName: secondary.Row(secondaryRow).GetDefault(opts.SecondaryNameColumn),
			})
		case !baseIndex.Contains(leaf):
			stats.Unmatched++
			audit.KeyNotFound(KeyNotFoundEvent{
				LeafKey:       leaf,
				SecondaryKey:  secondaryKey,
				SecondaryName: secondary.Row(secondaryRow).GetDefault(opts.SecondaryNameColumn),
			})
		}
		// A leaf present in the base under more than one row falls through
		// every branch: a genuinely duplicated base key is not matchable.
	}

	for _, u := range pending {
		if err := base.Set(u.row, u.field, u.value); err != nil {
			return stats, err
		}
	}
	return stats, nil
}
