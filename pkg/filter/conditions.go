package filter

import (
	"strings"

	"github.com/TFMV/scrub/pkg/merge"
	"github.com/TFMV/scrub/pkg/table"
)

// Match selects how a condition compares a field value against its targets.
type Match string

const (
	MatchEquals    Match = "equals"
	MatchNotEquals Match = "not-equals"
	MatchPrefix    Match = "prefix"
	MatchContains  Match = "contains"
)

// Condition is a boolean predicate over one row field: the field value is
// compared against each target, and any hit satisfies the condition
// (all targets must miss for MatchNotEquals).
type Condition struct {
	Field         string
	Match         Match
	Targets       []string
	CaseSensitive bool
}

// Holds reports whether the condition is satisfied by row. An empty field
// value or an empty target list never satisfies equals/prefix/contains.
func (c Condition) Holds(row table.Row) bool {
	val := row.GetDefault(c.Field)
	targets := c.Targets
	if !c.CaseSensitive {
		val = strings.ToLower(val)
		targets = make([]string, len(c.Targets))
		for i, t := range c.Targets {
			targets[i] = strings.ToLower(t)
		}
	}
	switch c.Match {
	case MatchEquals, MatchNotEquals:
		hit := false
		if val != "" {
			for _, t := range targets {
				if val == t {
					hit = true
					break
				}
			}
		}
		if c.Match == MatchNotEquals {
			return !hit
		}
		return hit
	case MatchPrefix:
		if val == "" {
			return false
		}
		for _, t := range targets {
			if t != "" && strings.HasPrefix(val, t) {
				return true
			}
		}
		return false
	case MatchContains:
		if val == "" {
			return false
		}
		for _, t := range targets {
			if t != "" && strings.Contains(val, t) {
				return true
			}
		}
		return false
	}
	return false
}

func (c Condition) validate(t *table.Table) error {
	switch c.Match {
	case MatchEquals, MatchNotEquals, MatchPrefix, MatchContains:
	default:
		return &table.ConfigError{Field: "Match", Reason: "unknown match kind"}
	}
	return t.RequireColumns(c.Field)
}

// UpdateWhere sets field to value on every row satisfying all conditions,
// honoring the overwrite policy: under merge.NeverOverwrite only rows whose
// field is currently empty are written. Updates are collected during the
// scan and applied afterwards; each write is audited as a value_update with
// the row's key cell.
func UpdateWhere(t *table.Table, field, value string, conditions []Condition, policy merge.OverwritePolicy, keyColumn string, audit merge.Auditor) error {
	if field == "" {
		return &table.ConfigError{Field: "field", Reason: "must not be empty"}
	}
	if _, err := merge.ParsePolicy(string(policy)); err != nil {
		return err
	}
	if err := t.RequireColumns(field); err != nil {
		return err
	}
	for _, c := range conditions {
		if err := c.validate(t); err != nil {
			return err
		}
	}
	if audit == nil {
		audit = merge.NopAuditor{}
	}

	var rows []int
	for i := 0; i < t.NumRows(); i++ {
		row := t.Row(i)
		hold := true
		for _, c := range conditions {
			if !c.Holds(row) {
				hold = false
				break
			}
		}
		if !hold {
			continue
		}
		current, _ := t.Value(i, field)
		if current == value {
			continue
		}
		if policy == merge.NeverOverwrite && current != "" {
			continue
		}
		rows = append(rows, i)
	}

	for _, i := range rows {
		old, _ := t.Value(i, field)
		audit.ValueUpdate(merge.ValueUpdateEvent{
			BaseRow:  i,
			Key:      t.Row(i).GetDefault(keyColumn),
			Field:    field,
			OldValue: old,
			NewValue: value,
		})
		if err := t.Set(i, field, value); err != nil {
			return err
		}
	}
	return nil
}
