// Package filter provides boolean row predicates and table filters for
// cleaning spreadsheet exports: text include/exclude patterns, inclusive
// date ranges, empty-field extraction, and condition-gated field updates.
package filter

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/TFMV/scrub/pkg/table"
)

// DateLayout is the accepted date format for range filters (mm/dd/yyyy).
const DateLayout = "01/02/2006"

// ByText keeps rows whose cell in each keep column matches any of that
// column's patterns, then discards rows matching any discard pattern.
// Discard wins over keep. Patterns are regular expressions OR-joined per
// column; with caseSensitive false they match case-insensitively.
func ByText(t *table.Table, keep, discard map[string][]string, caseSensitive bool) (*table.Table, error) {
	cols := make([]string, 0, len(keep)+len(discard))
	for c := range keep {
		cols = append(cols, c)
	}
	for c := range discard {
		cols = append(cols, c)
	}
	if err := t.RequireColumns(cols...); err != nil {
		return nil, err
	}

	keepRe, err := compilePatterns(keep, caseSensitive)
	if err != nil {
		return nil, err
	}
	discardRe, err := compilePatterns(discard, caseSensitive)
	if err != nil {
		return nil, err
	}

	out := table.MustNew(t.Columns())
	for i := 0; i < t.NumRows(); i++ {
		if !matchesAll(t, i, keepRe) {
			continue
		}
		if matchesAny(t, i, discardRe) {
			continue
		}
		out.AppendRowFrom(t, i)
	}
	return out, nil
}

func compilePatterns(spec map[string][]string, caseSensitive bool) (map[string]*regexp.Regexp, error) {
	res := make(map[string]*regexp.Regexp, len(spec))
	for col, patterns := range spec {
		if len(patterns) == 0 {
			continue
		}
		expr := strings.Join(patterns, "|")
		if !caseSensitive {
			expr = "(?i)" + expr
		}
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, &table.ConfigError{Field: col, Reason: fmt.Sprintf("bad pattern: %v", err)}
		}
		res[col] = re
	}
	return res, nil
}

func matchesAll(t *table.Table, row int, res map[string]*regexp.Regexp) bool {
	for col, re := range res {
		v, _ := t.Value(row, col)
		if !re.MatchString(v) {
			return false
		}
	}
	return true
}

func matchesAny(t *table.Table, row int, res map[string]*regexp.Regexp) bool {
	for col, re := range res {
		v, _ := t.Value(row, col)
		if re.MatchString(v) {
			return true
		}
	}
	return false
}

// ByDateRange keeps rows whose dateColumn value falls between start and end
// inclusive. Dates are mm/dd/yyyy; cells that fail to parse are dropped.
func ByDateRange(t *table.Table, dateColumn, start, end string) (*table.Table, error) {
	if err := t.RequireColumns(dateColumn); err != nil {
		return nil, err
	}
	from, err := time.Parse(DateLayout, start)
	if err != nil {
		return nil, &table.ConfigError{Field: "start", Reason: "date format should be mm/dd/yyyy"}
	}
	to, err := time.Parse(DateLayout, end)
	if err != nil {
		return nil, &table.ConfigError{Field: "end", Reason: "date format should be mm/dd/yyyy"}
	}

	out := table.MustNew(t.Columns())
	for i := 0; i < t.NumRows(); i++ {
		v, _ := t.Value(i, dateColumn)
		d, err := time.Parse(DateLayout, strings.TrimSpace(v))
		if err != nil {
			continue
		}
		if d.Before(from) || d.After(to) {
			continue
		}
		out.AppendRowFrom(t, i)
	}
	return out, nil
}

// EmptyFields returns the rows of t that have an empty value in any of the
// listed fields.
func EmptyFields(t *table.Table, fields []string) (*table.Table, error) {
	if err := t.RequireColumns(fields...); err != nil {
		return nil, err
	}
	out := table.MustNew(t.Columns())
	for i := 0; i < t.NumRows(); i++ {
		for _, f := range fields {
			v, _ := t.Value(i, f)
			if v == "" {
				out.AppendRowFrom(t, i)
				break
			}
		}
	}
	return out, nil
}
