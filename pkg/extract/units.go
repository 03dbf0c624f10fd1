package extract

import (
	"regexp"
	"strings"
)

// Units recognized in item descriptions, most specific first so "fl oz"
// wins over "oz".
var units = []string{"units", "fl oz", "oz", "g", "ml", "lb", "kg", "gal", "cc"}

const numberPattern = `\d+\.?\d*`

var unitRes = buildUnitRes()

func buildUnitRes() map[string]*regexp.Regexp {
	res := make(map[string]*regexp.Regexp, len(units))
	for _, u := range units {
		res[u] = regexp.MustCompile(numberPattern + ` ?` + regexp.QuoteMeta(u))
	}
	return res
}

func isDimensionSymbol(b byte) bool {
	return b == 'x' || b == 'X' || b == '/'
}

// dimensionBefore and dimensionAfter tolerate one space between the
// measurement and the symbol, as in "2oz x 4oz".
func dimensionBefore(s string, i int) bool {
	if i > 0 && s[i-1] == ' ' {
		i--
	}
	return i > 0 && isDimensionSymbol(s[i-1])
}

func dimensionAfter(s string, i int) bool {
	if i < len(s) && s[i] == ' ' {
		i++
	}
	return i < len(s) && isDimensionSymbol(s[i])
}

// UnitMeasurements pulls standalone unit measurements ("5 oz", "120ml") out
// of s, returning the remaining text and the normalized measurements with a
// space between number and unit. Matches adjacent to a dimension symbol
// (x, X, /) are left alone, they belong to a dimension expression. Strings
// already carrying bracketed measurements are returned unchanged.
func UnitMeasurements(s string) (rest string, measurements []string) {
	if s == "" || s == "nan" {
		return s, nil
	}
	for _, unit := range units {
		if strings.ContainsAny(s, "[]") {
			break
		}
		re := unitRes[unit]
		var kept []string
		consumed := 0
		var b strings.Builder
		for _, loc := range re.FindAllStringIndex(s, -1) {
			if dimensionBefore(s, loc[0]) || dimensionAfter(s, loc[1]) {
				continue
			}
			kept = append(kept, s[loc[0]:loc[1]])
			b.WriteString(s[consumed:loc[0]])
			consumed = loc[1]
		}
		if len(kept) == 0 {
			continue
		}
		b.WriteString(s[consumed:])
		s = strings.TrimSpace(strings.NewReplacer("(", "", ")", "").Replace(b.String()))
		for _, m := range kept {
			measurements = append(measurements, normalizeMeasurement(m, unit))
		}
	}
	return s, measurements
}

// normalizeMeasurement inserts the missing space in forms like "120ml".
func normalizeMeasurement(m, unit string) string {
	m = strings.TrimSpace(m)
	if strings.Contains(m, " "+unit) {
		return m
	}
	return strings.TrimSpace(strings.TrimSuffix(m, unit)) + " " + unit
}

// Dimensions extracts dimension expressions like "2 oz x 4 oz" or
// "10ml/20ml" from s.
func Dimensions(s string) []string {
	if s == "" || s == "nan" {
		return nil
	}
	var dims []string
	for _, unit := range units {
		u := regexp.QuoteMeta(unit)
		re := regexp.MustCompile(numberPattern + ` ?` + u + ` ?[xX/] ?` + numberPattern + ` ?` + u)
		dims = append(dims, re.FindAllString(s, -1)...)
	}
	return dims
}
