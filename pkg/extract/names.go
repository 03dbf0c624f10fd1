package extract

import (
	"regexp"
	"strings"
)

// Credential suffixes seen on clinical staff names in customer exports.
const nameSuffixes = `MSPA|BSN|FNP-C|LME|DOO|PA-C|MSN-RN|RN|NP|CRNA|FNP|PA|NMD|MD|DO|LE|CMA|OM`

var (
	suffixRe   = regexp.MustCompile(`(?i)(,?\s*(` + nameSuffixes + `))$`)
	prefixRe   = regexp.MustCompile(`(?i)\bDr\.*\s+`)
	trimNameRe = regexp.MustCompile(`^(?:Dr\.\s*)?([A-Za-z]+)\s+([A-Za-z]+)(?:\s+[A-Z\-]{2,4})?$`)
	twoWordsRe = regexp.MustCompile(`([A-Za-z]+ [A-Za-z]+)`)
)

// Name is a person name split out of a free-form field.
type Name struct {
	First    string
	Last     string
	JobTitle string
}

// SplitName splits a full name into first, last, and credential suffix,
// dropping an "Attn:" marker and a "Dr." prefix. Everything after the first
// word becomes the last name.
func SplitName(fullname string) Name {
	if fullname == "" {
		return Name{}
	}
	fullname = strings.TrimSpace(strings.TrimPrefix(fullname, "Attn:"))
	fullname = strings.TrimSpace(prefixRe.ReplaceAllString(fullname, ""))

	var title string
	if m := suffixRe.FindStringSubmatch(fullname); m != nil {
		title = strings.ToUpper(strings.Trim(m[1], ", "))
		fullname = strings.TrimSpace(suffixRe.ReplaceAllString(fullname, ""))
	}

	parts := strings.Fields(fullname)
	if len(parts) == 0 {
		return Name{JobTitle: title}
	}
	n := Name{First: parts[0], JobTitle: title}
	if len(parts) > 1 {
		n.Last = strings.Join(parts[1:], " ")
	}
	return n
}

// TrimName reduces a name of the shape "Dr. First Last RN" to its first and
// last components. It returns ok=false when the input does not look like a
// two-word name.
func TrimName(name string) (first, last string, ok bool) {
	m := trimNameRe.FindStringSubmatch(name)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}

// NameFromAddress recovers a contact name from an address field that leads
// with the customer name and an optional "Attn:" marker. The customer name
// is returned when no two-word name remains.
func NameFromAddress(customer, address string) string {
	address = strings.TrimSpace(strings.TrimPrefix(address, customer))
	address = strings.TrimSpace(strings.TrimPrefix(address, "Attn:"))
	if m := twoWordsRe.FindStringSubmatch(address); m != nil {
		return m[1]
	}
	return customer
}
