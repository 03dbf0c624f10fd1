// Package extract parses semi-structured text fields found in spreadsheet
// exports: postal addresses, phone numbers, person names, and unit
// measurements embedded in item descriptions.
package extract

import (
	"regexp"
	"strings"
)

var stateAbbrevs = []string{
	"AL", "AK", "AZ", "AR", "CA", "CO", "CT", "DE", "FL", "GA", "HI", "ID", "IL", "IN", "IA",
	"KS", "KY", "LA", "ME", "MD", "MA", "MI", "MN", "MS", "MO", "MT", "NE", "NV", "NH", "NJ",
	"NM", "NY", "NC", "ND", "OH", "OK", "OR", "PA", "RI", "SC", "SD", "TN", "TX", "UT", "VT",
	"VA", "WA", "WV", "WI", "WY",
}

var stateNames = []string{
	"Alabama", "Alaska", "Arizona", "Arkansas", "California", "Colorado", "Connecticut", "Delaware",
	"Florida", "Georgia", "Hawaii", "Idaho", "Illinois", "Indiana", "Iowa", "Kansas", "Kentucky",
	"Louisiana", "Maine", "Maryland", "Massachusetts", "Michigan", "Minnesota", "Mississippi",
	"Missouri", "Montana", "Nebraska", "Nevada", "New Hampshire", "New Jersey", "New Mexico",
	"New York", "North Carolina", "North Dakota", "Ohio", "Oklahoma", "Oregon", "Pennsylvania",
	"Rhode Island", "South Carolina", "South Dakota", "Tennessee", "Texas", "Utah", "Vermont",
	"Virginia", "Washington", "West Virginia", "Wisconsin", "Wyoming",
}

var streetSuffixList = []string{
	"Rd", "Road", "St", "Street", "Ave", "Avenue", "Blvd", "Boulevard", "Ln", "Lane",
	"Dr", "Drive", "Ct", "Court", "Pl", "Place", "Sq", "Square", "Terrace", "Hwy",
	"Pkwy", "Parkway", "Cir", "Circle", "Way", "Ste", "Suite", "PO Box",
}

var (
	countryRe = regexp.MustCompile(`(?i)\b(United States|USA)\b`)
	phoneRe   = regexp.MustCompile(`(\+?1[-.\s]?|\()?(\d{3})[-.\s)]*(\d{3})[-.\s]*(\d{4})`)
	zipRe     = regexp.MustCompile(`(\d{5})(-\d{4})?\b`)
	statesRe  = regexp.MustCompile(`(?i)\b(` + strings.Join(append(append([]string{}, stateAbbrevs...), stateNames...), "|") + `)\b`)
	streetRe  = regexp.MustCompile(`\b(?:Rd|Road|St|Street|Ave|Avenue|Blvd|Boulevard|Ln|Lane|Dr|Drive|Ct|Court|Pl|Place|Sq|Square|Terrace|Hwy|Pkwy|Parkway|Cir|Circle|Way|Ste|Suite|(PO Box[\s#]*\d+))\.*\b`)
	suiteRe   = regexp.MustCompile(`(?i)(Suite|Ste|Unit|#)\s*[A-Z\d]+`)
)

// Address is a parsed single-line postal address.
type Address struct {
	Street string
	City   string
	State  string
	Zip    string
	Phone  string
}

// ParseAddress pulls phone, zip, state, and city out of a free-form address
// line, in that order, leaving the street portion behind. Fields that are
// not found stay empty.
func ParseAddress(s string) Address {
	s = strings.TrimSpace(countryRe.ReplaceAllString(s, ""))
	s, phone := Phone(s)
	s, zip := Zip(s)
	s, state := State(s)
	s, city := City(s, nil)
	return Address{
		Street: strings.Trim(s, ", "),
		City:   city,
		State:  state,
		Zip:    zip,
		Phone:  phone,
	}
}

// Phone extracts the first US phone number from text, normalized to
// 999-999-9999, and returns the text with every phone match removed.
func Phone(text string) (rest, phone string) {
	m := phoneRe.FindStringSubmatch(text)
	if m != nil {
		phone = m[2] + "-" + m[3] + "-" + m[4]
	}
	return strings.TrimSpace(phoneRe.ReplaceAllString(text, "")), phone
}

// Zip extracts the first 5 or 5+4 digit zip code and removes every zip
// match from the text.
func Zip(text string) (rest, zip string) {
	zip = zipRe.FindString(text)
	return strings.TrimSpace(zipRe.ReplaceAllString(text, "")), zip
}

// State extracts the rightmost US state abbreviation or full name. Only the
// last match is removed, since street suffixes like "Ct" also spell state
// abbreviations.
func State(text string) (rest, state string) {
	matches := statesRe.FindAllStringIndex(text, -1)
	if len(matches) == 0 {
		return text, ""
	}
	last := matches[len(matches)-1]
	state = text[last[0]:last[1]]
	rest = strings.TrimRight(text[:last[0]], " ") + strings.TrimLeft(text[last[1]:], " ")
	return rest, state
}

// City extracts the city from what remains of an address after zip/state
// removal. The city is taken to follow a suite/unit marker or a street
// suffix; failing both, the second-to-last comma-separated part is used.
// A known-cities list, when given, narrows the match.
func City(text string, knownCities []string) (rest, city string) {
	if m := suiteRe.FindStringIndex(text); m != nil {
		city = strings.TrimSpace(strings.SplitN(strings.Trim(text[m[1]:], "., "), ",", 2)[0])
	} else if m := streetRe.FindStringIndex(text); m != nil {
		candidate := strings.TrimSpace(strings.SplitN(strings.Trim(text[m[1]:], "., "), ",", 2)[0])
		if candidate != "" && !isStreetSuffix(strings.Fields(candidate)[0]) {
			city = candidate
		}
	}
	if city == "" {
		parts := strings.Split(text, ",")
		if len(parts) > 1 {
			city = strings.Trim(parts[len(parts)-2], ". ")
		}
	}
	if city != "" && len(knownCities) > 0 {
		re := regexp.MustCompile(`(?i)\b(` + joinQuoted(knownCities) + `)\b`)
		if m := re.FindStringSubmatch(city); m != nil {
			city = m[1]
		}
	}
	if city != "" {
		text = strings.Trim(strings.Replace(text, city, "", 1), ", ")
	}
	return text, city
}

func isStreetSuffix(word string) bool {
	for _, s := range streetSuffixList {
		if word == s {
			return true
		}
	}
	return false
}

func joinQuoted(items []string) string {
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = regexp.QuoteMeta(s)
	}
	return strings.Join(quoted, "|")
}

var nonAlnumRe = regexp.MustCompile(`[\[\]\(\)\s]`)

// EquivalentAlphanumeric reports whether two strings are equal after
// stripping brackets, parentheses, and whitespace, case-folded.
func EquivalentAlphanumeric(s1, s2 string) bool {
	return strings.EqualFold(nonAlnumRe.ReplaceAllString(s1, ""), nonAlnumRe.ReplaceAllString(s2, ""))
}
