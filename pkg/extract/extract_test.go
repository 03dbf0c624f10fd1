package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAddress(t *testing.T) {
	got := ParseAddress("John Doe 123 Main St, Denver, CO 80203 (555) 123-4567")
	assert.Equal(t, Address{
		Street: "John Doe 123 Main St",
		City:   "Denver",
		State:  "CO",
		Zip:    "80203",
		Phone:  "555-123-4567",
	}, got)
}

func TestParseAddressPartial(t *testing.T) {
	got := ParseAddress("456 Oak Ave, Portland, OR")
	assert.Equal(t, "Portland", got.City)
	assert.Equal(t, "OR", got.State)
	assert.Empty(t, got.Zip)
	assert.Empty(t, got.Phone)
}

func TestPhone(t *testing.T) {
	tests := []struct {
		in    string
		rest  string
		phone string
	}{
		{"Call (555) 123-4567", "Call", "555-123-4567"},
		{"+1 555.123.4567", "", "555-123-4567"},
		{"555-123-4567 x200", "x200", "555-123-4567"},
		{"no number here", "no number here", ""},
	}
	for _, tt := range tests {
		rest, phone := Phone(tt.in)
		assert.Equal(t, tt.rest, rest, tt.in)
		assert.Equal(t, tt.phone, phone, tt.in)
	}
}

func TestZip(t *testing.T) {
	rest, zip := Zip("Denver CO 80203-1234")
	assert.Equal(t, "Denver CO", rest)
	assert.Equal(t, "80203-1234", zip)

	rest, zip = Zip("Denver CO")
	assert.Equal(t, "Denver CO", rest)
	assert.Empty(t, zip)
}

func TestStateKeepsStreetSuffixes(t *testing.T) {
	rest, state := State("123 Main Ct, Denver CO")
	assert.Equal(t, "CO", state)
	assert.Equal(t, "123 Main Ct, Denver", rest)
}

func TestStateFullName(t *testing.T) {
	_, state := State("Portland, Oregon")
	assert.Equal(t, "Oregon", state)
}

func TestCityAfterSuiteMarker(t *testing.T) {
	_, city := City("100 Pine St Suite 4B Boulder", nil)
	assert.Equal(t, "Boulder", city)
}

func TestCityKnownList(t *testing.T) {
	_, city := City("789 Elm St North Denver", []string{"Denver"})
	assert.Equal(t, "Denver", city)
}

func TestEquivalentAlphanumeric(t *testing.T) {
	assert.True(t, EquivalentAlphanumeric("Lotion (2 oz)", "lotion 2oz"))
	assert.True(t, EquivalentAlphanumeric("Kit [Travel]", "KIT TRAVEL"))
	assert.False(t, EquivalentAlphanumeric("Lotion 2 oz", "Lotion 4 oz"))
}

func TestSplitName(t *testing.T) {
	tests := []struct {
		in   string
		want Name
	}{
		{"Attn: Dr. Jane Doe, FNP-C", Name{First: "Jane", Last: "Doe", JobTitle: "FNP-C"}},
		{"Jane Doe RN", Name{First: "Jane", Last: "Doe", JobTitle: "RN"}},
		{"Mary Ann Smith", Name{First: "Mary", Last: "Ann Smith"}},
		{"Cher", Name{First: "Cher"}},
		{"", Name{}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SplitName(tt.in), tt.in)
	}
}

func TestTrimName(t *testing.T) {
	first, last, ok := TrimName("Dr. Jane Doe RN")
	assert.True(t, ok)
	assert.Equal(t, "Jane", first)
	assert.Equal(t, "Doe", last)

	_, _, ok = TrimName("Acme Medical Spa LLC")
	assert.False(t, ok)

	_, _, ok = TrimName("Cher")
	assert.False(t, ok)
}

func TestNameFromAddress(t *testing.T) {
	got := NameFromAddress("Acme Clinic", "Acme Clinic Attn: Jane Doe 123 Main St")
	assert.Equal(t, "Jane Doe", got)

	got = NameFromAddress("Acme Clinic", "Acme Clinic")
	assert.Equal(t, "Acme Clinic", got)
}

func TestUnitMeasurements(t *testing.T) {
	rest, ms := UnitMeasurements("Lotion 2 oz (60 ml)")
	assert.Equal(t, "Lotion", rest)
	assert.Equal(t, []string{"2 oz", "60 ml"}, ms)

	rest, ms = UnitMeasurements("Serum 120ml")
	assert.Equal(t, "Serum", rest)
	assert.Equal(t, []string{"120 ml"}, ms)

	rest, ms = UnitMeasurements("Cleanser 1.7 fl oz")
	assert.Equal(t, "Cleanser", rest)
	assert.Equal(t, []string{"1.7 fl oz"}, ms)
}

func TestUnitMeasurementsSkipsDimensions(t *testing.T) {
	rest, ms := UnitMeasurements("Duo 2oz x 4oz")
	assert.Equal(t, "Duo 2oz x 4oz", rest)
	assert.Empty(t, ms)
}

func TestUnitMeasurementsLeavesBracketed(t *testing.T) {
	rest, ms := UnitMeasurements("Toner [8 oz]")
	assert.Equal(t, "Toner [8 oz]", rest)
	assert.Empty(t, ms)
}

func TestDimensions(t *testing.T) {
	assert.Equal(t, []string{"2oz x 4oz"}, Dimensions("Duo 2oz x 4oz"))
	assert.Equal(t, []string{"10ml/20ml"}, Dimensions("Set 10ml/20ml"))
	assert.Empty(t, Dimensions("Lotion 2 oz"))
}
