package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	content := `
merge:
  base_path: customers.xlsx
  secondary_path: accounts.csv
  base_key_column: "Customer Key"
  secondary_key_column: "Account Key"
  base_name_column: "Customer"
  secondary_name_column: "Account Name"
  fields_to_copy:
    - "Account Number"
    - "Terms"
  overwrite: if-different
  delimiter: ":"
  output_path: customers_merged.xlsx
filter:
  keep:
    Item:
      - Serum
      - Lotion
  discard:
    Class:
      - Sample
  case_sensitive: false
`
	path := filepath.Join(t.TempDir(), "job.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NotNil(t, cfg.Merge)
	require.NotNil(t, cfg.Filter)

	assert.Equal(t, "customers.xlsx", cfg.Merge.BasePath)
	assert.Equal(t, "Customer Key", cfg.Merge.BaseKeyColumn)
	assert.Equal(t, []string{"Account Number", "Terms"}, cfg.Merge.FieldsToCopy)
	assert.Equal(t, "if-different", cfg.Merge.Overwrite)
	assert.Equal(t, ":", cfg.Merge.Delimiter)

	assert.Equal(t, []string{"Serum", "Lotion"}, cfg.Filter.Keep["Item"])
	assert.Equal(t, []string{"Sample"}, cfg.Filter.Discard["Class"])

	require.NoError(t, cfg.Validate())
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func validMerge() *MergeConfig {
	return &MergeConfig{
		BasePath:           "base.csv",
		SecondaryPath:      "secondary.csv",
		BaseKeyColumn:      "Key",
		SecondaryKeyColumn: "Key",
		FieldsToCopy:       []string{"Account"},
	}
}

func TestMergeConfigValidate(t *testing.T) {
	assert.NoError(t, validMerge().Validate())

	mc := validMerge()
	mc.BasePath = ""
	assert.ErrorContains(t, mc.Validate(), "base_path is required")

	mc = validMerge()
	mc.SecondaryKeyColumn = ""
	assert.ErrorContains(t, mc.Validate(), "secondary_key_column is required")

	mc = validMerge()
	mc.FieldsToCopy = nil
	assert.ErrorContains(t, mc.Validate(), "fields_to_copy")

	mc = validMerge()
	mc.Overwrite = "always"
	assert.ErrorContains(t, mc.Validate(), "overwrite must be")

	mc = validMerge()
	mc.Overwrite = "never"
	assert.NoError(t, mc.Validate())
}

func TestFilterConfigValidate(t *testing.T) {
	fc := &FilterConfig{Keep: map[string][]string{"Item": {"Serum"}}}
	assert.NoError(t, fc.Validate())

	fc = &FilterConfig{}
	assert.ErrorContains(t, fc.Validate(), "filter must set")

	fc = &FilterConfig{DateColumn: "Date"}
	assert.ErrorContains(t, fc.Validate(), "requires from and to")

	fc = &FilterConfig{DateColumn: "Date", From: "01/01/2024", To: "12/31/2024"}
	assert.NoError(t, fc.Validate())
}

func TestConfigValidateWrapsSection(t *testing.T) {
	cfg := &Config{Merge: &MergeConfig{}}
	assert.ErrorContains(t, cfg.Validate(), "merge validation failed")

	cfg = &Config{Filter: &FilterConfig{}}
	assert.ErrorContains(t, cfg.Validate(), "filter validation failed")

	assert.NoError(t, (&Config{}).Validate())
}
