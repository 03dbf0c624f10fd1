package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/TFMV/scrub/pkg/merge"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport() MergeReport {
	return MergeReport{
		BasePath:      "customers.xlsx",
		SecondaryPath: "accounts.csv",
		OutputPath:    "customers_merged.xlsx",
		KeyColumn:     "Customer Key",
		FieldsCopied:  []string{"Account Number", "Terms"},
		Policy:        "never",
		BaseRows:      120,
		SecondaryRows: 95,
		Stats:         merge.Stats{Updated: 80, Duplicates: 5, Unmatched: 10},
		StartTime:     time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC),
		Duration:      1200 * time.Millisecond,
	}
}

func TestJSONGenerator(t *testing.T) {
	data, err := JSONGenerator{}.Generate(sampleReport())
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "customers.xlsx", decoded["base_path"])

	stats, ok := decoded["stats"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(80), stats["updated"])
	assert.Equal(t, float64(5), stats["duplicates"])
	assert.Equal(t, float64(10), stats["unmatched"])
}

func TestTextGenerator(t *testing.T) {
	data, err := TextGenerator{}.Generate(sampleReport())
	require.NoError(t, err)

	text := string(data)
	assert.Contains(t, text, "Merge of accounts.csv into customers.xlsx")
	assert.Contains(t, text, "Number of Updates:        80")
	assert.Contains(t, text, "Number of Duplicates:     5")
	assert.Contains(t, text, "Number of Unmatched Keys: 10")
	assert.Contains(t, text, "Account Number, Terms")
}

func TestSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, Save(JSONGenerator{}, sampleReport(), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"key_column": "Customer Key"`)
}
