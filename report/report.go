// Package report generates run reports for merge passes.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/TFMV/scrub/pkg/merge"
)

// MergeReport summarizes one enrichment merge run.
type MergeReport struct {
	BasePath      string        `json:"base_path"`
	SecondaryPath string        `json:"secondary_path"`
	OutputPath    string        `json:"output_path"`
	KeyColumn     string        `json:"key_column"`
	FieldsCopied  []string      `json:"fields_copied"`
	Policy        string        `json:"policy"`
	BaseRows      int           `json:"base_rows"`
	SecondaryRows int           `json:"secondary_rows"`
	Stats         merge.Stats   `json:"stats"`
	StartTime     time.Time     `json:"start_time"`
	Duration      time.Duration `json:"duration"`
}

// Generator renders a MergeReport for persistence or display.
type Generator interface {
	Generate(r MergeReport) ([]byte, error)
}

// JSONGenerator renders reports as indented JSON.
type JSONGenerator struct{}

func (JSONGenerator) Generate(r MergeReport) ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// TextGenerator renders reports as a plain-text summary block.
type TextGenerator struct{}

func (TextGenerator) Generate(r MergeReport) ([]byte, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "Merge of %s into %s\n", r.SecondaryPath, r.BasePath)
	fmt.Fprintf(&b, "  Key column:               %s\n", r.KeyColumn)
	fmt.Fprintf(&b, "  Fields copied:            %s\n", strings.Join(r.FieldsCopied, ", "))
	fmt.Fprintf(&b, "  Policy:                   %s\n", r.Policy)
	fmt.Fprintf(&b, "  Base rows:                %d\n", r.BaseRows)
	fmt.Fprintf(&b, "  Secondary rows:           %d\n", r.SecondaryRows)
	fmt.Fprintf(&b, "  Number of Updates:        %d\n", r.Stats.Updated)
	fmt.Fprintf(&b, "  Number of Duplicates:     %d\n", r.Stats.Duplicates)
	fmt.Fprintf(&b, "  Number of Unmatched Keys: %d\n", r.Stats.Unmatched)
	fmt.Fprintf(&b, "  Duration:                 %s\n", r.Duration)
	return []byte(b.String()), nil
}

// Save renders the report with g and writes it to path.
func Save(g Generator, r MergeReport, path string) error {
	data, err := g.Generate(r)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
