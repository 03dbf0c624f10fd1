// Package config loads and validates scrub job files.
package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// --- Configuration Structs ---

// MergeConfig describes one enrichment merge: the base table to update,
// the secondary table supplying values, and the join/copy parameters.
type MergeConfig struct {
	BasePath            string   `mapstructure:"base_path"`
	SecondaryPath       string   `mapstructure:"secondary_path"`
	BaseKeyColumn       string   `mapstructure:"base_key_column"`
	SecondaryKeyColumn  string   `mapstructure:"secondary_key_column"`
	BaseNameColumn      string   `mapstructure:"base_name_column"`
	SecondaryNameColumn string   `mapstructure:"secondary_name_column"`
	FieldsToCopy        []string `mapstructure:"fields_to_copy"`
	Overwrite           string   `mapstructure:"overwrite"`
	Delimiter           string   `mapstructure:"delimiter"`
	OutputPath          string   `mapstructure:"output_path"`
}

// FilterConfig describes a text/date filter pass.
type FilterConfig struct {
	Keep          map[string][]string `mapstructure:"keep"`
	Discard       map[string][]string `mapstructure:"discard"`
	CaseSensitive bool                `mapstructure:"case_sensitive"`
	DateColumn    string              `mapstructure:"date_column"`
	From          string              `mapstructure:"from"`
	To            string              `mapstructure:"to"`
}

// Config is a full scrub job file.
type Config struct {
	Merge  *MergeConfig  `mapstructure:"merge"`
	Filter *FilterConfig `mapstructure:"filter"`
}

// --- Load Configuration ---

// LoadConfig reads a YAML job file. A .env file in the working directory,
// when present, is loaded first so env expansion inside commands works.
func LoadConfig(configPath string) (*Config, error) {
	_ = godotenv.Load()

	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// --- Validation Functions ---

// validate is a helper function to reduce repetition.
func validate(condition bool, format string, a ...any) error {
	if !condition {
		return fmt.Errorf(format, a...)
	}
	return nil
}

func (c *Config) Validate() error {
	if c.Merge != nil {
		if err := c.Merge.Validate(); err != nil {
			return fmt.Errorf("merge validation failed: %w", err)
		}
	}
	if c.Filter != nil {
		if err := c.Filter.Validate(); err != nil {
			return fmt.Errorf("filter validation failed: %w", err)
		}
	}
	return nil
}

func (mc *MergeConfig) Validate() error {
	if err := validate(mc.BasePath != "", "base_path is required"); err != nil {
		return err
	}
	if err := validate(mc.SecondaryPath != "", "secondary_path is required"); err != nil {
		return err
	}
	if err := validate(mc.BaseKeyColumn != "", "base_key_column is required"); err != nil {
		return err
	}
	if err := validate(mc.SecondaryKeyColumn != "", "secondary_key_column is required"); err != nil {
		return err
	}
	if err := validate(len(mc.FieldsToCopy) > 0, "fields_to_copy must name at least one field"); err != nil {
		return err
	}
	if mc.Overwrite != "" {
		if err := validate(mc.Overwrite == "never" || mc.Overwrite == "if-different",
			"overwrite must be 'never' or 'if-different', got %q", mc.Overwrite); err != nil {
			return err
		}
	}
	return nil
}

func (fc *FilterConfig) Validate() error {
	hasText := len(fc.Keep) > 0 || len(fc.Discard) > 0
	hasDate := fc.DateColumn != ""
	if err := validate(hasText || hasDate, "filter must set keep/discard patterns or a date_column"); err != nil {
		return err
	}
	if hasDate {
		if err := validate(fc.From != "" && fc.To != "", "date filter requires from and to"); err != nil {
			return err
		}
	}
	return nil
}
