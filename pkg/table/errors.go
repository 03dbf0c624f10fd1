package table

import "fmt"

// SchemaError reports a reference to a column that is not part of a table's
// schema, or a row that does not fit the schema. It is raised before any
// mutation takes place.
type SchemaError struct {
	Column string
	Reason string
}

func (e *SchemaError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("schema error: %s", e.Reason)
	}
	return fmt.Sprintf("schema error: %s: %q", e.Reason, e.Column)
}

// ConfigError reports an invalid configuration value supplied to an
// operation, detected at call entry.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error: %s: %s", e.Field, e.Reason)
}
