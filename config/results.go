package config

import (
	"fmt"
)

// ResultsConfig defines settings for result-record storage and rotation.
type ResultsConfig struct {
	// Backend selects the record store type: "jsonl" or "sqlite".
	Backend string `json:"backend"`
	// Path is the file location of the record store.
	Path string `json:"path"`
	// MaxSizeMB triggers rotation when the file exceeds this size in megabytes.
	// Rotation applies to the jsonl backend only.
	MaxSizeMB int `json:"max_size_mb"`
	// MaxBackups limits the number of rotated files to keep.
	MaxBackups int `json:"max_backups"`
	// MaxAgeDays removes rotated files older than this number of days.
	MaxAgeDays int `json:"max_age_days"`
}

// SetDefaults applies sane defaults.
func (c *ResultsConfig) SetDefaults() {
	if c.Backend == "" {
		c.Backend = "jsonl"
	}
	if c.Path == "" {
		c.Path = "gridgap-results.jsonl"
	}
}

// Validate checks mandatory fields.
func (c ResultsConfig) Validate() error {
	if c.Backend != "jsonl" && c.Backend != "sqlite" {
		return fmt.Errorf("unknown backend %s", c.Backend)
	}
	if c.Path == "" {
		return fmt.Errorf("path is required")
	}
	if c.MaxSizeMB < 0 || c.MaxBackups < 0 || c.MaxAgeDays < 0 {
		return fmt.Errorf("rotation limits must not be negative")
	}
	if c.Backend == "sqlite" && c.MaxSizeMB > 0 {
		return fmt.Errorf("rotation is only supported by the jsonl backend")
	}
	return nil
}
