package runner

import "fmt"

// Config tunes one analysis run.
type Config struct {
	// Year is the weather year to simulate.
	Year int `json:"year"`
	// Groups restricts the run to the named transmission groups. Empty runs
	// every group in the plan.
	Groups []string `json:"groups"`
	// Workers bounds how many groups are simulated concurrently.
	Workers int `json:"workers"`
	// HorizonHours truncates the simulated horizon. Zero simulates the full
	// year.
	HorizonHours int `json:"horizon_hours"`
	// IncludeTrace stores the full hourly trace with every result record.
	IncludeTrace bool `json:"include_trace"`
}

// SetDefaults fills unset fields.
func (c *Config) SetDefaults() {
	if c.Workers == 0 {
		c.Workers = 4
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.Year <= 0 {
		return fmt.Errorf("year %d must be positive", c.Year)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers %d must be at least 1", c.Workers)
	}
	if c.HorizonHours < 0 {
		return fmt.Errorf("horizon_hours %d must not be negative", c.HorizonHours)
	}
	return nil
}
