package dispatch

import "fmt"

// Config tunes the dispatch engine.
type Config struct {
	// InitialSOCFraction sets the storage state of charge entering hour 0,
	// as a fraction of energy capacity.
	InitialSOCFraction float64 `json:"initial_soc_fraction"`
	// RoundTripEfficiency is applied on the charging leg.
	RoundTripEfficiency float64 `json:"round_trip_efficiency"`
	// Strategy selects the storage plan: "greedy" or "lp".
	Strategy string `json:"strategy"`
	// LPWindowHours is the lookahead window of the lp strategy.
	LPWindowHours int `json:"lp_window_hours"`
}

// SetDefaults fills unset fields.
func (c *Config) SetDefaults() {
	if c.InitialSOCFraction == 0 {
		c.InitialSOCFraction = 0.5
	}
	if c.RoundTripEfficiency == 0 {
		c.RoundTripEfficiency = 0.85
	}
	if c.Strategy == "" {
		c.Strategy = "greedy"
	}
	if c.LPWindowHours == 0 {
		c.LPWindowHours = 24
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.InitialSOCFraction < 0 || c.InitialSOCFraction > 1 {
		return fmt.Errorf("initial_soc_fraction %g outside [0,1]", c.InitialSOCFraction)
	}
	if c.RoundTripEfficiency <= 0 || c.RoundTripEfficiency > 1 {
		return fmt.Errorf("round_trip_efficiency %g outside (0,1]", c.RoundTripEfficiency)
	}
	if c.Strategy != "greedy" && c.Strategy != "lp" {
		return fmt.Errorf("unknown storage strategy %q", c.Strategy)
	}
	if c.LPWindowHours < 1 {
		return fmt.Errorf("lp_window_hours %d must be at least 1", c.LPWindowHours)
	}
	return nil
}
