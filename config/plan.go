package config

import (
	"fmt"

	"github.com/vanditkanudia/gridgap/infra/plan"
)

// PlanConfig locates the expansion-plan tables. Dir supplies the
// conventional file names; any explicitly named file wins over it.
type PlanConfig struct {
	Dir   string     `json:"dir"`
	Files plan.Files `json:"files"`
}

// Resolve returns the effective table files.
func (c PlanConfig) Resolve() plan.Files {
	files := c.Files
	if c.Dir != "" {
		def := plan.DefaultFiles(c.Dir)
		if files.Regions == "" {
			files.Regions = def.Regions
		}
		if files.Capacity == "" {
			files.Capacity = def.Capacity
		}
		if files.Generation == "" {
			files.Generation = def.Generation
		}
		if files.Timeslices == "" {
			files.Timeslices = def.Timeslices
		}
	}
	return files
}

// Validate checks that every table is located.
func (c PlanConfig) Validate() error {
	f := c.Resolve()
	if f.Regions == "" || f.Capacity == "" || f.Generation == "" || f.Timeslices == "" {
		return fmt.Errorf("plan: dir or all four table files must be set")
	}
	return nil
}
