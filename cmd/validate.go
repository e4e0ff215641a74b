package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vanditkanudia/gridgap/config"
	coremetrics "github.com/vanditkanudia/gridgap/core/metrics"
	coreprofile "github.com/vanditkanudia/gridgap/core/profile"
	"github.com/vanditkanudia/gridgap/core/region"
	"github.com/vanditkanudia/gridgap/core/temporal"
	"github.com/vanditkanudia/gridgap/infra/logger"
	"github.com/vanditkanudia/gridgap/infra/plan"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the plan tables and timeslice coverage without simulating",
	RunE:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := checkBackends(cfg); err != nil {
		return err
	}
	p, _, err := plan.NewLoader(cfg.Plan.Resolve()).Load()
	if err != nil {
		return err
	}

	cal := temporal.NewCalendar(cfg.Run.Year)
	if cfg.Run.HorizonHours > 0 {
		cal = temporal.NewHorizon(cfg.Run.Year, cfg.Run.HorizonHours)
	}
	hours, err := temporal.SliceHours(cal, p.Timeslices)
	if err != nil {
		return err
	}

	agg := region.NewAggregator(logger.New("validate"))
	for _, g := range p.Groups {
		if _, err := agg.Aggregate(p, g.ID); err != nil {
			return err
		}
	}

	cmd.Printf("plan OK: %d regions, %d groups, %d timeslices over %d hours of %d\n",
		len(p.Regions), len(p.Groups), len(hours), cal.Hours(), cal.Year)
	return nil
}

// checkBackends verifies the configured module types without building them,
// so a typo fails validation instead of the run.
func checkBackends(cfg *config.Config) error {
	if !registered(coreprofile.SourceTypes(), cfg.Profile.Type) {
		return fmt.Errorf("unknown profile source %q (have %s)",
			cfg.Profile.Type, strings.Join(coreprofile.SourceTypes(), ", "))
	}
	for _, mc := range cfg.Metrics.Sinks {
		if !registered(coremetrics.SinkTypes(), mc.Type) {
			return fmt.Errorf("unknown metrics sink %q (have %s)",
				mc.Type, strings.Join(coremetrics.SinkTypes(), ", "))
		}
	}
	return nil
}

func registered(types []string, name string) bool {
	for _, t := range types {
		if t == name {
			return true
		}
	}
	return false
}
