package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vanditkanudia/gridgap/config"
	"github.com/vanditkanudia/gridgap/core/region"
	"github.com/vanditkanudia/gridgap/infra/logger"
	"github.com/vanditkanudia/gridgap/infra/plan"
)

var groupsCmd = &cobra.Command{
	Use:   "groups",
	Short: "Transmission group commands",
}

var groupsLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List the plan's transmission groups",
	RunE:  runGroupsLs,
}

func init() {
	groupsCmd.AddCommand(groupsLsCmd)
	rootCmd.AddCommand(groupsCmd)
}

func runGroupsLs(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	p, _, err := plan.NewLoader(cfg.Plan.Resolve()).Load()
	if err != nil {
		return err
	}

	agg := region.NewAggregator(logger.New("groups-ls"))
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "GROUP\tREGIONS\tPEAK MW\tDISPATCHABLE MW\tSTORAGE MW/MWH")
	for _, g := range p.Groups {
		gp, err := agg.Aggregate(p, g.ID)
		if err != nil {
			return err
		}
		spec := gp.Storage()
		fmt.Fprintf(w, "%s\t%s\t%.1f\t%.1f\t%.1f/%.1f\n",
			g.ID, strings.Join(g.Regions, ","), gp.PeakDemandMW, gp.DispatchableCapacityMW(), spec.PowerMW, spec.EnergyMWh)
	}
	return w.Flush()
}
