package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/vanditkanudia/gridgap/app"
	"github.com/vanditkanudia/gridgap/config"
	"github.com/vanditkanudia/gridgap/core/runner"
	"github.com/vanditkanudia/gridgap/core/runstatus"
	"github.com/vanditkanudia/gridgap/infra/logger"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "gridgap",
	Short: "Hourly dispatch simulation and capacity-gap analysis for expansion plans",
	RunE:  run,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "config.yaml", "configuration file")
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }

func run(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logger.New("main").Errorf("service close: %v", err)
		}
	}()

	go printProgress(cmd, svc.Status.Watch())

	sum, runErr := svc.Run(ctx)
	printSummary(cmd, sum)
	return runErr
}

// printProgress streams group status transitions while the run executes.
func printProgress(cmd *cobra.Command, watch <-chan runstatus.Status) {
	for st := range watch {
		switch st.State {
		case runstatus.StateRunning:
			cmd.Printf("group %s: running (%d members)\n", st.Group, st.Members)
		case runstatus.StateCompleted:
			cmd.Printf("group %s: completed, shortfall %.1f MW, unmet %.1f MWh\n",
				st.Group, st.ShortfallMW, st.UnmetMWh)
		case runstatus.StateFailed:
			cmd.Printf("group %s: failed (%s): %s\n", st.Group, st.ErrorKind, st.Error)
		}
	}
}

func printSummary(cmd *cobra.Command, sum runner.Summary) {
	if sum.RunID == "" {
		return
	}
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "GROUP\tSTATUS\tSHORTFALL MW\tSTORAGE MW\tSTORAGE MWH\tUNMET H")
	for _, res := range sum.Results {
		if res.Err != nil {
			fmt.Fprintf(w, "%s\tfailed\t-\t-\t-\t-\n", res.Group)
			continue
		}
		g := res.Gap
		fmt.Fprintf(w, "%s\tok\t%.1f\t%.1f\t%.1f\t%d\n",
			res.Group, g.DispatchableShortfallMW, g.RequiredStoragePowerMW, g.RequiredStorageEnergyMWh, g.UnmetHours)
	}
	w.Flush()
	cmd.Printf("run %s: year %d, %d groups, %d failed, %s\n",
		sum.RunID, sum.Year, len(sum.Results), len(sum.Failed()), sum.Duration.Round(time.Millisecond))
}
