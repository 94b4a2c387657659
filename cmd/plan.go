package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/flightrisk/flightrisk/sim/plan"
)

var (
	scenarioPath string
	planSeed     int64
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Evaluate a trip scenario and search for safe departure windows",
	Run: func(cmd *cobra.Command, args []string) {
		scenario, err := plan.LoadScenario(scenarioPath)
		if err != nil {
			logrus.Fatalf("Failed to load scenario: %v", err)
		}
		if cmd.Flags().Changed("seed") {
			scenario.Seed = planSeed
		}

		report, err := plan.EvaluateTrip(scenario)
		if err != nil {
			logrus.Fatalf("Trip evaluation failed: %v", err)
		}
		logrus.Infof("miss probability %.2f%% (closed-form %.2f%%), risk level %s",
			report.Probability*100, report.ApproxProbability*100, report.RiskLevel)
		logrus.Infof("p95 arrival %.1f minutes against a %.1f minute effective buffer",
			report.P95Arrival, report.EffectiveBuffer)

		windows, err := plan.FindDeparture(scenario)
		if err != nil {
			logrus.Fatalf("Departure scan failed: %v", err)
		}
		if windows.Certainty != nil {
			logrus.Infof("certainty window: leave by %s", windows.Certainty.Format("Mon 15:04"))
		}
		if windows.DropDead != nil {
			logrus.Infof("drop-dead window: leave by %s", windows.DropDead.Format("Mon 15:04"))
		}
		if windows.Certainty == nil && windows.DropDead == nil {
			logrus.Warnf("no viable departure in the scanned range; lowest miss risk %.1f%%", windows.LowestRisk*100)
		}
	},
}

func init() {
	planCmd.Flags().StringVar(&scenarioPath, "scenario", "", "Path to a trip scenario YAML file")
	planCmd.Flags().Int64Var(&planSeed, "seed", 0, "Override the scenario seed")
	_ = planCmd.MarkFlagRequired("scenario")

	rootCmd.AddCommand(planCmd)
}
