// Command goforecast runs a forecasting strategy over a series file.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sartorproj/goforecast/strategy"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "goforecast",
		Short: "Forecast dated series with EMA or Holt-Winters smoothing",
		Long: `goforecast projects a dated numeric series forward, or backtests a
strategy over data already in the series.

Strategies:
  ema           - exponential moving average with a residual band
  holt_winters  - additive Holt-Winters level/trend smoothing

Examples:
  goforecast forecast --file visits.csv --strategy ema --periods 3 --range 0:15
  goforecast forecast --file visits.csv --strategy holt_winters --comparison --set alpha=0.3`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path (default: ./goforecast.yaml if present)")

	rootCmd.AddCommand(
		newForecastCmd(&cfgFile),
		newStrategiesCmd(),
		newVersionCmd(),
	)
	return rootCmd
}

func newStrategiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "strategies",
		Short: "List available strategies",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			for _, name := range strategy.Names() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "goforecast %s\n", version)
		},
	}
}
