package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/launchboard/launchboard/pkg/types"
	"github.com/launchboard/launchboard/server/internal/format"
)

func newScatterCmd(flags *rootFlags) *cobra.Command {
	var scatterFlags struct {
		site string
		low  float64
		high float64
	}

	cmd := &cobra.Command{
		Use:   "scatter",
		Short: "Show payload mass against launch outcome",
		Long: "scatter lists every launch of the selected site whose payload lies in\n" +
			"[--low, --high], bounds included. Unset bounds default to the lightest\n" +
			"and heaviest payload in the dataset.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, ctl, err := flags.load()
			if err != nil {
				return fmt.Errorf("load dataset: %w", err)
			}
			rng := ctl.DefaultRange()
			if cmd.Flags().Changed("low") {
				rng.Low = scatterFlags.low
			}
			if cmd.Flags().Changed("high") {
				rng.High = scatterFlags.high
			}
			v := ctl.Correlation(types.SiteSelection(scatterFlags.site), rng)
			fmt.Fprintln(cmd.OutOrStdout(), format.Correlation(v, flags.mode()))
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&scatterFlags.site, "site", string(types.AllSites), "launch site, or ALL")
	f.Float64Var(&scatterFlags.low, "low", 0, "lowest payload mass in kg (default: dataset minimum)")
	f.Float64Var(&scatterFlags.high, "high", 0, "highest payload mass in kg (default: dataset maximum)")
	return cmd
}
