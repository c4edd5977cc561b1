package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/launchboard/launchboard/pkg/types"
	"github.com/launchboard/launchboard/server/internal/format"
)

func newSummaryCmd(flags *rootFlags) *cobra.Command {
	var site string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show launch outcome counts for a site or all sites",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, ctl, err := flags.load()
			if err != nil {
				return fmt.Errorf("load dataset: %w", err)
			}
			v := ctl.Summary(types.SiteSelection(site))
			fmt.Fprintln(cmd.OutOrStdout(), format.Summary(v, flags.mode()))
			return nil
		},
	}
	cmd.Flags().StringVar(&site, "site", string(types.AllSites), "launch site, or ALL")
	return cmd
}
