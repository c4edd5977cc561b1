package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/launchboard/launchboard/pkg/types"
	"github.com/launchboard/launchboard/server/internal/format"
)

func newSitesCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "sites",
		Short: "List launch sites with their launch counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, _, err := flags.load()
			if err != nil {
				return fmt.Errorf("load dataset: %w", err)
			}
			counts := make(map[string]int)
			st.Each(func(r types.LaunchRecord) bool {
				counts[r.Site]++
				return true
			})
			sites := st.Sites()
			rows := make([]format.SiteCount, 0, len(sites))
			for _, s := range sites {
				rows = append(rows, format.SiteCount{Site: s, Launches: counts[s]})
			}
			fmt.Fprintln(cmd.OutOrStdout(), format.Sites(rows, flags.mode()))
			return nil
		},
	}
}
