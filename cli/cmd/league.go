package cmd

import (
	"fmt"

	"leaguerats/internal/stores/leaguestore"
	"leaguerats/pkg/regions"

	"github.com/spf13/cobra"
)

var leagueCmd = &cobra.Command{
	Use:   "league <region> <puuid>",
	Short: "Show the ranked entries of a player",
	Args:  cobra.ExactArgs(2),
	RunE:  runLeague,
}

func runLeague(cmd *cobra.Command, args []string) error {
	store := leaguestore.NewLeagueStore(&leaguestore.LeagueStoreDeps{
		Client: session.client,
		Tiers:  session.tiers,
		Logger: session.logger,
	})

	entries, err := store.GetLeagueEntries(cmd.Context(), args[1], regions.Select(args[0]))
	if err != nil {
		return fmt.Errorf("get league entries: %w", err)
	}
	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "Unranked.")
		return nil
	}
	return printLeagueEntries(cmd.OutOrStdout(), entries, store.TotalLP)
}
