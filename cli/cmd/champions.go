package cmd

import (
	"fmt"
	"slices"

	"leaguerats/internal/stores/championstore"

	"github.com/spf13/cobra"
)

var championsCmd = &cobra.Command{
	Use:   "champions",
	Short: "List the known champions",
	Args:  cobra.NoArgs,
	RunE:  runChampions,
}

func runChampions(cmd *cobra.Command, args []string) error {
	store := championstore.NewChampionStore(&championstore.ChampionStoreDeps{
		Client: session.client,
		Logger: session.logger,
	})

	names, err := store.GetChampions(cmd.Context())
	if err != nil {
		return fmt.Errorf("get champions: %w", err)
	}

	ids := store.ChampionIDs()
	slices.Sort(ids)
	return printChampions(cmd.OutOrStdout(), ids, names)
}
