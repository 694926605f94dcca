package cmd

import (
	"fmt"

	"leaguerats/internal/stores/proplayerstore"
	"leaguerats/pkg/models/proplayer"
	"leaguerats/pkg/regions"

	"github.com/spf13/cobra"
)

var prosCmd = &cobra.Command{
	Use:   "pros",
	Short: "List pro players, by league, team or name",
	Args:  cobra.NoArgs,
	RunE:  runPros,
}

var (
	prosRegion string
	prosTeam   string
	prosName   string
)

func init() {
	prosCmd.Flags().StringVar(&prosRegion, "region", "", "pro league, e.g. LEC")
	prosCmd.Flags().StringVar(&prosTeam, "team", "", "team short name, e.g. G2")
	prosCmd.Flags().StringVar(&prosName, "name", "", "player name")
}

func runPros(cmd *cobra.Command, args []string) error {
	store := proplayerstore.NewProPlayerStore(&proplayerstore.ProPlayerStoreDeps{
		Client: session.client,
		Logger: session.logger,
	})
	ctx := cmd.Context()

	var (
		players []proplayer.ProPlayer
		err     error
	)
	switch {
	case prosName != "" && prosTeam != "":
		var player proplayer.ProPlayer
		player, err = store.GetPlayerFromTeam(ctx, prosTeam, prosName)
		players = []proplayer.ProPlayer{player}
	case prosName != "":
		var player proplayer.ProPlayer
		player, err = store.GetPlayerByName(ctx, prosName)
		players = []proplayer.ProPlayer{player}
	case prosTeam != "":
		region, ok := regions.ProRegionForTeam(prosTeam)
		if prosRegion != "" {
			region, ok = regions.ProRegion(prosRegion), true
		}
		if !ok {
			return fmt.Errorf("unknown team %q, pass --region", prosTeam)
		}
		players, err = store.GetProPlayersFromTeam(ctx, region, prosTeam)
	case prosRegion != "":
		players, err = store.GetProPlayersForRegion(ctx, regions.ProRegion(prosRegion))
	default:
		players, err = store.GetAllProPlayers(ctx)
	}
	if err != nil {
		return fmt.Errorf("get pro players: %w", err)
	}

	if len(players) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No players found.")
		return nil
	}
	return printProPlayers(cmd.OutOrStdout(), players)
}
