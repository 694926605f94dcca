package cmd

import (
	"fmt"

	"leaguerats/internal/stores/leaderboardstore"
	"leaguerats/pkg/regions"

	"github.com/spf13/cobra"
)

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard <region>",
	Short: "Show the apex ladder of a region",
	Args:  cobra.ExactArgs(1),
	RunE:  runLeaderboard,
}

var (
	ladderLeague string
	ladderLimit  int
	ladderPages  int
)

func init() {
	leaderboardCmd.Flags().StringVar(&ladderLeague, "league", "challenger", "challenger, grandmaster or master")
	leaderboardCmd.Flags().IntVar(&ladderLimit, "limit", 50, "rows per page")
	leaderboardCmd.Flags().IntVar(&ladderPages, "pages", 1, "number of pages to load")
}

func runLeaderboard(cmd *cobra.Command, args []string) error {
	if ladderPages < 1 {
		return fmt.Errorf("--pages must be at least 1")
	}

	store := leaderboardstore.NewLeaderboardStore(&leaderboardstore.LeaderboardStoreDeps{
		Client: session.client,
		Logger: session.logger,
	})
	region := regions.Select(args[0])

	if _, err := store.GetFirstLeaderboard(cmd.Context(), region, ladderLeague, ladderLimit); err != nil {
		return fmt.Errorf("get leaderboard: %w", err)
	}
	for page := 1; page < ladderPages; page++ {
		more, err := store.GetMoreLeaderboard(cmd.Context(), region, ladderLeague, ladderLimit)
		if err != nil {
			return fmt.Errorf("get leaderboard page %d: %w", page+1, err)
		}
		if len(more) == 0 {
			break
		}
	}

	entries, _ := store.Leaderboard(region, ladderLeague)
	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "The ladder is empty.")
		return nil
	}
	return printLeaderboard(cmd.OutOrStdout(), entries)
}
