package cmd

import (
	"fmt"
	"strings"

	"leaguerats/internal/stores/matchstore"
	"leaguerats/pkg/models/match"
	"leaguerats/pkg/regions"
	queuevalues "leaguerats/pkg/riotvalues/queue"

	"github.com/spf13/cobra"
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Match history, match records and live games",
}

var matchHistoryCmd = &cobra.Command{
	Use:   "history <region> <puuid>",
	Short: "List the recent match ids of a player",
	Args:  cobra.ExactArgs(2),
	RunE:  runMatchHistory,
}

var matchShowCmd = &cobra.Command{
	Use:   "show <matchId>",
	Short: "Show the scoreboard of a match",
	Args:  cobra.ExactArgs(1),
	RunE:  runMatchShow,
}

var matchActiveCmd = &cobra.Command{
	Use:   "active <region> <puuid>",
	Short: "Show the live game of a player",
	Args:  cobra.ExactArgs(2),
	RunE:  runMatchActive,
}

var matchFeaturedCmd = &cobra.Command{
	Use:   "featured",
	Short: "Show the featured live games",
	Args:  cobra.NoArgs,
	RunE:  runMatchFeatured,
}

var (
	historyStart int
	historyCount int
	historyQueue string
)

func init() {
	matchHistoryCmd.Flags().IntVar(&historyStart, "start", 0, "index of the first match")
	matchHistoryCmd.Flags().IntVar(&historyCount, "count", 20, "number of matches")
	matchHistoryCmd.Flags().StringVar(&historyQueue, "queue", "", "NORMAL, SOLOQ, FLEXQ or ARAM")

	matchCmd.AddCommand(matchHistoryCmd)
	matchCmd.AddCommand(matchShowCmd)
	matchCmd.AddCommand(matchActiveCmd)
	matchCmd.AddCommand(matchFeaturedCmd)
}

func newMatchStore() *matchstore.MatchStore {
	return matchstore.NewMatchStore(&matchstore.MatchStoreDeps{
		Client: session.client,
		Logger: session.logger,
	})
}

func runMatchHistory(cmd *cobra.Command, args []string) error {
	ids, err := newMatchStore().GetMatchHistory(cmd.Context(), args[1], regions.Select(args[0]), matchstore.HistoryOptions{
		Start: historyStart,
		Count: historyCount,
		Queue: queuevalues.Type(strings.ToUpper(historyQueue)),
	})
	if err != nil {
		return fmt.Errorf("get match history: %w", err)
	}
	if len(ids) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No matches found.")
		return nil
	}
	return printMatchIDs(cmd.OutOrStdout(), ids)
}

func runMatchShow(cmd *cobra.Command, args []string) error {
	data, err := newMatchStore().GetMatchData(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("get match: %w", err)
	}
	return printMatch(cmd.OutOrStdout(), data)
}

func runMatchActive(cmd *cobra.Command, args []string) error {
	game, err := newMatchStore().GetActiveMatch(cmd.Context(), args[1], regions.Select(args[0]))
	if err != nil {
		return fmt.Errorf("get active game: %w", err)
	}
	return printActiveGames(cmd.OutOrStdout(), []match.ActiveGame{game})
}

func runMatchFeatured(cmd *cobra.Command, args []string) error {
	games, err := newMatchStore().GetFeaturedGames(cmd.Context())
	if err != nil {
		return fmt.Errorf("get featured games: %w", err)
	}
	if len(games) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No featured games right now.")
		return nil
	}
	return printActiveGames(cmd.OutOrStdout(), games)
}
