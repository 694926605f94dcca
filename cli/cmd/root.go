package cmd

import (
	"fmt"
	"os"
	"time"

	"leaguerats/fetcher/requests"
	"leaguerats/pkg/config"
	"leaguerats/pkg/logger"
	tiervalues "leaguerats/pkg/riotvalues/tier"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	apiURL   string
	timeout  time.Duration
	logLevel string

	// Replaced in tests.
	sender requests.Sender
)

// Shared by every command, built before it runs.
var session struct {
	client requests.Sender
	logger zerolog.Logger
	tiers  *tiervalues.Table
}

var rootCmd = &cobra.Command{
	Use:               "leaguerats",
	Short:             "League Rats command line client",
	Long:              "Look up accounts, matches, ladders and pro rosters from the League Rats backend.",
	SilenceUsage:      true,
	PersistentPreRunE: setupSession,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", "", "backend base URL (default from API_BASE_URL)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 0, "request timeout (default from API_TIMEOUT)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level written to stderr")

	rootCmd.AddCommand(accountCmd)
	rootCmd.AddCommand(leagueCmd)
	rootCmd.AddCommand(matchCmd)
	rootCmd.AddCommand(prosCmd)
	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(championsCmd)
}

func setupSession(cmd *cobra.Command, args []string) error {
	log := logger.NewWithWriter(logLevel, cmd.ErrOrStderr())

	cfg, err := config.Load(log)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if apiURL != "" {
		cfg.API.BaseURL = apiURL
	}
	if timeout > 0 {
		cfg.API.Timeout = timeout
	}

	tiers, err := tiervalues.NewTable(cfg.League.Tiers)
	if err != nil {
		return fmt.Errorf("load tiers: %w", err)
	}

	session.logger = log
	session.tiers = tiers
	session.client = sender
	if session.client == nil {
		session.client = requests.NewClient(&requests.ClientDeps{
			BaseURL: cfg.API.BaseURL,
			Timeout: cfg.API.Timeout,
			Logger:  log,
		})
	}
	return nil
}
