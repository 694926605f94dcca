package cmd

import (
	"fmt"

	"leaguerats/internal/stores/accountstore"
	"leaguerats/pkg/models/account"
	"leaguerats/pkg/regions"

	"github.com/spf13/cobra"
)

var accountCmd = &cobra.Command{
	Use:   "account <region> <gameName> <tagLine> | account --all <gameName> <tagLine>",
	Short: "Look up a riot account",
	Args:  cobra.RangeArgs(2, 3),
	RunE:  runAccount,
}

var accountAllRegions bool

func init() {
	accountCmd.Flags().BoolVar(&accountAllRegions, "all", false, "search every region")
}

func newAccountStore() *accountstore.AccountStore {
	return accountstore.NewAccountStore(&accountstore.AccountStoreDeps{
		Client: session.client,
		Logger: session.logger,
	})
}

func runAccount(cmd *cobra.Command, args []string) error {
	store := newAccountStore()

	if accountAllRegions {
		if len(args) != 2 {
			return fmt.Errorf("--all takes <gameName> <tagLine>")
		}

		found, err := store.GetAccountsInAllRegions(cmd.Context(), args[0], args[1])
		if err != nil {
			return fmt.Errorf("search account: %w", err)
		}

		var accounts []account.Account
		for _, region := range regions.Selectable() {
			if acc := found[region]; acc != nil {
				accounts = append(accounts, *acc)
			}
		}
		if len(accounts) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No account found on any region.")
			return nil
		}
		return printAccounts(cmd.OutOrStdout(), accounts)
	}

	if len(args) != 3 {
		return fmt.Errorf("expected <region> <gameName> <tagLine>")
	}

	acc, err := store.GetAccount(cmd.Context(), accountstore.AccountLookup{
		ByRiotID: &accountstore.RiotIDLookup{GameName: args[1], TagLine: args[2]},
		Region:   regions.Select(args[0]),
	})
	if err != nil {
		return fmt.Errorf("get account: %w", err)
	}
	return printAccounts(cmd.OutOrStdout(), []account.Account{acc})
}
