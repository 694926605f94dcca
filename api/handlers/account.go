package handlers

import (
	"leaguerats/api/filters"
	"leaguerats/internal/stores/accountstore"
	"leaguerats/internal/stores/leaguestore"

	"github.com/gin-gonic/gin"
)

// AccountHandler serves riot accounts and their ranked entries.
type AccountHandler struct {
	Accounts *accountstore.AccountStore
	Leagues  *leaguestore.LeagueStore
}

type AccountHandlerDependencies struct {
	Accounts *accountstore.AccountStore
	Leagues  *leaguestore.LeagueStore
}

func NewAccountHandler(deps *AccountHandlerDependencies) *AccountHandler {
	return &AccountHandler{
		Accounts: deps.Accounts,
		Leagues:  deps.Leagues,
	}
}

// GetAccountByRiotID handles the lookup by name and tag on one region.
func (h *AccountHandler) GetAccountByRiotID(c *gin.Context) {
	var pp filters.RiotIDURIParams
	if err := c.ShouldBindUri(&pp); err != nil {
		badRequest(c, err)
		return
	}

	acc, err := h.Accounts.GetAccount(c.Request.Context(), pp.AsLookup())
	if err != nil {
		respondError(c, err)
		return
	}
	respondResult(c, acc)
}

// GetAccountByPuuid handles the lookup by puuid.
func (h *AccountHandler) GetAccountByPuuid(c *gin.Context) {
	var pp filters.PuuidURIParams
	if err := c.ShouldBindUri(&pp); err != nil {
		badRequest(c, err)
		return
	}

	acc, err := h.Accounts.GetAccount(c.Request.Context(), pp.AsLookup())
	if err != nil {
		respondError(c, err)
		return
	}
	respondResult(c, acc)
}

// SearchAccount looks for the riot id on every region.
func (h *AccountHandler) SearchAccount(c *gin.Context) {
	var pp filters.AccountSearchURIParams
	if err := c.ShouldBindUri(&pp); err != nil {
		badRequest(c, err)
		return
	}

	found, err := h.Accounts.GetAccountsInAllRegions(c.Request.Context(), pp.GameName, pp.TagLine)
	if err != nil {
		respondError(c, err)
		return
	}
	respondResult(c, found)
}

// GetStoredAccount returns a previously saved account.
func (h *AccountHandler) GetStoredAccount(c *gin.Context) {
	var pp filters.AccountSearchURIParams
	if err := c.ShouldBindUri(&pp); err != nil {
		badRequest(c, err)
		return
	}

	acc, err := h.Accounts.FindStoredAccount(c.Request.Context(), pp.GameName, pp.TagLine)
	if err != nil {
		respondError(c, err)
		return
	}
	respondResult(c, acc)
}

// GetUserExists reports whether a site user is registered.
func (h *AccountHandler) GetUserExists(c *gin.Context) {
	var pp filters.UserURIParams
	if err := c.ShouldBindUri(&pp); err != nil {
		badRequest(c, err)
		return
	}

	exists, err := h.Accounts.UserExists(c.Request.Context(), pp.Username, pp.Tag)
	if err != nil {
		respondError(c, err)
		return
	}
	respondResult(c, exists)
}

// GetLeagueEntries returns the ranked entries, the best one and its total lp.
func (h *AccountHandler) GetLeagueEntries(c *gin.Context) {
	var pp filters.PuuidURIParams
	if err := c.ShouldBindUri(&pp); err != nil {
		badRequest(c, err)
		return
	}

	entries, err := h.Leagues.GetLeagueEntries(c.Request.Context(), pp.Puuid, pp.SelectRegion())
	if err != nil {
		respondError(c, err)
		return
	}

	result := gin.H{"entries": entries}
	if best, ok := h.Leagues.BestEntry(entries); ok {
		result["best"] = best
		result["totalLP"] = h.Leagues.TotalLP(best)
	}
	respondResult(c, result)
}
