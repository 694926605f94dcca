package handlers

import (
	"net/http"

	"leaguerats/api/filters"
	"leaguerats/internal/stores/matchstore"

	"github.com/gin-gonic/gin"
)

// MatchHandler is the handler for the match endpoints.
type MatchHandler struct {
	Matches *matchstore.MatchStore
}

type MatchHandlerDependencies struct {
	Matches *matchstore.MatchStore
}

// NewMatchHandler creates a new instance of the match handler.
func NewMatchHandler(deps *MatchHandlerDependencies) *MatchHandler {
	return &MatchHandler{
		Matches: deps.Matches,
	}
}

// GetMatchHistory lists match ids of a player.
func (h *MatchHandler) GetMatchHistory(c *gin.Context) {
	var pp filters.PuuidURIParams
	if err := c.ShouldBindUri(&pp); err != nil {
		badRequest(c, err)
		return
	}

	var qp filters.MatchHistoryParams
	if err := c.ShouldBindQuery(&qp); err != nil {
		badRequest(c, err)
		return
	}

	ids, err := h.Matches.GetMatchHistory(c.Request.Context(), pp.Puuid, pp.SelectRegion(), qp.AsOptions())
	if err != nil {
		respondError(c, err)
		return
	}
	respondResult(c, ids)
}

// GetMatchData returns one finished match.
func (h *MatchHandler) GetMatchData(c *gin.Context) {
	var pp filters.MatchURIParams
	if err := c.ShouldBindUri(&pp); err != nil {
		badRequest(c, err)
		return
	}

	data, err := h.Matches.GetMatchData(c.Request.Context(), pp.MatchID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondResult(c, data)
}

// GetMatchesData returns several matches, in the requested order.
func (h *MatchHandler) GetMatchesData(c *gin.Context) {
	var qp filters.MatchesParams
	if err := c.ShouldBindQuery(&qp); err != nil {
		badRequest(c, err)
		return
	}

	data, err := h.Matches.GetMatchesData(c.Request.Context(), qp.IDs)
	if err != nil {
		respondError(c, err)
		return
	}
	respondResult(c, data)
}

// GetActiveMatch returns the live game of a player.
func (h *MatchHandler) GetActiveMatch(c *gin.Context) {
	var pp filters.PuuidURIParams
	if err := c.ShouldBindUri(&pp); err != nil {
		badRequest(c, err)
		return
	}

	game, err := h.Matches.GetActiveMatch(c.Request.Context(), pp.Puuid, pp.SelectRegion())
	if err != nil {
		respondError(c, err)
		return
	}
	respondResult(c, game)
}

// GetFeaturedGames returns the last featured games, fetching them when none are loaded.
func (h *MatchHandler) GetFeaturedGames(c *gin.Context) {
	games := h.Matches.FeaturedGames.Get()
	if len(games) == 0 {
		var err error
		games, err = h.Matches.GetFeaturedGames(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
	}
	respondResult(c, games)
}

// WatchPlayer adds a player to the live game refresh.
func (h *MatchHandler) WatchPlayer(c *gin.Context) {
	var pp filters.PuuidURIParams
	if err := c.ShouldBindUri(&pp); err != nil {
		badRequest(c, err)
		return
	}

	if err := h.Matches.Watch(pp.Puuid, pp.SelectRegion()); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UnwatchPlayer removes a player from the live game refresh.
func (h *MatchHandler) UnwatchPlayer(c *gin.Context) {
	puuid := c.Param("puuid")
	h.Matches.Unwatch(puuid)
	c.Status(http.StatusNoContent)
}

// GetWatchedGames returns the last known game of every watched player.
func (h *MatchHandler) GetWatchedGames(c *gin.Context) {
	respondResult(c, h.Matches.ActiveGames.Get())
}
