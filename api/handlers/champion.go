package handlers

import (
	"leaguerats/api/filters"
	"leaguerats/internal/stores/championstore"

	"github.com/gin-gonic/gin"
)

// ChampionHandler is the handler for the champion endpoints.
type ChampionHandler struct {
	Champions *championstore.ChampionStore
}

type ChampionHandlerDependencies struct {
	Champions *championstore.ChampionStore
}

// NewChampionHandler creates a new instance of the champion handler.
func NewChampionHandler(deps *ChampionHandlerDependencies) *ChampionHandler {
	return &ChampionHandler{
		Champions: deps.Champions,
	}
}

// Helper to bind the default URI params for champions.
func (h *ChampionHandler) bindURIParams(c *gin.Context) (*filters.ChampionURIParams, error) {
	var pp filters.ChampionURIParams
	if err := c.ShouldBindUri(&pp); err != nil {
		return nil, err
	}
	return &pp, nil
}

// GetChampions returns every champion name keyed by id.
func (h *ChampionHandler) GetChampions(c *gin.Context) {
	champions, err := h.Champions.GetChampions(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondResult(c, champions)
}

// GetChampionStats returns the aggregated statistics of a champion.
func (h *ChampionHandler) GetChampionStats(c *gin.Context) {
	pp, err := h.bindURIParams(c)
	if err != nil {
		badRequest(c, err)
		return
	}

	stats, err := h.Champions.GetChampionStats(c.Request.Context(), pp.ChampionID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondResult(c, stats)
}

// GetChampionMatches returns the first page of recent matches, or the next one with more=true.
func (h *ChampionHandler) GetChampionMatches(c *gin.Context) {
	pp, err := h.bindURIParams(c)
	if err != nil {
		badRequest(c, err)
		return
	}

	var qp filters.ChampionMatchesParams
	if err := c.ShouldBindQuery(&qp); err != nil {
		badRequest(c, err)
		return
	}

	fetch := h.Champions.GetChampionMatches
	if qp.More {
		fetch = h.Champions.MoreChampionMatches
	}

	matches, err := fetch(c.Request.Context(), pp.ChampionID, qp.Amount)
	if err != nil {
		respondError(c, err)
		return
	}
	respondResult(c, matches)
}

// GetChampionMastery returns the mastery of a player.
func (h *ChampionHandler) GetChampionMastery(c *gin.Context) {
	var pp filters.PuuidURIParams
	if err := c.ShouldBindUri(&pp); err != nil {
		badRequest(c, err)
		return
	}

	mastery, err := h.Champions.GetChampionMastery(c.Request.Context(), pp.Puuid, pp.SelectRegion())
	if err != nil {
		respondError(c, err)
		return
	}
	respondResult(c, mastery)
}

// GetChampionPositions returns the main position of each requested champion.
func (h *ChampionHandler) GetChampionPositions(c *gin.Context) {
	var qp filters.ChampionPositionsParams
	if err := c.ShouldBindQuery(&qp); err != nil {
		badRequest(c, err)
		return
	}

	ids, err := qp.ParseIDs()
	if err != nil {
		badRequest(c, err)
		return
	}

	positions, err := h.Champions.GetChampionPositions(c.Request.Context(), ids)
	if err != nil {
		respondError(c, err)
		return
	}
	respondResult(c, positions)
}
