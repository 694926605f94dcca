package handlers

import (
	"leaguerats/api/filters"
	"leaguerats/internal/stores/leaderboardstore"

	"github.com/gin-gonic/gin"
)

// Ladder handler.
type LeaderboardHandler struct {
	Leaderboards *leaderboardstore.LeaderboardStore
}

type LeaderboardHandlerDependencies struct {
	Leaderboards *leaderboardstore.LeaderboardStore
}

func NewLeaderboardHandler(deps *LeaderboardHandlerDependencies) *LeaderboardHandler {
	return &LeaderboardHandler{
		Leaderboards: deps.Leaderboards,
	}
}

// GetLeaderboard loads the first page of a ladder, or the next one with more=true.
// The response holds the new page and every row loaded so far.
func (h *LeaderboardHandler) GetLeaderboard(c *gin.Context) {
	var pp filters.LeaderboardURIParams
	if err := c.ShouldBindUri(&pp); err != nil {
		badRequest(c, err)
		return
	}

	var qp filters.LeaderboardQueryParams
	if err := c.ShouldBindQuery(&qp); err != nil {
		badRequest(c, err)
		return
	}

	fetch := h.Leaderboards.GetFirstLeaderboard
	if qp.More {
		fetch = h.Leaderboards.GetMoreLeaderboard
	}

	page, err := fetch(c.Request.Context(), pp.SelectRegion(), pp.League, qp.PageSize())
	if err != nil {
		respondError(c, err)
		return
	}

	loaded, _ := h.Leaderboards.Leaderboard(pp.SelectRegion(), pp.League)
	respondResult(c, gin.H{"page": page, "loaded": loaded})
}
