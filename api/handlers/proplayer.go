package handlers

import (
	"net/http"
	"slices"

	"leaguerats/api/filters"
	"leaguerats/internal/live"
	"leaguerats/internal/stores/proplayerstore"
	"leaguerats/pkg/models/proplayer"
	"leaguerats/pkg/regions"

	"github.com/gin-gonic/gin"
)

// ProPlayerHandler serves the esports rosters, streams and pro games.
type ProPlayerHandler struct {
	ProPlayers *proplayerstore.ProPlayerStore
}

type ProPlayerHandlerDependencies struct {
	ProPlayers *proplayerstore.ProPlayerStore
}

func NewProPlayerHandler(deps *ProPlayerHandlerDependencies) *ProPlayerHandler {
	return &ProPlayerHandler{
		ProPlayers: deps.ProPlayers,
	}
}

// GetAllProPlayers returns every roster flattened.
func (h *ProPlayerHandler) GetAllProPlayers(c *gin.Context) {
	players, err := h.ProPlayers.GetAllProPlayers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondResult(c, players)
}

// GetRegionPlayers returns the players of every team of a league.
func (h *ProPlayerHandler) GetRegionPlayers(c *gin.Context) {
	var pp filters.ProRegionURIParams
	if err := c.ShouldBindUri(&pp); err != nil {
		badRequest(c, err)
		return
	}

	region, err := regions.ParseProRegion(pp.Region)
	if err != nil {
		respondError(c, err)
		return
	}

	players, err := h.ProPlayers.GetProPlayersForRegion(c.Request.Context(), region)
	if err != nil {
		respondError(c, err)
		return
	}
	respondResult(c, players)
}

// GetTeamPlayers returns a team roster.
func (h *ProPlayerHandler) GetTeamPlayers(c *gin.Context) {
	var pp filters.TeamURIParams
	if err := c.ShouldBindUri(&pp); err != nil {
		badRequest(c, err)
		return
	}

	region, err := regions.ParseProRegion(pp.Region)
	if err != nil {
		respondError(c, err)
		return
	}

	players, err := h.ProPlayers.GetProPlayersFromTeam(c.Request.Context(), region, pp.Team)
	if err != nil {
		respondError(c, err)
		return
	}
	respondResult(c, players)
}

// GetTeamPlayer returns a single player of a team.
func (h *ProPlayerHandler) GetTeamPlayer(c *gin.Context) {
	var pp filters.TeamPlayerURIParams
	if err := c.ShouldBindUri(&pp); err != nil {
		badRequest(c, err)
		return
	}

	player, err := h.ProPlayers.GetPlayerFromTeam(c.Request.Context(), pp.Team, pp.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	respondResult(c, player)
}

// GetPlayerByName searches every team for the player.
func (h *ProPlayerHandler) GetPlayerByName(c *gin.Context) {
	var pp filters.ProNameURIParams
	if err := c.ShouldBindUri(&pp); err != nil {
		badRequest(c, err)
		return
	}

	player, err := h.ProPlayers.GetPlayerByName(c.Request.Context(), pp.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	respondResult(c, player)
}

// CreateProPlayer registers a new player.
func (h *ProPlayerHandler) CreateProPlayer(c *gin.Context) {
	var body proplayer.ProPlayer
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err)
		return
	}

	created, err := h.ProPlayers.CreateProPlayer(c.Request.Context(), body)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"result": created})
}

// TransferPlayer moves a player to another team.
func (h *ProPlayerHandler) TransferPlayer(c *gin.Context) {
	var body proplayerstore.TransferRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err)
		return
	}

	moved, err := h.ProPlayers.TransferPlayer(c.Request.Context(), body)
	if err != nil {
		respondError(c, err)
		return
	}
	respondResult(c, moved)
}

// GetAccountNames returns the known pro accounts.
func (h *ProPlayerHandler) GetAccountNames(c *gin.Context) {
	names := h.ProPlayers.AccountNames.Get()
	if len(names) == 0 {
		var err error
		names, err = h.ProPlayers.GetAccountNames(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
	}
	respondResult(c, names)
}

// GetBootcampLeaderboard returns the ranked pro accounts of the bootcamp.
func (h *ProPlayerHandler) GetBootcampLeaderboard(c *gin.Context) {
	ladder, err := h.ProPlayers.GetBootcampLeaderboard(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondResult(c, ladder)
}

// GetHistoryStats returns the per champion statistics of a pro.
func (h *ProPlayerHandler) GetHistoryStats(c *gin.Context) {
	var pp filters.TeamPlayerURIParams
	if err := c.ShouldBindUri(&pp); err != nil {
		badRequest(c, err)
		return
	}

	var qp filters.HistoryStatsParams
	if err := c.ShouldBindQuery(&qp); err != nil {
		badRequest(c, err)
		return
	}

	stats, err := h.ProPlayers.GetHistoryStats(c.Request.Context(), pp.Team, pp.Name, qp.Amount)
	if err != nil {
		respondError(c, err)
		return
	}
	respondResult(c, stats)
}

// GetStreams returns a stream list. Lists without a listener are polled on request.
func (h *ProPlayerHandler) GetStreams(c *gin.Context) {
	var pp filters.StreamURIParams
	if err := c.ShouldBindUri(&pp); err != nil {
		badRequest(c, err)
		return
	}

	stream, value := live.NotLiveStreams, h.ProPlayers.NotLiveStreams
	if pp.IsLive() {
		stream, value = live.LiveStreams, h.ProPlayers.LiveStreams
	}

	if slices.Contains(h.ProPlayers.Watching(), stream) {
		respondResult(c, value.Get())
		return
	}

	streams, err := h.ProPlayers.RefreshLiveStreams(c.Request.Context(), pp.IsLive())
	if err != nil {
		respondError(c, err)
		return
	}
	respondResult(c, streams)
}

// GetActiveGames returns the live games of tracked pros.
func (h *ProPlayerHandler) GetActiveGames(c *gin.Context) {
	respondResult(c, h.ProPlayers.ActiveGames.Get())
}
