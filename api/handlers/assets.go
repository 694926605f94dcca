package handlers

import (
	"leaguerats/api/filters"
	"leaguerats/internal/stores/championstore"
	"leaguerats/internal/stores/runestore"
	"leaguerats/internal/stores/storagestore"
	"leaguerats/pkg/errs"
	"leaguerats/pkg/models/match"

	"github.com/gin-gonic/gin"
)

// AssetHandler serves icon URLs and the rune trees.
type AssetHandler struct {
	Storage   *storagestore.StorageStore
	Runes     *runestore.RuneStore
	Champions *championstore.ChampionStore
}

type AssetHandlerDependencies struct {
	Storage   *storagestore.StorageStore
	Runes     *runestore.RuneStore
	Champions *championstore.ChampionStore
}

func NewAssetHandler(deps *AssetHandlerDependencies) *AssetHandler {
	return &AssetHandler{
		Storage:   deps.Storage,
		Runes:     deps.Runes,
		Champions: deps.Champions,
	}
}

// GetChampionIcons resolves the icon of every known champion.
func (h *AssetHandler) GetChampionIcons(c *gin.Context) {
	if _, err := h.Champions.GetChampions(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	respondResult(c, h.Storage.FetchAllChampionIcons(c.Request.Context(), h.Champions.ChampionIDs()))
}

func (h *AssetHandler) GetRankIcons(c *gin.Context) {
	respondResult(c, h.Storage.FetchAllRankIcons(c.Request.Context()))
}

func (h *AssetHandler) GetTeamLogos(c *gin.Context) {
	respondResult(c, h.Storage.FetchAllTeamLogos(c.Request.Context()))
}

func (h *AssetHandler) GetSummonerSpellIcons(c *gin.Context) {
	respondResult(c, h.Storage.FetchSummonerSpellIcons(c.Request.Context()))
}

func (h *AssetHandler) GetItemIcons(c *gin.Context) {
	var qp filters.ItemIconsParams
	if err := c.ShouldBindQuery(&qp); err != nil {
		badRequest(c, err)
		return
	}
	respondResult(c, h.Storage.FetchItemIcons(c.Request.Context(), qp.IDs))
}

// GetRegionIcon resolves the flag of a region.
func (h *AssetHandler) GetRegionIcon(c *gin.Context) {
	var pp filters.RegionURIParams
	if err := c.ShouldBindUri(&pp); err != nil {
		badRequest(c, err)
		return
	}

	url, ok := h.Storage.RegionIcon(c.Request.Context(), pp.SelectRegion())
	if !ok {
		respondError(c, errs.ErrNotFound)
		return
	}
	respondResult(c, url)
}

// GetRuneInfo returns every rune tree.
func (h *AssetHandler) GetRuneInfo(c *gin.Context) {
	trees, err := h.Runes.GetRuneInfo(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondResult(c, trees)
}

// GetRuneIcons resolves the icons and the keystone of a rune selection.
func (h *AssetHandler) GetRuneIcons(c *gin.Context) {
	var perks match.Perks
	if err := c.ShouldBindJSON(&perks); err != nil {
		badRequest(c, err)
		return
	}

	icons, err := h.Runes.RuneIcons(c.Request.Context(), perks)
	if err != nil {
		respondError(c, err)
		return
	}

	result := gin.H{"icons": icons}
	if keystone, ok, err := h.Runes.Keystone(c.Request.Context(), perks); err == nil && ok {
		result["keystone"] = keystone
	}
	respondResult(c, result)
}
