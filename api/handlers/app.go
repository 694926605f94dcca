package handlers

import (
	"context"
	"net/http"

	"leaguerats/internal/stores/app"
	"leaguerats/internal/stores/proplayerstore"

	"github.com/gin-gonic/gin"
)

// AppHandler exposes the session bootstrap.
type AppHandler struct {
	App        *app.AppStore
	ProPlayers *proplayerstore.ProPlayerStore
	lifetime   context.Context
}

type AppHandlerDependencies struct {
	App        *app.AppStore
	ProPlayers *proplayerstore.ProPlayerStore
	// Listeners opened by a reload live as long as this context.
	Lifetime context.Context
}

func NewAppHandler(deps *AppHandlerDependencies) *AppHandler {
	lifetime := deps.Lifetime
	if lifetime == nil {
		lifetime = context.Background()
	}

	return &AppHandler{
		App:        deps.App,
		ProPlayers: deps.ProPlayers,
		lifetime:   lifetime,
	}
}

// GetStatus reports the bootstrap state and the open subscriptions.
func (h *AppHandler) GetStatus(c *gin.Context) {
	respondResult(c, gin.H{
		"loading":  h.App.Loading.Get(),
		"watching": h.ProPlayers.Watching(),
	})
}

// Reload clears every store and loads the initial data again.
func (h *AppHandler) Reload(c *gin.Context) {
	h.App.ResetState()

	if err := h.App.GetInitialData(h.lifetime); err != nil {
		c.JSON(http.StatusOK, gin.H{"result": "partial", "error": err.Error()})
		return
	}
	respondResult(c, "loaded")
}
