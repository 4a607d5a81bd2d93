package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListSpecies returns every species in the catalog, sorted by key.
func (h *BattleHandler) ListSpecies(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.AllSpecies())
}

// ListMoves returns every move in the catalog, sorted by key.
func (h *BattleHandler) ListMoves(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.Moves())
}
