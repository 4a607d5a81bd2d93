package api

import (
	"net/http"
	"strconv"

	"github.com/ericogr/pocket-arena/internal/constants"
	"github.com/ericogr/pocket-arena/internal/engine"
	"github.com/ericogr/pocket-arena/internal/service"
	"github.com/gin-gonic/gin"
)

// CreateBattle starts a wild or trainer battle owned by the session user.
func (h *BattleHandler) CreateBattle(c *gin.Context) {
	var req service.StartBattleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	v, err := h.manager.StartBattle(c.Request.Context(), identity(c), req)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, v)
}

// GetBattle returns the current snapshot of a battle.
func (h *BattleHandler) GetBattle(c *gin.Context) {
	v, err := h.manager.Snapshot(c.Param(constants.ParamBattleID), identity(c))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

// SubmitAction applies a turn action or menu navigation, for example
// {"kind":"use_move","index":0} or {"kind":"run"}.
func (h *BattleHandler) SubmitAction(c *gin.Context) {
	var a engine.Action
	if err := c.ShouldBindJSON(&a); err != nil || a.Kind == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	v, err := h.manager.SubmitAction(c.Param(constants.ParamBattleID), identity(c), a)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

// ProvideChoice answers the pending party, yes/no or forget-move request.
func (h *BattleHandler) ProvideChoice(c *gin.Context) {
	var ch engine.Choice
	if err := c.ShouldBindJSON(&ch); err != nil || ch.Kind == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	v, err := h.manager.ProvideChoice(c.Param(constants.ParamBattleID), identity(c), ch)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

// Forfeit ends the battle as a loss for the session user.
func (h *BattleHandler) Forfeit(c *gin.Context) {
	v, err := h.manager.Forfeit(c.Param(constants.ParamBattleID), identity(c))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

// ListEvents returns the events logged after ?since=N (default 0).
func (h *BattleHandler) ListEvents(c *gin.Context) {
	since := 0
	if s := c.Query("since"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidSince})
			return
		}
		since = n
	}
	events, over, err := h.manager.Events(c.Param(constants.ParamBattleID), identity(c), since)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": events, "over": over})
}
