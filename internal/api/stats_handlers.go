package api

import (
	"net/http"

	"github.com/ericogr/pocket-arena/internal/constants"
	"github.com/ericogr/pocket-arena/internal/dedupe"
	"github.com/ericogr/pocket-arena/internal/logging"
	"github.com/ericogr/pocket-arena/internal/storage"
	"github.com/gin-gonic/gin"
)

const maxListLimit = 100

// ListLeaderboard returns the top trainers by wins. Concurrent requests
// for the same limit share one query.
func (h *BattleHandler) ListLeaderboard(c *gin.Context) {
	limit := queryLimit(c, h.cfg.LeaderboardSize, maxListLimit)
	v, err, _ := dedupe.LeaderboardGroup.Do(dedupe.LeaderboardKey(limit), func() (interface{}, error) {
		return h.repo.GetTopTrainers(limit)
	})
	if err != nil {
		logging.Error("leaderboard query failed", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchLeaderboard})
		return
	}
	top, _ := v.([]storage.TrainerProfile)
	if top == nil {
		top = []storage.TrainerProfile{}
	}
	c.JSON(http.StatusOK, top)
}

// GetPlayerStats returns the session trainer's aggregate stats.
func (h *BattleHandler) GetPlayerStats(c *gin.Context) {
	who := identity(c)
	ps, err := h.repo.GetStatsByEmail(who.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchStats})
		return
	}
	if ps.Name == "" {
		ps.Name = who.Name
	}
	c.JSON(http.StatusOK, gin.H{"email": who.Email, "stats": ps})
}

// ListHistory returns the session trainer's most recent battle records.
func (h *BattleHandler) ListHistory(c *gin.Context) {
	who := identity(c)
	recs, err := h.repo.ListBattleRecords(who.Email, queryLimit(c, h.cfg.HistorySize, maxListLimit))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchHistory})
		return
	}
	if recs == nil {
		recs = []storage.BattleRecord{}
	}
	c.JSON(http.StatusOK, recs)
}
