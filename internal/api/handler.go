package api

import (
	"github.com/ericogr/pocket-arena/internal/catalog"
	"github.com/ericogr/pocket-arena/internal/config"
	"github.com/ericogr/pocket-arena/internal/service"
	"github.com/ericogr/pocket-arena/internal/storage"
)

// BattleHandler groups the catalog, battle and stats HTTP handlers.
type BattleHandler struct {
	manager *service.Manager
	catalog *catalog.Catalog
	repo    storage.Repository
	cfg     config.Server
}

// NewBattleHandler creates a BattleHandler. repo serves the read side
// (stats, history, leaderboard); the manager writes through its own.
func NewBattleHandler(m *service.Manager, cat *catalog.Catalog, repo storage.Repository, cfg config.Server) *BattleHandler {
	return &BattleHandler{manager: m, catalog: cat, repo: repo, cfg: cfg}
}
