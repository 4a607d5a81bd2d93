package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/ericogr/pocket-arena/internal/api"
	"github.com/ericogr/pocket-arena/internal/constants"
	"github.com/ericogr/pocket-arena/internal/logging"
	"github.com/ericogr/pocket-arena/internal/service"
	"github.com/ericogr/pocket-arena/internal/version"
)

func main() {
	warnEnvVars([]string{constants.EnvSessionSecret, constants.EnvGoogleClientID, constants.EnvGoogleClientSecret})

	// POCKET_ARENA_CONFIG points at the server YAML; a missing file means defaults.
	configPath := os.Getenv(constants.EnvConfigPath)
	if configPath == "" {
		configPath = constants.DefaultConfigPath
	}
	cfg := loadConfigOrExit(configPath)
	if dbPath := os.Getenv(constants.EnvDatabasePath); dbPath != "" {
		cfg.DatabasePath = dbPath
	}
	logging.Info("starting pocket-arena", logging.Fields{"version": version.String(), "config_path": configPath})

	cat := loadCatalogOrExit(cfg.CatalogPath)
	repo := createRepositoryOrExit(cfg.DatabasePath)
	manager := service.NewManager(cat, repo, cfg.IdleTimeout())

	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := api.NewRouter(
		api.NewBattleHandler(manager, cat, repo, cfg),
		api.NewAuthHandler(repo, cfg.CookieTTL()),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if err := serve(ctx, cfg, router, manager); err != nil {
		logging.Fatal("Server stopped with error", err, nil)
	}
	logging.Info("Server stopped", nil)
}

// warnEnvVars logs missing optional variables. Without them login is
// disabled or sessions use an ephemeral secret.
func warnEnvVars(vars []string) {
	for _, v := range vars {
		if os.Getenv(v) == "" {
			logging.Info("environment variable not set", logging.Fields{"var": v})
		}
	}
}
