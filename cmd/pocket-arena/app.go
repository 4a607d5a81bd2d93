package main

import (
	"github.com/ericogr/pocket-arena/internal/catalog"
	"github.com/ericogr/pocket-arena/internal/config"
	"github.com/ericogr/pocket-arena/internal/logging"
	"github.com/ericogr/pocket-arena/internal/storage"
)

func loadConfigOrExit(path string) config.Server {
	cfg, err := config.LoadServer(path)
	if err != nil {
		logging.Fatal("Missing or invalid server configuration", err, logging.Fields{"config_path": path})
	}
	return cfg
}

func loadCatalogOrExit(path string) *catalog.Catalog {
	cat, err := catalog.Load(path)
	if err != nil {
		logging.Fatal("Failed to load creature catalog", err, logging.Fields{"catalog_path": path, "hint": "the catalog is a YAML file with 'moves' and 'species' lists"})
	}
	logging.Info("catalog loaded", logging.Fields{"species": len(cat.AllSpecies()), "moves": len(cat.Moves())})
	return cat
}

func createRepositoryOrExit(dbPath string) storage.Repository {
	db, err := storage.OpenDB(dbPath)
	if err != nil {
		logging.Fatal("Failed to initialize database", err, logging.Fields{"db_path": dbPath})
	}
	return storage.NewSQLiteRepository(db)
}
