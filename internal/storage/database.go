package storage

import (
	"os"
	"path/filepath"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenDB opens the SQLite database at dataSourceName, creating its parent
// directory when needed, and migrates the schema.
func OpenDB(dataSourceName string) (*gorm.DB, error) {
	if !strings.HasPrefix(dataSourceName, "file:") && !strings.Contains(dataSourceName, ":memory:") {
		if dir := filepath.Dir(dataSourceName); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, err
			}
		}
	}
	db, err := gorm.Open(sqlite.Open(dataSourceName), &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)})
	if err != nil {
		return nil, err
	}

	// Keep schema updated via AutoMigrate; nothing is dropped on startup.
	if err := db.AutoMigrate(&BattleRecord{}, &TrainerProfile{}); err != nil {
		return nil, err
	}
	return db, nil
}
