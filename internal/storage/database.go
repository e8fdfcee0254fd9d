package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tyoppar01/pokemon-battle-v3/internal/constants"
	"github.com/tyoppar01/pokemon-battle-v3/internal/game"
	"github.com/tyoppar01/pokemon-battle-v3/internal/logging"
)

// IsPostgresDSN reports whether dsn addresses a PostgreSQL server rather
// than a SQLite file.
func IsPostgresDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

// OpenAndMigrate opens the store named by dsn and brings its schema up to
// date. A postgres:// URL goes through lib/pq; anything else is a SQLite path.
func OpenAndMigrate(dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	driver := "sqlite"
	if IsPostgresDSN(dsn) {
		driver = "postgres"
		sqlDB, err := sql.Open("postgres", dsn)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		dialector = postgres.New(postgres.Config{Conn: sqlDB})
	} else {
		if err := ensureDir(dsn); err != nil {
			return nil, err
		}
		dialector = sqlite.Open(dsn)
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&game.Trainer{}, &game.OwnedCreature{}); err != nil {
		return nil, err
	}
	// The leaderboard reads trainers by wins then battles played.
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_trainers_leaderboard ON trainers(wins DESC, battles_played DESC);").Error; err != nil {
		return nil, err
	}
	logging.Info("database ready", logging.Fields{constants.LogFieldDriver: driver})
	return db, nil
}

// ensureDir creates the parent directory of a SQLite file path.
func ensureDir(dsn string) error {
	if strings.HasPrefix(dsn, "file:") || strings.Contains(dsn, ":memory:") {
		return nil
	}
	dir := filepath.Dir(dsn)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create database directory %s: %w", dir, err)
	}
	return nil
}
