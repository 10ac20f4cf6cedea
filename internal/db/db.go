package db

import (
	"fmt"

	"github.com/brendaninnis/uncluttered-cli/internal/config"
	"github.com/brendaninnis/uncluttered-cli/internal/logger"
	"github.com/brendaninnis/uncluttered-cli/internal/models"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// New creates a database connection. A local SQLite file is the default;
// setting DATABASE_URL switches to Postgres for shared deployments.
func New(cfg *config.Config) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	}

	var (
		database *gorm.DB
		err      error
	)
	if url := cfg.EnvVars.DatabaseURL; url != "" {
		logger.Get().Debug("connecting to postgres database")
		database, err = gorm.Open(postgres.Open(url), gormCfg)
	} else {
		var path string
		path, err = cfg.DatabasePath()
		if err != nil {
			return nil, fmt.Errorf("resolving database path: %w", err)
		}
		logger.Get().Debug("opening sqlite database", zap.String("path", path))
		database, err = gorm.Open(sqlite.Open(path), gormCfg)
	}
	if err != nil {
		return nil, fmt.Errorf("could not connect to database: %w", err)
	}

	if err := database.AutoMigrate(&models.Recipe{}); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return database, nil
}
