package database

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/EngOsamaQazan/Archeef/config"
	"github.com/EngOsamaQazan/Archeef/pkg/retry"
)

// NewDB opens the PostgreSQL connection and configures the pool.
// The initial connection is retried with the configured linear backoff so a
// database that is still starting up does not kill the server.
func NewDB(ctx context.Context, cfg *config.DatabaseConfig, logger *zap.Logger) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	}

	policy := retry.Policy{
		MaxAttempts: cfg.ConnectAttempts,
		Delay:       cfg.ConnectBackoff,
	}

	var db *gorm.DB
	err := policy.Do(ctx, func() error {
		var openErr error
		db, openErr = gorm.Open(postgres.Open(cfg.DSN()), gormCfg)
		if openErr != nil {
			logger.Warn("database connection attempt failed", zap.Error(openErr))
		}
		return openErr
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("unwrapping sql.DB: %w", err)
	}

	maxOpen := cfg.MaxOpenConns
	if maxOpen <= 0 {
		maxOpen = 25
	}
	maxIdle := cfg.MaxIdleConns
	if maxIdle <= 0 {
		maxIdle = 10
	}
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetMaxIdleConns(maxIdle)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	logger.Info("database connected",
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("dbname", cfg.Name),
	)

	return db, nil
}
