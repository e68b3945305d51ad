package app

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/palpita/lottery-api/internal/api"
	"github.com/palpita/lottery-api/internal/cache"
	"github.com/palpita/lottery-api/internal/config"
	"github.com/palpita/lottery-api/internal/db"
	"github.com/palpita/lottery-api/internal/logger"
)

func Start() error {
	conf, err := config.Load("./cmd/app/config.yml")
	if err != nil {
		return fmt.Errorf("failed to initialize config -> %w", err)
	}

	if err = logger.Init(conf.API.Environment); err != nil {
		return fmt.Errorf("failed to initialize logger -> %w", err)
	}

	dbURL := os.Getenv("DATABASE_URL")
	var postgresDB *gorm.DB
	if dbURL != "" {
		postgresDB, err = db.OpenPostgresWithURL(dbURL)
	} else {
		postgresDB, err = db.OpenPostgres(conf.Postgres)
	}
	if err != nil {
		return fmt.Errorf("failed to initialize database -> %w", err)
	}

	// Cache is best effort. A nil client disables it.
	redisClient := cache.NewRedisClient(conf.Redis)
	if redisClient == nil {
		zap.L().Warn("redis unavailable, catalog caching disabled")
	}

	s := api.NewServer(conf, postgresDB, redisClient)

	addr := ":" + s.Config.API.Port
	zap.L().Info(fmt.Sprintf("starting server at %v", addr))
	if err = s.Router.Run(addr); err != nil {
		return fmt.Errorf("failed to start the server -> %w", err)
	}

	return nil
}
