package app

import (
	"os"
	"time"

	"github.com/HikkizZ/Project-GPS-2025-sub001/internal/middleware"
	"github.com/HikkizZ/Project-GPS-2025-sub001/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// loadTimezone resolves the company timezone once at startup. Every
// day-granularity rule downstream receives this location explicitly.
func loadTimezone() (*time.Location, error) {
	name := os.Getenv("APP_TIMEZONE")
	if name == "" {
		name = "America/Santiago"
	}
	return time.LoadLocation(name)
}

func BuildApp(router *gin.Engine) error {
	logger := zap.L().Named("app")

	loc, err := loadTimezone()
	if err != nil {
		return err
	}

	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}

	db, err := gormDB.DB()
	if err != nil {
		return err
	}

	rdb, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		return err
	}

	router.Use(middleware.RequestID())
	router.Use(middleware.ContextLogger(logger))
	router.Use(middleware.RateLimitByIP(10, 30))

	if err := registerModules(router, db, gormDB, rdb, loc); err != nil {
		return err
	}

	logger.Info("application wired",
		zap.String("timezone", loc.String()),
	)
	return nil
}
