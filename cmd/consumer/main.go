package main

import (
	"github.com/HikkizZ/Project-GPS-2025-sub001/internal/app"
	"github.com/HikkizZ/Project-GPS-2025-sub001/internal/bootstrap"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Entry point for the Kafka consumer process: payroll cache invalidation
// driven by recalculation and worker lifecycle events.
func main() {
	_ = godotenv.Load()

	logger, err := bootstrap.NewLogger()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if err := app.RunConsumer(); err != nil {
		logger.Fatal("run consumer failed", zap.Error(err))
	}
}
