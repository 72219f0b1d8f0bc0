package main

import (
	"github.com/HikkizZ/Project-GPS-2025-sub001/internal/app"
	"github.com/HikkizZ/Project-GPS-2025-sub001/internal/bootstrap"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Entry point for the background process: outbox publishing and the daily
// expiry sweeps.
func main() {
	_ = godotenv.Load()

	logger, err := bootstrap.NewLogger()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if err := app.RunWorker(); err != nil {
		logger.Fatal("run worker failed", zap.Error(err))
	}
}
