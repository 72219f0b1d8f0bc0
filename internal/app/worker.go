package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/HikkizZ/Project-GPS-2025-sub001/internal/bonus"
	"github.com/HikkizZ/Project-GPS-2025-sub001/internal/bonusassignment"
	"github.com/HikkizZ/Project-GPS-2025-sub001/internal/employmentfile"
	"github.com/HikkizZ/Project-GPS-2025-sub001/internal/history"
	"github.com/HikkizZ/Project-GPS-2025-sub001/internal/leave"
	"github.com/HikkizZ/Project-GPS-2025-sub001/internal/messaging/kafka"
	"github.com/HikkizZ/Project-GPS-2025-sub001/internal/messaging/kafka/producer"
	"github.com/HikkizZ/Project-GPS-2025-sub001/internal/shared/connection"
	"github.com/HikkizZ/Project-GPS-2025-sub001/internal/worker"

	"go.uber.org/zap"
)

// RunWorker hosts the background side of the system: the outbox publisher
// and the daily expiry sweeps for bonus assignments and leave periods.
func RunWorker() error {
	logger := zap.L().Named("app.worker")

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

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	kafkaBroker := os.Getenv("KAFKA_BROKER")
	if kafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	kafkaWriter, err := connection.ConnectKafkaWithRetry(kafkaBroker, 5)
	if err != nil {
		return err
	}
	defer kafkaWriter.Close()

	outboxRepo := kafka.NewOutboxRepository(sqlDB)

	workerRepo := worker.NewRepository(gormDB)
	fileRepo := employmentfile.NewRepository(gormDB)
	historyRepo := history.NewRepository(gormDB)
	bonusRepo := bonus.NewRepository(gormDB)
	assignmentRepo := bonusassignment.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)

	assignmentService := bonusassignment.NewService(sqlDB, assignmentRepo, bonusRepo, fileRepo, outboxRepo, loc)
	leaveService := leave.NewService(sqlDB, leaveRepo, workerRepo, fileRepo, historyRepo, loc)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go producer.ProcessOutboxEvents(
		ctx,
		outboxRepo,
		kafkaWriter,
		logger,
		3*time.Second,
	)

	go runDailySweeps(ctx, loc, assignmentService, leaveService, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("worker shutting down")
	cancel()

	return nil
}

// runDailySweeps fires shortly after local midnight so that assignments and
// leaves whose end date passed yesterday are closed before the workday starts.
func runDailySweeps(
	ctx context.Context,
	loc *time.Location,
	assignments bonusassignment.Service,
	leaves leave.Service,
	logger *zap.Logger,
) {
	log := logger.Named("sweeps")

	for {
		next := nextSweepTime(time.Now().In(loc), loc)
		log.Info("next expiry sweep scheduled", zap.Time("at", next))

		select {
		case <-ctx.Done():
			log.Info("sweep scheduler stopped")
			return
		case <-time.After(time.Until(next)):
		}

		if result, err := assignments.ExpireAssignments(ctx); err != nil {
			log.Error("bonus assignment sweep failed", zap.Error(err))
		} else {
			log.Info("bonus assignment sweep done", zap.Int("deactivated", result.Deactivated))
		}

		if result, err := leaves.ExpireLeaves(ctx); err != nil {
			log.Error("leave sweep failed", zap.Error(err))
		} else {
			log.Info("leave sweep done", zap.Int("completed", result.Completed))
		}
	}
}

// nextSweepTime returns the next 00:01 local time strictly after now.
func nextSweepTime(now time.Time, loc *time.Location) time.Time {
	y, m, d := now.In(loc).Date()
	next := time.Date(y, m, d, 0, 1, 0, 0, loc)
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
