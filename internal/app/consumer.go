package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/HikkizZ/Project-GPS-2025-sub001/internal/bonusassignment"
	"github.com/HikkizZ/Project-GPS-2025-sub001/internal/employmentfile"
	"github.com/HikkizZ/Project-GPS-2025-sub001/internal/events"
	"github.com/HikkizZ/Project-GPS-2025-sub001/internal/messaging/kafka/consumer"
	"github.com/HikkizZ/Project-GPS-2025-sub001/internal/payroll"
	"github.com/HikkizZ/Project-GPS-2025-sub001/internal/shared/connection"

	"go.uber.org/zap"
)

// RunConsumer subscribes to the payroll recalculation and worker lifecycle
// topics and keeps the cached salary calculations consistent with the
// database.
func RunConsumer() error {
	logger := zap.L().Named("app.consumer")

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

	rdb, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		return err
	}

	kafkaBroker := os.Getenv("KAFKA_BROKER")
	if kafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	fileRepo := employmentfile.NewRepository(gormDB)
	assignmentRepo := bonusassignment.NewRepository(gormDB)
	payrollService := payroll.NewService(fileRepo, assignmentRepo, rdb)

	recalcReader := connection.NewKafkaReader(
		kafkaBroker,
		events.PayrollRecalculationTopic,
		"sglamas-payroll-recalculation",
	)
	defer recalcReader.Close()

	lifecycleReader := connection.NewKafkaReader(
		kafkaBroker,
		events.WorkerLifecycleTopic,
		"sglamas-worker-lifecycle",
	)
	defer lifecycleReader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go consumer.ConsumePayrollRecalculation(ctx, recalcReader, payrollService, logger)
	go consumer.ConsumeWorkerLifecycle(ctx, lifecycleReader, fileRepo, payrollService, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()

	return nil
}
