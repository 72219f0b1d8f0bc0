package consumer

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/HikkizZ/Project-GPS-2025-sub001/internal/employmentfile"
	"github.com/HikkizZ/Project-GPS-2025-sub001/internal/events"
	"github.com/HikkizZ/Project-GPS-2025-sub001/internal/payroll"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// lifecycleEnvelope covers the fields shared by every worker lifecycle
// payload; the per-type extras are irrelevant here.
type lifecycleEnvelope struct {
	EventType string `json:"event_type"`
	WorkerID  string `json:"worker_id"`
}

// ConsumeWorkerLifecycle reacts to disengagements and reactivations by
// dropping the worker's cached salary calculation. A registration carries no
// employment file yet, so it is acknowledged without side effects.
func ConsumeWorkerLifecycle(
	ctx context.Context,
	reader *kafkago.Reader,
	files employmentfile.Repository,
	payrollService payroll.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.worker_lifecycle")
	log.Info("worker lifecycle consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("worker lifecycle consumer stopped")
				return
			}
			log.Error("fetch worker lifecycle message failed", zap.Error(err))
			continue
		}

		var event lifecycleEnvelope
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode worker lifecycle event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if event.EventType != events.TypeWorkerDisengaged && event.EventType != events.TypeWorkerReactivated {
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		file, err := files.FindByWorkerID(ctx, event.WorkerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				log.Warn("worker lifecycle event without employment file",
					zap.String("worker_id", event.WorkerID),
					zap.String("event_type", event.EventType),
				)
				_ = reader.CommitMessages(ctx, msg)
				continue
			}
			log.Error("resolve employment file failed",
				zap.String("worker_id", event.WorkerID),
				zap.Error(err),
			)
			continue
		}

		if err := payrollService.Invalidate(ctx, file.ID.String()); err != nil {
			log.Error("invalidate payroll cache failed",
				zap.String("employment_file_id", file.ID.String()),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit worker lifecycle message failed", zap.Error(err))
			continue
		}

		log.Info("payroll cache invalidated from lifecycle event",
			zap.String("worker_id", event.WorkerID),
			zap.String("event_type", event.EventType),
		)
	}
}
