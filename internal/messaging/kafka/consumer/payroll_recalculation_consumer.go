package consumer

import (
	"context"
	"encoding/json"

	"github.com/HikkizZ/Project-GPS-2025-sub001/internal/events"
	"github.com/HikkizZ/Project-GPS-2025-sub001/internal/payroll"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumePayrollRecalculation drops the cached salary calculation for every
// employment file flagged stale by an upstream change. The next read
// recomputes from the database.
func ConsumePayrollRecalculation(
	ctx context.Context,
	reader *kafkago.Reader,
	payrollService payroll.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.payroll_recalculation")
	log.Info("payroll recalculation consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("payroll recalculation consumer stopped")
				return
			}
			log.Error("fetch payroll recalculation message failed", zap.Error(err))
			continue
		}

		var event events.PayrollRecalculationEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode payroll recalculation event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := payrollService.Invalidate(ctx, event.EmploymentFileID); err != nil {
			log.Error("invalidate payroll cache failed",
				zap.String("employment_file_id", event.EmploymentFileID),
				zap.String("reason", event.Reason),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit payroll recalculation message failed", zap.Error(err))
			continue
		}

		log.Info("payroll cache invalidated from event",
			zap.String("employment_file_id", event.EmploymentFileID),
			zap.String("reason", event.Reason),
		)
	}
}
