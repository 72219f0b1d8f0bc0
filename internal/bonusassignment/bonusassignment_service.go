package bonusassignment

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/HikkizZ/Project-GPS-2025-sub001/internal/bonus"
	bonuserrors "github.com/HikkizZ/Project-GPS-2025-sub001/internal/bonus/errors"
	assignmenterrors "github.com/HikkizZ/Project-GPS-2025-sub001/internal/bonusassignment/errors"
	"github.com/HikkizZ/Project-GPS-2025-sub001/internal/employmentfile"
	fileerrors "github.com/HikkizZ/Project-GPS-2025-sub001/internal/employmentfile/errors"
	"github.com/HikkizZ/Project-GPS-2025-sub001/internal/events"
	"github.com/HikkizZ/Project-GPS-2025-sub001/internal/messaging/kafka"
	"github.com/HikkizZ/Project-GPS-2025-sub001/internal/shared/clock"
	"github.com/HikkizZ/Project-GPS-2025-sub001/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=bonusassignment_service.go -destination=mock/bonusassignment_service_mock.go -package=mock
type Service interface {
	Assign(ctx context.Context, req CreateAssignmentRequest) (AssignmentResponse, error)
	Update(ctx context.Context, id string, req UpdateAssignmentRequest) (AssignmentResponse, error)
	ListByFile(ctx context.Context, fileID string, activeOnly bool) ([]AssignmentResponse, error)
	ListForWorker(ctx context.Context, workerID string) ([]AssignmentResponse, error)
	ExpireAssignments(ctx context.Context) (SweepResult, error)
}

type service struct {
	db      *sql.DB
	repo    Repository
	bonuses bonus.Repository
	files   employmentfile.Repository
	outbox  kafka.OutboxRepository
	loc     *time.Location
	logger  *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	bonuses bonus.Repository,
	files employmentfile.Repository,
	outbox kafka.OutboxRepository,
	loc *time.Location,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("bonusassignment.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("bonusassignment.service")
	}
	return &service{
		db:      db,
		repo:    repo,
		bonuses: bonuses,
		files:   files,
		outbox:  outbox,
		loc:     loc,
		logger:  l,
	}
}

func (s *service) Assign(ctx context.Context, req CreateAssignmentRequest) (AssignmentResponse, error) {
	file, err := s.files.FindByID(ctx, req.EmploymentFileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AssignmentResponse{}, fileerrors.ErrFileNotFound
		}
		return AssignmentResponse{}, err
	}
	if file.Status == employmentfile.StatusDisengaged {
		return AssignmentResponse{}, fileerrors.ErrFileDisengaged
	}

	b, err := s.bonuses.FindByID(ctx, req.BonusID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AssignmentResponse{}, bonuserrors.ErrBonusNotFound
		}
		return AssignmentResponse{}, err
	}

	exists, err := s.repo.HasActiveAssignment(ctx, req.EmploymentFileID, req.BonusID, "")
	if err != nil {
		return AssignmentResponse{}, err
	}
	if exists {
		return AssignmentResponse{}, assignmenterrors.ErrDuplicateActiveAssignment
	}

	today := clock.Today(s.loc)
	endDate, err := bonus.ResolveEndDate(b.Temporality, today, b.DurationMonths)
	if err != nil {
		return AssignmentResponse{}, err
	}

	a := &Assignment{
		ID:               uuid.New(),
		EmploymentFileID: file.ID,
		BonusID:          b.ID,
		AssignedAt:       today,
		EndDate:          endDate,
		Active:           true,
		Observations:     req.Observations,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AssignmentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Create(ctx, a); err != nil {
		s.logger.Error("assign bonus persist failed", zap.Error(err))
		return AssignmentResponse{}, err
	}

	if err := s.enqueueRecalculation(ctx, tx, file.ID.String(), "bonus assigned"); err != nil {
		return AssignmentResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return AssignmentResponse{}, err
	}

	s.logger.Info("assign bonus success",
		zap.String("assignment_id", a.ID.String()),
		zap.String("employment_file_id", file.ID.String()),
		zap.String("bonus_id", b.ID.String()),
	)

	a.Bonus = b
	return mapAssignmentToResponse(*a, ""), nil
}

// Update applies a proposed catalog bonus to an existing assignment through
// the diff engine. When req.Active is set, the call is a plain
// activate/deactivate toggle and the diff is skipped.
func (s *service) Update(ctx context.Context, id string, req UpdateAssignmentRequest) (AssignmentResponse, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AssignmentResponse{}, assignmenterrors.ErrAssignmentNotFound
		}
		return AssignmentResponse{}, err
	}
	if a.Bonus == nil {
		return AssignmentResponse{}, bonuserrors.ErrBonusNotFound
	}

	if req.Active != nil {
		return s.toggleActive(ctx, a, *req.Active, req.Observations)
	}

	if !a.Active {
		return AssignmentResponse{}, assignmenterrors.ErrAssignmentInactive
	}

	proposed, err := s.bonuses.FindByID(ctx, req.BonusID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AssignmentResponse{}, bonuserrors.ErrBonusNotFound
		}
		return AssignmentResponse{}, err
	}

	result, err := DiffAssignment(*a, *proposed, clock.Today(s.loc))
	if err != nil {
		return AssignmentResponse{}, err
	}

	// A bonus swap must not collide with an active assignment the file
	// already holds for the proposed bonus.
	if result.Updated != nil && result.Updated.BonusID != a.BonusID {
		exists, err := s.repo.HasActiveAssignment(ctx, a.EmploymentFileID.String(), proposed.ID.String(), a.ID.String())
		if err != nil {
			return AssignmentResponse{}, err
		}
		if exists {
			return AssignmentResponse{}, assignmenterrors.ErrDuplicateActiveAssignment
		}
	}

	if result.Reason == ReasonAssignmentInactive {
		return AssignmentResponse{}, assignmenterrors.ErrAssignmentInactive
	}

	if result.Reason == ReasonNoChanges {
		if req.Observations != nil && *req.Observations != a.Observations {
			a.Observations = *req.Observations
			if err := s.repo.Update(ctx, a); err != nil {
				return AssignmentResponse{}, err
			}
		}
		a.Bonus = proposed
		return mapAssignmentToResponse(*a, string(ReasonNoChanges)), nil
	}

	updated := result.Updated
	if req.Observations != nil {
		updated.Observations = *req.Observations
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AssignmentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Update(ctx, updated); err != nil {
		s.logger.Error("update assignment persist failed",
			zap.String("assignment_id", id),
			zap.Error(err),
		)
		return AssignmentResponse{}, err
	}

	if err := s.enqueueRecalculation(ctx, tx, updated.EmploymentFileID.String(), string(result.Reason)); err != nil {
		return AssignmentResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return AssignmentResponse{}, err
	}

	s.logger.Info("update assignment success",
		zap.String("assignment_id", id),
		zap.String("reason", string(result.Reason)),
	)

	updated.Bonus = proposed
	return mapAssignmentToResponse(*updated, string(result.Reason)), nil
}

func (s *service) toggleActive(ctx context.Context, a *Assignment, active bool, observations *string) (AssignmentResponse, error) {
	if a.Active == active {
		return mapAssignmentToResponse(*a, string(ReasonNoChanges)), nil
	}

	if active {
		exists, err := s.repo.HasActiveAssignment(ctx, a.EmploymentFileID.String(), a.BonusID.String(), a.ID.String())
		if err != nil {
			return AssignmentResponse{}, err
		}
		if exists {
			return AssignmentResponse{}, assignmenterrors.ErrDuplicateActiveAssignment
		}
	}

	a.Active = active
	if active {
		// Reactivating restarts the assignment window from today.
		today := clock.Today(s.loc)
		end, err := bonus.ResolveEndDate(a.Bonus.Temporality, today, a.Bonus.DurationMonths)
		if err != nil {
			return AssignmentResponse{}, err
		}
		a.AssignedAt = today
		a.EndDate = end
	}
	if observations != nil {
		a.Observations = *observations
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AssignmentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Update(ctx, a); err != nil {
		return AssignmentResponse{}, err
	}

	if err := s.enqueueRecalculation(ctx, tx, a.EmploymentFileID.String(), "assignment toggled"); err != nil {
		return AssignmentResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return AssignmentResponse{}, err
	}

	s.logger.Info("toggle assignment success",
		zap.String("assignment_id", a.ID.String()),
		zap.Bool("active", active),
	)

	return mapAssignmentToResponse(*a, ""), nil
}

func (s *service) ListByFile(ctx context.Context, fileID string, activeOnly bool) ([]AssignmentResponse, error) {
	if _, err := uuid.Parse(fileID); err != nil {
		return nil, assignmenterrors.ErrInvalidFileID
	}

	assignments, err := s.repo.FindByFile(ctx, fileID, activeOnly)
	if err != nil {
		s.logger.Error("list assignments failed", zap.String("employment_file_id", fileID), zap.Error(err))
		return nil, err
	}

	resp := make([]AssignmentResponse, len(assignments))
	for i, a := range assignments {
		resp[i] = mapAssignmentToResponse(a, "")
	}
	return resp, nil
}

// ListForWorker resolves the worker's employment file and lists its active
// assignments. Deactivated history stays HR-only.
func (s *service) ListForWorker(ctx context.Context, workerID string) ([]AssignmentResponse, error) {
	file, err := s.files.FindByWorkerID(ctx, workerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fileerrors.ErrFileNotFound
		}
		return nil, err
	}
	return s.ListByFile(ctx, file.ID.String(), true)
}

// ExpireAssignments deactivates every active assignment whose end date has
// passed. Each row is persisted on its own so a mid-sweep failure keeps the
// rows already processed; the sweep is idempotent because it only matches
// rows still active.
func (s *service) ExpireAssignments(ctx context.Context) (SweepResult, error) {
	today := clock.Today(s.loc)

	expired, err := s.repo.FindExpired(ctx, today)
	if err != nil {
		s.logger.Error("expire sweep query failed", zap.Error(err))
		return SweepResult{}, err
	}

	var result SweepResult
	for i := range expired {
		a := expired[i]
		a.Active = false

		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return result, err
		}

		qtx := s.repo.WithTx(tx)
		if err := qtx.Update(ctx, &a); err != nil {
			tx.Rollback()
			s.logger.Error("expire assignment failed",
				zap.String("assignment_id", a.ID.String()),
				zap.Error(err),
			)
			continue
		}

		if err := s.enqueueRecalculation(ctx, tx, a.EmploymentFileID.String(), "assignment expired"); err != nil {
			tx.Rollback()
			continue
		}

		if err := tx.Commit(); err != nil {
			continue
		}

		result.Deactivated++
	}

	if result.Deactivated > 0 {
		s.logger.Info("expire sweep done", zap.Int("deactivated", result.Deactivated))
	}

	return result, nil
}

func (s *service) enqueueRecalculation(ctx context.Context, tx *sql.Tx, fileID, reason string) error {
	event := events.PayrollRecalculationEvent{
		EventType:        events.TypePayrollRecalculation,
		RequestID:        contextutil.GetRequestID(ctx),
		EmploymentFileID: fileID,
		Reason:           reason,
		OccurredAt:       time.Now().In(s.loc),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     event.RequestID,
		AggregateType: "employment_file",
		AggregateID:   fileID,
		EventType:     events.TypePayrollRecalculation,
		Topic:         events.PayrollRecalculationTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func mapAssignmentToResponse(a Assignment, reason string) AssignmentResponse {
	resp := AssignmentResponse{
		ID:               a.ID.String(),
		EmploymentFileID: a.EmploymentFileID.String(),
		BonusID:          a.BonusID.String(),
		AssignedAt:       a.AssignedAt.Format("2006-01-02"),
		Active:           a.Active,
		Observations:     a.Observations,
		DiffReason:       reason,
	}
	if a.EndDate != nil {
		end := a.EndDate.Format("2006-01-02")
		resp.EndDate = &end
	}
	if a.Bonus != nil {
		resp.BonusName = a.Bonus.Name
	}
	return resp
}
