package leave

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/HikkizZ/Project-GPS-2025-sub001/internal/employmentfile"
	"github.com/HikkizZ/Project-GPS-2025-sub001/internal/history"
	leaveerrors "github.com/HikkizZ/Project-GPS-2025-sub001/internal/leave/errors"
	"github.com/HikkizZ/Project-GPS-2025-sub001/internal/shared/clock"
	"github.com/HikkizZ/Project-GPS-2025-sub001/internal/worker"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateLeaveRequest, actorUserID string) (LeaveResponse, error)
	GetAll(ctx context.Context) ([]LeaveResponse, error)
	GetByWorker(ctx context.Context, workerID string) ([]LeaveResponse, error)
	Approve(ctx context.Context, id, actorUserID string) (LeaveResponse, error)
	Reject(ctx context.Context, id string, req RejectLeaveRequest, actorUserID string) (LeaveResponse, error)
	ExpireLeaves(ctx context.Context) (SweepResult, error)
}

type service struct {
	db      *sql.DB
	repo    Repository
	workers worker.Repository
	files   employmentfile.Repository
	history history.Repository
	loc     *time.Location
	logger  *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	workers worker.Repository,
	files employmentfile.Repository,
	historyRepo history.Repository,
	loc *time.Location,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{
		db:      db,
		repo:    repo,
		workers: workers,
		files:   files,
		history: historyRepo,
		loc:     loc,
		logger:  l,
	}
}

// fileStatusFor maps a leave type to the employment file status an approval
// puts the worker in.
func fileStatusFor(leaveType string) employmentfile.Status {
	if leaveType == TypeAdminPermit {
		return employmentfile.StatusAdminPermit
	}
	return employmentfile.StatusLicense
}

func leaveLabel(leaveType string) string {
	if leaveType == TypeAdminPermit {
		return "Permiso administrativo"
	}
	return "Licencia médica"
}

func (s *service) Create(ctx context.Context, req CreateLeaveRequest, actorUserID string) (LeaveResponse, error) {
	startDate, err := s.parseDate(req.StartDate)
	if err != nil {
		return LeaveResponse{}, err
	}
	endDate, err := s.parseDate(req.EndDate)
	if err != nil {
		return LeaveResponse{}, err
	}
	if startDate.After(endDate) {
		return LeaveResponse{}, leaveerrors.ErrInvalidDateRange
	}

	w, err := s.workers.FindByID(ctx, req.WorkerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrWorkerNotFound
		}
		return LeaveResponse{}, err
	}
	if !w.InSystem {
		return LeaveResponse{}, leaveerrors.ErrWorkerDisengaged
	}

	overlap, err := s.repo.HasOverlappingPeriod(ctx, req.WorkerID, startDate, endDate, nil)
	if err != nil {
		s.logger.Error("create leave overlap check failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if overlap {
		s.logger.Warn("create leave overlap detected",
			zap.String("worker_id", req.WorkerID),
			zap.String("start_date", req.StartDate),
			zap.String("end_date", req.EndDate),
		)
		return LeaveResponse{}, leaveerrors.ErrLeaveOverlap
	}

	l := &LeaveRequest{
		ID:        uuid.New(),
		WorkerID:  w.ID,
		Type:      req.Type,
		StartDate: startDate,
		EndDate:   endDate,
		TotalDays: int(endDate.Sub(startDate).Hours()/24) + 1,
		Reason:    req.Reason,
		Status:    StatusPending,
		CreatedBy: uuidPtr(actorUserID),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Create(ctx, l); err != nil {
		s.logger.Error("create leave persist failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("create leave commit failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	s.logger.Info("leave request created",
		zap.String("leave_id", l.ID.String()),
		zap.String("worker_id", req.WorkerID),
		zap.String("type", req.Type),
	)
	return mapToResponse(*l), nil
}

func (s *service) GetAll(ctx context.Context) ([]LeaveResponse, error) {
	leaves, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

func (s *service) GetByWorker(ctx context.Context, workerID string) ([]LeaveResponse, error) {
	leaves, err := s.repo.FindByWorker(ctx, workerID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

func (s *service) Approve(ctx context.Context, id, actorUserID string) (LeaveResponse, error) {
	l, err := s.findLeave(ctx, id)
	if err != nil {
		return LeaveResponse{}, err
	}
	if l.Status != StatusPending {
		return LeaveResponse{}, leaveerrors.ErrInvalidStatusTransition
	}

	file, err := s.files.FindByWorkerID(ctx, l.WorkerID.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrNoEmploymentFile
		}
		return LeaveResponse{}, err
	}

	target := fileStatusFor(l.Type)
	if !file.Status.CanTransitionTo(target) {
		s.logger.Warn("approve leave refused by file status",
			zap.String("leave_id", id),
			zap.String("file_status", string(file.Status)),
		)
		return LeaveResponse{}, leaveerrors.ErrFileNotOnDuty
	}

	now := time.Now().In(s.loc)
	l.Status = StatusApproved
	l.ApprovedBy = uuidPtr(actorUserID)
	l.ApprovedAt = &now
	l.RejectionReason = nil
	file.Status = target

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("approve leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Update(ctx, l); err != nil {
		s.logger.Error("approve leave persist failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}
	if err := s.files.WithTx(tx).Update(ctx, file); err != nil {
		s.logger.Error("approve leave file update failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}

	observation := leaveLabel(l.Type) + " aprobada: " +
		l.StartDate.Format("2006-01-02") + " a " + l.EndDate.Format("2006-01-02")
	entry := employmentfile.SnapshotEntry(file, history.KindLeaveStart, observation, actorUserID, s.loc)
	if err := s.history.WithTx(tx).Create(ctx, entry); err != nil {
		s.logger.Error("approve leave history entry failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("approve leave commit failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}

	s.logger.Info("leave request approved",
		zap.String("leave_id", id),
		zap.String("worker_id", l.WorkerID.String()),
		zap.String("file_status", string(target)),
	)
	return mapToResponse(*l), nil
}

func (s *service) Reject(ctx context.Context, id string, req RejectLeaveRequest, actorUserID string) (LeaveResponse, error) {
	if req.Reason == "" {
		return LeaveResponse{}, leaveerrors.ErrRejectionReasonRequired
	}

	l, err := s.findLeave(ctx, id)
	if err != nil {
		return LeaveResponse{}, err
	}
	if l.Status != StatusPending {
		return LeaveResponse{}, leaveerrors.ErrInvalidStatusTransition
	}

	l.Status = StatusRejected
	l.ApprovedBy = nil
	l.ApprovedAt = nil
	l.RejectionReason = &req.Reason

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("reject leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Update(ctx, l); err != nil {
		s.logger.Error("reject leave persist failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("reject leave commit failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}

	s.logger.Info("leave request rejected",
		zap.String("leave_id", id),
		zap.String("worker_id", l.WorkerID.String()),
	)
	return mapToResponse(*l), nil
}

// ExpireLeaves closes approved leaves whose period already lapsed and puts
// the employment file back in ACTIVE. Runs daily. Each row commits on its
// own so one failure never holds the rest of the sweep.
func (s *service) ExpireLeaves(ctx context.Context) (SweepResult, error) {
	today := clock.Today(s.loc)

	expired, err := s.repo.FindExpired(ctx, today)
	if err != nil {
		s.logger.Error("leave sweep listing failed", zap.Error(err))
		return SweepResult{}, err
	}

	var result SweepResult
	for i := range expired {
		l := expired[i]
		if err := s.completeLeave(ctx, &l); err != nil {
			s.logger.Error("leave sweep row failed",
				zap.String("leave_id", l.ID.String()),
				zap.Error(err),
			)
			continue
		}
		result.Completed++
	}

	if result.Completed > 0 {
		s.logger.Info("leave sweep finished", zap.Int("completed", result.Completed))
	}
	return result, nil
}

func (s *service) completeLeave(ctx context.Context, l *LeaveRequest) error {
	file, err := s.files.FindByWorkerID(ctx, l.WorkerID.String())
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	l.Status = StatusCompleted

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Update(ctx, l); err != nil {
		return err
	}

	// The file only flips back when this leave is what holds it away from
	// ACTIVE. A disengagement during the leave stays untouched.
	if file != nil && file.Status == fileStatusFor(l.Type) {
		file.Status = employmentfile.StatusActive
		if err := s.files.WithTx(tx).Update(ctx, file); err != nil {
			return err
		}

		observation := "Término de " + lowerLabel(l.Type) + ": " + l.EndDate.Format("2006-01-02")
		entry := employmentfile.SnapshotEntry(file, history.KindLeaveEnd, observation, "", s.loc)
		if err := s.history.WithTx(tx).Create(ctx, entry); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func lowerLabel(leaveType string) string {
	if leaveType == TypeAdminPermit {
		return "permiso administrativo"
	}
	return "licencia médica"
}

func (s *service) findLeave(ctx context.Context, id string) (*LeaveRequest, error) {
	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, leaveerrors.ErrLeaveNotFound
		}
		return nil, err
	}
	return l, nil
}

func (s *service) parseDate(v string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", v, s.loc)
	if err != nil {
		return time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	return clock.AtMidday(t, s.loc), nil
}

func uuidPtr(v string) *uuid.UUID {
	if v == "" {
		return nil
	}
	id, err := uuid.Parse(v)
	if err != nil {
		return nil
	}
	return &id
}

func mapToResponse(l LeaveRequest) LeaveResponse {
	resp := LeaveResponse{
		ID:        l.ID.String(),
		WorkerID:  l.WorkerID.String(),
		Type:      l.Type,
		StartDate: l.StartDate.Format("2006-01-02"),
		EndDate:   l.EndDate.Format("2006-01-02"),
		TotalDays: l.TotalDays,
		Reason:    l.Reason,
		Status:    l.Status,
	}
	if l.CreatedBy != nil {
		v := l.CreatedBy.String()
		resp.CreatedBy = &v
	}
	if l.ApprovedBy != nil {
		v := l.ApprovedBy.String()
		resp.ApprovedBy = &v
	}
	if l.ApprovedAt != nil {
		v := l.ApprovedAt.Format(time.RFC3339)
		resp.ApprovedAt = &v
	}
	resp.RejectionReason = l.RejectionReason
	return resp
}

func mapToListResponse(leaves []LeaveRequest) []LeaveResponse {
	resp := make([]LeaveResponse, len(leaves))
	for i, l := range leaves {
		resp[i] = mapToResponse(l)
	}
	return resp
}
