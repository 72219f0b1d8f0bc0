package leave

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, l *LeaveRequest) error
	FindByID(ctx context.Context, id string) (*LeaveRequest, error)
	FindAll(ctx context.Context) ([]LeaveRequest, error)
	FindByWorker(ctx context.Context, workerID string) ([]LeaveRequest, error)
	Update(ctx context.Context, l *LeaveRequest) error
	HasOverlappingPeriod(ctx context.Context, workerID string, startDate, endDate time.Time, excludeID *string) (bool, error)
	FindExpired(ctx context.Context, asOf time.Time) ([]LeaveRequest, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Create(ctx context.Context, l *LeaveRequest) error {
	if r.tx != nil {
		return r.createInTx(ctx, l)
	}
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*LeaveRequest, error) {
	var l LeaveRequest
	err := r.db.WithContext(ctx).First(&l, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *repository) FindAll(ctx context.Context) ([]LeaveRequest, error) {
	var leaves []LeaveRequest
	err := r.db.WithContext(ctx).
		Order("start_date DESC").
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) FindByWorker(ctx context.Context, workerID string) ([]LeaveRequest, error) {
	var leaves []LeaveRequest
	err := r.db.WithContext(ctx).
		Where("worker_id = ?", workerID).
		Order("start_date DESC").
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) Update(ctx context.Context, l *LeaveRequest) error {
	if r.tx != nil {
		return r.updateInTx(ctx, l)
	}
	return r.db.WithContext(ctx).Save(l).Error
}

// Rejected requests never block a new one over the same dates.
func (r *repository) HasOverlappingPeriod(ctx context.Context, workerID string, startDate, endDate time.Time, excludeID *string) (bool, error) {
	db := r.db.WithContext(ctx).
		Model(&LeaveRequest{}).
		Where("worker_id = ?", workerID).
		Where("status IN ?", []string{StatusPending, StatusApproved}).
		Where("NOT (end_date < ? OR start_date > ?)", startDate, endDate)

	if excludeID != nil && *excludeID != "" {
		db = db.Where("id <> ?", *excludeID)
	}

	var count int64
	err := db.Count(&count).Error
	return count > 0, err
}

func (r *repository) FindExpired(ctx context.Context, asOf time.Time) ([]LeaveRequest, error) {
	var leaves []LeaveRequest
	err := r.db.WithContext(ctx).
		Where("status = ?", StatusApproved).
		Where("end_date < ?", asOf).
		Order("end_date ASC").
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) createInTx(ctx context.Context, l *LeaveRequest) error {
	_, err := r.tx.ExecContext(ctx, `
		INSERT INTO leave_requests (
			id, worker_id, type, start_date, end_date, total_days, reason,
			status, created_by, approved_by, rejection_reason,
			created_at, updated_at, approved_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW(), $12)
	`,
		l.ID, l.WorkerID, l.Type, l.StartDate, l.EndDate, l.TotalDays, l.Reason,
		l.Status, l.CreatedBy, l.ApprovedBy, l.RejectionReason, l.ApprovedAt,
	)
	return err
}

func (r *repository) updateInTx(ctx context.Context, l *LeaveRequest) error {
	_, err := r.tx.ExecContext(ctx, `
		UPDATE leave_requests SET
			type = $1, start_date = $2, end_date = $3, total_days = $4,
			reason = $5, status = $6, approved_by = $7, rejection_reason = $8,
			approved_at = $9, updated_at = NOW()
		WHERE id = $10 AND deleted_at IS NULL
	`,
		l.Type, l.StartDate, l.EndDate, l.TotalDays,
		l.Reason, l.Status, l.ApprovedBy, l.RejectionReason,
		l.ApprovedAt, l.ID,
	)
	return err
}
