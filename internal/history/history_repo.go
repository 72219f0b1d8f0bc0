package history

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=history_repo.go -destination=mock/history_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, entry *Entry) error
	FindByWorker(ctx context.Context, workerID string) ([]Entry, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{
		db: r.db,
		tx: tx,
	}
}

func (r *repository) Create(ctx context.Context, entry *Entry) error {
	if r.tx != nil {
		return createInTx(ctx, r.tx, entry)
	}
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *repository) FindByWorker(ctx context.Context, workerID string) ([]Entry, error) {
	var entries []Entry
	err := r.db.WithContext(ctx).
		Where("worker_id = ?", workerID).
		Order("created_at ASC").
		Find(&entries).Error
	return entries, err
}

func createInTx(ctx context.Context, tx *sql.Tx, entry *Entry) error {
	query := `
        INSERT INTO employment_history_entries (
            id, worker_id, actor_user_id, kind, observations,
            position, department, contract_type, schedule_type, base_salary,
            contract_start_date, contract_end_date, afp, health_insurer,
            unemployment_insurance, file_status, created_at
        ) VALUES (
            $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, NOW()
        )
    `
	_, err := tx.ExecContext(
		ctx, query,
		entry.ID, entry.WorkerID, entry.ActorUserID, entry.Kind, entry.Observations,
		entry.Position, entry.Department, entry.ContractType, entry.ScheduleType, entry.BaseSalary,
		entry.ContractStartDate, entry.ContractEndDate, entry.Afp, entry.HealthInsurer,
		entry.UnemploymentInsurance, entry.FileStatus,
	)
	return err
}
