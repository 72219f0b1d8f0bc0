package employmentfile

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SearchOptions carries independently optional filters. Zero values mean
// "no filter"; pointer fields distinguish "absent" from falsy.
type SearchOptions struct {
	WorkerID *uuid.UUID
	// Rut matches as a substring, dots and dashes ignored on both sides.
	Rut      string
	Statuses []Status

	Position     string
	Department   string
	ContractType string
	ScheduleType string

	SalaryMin *int64
	SalaryMax *int64

	UnemploymentInsurance *bool

	StartFrom *time.Time
	StartTo   *time.Time

	EndFrom *time.Time
	EndTo   *time.Time
	// IncludeOpenEnded OR-includes files with no contract end date alongside
	// the end-date range match.
	IncludeOpenEnded bool
}

//go:generate mockgen -source=employmentfile_repo.go -destination=mock/employmentfile_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, file *EmploymentFile) error
	FindByID(ctx context.Context, id string) (*EmploymentFile, error)
	FindByWorkerID(ctx context.Context, workerID string) (*EmploymentFile, error)
	Search(ctx context.Context, opts SearchOptions) ([]EmploymentFile, error)
	Update(ctx context.Context, file *EmploymentFile) error
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

func (r *repository) Create(ctx context.Context, file *EmploymentFile) error {
	if r.tx != nil {
		return r.createInTx(ctx, file)
	}
	return r.db.WithContext(ctx).Create(file).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*EmploymentFile, error) {
	var file EmploymentFile
	err := r.db.WithContext(ctx).First(&file, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &file, nil
}

func (r *repository) FindByWorkerID(ctx context.Context, workerID string) (*EmploymentFile, error) {
	var file EmploymentFile
	err := r.db.WithContext(ctx).First(&file, "worker_id = ?", workerID).Error
	if err != nil {
		return nil, err
	}
	return &file, nil
}

func (r *repository) Search(ctx context.Context, opts SearchOptions) ([]EmploymentFile, error) {
	q := r.db.WithContext(ctx).Model(&EmploymentFile{})

	if opts.WorkerID != nil {
		q = q.Where("employment_files.worker_id = ?", *opts.WorkerID)
	}
	if opts.Rut != "" {
		clean := strings.NewReplacer(".", "", "-", "").Replace(opts.Rut)
		q = q.Joins("JOIN workers ON workers.id = employment_files.worker_id").
			Where("REPLACE(REPLACE(workers.rut, '.', ''), '-', '') ILIKE ?", "%"+clean+"%")
	}
	if len(opts.Statuses) > 0 {
		q = q.Where("employment_files.status IN ?", opts.Statuses)
	}
	if opts.Position != "" {
		q = applyLabelFilter(q, "employment_files.position", opts.Position, PlaceholderPosition)
	}
	if opts.Department != "" {
		q = applyLabelFilter(q, "employment_files.department", opts.Department, PlaceholderDepartment)
	}
	if opts.ContractType != "" {
		q = q.Where("employment_files.contract_type = ?", opts.ContractType)
	}
	if opts.ScheduleType != "" {
		q = q.Where("employment_files.schedule_type = ?", opts.ScheduleType)
	}
	if opts.SalaryMin != nil {
		q = q.Where("employment_files.base_salary >= ?", *opts.SalaryMin)
	}
	if opts.SalaryMax != nil {
		q = q.Where("employment_files.base_salary <= ?", *opts.SalaryMax)
	}
	if opts.UnemploymentInsurance != nil {
		q = q.Where("employment_files.unemployment_insurance = ?", *opts.UnemploymentInsurance)
	}
	if opts.StartFrom != nil {
		q = q.Where("employment_files.contract_start_date >= ?", *opts.StartFrom)
	}
	if opts.StartTo != nil {
		q = q.Where("employment_files.contract_start_date <= ?", *opts.StartTo)
	}
	if opts.EndFrom != nil || opts.EndTo != nil {
		rangeQ := r.db.Model(&EmploymentFile{})
		if opts.EndFrom != nil {
			rangeQ = rangeQ.Where("employment_files.contract_end_date >= ?", *opts.EndFrom)
		}
		if opts.EndTo != nil {
			rangeQ = rangeQ.Where("employment_files.contract_end_date <= ?", *opts.EndTo)
		}
		if opts.IncludeOpenEnded {
			q = q.Where(rangeQ.Or("employment_files.contract_end_date IS NULL"))
		} else {
			q = q.Where(rangeQ)
		}
	} else if opts.IncludeOpenEnded {
		q = q.Where("employment_files.contract_end_date IS NULL")
	}

	var files []EmploymentFile
	err := q.Order("employment_files.created_at ASC, employment_files.id ASC").Find(&files).Error
	return files, err
}

// applyLabelFilter resolves the "sin cargo / sin área" special case: asking
// for the placeholder literally matches only unfilled files, anything else is
// a case-insensitive substring match.
func applyLabelFilter(q *gorm.DB, column, term, placeholder string) *gorm.DB {
	if strings.EqualFold(strings.TrimSpace(term), placeholder) {
		return q.Where(column+" = ?", placeholder)
	}
	return q.Where(column+" ILIKE ?", "%"+term+"%")
}

func (r *repository) Update(ctx context.Context, file *EmploymentFile) error {
	if r.tx != nil {
		return r.updateInTx(ctx, file)
	}
	return r.db.WithContext(ctx).Save(file).Error
}

func (r *repository) createInTx(ctx context.Context, file *EmploymentFile) error {
	query := `
        INSERT INTO employment_files (
            id, worker_id, position, department, contract_type, schedule_type,
            base_salary, contract_start_date, contract_end_date, afp,
            health_insurer, unemployment_insurance, contract_document,
            status, disengagement_reason, created_at, updated_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, NOW(), NOW())
    `
	_, err := r.tx.ExecContext(
		ctx, query,
		file.ID, file.WorkerID, file.Position, file.Department, file.ContractType,
		file.ScheduleType, file.BaseSalary, file.ContractStartDate, file.ContractEndDate,
		file.Afp, file.HealthInsurer, file.UnemploymentInsurance, file.ContractDocument,
		file.Status, file.DisengagementReason,
	)
	return err
}

func (r *repository) updateInTx(ctx context.Context, file *EmploymentFile) error {
	query := `
        UPDATE employment_files SET
            position = $2, department = $3, contract_type = $4, schedule_type = $5,
            base_salary = $6, contract_start_date = $7, contract_end_date = $8,
            afp = $9, health_insurer = $10, unemployment_insurance = $11,
            contract_document = $12, status = $13, disengagement_reason = $14,
            updated_at = NOW()
        WHERE id = $1
    `
	_, err := r.tx.ExecContext(
		ctx, query,
		file.ID, file.Position, file.Department, file.ContractType, file.ScheduleType,
		file.BaseSalary, file.ContractStartDate, file.ContractEndDate, file.Afp,
		file.HealthInsurer, file.UnemploymentInsurance, file.ContractDocument,
		file.Status, file.DisengagementReason,
	)
	return err
}
