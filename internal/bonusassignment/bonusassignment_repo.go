package bonusassignment

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=bonusassignment_repo.go -destination=mock/bonusassignment_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, a *Assignment) error
	FindByID(ctx context.Context, id string) (*Assignment, error)
	FindByFile(ctx context.Context, fileID string, activeOnly bool) ([]Assignment, error)
	HasActiveAssignment(ctx context.Context, fileID, bonusID, excludeID string) (bool, error)
	HasActiveAssignmentsForBonus(ctx context.Context, bonusID string) (bool, error)
	FindExpired(ctx context.Context, asOf time.Time) ([]Assignment, error)
	Update(ctx context.Context, a *Assignment) error
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

func (r *repository) Create(ctx context.Context, a *Assignment) error {
	if r.tx != nil {
		query := `
            INSERT INTO bonus_assignments (
                id, employment_file_id, bonus_id, assigned_at, end_date,
                active, observations, created_at, updated_at
            ) VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
        `
		_, err := r.tx.ExecContext(
			ctx, query,
			a.ID, a.EmploymentFileID, a.BonusID, a.AssignedAt, a.EndDate,
			a.Active, a.Observations,
		)
		return err
	}
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Assignment, error) {
	var a Assignment
	err := r.db.WithContext(ctx).
		Preload("Bonus").
		First(&a, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) FindByFile(ctx context.Context, fileID string, activeOnly bool) ([]Assignment, error) {
	q := r.db.WithContext(ctx).
		Preload("Bonus").
		Where("employment_file_id = ?", fileID)
	if activeOnly {
		q = q.Where("active = ?", true)
	}

	var assignments []Assignment
	err := q.Order("assigned_at ASC, id ASC").Find(&assignments).Error
	return assignments, err
}

// HasActiveAssignment reports whether the (file, bonus) pair already holds an
// active assignment. excludeID skips the row being edited so an update does
// not collide with itself.
func (r *repository) HasActiveAssignment(ctx context.Context, fileID, bonusID, excludeID string) (bool, error) {
	q := r.db.WithContext(ctx).
		Model(&Assignment{}).
		Where("employment_file_id = ? AND bonus_id = ? AND active = ?", fileID, bonusID, true)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}

	var count int64
	err := q.Count(&count).Error
	return count > 0, err
}

func (r *repository) HasActiveAssignmentsForBonus(ctx context.Context, bonusID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Assignment{}).
		Where("bonus_id = ? AND active = ?", bonusID, true).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) FindExpired(ctx context.Context, asOf time.Time) ([]Assignment, error) {
	var assignments []Assignment
	err := r.db.WithContext(ctx).
		Where("active = ? AND end_date IS NOT NULL AND end_date < ?", true, asOf).
		Find(&assignments).Error
	return assignments, err
}

func (r *repository) Update(ctx context.Context, a *Assignment) error {
	if r.tx != nil {
		query := `
            UPDATE bonus_assignments SET
                bonus_id = $2, assigned_at = $3, end_date = $4, active = $5,
                observations = $6, updated_at = NOW()
            WHERE id = $1
        `
		_, err := r.tx.ExecContext(
			ctx, query,
			a.ID, a.BonusID, a.AssignedAt, a.EndDate, a.Active, a.Observations,
		)
		return err
	}
	return r.db.WithContext(ctx).Omit("Bonus").Save(a).Error
}
