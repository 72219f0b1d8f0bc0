package identity

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=identity_repo.go -destination=mock/identity_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	// NextSuffix returns the lowest unused suffix for a base: 0 when the
	// base was never issued, otherwise MAX(suffix)+1.
	NextSuffix(ctx context.Context, base string) (int, error)
	Record(ctx context.Context, issued *IssuedIdentity) error
	FindByWorker(ctx context.Context, workerID string) ([]IssuedIdentity, error)
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

func (r *repository) NextSuffix(ctx context.Context, base string) (int, error) {
	query := `SELECT COALESCE(MAX(suffix) + 1, 0) FROM issued_identities WHERE base = $1`

	if r.tx != nil {
		var next int
		err := r.tx.QueryRowContext(ctx, query, base).Scan(&next)
		return next, err
	}

	var next int
	err := r.db.WithContext(ctx).Raw(query, base).Scan(&next).Error
	return next, err
}

func (r *repository) Record(ctx context.Context, issued *IssuedIdentity) error {
	if r.tx != nil {
		query := `
            INSERT INTO issued_identities (id, worker_id, email, base, suffix, created_at)
            VALUES ($1, $2, $3, $4, $5, NOW())
        `
		_, err := r.tx.ExecContext(
			ctx, query,
			issued.ID, issued.WorkerID, issued.Email, issued.Base, issued.Suffix,
		)
		return err
	}
	return r.db.WithContext(ctx).Create(issued).Error
}

func (r *repository) FindByWorker(ctx context.Context, workerID string) ([]IssuedIdentity, error) {
	var issued []IssuedIdentity
	err := r.db.WithContext(ctx).
		Where("worker_id = ?", workerID).
		Order("created_at ASC").
		Find(&issued).Error
	return issued, err
}
