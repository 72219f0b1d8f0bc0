package user

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=user_repo.go -destination=mock/user_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByWorkerID(ctx context.Context, workerID string) (*User, error)
	FindByRut(ctx context.Context, rut string) (*User, error)
	FindAll(ctx context.Context) ([]User, error)
	Update(ctx context.Context, u *User) error
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

func (r *repository) Create(ctx context.Context, u *User) error {
	if r.tx != nil {
		query := `
            INSERT INTO users (
                id, worker_id, name, rut, email, password, role, status,
                created_at, updated_at
            ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
        `
		_, err := r.tx.ExecContext(
			ctx, query,
			u.ID, u.WorkerID, u.Name, u.Rut, u.Email, u.Password, u.Role, u.Status,
		)
		return err
	}
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*User, error) {
	var u User
	err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	err := r.db.WithContext(ctx).First(&u, "email = ?", email).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repository) FindByWorkerID(ctx context.Context, workerID string) (*User, error) {
	var u User
	err := r.db.WithContext(ctx).First(&u, "worker_id = ?", workerID).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repository) FindByRut(ctx context.Context, rut string) (*User, error) {
	var u User
	err := r.db.WithContext(ctx).First(&u, "rut = ?", rut).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repository) FindAll(ctx context.Context) ([]User, error) {
	var users []User
	err := r.db.WithContext(ctx).Order("created_at ASC").Find(&users).Error
	return users, err
}

func (r *repository) Update(ctx context.Context, u *User) error {
	if r.tx != nil {
		query := `
            UPDATE users SET
                worker_id = $2, name = $3, rut = $4, email = $5, password = $6,
                role = $7, status = $8, updated_at = NOW()
            WHERE id = $1
        `
		_, err := r.tx.ExecContext(
			ctx, query,
			u.ID, u.WorkerID, u.Name, u.Rut, u.Email, u.Password, u.Role, u.Status,
		)
		return err
	}
	return r.db.WithContext(ctx).Save(u).Error
}
