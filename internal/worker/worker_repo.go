package worker

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=worker_repo.go -destination=mock/worker_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, w *Worker) error
	FindByID(ctx context.Context, id string) (*Worker, error)
	FindByRut(ctx context.Context, rut string) (*Worker, error)
	FindAll(ctx context.Context, includeDisengaged bool) ([]Worker, error)
	Update(ctx context.Context, w *Worker) error
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

func (r *repository) Create(ctx context.Context, w *Worker) error {
	if r.tx != nil {
		query := `
            INSERT INTO workers (
                id, rut, first_names, paternal_surname, maternal_surname,
                birth_date, personal_email, phone,
                emergency_contact_name, emergency_contact_phone, address,
                hire_date, in_system, created_at, updated_at
            ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW(), NOW())
        `
		_, err := r.tx.ExecContext(
			ctx, query,
			w.ID, w.Rut, w.FirstNames, w.PaternalSurname, w.MaternalSurname,
			w.BirthDate, w.PersonalEmail, w.Phone,
			w.EmergencyContactName, w.EmergencyContactPhone, w.Address,
			w.HireDate, w.InSystem,
		)
		return err
	}
	return r.db.WithContext(ctx).Create(w).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Worker, error) {
	var w Worker
	err := r.db.WithContext(ctx).First(&w, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *repository) FindByRut(ctx context.Context, rut string) (*Worker, error) {
	var w Worker
	err := r.db.WithContext(ctx).First(&w, "rut = ?", rut).Error
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *repository) FindAll(ctx context.Context, includeDisengaged bool) ([]Worker, error) {
	q := r.db.WithContext(ctx)
	if !includeDisengaged {
		q = q.Where("in_system = ?", true)
	}

	var workers []Worker
	err := q.Order("created_at ASC, id ASC").Find(&workers).Error
	return workers, err
}

func (r *repository) Update(ctx context.Context, w *Worker) error {
	if r.tx != nil {
		query := `
            UPDATE workers SET
                first_names = $2, paternal_surname = $3, maternal_surname = $4,
                birth_date = $5, personal_email = $6, phone = $7,
                emergency_contact_name = $8, emergency_contact_phone = $9,
                address = $10, hire_date = $11, in_system = $12, updated_at = NOW()
            WHERE id = $1
        `
		_, err := r.tx.ExecContext(
			ctx, query,
			w.ID, w.FirstNames, w.PaternalSurname, w.MaternalSurname,
			w.BirthDate, w.PersonalEmail, w.Phone,
			w.EmergencyContactName, w.EmergencyContactPhone,
			w.Address, w.HireDate, w.InSystem,
		)
		return err
	}
	return r.db.WithContext(ctx).Save(w).Error
}
