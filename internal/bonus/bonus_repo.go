package bonus

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=bonus_repo.go -destination=mock/bonus_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, b *Bonus) error
	FindAll(ctx context.Context) ([]Bonus, error)
	FindByID(ctx context.Context, id string) (*Bonus, error)
	Update(ctx context.Context, b *Bonus) error
	Delete(ctx context.Context, id string) error
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

func (r *repository) Create(ctx context.Context, b *Bonus) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Bonus, error) {
	var bonuses []Bonus
	err := r.db.WithContext(ctx).Order("name ASC").Find(&bonuses).Error
	return bonuses, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Bonus, error) {
	var b Bonus
	err := r.db.WithContext(ctx).First(&b, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *repository) Update(ctx context.Context, b *Bonus) error {
	return r.db.WithContext(ctx).Save(b).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Bonus{}, "id = ?", id).Error
}
