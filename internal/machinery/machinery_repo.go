package machinery

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// ClientTotalRow is the scan target for the monthly aggregation query.
type ClientTotalRow struct {
	ClientID    string
	ReportCount int
	TotalHours  float64
	TotalValue  int64
}

//go:generate mockgen -source=machinery_repo.go -destination=mock/machinery_repo_mock.go -package=mock
type Repository interface {
	CreateMachine(ctx context.Context, m *Machine) error
	FindMachineByID(ctx context.Context, id string) (*Machine, error)
	FindMachineByPatente(ctx context.Context, patente string) (*Machine, error)
	FindAllMachines(ctx context.Context) ([]Machine, error)
	UpdateMachine(ctx context.Context, m *Machine) error
	DeleteMachine(ctx context.Context, id string) error

	CreateReport(ctx context.Context, r *RentalReport) error
	FindReportByID(ctx context.Context, id string) (*RentalReport, error)
	FindReports(ctx context.Context, machineID, clientID string, from, to *time.Time) ([]RentalReport, error)
	DeleteReport(ctx context.Context, id string) error
	ClientTotals(ctx context.Context, from, to time.Time) ([]ClientTotalRow, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateMachine(ctx context.Context, m *Machine) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *repository) FindMachineByID(ctx context.Context, id string) (*Machine, error) {
	var m Machine
	err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *repository) FindMachineByPatente(ctx context.Context, patente string) (*Machine, error) {
	var m Machine
	err := r.db.WithContext(ctx).First(&m, "patente = ?", patente).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *repository) FindAllMachines(ctx context.Context) ([]Machine, error) {
	var machines []Machine
	err := r.db.WithContext(ctx).
		Order("patente ASC").
		Find(&machines).Error
	return machines, err
}

func (r *repository) UpdateMachine(ctx context.Context, m *Machine) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *repository) DeleteMachine(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Machine{}, "id = ?", id).Error
}

func (r *repository) CreateReport(ctx context.Context, report *RentalReport) error {
	return r.db.WithContext(ctx).Create(report).Error
}

func (r *repository) FindReportByID(ctx context.Context, id string) (*RentalReport, error) {
	var report RentalReport
	err := r.db.WithContext(ctx).First(&report, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *repository) FindReports(ctx context.Context, machineID, clientID string, from, to *time.Time) ([]RentalReport, error) {
	q := r.db.WithContext(ctx).Model(&RentalReport{})

	if machineID != "" {
		q = q.Where("machine_id = ?", machineID)
	}
	if clientID != "" {
		q = q.Where("client_id = ?", clientID)
	}
	if from != nil {
		q = q.Where("work_date >= ?", *from)
	}
	if to != nil {
		q = q.Where("work_date < ?", *to)
	}

	var reports []RentalReport
	err := q.Order("work_date DESC").Find(&reports).Error
	return reports, err
}

func (r *repository) DeleteReport(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&RentalReport{}, "id = ?", id).Error
}

func (r *repository) ClientTotals(ctx context.Context, from, to time.Time) ([]ClientTotalRow, error) {
	var rows []ClientTotalRow
	err := r.db.WithContext(ctx).
		Model(&RentalReport{}).
		Select("client_id, COUNT(*) AS report_count, SUM(hours) AS total_hours, SUM(total) AS total_value").
		Where("work_date >= ? AND work_date < ?", from, to).
		Group("client_id").
		Order("total_value DESC").
		Scan(&rows).Error
	return rows, err
}
