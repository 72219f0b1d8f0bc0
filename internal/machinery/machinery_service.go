package machinery

import (
	"context"
	"errors"
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/HikkizZ/Project-GPS-2025-sub001/internal/client"
	machineryerrors "github.com/HikkizZ/Project-GPS-2025-sub001/internal/machinery/errors"
	"github.com/HikkizZ/Project-GPS-2025-sub001/internal/shared/clock"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Chilean plates: the old AA1234 series and the current BBBB12 series.
var patentePattern = regexp.MustCompile(`^([A-Z]{2}[0-9]{4}|[A-Z]{4}[0-9]{2})$`)

//go:generate mockgen -source=machinery_service.go -destination=mock/machinery_service_mock.go -package=mock
type Service interface {
	CreateMachine(ctx context.Context, req CreateMachineRequest) (MachineResponse, error)
	GetMachines(ctx context.Context) ([]MachineResponse, error)
	GetMachine(ctx context.Context, id string) (MachineResponse, error)
	UpdateMachine(ctx context.Context, id string, req UpdateMachineRequest) (MachineResponse, error)
	DeleteMachine(ctx context.Context, id string) error

	CreateReport(ctx context.Context, req CreateReportRequest) (ReportResponse, error)
	GetReports(ctx context.Context, machineID, clientID, month string) ([]ReportResponse, error)
	DeleteReport(ctx context.Context, id string) error
	MonthlyTotals(ctx context.Context, month string) ([]ClientMonthlyTotal, error)
}

type service struct {
	repo    Repository
	clients client.Repository
	loc     *time.Location
	logger  *zap.Logger
}

func NewService(repo Repository, clients client.Repository, loc *time.Location, logger ...*zap.Logger) Service {
	l := zap.L().Named("machinery.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("machinery.service")
	}
	return &service{repo: repo, clients: clients, loc: loc, logger: l}
}

// NormalizePatente strips separators and uppercases a plate.
func NormalizePatente(raw string) string {
	cleaned := strings.ToUpper(strings.TrimSpace(raw))
	cleaned = strings.NewReplacer(".", "", "-", "", " ", "", "·", "").Replace(cleaned)
	return cleaned
}

func (s *service) CreateMachine(ctx context.Context, req CreateMachineRequest) (MachineResponse, error) {
	patente := NormalizePatente(req.Patente)
	if !patentePattern.MatchString(patente) {
		return MachineResponse{}, machineryerrors.ErrInvalidPatente
	}

	if _, err := s.repo.FindMachineByPatente(ctx, patente); err == nil {
		return MachineResponse{}, machineryerrors.ErrPatenteTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return MachineResponse{}, err
	}

	m := &Machine{
		ID:      uuid.New(),
		Patente: patente,
		Brand:   strings.TrimSpace(req.Brand),
		Model:   strings.TrimSpace(req.Model),
		Year:    req.Year,
	}

	if err := s.repo.CreateMachine(ctx, m); err != nil {
		s.logger.Error("create machine persist failed", zap.Error(err))
		return MachineResponse{}, mapPatenteConflict(err)
	}

	s.logger.Info("machine created",
		zap.String("machine_id", m.ID.String()),
		zap.String("patente", m.Patente),
	)
	return mapMachineResponse(*m), nil
}

func (s *service) GetMachines(ctx context.Context) ([]MachineResponse, error) {
	machines, err := s.repo.FindAllMachines(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]MachineResponse, len(machines))
	for i, m := range machines {
		resp[i] = mapMachineResponse(m)
	}
	return resp, nil
}

func (s *service) GetMachine(ctx context.Context, id string) (MachineResponse, error) {
	m, err := s.findMachine(ctx, id)
	if err != nil {
		return MachineResponse{}, err
	}
	return mapMachineResponse(*m), nil
}

// UpdateMachine never changes the plate: it identifies the unit on every
// rental report already filed.
func (s *service) UpdateMachine(ctx context.Context, id string, req UpdateMachineRequest) (MachineResponse, error) {
	m, err := s.findMachine(ctx, id)
	if err != nil {
		return MachineResponse{}, err
	}

	if req.Brand != nil {
		m.Brand = strings.TrimSpace(*req.Brand)
	}
	if req.Model != nil {
		m.Model = strings.TrimSpace(*req.Model)
	}
	if req.Year != nil {
		m.Year = *req.Year
	}

	if err := s.repo.UpdateMachine(ctx, m); err != nil {
		s.logger.Error("update machine persist failed", zap.String("machine_id", id), zap.Error(err))
		return MachineResponse{}, err
	}

	return mapMachineResponse(*m), nil
}

func (s *service) DeleteMachine(ctx context.Context, id string) error {
	if _, err := s.findMachine(ctx, id); err != nil {
		return err
	}

	if err := s.repo.DeleteMachine(ctx, id); err != nil {
		s.logger.Error("delete machine failed", zap.String("machine_id", id), zap.Error(err))
		return err
	}

	s.logger.Info("machine deleted", zap.String("machine_id", id))
	return nil
}

func (s *service) CreateReport(ctx context.Context, req CreateReportRequest) (ReportResponse, error) {
	if req.Hours <= 0 {
		return ReportResponse{}, machineryerrors.ErrInvalidHours
	}
	if req.HourlyRate <= 0 {
		return ReportResponse{}, machineryerrors.ErrInvalidRate
	}

	workDate, err := s.parseDate(req.WorkDate)
	if err != nil {
		return ReportResponse{}, err
	}

	m, err := s.findMachine(ctx, req.MachineID)
	if err != nil {
		return ReportResponse{}, err
	}

	cl, err := s.clients.FindByID(ctx, req.ClientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ReportResponse{}, machineryerrors.ErrClientNotFound
		}
		return ReportResponse{}, err
	}

	report := &RentalReport{
		ID:         uuid.New(),
		MachineID:  m.ID,
		ClientID:   cl.ID,
		WorkDate:   workDate,
		Hours:      req.Hours,
		HourlyRate: req.HourlyRate,
		Total:      int64(math.Round(req.Hours * float64(req.HourlyRate))),
		Detail:     strings.TrimSpace(req.Detail),
	}

	if err := s.repo.CreateReport(ctx, report); err != nil {
		s.logger.Error("create rental report persist failed", zap.Error(err))
		return ReportResponse{}, err
	}

	s.logger.Info("rental report created",
		zap.String("report_id", report.ID.String()),
		zap.String("machine_id", req.MachineID),
		zap.String("client_id", req.ClientID),
		zap.Int64("total", report.Total),
	)
	return mapReportResponse(*report), nil
}

func (s *service) GetReports(ctx context.Context, machineID, clientID, month string) ([]ReportResponse, error) {
	var from, to *time.Time
	if month != "" {
		start, end, err := s.monthBounds(month)
		if err != nil {
			return nil, err
		}
		from, to = &start, &end
	}

	reports, err := s.repo.FindReports(ctx, machineID, clientID, from, to)
	if err != nil {
		return nil, err
	}

	resp := make([]ReportResponse, len(reports))
	for i, r := range reports {
		resp[i] = mapReportResponse(r)
	}
	return resp, nil
}

func (s *service) DeleteReport(ctx context.Context, id string) error {
	if _, err := s.repo.FindReportByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return machineryerrors.ErrReportNotFound
		}
		return err
	}

	if err := s.repo.DeleteReport(ctx, id); err != nil {
		s.logger.Error("delete rental report failed", zap.String("report_id", id), zap.Error(err))
		return err
	}

	s.logger.Info("rental report deleted", zap.String("report_id", id))
	return nil
}

func (s *service) MonthlyTotals(ctx context.Context, month string) ([]ClientMonthlyTotal, error) {
	from, to, err := s.monthBounds(month)
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.ClientTotals(ctx, from, to)
	if err != nil {
		return nil, err
	}

	totals := make([]ClientMonthlyTotal, len(rows))
	for i, row := range rows {
		totals[i] = ClientMonthlyTotal{
			ClientID:    row.ClientID,
			ReportCount: row.ReportCount,
			TotalHours:  row.TotalHours,
			TotalValue:  row.TotalValue,
		}
	}
	return totals, nil
}

func (s *service) findMachine(ctx context.Context, id string) (*Machine, error) {
	m, err := s.repo.FindMachineByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, machineryerrors.ErrMachineNotFound
		}
		return nil, err
	}
	return m, nil
}

func (s *service) parseDate(v string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", v, s.loc)
	if err != nil {
		return time.Time{}, machineryerrors.ErrInvalidDateFormat
	}
	return clock.AtMidday(t, s.loc), nil
}

// monthBounds turns "2025-06" into [2025-06-01, 2025-07-01).
func (s *service) monthBounds(month string) (time.Time, time.Time, error) {
	t, err := time.ParseInLocation("2006-01", month, s.loc)
	if err != nil {
		return time.Time{}, time.Time{}, machineryerrors.ErrInvalidPeriod
	}
	return t, t.AddDate(0, 1, 0), nil
}

func mapPatenteConflict(err error) error {
	if err == nil {
		return nil
	}
	if strings.Contains(strings.ToLower(err.Error()), "duplicate key value") {
		return machineryerrors.ErrPatenteTaken
	}
	return err
}

func mapMachineResponse(m Machine) MachineResponse {
	return MachineResponse{
		ID:      m.ID.String(),
		Patente: m.Patente,
		Brand:   m.Brand,
		Model:   m.Model,
		Year:    m.Year,
	}
}

func mapReportResponse(r RentalReport) ReportResponse {
	return ReportResponse{
		ID:         r.ID.String(),
		MachineID:  r.MachineID.String(),
		ClientID:   r.ClientID.String(),
		WorkDate:   r.WorkDate.Format("2006-01-02"),
		Hours:      r.Hours,
		HourlyRate: r.HourlyRate,
		Total:      r.Total,
		Detail:     r.Detail,
	}
}
