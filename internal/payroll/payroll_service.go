package payroll

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"time"

	"github.com/HikkizZ/Project-GPS-2025-sub001/internal/bonusassignment"
	"github.com/HikkizZ/Project-GPS-2025-sub001/internal/employmentfile"
	payrollerrors "github.com/HikkizZ/Project-GPS-2025-sub001/internal/payroll/errors"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	cacheKeyPrefix = "payroll:calc:"
	cacheTTL       = 1 * time.Hour
)

//go:generate mockgen -source=payroll_service.go -destination=mock/payroll_service_mock.go -package=mock
type Service interface {
	GetForFile(ctx context.Context, fileID string) (SalaryBreakdown, error)
	GetForWorker(ctx context.Context, workerID string) (SalaryBreakdown, error)
	Invalidate(ctx context.Context, fileID string) error
}

type service struct {
	files       employmentfile.Repository
	assignments bonusassignment.Repository
	rdb         *redis.Client
	sf          *singleflight.Group
	logger      *zap.Logger
}

func NewService(
	files employmentfile.Repository,
	assignments bonusassignment.Repository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("payroll.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.service")
	}
	return &service{
		files:       files,
		assignments: assignments,
		rdb:         rdb,
		sf:          &singleflight.Group{},
		logger:      l,
	}
}

func cacheKey(fileID string) string {
	return cacheKeyPrefix + fileID
}

// GetForFile serves the calculation behind a redis cache with singleflight
// stampede control. The consumer invalidates the key whenever an assignment
// or file change signals a recalculation.
func (s *service) GetForFile(ctx context.Context, fileID string) (SalaryBreakdown, error) {
	key := cacheKey(fileID)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, key).Result(); err == nil {
			var breakdown SalaryBreakdown
			if json.Unmarshal([]byte(cached), &breakdown) == nil {
				return breakdown, nil
			}
		}
	}

	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		breakdown, err := s.compute(ctx, fileID)
		if err != nil {
			return SalaryBreakdown{}, err
		}

		if s.rdb != nil {
			if jsonData, err := json.Marshal(breakdown); err == nil {
				s.rdb.Set(ctx, key, jsonData, cacheTTL)
			}
		}

		return breakdown, nil
	})
	if err != nil {
		return SalaryBreakdown{}, err
	}

	return v.(SalaryBreakdown), nil
}

func (s *service) GetForWorker(ctx context.Context, workerID string) (SalaryBreakdown, error) {
	file, err := s.files.FindByWorkerID(ctx, workerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SalaryBreakdown{}, payrollerrors.ErrFileNotFound
		}
		return SalaryBreakdown{}, err
	}
	return s.GetForFile(ctx, file.ID.String())
}

func (s *service) Invalidate(ctx context.Context, fileID string) error {
	if s.rdb == nil {
		return nil
	}

	if err := s.rdb.Del(ctx, cacheKey(fileID)).Err(); err != nil {
		s.logger.Error("payroll cache invalidation failed",
			zap.String("file_id", fileID),
			zap.Error(err),
		)
		return err
	}

	s.logger.Debug("payroll cache invalidated", zap.String("file_id", fileID))
	return nil
}

func (s *service) compute(ctx context.Context, fileID string) (SalaryBreakdown, error) {
	file, err := s.files.FindByID(ctx, fileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SalaryBreakdown{}, payrollerrors.ErrFileNotFound
		}
		return SalaryBreakdown{}, err
	}

	if file.Status == employmentfile.StatusDisengaged {
		return SalaryBreakdown{}, payrollerrors.ErrFileDisengaged
	}
	if file.BaseSalary <= 0 {
		return SalaryBreakdown{}, payrollerrors.ErrNoContractData
	}

	afp, ok := afpRate(file.Afp)
	if !ok {
		return SalaryBreakdown{}, payrollerrors.ErrUnknownAfp
	}
	health, ok := healthRate(file.HealthInsurer)
	if !ok {
		return SalaryBreakdown{}, payrollerrors.ErrUnknownHealthInsurer
	}

	active, err := s.assignments.FindByFile(ctx, fileID, true)
	if err != nil {
		return SalaryBreakdown{}, err
	}

	breakdown := SalaryBreakdown{
		EmploymentFileID: file.ID.String(),
		WorkerID:         file.WorkerID.String(),
		BaseSalary:       file.BaseSalary,
		Bonuses:          make([]BonusLine, 0, len(active)),
		AfpProvider:      file.Afp,
		AfpRate:          afp,
		HealthInsurer:    file.HealthInsurer,
		HealthRate:       health,
		ComputedAt:       time.Now().UTC(),
	}

	for _, a := range active {
		if a.Bonus == nil {
			continue
		}
		line := BonusLine{
			BonusID:   a.BonusID.String(),
			Name:      a.Bonus.Name,
			Amount:    a.Bonus.Amount,
			Imponible: a.Bonus.Imponible,
		}
		breakdown.Bonuses = append(breakdown.Bonuses, line)
		if line.Imponible {
			breakdown.TaxableBonuses += line.Amount
		} else {
			breakdown.NonTaxableBonuses += line.Amount
		}
	}

	breakdown.TaxableBase = breakdown.BaseSalary + breakdown.TaxableBonuses
	breakdown.GrossPay = breakdown.TaxableBase + breakdown.NonTaxableBonuses

	breakdown.AfpDeduction = deduct(breakdown.TaxableBase, afp)
	breakdown.HealthDeduction = deduct(breakdown.TaxableBase, health)
	if file.UnemploymentInsurance {
		breakdown.UnemploymentRate = unemploymentRate
		breakdown.UnemploymentDeduction = deduct(breakdown.TaxableBase, unemploymentRate)
	}

	breakdown.TotalDeductions = breakdown.AfpDeduction +
		breakdown.HealthDeduction +
		breakdown.UnemploymentDeduction
	breakdown.NetPay = breakdown.GrossPay - breakdown.TotalDeductions

	s.logger.Debug("salary computed",
		zap.String("file_id", fileID),
		zap.Int64("taxable_base", breakdown.TaxableBase),
		zap.Int64("net_pay", breakdown.NetPay),
	)
	return breakdown, nil
}

func deduct(base int64, ratePercent float64) int64 {
	return int64(math.Round(float64(base) * ratePercent / 100))
}
