package bonus

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	bonuserrors "github.com/HikkizZ/Project-GPS-2025-sub001/internal/bonus/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const OptionsCacheKey = "bonuses:options"

// AssignmentChecker is the slice of the assignment store needed to guard
// catalog deletion.
type AssignmentChecker interface {
	HasActiveAssignmentsForBonus(ctx context.Context, bonusID string) (bool, error)
}

//go:generate mockgen -source=bonus_service.go -destination=mock/bonus_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateBonusRequest) (BonusResponse, error)
	GetAll(ctx context.Context) ([]BonusResponse, error)
	GetOptions(ctx context.Context) ([]BonusResponse, error)
	GetByID(ctx context.Context, id string) (BonusResponse, error)
	Update(ctx context.Context, id string, req UpdateBonusRequest) (BonusResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo        Repository
	assignments AssignmentChecker
	rdb         *redis.Client
	sf          *singleflight.Group
	logger      *zap.Logger
}

func NewService(repo Repository, assignments AssignmentChecker, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("bonus.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("bonus.service")
	}
	return &service{
		repo:        repo,
		assignments: assignments,
		rdb:         rdb,
		sf:          &singleflight.Group{},
		logger:      l,
	}
}

func (s *service) Create(ctx context.Context, req CreateBonusRequest) (BonusResponse, error) {
	if req.Amount <= 0 {
		return BonusResponse{}, bonuserrors.ErrInvalidAmount
	}
	if !ValidTemporality(req.Temporality) {
		return BonusResponse{}, bonuserrors.ErrUnknownTemporality
	}

	b := &Bonus{
		ID:             uuid.New(),
		Name:           strings.TrimSpace(req.Name),
		Amount:         req.Amount,
		Imponible:      *req.Imponible,
		Temporality:    req.Temporality,
		DurationMonths: req.DurationMonths,
	}

	if err := s.repo.Create(ctx, b); err != nil {
		s.logger.Error("create bonus persist failed", zap.Error(err))
		return BonusResponse{}, mapRepositoryError(err)
	}

	s.invalidateOptions(ctx)
	s.logger.Info("create bonus success", zap.String("bonus_id", b.ID.String()))

	return mapToResponse(*b), nil
}

func (s *service) GetAll(ctx context.Context) ([]BonusResponse, error) {
	bonuses, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("get all bonuses failed", zap.Error(err))
		return nil, err
	}
	return mapToListResponse(bonuses), nil
}

// GetOptions serves the catalog listing behind a redis cache with
// singleflight stampede control; HR opens this dropdown a lot.
func (s *service) GetOptions(ctx context.Context) ([]BonusResponse, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, OptionsCacheKey).Result(); err == nil {
			var resp []BonusResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(OptionsCacheKey, func() (interface{}, error) {
		bonuses, err := s.repo.FindAll(ctx)
		if err != nil {
			return nil, err
		}

		resp := mapToListResponse(bonuses)

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, OptionsCacheKey, jsonData, 1*time.Hour)
			}
		}

		return resp, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]BonusResponse), nil
}

func (s *service) GetByID(ctx context.Context, id string) (BonusResponse, error) {
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return BonusResponse{}, bonuserrors.ErrBonusNotFound
		}
		return BonusResponse{}, err
	}
	return mapToResponse(*b), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateBonusRequest) (BonusResponse, error) {
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return BonusResponse{}, bonuserrors.ErrBonusNotFound
		}
		return BonusResponse{}, err
	}

	if req.Amount != nil {
		if *req.Amount <= 0 {
			return BonusResponse{}, bonuserrors.ErrInvalidAmount
		}
		b.Amount = *req.Amount
	}
	if req.Temporality != nil {
		if !ValidTemporality(*req.Temporality) {
			return BonusResponse{}, bonuserrors.ErrUnknownTemporality
		}
		b.Temporality = *req.Temporality
	}
	if req.Name != nil {
		b.Name = strings.TrimSpace(*req.Name)
	}
	if req.Imponible != nil {
		b.Imponible = *req.Imponible
	}
	if req.DurationMonths != nil {
		b.DurationMonths = req.DurationMonths
	}

	if err := s.repo.Update(ctx, b); err != nil {
		s.logger.Error("update bonus persist failed", zap.Error(err))
		return BonusResponse{}, mapRepositoryError(err)
	}

	s.invalidateOptions(ctx)
	s.logger.Info("update bonus success", zap.String("bonus_id", id))

	return mapToResponse(*b), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return bonuserrors.ErrBonusNotFound
		}
		return err
	}

	active, err := s.assignments.HasActiveAssignmentsForBonus(ctx, id)
	if err != nil {
		s.logger.Error("delete bonus assignment check failed", zap.Error(err))
		return err
	}
	if active {
		return bonuserrors.ErrBonusHasActiveAssignments
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("delete bonus failed", zap.Error(err))
		return err
	}

	s.invalidateOptions(ctx)
	s.logger.Info("delete bonus success", zap.String("bonus_id", id))
	return nil
}

func (s *service) invalidateOptions(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, OptionsCacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate bonus options cache",
			zap.Error(err),
			zap.String("key", OptionsCacheKey),
		)
	}
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" {
			return bonuserrors.ErrBonusNameTaken
		}
	}

	if strings.Contains(strings.ToLower(err.Error()), "duplicate key value") {
		return bonuserrors.ErrBonusNameTaken
	}

	return err
}

func mapToResponse(b Bonus) BonusResponse {
	return BonusResponse{
		ID:             b.ID.String(),
		Name:           b.Name,
		Amount:         b.Amount,
		Imponible:      b.Imponible,
		Temporality:    b.Temporality,
		DurationMonths: b.DurationMonths,
	}
}

func mapToListResponse(bonuses []Bonus) []BonusResponse {
	resp := make([]BonusResponse, len(bonuses))
	for i, b := range bonuses {
		resp[i] = mapToResponse(b)
	}
	return resp
}
