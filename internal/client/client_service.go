package client

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	clienterrors "github.com/HikkizZ/Project-GPS-2025-sub001/internal/client/errors"
	"github.com/HikkizZ/Project-GPS-2025-sub001/internal/shared/rut"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=client_service.go -destination=mock/client_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateClientRequest) (ClientResponse, error)
	GetAll(ctx context.Context) ([]ClientResponse, error)
	GetByID(ctx context.Context, id string) (ClientResponse, error)
	Update(ctx context.Context, id string, req UpdateClientRequest) (ClientResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("client.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("client.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateClientRequest) (ClientResponse, error) {
	if !rut.IsValid(req.Rut) {
		return ClientResponse{}, clienterrors.ErrInvalidRut
	}
	canonicalRut := rut.Format(req.Rut)

	if req.Email != "" {
		if _, err := mail.ParseAddress(req.Email); err != nil {
			return ClientResponse{}, clienterrors.ErrInvalidEmail
		}
	}

	if _, err := s.repo.FindByRut(ctx, canonicalRut); err == nil {
		return ClientResponse{}, clienterrors.ErrRutTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return ClientResponse{}, err
	}

	c := &Client{
		ID:      uuid.New(),
		Name:    strings.TrimSpace(req.Name),
		Rut:     canonicalRut,
		Email:   strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:   strings.TrimSpace(req.Phone),
		Address: strings.TrimSpace(req.Address),
	}

	if err := s.repo.Create(ctx, c); err != nil {
		s.logger.Error("create client persist failed", zap.Error(err))
		return ClientResponse{}, mapRutConflict(err)
	}

	s.logger.Info("client created",
		zap.String("client_id", c.ID.String()),
		zap.String("rut", c.Rut),
	)
	return mapToResponse(*c), nil
}

func (s *service) GetAll(ctx context.Context) ([]ClientResponse, error) {
	clients, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]ClientResponse, len(clients))
	for i, c := range clients {
		resp[i] = mapToResponse(c)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (ClientResponse, error) {
	c, err := s.findClient(ctx, id)
	if err != nil {
		return ClientResponse{}, err
	}
	return mapToResponse(*c), nil
}

// Update never touches the RUT: it identifies the client for tax documents
// and rental reports, so a typo fix means delete and re-create.
func (s *service) Update(ctx context.Context, id string, req UpdateClientRequest) (ClientResponse, error) {
	c, err := s.findClient(ctx, id)
	if err != nil {
		return ClientResponse{}, err
	}

	if req.Name != nil {
		c.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		if *req.Email != "" {
			if _, err := mail.ParseAddress(*req.Email); err != nil {
				return ClientResponse{}, clienterrors.ErrInvalidEmail
			}
		}
		c.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Phone != nil {
		c.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Address != nil {
		c.Address = strings.TrimSpace(*req.Address)
	}

	if err := s.repo.Update(ctx, c); err != nil {
		s.logger.Error("update client persist failed", zap.String("client_id", id), zap.Error(err))
		return ClientResponse{}, err
	}

	return mapToResponse(*c), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := s.findClient(ctx, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("delete client failed", zap.String("client_id", id), zap.Error(err))
		return err
	}

	s.logger.Info("client deleted", zap.String("client_id", id))
	return nil
}

func (s *service) findClient(ctx context.Context, id string) (*Client, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, clienterrors.ErrClientNotFound
		}
		return nil, err
	}
	return c, nil
}

func mapRutConflict(err error) error {
	if err == nil {
		return nil
	}
	if strings.Contains(strings.ToLower(err.Error()), "duplicate key value") {
		return clienterrors.ErrRutTaken
	}
	return err
}

func mapToResponse(c Client) ClientResponse {
	return ClientResponse{
		ID:      c.ID.String(),
		Name:    c.Name,
		Rut:     c.Rut,
		Email:   c.Email,
		Phone:   c.Phone,
		Address: c.Address,
	}
}
