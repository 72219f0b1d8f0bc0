package client

import (
	"context"
	"testing"

	clienterrors "github.com/HikkizZ/Project-GPS-2025-sub001/internal/client/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fakeClientRepo struct {
	byID  map[string]*Client
	byRut map[string]*Client
}

func newFakeClientRepo() *fakeClientRepo {
	return &fakeClientRepo{
		byID:  make(map[string]*Client),
		byRut: make(map[string]*Client),
	}
}

func (f *fakeClientRepo) Create(ctx context.Context, c *Client) error {
	f.byID[c.ID.String()] = c
	f.byRut[c.Rut] = c
	return nil
}

func (f *fakeClientRepo) FindByID(ctx context.Context, id string) (*Client, error) {
	c, ok := f.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (f *fakeClientRepo) FindByRut(ctx context.Context, rut string) (*Client, error) {
	c, ok := f.byRut[rut]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (f *fakeClientRepo) FindAll(ctx context.Context) ([]Client, error) {
	out := make([]Client, 0, len(f.byID))
	for _, c := range f.byID {
		out = append(out, *c)
	}
	return out, nil
}

func (f *fakeClientRepo) Update(ctx context.Context, c *Client) error {
	f.byID[c.ID.String()] = c
	f.byRut[c.Rut] = c
	return nil
}

func (f *fakeClientRepo) Delete(ctx context.Context, id string) error {
	c, ok := f.byID[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.byRut, c.Rut)
	delete(f.byID, id)
	return nil
}

func validCreateRequest() CreateClientRequest {
	return CreateClientRequest{
		Name:    "Constructora Andes Ltda.",
		Rut:     "12.345.678-5",
		Email:   "Contacto@Andes.cl",
		Phone:   "+56221234567",
		Address: "Av. Apoquindo 1234, Las Condes",
	}
}

func TestCreateClient_Success(t *testing.T) {
	repo := newFakeClientRepo()
	svc := NewService(repo, zap.NewNop())

	resp, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	assert.Equal(t, "12.345.678-5", resp.Rut)
	assert.Equal(t, "contacto@andes.cl", resp.Email)
	assert.Len(t, repo.byID, 1)
}

func TestCreateClient_NormalizesRut(t *testing.T) {
	repo := newFakeClientRepo()
	svc := NewService(repo, zap.NewNop())

	req := validCreateRequest()
	req.Rut = "123456785"
	resp, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "12.345.678-5", resp.Rut)
}

func TestCreateClient_RejectsInvalidRut(t *testing.T) {
	svc := NewService(newFakeClientRepo(), zap.NewNop())

	req := validCreateRequest()
	req.Rut = "12.345.678-9"
	_, err := svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, clienterrors.ErrInvalidRut)
}

func TestCreateClient_RejectsDuplicateRut(t *testing.T) {
	repo := newFakeClientRepo()
	svc := NewService(repo, zap.NewNop())

	_, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	// Same RUT in loose formatting still collides.
	req := validCreateRequest()
	req.Rut = "123456785"
	req.Name = "Otra Constructora"
	_, err = svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, clienterrors.ErrRutTaken)
}

func TestUpdateClient_NeverTouchesRut(t *testing.T) {
	repo := newFakeClientRepo()
	svc := NewService(repo, zap.NewNop())

	created, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	name := "Constructora Andes SpA"
	phone := "+56229876543"
	updated, err := svc.Update(context.Background(), created.ID, UpdateClientRequest{
		Name:  &name,
		Phone: &phone,
	})
	require.NoError(t, err)

	assert.Equal(t, name, updated.Name)
	assert.Equal(t, phone, updated.Phone)
	assert.Equal(t, created.Rut, updated.Rut)
}

func TestUpdateClient_RejectsBadEmail(t *testing.T) {
	repo := newFakeClientRepo()
	svc := NewService(repo, zap.NewNop())

	created, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	bad := "not-an-email"
	_, err = svc.Update(context.Background(), created.ID, UpdateClientRequest{Email: &bad})
	assert.ErrorIs(t, err, clienterrors.ErrInvalidEmail)
}

func TestDeleteClient(t *testing.T) {
	repo := newFakeClientRepo()
	svc := NewService(repo, zap.NewNop())

	created, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), created.ID))

	_, err = svc.GetByID(context.Background(), created.ID)
	assert.ErrorIs(t, err, clienterrors.ErrClientNotFound)

	err = svc.Delete(context.Background(), created.ID)
	assert.ErrorIs(t, err, clienterrors.ErrClientNotFound)
}
